package spatial

import (
	"fmt"
	"math"
)

// BruteForceBoxes is the O(N) reference BoxSearcher.
type BruteForceBoxes struct {
	boxes []AABB
}

// NewBruteForceBoxes returns an empty brute-force box searcher.
func NewBruteForceBoxes() *BruteForceBoxes { return &BruteForceBoxes{} }

// Build copies boxes.
func (s *BruteForceBoxes) Build(boxes []AABB) error {
	s.boxes = make([]AABB, len(boxes))
	copy(s.boxes, boxes)
	return nil
}

// Overlaps tests every indexed box against query.
func (s *BruteForceBoxes) Overlaps(query AABB) []int {
	var out []int
	for _, b := range s.boxes {
		if b.Overlaps(query) {
			out = append(out, b.ID)
		}
	}
	return out
}

// BruteForceFixedRadius is the O(N) reference FixedRadiusSearcher.
type BruteForceFixedRadius struct {
	cloud  *PointCloud
	radius float64
}

// NewBruteForceFixedRadius returns an empty brute-force radius searcher.
func NewBruteForceFixedRadius() *BruteForceFixedRadius { return &BruteForceFixedRadius{} }

// Build retains cloud and radius.
func (s *BruteForceFixedRadius) Build(cloud *PointCloud, radius float64) error {
	if err := checkRadius(radius); err != nil {
		return err
	}
	s.cloud = cloud
	s.radius = radius
	return nil
}

// Neighbors computes the exact distance from query to every indexed point.
func (s *BruteForceFixedRadius) Neighbors(query Point) []int {
	if s.cloud == nil {
		return nil
	}
	var out []int
	for _, p := range s.cloud.Points() {
		if query.Distance(p) <= s.radius {
			out = append(out, p.Index)
		}
	}
	return out
}

// BruteForceNearest is the O(N) reference NearestSearcher.
type BruteForceNearest struct {
	cloud *PointCloud
}

// NewBruteForceNearest returns an empty brute-force nearest searcher.
func NewBruteForceNearest() *BruteForceNearest { return &BruteForceNearest{} }

// Build retains cloud.
func (s *BruteForceNearest) Build(cloud *PointCloud) error {
	s.cloud = cloud
	return nil
}

// Nearest scans every indexed point. On exact ties the later point wins.
func (s *BruteForceNearest) Nearest(query Point) (int, bool) {
	if s.cloud == nil || s.cloud.Len() == 0 {
		return 0, false
	}
	best := math.Inf(1)
	bestIdx := 0
	for _, p := range s.cloud.Points() {
		if d := query.Distance(p); d <= best {
			best = d
			bestIdx = p.Index
		}
	}
	return bestIdx, true
}

func checkRadius(radius float64) error {
	if radius < 0 || math.IsNaN(radius) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	return nil
}

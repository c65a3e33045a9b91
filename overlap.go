package spatial

// OverlapSearcher serves fixed-radius queries from any BoxSearcher: points
// are indexed as degenerate boxes and each query point becomes the box of
// half-width radius around it.
//
// The answer is the set of points inside that box, which is a superset of
// the Euclidean ball of the same radius.
type OverlapSearcher struct {
	boxes  BoxSearcher
	radius float64
}

// NewOverlapSearcher wraps boxes.
func NewOverlapSearcher(boxes BoxSearcher) *OverlapSearcher {
	return &OverlapSearcher{boxes: boxes}
}

// Build converts every point of cloud to a degenerate box carrying the
// point's Index and indexes the boxes.
func (s *OverlapSearcher) Build(cloud *PointCloud, radius float64) error {
	if err := checkRadius(radius); err != nil {
		return err
	}
	s.radius = radius
	boxes := make([]AABB, cloud.Len())
	for i, p := range cloud.Points() {
		boxes[i].Set(p)
	}
	return s.boxes.Build(boxes)
}

// Neighbors returns the ids of indexed points inside the query box.
func (s *OverlapSearcher) Neighbors(query Point) []int {
	var box AABB
	box.Set(query)
	box.Grow(s.radius)
	return s.boxes.Overlaps(box)
}

package spatial

import (
	"fmt"
	"math"
	"sort"
)

// DefaultLeafSize is the KD-tree leaf size used when none is configured.
const DefaultLeafSize = 16

// kdNode describes a contiguous range of the permutation array.
type kdNode struct {
	start, end int
	leaf       bool
}

// KDTree is a static KD-tree over the points of a PointCloud. Coordinates
// are copied into a flat row-major array and reordered internally via a
// permutation array. The cloud is retained for exact radius tests and to
// report point indexes, so it must outlive the tree.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - node bounds are stored as min/max per dimension per node
type KDTree struct {
	cloud    *PointCloud
	data     []float64 // flat row-major coordinates (n * dims)
	n        int
	dims     int
	leafSize int
	idxArray []int // permutation: tree-order position -> cloud slot
	nodes    []kdNode
	// boundsMin[node*dims + j] = min value of coordinate j in node
	boundsMin []float64
	// boundsMax[node*dims + j] = max value of coordinate j in node
	boundsMax []float64
}

// NewKDTree builds a KD-tree over cloud. leafSize controls the maximum number
// of points per leaf; values below 1 are treated as 1. All points must share
// the dimension of the first one.
func NewKDTree(cloud *PointCloud, leafSize int) *KDTree {
	if leafSize < 1 {
		leafSize = 1
	}
	n := cloud.Len()
	dims := 0
	if n > 0 {
		dims = cloud.Point(0).Dimension()
	}

	data := make([]float64, 0, n*dims)
	for _, p := range cloud.Points() {
		if p.Dimension() != dims {
			panic(fmt.Sprintf("spatial: point dimension mismatch: %d vs %d", p.Dimension(), dims))
		}
		data = append(data, p.Coords...)
	}
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize)
	t := &KDTree{
		cloud:     cloud,
		data:      data,
		n:         n,
		dims:      dims,
		leafSize:  leafSize,
		idxArray:  idxArray,
		nodes:     make([]kdNode, maxNodes),
		boundsMin: make([]float64, maxNodes*dims),
		boundsMax: make([]float64, maxNodes*dims),
	}
	if n > 0 {
		t.buildNode(0, 0, n)
	}
	return t
}

// kdMaxNodes returns the size of a complete binary tree deep enough for n
// points with the given leaf size under median splits.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	for v := 1; v < leaves; v *= 2 {
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2 // +2 for safety margin
}

// buildNode recursively builds the tree for points idxArray[start:end].
func (t *KDTree) buildNode(nodeID, start, end int) {
	// Grow arrays if needed (shouldn't happen with the upper bound).
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, kdNode{})
		t.boundsMin = append(t.boundsMin, make([]float64, t.dims)...)
		t.boundsMax = append(t.boundsMax, make([]float64, t.dims)...)
	}

	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = kdNode{start: start, end: end, leaf: true}
		return
	}

	// Split on the dimension with the greatest spread.
	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < t.dims; d++ {
		spread := t.boundsMax[nodeID*t.dims+d] - t.boundsMin[nodeID*t.dims+d]
		if spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}

	t.sortByDimension(start, end, splitDim)
	mid := start + count/2

	t.nodes[nodeID] = kdNode{start: start, end: end}
	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

func (t *KDTree) computeNodeBounds(nodeID, start, end int) {
	base := nodeID * t.dims
	for d := 0; d < t.dims; d++ {
		t.boundsMin[base+d] = math.Inf(1)
		t.boundsMax[base+d] = math.Inf(-1)
	}
	for i := start; i < end; i++ {
		row := t.row(t.idxArray[i])
		for d, v := range row {
			t.boundsMin[base+d] = math.Min(t.boundsMin[base+d], v)
			t.boundsMax[base+d] = math.Max(t.boundsMax[base+d], v)
		}
	}
}

func (t *KDTree) sortByDimension(start, end, dim int) {
	sub := t.idxArray[start:end]
	dims := t.dims
	data := t.data
	sort.Slice(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}

func (t *KDTree) row(slot int) []float64 {
	return t.data[slot*t.dims : (slot+1)*t.dims]
}

// Len returns the number of indexed points.
func (t *KDTree) Len() int { return t.n }

// Dimension returns the dimensionality of the indexed points.
func (t *KDTree) Dimension() int { return t.dims }

// Nearest returns the cloud slot of the point closest to query and its
// distance. On exact ties the higher slot wins, matching BruteForceNearest.
// ok is false for an empty tree.
func (t *KDTree) Nearest(query Point) (slot int, dist float64, ok bool) {
	if t.n == 0 {
		return 0, 0, false
	}
	t.checkQuery(query)
	best := kdBest{slot: -1, rdist: math.Inf(1)}
	t.nearest(0, query.Coords, &best)
	return best.slot, math.Sqrt(best.rdist), true
}

type kdBest struct {
	slot  int
	rdist float64
}

func (t *KDTree) nearest(nodeID int, query []float64, best *kdBest) {
	node := t.nodes[nodeID]
	if node.leaf {
		for i := node.start; i < node.end; i++ {
			slot := t.idxArray[i]
			d := reducedDistance(query, t.row(slot))
			if d < best.rdist || (d == best.rdist && slot > best.slot) {
				best.slot, best.rdist = slot, d
			}
		}
		return
	}

	// Visit the nearer child first.
	left, right := 2*nodeID+1, 2*nodeID+2
	leftRdist := t.minRdistPoint(left, query)
	rightRdist := t.minRdistPoint(right, query)

	near, far := left, right
	nearRdist, farRdist := leftRdist, rightRdist
	if rightRdist < leftRdist {
		near, far = right, left
		nearRdist, farRdist = rightRdist, leftRdist
	}

	// Equal bounds are still visited so ties can resolve to the higher slot.
	if nearRdist <= best.rdist {
		t.nearest(near, query, best)
	}
	if farRdist <= best.rdist {
		t.nearest(far, query, best)
	}
}

// WithinRadius returns the cloud slots of every point whose distance to
// query is at most radius.
func (t *KDTree) WithinRadius(query Point, radius float64) []int {
	if t.n == 0 {
		return nil
	}
	t.checkQuery(query)
	var out []int
	t.withinRadius(0, query, radius, pruneBound(radius), &out)
	return out
}

func (t *KDTree) withinRadius(nodeID int, query Point, radius, rdist float64, out *[]int) {
	if t.minRdistPoint(nodeID, query.Coords) > rdist {
		return
	}
	node := t.nodes[nodeID]
	if !node.leaf {
		t.withinRadius(2*nodeID+1, query, radius, rdist, out)
		t.withinRadius(2*nodeID+2, query, radius, rdist, out)
		return
	}
	for i := node.start; i < node.end; i++ {
		slot := t.idxArray[i]
		// Point.Distance keeps the boundary decision identical to the
		// brute-force searchers.
		if query.Distance(t.cloud.Point(slot)) <= radius {
			*out = append(*out, slot)
		}
	}
}

// pruneBound returns the squared-distance cutoff for pruning subtrees in a
// radius search. It sits slightly above radius² so that no point accepted by
// Point.Distance is pruned by the differently rounded squared bound.
func pruneBound(radius float64) float64 {
	return radius * radius * (1 + 1e-9)
}

// minRdistPoint returns a lower bound on the squared distance between point
// and any point in the given node.
func (t *KDTree) minRdistPoint(node int, point []float64) float64 {
	base := node * t.dims
	var rdist float64
	for j, v := range point {
		lo := t.boundsMin[base+j]
		hi := t.boundsMax[base+j]
		var d float64
		if v < lo {
			d = lo - v
		} else if v > hi {
			d = v - hi
		}
		rdist += d * d
	}
	return rdist
}

func (t *KDTree) checkQuery(query Point) {
	if query.Dimension() != t.dims {
		panic(fmt.Sprintf("spatial: point dimension mismatch: %d vs %d", query.Dimension(), t.dims))
	}
}

// reducedDistance is the squared Euclidean distance.
func reducedDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// KDTreeNearest adapts KDTree to NearestSearcher.
type KDTreeNearest struct {
	leafSize int
	tree     *KDTree
}

// NewKDTreeNearest returns an empty KD-tree nearest searcher.
func NewKDTreeNearest(leafSize int) *KDTreeNearest {
	return &KDTreeNearest{leafSize: leafSize}
}

// Build constructs the tree over cloud.
func (s *KDTreeNearest) Build(cloud *PointCloud) error {
	s.tree = NewKDTree(cloud, s.leafSize)
	return nil
}

// Nearest returns the Index of the closest indexed point.
func (s *KDTreeNearest) Nearest(query Point) (int, bool) {
	if s.tree == nil {
		return 0, false
	}
	slot, _, ok := s.tree.Nearest(query)
	if !ok {
		return 0, false
	}
	return s.tree.cloud.Point(slot).Index, true
}

// KDTreeFixedRadius adapts KDTree to FixedRadiusSearcher.
type KDTreeFixedRadius struct {
	leafSize int
	radius   float64
	tree     *KDTree
}

// NewKDTreeFixedRadius returns an empty KD-tree radius searcher.
func NewKDTreeFixedRadius(leafSize int) *KDTreeFixedRadius {
	return &KDTreeFixedRadius{leafSize: leafSize}
}

// Build constructs the tree over cloud for queries of the given radius.
func (s *KDTreeFixedRadius) Build(cloud *PointCloud, radius float64) error {
	if err := checkRadius(radius); err != nil {
		return err
	}
	s.radius = radius
	s.tree = NewKDTree(cloud, s.leafSize)
	return nil
}

// Neighbors returns the Index of every indexed point within the radius.
func (s *KDTreeFixedRadius) Neighbors(query Point) []int {
	if s.tree == nil {
		return nil
	}
	slots := s.tree.WithinRadius(query, s.radius)
	for i, slot := range slots {
		slots[i] = s.tree.cloud.Point(slot).Index
	}
	return slots
}

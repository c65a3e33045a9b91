package spatial

import "fmt"

// disjointSet is a union-find over 0..n-1 with path compression and union
// by size.
type disjointSet struct {
	parent []int
	size   []int
}

func newDisjointSet(n int) *disjointSet {
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = -1 // root
		size[i] = 1
	}
	return &disjointSet{parent: parent, size: size}
}

func (d *disjointSet) find(x int) int {
	root := x
	for d.parent[root] != -1 {
		root = d.parent[root]
	}
	for d.parent[x] != -1 {
		x, d.parent[x] = d.parent[x], root
	}
	return root
}

func (d *disjointSet) union(x, y int) {
	rx, ry := d.find(x), d.find(y)
	if rx == ry {
		return
	}
	if d.size[rx] < d.size[ry] {
		rx, ry = ry, rx
	}
	d.parent[ry] = rx
	d.size[rx] += d.size[ry]
}

// NeighborComponents groups the points of cloud into connected components
// of the fixed-radius neighbor graph: two points share a component when a
// chain of points links them with every step within the radius s was built
// with. s must already be built over cloud.
//
// labels[i] is the component of cloud.Point(i). Components are numbered
// from 0 in order of first appearance. Point indexes must be unique within
// the cloud.
//
// Searchers that answer the exact Euclidean radius give identical results.
// An OverlapSearcher links every pair inside the query box, a superset of
// the ball, so it can merge components the exact searchers keep apart.
func NeighborComponents(s FixedRadiusSearcher, cloud *PointCloud) (labels []int, count int, err error) {
	n := cloud.Len()
	slotOf := make(map[int]int, n)
	for slot, p := range cloud.Points() {
		if _, dup := slotOf[p.Index]; dup {
			return nil, 0, fmt.Errorf("%w: %d", ErrDuplicateIndex, p.Index)
		}
		slotOf[p.Index] = slot
	}

	ds := newDisjointSet(n)
	for slot, p := range cloud.Points() {
		for _, idx := range s.Neighbors(p) {
			if other, ok := slotOf[idx]; ok {
				ds.union(slot, other)
			}
		}
	}

	labels = make([]int, n)
	byRoot := make(map[int]int)
	for slot := range labels {
		root := ds.find(slot)
		label, ok := byRoot[root]
		if !ok {
			label = len(byRoot)
			byRoot[root] = label
		}
		labels[slot] = label
	}
	return labels, len(byRoot), nil
}

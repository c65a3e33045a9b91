package spatial

import "fmt"

// PointCloud owns an ordered collection of points. Slot order is insertion
// order; each point keeps whatever Index it was given.
//
// Searchers that index a PointCloud by slot (RadixGrid, the brute-force point
// searchers, KDTree) read it on every query, so it must not be modified while
// such an index is in use.
type PointCloud struct {
	points []Point
}

// NewPointCloud returns a cloud holding the given points.
func NewPointCloud(points ...Point) *PointCloud {
	c := &PointCloud{}
	c.Assign(points)
	return c
}

// Len returns the number of points.
func (c *PointCloud) Len() int { return len(c.points) }

// Point returns the point in slot i.
func (c *PointCloud) Point(i int) Point { return c.points[i] }

// Points returns the underlying slice. Callers must not modify it.
func (c *PointCloud) Points() []Point { return c.points }

// Assign replaces the whole contents of the cloud with a copy of points.
func (c *PointCloud) Assign(points []Point) {
	c.points = make([]Point, len(points))
	copy(c.points, points)
}

// Set replaces the point in slot i.
func (c *PointCloud) Set(i int, p Point) { c.points[i] = p }

// Append adds p at the end of the cloud.
func (c *PointCloud) Append(p Point) { c.points = append(c.points, p) }

// BoundingBox returns the box spanning the first three coordinates of all
// points. An empty cloud yields the degenerate box at the origin.
func (c *PointCloud) BoundingBox() AABB {
	if len(c.points) == 0 {
		return NewAABBAt(0, 0, 0)
	}
	p := c.points[0]
	box := NewAABBAt(p.Coords[0], p.Coords[1], p.Coords[2])
	for _, q := range c.points[1:] {
		box.GrowToInclude(q)
	}
	return box
}

// Subset returns a new cloud holding the points in the given slots, in the
// order given.
func (c *PointCloud) Subset(indices []int) *PointCloud {
	out := &PointCloud{points: make([]Point, 0, len(indices))}
	for _, i := range indices {
		out.points = append(out.points, c.points[i])
	}
	return out
}

// Select returns a new cloud holding the points whose mask entry is true.
// It panics if len(mask) != c.Len().
func (c *PointCloud) Select(mask []bool) *PointCloud {
	if len(mask) != len(c.points) {
		panic(fmt.Sprintf("spatial: selection mask length %d does not match cloud size %d", len(mask), len(c.points)))
	}
	out := &PointCloud{}
	for i, keep := range mask {
		if keep {
			out.points = append(out.points, c.points[i])
		}
	}
	return out
}

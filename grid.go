package spatial

import "math"

const (
	// maxCellIndex bounds integer cell coordinates on every axis.
	maxCellIndex = math.MaxInt32
	// cellIndexMargin is the headroom kept below maxCellIndex when the
	// cell size has to be widened.
	cellIndexMargin = 1024
)

type cellKey [3]int

// RadixGrid is a uniform grid for fixed-radius queries in 3D. Cells are
// radius wide, so the neighbors of a query point normally lie in the 3x3x3
// block of cells around it.
//
// Buckets store slots into the indexed PointCloud rather than copies of the
// points; the cloud must outlive the grid.
type RadixGrid struct {
	cloud  *PointCloud
	radius float64
	domain AABB
	step   [3]float64
	cells  map[cellKey][]int
}

// NewRadixGrid returns an empty grid.
func NewRadixGrid() *RadixGrid { return &RadixGrid{} }

// Build buckets every point of cloud. The queryable domain is the bounding
// box of the points grown by radius on every side.
//
// A radius of zero is allowed and finds only coincident points. When
// extent/radius would exceed the cell index range the cell size on that axis
// is widened to fit, which only adds candidates that the exact distance test
// then discards.
func (g *RadixGrid) Build(cloud *PointCloud, radius float64) error {
	if err := checkRadius(radius); err != nil {
		return err
	}
	g.cloud = cloud
	g.radius = radius

	g.domain = cloud.BoundingBox()
	if cloud.Len() > 0 {
		g.domain.Grow(radius)
	}
	g.step = [3]float64{
		cellStep(g.domain.MaxX-g.domain.MinX, radius),
		cellStep(g.domain.MaxY-g.domain.MinY, radius),
		cellStep(g.domain.MaxZ-g.domain.MinZ, radius),
	}

	g.cells = make(map[cellKey][]int)
	for slot, p := range cloud.Points() {
		key := g.cellOf(p)
		g.cells[key] = append(g.cells[key], slot)
	}
	return nil
}

// Neighbors returns the Index of every indexed point within the radius of
// query. Queries outside the domain return nothing.
func (g *RadixGrid) Neighbors(query Point) []int {
	if g.cells == nil || !g.domain.OverlapsPoint(query) {
		return nil
	}
	lo, hi := g.cellRange(query)

	var out []int
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				for _, slot := range g.cells[cellKey{x, y, z}] {
					p := g.cloud.Point(slot)
					if query.Distance(p) <= g.radius {
						out = append(out, p.Index)
					}
				}
			}
		}
	}
	return out
}

// Domain returns the queryable region.
func (g *RadixGrid) Domain() AABB { return g.domain }

// CellSize returns the cell edge length per axis.
func (g *RadixGrid) CellSize() [3]float64 { return g.step }

// NumCells returns the number of occupied cells.
func (g *RadixGrid) NumCells() int { return len(g.cells) }

func (g *RadixGrid) cellOf(p Point) cellKey {
	return cellKey{
		cellCoord(p.Coords[0], g.domain.MinX, g.step[0]),
		cellCoord(p.Coords[1], g.domain.MinY, g.step[1]),
		cellCoord(p.Coords[2], g.domain.MinZ, g.step[2]),
	}
}

// cellRange returns the first and last cells on each axis that can hold a
// point within the radius of query. Points exactly one radius apart may
// round into cells two apart, so the range comes from the query box edges.
func (g *RadixGrid) cellRange(query Point) (lo, hi cellKey) {
	mins := [3]float64{g.domain.MinX, g.domain.MinY, g.domain.MinZ}
	for a := range lo {
		v := query.Coords[a]
		lo[a] = cellCoord(v-g.radius, mins[a], g.step[a])
		hi[a] = cellCoord(v+g.radius, mins[a], g.step[a])
	}
	return lo, hi
}

// cellStep returns the cell size for an axis of the given extent.
func cellStep(extent, radius float64) float64 {
	// NaN (0/0) compares false and keeps the zero step.
	if extent/radius > maxCellIndex {
		return extent / (maxCellIndex - cellIndexMargin)
	}
	return radius
}

func cellCoord(v, lo, step float64) int {
	if step <= 0 {
		return 0
	}
	c := math.Floor((v - lo) / step)
	if c < 0 {
		return 0
	}
	if c > maxCellIndex {
		return maxCellIndex
	}
	return int(c)
}

package spatial

import (
	"fmt"
	"math"
)

// NoID marks an AABB that carries no caller id.
const NoID = -1

// AABB is a 3D axis-aligned bounding box with an optional caller id.
//
// All predicates are non-strict: boxes that only touch on a face, edge or
// corner overlap.
type AABB struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
	ID         int
}

// NewAABB returns the box with the given extents and no id.
func NewAABB(minX, maxX, minY, maxY, minZ, maxZ float64) AABB {
	return AABB{
		MinX: minX, MaxX: maxX,
		MinY: minY, MaxY: maxY,
		MinZ: minZ, MaxZ: maxZ,
		ID: NoID,
	}
}

// NewAABBAt returns the degenerate box at (x, y, z) with no id.
func NewAABBAt(x, y, z float64) AABB {
	return NewAABB(x, x, y, y, z, z)
}

// Union returns the smallest box containing a and b. The result has no id.
func Union(a, b AABB) AABB {
	return AABB{
		MinX: math.Min(a.MinX, b.MinX), MaxX: math.Max(a.MaxX, b.MaxX),
		MinY: math.Min(a.MinY, b.MinY), MaxY: math.Max(a.MaxY, b.MaxY),
		MinZ: math.Min(a.MinZ, b.MinZ), MaxZ: math.Max(a.MaxZ, b.MaxZ),
		ID: NoID,
	}
}

// Overlaps reports whether b and o share at least one point.
func (b AABB) Overlaps(o AABB) bool {
	return b.OverlapsWithinTolerance(o, 0)
}

// OverlapsWithinTolerance is Overlaps with every separation test relaxed by
// tol, so boxes up to tol apart on each axis still overlap.
func (b AABB) OverlapsWithinTolerance(o AABB, tol float64) bool {
	if b.MaxX < o.MinX-tol || o.MaxX < b.MinX-tol {
		return false
	}
	if b.MaxY < o.MinY-tol || o.MaxY < b.MinY-tol {
		return false
	}
	if b.MaxZ < o.MinZ-tol || o.MaxZ < b.MinZ-tol {
		return false
	}
	return true
}

// OverlapsPoint reports whether the first three coordinates of p lie in b.
func (b AABB) OverlapsPoint(p Point) bool {
	return b.OverlapsPointWithinTolerance(p, 0)
}

// OverlapsPointWithinTolerance treats p as a degenerate box.
func (b AABB) OverlapsPointWithinTolerance(p Point, tol float64) bool {
	x, y, z := p.Coords[0], p.Coords[1], p.Coords[2]
	return b.OverlapsWithinTolerance(NewAABBAt(x, y, z), tol)
}

// Contains reports whether small lies entirely inside b.
func (b AABB) Contains(small AABB) bool {
	return b.MinX <= small.MinX && small.MaxX <= b.MaxX &&
		b.MinY <= small.MinY && small.MaxY <= b.MaxY &&
		b.MinZ <= small.MinZ && small.MaxZ <= b.MaxZ
}

// Grow moves every face of b outward by g.
func (b *AABB) Grow(g float64) {
	b.MinX -= g
	b.MaxX += g
	b.MinY -= g
	b.MaxY += g
	b.MinZ -= g
	b.MaxZ += g
}

// GrowToInclude expands b so that it covers p.
func (b *AABB) GrowToInclude(p Point) {
	x, y, z := p.Coords[0], p.Coords[1], p.Coords[2]
	b.MinX, b.MaxX = math.Min(b.MinX, x), math.Max(b.MaxX, x)
	b.MinY, b.MaxY = math.Min(b.MinY, y), math.Max(b.MaxY, y)
	b.MinZ, b.MaxZ = math.Min(b.MinZ, z), math.Max(b.MaxZ, z)
}

// Set resets b to the degenerate box at p and takes p's index as its id.
func (b *AABB) Set(p Point) {
	*b = NewAABBAt(p.Coords[0], p.Coords[1], p.Coords[2])
	b.ID = p.Index
}

// Center returns the midpoint of b as a 3D point with Index 0.
func (b AABB) Center() Point {
	return Point{Coords: []float64{
		(b.MinX + b.MaxX) / 2,
		(b.MinY + b.MaxY) / 2,
		(b.MinZ + b.MaxZ) / 2,
	}}
}

// Valid reports whether min <= max on every axis.
func (b AABB) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY && b.MinZ <= b.MaxZ
}

func (b AABB) String() string {
	return fmt.Sprintf("AABB(%d x[%g,%g] y[%g,%g] z[%g,%g])",
		b.ID, b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ)
}

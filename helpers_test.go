package spatial

import (
	"math/rand"
	"sort"
)

// fixtureCloud is the canonical five-point cloud used with radius 1.
func fixtureCloud() *PointCloud {
	return NewPointCloud(
		NewPoint(0, 0, 0, 0),
		NewPoint(1, 1, 0, 0),
		NewPoint(2, 0, 1, 0),
		NewPoint(3, 0, 0, 1.1),
		NewPoint(4, 0, 0, 1.3),
	)
}

// randomPoints returns n points uniform in the unit cube, indexed 0..n-1.
func randomPoints(rng *rand.Rand, n int) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = NewPoint(i, rng.Float64(), rng.Float64(), rng.Float64())
	}
	return points
}

// randomBoxes returns n boxes inside the unit cube with edges up to maxEdge,
// with ids 0..n-1.
func randomBoxes(rng *rand.Rand, n int, maxEdge float64) []AABB {
	boxes := make([]AABB, n)
	for i := range boxes {
		var lo, hi [3]float64
		for a := range lo {
			lo[a] = rng.Float64() * (1 - maxEdge)
			hi[a] = lo[a] + rng.Float64()*maxEdge
		}
		boxes[i] = NewAABB(lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
		boxes[i].ID = i
	}
	return boxes
}

// sortedIDs returns a sorted, non-nil copy of ids for order-independent
// comparison.
func sortedIDs(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	sort.Ints(out)
	return out
}

// latticeCloud returns an nx*ny*nz lattice with spacing step, indexed in
// x-major order. Coordinates are float64(i)*step so neighbors sit exactly
// one step apart up to rounding.
func latticeCloud(nx, ny, nz int, step float64) *PointCloud {
	cloud := NewPointCloud()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				cloud.Append(NewPoint(cloud.Len(), float64(i)*step, float64(j)*step, float64(k)*step))
			}
		}
	}
	return cloud
}

package spatial

import (
	"math"
	"sort"
)

// mortonResolution is the number of quantization steps per axis (10 bits).
const mortonResolution = 1024

// expandBits spreads the low 10 bits of v so that two zero bits separate
// each original bit.
func expandBits(v uint32) uint32 {
	v = (v * 0x00010001) & 0xFF0000FF
	v = (v * 0x00000101) & 0x0F00F00F
	v = (v * 0x00000011) & 0xC30C30C3
	v = (v * 0x00000005) & 0x49249249
	return v
}

// quantize maps t in [0,1] onto [0, mortonResolution), clamping outliers.
func quantize(t float64) uint32 {
	v := t * mortonResolution
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > mortonResolution-1 {
		return mortonResolution - 1
	}
	return uint32(v)
}

// mortonCode returns the 30-bit Z-order key of a point whose coordinates
// have been normalized into [0,1].
func mortonCode(x, y, z float64) uint32 {
	xx := expandBits(quantize(x))
	yy := expandBits(quantize(y))
	zz := expandBits(quantize(z))
	return xx<<2 | yy<<1 | zz
}

// mortonOrder returns the permutation of boxes sorted by the Morton key of
// their min corner, normalized against the extent of all min corners.
// Equal keys keep their input order.
func mortonOrder(boxes []AABB) []int {
	lo := NewAABBAt(boxes[0].MinX, boxes[0].MinY, boxes[0].MinZ)
	for _, b := range boxes[1:] {
		lo.GrowToInclude(Point{Coords: []float64{b.MinX, b.MinY, b.MinZ}})
	}

	keys := make([]uint32, len(boxes))
	for i, b := range boxes {
		keys[i] = mortonCode(
			normalize(b.MinX, lo.MinX, lo.MaxX),
			normalize(b.MinY, lo.MinY, lo.MaxY),
			normalize(b.MinZ, lo.MinZ, lo.MaxZ),
		)
	}

	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return keys[order[i]] < keys[order[j]]
	})
	return order
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

package spatial

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint_Basics(t *testing.T) {
	p := NewPoint(7, 1, 2, 3, 4)
	assert.Equal(t, 4, p.Dimension())
	assert.Equal(t, 3.0, p.At(2))
	assert.Equal(t, 7, p.Index)

	assert.Panics(t, func() { p.At(4) })
}

func TestPoint_NewPointCopiesCoords(t *testing.T) {
	coords := []float64{1, 2, 3}
	p := NewPoint(0, coords...)
	coords[0] = 99
	assert.Equal(t, 1.0, p.At(0))
}

func TestPoint_Distance(t *testing.T) {
	a := NewPoint(0, 0, 0, 0)
	b := NewPoint(1, 3, 4, 0)
	assert.InDelta(t, 5.0, a.Distance(b), 1e-12)
	assert.InDelta(t, 5.0, b.Distance(a), 1e-12)
	assert.Equal(t, 0.0, a.Distance(a))

	// Dimension-generic.
	assert.InDelta(t, 2.0, NewPoint(0, 1, 1, 1, 1).Distance(NewPoint(0, 0, 0, 0, 0)), 1e-12)
}

func TestPoint_DistanceDimensionMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewPoint(0, 1, 2).Distance(NewPoint(0, 1, 2, 3))
	})
}

func TestPoint_Arithmetic(t *testing.T) {
	a := NewPoint(5, 1, 2, 3)
	b := NewPoint(6, 0.5, 0.5, 0.5)

	sum := a.Add(b)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, sum.Coords)
	assert.Equal(t, 0, sum.Index)

	diff := a.Sub(b)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, diff.Coords)
	assert.Equal(t, 0, diff.Index)

	scaled := a.Scale(2)
	assert.Equal(t, []float64{2, 4, 6}, scaled.Coords)
	assert.Equal(t, 0, scaled.Index)

	// Operands are untouched.
	assert.Equal(t, []float64{1, 2, 3}, a.Coords)
	assert.Panics(t, func() { a.Add(NewPoint(0, 1)) })
	assert.Panics(t, func() { a.Sub(NewPoint(0, 1)) })
}

func TestPoint_Set(t *testing.T) {
	shared := []float64{1, 2, 3}
	p := Point{Index: 1, Coords: shared}
	q := p

	p.Set(9, []float64{4, 5})
	assert.Equal(t, 9, p.Index)
	assert.Equal(t, []float64{4, 5}, p.Coords)
	// A copy taken before Set keeps its coordinates.
	assert.Equal(t, []float64{1, 2, 3}, q.Coords)
}

func TestPoint_SetPacked(t *testing.T) {
	buf := make([]byte, 0, 12)
	for _, v := range []float32{1.5, -2, 0.25} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}

	var p Point
	require.NoError(t, p.SetPacked(3, buf))
	assert.Equal(t, 3, p.Index)
	assert.Equal(t, []float64{1.5, -2, 0.25}, p.Coords)

	err := p.SetPacked(4, buf[:8])
	require.ErrorIs(t, err, ErrInvalidPointBuffer)
	// Failed decode leaves the point unchanged.
	assert.Equal(t, 3, p.Index)
}

package spatial

import (
	"encoding/binary"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// packedPointSize is the byte length of three packed float32 coordinates.
const packedPointSize = 12

// Point is an identified coordinate vector of arbitrary dimension.
// Index is a caller-assigned id and is not required to be unique.
type Point struct {
	Index  int
	Coords []float64
}

// NewPoint returns a Point with the given index and a copy of coords.
func NewPoint(index int, coords ...float64) Point {
	c := make([]float64, len(coords))
	copy(c, coords)
	return Point{Index: index, Coords: c}
}

// Dimension returns the number of coordinates.
func (p Point) Dimension() int { return len(p.Coords) }

// At returns coordinate i. It panics if i is out of range.
func (p Point) At(i int) float64 { return p.Coords[i] }

// Distance returns the Euclidean distance between p and other.
// It panics if the dimensions differ.
func (p Point) Distance(other Point) float64 {
	mustSameDimension(p, other)
	return floats.Distance(p.Coords, other.Coords, 2)
}

// Add returns the elementwise sum. The result has Index 0.
func (p Point) Add(other Point) Point {
	mustSameDimension(p, other)
	return Point{Coords: floats.AddTo(make([]float64, len(p.Coords)), p.Coords, other.Coords)}
}

// Sub returns the elementwise difference p - other. The result has Index 0.
func (p Point) Sub(other Point) Point {
	mustSameDimension(p, other)
	return Point{Coords: floats.SubTo(make([]float64, len(p.Coords)), p.Coords, other.Coords)}
}

// Scale returns p multiplied by c. The result has Index 0.
func (p Point) Scale(c float64) Point {
	return Point{Coords: floats.ScaleTo(make([]float64, len(p.Coords)), c, p.Coords)}
}

// Set replaces both the index and the coordinates.
func (p *Point) Set(index int, coords []float64) {
	p.Index = index
	p.Coords = append([]float64(nil), coords...)
}

// SetPacked replaces the point with a 3D point decoded from buf, which must
// hold exactly three little-endian float32 values.
func (p *Point) SetPacked(index int, buf []byte) error {
	if len(buf) != packedPointSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPointBuffer, len(buf), packedPointSize)
	}
	coords := make([]float64, 3)
	for i := range coords {
		bits := binary.LittleEndian.Uint32(buf[i*4:])
		coords[i] = float64(math.Float32frombits(bits))
	}
	p.Index = index
	p.Coords = coords
	return nil
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("Point(%d %v)", p.Index, p.Coords)
}

func mustSameDimension(a, b Point) {
	if len(a.Coords) != len(b.Coords) {
		panic(fmt.Sprintf("spatial: point dimension mismatch: %d vs %d", len(a.Coords), len(b.Coords)))
	}
}

package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/TrevorS/spatial"
)

// ErrShortBuffer is returned when a payload ends before a value is complete.
var ErrShortBuffer = errors.New("transport: short buffer")

// boxSize is the encoded size of an AABB: six float64 extents and an int64 id.
const boxSize = 6*8 + 8

// AppendPoint appends the encoding of p to dst: id (int64), dimension
// (uint32), then each coordinate (float64), all little-endian.
func AppendPoint(dst []byte, p spatial.Point) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, uint64(int64(p.Index)))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(p.Coords)))
	for _, v := range p.Coords {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	}
	return dst
}

// DecodePoint decodes one point from the front of buf and returns the rest.
func DecodePoint(buf []byte) (spatial.Point, []byte, error) {
	if len(buf) < 12 {
		return spatial.Point{}, nil, fmt.Errorf("%w: point header", ErrShortBuffer)
	}
	index := int(int64(binary.LittleEndian.Uint64(buf)))
	dims := int(binary.LittleEndian.Uint32(buf[8:]))
	buf = buf[12:]
	if len(buf) < dims*8 {
		return spatial.Point{}, nil, fmt.Errorf("%w: %d coordinates", ErrShortBuffer, dims)
	}
	coords := make([]float64, dims)
	for i := range coords {
		coords[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return spatial.Point{Index: index, Coords: coords}, buf[dims*8:], nil
}

// AppendCloud appends the point count (uint32) followed by every point.
func AppendCloud(dst []byte, c *spatial.PointCloud) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(c.Len()))
	for _, p := range c.Points() {
		dst = AppendPoint(dst, p)
	}
	return dst
}

// DecodeCloud decodes a point cloud from the front of buf.
func DecodeCloud(buf []byte) (*spatial.PointCloud, []byte, error) {
	if len(buf) < 4 {
		return nil, nil, fmt.Errorf("%w: cloud header", ErrShortBuffer)
	}
	n := int(binary.LittleEndian.Uint32(buf))
	buf = buf[4:]
	cloud := spatial.NewPointCloud()
	for i := 0; i < n; i++ {
		p, rest, err := DecodePoint(buf)
		if err != nil {
			return nil, nil, fmt.Errorf("point %d of %d: %w", i, n, err)
		}
		cloud.Append(p)
		buf = rest
	}
	return cloud, buf, nil
}

// AppendBox appends the six extents (float64, x/y/z min then max per axis)
// followed by the id (int64).
func AppendBox(dst []byte, b spatial.AABB) []byte {
	for _, v := range [6]float64{b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ} {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	}
	return binary.LittleEndian.AppendUint64(dst, uint64(int64(b.ID)))
}

// DecodeBox decodes one box from the front of buf.
func DecodeBox(buf []byte) (spatial.AABB, []byte, error) {
	if len(buf) < boxSize {
		return spatial.AABB{}, nil, fmt.Errorf("%w: box", ErrShortBuffer)
	}
	var v [6]float64
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	b := spatial.NewAABB(v[0], v[1], v[2], v[3], v[4], v[5])
	b.ID = int(int64(binary.LittleEndian.Uint64(buf[48:])))
	return b, buf[boxSize:], nil
}

package transport

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/TrevorS/spatial"
)

// SendPoint sends p to rank to.
func SendPoint(ctx context.Context, t Transport, to int, p spatial.Point) error {
	return t.Send(ctx, to, AppendPoint(nil, p))
}

// RecvPoint receives a point from rank from.
func RecvPoint(ctx context.Context, t Transport, from int) (spatial.Point, error) {
	buf, err := t.Recv(ctx, from)
	if err != nil {
		return spatial.Point{}, err
	}
	p, rest, err := DecodePoint(buf)
	if err != nil {
		return spatial.Point{}, err
	}
	return p, checkConsumed(rest)
}

// SendCloud sends c to rank to.
func SendCloud(ctx context.Context, t Transport, to int, c *spatial.PointCloud) error {
	return t.Send(ctx, to, AppendCloud(nil, c))
}

// RecvCloud receives a point cloud from rank from.
func RecvCloud(ctx context.Context, t Transport, from int) (*spatial.PointCloud, error) {
	buf, err := t.Recv(ctx, from)
	if err != nil {
		return nil, err
	}
	c, rest, err := DecodeCloud(buf)
	if err != nil {
		return nil, err
	}
	return c, checkConsumed(rest)
}

// SendBox sends b to rank to.
func SendBox(ctx context.Context, t Transport, to int, b spatial.AABB) error {
	return t.Send(ctx, to, AppendBox(nil, b))
}

// RecvBox receives a box from rank from.
func RecvBox(ctx context.Context, t Transport, from int) (spatial.AABB, error) {
	buf, err := t.Recv(ctx, from)
	if err != nil {
		return spatial.AABB{}, err
	}
	b, rest, err := DecodeBox(buf)
	if err != nil {
		return spatial.AABB{}, err
	}
	return b, checkConsumed(rest)
}

// AllGatherPoints gathers one point from every rank, indexed by rank.
func AllGatherPoints(ctx context.Context, t Transport, p spatial.Point) ([]spatial.Point, error) {
	parts, err := t.AllGather(ctx, AppendPoint(nil, p))
	if err != nil {
		return nil, err
	}
	out := make([]spatial.Point, len(parts))
	for rank, buf := range parts {
		q, rest, err := DecodePoint(buf)
		if err != nil {
			return nil, fmt.Errorf("rank %d: %w", rank, err)
		}
		if err := checkConsumed(rest); err != nil {
			return nil, fmt.Errorf("rank %d: %w", rank, err)
		}
		out[rank] = q
	}
	return out, nil
}

// AllGatherClouds gathers one point cloud from every rank, indexed by rank.
func AllGatherClouds(ctx context.Context, t Transport, c *spatial.PointCloud) ([]*spatial.PointCloud, error) {
	parts, err := t.AllGather(ctx, AppendCloud(nil, c))
	if err != nil {
		return nil, err
	}
	out := make([]*spatial.PointCloud, len(parts))
	for rank, buf := range parts {
		cloud, rest, err := DecodeCloud(buf)
		if err != nil {
			return nil, fmt.Errorf("rank %d: %w", rank, err)
		}
		if err := checkConsumed(rest); err != nil {
			return nil, fmt.Errorf("rank %d: %w", rank, err)
		}
		out[rank] = cloud
	}
	return out, nil
}

// AllGatherBoxes gathers every rank's boxes and concatenates them in rank
// order.
func AllGatherBoxes(ctx context.Context, t Transport, boxes []spatial.AABB) ([]spatial.AABB, error) {
	buf := binary.LittleEndian.AppendUint32(nil, uint32(len(boxes)))
	for _, b := range boxes {
		buf = AppendBox(buf, b)
	}
	parts, err := t.AllGather(ctx, buf)
	if err != nil {
		return nil, err
	}

	var out []spatial.AABB
	for rank, part := range parts {
		if len(part) < 4 {
			return nil, fmt.Errorf("rank %d: %w: box count", rank, ErrShortBuffer)
		}
		n := int(binary.LittleEndian.Uint32(part))
		part = part[4:]
		for i := 0; i < n; i++ {
			var b spatial.AABB
			b, part, err = DecodeBox(part)
			if err != nil {
				return nil, fmt.Errorf("rank %d box %d: %w", rank, i, err)
			}
			out = append(out, b)
		}
		if err := checkConsumed(part); err != nil {
			return nil, fmt.Errorf("rank %d: %w", rank, err)
		}
	}
	return out, nil
}

func checkConsumed(rest []byte) error {
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d bytes", ErrTrailingData, len(rest))
	}
	return nil
}

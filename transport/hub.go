package transport

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

const defaultQueueDepth = 16

type hubOptions struct {
	queueDepth int
	compress   bool
	level      zstd.EncoderLevel
}

// Option configures a Hub.
type Option func(*hubOptions)

// WithQueueDepth sets how many undelivered messages each rank pair buffers
// before Send blocks. Default: 16.
func WithQueueDepth(n int) Option {
	return func(o *hubOptions) { o.queueDepth = n }
}

// WithCompression zstd-compresses every frame at the given level.
func WithCompression(level zstd.EncoderLevel) Option {
	return func(o *hubOptions) {
		o.compress = true
		o.level = level
	}
}

// Hub connects size in-process ranks over buffered channels.
type Hub struct {
	size   int
	p2p    [][]chan []byte // [from][to]
	gather [][]chan []byte // [from][to], reserved for AllGather
	enc    *zstd.Encoder
	dec    *zstd.Decoder
}

// NewHub returns a hub of size ranks.
func NewHub(size int, opts ...Option) (*Hub, error) {
	if size < 1 {
		return nil, fmt.Errorf("transport: hub size must be >= 1, got %d", size)
	}
	o := hubOptions{queueDepth: defaultQueueDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.queueDepth < 1 {
		return nil, fmt.Errorf("transport: queue depth must be >= 1, got %d", o.queueDepth)
	}

	h := &Hub{
		size:   size,
		p2p:    newMailboxes(size, o.queueDepth),
		gather: newMailboxes(size, o.queueDepth),
	}
	if o.compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(o.level))
		if err != nil {
			return nil, fmt.Errorf("transport: zstd encoder: %w", err)
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			_ = enc.Close()
			return nil, fmt.Errorf("transport: zstd decoder: %w", err)
		}
		h.enc, h.dec = enc, dec
	}
	return h, nil
}

func newMailboxes(size, depth int) [][]chan []byte {
	m := make([][]chan []byte, size)
	for from := range m {
		m[from] = make([]chan []byte, size)
		for to := range m[from] {
			m[from][to] = make(chan []byte, depth)
		}
	}
	return m
}

// Size returns the number of ranks.
func (h *Hub) Size() int { return h.size }

// Endpoint returns the Transport for rank. It panics if rank is out of range.
func (h *Hub) Endpoint(rank int) Transport {
	if rank < 0 || rank >= h.size {
		panic(fmt.Sprintf("transport: rank %d out of range [0, %d)", rank, h.size))
	}
	return &endpoint{hub: h, rank: rank}
}

// Close releases the compression state. Endpoints must not be used after.
func (h *Hub) Close() error {
	if h.dec != nil {
		h.dec.Close()
	}
	if h.enc != nil {
		return h.enc.Close()
	}
	return nil
}

func (h *Hub) pack(payload []byte) []byte {
	if h.enc != nil {
		return h.enc.EncodeAll(payload, nil)
	}
	return append([]byte(nil), payload...)
}

func (h *Hub) unpack(frame []byte) ([]byte, error) {
	if h.dec == nil {
		return frame, nil
	}
	out, err := h.dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: zstd frame: %w", err)
	}
	return out, nil
}

type endpoint struct {
	hub  *Hub
	rank int
}

func (e *endpoint) Rank() int { return e.rank }
func (e *endpoint) Size() int { return e.hub.size }

func (e *endpoint) Send(ctx context.Context, to int, payload []byte) error {
	if err := e.checkRank(to); err != nil {
		return err
	}
	return send(ctx, e.hub.p2p[e.rank][to], e.hub.pack(payload))
}

func (e *endpoint) Recv(ctx context.Context, from int) ([]byte, error) {
	if err := e.checkRank(from); err != nil {
		return nil, err
	}
	return e.recv(ctx, e.hub.p2p[from][e.rank])
}

func (e *endpoint) AllGather(ctx context.Context, payload []byte) ([][]byte, error) {
	// A compressed frame is decoded into a fresh buffer by each receiver, so
	// one frame serves every peer. Uncompressed frames are delivered as-is
	// and need a copy per peer.
	compressed := e.hub.enc != nil
	var shared []byte
	if compressed {
		shared = e.hub.pack(payload)
	}
	for to := 0; to < e.hub.size; to++ {
		if to == e.rank {
			continue
		}
		frame := shared
		if !compressed {
			frame = e.hub.pack(payload)
		}
		if err := send(ctx, e.hub.gather[e.rank][to], frame); err != nil {
			return nil, err
		}
	}

	out := make([][]byte, e.hub.size)
	out[e.rank] = append([]byte(nil), payload...)
	for from := 0; from < e.hub.size; from++ {
		if from == e.rank {
			continue
		}
		p, err := e.recv(ctx, e.hub.gather[from][e.rank])
		if err != nil {
			return nil, err
		}
		out[from] = p
	}
	return out, nil
}

func (e *endpoint) recv(ctx context.Context, ch <-chan []byte) ([]byte, error) {
	select {
	case frame := <-ch:
		return e.hub.unpack(frame)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *endpoint) checkRank(r int) error {
	if r < 0 || r >= e.hub.size {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidRank, r, e.hub.size)
	}
	return nil
}

func send(ctx context.Context, ch chan<- []byte, frame []byte) error {
	select {
	case ch <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

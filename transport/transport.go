// Package transport moves points, point clouds and boxes between ranks of
// a distributed computation. It defines the wire encoding and a Transport
// abstraction with point-to-point and all-gather exchange; Hub is an
// in-process implementation.
package transport

import (
	"context"
	"errors"
)

var (
	// ErrInvalidRank is returned for a rank outside [0, Size()).
	ErrInvalidRank = errors.New("transport: invalid rank")

	// ErrTrailingData is returned when a payload holds more bytes than the
	// value decoded from it.
	ErrTrailingData = errors.New("transport: trailing data")
)

// Transport is one rank's view of a group of Size() ranks.
type Transport interface {
	// Rank returns this endpoint's rank.
	Rank() int

	// Size returns the number of ranks in the group.
	Size() int

	// Send delivers payload to rank to. Messages between a pair of ranks
	// arrive in order.
	Send(ctx context.Context, to int, payload []byte) error

	// Recv returns the next payload sent by rank from.
	Recv(ctx context.Context, from int) ([]byte, error)

	// AllGather contributes payload and returns every rank's contribution
	// indexed by rank. Every rank must call it.
	AllGather(ctx context.Context, payload []byte) ([][]byte, error)
}

// Package strbuf provides a growable byte buffer with an explicit logical
// size and total capacity, used as the destination for incremental encoders.
//
// Unlike bytes.Buffer, the writable region between the logical size and the
// total capacity is exposed directly, so encoders can attempt a write into
// the spare space, observe overflow, and retry after growth.
package strbuf

import (
	"errors"
	"fmt"
	"math"
)

// Error definitions for the strbuf package
var (
	// ErrCapacityLimit is returned when a grow request exceeds the buffer's
	// configured capacity limit. It stands in for allocator exhaustion, which
	// Go programs cannot observe directly.
	ErrCapacityLimit = errors.New("buffer capacity limit exceeded")

	// ErrSizeOutOfRange is returned when Resize is called with a size that is
	// negative or larger than the current capacity.
	ErrSizeOutOfRange = errors.New("size out of range")
)

// Buffer is a growable byte buffer. The zero value is an empty buffer with
// no capacity and no limit.
//
// Invariant: 0 <= Len() <= Cap() <= limit.
type Buffer struct {
	buf   []byte // len(buf) == capacity
	size  int    // logical size
	limit int    // maximum capacity, 0 means unlimited
}

// New creates a buffer with the given initial capacity and no capacity limit.
func New(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, capacity)}
}

// NewWithLimit creates a buffer with the given initial capacity that will
// refuse to grow beyond limit bytes.
func NewWithLimit(capacity, limit int) *Buffer {
	if capacity > limit {
		capacity = limit
	}
	return &Buffer{buf: make([]byte, capacity), limit: limit}
}

// Len returns the logical size of the buffer contents.
func (b *Buffer) Len() int { return b.size }

// Cap returns the total capacity of the buffer.
func (b *Buffer) Cap() int { return len(b.buf) }

// Tail returns the writable spare region, from the logical size to the total
// capacity. Writes into it become visible once committed with Resize.
func (b *Buffer) Tail() []byte { return b.buf[b.size:] }

// Bytes returns the buffer contents up to the logical size. The returned
// slice aliases the buffer and is invalidated by Grow.
func (b *Buffer) Bytes() []byte { return b.buf[:b.size] }

// String returns a copy of the buffer contents as a string.
func (b *Buffer) String() string { return string(b.buf[:b.size]) }

// Grow ensures the total capacity is at least n bytes, preserving contents.
// It fails only when n exceeds the configured capacity limit.
func (b *Buffer) Grow(n int) error {
	capLimit := b.limit
	if capLimit == 0 {
		capLimit = math.MaxInt
	}
	if n > capLimit {
		return fmt.Errorf("cannot grow to %d bytes (limit %d): %w", n, capLimit, ErrCapacityLimit)
	}
	if n <= len(b.buf) {
		return nil
	}
	grown := make([]byte, n)
	copy(grown, b.buf[:b.size])
	b.buf = grown
	return nil
}

// Resize commits a new logical size. The contents of the spare region up to
// the new size (written via Tail) become part of the buffer contents.
func (b *Buffer) Resize(n int) error {
	if n < 0 || n > len(b.buf) {
		return fmt.Errorf("resize to %d with capacity %d: %w", n, len(b.buf), ErrSizeOutOfRange)
	}
	b.size = n
	return nil
}

// Reset sets the logical size to zero, keeping the allocated capacity.
func (b *Buffer) Reset() { b.size = 0 }

// Package pool provides reusable byte buffers for the text and binary encoders.
package pool

import (
	"sync"
)

const (
	CellBufferDefaultSize  = 1024      // 1KiB, a typical row-group cell
	CellBufferMaxThreshold = 1024 * 64 // 64KiB, larger buffers are not pooled
)

// ByteBuffer is an append-only byte slice with explicit growth.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the written bytes. The slice aliases the buffer.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of written bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures room for n more bytes without reallocating.
//
// Small buffers grow by CellBufferDefaultSize; larger ones by a quarter of their
// capacity. The result always fits n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := CellBufferDefaultSize
	if cap(bb.B) > 4*CellBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	grown := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(grown, bb.B)
	bb.B = grown
}

// Extend grows the buffer by n zeroed bytes and returns the extension.
func (bb *ByteBuffer) Extend(n int) []byte {
	bb.Grow(n)
	start := len(bb.B)
	bb.B = bb.B[:start+n]
	clear(bb.B[start:])

	return bb.B[start:]
}

// MustWrite appends data.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteString appends s.
func (bb *ByteBuffer) WriteString(s string) {
	bb.B = append(bb.B, s...)
}

// WriteByte appends c. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// ByteBufferPool recycles ByteBuffers and drops those that grew past maxThreshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial size.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get takes a buffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put resets bb and returns it to the pool.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var cellPool = NewByteBufferPool(CellBufferDefaultSize, CellBufferMaxThreshold)

// GetCellBuffer takes a buffer from the shared cell pool.
func GetCellBuffer() *ByteBuffer {
	return cellPool.Get()
}

// PutCellBuffer returns a buffer to the shared cell pool.
func PutCellBuffer(bb *ByteBuffer) {
	cellPool.Put(bb)
}

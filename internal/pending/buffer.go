// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pending holds decompressed bytes that have not been returned to
// the caller yet, together with the bytes the caller pushed back.
//
// The logical read order is: the pushback entries, the most recently pushed
// entry first and every entry consumed completely before the next one,
// followed by the queue in FIFO order.
package pending

import "io"

// compactLimit is the number of consumed queue bytes after which Append
// moves the unread bytes to the front of the queue.
const compactLimit = 64 << 10

// Buffer is the pending byte store. The zero value is an empty buffer ready
// for use.
type Buffer struct {
	// stack of pushed back entries; the top is the last element
	stack [][]byte
	// queue of decompressed bytes; queue[r:] is unread
	queue []byte
	r     int
}

// Len returns the number of pending bytes including the pushed back bytes.
func (b *Buffer) Len() int {
	n := len(b.queue) - b.r
	for _, p := range b.stack {
		n += len(p)
	}
	return n
}

// Reset discards all pending bytes.
func (b *Buffer) Reset() {
	b.stack = nil
	b.queue = b.queue[:0]
	b.r = 0
}

// Append adds p at the end of the queue. The bytes are copied.
func (b *Buffer) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	if b.r == len(b.queue) {
		b.queue = b.queue[:0]
		b.r = 0
	} else if b.r >= compactLimit && b.r >= len(b.queue)/2 {
		n := copy(b.queue, b.queue[b.r:])
		b.queue = b.queue[:n]
		b.r = 0
	}
	b.queue = append(b.queue, p...)
}

// Push pushes p back. The bytes of p will be returned before all other
// pending bytes. The bytes are copied.
func (b *Buffer) Push(p []byte) {
	if len(p) == 0 {
		return
	}
	q := make([]byte, len(p))
	copy(q, p)
	b.stack = append(b.stack, q)
}

// PushByte pushes a single byte back.
func (b *Buffer) PushByte(c byte) {
	b.stack = append(b.stack, []byte{c})
}

// Peek1 returns the next byte without consuming it. The flag ok is false if
// no byte is pending.
func (b *Buffer) Peek1() (c byte, ok bool) {
	for k := len(b.stack) - 1; k >= 0; k-- {
		if p := b.stack[k]; len(p) > 0 {
			return p[0], true
		}
	}
	if b.r < len(b.queue) {
		return b.queue[b.r], true
	}
	return 0, false
}

// ReadByte consumes one byte. It returns io.EOF if no byte is pending, which
// means that more data must be appended.
func (b *Buffer) ReadByte() (c byte, err error) {
	for k := len(b.stack) - 1; k >= 0; k-- {
		p := b.stack[k]
		if len(p) == 0 {
			b.stack = b.stack[:k]
			continue
		}
		c = p[0]
		if len(p) == 1 {
			b.stack = b.stack[:k]
		} else {
			b.stack[k] = p[1:]
		}
		return c, nil
	}
	if b.r < len(b.queue) {
		c = b.queue[b.r]
		b.r++
		return c, nil
	}
	return 0, io.EOF
}

// Take removes up to n bytes and returns them in a new slice. The result is
// empty if nothing is pending.
func (b *Buffer) Take(n int) []byte {
	if m := b.Len(); n > m {
		n = m
	}
	if n <= 0 {
		return []byte{}
	}
	p := make([]byte, 0, n)
	for len(p) < n && len(b.stack) > 0 {
		k := len(b.stack) - 1
		e := b.stack[k]
		i := copy(p[len(p):n], e)
		p = p[:len(p)+i]
		if i == len(e) {
			b.stack = b.stack[:k]
		} else {
			b.stack[k] = e[i:]
		}
	}
	if len(p) < n {
		i := n - len(p)
		p = append(p, b.queue[b.r:b.r+i]...)
		b.r += i
	}
	return p
}

// flatten moves the pushback entries in front of the unread queue bytes, so
// that all pending bytes are contiguous.
func (b *Buffer) flatten() {
	if len(b.stack) == 0 {
		return
	}
	n := 0
	for _, e := range b.stack {
		n += len(e)
	}
	q := make([]byte, 0, n+len(b.queue)-b.r)
	for k := len(b.stack) - 1; k >= 0; k-- {
		q = append(q, b.stack[k]...)
	}
	q = append(q, b.queue[b.r:]...)
	b.stack = nil
	b.queue = q
	b.r = 0
}

// Bytes returns all pending bytes in logical order as contiguous slice. The
// slice is only valid until the next modification of the buffer.
func (b *Buffer) Bytes() []byte {
	b.flatten()
	return b.queue[b.r:]
}

// Next removes the next n bytes and returns them in a new slice. It panics if
// fewer than n bytes are pending.
func (b *Buffer) Next(n int) []byte {
	if n < 0 || n > b.Len() {
		panic("pending: next count out of range")
	}
	return b.Take(n)
}

// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import (
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"

	"github.com/ulikunitz/bz2/internal/stream"
	"github.com/ulikunitz/bz2/xlog"
)

// headerLen is the length of the bzip2 component header "BZh" plus the
// block size digit.
const headerLen = 4

// validHeader checks whether p starts with a bzip2 component header.
func validHeader(p []byte) bool {
	return len(p) >= headerLen && bytes.HasPrefix(p, []byte("BZh")) &&
		'1' <= p[3] && p[3] <= '9'
}

// cursor reads the decompressed data of one component at a time. The
// decoder is opened lazily by the first pull.
type cursor struct {
	src *stream.Source
	dec io.Reader
	buf []byte
	err error

	active    bool
	ended     bool
	exhausted bool

	// source offset at which the trailer check has been done last
	checked int64

	// number of the current component, starting with 1
	n   int
	log xlog.Logger
}

func newCursor(r io.Reader, chunkSize int, log xlog.Logger) *cursor {
	return &cursor{
		src: stream.NewSource(r),
		buf:     make([]byte, chunkSize),
		checked: -1,
		log:     log,
	}
}

// fail records the sticky error.
func (c *cursor) fail(err error) error {
	c.err = err
	xlog.Printf(c.log, "component %d failed at offset %d: %s",
		c.n, c.src.Offset(), err)
	return err
}

// open starts the decoding of the component at the current position.
// Exhausted input results in an ended component.
func (c *cursor) open() error {
	c.active = true
	ok, err := c.src.Exhausted()
	if err != nil {
		return c.fail(sourceError(err))
	}
	if ok {
		c.ended = true
		c.exhausted = true
		xlog.Printf(c.log, "input exhausted at offset %d",
			c.src.Offset())
		return nil
	}
	c.src.Begin()
	c.dec = bzip2.NewReader(c.src)
	c.n++
	xlog.Printf(c.log, "component %d opened at offset %d",
		c.n, c.src.Offset())
	return nil
}

// end marks the current component as ended.
func (c *cursor) end() {
	c.ended = true
	c.dec = nil
	xlog.Printf(c.log, "component %d ended at offset %d after %d bytes",
		c.n, c.src.Offset(), c.src.ComponentOffset())
}

// checkTrailer is called whenever the decoder returns data. A new source
// offset means that the decoder has read a complete block, so the data is
// only handed out if the input continues with the next block or a complete
// trailer.
func (c *cursor) checkTrailer() error {
	off := c.src.Offset()
	if off == c.checked {
		return nil
	}
	c.checked = off
	missing, err := c.src.TrailerMissing()
	if err != nil {
		return c.fail(sourceError(err))
	}
	if missing {
		return c.fail(fmt.Errorf("%w: missing end of component: %w",
			ErrTruncated, io.ErrUnexpectedEOF))
	}
	return nil
}

// pull returns up to max decompressed bytes. The flag end is set if the
// current component has ended; no bytes are returned in that case. The
// returned slice is only valid until the next call of pull.
func (c *cursor) pull(max int) (p []byte, end bool, err error) {
	if c.err != nil {
		return nil, false, c.err
	}
	if !c.active {
		if err = c.open(); err != nil {
			return nil, false, err
		}
	}
	if c.ended {
		return nil, true, nil
	}
	if max > len(c.buf) {
		max = len(c.buf)
	}
	if max <= 0 {
		return c.buf[:0], false, nil
	}
	for {
		n, err := c.dec.Read(c.buf[:max])
		switch {
		case err == io.EOF:
			c.end()
		case err != nil:
			c.fail(decodeError(err))
		}
		if n > 0 {
			if !c.ended && c.err == nil {
				if err = c.checkTrailer(); err != nil {
					return nil, false, err
				}
			}
			return c.buf[:n], false, nil
		}
		if c.err != nil {
			return nil, false, c.err
		}
		if c.ended {
			return nil, true, nil
		}
	}
}

// resume opens the component following an ended one. The bytes at the
// current position must start with a valid header, otherwise ErrFormat is
// returned and the unused tail stays untouched. Nothing is opened if the
// input is exhausted.
func (c *cursor) resume() error {
	if c.err != nil {
		return c.err
	}
	p, err := c.src.Peek(headerLen)
	if len(p) == 0 && err == io.EOF {
		c.active = true
		c.ended = true
		c.exhausted = true
		return nil
	}
	if len(p) < headerLen && err != nil && err != io.EOF {
		return c.fail(sourceError(err))
	}
	if !validHeader(p) {
		return fmt.Errorf("%w: invalid component header %q",
			ErrFormat, p)
	}
	c.active = false
	c.ended = false
	c.exhausted = false
	return c.open()
}

// inputExhausted reports whether no physical bytes remain.
func (c *cursor) inputExhausted() bool {
	if c.exhausted {
		return true
	}
	if c.err != nil {
		return false
	}
	ok, err := c.src.Exhausted()
	if err != nil {
		c.fail(sourceError(err))
		return false
	}
	return ok
}

// unused returns the raw bytes after the end of the current component. It
// returns nil if the component has not ended.
func (c *cursor) unused() []byte {
	if !c.ended {
		return nil
	}
	return c.src.Unused()
}

// setUnused replaces the raw bytes that haven't been decoded yet. The bytes
// of an active component cannot be replaced.
func (c *cursor) setUnused(p []byte) error {
	if c.active && !c.ended {
		return ErrActive
	}
	c.src.SetUnused(p)
	if len(p) > 0 {
		c.exhausted = false
	}
	return nil
}

// offset returns the number of raw bytes consumed by the decoder.
func (c *cursor) offset() int64 { return c.src.Offset() }

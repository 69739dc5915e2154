// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stream implements the physical side of a bzip2 reader. A [Source]
// hands the compressed bytes one at a time to the decoder, keeps track of the
// offset and finds the end of a compressed component.
//
// A bzip2 component ends with the 48-bit magic 0x177245385090 followed by
// the 32-bit combined CRC; the stream is then padded to a byte boundary. The
// magic is not byte aligned, so the Source scans the bit stream while it
// serves bytes. After a match it places a fence behind the padding. Reading
// at the fence returns io.EOF, which tells a decoder that no further
// component follows. All bytes after the fence stay unread and can be
// retrieved with [Source.Unused].
package stream

import (
	"errors"
	"io"
)

// EndMagic is the bit pattern introducing the trailer of a bzip2 component.
const EndMagic = 0x177245385090

// BlockMagic is the bit pattern introducing a compressed block.
const BlockMagic = 0x314159265359

const (
	magicBits  = 48
	crcBits    = 32
	headerBits = 32
	magicMask  = 1<<magicBits - 1
)

// lookahead is the number of bytes that contain the magic following a
// block together with the combined CRC.
const lookahead = (magicBits+crcBits)/8 + 2

// defaultBufferSize is the number of bytes requested from the underlying
// reader in one call.
const defaultBufferSize = 16 * 1024

// maxConsecutiveEmptyReads limits the number of zero-length reads without
// error that are accepted from the underlying reader.
const maxConsecutiveEmptyReads = 100

// Source is a byte reader over the compressed input with component boundary
// detection.
type Source struct {
	r   io.Reader
	buf []byte
	// buf[i:] contains the bytes read but not served
	i   int
	err error
	off int64

	// state of the current component
	n     int64
	reg   uint64
	fence int64
}

// NewSource creates a new Source reading from r. A component is started
// immediately.
func NewSource(r io.Reader) *Source {
	s := &Source{r: r}
	s.Begin()
	return s
}

// Begin starts a new component at the current position.
func (s *Source) Begin() {
	s.n = 0
	s.reg = 0
	s.fence = -1
}

// Offset returns the number of bytes served since the Source was created.
func (s *Source) Offset() int64 { return s.off }

// ComponentOffset returns the number of bytes served since the last call of
// Begin.
func (s *Source) ComponentOffset() int64 { return s.n }

// Ended reports whether the fence of the current component has been reached.
func (s *Source) Ended() bool { return s.fence >= 0 && s.n >= s.fence }

// buffered returns the number of bytes read but not served.
func (s *Source) buffered() int { return len(s.buf) - s.i }

// fill reads more data from the underlying reader and appends it to the
// buffer. It returns the error of the underlying reader.
func (s *Source) fill() error {
	if s.err != nil {
		return s.err
	}
	if s.i > 0 {
		n := copy(s.buf, s.buf[s.i:])
		s.buf = s.buf[:n]
		s.i = 0
	}
	if cap(s.buf)-len(s.buf) < defaultBufferSize/2 {
		b := make([]byte, len(s.buf), len(s.buf)+defaultBufferSize)
		copy(b, s.buf)
		s.buf = b
	}
	for k := 0; k < maxConsecutiveEmptyReads; k++ {
		n, err := s.r.Read(s.buf[len(s.buf):cap(s.buf)])
		if n < 0 {
			panic(errors.New("stream: reader returned negative count from Read"))
		}
		s.buf = s.buf[:len(s.buf)+n]
		if err != nil {
			s.err = err
			return err
		}
		if n > 0 {
			return nil
		}
	}
	s.err = io.ErrNoProgress
	return s.err
}

// ReadByte serves the next byte of the current component. It returns io.EOF
// at the fence and if the underlying reader is exhausted. Other errors of the
// underlying reader are returned unchanged.
func (s *Source) ReadByte() (c byte, err error) {
	if s.Ended() {
		return 0, io.EOF
	}
	for s.buffered() == 0 {
		if err = s.fill(); err != nil && s.buffered() == 0 {
			return 0, err
		}
	}
	c = s.buf[s.i]
	s.i++
	s.off++
	s.n++
	if s.fence < 0 {
		s.scan(c)
	}
	return c, nil
}

// Read implements the io.Reader interface. It uses ReadByte, so the fence
// is respected.
func (s *Source) Read(p []byte) (n int, err error) {
	for n < len(p) {
		var c byte
		c, err = s.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = c
		n++
	}
	return n, nil
}

// scan adds c to the shift register and checks all bit alignments for the
// end magic. It sets the fence after the first match.
func (s *Source) scan(c byte) {
	s.reg = s.reg<<8 | uint64(c)
	if m, e := matchMagic(s.reg, s.n*8, 0); m == EndMagic {
		s.fence = (e + crcBits + 7) / 8
	}
}

// matchMagic checks the shift register reg holding nbits bits for a magic
// ending at one of the last eight bit positions and starting not before bit
// from. It returns the magic found and the bit position of its end.
func matchMagic(reg uint64, nbits, from int64) (magic uint64, end int64) {
	for sh := 7; sh >= 0; sh-- {
		e := nbits - int64(sh)
		if e-magicBits < headerBits || e-magicBits < from {
			continue
		}
		m := (reg >> uint(sh)) & magicMask
		if m == EndMagic || m == BlockMagic {
			return m, e
		}
	}
	return 0, 0
}

// TrailerMissing must be called after the decoder has read a complete
// block. It looks at the bytes following the block and reports whether the
// input ends before the next block magic or before the end of the component
// trailer. Only a few bytes are read ahead; they stay available for the
// decoder.
func (s *Source) TrailerMissing() (bool, error) {
	if s.fence >= 0 {
		return false, nil
	}
	p, err := s.Peek(lookahead)
	if len(p) < lookahead && err != io.EOF {
		return false, err
	}
	if len(p) > lookahead {
		p = p[:lookahead]
	}
	// The decoder may have left up to seven bits of the last byte unread.
	from := s.n*8 - 8
	reg, nbits := s.reg, s.n*8
	for _, c := range p {
		reg = reg<<8 | uint64(c)
		nbits += 8
		switch m, e := matchMagic(reg, nbits, from); m {
		case BlockMagic:
			return false, nil
		case EndMagic:
			fence := (e + crcBits + 7) / 8
			return fence > s.n+int64(len(p)), nil
		}
	}
	return len(p) < lookahead, nil
}

// Peek returns the next n bytes without serving them. If fewer bytes are
// available the error of the underlying reader is returned with the
// available bytes. The returned slice is only valid until the next call of
// a Source method.
func (s *Source) Peek(n int) (p []byte, err error) {
	for s.buffered() < n {
		if err = s.fill(); err != nil {
			break
		}
	}
	if k := s.buffered(); k < n {
		return s.buf[s.i:], err
	}
	return s.buf[s.i : s.i+n], nil
}

// Exhausted reports whether no more bytes can be served, because the buffer
// is empty and the underlying reader reached io.EOF. The fence is ignored. An
// error of the underlying reader other than io.EOF is returned.
func (s *Source) Exhausted() (bool, error) {
	if s.buffered() > 0 {
		return false, nil
	}
	err := s.fill()
	if s.buffered() > 0 {
		return false, nil
	}
	if err == io.EOF {
		return true, nil
	}
	return false, err
}

// Unused returns a copy of the bytes that have been read from the underlying
// reader but not served.
func (s *Source) Unused() []byte {
	p := make([]byte, s.buffered())
	copy(p, s.buf[s.i:])
	return p
}

// SetUnused replaces the bytes read but not served by p. The next bytes
// served will be taken from p before the underlying reader is consulted
// again. The bytes are copied.
func (s *Source) SetUnused(p []byte) {
	b := make([]byte, len(p), len(p)+defaultBufferSize)
	copy(b, p)
	s.buf = b
	s.i = 0
}

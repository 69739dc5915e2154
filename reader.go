// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/ulikunitz/bz2/internal/pending"
	"github.com/ulikunitz/bz2/xlog"
)

// Reader reads the decompressed data of a bzip2 stream. It stops at the end
// of every component; use Finish to continue with the next one.
//
// A Reader must not be used by multiple goroutines concurrently.
type Reader struct {
	cfg     ReaderConfig
	src     io.Reader
	cur     *cursor
	pending pending.Buffer
	lineno  int
	closed  bool
}

// NewReader creates a reader for the bzip2 stream provided by r using the
// default configuration.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderConfig(r, ReaderConfig{})
}

// NewReaderConfig creates a reader using the given configuration. The
// component header is checked by the first read operation.
func NewReaderConfig(r io.Reader, cfg ReaderConfig) (*Reader, error) {
	if r == nil {
		return nil, errors.New("bz2: reader must not be nil")
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	log := xlog.WithPrefix(cfg.Logger, "bz2 reader: ")
	return &Reader{
		cfg: cfg,
		src: r,
		cur: newCursor(r, cfg.ChunkSize, log),
	}, nil
}

func (r *Reader) check() error {
	if r.closed {
		return ErrClosed
	}
	return nil
}

// GetByte returns the next byte. At the end of the component ok is false
// and err is nil.
func (r *Reader) GetByte() (c byte, ok bool, err error) {
	if err = r.check(); err != nil {
		return 0, false, err
	}
	for {
		if c, err = r.pending.ReadByte(); err == nil {
			return c, true, nil
		}
		if ok, err = r.fill(); !ok {
			return 0, false, err
		}
	}
}

// ReadByte returns the next byte. It returns ErrEOZ at the end of the
// component.
func (r *Reader) ReadByte() (byte, error) {
	c, ok, err := r.GetByte()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrEOZ
	}
	return c, nil
}

// GetLine returns the next record for the separator. It returns nil and no
// error at the end of the component. Every record increments the line
// number.
func (r *Reader) GetLine(sep Separator) (line []byte, err error) {
	if err = r.check(); err != nil {
		return nil, err
	}
	if line, err = r.nextRecord(sep); line != nil {
		r.lineno++
	}
	return line, err
}

// ReadLine returns the next record like GetLine, but returns ErrEOZ at the
// end of the component.
func (r *Reader) ReadLine(sep Separator) ([]byte, error) {
	line, err := r.GetLine(sep)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, ErrEOZ
	}
	return line, nil
}

// ReadLines returns all remaining records of the component.
func (r *Reader) ReadLines(sep Separator) (lines [][]byte, err error) {
	for {
		line, err := r.GetLine(sep)
		if err != nil {
			return lines, err
		}
		if line == nil {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// Lines returns an iterator over the remaining records of the component.
// The iteration stops after the first error.
func (r *Reader) Lines(sep Separator) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for {
			line, err := r.GetLine(sep)
			if err != nil {
				yield(nil, err)
				return
			}
			if line == nil || !yield(line, nil) {
				return
			}
		}
	}
}

// EachByte returns an iterator over the remaining bytes of the component.
func (r *Reader) EachByte() iter.Seq2[byte, error] {
	return func(yield func(byte, error) bool) {
		for {
			c, ok, err := r.GetByte()
			if err != nil {
				yield(0, err)
				return
			}
			if !ok || !yield(c, nil) {
				return
			}
		}
	}
}

// ReadN reads up to n bytes. Fewer bytes are returned if the component
// ends; the slice is empty if the component ended already but more
// physical input follows. Only if the physical input is exhausted too, ReadN
// returns io.EOF.
func (r *Reader) ReadN(n int) ([]byte, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("bz2: negative count %d", n)
	}
	for r.pending.Len() < n {
		ok, err := r.fill()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	if n > 0 && r.pending.Len() == 0 {
		if r.cur.inputExhausted() {
			return nil, io.EOF
		}
		if r.cur.err != nil {
			return nil, r.cur.err
		}
	}
	return r.pending.Take(n), nil
}

// Read implements the io.Reader interface. It returns io.EOF at the end of
// the current component.
func (r *Reader) Read(p []byte) (n int, err error) {
	if err = r.check(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if r.pending.Len() == 0 {
		ok, err := r.fill()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	}
	n = copy(p, r.pending.Take(len(p)))
	return n, nil
}

// Finish skips the rest of the current component, discards the pending
// and the pushed back bytes and opens the next component if physical
// input remains. The remaining input must start with a valid component
// header, otherwise ErrFormat is returned and Unused provides the raw
// bytes.
func (r *Reader) Finish() error {
	if err := r.check(); err != nil {
		return err
	}
	for {
		_, end, err := r.cur.pull(r.cfg.ChunkSize)
		if err != nil {
			return err
		}
		if end {
			break
		}
	}
	r.pending.Reset()
	return r.cur.resume()
}

// PushbackByte pushes c back. It will be returned by the next read
// operation.
func (r *Reader) PushbackByte(c byte) error {
	if err := r.check(); err != nil {
		return err
	}
	r.pending.PushByte(c)
	return nil
}

// PushbackString pushes s back. The bytes of s are returned before all
// other pending bytes.
func (r *Reader) PushbackString(s string) error {
	return r.Pushback([]byte(s))
}

// Pushback pushes the bytes of p back. The slice is copied.
func (r *Reader) Pushback(p []byte) error {
	if err := r.check(); err != nil {
		return err
	}
	r.pending.Push(p)
	return nil
}

// Unused returns the raw bytes following the current component that have
// already been read from the underlying reader. It returns nil as long as
// the component has not ended.
func (r *Reader) Unused() []byte {
	if r.closed {
		return nil
	}
	return r.cur.unused()
}

// SetUnused replaces the raw bytes that have been read from the underlying
// reader but not decoded yet. The next component is read from p followed
// by the rest of the underlying reader. Use append(r.Unused(), p...) to add
// bytes instead. SetUnused fails while the current component has not been
// decoded completely; the decoder still needs the bytes.
func (r *Reader) SetUnused(p []byte) error {
	if err := r.check(); err != nil {
		return err
	}
	return r.cur.setUnused(p)
}

// Lineno returns the number of records returned so far.
func (r *Reader) Lineno() int { return r.lineno }

// SetLineno sets the line number. Negative values are treated as zero.
func (r *Reader) SetLineno(n int) {
	if n < 0 {
		n = 0
	}
	r.lineno = n
}

// EOZ reports whether the current component has ended and no pending bytes
// are left. If nothing is pending it decodes the next chunk to find out.
// Errors aren't returned but reported by the next read operation. A closed
// reader is always at the end.
func (r *Reader) EOZ() bool {
	if r.closed {
		return true
	}
	if r.pending.Len() > 0 {
		return false
	}
	if !r.cur.ended {
		if ok, err := r.fill(); ok || err != nil {
			return false
		}
	}
	return r.cur.ended
}

// EOF reports whether EOZ is true and the physical input is exhausted.
func (r *Reader) EOF() bool {
	if r.closed {
		return true
	}
	return r.EOZ() && r.cur.inputExhausted()
}

// InputOffset returns the number of compressed bytes consumed so far.
func (r *Reader) InputOffset() int64 { return r.cur.offset() }

// Close closes the reader. The underlying reader is closed if
// CloseSource is set in the configuration.
func (r *Reader) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	r.pending.Reset()
	if !r.cfg.CloseSource {
		return nil
	}
	if c, ok := r.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return sourceError(err)
		}
	}
	return nil
}

// Closed reports whether the reader has been closed.
func (r *Reader) Closed() bool { return r.closed }

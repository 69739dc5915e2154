// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import (
	"errors"
	"io"
	"iter"
	"os"

	"github.com/ulikunitz/bz2/xio"
)

// closerFunc converts a function into an io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// readerCloser closes r unless the caller did it already.
func readerCloser(r *Reader) io.Closer {
	return closerFunc(func() error {
		if r.Closed() {
			return nil
		}
		return r.Close()
	})
}

// writerCloser closes w unless the caller did it already.
func writerCloser(w *Writer) io.Closer {
	return closerFunc(func() error {
		if w.Closed() {
			return nil
		}
		return w.Close()
	})
}

// Open opens the named bzip2 file for reading. Closing the reader closes
// the file.
func Open(name string, cfg ReaderConfig) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	cfg.CloseSource = true
	r, err := NewReaderConfig(f, cfg)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// WithReader creates a reader for r and calls fn with it. The reader is
// closed when fn returns or panics. The underlying reader is only closed
// if CloseSource is set.
func WithReader(r io.Reader, cfg ReaderConfig, fn func(*Reader) error) (err error) {
	s := xio.NewCloserStack()
	defer func() { err = errors.Join(err, s.Close()) }()
	z, err := NewReaderConfig(r, cfg)
	if err != nil {
		return err
	}
	s.Push(readerCloser(z))
	return fn(z)
}

// WithOpen opens the named file and calls fn with a reader for it. The
// reader and the file are closed when fn returns or panics.
func WithOpen(name string, cfg ReaderConfig, fn func(*Reader) error) (err error) {
	s := xio.NewCloserStack()
	defer func() { err = errors.Join(err, s.Close()) }()
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	s.Push(f)
	cfg.CloseSource = false
	r, err := NewReaderConfig(f, cfg)
	if err != nil {
		return err
	}
	s.Push(readerCloser(r))
	return fn(r)
}

// allLines yields the records of all components of r. It returns false if
// the consumer stopped the iteration.
func allLines(r *Reader, sep Separator, yield func([]byte, error) bool) bool {
	for {
		for line, err := range r.Lines(sep) {
			if !yield(line, err) {
				return false
			}
			if err != nil {
				return true
			}
		}
		if r.EOF() {
			return true
		}
		if err := r.Finish(); err != nil {
			return yield(nil, err)
		}
	}
}

// ForEachLine returns an iterator over the records of all components of
// the named file. The file is opened when the iteration starts and closed
// when it ends, also if the loop is left early.
func ForEachLine(name string, sep Separator) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		more := true
		err := WithOpen(name, ReaderConfig{}, func(r *Reader) error {
			more = allLines(r, sep, yield)
			return nil
		})
		if err != nil && more {
			yield(nil, err)
		}
	}
}

// ReadAllLines returns the records of all components of the named file.
func ReadAllLines(name string, sep Separator) (lines [][]byte, err error) {
	for line, err := range ForEachLine(name, sep) {
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Create opens the named file with the given flags and returns a writer
// for it. A zero flag creates or truncates the file. Use os.O_APPEND to add
// components to an existing file. Closing the writer closes the file.
func Create(name string, flag int, cfg WriterConfig) (*Writer, error) {
	if flag == 0 {
		flag = os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(name, flag|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, err
	}
	cfg.CloseSink = true
	w, err := NewWriterConfig(f, cfg)
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// WithCreate opens the named file like Create and calls fn with a writer
// for it. When fn returns or panics the writer is flushed and closed
// together with the file.
func WithCreate(name string, flag int, cfg WriterConfig, fn func(*Writer) error) (err error) {
	s := xio.NewCloserStack()
	defer func() { err = errors.Join(err, s.Close()) }()
	if flag == 0 {
		flag = os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(name, flag|os.O_WRONLY, 0o666)
	if err != nil {
		return err
	}
	s.Push(f)
	cfg.CloseSink = false
	w, err := NewWriterConfig(f, cfg)
	if err != nil {
		return err
	}
	s.Push(writerCloser(w))
	return fn(w)
}

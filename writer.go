// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/ulikunitz/bz2/xlog"
)

// Writer collects written data in memory and compresses it on Flush into a
// complete bzip2 component. Consecutive flushes produce concatenated
// components.
//
// Without an underlying writer the compressed output is collected in
// memory and returned by FlushBytes.
//
// A Writer must not be used by multiple goroutines concurrently.
type Writer struct {
	cfg  WriterConfig
	sink io.Writer

	// uncompressed data written since the last flush
	data bytes.Buffer
	// compressed output of a writer without sink
	out bytes.Buffer
	// the component being emitted
	comp bytes.Buffer

	// components emitted in the current run
	run    int
	err    error
	closed bool
	log    xlog.Logger
}

// NewWriter creates a writer using the default configuration. If w is nil
// the compressed output is kept in memory.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterConfig(w, WriterConfig{})
}

// NewWriterConfig creates a writer using the given configuration. If w is
// nil the compressed output is kept in memory.
func NewWriterConfig(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return &Writer{
		cfg:  cfg,
		sink: w,
		log:  xlog.WithPrefix(cfg.Logger, "bz2 writer: "),
	}, nil
}

func (w *Writer) check() error {
	if w.closed {
		return ErrClosed
	}
	return nil
}

// Write appends p to the buffered data. Nothing is compressed before the
// next flush.
func (w *Writer) Write(p []byte) (n int, err error) {
	if err = w.check(); err != nil {
		return 0, err
	}
	return w.data.Write(p)
}

// WriteString appends s to the buffered data.
func (w *Writer) WriteString(s string) (n int, err error) {
	if err = w.check(); err != nil {
		return 0, err
	}
	return w.data.WriteString(s)
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(c byte) error {
	if err := w.check(); err != nil {
		return err
	}
	return w.data.WriteByte(c)
}

// WriteValue writes the string representation of v as provided by
// Stringify. It returns the length of the representation.
func (w *Writer) WriteValue(v any) (n int, err error) {
	return w.WriteString(Stringify(v))
}

// PutChar writes a single character. Integers write their lowest byte,
// strings their first character.
func (w *Writer) PutChar(v any) (n int, err error) {
	return w.Write(charBytes(v))
}

// Append writes the value v and returns the writer, so calls can be
// chained. The first error is kept and returned by Err; later calls do
// nothing.
func (w *Writer) Append(v any) *Writer {
	if w.err == nil {
		_, w.err = w.WriteValue(v)
	}
	return w
}

// Err returns the first error of the Append calls.
func (w *Writer) Err() error { return w.err }

// Puts writes every value followed by a newline unless the value ends with a
// newline already. Slices are written element by element. A call without
// values writes a single newline.
func (w *Writer) Puts(v ...any) (n int, err error) {
	if err = w.check(); err != nil {
		return 0, err
	}
	a := flatten(nil, v...)
	if len(a) == 0 {
		a = append(a, "")
	}
	for _, s := range a {
		k, _ := w.data.WriteString(s)
		n += k
		if len(s) == 0 || s[len(s)-1] != '\n' {
			w.data.WriteByte('\n')
			n++
		}
	}
	return n, nil
}

// Print writes the values separated by the field separator followed by the
// record separator of the print configuration. Without values the current
// value of the configuration is written.
func (w *Writer) Print(v ...any) (n int, err error) {
	if err = w.check(); err != nil {
		return 0, err
	}
	if len(v) == 0 {
		v = []any{w.cfg.Print.CurrentValue}
	}
	for i, x := range v {
		if i > 0 {
			k, _ := w.data.WriteString(w.cfg.Print.FieldSeparator)
			n += k
		}
		k, _ := w.data.WriteString(Stringify(x))
		n += k
	}
	k, _ := w.data.WriteString(w.cfg.Print.RecordSeparator)
	return n + k, nil
}

// Printf formats the values according to the format specifier and writes
// the result.
func (w *Writer) Printf(format string, v ...any) (n int, err error) {
	return w.WriteString(fmt.Sprintf(format, v...))
}

// SetPrintConfig replaces the print configuration.
func (w *Writer) SetPrintConfig(c PrintConfig) { w.cfg.Print = c }

// PrintConfig returns the current print configuration.
func (w *Writer) PrintConfig() PrintConfig { return w.cfg.Print }

// Buffered returns the number of bytes written since the last flush.
func (w *Writer) Buffered() int { return w.data.Len() }

// emit compresses the buffered data into a component and delivers it. If
// the delivery fails the buffered data is kept, so a later flush sends it
// again.
func (w *Writer) emit() error {
	w.comp.Reset()
	enc, err := bzip2.NewWriter(&w.comp,
		&bzip2.WriterConfig{Level: w.cfg.BlockSize})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if _, err = enc.Write(w.data.Bytes()); err != nil {
		return err
	}
	if err = enc.Close(); err != nil {
		return err
	}
	if w.sink == nil {
		w.out.Write(w.comp.Bytes())
	} else {
		n, err := w.sink.Write(w.comp.Bytes())
		if err != nil {
			return sinkError(err)
		}
		if n < w.comp.Len() {
			return io.ErrShortWrite
		}
	}
	w.run++
	xlog.Printf(w.log, "component of %d bytes compressed to %d bytes",
		w.data.Len(), w.comp.Len())
	w.data.Reset()
	return nil
}

// Flush compresses the data written since the last flush into a complete
// component and writes it to the underlying writer. Nothing is done if no
// data has been written.
func (w *Writer) Flush() error {
	if err := w.check(); err != nil {
		return err
	}
	if w.data.Len() == 0 {
		return nil
	}
	return w.emit()
}

// Finish flushes the buffered data and ends the current run. If the run has
// produced no component an empty component is written, so the output is
// always a valid bzip2 stream.
func (w *Writer) Finish() error {
	if err := w.check(); err != nil {
		return err
	}
	if w.data.Len() > 0 || w.run == 0 {
		if err := w.emit(); err != nil {
			return err
		}
	}
	w.run = 0
	return nil
}

var errSink = errors.New("bz2: writer has an underlying writer")

// FlushBytes finishes the current run of a writer without underlying
// writer and returns the collected compressed output. The writer can be
// used for another run afterwards.
func (w *Writer) FlushBytes() ([]byte, error) {
	if w.sink != nil {
		return nil, errSink
	}
	if !w.closed {
		if err := w.Finish(); err != nil {
			return nil, err
		}
	}
	p := bytes.Clone(w.out.Bytes())
	w.out.Reset()
	return p, nil
}

// Bytes returns the compressed output collected by a writer without
// underlying writer. The output is not removed.
func (w *Writer) Bytes() []byte {
	return w.out.Bytes()
}

// Close finishes the current run and marks the writer as closed. The
// underlying writer is closed if CloseSink is set in the configuration.
// The output of a writer without underlying writer stays available. If the
// run cannot be finished, the writer stays open and keeps the buffered
// data; Close may be called again.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	if err := w.Finish(); err != nil {
		return err
	}
	w.closed = true
	var err error
	if w.cfg.CloseSink {
		if c, ok := w.sink.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil {
				err = errors.Join(err, sinkError(cerr))
			}
		}
	}
	return err
}

// Closed reports whether the writer has been closed.
func (w *Writer) Closed() bool { return w.closed }

// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import (
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrStream is the parent of the errors describing problems of the
// compressed stream. Use errors.Is(err, ErrStream) to test for any of them.
var ErrStream = errors.New("bz2: stream error")

// streamError is the type of the stream errors. It supports errors.Is for
// ErrStream and, if eoz is set, for io.EOF.
type streamError struct {
	msg string
	eoz bool
}

func (e *streamError) Error() string { return e.msg }

func (e *streamError) Is(target error) bool {
	return target == ErrStream || (e.eoz && target == io.EOF)
}

// Stream errors.
var (
	// ErrFormat indicates an invalid component header or corrupt
	// compressed data.
	ErrFormat error = &streamError{msg: "bz2: malformed stream"}
	// ErrTruncated indicates that the physical input ended before the
	// trailer of the current component.
	ErrTruncated error = &streamError{msg: "bz2: truncated stream"}
	// ErrEOZ is returned by the strict read operations at the end of the
	// current component. It matches io.EOF too.
	ErrEOZ error = &streamError{msg: "bz2: end of component", eoz: true}
)

var (
	// ErrSourceClosed indicates that the underlying reader has been
	// closed already.
	ErrSourceClosed = errors.New("bz2: source closed")
	// ErrSinkClosed indicates that the underlying writer has been closed
	// already.
	ErrSinkClosed = errors.New("bz2: sink closed")
	// ErrConfig reports an invalid configuration parameter or a failure
	// to set up the codec.
	ErrConfig = errors.New("bz2: configuration error")
	// ErrClosed is returned for operations on a closed Reader or Writer.
	ErrClosed = errors.New("bz2: use of closed stream")
	// ErrActive is returned by SetUnused while the current component
	// hasn't been decoded completely.
	ErrActive = errors.New("bz2: component still active")
)

// isClosedErr reports whether err signals a closed file or pipe.
func isClosedErr(err error) bool {
	return errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}

// sourceError classifies an error of the underlying reader.
func sourceError(err error) error {
	if isClosedErr(err) {
		return fmt.Errorf("%w: %w", ErrSourceClosed, err)
	}
	return err
}

// sinkError classifies an error of the underlying writer.
func sinkError(err error) error {
	if isClosedErr(err) {
		return fmt.Errorf("%w: %w", ErrSinkClosed, err)
	}
	return err
}

// decodeError classifies an error returned by the bzip2 decoder.
func decodeError(err error) error {
	var serr bzip2.StructuralError
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	case errors.As(err, &serr):
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return sourceError(err)
}

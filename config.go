// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import (
	"fmt"

	"github.com/ulikunitz/bz2/xlog"
)

// DefaultChunkSize is the default number of decompressed bytes requested
// from the decoder in one step.
const DefaultChunkSize = 4096

// DefaultBlockSize is the default block size of the writer. It selects
// blocks of 900 kB.
const DefaultBlockSize = 9

// MaxWorkFactor is the largest work factor accepted by the writer.
const MaxWorkFactor = 250

// ReaderConfig defines the parameters for a Reader.
type ReaderConfig struct {
	// Small requests the low memory decoding mode. The decoder has only
	// one mode, so the flag doesn't change the output.
	Small bool

	// CloseSource requests that Close closes the underlying reader, if it
	// implements io.Closer.
	CloseSource bool

	// ChunkSize is the number of decompressed bytes requested from the
	// decoder in one step. (default: 4096)
	ChunkSize int

	// Logger receives debug messages about opened and finished
	// components. No messages are written if it is nil.
	Logger xlog.Logger
}

// ApplyDefaults replaces zero values by the default values.
func (c *ReaderConfig) ApplyDefaults() {
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
}

// Verify checks the reader configuration for errors. Zero values will be
// replaced by default values.
func (c *ReaderConfig) Verify() error {
	if c == nil {
		return fmt.Errorf("%w: reader configuration is nil", ErrConfig)
	}
	c.ApplyDefaults()
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: chunk size %d must be positive",
			ErrConfig, c.ChunkSize)
	}
	return nil
}

// WriterConfig defines the parameters for a Writer.
type WriterConfig struct {
	// BlockSize selects the block size in units of 100 kB. Valid values
	// are 1 to 9. (default: 9)
	BlockSize int

	// WorkFactor controls the behavior of the sorting algorithm for
	// repetitive data. Valid values are 0 to 250. The value is checked
	// and passed to the codec unchanged; 0 selects the codec default.
	WorkFactor int

	// CloseSink requests that Close closes the underlying writer, if it
	// implements io.Closer.
	CloseSink bool

	// Print provides the separators used by Print and Puts.
	Print PrintConfig

	// Logger receives debug messages about emitted components.
	Logger xlog.Logger
}

// ApplyDefaults replaces zero values by the default values.
func (c *WriterConfig) ApplyDefaults() {
	if c.BlockSize == 0 {
		c.BlockSize = DefaultBlockSize
	}
}

// Verify checks the writer configuration for errors. Zero values will be
// replaced by default values.
func (c *WriterConfig) Verify() error {
	if c == nil {
		return fmt.Errorf("%w: writer configuration is nil", ErrConfig)
	}
	c.ApplyDefaults()
	if !(1 <= c.BlockSize && c.BlockSize <= 9) {
		return fmt.Errorf("%w: block size %d out of range [1,9]",
			ErrConfig, c.BlockSize)
	}
	if !(0 <= c.WorkFactor && c.WorkFactor <= MaxWorkFactor) {
		return fmt.Errorf("%w: work factor %d out of range [0,%d]",
			ErrConfig, c.WorkFactor, MaxWorkFactor)
	}
	return nil
}

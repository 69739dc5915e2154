// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import "bytes"

// Compress compresses p into a single bzip2 component.
func Compress(p []byte, cfg WriterConfig) ([]byte, error) {
	w, err := NewWriterConfig(nil, cfg)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(p); err != nil {
		return nil, err
	}
	return w.FlushBytes()
}

// Decompress decompresses all concatenated components of p. Bytes after
// the last component that don't form a valid component result in
// ErrFormat.
func Decompress(p []byte, cfg ReaderConfig) ([]byte, error) {
	r, err := NewReaderConfig(bytes.NewReader(p), cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var buf bytes.Buffer
	for {
		data, err := r.GetLine(WholeStream)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
		if r.EOF() {
			return buf.Bytes(), nil
		}
		if err = r.Finish(); err != nil {
			return nil, err
		}
	}
}

// Bzip2 compresses p using the default configuration.
func Bzip2(p []byte) ([]byte, error) {
	return Compress(p, WriterConfig{})
}

// Bunzip2 decompresses p using the default configuration.
func Bunzip2(p []byte) ([]byte, error) {
	return Decompress(p, ReaderConfig{})
}

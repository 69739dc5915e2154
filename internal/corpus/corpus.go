// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpus stores the files of a test corpus as concatenated bzip2
// components, one component per file, and checks that a reader recovers
// every file by finishing component after component.
package corpus

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/ulikunitz/bz2"
)

// File is a file of a corpus held in memory.
type File struct {
	Name string
	Data []byte
}

// Files reads all regular files of the corpus in lexical order.
func Files(corpus fs.FS) (files []File, err error) {
	err = fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.Type().IsRegular() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			files = append(files, File{Name: path, Data: data})
			return nil
		})
	return files, err
}

// Stats describes a round trip of a corpus.
type Stats struct {
	Files          int
	Size           int64
	CompressedSize int64
}

// Concatenate compresses every file into a component of its own and returns
// the concatenation of the components. Empty files result in empty
// components.
func Concatenate(files []File, cfg bz2.WriterConfig) ([]byte, error) {
	if len(files) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	w, err := bz2.NewWriterConfig(&buf, cfg)
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		if _, err = w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("corpus: %s: %w", f.Name, err)
		}
		// Close finishes the last component.
		if i == len(files)-1 {
			break
		}
		if err = w.Finish(); err != nil {
			return nil, fmt.Errorf("corpus: %s: %w", f.Name, err)
		}
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Split decodes the concatenated components and compares component i with
// file i. The data must end after the last component.
func Split(data []byte, files []File) error {
	r, err := bz2.NewReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer r.Close()
	for i, f := range files {
		if i > 0 {
			if err = r.Finish(); err != nil {
				return fmt.Errorf("corpus: %s: %w", f.Name, err)
			}
		}
		p, err := r.GetLine(bz2.WholeStream)
		if err != nil {
			return fmt.Errorf("corpus: %s: %w", f.Name, err)
		}
		if !bytes.Equal(p, f.Data) {
			return fmt.Errorf(
				"corpus: %s: component %d has %d bytes; want %d",
				f.Name, i+1, len(p), len(f.Data))
		}
	}
	if !r.EOF() {
		return fmt.Errorf("corpus: data after component %d",
			len(files))
	}
	return nil
}

// RoundTrip concatenates the files with Concatenate and verifies the result
// with Split.
func RoundTrip(files []File, cfg bz2.WriterConfig) (s Stats, err error) {
	data, err := Concatenate(files, cfg)
	if err != nil {
		return s, err
	}
	if err = Split(data, files); err != nil {
		return s, err
	}
	s.Files = len(files)
	for _, f := range files {
		s.Size += int64(len(f.Data))
	}
	s.CompressedSize = int64(len(data))
	return s, nil
}

// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import (
	"bytes"
	"strconv"
)

type sepMode byte

const (
	sepExplicit sepMode = iota
	sepWhole
	sepParagraph
)

// Separator defines how the decompressed data is split into records. The
// zero value splits at newlines.
type Separator struct {
	delim string
	mode  sepMode
}

// Separators for the special modes.
var (
	// Newline splits at every "\n".
	Newline = Sep("\n")
	// WholeStream doesn't split; the complete rest of the component is
	// returned as a single record.
	WholeStream = Separator{mode: sepWhole}
	// Paragraph splits at runs of two or more newlines. A record keeps
	// two newlines of the run; the remaining newlines are skipped, as
	// are the newlines in front of a record.
	Paragraph = Separator{mode: sepParagraph}
)

// Sep returns the separator splitting at the delimiter s. The delimiter is
// kept at the end of the records. The empty string selects paragraph mode.
func Sep(s string) Separator {
	if s == "" {
		return Paragraph
	}
	return Separator{delim: s}
}

// String returns a description of the separator.
func (s Separator) String() string {
	switch s.mode {
	case sepWhole:
		return "whole stream"
	case sepParagraph:
		return "paragraph"
	}
	return strconv.Quote(string(s.bytes()))
}

// bytes returns the delimiter of an explicit separator.
func (s Separator) bytes() []byte {
	if s.delim == "" {
		return []byte{'\n'}
	}
	return []byte(s.delim)
}

// fill moves the next chunk of decompressed data into the pending buffer.
// It returns false at the end of the component.
func (r *Reader) fill() (ok bool, err error) {
	p, end, err := r.cur.pull(r.cfg.ChunkSize)
	if err != nil {
		return false, err
	}
	if end {
		return false, nil
	}
	r.pending.Append(p)
	return true, nil
}

// nextRecord returns the next record for the separator. At the end of the
// component it returns nil without error.
func (r *Reader) nextRecord(sep Separator) ([]byte, error) {
	switch sep.mode {
	case sepWhole:
		return r.rest()
	case sepParagraph:
		return r.paragraph()
	}
	return r.splitAt(sep.bytes())
}

// rest returns all remaining bytes of the component.
func (r *Reader) rest() ([]byte, error) {
	for {
		ok, err := r.fill()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	if r.pending.Len() == 0 {
		return nil, nil
	}
	return r.pending.Take(r.pending.Len()), nil
}

// splitAt returns the bytes up to and including the next occurrence of
// delim. Without a further delimiter the rest of the component is returned.
func (r *Reader) splitAt(delim []byte) ([]byte, error) {
	// bytes before from cannot start the delimiter
	from := 0
	for {
		p := r.pending.Bytes()
		if i := bytes.Index(p[from:], delim); i >= 0 {
			return r.pending.Next(from + i + len(delim)), nil
		}
		if k := len(p) - len(delim) + 1; k > from {
			from = k
		}
		ok, err := r.fill()
		if err != nil {
			return nil, err
		}
		if !ok {
			if r.pending.Len() == 0 {
				return nil, nil
			}
			return r.pending.Take(r.pending.Len()), nil
		}
	}
}

// skipNewlines discards newlines in front of the next byte that is not a
// newline. It returns false if the component ended.
func (r *Reader) skipNewlines() (ok bool, err error) {
	for {
		c, ok := r.pending.Peek1()
		if !ok {
			if ok, err = r.fill(); !ok {
				return false, err
			}
			continue
		}
		if c != '\n' {
			return true, nil
		}
		r.pending.ReadByte()
	}
}

var paragraphDelim = []byte("\n\n")

// paragraph returns the next paragraph.
func (r *Reader) paragraph() ([]byte, error) {
	ok, err := r.skipNewlines()
	if !ok {
		return nil, err
	}
	rec, err := r.splitAt(paragraphDelim)
	if err != nil || !bytes.HasSuffix(rec, paragraphDelim) {
		return rec, err
	}
	// A failure is sticky in the cursor and reported by the next read.
	r.skipNewlines()
	return rec, nil
}

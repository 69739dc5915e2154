// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randtxt

import (
	"bytes"
	"math/rand"
)

// Config controls the shape of the generated text. Zero fields select the
// defaults.
type Config struct {
	// Size is the minimum number of bytes generated. Paragraphs are
	// added until it is reached.
	Size int
	// MaxLines is the maximum number of lines in a paragraph.
	MaxLines int
	// MaxWords is the maximum number of words in a line.
	MaxWords int
	// MaxBlank is the maximum number of blank lines between two
	// paragraphs.
	MaxBlank int
	// Leading is the number of newlines in front of the first paragraph.
	Leading int
}

func (c *Config) applyDefaults() {
	if c.Size <= 0 {
		c.Size = 1000
	}
	if c.MaxLines <= 0 {
		c.MaxLines = 8
	}
	if c.MaxWords <= 0 {
		c.MaxWords = 12
	}
	if c.MaxBlank <= 0 {
		c.MaxBlank = 3
	}
}

// Text is generated text together with the records a reader must find in
// it.
type Text struct {
	Data []byte
	// Lines are the records for the newline separator. Blank lines
	// are records of their own.
	Lines []string
	// Paragraphs are the records for paragraph mode. Every paragraph
	// but the last keeps two newlines.
	Paragraphs []string
}

// Generate creates text consisting of paragraphs of lines of words. The
// paragraphs are separated by runs of blank lines; the text ends with the
// newline of the last line.
func Generate(src rand.Source, cfg Config) *Text {
	cfg.applyDefaults()
	rnd := rand.New(src)
	letters := &Reader{rnd: rnd}
	t := new(Text)
	var data bytes.Buffer
	for i := 0; i < cfg.Leading; i++ {
		data.WriteByte('\n')
		t.Lines = append(t.Lines, "\n")
	}
	for {
		var para bytes.Buffer
		lines := 1 + rnd.Intn(cfg.MaxLines)
		for i := 0; i < lines; i++ {
			var line bytes.Buffer
			words := 1 + rnd.Intn(cfg.MaxWords)
			for j := 0; j < words; j++ {
				if j > 0 {
					line.WriteByte(' ')
				}
				w := make([]byte, 1+rnd.Intn(9))
				letters.Read(w)
				line.Write(w)
			}
			line.WriteByte('\n')
			t.Lines = append(t.Lines, line.String())
			para.Write(line.Bytes())
		}
		data.Write(para.Bytes())
		if data.Len() >= cfg.Size {
			t.Paragraphs = append(t.Paragraphs, para.String())
			break
		}
		blank := 1 + rnd.Intn(cfg.MaxBlank)
		for i := 0; i < blank; i++ {
			data.WriteByte('\n')
			t.Lines = append(t.Lines, "\n")
		}
		t.Paragraphs = append(t.Paragraphs, para.String()+"\n")
	}
	t.Data = data.Bytes()
	return t
}

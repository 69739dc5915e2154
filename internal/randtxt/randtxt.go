// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randtxt generates deterministic random text for the tests. The
// letters follow the frequencies of English text; Generate arranges them into
// lines and paragraphs and reports the records expected by the splitters.
package randtxt

import (
	"math/rand"
	"sort"
)

// letterFreq gives the relative frequency of the letters a to z in English
// text in units of 0.01 percent.
var letterFreq = [26]int{
	817, 149, 278, 425, 1270, 223, 202, 609, 697, 15, 77, 403, 241,
	675, 751, 193, 10, 599, 633, 906, 276, 98, 236, 15, 197, 7,
}

type prob struct {
	c byte
	p float64
}

type probs []prob

func (s probs) searchProb(p float64) int {
	return sort.Search(len(s), func(k int) bool { return s[k].p >= p })
}

// cdf computes the cumulative distribution of the letter frequencies.
func cdf() probs {
	prs := make(probs, len(letterFreq))
	sum := 0
	for _, f := range letterFreq {
		sum += f
	}
	x := 0
	for i, f := range letterFreq {
		x += f
		prs[i] = prob{byte('a' + i), float64(x) / float64(sum)}
	}
	prs[len(prs)-1].p = 1.0
	return prs
}

var letterCDF = cdf()

// Reader produces an endless stream of random lowercase letters.
type Reader struct {
	rnd *rand.Rand
}

// NewReader creates a reader using the given random source.
func NewReader(src rand.Source) *Reader {
	return &Reader{rnd: rand.New(src)}
}

// Read fills p with random letters. It never fails.
func (r *Reader) Read(p []byte) (n int, err error) {
	for i := range p {
		k := letterCDF.searchProb(r.rnd.Float64())
		p[i] = letterCDF[k].c
	}
	return len(p), nil
}

// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bz2 reads and writes bzip2 compressed data like ordinary text
// files.
//
// A [Reader] returns the decompressed data byte by byte, line by line or in
// bulk. Line separators can be freely chosen; the separators [WholeStream]
// and [Paragraph] select the special modes for reading everything at once
// and for reading paragraphs. Bytes can be pushed back and the reader
// maintains a line number.
//
// A physical bzip2 file may consist of several concatenated components,
// each having its own header and trailer. The Reader stops at the end of a
// component. [Reader.EOZ] reports the end of the current component, while
// [Reader.EOF] reports that the physical input is exhausted too. The next
// component is opened with [Reader.Finish]. The raw bytes following the
// current component are available with [Reader.Unused].
//
// A [Writer] collects all written data in memory. Only [Writer.Flush]
// compresses the data and writes it as a complete bzip2 component to the
// underlying writer. Writers without underlying writer collect the
// compressed output in memory, which can be retrieved with
// [Writer.FlushBytes].
//
// The functions [Compress] and [Decompress] convert byte slices in one
// step.
package bz2

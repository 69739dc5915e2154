// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/ulikunitz/bz2/xlog"
)

type dummy struct{}

func (dummy) String() string { return "dummy" }

// decompressAll calls Decompress and fails the test on error.
func decompressAll(t *testing.T, data []byte) string {
	t.Helper()
	p, err := Decompress(data, ReaderConfig{})
	if err != nil {
		t.Fatalf("Decompress error %s", err)
	}
	return string(p)
}

func TestWriterAppend(t *testing.T) {
	w, err := NewWriter(nil)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	w.Append(1).Append("\n").Append(dummy{}).Append("\n").Append("cat\n")
	if err = w.Err(); err != nil {
		t.Fatalf("Append error %s", err)
	}
	data, err := w.FlushBytes()
	if err != nil {
		t.Fatalf("FlushBytes error %s", err)
	}
	if got := decompressAll(t, data); got != "1\ndummy\ncat\n" {
		t.Fatalf("got %q", got)
	}

	w.Close()
	if err = w.Append("x").Err(); err != ErrClosed {
		t.Fatalf("Append on closed writer error %v; want %v", err,
			ErrClosed)
	}
}

func TestWriterWrite(t *testing.T) {
	w, err := NewWriter(nil)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	tests := []struct {
		v any
		n int
	}{
		{strings.Repeat("*", 10), 10},
		{strings.Repeat("!", 5), 5},
		{"", 0},
		{1, 1},
		{2.30000, 3},
		{[]byte("\n"), 1},
	}
	for _, tc := range tests {
		n, err := w.WriteValue(tc.v)
		if err != nil {
			t.Fatalf("WriteValue(%v) error %s", tc.v, err)
		}
		if n != tc.n {
			t.Fatalf("WriteValue(%v) returned %d; want %d",
				tc.v, n, tc.n)
		}
	}
	data, err := w.FlushBytes()
	if err != nil {
		t.Fatalf("FlushBytes error %s", err)
	}
	if got := decompressAll(t, data); got != "**********!!!!!12.3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriterPrint(t *testing.T) {
	w, err := NewWriter(nil)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	w.Print("hello")
	w.Print(1, 2)
	w.SetPrintConfig(PrintConfig{CurrentValue: "wombat\n"})
	w.Print()
	w.SetPrintConfig(PrintConfig{FieldSeparator: ",",
		RecordSeparator: ":"})
	w.Print(3, 4)
	n, err := w.Print(5, 6)
	if err != nil {
		t.Fatalf("Print error %s", err)
	}
	if n != 4 {
		t.Fatalf("Print returned %d; want 4", n)
	}
	cfg := w.PrintConfig()
	cfg.RecordSeparator = ""
	w.SetPrintConfig(cfg)
	w.Print("\n")
	data, err := w.FlushBytes()
	if err != nil {
		t.Fatalf("FlushBytes error %s", err)
	}
	const want = "hello12wombat\n3,4:5,6:\n"
	if got := decompressAll(t, data); got != want {
		t.Fatalf("got %q; want %q", got, want)
	}
}

func TestWriterPuts(t *testing.T) {
	w, err := NewWriter(nil)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	w.Puts("line 1", "line 2\n")
	w.Puts([]any{dummy{}, 4})
	w.Puts([]int{5, 6})
	n, err := w.Puts()
	if err != nil {
		t.Fatalf("Puts error %s", err)
	}
	if n != 1 {
		t.Fatalf("Puts() returned %d; want 1", n)
	}
	data, err := w.FlushBytes()
	if err != nil {
		t.Fatalf("FlushBytes error %s", err)
	}
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	lines, err := r.ReadLines(Newline)
	if err != nil {
		t.Fatalf("ReadLines error %s", err)
	}
	want := []string{"line 1\n", "line 2\n", "dummy\n", "4\n", "5\n",
		"6\n", "\n"}
	if diff := pretty.Diff(strs(lines), want); len(diff) > 0 {
		t.Fatalf("lines differ: %v", diff)
	}
}

func TestWriterPutChar(t *testing.T) {
	w, err := NewWriter(nil)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	if n, err := w.PutChar("ABC"); n != 1 || err != nil {
		t.Fatalf("PutChar(%q) returned %d, %v", "ABC", n, err)
	}
	for c := 0; c < 256; c++ {
		if _, err = w.PutChar(c); err != nil {
			t.Fatalf("PutChar(%d) error %s", c, err)
		}
	}
	if err = w.WriteByte('z'); err != nil {
		t.Fatalf("WriteByte error %s", err)
	}
	data, err := w.FlushBytes()
	if err != nil {
		t.Fatalf("FlushBytes error %s", err)
	}
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	c, err := r.ReadByte()
	if err != nil || c != 'A' {
		t.Fatalf("ReadByte returned %q, %v; want 'A'", c, err)
	}
	for i := 0; i < 256; i++ {
		c, err = r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte error %s", err)
		}
		if int(c) != i {
			t.Fatalf("ReadByte returned %d; want %d", c, i)
		}
	}
	if c, _ = r.ReadByte(); c != 'z' {
		t.Fatalf("ReadByte returned %q; want 'z'", c)
	}
}

func TestWriterBuffering(t *testing.T) {
	var sink bytes.Buffer
	w, err := NewWriterConfig(&sink, WriterConfig{BlockSize: 1})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	if _, err = w.WriteString("first\n"); err != nil {
		t.Fatalf("WriteString error %s", err)
	}
	if sink.Len() != 0 {
		t.Fatalf("sink received %d bytes before Flush", sink.Len())
	}
	if w.Buffered() != 6 {
		t.Fatalf("Buffered returned %d; want 6", w.Buffered())
	}
	if err = w.Flush(); err != nil {
		t.Fatalf("Flush error %s", err)
	}
	n := sink.Len()
	if n == 0 {
		t.Fatalf("Flush wrote nothing")
	}
	if !bytes.HasPrefix(sink.Bytes(), []byte("BZh1")) {
		t.Fatalf("component header %q", sink.Bytes()[:4])
	}
	if err = w.Flush(); err != nil {
		t.Fatalf("Flush error %s", err)
	}
	if sink.Len() != n {
		t.Fatalf("empty Flush wrote data")
	}
	w.WriteString("second\n")
	if err = w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}

	r, err := NewReader(bytes.NewReader(sink.Bytes()))
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	line, err := r.ReadLine(Newline)
	if err != nil || string(line) != "first\n" {
		t.Fatalf("ReadLine returned %q, %v", line, err)
	}
	if !r.EOZ() || r.EOF() {
		t.Fatalf("first component doesn't end separately")
	}
	if err = r.Finish(); err != nil {
		t.Fatalf("Finish error %s", err)
	}
	line, err = r.ReadLine(Newline)
	if err != nil || string(line) != "second\n" {
		t.Fatalf("ReadLine returned %q, %v", line, err)
	}
	if !r.EOF() {
		t.Fatalf("EOF returned false")
	}
}

func TestWriterFinishEmpty(t *testing.T) {
	var sink bytes.Buffer
	w, err := NewWriter(&sink)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	if sink.Len() == 0 {
		t.Fatalf("Close didn't write an empty component")
	}
	if got := decompressAll(t, sink.Bytes()); got != "" {
		t.Fatalf("got %q; want empty string", got)
	}
	if _, err = w.WriteString("x"); err != ErrClosed {
		t.Fatalf("WriteString error %v; want %v", err, ErrClosed)
	}
	if err = w.Close(); err != ErrClosed {
		t.Fatalf("second Close error %v; want %v", err, ErrClosed)
	}
}

func TestWriterReuse(t *testing.T) {
	w, err := NewWriter(nil)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	for _, s := range []string{"one\n", "two\n", ""} {
		w.WriteString(s)
		data, err := w.FlushBytes()
		if err != nil {
			t.Fatalf("FlushBytes error %s", err)
		}
		if got := decompressAll(t, data); got != s {
			t.Fatalf("got %q; want %q", got, s)
		}
		if len(w.Bytes()) != 0 {
			t.Fatalf("FlushBytes didn't reset the output")
		}
	}
	w.WriteString("kept")
	if err = w.Flush(); err != nil {
		t.Fatalf("Flush error %s", err)
	}
	p := bytes.Clone(w.Bytes())
	if len(p) == 0 || !bytes.Equal(w.Bytes(), p) {
		t.Fatalf("Bytes isn't stable")
	}
	if err = w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	data, err := w.FlushBytes()
	if err != nil {
		t.Fatalf("FlushBytes after Close error %s", err)
	}
	if got := decompressAll(t, data); got != "kept" {
		t.Fatalf("got %q; want %q", got, "kept")
	}

	var sink bytes.Buffer
	w, err = NewWriter(&sink)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	if _, err = w.FlushBytes(); err == nil {
		t.Fatalf("FlushBytes with sink succeeded")
	}
}

func TestWriterPutCharIntegers(t *testing.T) {
	type code uint32
	w, err := NewWriter(nil)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	values := []any{uint16(65), int32(66), int8(67), uint64(68),
		int16(69 + 256), code(70), uintptr(71), int64(-1)}
	for _, v := range values {
		if n, err := w.PutChar(v); n != 1 || err != nil {
			t.Fatalf("PutChar(%T(%v)) returned %d, %v", v, v, n, err)
		}
	}
	if got := decompressAll(t, mustFlushBytes(t, w)); got != "ABCDEFG\xff" {
		t.Fatalf("got %q; want %q", got, "ABCDEFG\xff")
	}
}

func mustFlushBytes(t *testing.T, w *Writer) []byte {
	t.Helper()
	data, err := w.FlushBytes()
	if err != nil {
		t.Fatalf("FlushBytes error %s", err)
	}
	return data
}

// failWriter fails as long as fail is set.
type failWriter struct {
	fail bool
	err  error
	bytes.Buffer
}

func (w *failWriter) Write(p []byte) (n int, err error) {
	if w.fail {
		return 0, w.err
	}
	return w.Buffer.Write(p)
}

func TestWriterFlushRetry(t *testing.T) {
	errFail := errors.New("disk full")
	sink := &failWriter{fail: true, err: errFail}
	w, err := NewWriter(sink)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	w.WriteString("retry me\n")
	if err = w.Flush(); !errors.Is(err, errFail) {
		t.Fatalf("Flush error %v; want %v", err, errFail)
	}
	if w.Buffered() != 9 {
		t.Fatalf("Buffered returned %d after failed Flush; want 9",
			w.Buffered())
	}
	sink.fail = false
	if err = w.Flush(); err != nil {
		t.Fatalf("Flush error %s", err)
	}
	if got := decompressAll(t, sink.Bytes()); got != "retry me\n" {
		t.Fatalf("got %q", got)
	}

	sink = &failWriter{fail: true, err: os.ErrClosed}
	if w, err = NewWriter(sink); err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	w.WriteString("x")
	if err = w.Flush(); !errors.Is(err, ErrSinkClosed) {
		t.Fatalf("Flush error %v; want %v", err, ErrSinkClosed)
	}
}

func TestWriterCloseRetry(t *testing.T) {
	errFail := errors.New("disk full")
	sink := &failWriter{fail: true, err: errFail}
	w, err := NewWriter(sink)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	w.WriteString("keep me\n")
	if err = w.Close(); !errors.Is(err, errFail) {
		t.Fatalf("Close error %v; want %v", err, errFail)
	}
	if w.Closed() {
		t.Fatalf("writer closed after failed Close")
	}
	if w.Buffered() != 8 {
		t.Fatalf("Buffered returned %d after failed Close; want 8",
			w.Buffered())
	}
	sink.fail = false
	if err = w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	if !w.Closed() {
		t.Fatalf("Closed returned false")
	}
	if got := decompressAll(t, sink.Bytes()); got != "keep me\n" {
		t.Fatalf("got %q", got)
	}
	if err = w.Close(); err != ErrClosed {
		t.Fatalf("second Close error %v; want %v", err, ErrClosed)
	}
}

type closeRecorder struct {
	closed bool
	io.Writer
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestWriterCloseSink(t *testing.T) {
	for _, closeSink := range []bool{false, true} {
		sink := &closeRecorder{Writer: io.Discard}
		w, err := NewWriterConfig(sink,
			WriterConfig{CloseSink: closeSink})
		if err != nil {
			t.Fatalf("NewWriterConfig error %s", err)
		}
		if err = w.Close(); err != nil {
			t.Fatalf("Close error %s", err)
		}
		if sink.closed != closeSink {
			t.Fatalf("sink closed %t; want %t", sink.closed,
				closeSink)
		}
	}
}

func TestWriterConfig(t *testing.T) {
	tests := []struct {
		cfg WriterConfig
		ok  bool
	}{
		{WriterConfig{}, true},
		{WriterConfig{BlockSize: 1}, true},
		{WriterConfig{BlockSize: 10}, false},
		{WriterConfig{BlockSize: -1}, false},
		{WriterConfig{WorkFactor: 250}, true},
		{WriterConfig{WorkFactor: 251}, false},
		{WriterConfig{WorkFactor: -1}, false},
	}
	for _, tc := range tests {
		_, err := NewWriterConfig(nil, tc.cfg)
		if tc.ok && err != nil {
			t.Fatalf("NewWriterConfig(%+v) error %s", tc.cfg, err)
		}
		if !tc.ok && !errors.Is(err, ErrConfig) {
			t.Fatalf("NewWriterConfig(%+v) error %v; want %v",
				tc.cfg, err, ErrConfig)
		}
	}
	var cfg WriterConfig
	cfg.ApplyDefaults()
	if cfg.BlockSize != DefaultBlockSize {
		t.Fatalf("BlockSize %d; want %d", cfg.BlockSize,
			DefaultBlockSize)
	}
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriterConfig(nil, WriterConfig{
		Logger: xlog.New(&buf, ""),
	})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	w.WriteString("abc")
	if err = w.Flush(); err != nil {
		t.Fatalf("Flush error %s", err)
	}
	if !strings.HasPrefix(buf.String(),
		"bz2 writer: component of 3 bytes compressed to ") {
		t.Fatalf("log output %q", buf.String())
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{nil, ""},
		{"s", "s"},
		{[]byte("b"), "b"},
		{dummy{}, "dummy"},
		{errors.New("e"), "e"},
		{true, "true"},
		{-7, "-7"},
		{uint8(200), "200"},
		{int64(1) << 40, "1099511627776"},
		{2.3, "2.3"},
		{float32(0.1), "0.1"},
		{1e21, "1e+21"},
		{struct{ A int }{3}, "{3}"},
	}
	for _, tc := range tests {
		if got := Stringify(tc.v); got != tc.want {
			t.Fatalf("Stringify(%#v) returned %q; want %q",
				tc.v, got, tc.want)
		}
	}
}

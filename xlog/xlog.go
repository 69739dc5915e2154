// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package xlog provides a Logger interface and supporting functions to control
the debug output of the bz2 readers and writers.

The log.Logger type of the standard library supports the interface. A nil
Logger switches the output off; the functions of the package check for nil,
so callers never need to guard a call.

Every reader and writer carries its own Logger in its configuration. There is
no package-level logger, so two readers in the same program may log to
different destinations or not at all.
*/
package xlog

import (
	"fmt"
	"io"
	"log"
)

// Logger is the interface required for debug output. The log.Logger type
// supports this interface.
type Logger interface {
	Output(calldepth int, s string) error
}

// New returns a Logger writing to w with the given prefix. If w is nil, New
// returns nil, which disables the output.
func New(w io.Writer, prefix string) Logger {
	if w == nil {
		return nil
	}
	return log.New(w, prefix, 0)
}

// Print outputs the arguments using the logger. If the logger is nil nothing
// will be printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints the arguments using the format string. If the logger argument
// is nil nothing will be printed and the arguments are not formatted.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger argument is
// nil nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}

// prefixLogger prepends a fixed prefix to every message.
type prefixLogger struct {
	l      Logger
	prefix string
}

func (p prefixLogger) Output(calldepth int, s string) error {
	return p.l.Output(calldepth+1, p.prefix+s)
}

// WithPrefix returns a Logger that prepends prefix to every message before
// passing it to l. For a nil l the function returns nil.
func WithPrefix(l Logger, prefix string) Logger {
	if l == nil {
		return nil
	}
	return prefixLogger{l: l, prefix: prefix}
}

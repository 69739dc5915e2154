// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xio provides tools to handle I/O operations. It contains the
// [CloserStack] type that releases a set of stacked resources, for instance a
// file and the compressed stream on top of it, in reverse order of their
// acquisition.
package xio

import (
	"errors"
	"io"
)

// CloserStack holds resources that must be closed in reverse order.
type CloserStack struct {
	Stack []io.Closer
}

// NewCloserStack creates a new CloserStack with an empty stack.
func NewCloserStack() *CloserStack {
	return &CloserStack{}
}

// Push adds a new Closer to the top of the stack. It panics if the Closer is
// nil.
func (s *CloserStack) Push(c io.Closer) {
	if c == nil {
		panic("cannot push nil Closer onto stack")
	}
	s.Stack = append(s.Stack, c)
}

// Close closes all resources from the top of the stack to the bottom and
// combines the errors. Every resource is closed even if a resource above it
// failed. The stack is cleared, so calling Close twice is harmless.
func (s *CloserStack) Close() error {
	var errs []error
	for k := len(s.Stack) - 1; k >= 0; k-- {
		if err := s.Stack[k].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.Stack = nil
	return errors.Join(errs...)
}

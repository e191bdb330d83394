// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"io"
	"strings"
)

type tableError struct {
	text  string
	cause error
}

func TableError(text string) error {
	return &tableError{text, nil}
}

func TableErrorf(format string, args ...interface{}) error {
	return &tableError{fmt.Sprintf(format, args...), nil}
}

func WrapTableError(cause error, text string) error {
	return &tableError{text, cause}
}

func (e *tableError) Error() string      { return e.text }
func (e *tableError) TableError() string { return e.text }
func (e *tableError) Unwrap() error      { return e.cause }

// IllegalInstruction carries the byte or bytes which didn't match any
// encoding.
type IllegalInstruction struct {
	Bytes []byte
}

func Illegal(b ...byte) *IllegalInstruction {
	return &IllegalInstruction{append([]byte(nil), b...)}
}

func (e *IllegalInstruction) Error() string {
	var s strings.Builder
	s.WriteString("illegal instruction:")
	for _, b := range e.Bytes {
		fmt.Fprintf(&s, " %02x", b)
	}
	return s.String()
}

func (e *IllegalInstruction) IllegalInstruction() string { return e.Error() }

// ErrTruncated is returned when input ends in the middle of an instruction.
var ErrTruncated truncated

type truncated struct{}

func (truncated) Error() string     { return "truncated instruction" }
func (truncated) Truncated() string { return "truncated instruction" }
func (truncated) Unwrap() error     { return io.ErrUnexpectedEOF }

// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports the error types of the decoder.
//
// Errors caused by a malformed instruction table implement the following
// interface:
//
//     interface {
//         TableError() string
//     }
//
// A table error may wrap the read error of the table source.
package errors

import (
	internal "github.com/tsavola/dec86/internal/errors"
)

// IllegalInstruction indicates that a byte, or the combination of the first
// two bytes of an instruction, doesn't match any encoding.
type IllegalInstruction = internal.IllegalInstruction

// ErrTruncated indicates that the byte source ended before an instruction was
// complete.  It wraps io.ErrUnexpectedEOF.
var ErrTruncated error = internal.ErrTruncated

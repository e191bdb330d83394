// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dec86 decodes 8086 machine code.
//
// Decoding is driven by a textual encoding table which is compiled into
// dispatch tables once.  The bundled table is available via Default.
//
// Table format
//
// Lines starting with '#' are comments.  A line starting with '=' names the
// mnemonic of the following encoding lines.  An encoding line consists of an
// 8-character first byte template, optionally followed by an 8-character
// mode/reg/rm byte template which begins with "md", and effect flags.
// Whitespace is insignificant.  When the templates of two lines match the same
// byte value, the later line is used.
//
// Errors
//
// Table errors implement the TableError method (see the errors subpackage).
// Decode returns *errors.IllegalInstruction when a byte doesn't match any
// encoding, and errors.ErrTruncated when the input ends in the middle of an
// instruction.  io.EOF is returned only if the input ends between
// instructions.  Other read errors are passed through as is.
//
package dec86

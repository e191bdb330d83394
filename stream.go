// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dec86

import (
	"io"

	"github.com/tsavola/dec86/internal/errors"
)

// Stream decodes consecutive instructions from a byte slice.
type Stream struct {
	d    *Decoder
	code []byte
	off  int
}

func NewStream(d *Decoder, code []byte) *Stream {
	return &Stream{d: d, code: code}
}

// Offset of the next instruction.
func (s *Stream) Offset() int {
	return s.off
}

// Next instruction.  io.EOF is returned at the end of the slice.  On other
// errors the offset stays at the start of the failed instruction.
func (s *Stream) Next() (insn Insn, err error) {
	if s.off >= len(s.code) {
		err = io.EOF
		return
	}

	r := byteSlice(s.code[s.off:])
	insn, err = s.d.Decode(&r)
	if err != nil {
		if err == io.EOF {
			err = errors.ErrTruncated
		}
		return
	}

	s.off += insn.Len
	return
}

// Bytes of an instruction which was just returned by Next.
func (s *Stream) Bytes(insn Insn) []byte {
	return s.code[s.off-insn.Len : s.off]
}

// Skip n bytes, e.g. past an illegal instruction.
func (s *Stream) Skip(n int) {
	s.off += n
	if s.off > len(s.code) {
		s.off = len(s.code)
	}
}

type byteSlice []byte

func (b *byteSlice) ReadByte() (x byte, err error) {
	if len(*b) == 0 {
		err = io.EOF
		return
	}
	x = (*b)[0]
	*b = (*b)[1:]
	return
}

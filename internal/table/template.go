// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"strings"
)

// TemplateLen is the number of characters in a byte template.
const TemplateLen = 8

// Marker which begins a mode/reg/rm byte template.
const modRegRmMarker = "md"

// Canonical field letters.
const (
	letterReg = 'r'
	letterSeg = 'g'
	letterMod = 'm'
	letterRM  = 'n'
)

type alias struct {
	from string
	to   string
}

// Aliases are applied one after another.
var (
	opcodeAliases = []alias{
		{"reg", "rrr"},
		{"sr", "gg"},
		{"xxx", "rrr"}, // ESC external opcode is stored as a register selector
	}

	modRegRmAliases = []alias{
		{"md", "mm"},
		{"r/m", "nnn"},
		{"reg", "rrr"},
		{"sr", "gg"},
		{"yyy", "ggg"}, // ESC external opcode is stored as a segment selector
	}
)

func canonical(s string, aliases []alias) string {
	for _, a := range aliases {
		s = strings.ReplaceAll(s, a.from, a.to)
	}
	return s
}

// Template matches the fixed bits of a byte.
type Template struct {
	Mask  byte
	Value byte
}

func (t Template) Match(b byte) bool {
	return b&t.Mask == t.Value
}

func (t Template) String() string {
	var b [TemplateLen]byte
	for i := range b {
		bit := byte(0x80) >> uint(i)
		switch {
		case t.Mask&bit == 0:
			b[i] = '*'
		case t.Value&bit == 0:
			b[i] = '0'
		default:
			b[i] = '1'
		}
	}
	return string(b[:])
}

// Field is a group of bits within a byte.  Shift is the position of its least
// significant bit.
type Field struct {
	Mask  byte
	Shift uint8
}

func (f Field) Defined() bool { return f.Mask != 0 }

func (f Field) Extract(b byte) byte {
	return (b & f.Mask) >> f.Shift
}

// Set reports whether any bit of the field is set in b.
func (f Field) Set(b byte) bool {
	return b&f.Mask != 0
}

// fields accumulates named fields across the templates of a table line.
type fields struct {
	d, w, s, v, z Field
	reg, seg      Field
	mod, rm       Field
}

func (f *Field) bit(bit byte, pos int) {
	*f = Field{bit, uint8(TemplateLen - 1 - pos)}
}

func (f *Field) add(bit byte, pos int) {
	f.Mask |= bit
	f.Shift = uint8(TemplateLen - 1 - pos)
}

// compileOpcode compiles a canonical first byte template.  Characters which
// are not recognized leave their bit unconstrained.
func compileOpcode(text string, f *fields) (t Template) {
	for i := 0; i < TemplateLen; i++ {
		bit := byte(0x80) >> uint(i)

		switch text[i] {
		case '0':
			t.Mask |= bit

		case '1':
			t.Mask |= bit
			t.Value |= bit

		case 'd':
			f.d.bit(bit, i)

		case 'w':
			f.w.bit(bit, i)

		case 's':
			f.s.bit(bit, i)

		case 'v':
			f.v.bit(bit, i)

		case 'z':
			f.z.bit(bit, i)

		case letterSeg:
			f.seg.add(bit, i)

		case letterReg:
			f.reg.add(bit, i)
		}
	}
	return
}

// compileModRegRm compiles a canonical mode/reg/rm byte template.  Register
// and segment selector fields are accumulated into the same fields which
// compileOpcode uses.
func compileModRegRm(text string, f *fields) (t Template) {
	for i := 0; i < TemplateLen; i++ {
		bit := byte(0x80) >> uint(i)

		switch text[i] {
		case '0':
			t.Mask |= bit

		case '1':
			t.Mask |= bit
			t.Value |= bit

		case letterMod:
			f.mod.add(bit, i)

		case letterRM:
			f.rm.add(bit, i)

		case letterSeg:
			f.seg.add(bit, i)

		case letterReg:
			f.reg.add(bit, i)
		}
	}
	return
}

// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regfile implements 8086 register state.
//
// Byte registers are stored as halves of their word registers: writing AH
// changes the high byte of AX and nothing else.
package regfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsavola/dec86/reg"
)

// Flag is a bit index of the flags word.
type Flag uint8

const (
	CF = Flag(0)  // carry
	PF = Flag(2)  // parity
	AF = Flag(4)  // auxiliary carry
	ZF = Flag(6)  // zero
	SF = Flag(7)  // sign
	OF = Flag(8)  // overflow
	IF = Flag(9)  // interrupt enable
	DF = Flag(10) // direction
	TF = Flag(11) // trap
)

// Flags in bit order.
var Flags = []Flag{CF, PF, AF, ZF, SF, OF, IF, DF, TF}

var flagLetters = map[Flag]byte{
	CF: 'C',
	PF: 'P',
	AF: 'A',
	ZF: 'Z',
	SF: 'S',
	OF: 'O',
	IF: 'I',
	DF: 'D',
	TF: 'T',
}

func (f Flag) mask() uint16 { return 1 << f }

func (f Flag) String() string {
	if c, found := flagLetters[f]; found {
		return string(c) + "F"
	}
	return fmt.Sprintf("<invalid flag %d>", uint8(f))
}

// Order in which registers are listed.
var Order = []reg.R{reg.AX, reg.BX, reg.CX, reg.DX, reg.SP, reg.BP, reg.SI, reg.DI, reg.CS, reg.DS, reg.SS, reg.ES}

const numCells = 12

func cell(r reg.R) int {
	switch {
	case r >= reg.AX && r <= reg.DI:
		return int(r - reg.AX)

	case r.IsSegment():
		return 8 + int(r-reg.ES)
	}

	panic(fmt.Errorf("register file: invalid register: %s", r))
}

// File is a value type; copying it takes a snapshot.
type File struct {
	cells [numCells]uint16
	Flags uint16
}

// Get register value.  Byte registers are zero-extended.
func (f *File) Get(r reg.R) uint16 {
	if word, half, ok := r.Parent(); ok {
		x := f.cells[cell(word)]
		if half == reg.High {
			x >>= 8
		}
		return x & 0xff
	}
	return f.cells[cell(r)]
}

// Set register value.  Only the low byte of x is used for byte registers.
func (f *File) Set(r reg.R, x uint16) {
	if word, half, ok := r.Parent(); ok {
		p := &f.cells[cell(word)]
		if half == reg.High {
			*p = *p&0x00ff | (x&0xff)<<8
		} else {
			*p = *p&0xff00 | x&0xff
		}
		return
	}
	f.cells[cell(r)] = x
}

func (f *File) SetFlag(flag Flag)   { f.Flags |= flag.mask() }
func (f *File) ClearFlag(flag Flag) { f.Flags &^= flag.mask() }
func (f *File) Test(flag Flag) bool { return f.Flags&flag.mask() != 0 }

func (f *File) SetFlagTo(flag Flag, value bool) {
	if value {
		f.SetFlag(flag)
	} else {
		f.ClearFlag(flag)
	}
}

// FlagString lists the letters of the set flags in bit order.
func (f *File) FlagString() string {
	var b strings.Builder
	for _, flag := range Flags {
		if f.Test(flag) {
			b.WriteByte(flagLetters[flag])
		}
	}
	return b.String()
}

// Change of a word or segment register value.
type Change struct {
	Reg reg.R
	Old uint16
	New uint16
}

func (c Change) String() string {
	return fmt.Sprintf("%s: 0x%04x -> 0x%04x", c.Reg, c.Old, c.New)
}

// Diff lists the registers whose values differ from prev, in Order.
func (f *File) Diff(prev *File) (changes []Change) {
	for _, r := range Order {
		if old, x := prev.Get(r), f.Get(r); old != x {
			changes = append(changes, Change{r, old, x})
		}
	}
	return
}

// Fprint lists every register followed by the flags.
func (f *File) Fprint(w io.Writer) (err error) {
	for _, r := range Order {
		if _, err = fmt.Fprintf(w, "%s: 0x%04x\n", r, f.Get(r)); err != nil {
			return
		}
	}
	_, err = fmt.Fprintf(w, "flags: %s\n", f.FlagString())
	return
}

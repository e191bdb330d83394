// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reg names the 8086 registers.
//
// The eight byte registers are halves of the four general-purpose word
// registers AX, CX, DX and BX.  SP, BP, SI, DI and the segment registers have
// no byte alias.
package reg

import (
	"fmt"
	"strings"
)

type R byte

const (
	None = R(iota)

	AL
	CL
	DL
	BL
	AH
	CH
	DH
	BH

	AX
	CX
	DX
	BX
	SP
	BP
	SI
	DI

	ES
	CS
	SS
	DS

	NumRegs
)

// Width of a register in bytes.
type Width uint8

const (
	Byte = Width(1)
	Word = Width(2)
)

// Half of a word register.
type Half uint8

const (
	Low  = Half(0)
	High = Half(1)
)

// Selector tables in instruction encoding order.
var (
	Bytes    = [8]R{AL, CL, DL, BL, AH, CH, DH, BH}
	Words    = [8]R{AX, CX, DX, BX, SP, BP, SI, DI}
	Segments = [4]R{ES, CS, SS, DS}
)

var names = [NumRegs]string{
	None: "",
	AL:   "AL",
	CL:   "CL",
	DL:   "DL",
	BL:   "BL",
	AH:   "AH",
	CH:   "CH",
	DH:   "DH",
	BH:   "BH",
	AX:   "AX",
	CX:   "CX",
	DX:   "DX",
	BX:   "BX",
	SP:   "SP",
	BP:   "BP",
	SI:   "SI",
	DI:   "DI",
	ES:   "ES",
	CS:   "CS",
	SS:   "SS",
	DS:   "DS",
}

type alias struct {
	word R
	half Half
}

var aliases = [NumRegs]alias{
	AL: {AX, Low},
	AH: {AX, High},
	CL: {CX, Low},
	CH: {CX, High},
	DL: {DX, Low},
	DH: {DX, High},
	BL: {BX, Low},
	BH: {BX, High},
}

// Select a general-purpose register by its 3-bit encoding.
func Select(sel byte, wide bool) R {
	if wide {
		return Words[sel&7]
	}
	return Bytes[sel&7]
}

// Segment register by its 2-bit encoding.  Only the low two bits of sel are
// significant.
func Segment(sel byte) R {
	return Segments[sel&3]
}

func (r R) Valid() bool     { return r > None && r < NumRegs }
func (r R) IsByte() bool    { return r >= AL && r <= BH }
func (r R) IsSegment() bool { return r >= ES && r <= DS }

func (r R) Width() Width {
	if r.IsByte() {
		return Byte
	}
	return Word
}

// Parent returns the word register containing byte register r.  ok is false
// for word and segment registers.
func (r R) Parent() (word R, half Half, ok bool) {
	if !r.IsByte() {
		return
	}
	a := aliases[r]
	return a.word, a.half, true
}

// Alias returns the byte register which is the given half of word register
// r, or None if r has no byte aliases.
func (r R) Alias(half Half) R {
	for b := AL; b <= BH; b++ {
		if a := aliases[b]; a.word == r && a.half == half {
			return b
		}
	}
	return None
}

func (r R) String() string {
	if r < NumRegs {
		return names[r]
	}
	return fmt.Sprintf("<invalid register %d>", byte(r))
}

// Lookup register by name (case-insensitive).
func Lookup(name string) (r R, found bool) {
	name = strings.ToUpper(name)
	for r = AL; r < NumRegs; r++ {
		if names[r] == name {
			found = true
			return
		}
	}
	r = None
	return
}

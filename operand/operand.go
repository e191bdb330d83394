// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package operand describes the register-or-memory operand of a decoded
// instruction.
package operand

import (
	"fmt"

	"github.com/tsavola/dec86/reg"
)

// Base of an effective address.
type Base uint8

const (
	BXSI = Base(iota)
	BXDI
	BPSI
	BPDI
	SI
	DI
	BP
	BX
	Direct
)

// Bases in r/m encoding order.  Encoding 6 with mode 0 means Direct instead
// of BP.
var Bases = [8]Base{BXSI, BXDI, BPSI, BPDI, SI, DI, BP, BX}

var baseStrings = [...]string{
	BXSI:   "BX + SI",
	BXDI:   "BX + DI",
	BPSI:   "BP + SI",
	BPDI:   "BP + DI",
	SI:     "SI",
	DI:     "DI",
	BP:     "BP",
	BX:     "BX",
	Direct: "",
}

func (b Base) String() string {
	if int(b) < len(baseStrings) {
		return baseStrings[b]
	}
	return fmt.Sprintf("<invalid base %d>", uint8(b))
}

// Registers which are summed to form the base address.  Direct has none.
func (b Base) Registers() (base, index reg.R) {
	switch b {
	case BXSI:
		return reg.BX, reg.SI
	case BXDI:
		return reg.BX, reg.DI
	case BPSI:
		return reg.BP, reg.SI
	case BPDI:
		return reg.BP, reg.DI
	case SI:
		return reg.SI, reg.None
	case DI:
		return reg.DI, reg.None
	case BP:
		return reg.BP, reg.None
	case BX:
		return reg.BX, reg.None
	}
	return reg.None, reg.None
}

// Mem is a memory reference.  For Direct, Disp is the address.
type Mem struct {
	Base Base
	Disp int32
}

func (m Mem) String() string {
	if m.Base == Direct {
		return fmt.Sprintf("[%d]", m.Disp)
	}

	switch {
	case m.Disp > 0:
		return fmt.Sprintf("[%s + %d]", m.Base, m.Disp)
	case m.Disp < 0:
		return fmt.Sprintf("[%s - %d]", m.Base, -int64(m.Disp))
	default:
		return fmt.Sprintf("[%s]", m.Base)
	}
}

type Kind uint8

const (
	None = Kind(iota)
	Register
	Memory
)

// Operand is either a register or a memory reference, or nothing.
type Operand struct {
	Kind Kind
	Reg  reg.R
	Mem  Mem
}

func Reg(r reg.R) Operand {
	return Operand{Kind: Register, Reg: r}
}

func MemRef(b Base, disp int32) Operand {
	return Operand{Kind: Memory, Mem: Mem{b, disp}}
}

func (o Operand) IsNone() bool { return o.Kind == None }
func (o Operand) IsReg() bool  { return o.Kind == Register }
func (o Operand) IsMem() bool  { return o.Kind == Memory }

func (o Operand) String() string {
	switch o.Kind {
	case Register:
		return o.Reg.String()

	case Memory:
		return o.Mem.String()

	default:
		return ""
	}
}

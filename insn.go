// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dec86

import (
	"github.com/tsavola/dec86/opcode"
	"github.com/tsavola/dec86/operand"
	"github.com/tsavola/dec86/reg"
)

// Insn is a decoded instruction.  It doesn't refer to decoder state.
type Insn struct {
	Mnemonic opcode.Mnemonic

	ToReg      bool // Reg is the destination operand.
	Wide       bool // Operands are words.
	SignExtend bool
	RotateCL   bool // Shift count is in CL.
	WhileZero  bool // Repeat prefix variant.

	Reg reg.R           // None if there is no register operand.
	RM  operand.Operand // Register-or-memory operand.

	Imm        int32
	ImmSize    uint8  // Size of the immediate in bytes; 0 if there is none.
	FarSegment uint16 // Segment part of a far pointer immediate.

	Len int // Number of bytes consumed.
}

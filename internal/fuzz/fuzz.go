// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fuzz

import (
	"fmt"

	"github.com/bnagy/gapstone"
	"github.com/tsavola/dec86"
	"github.com/tsavola/dec86/opcode"
)

// Fuzz decodes data and compares each instruction length with capstone.
func Fuzz(data []byte) int {
	d, err := dec86.Default()
	if err != nil {
		panic(err)
	}

	engine, err := gapstone.New(gapstone.CS_ARCH_X86, gapstone.CS_MODE_16)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	s := dec86.NewStream(d, data)

	for {
		insn, err := s.Next()
		if err != nil {
			if s.Offset() == 0 {
				return 0
			}
			return 1
		}

		if err := CheckLength(&engine, insn, data[s.Offset()-insn.Len:]); err != nil {
			panic(err)
		}
	}
}

// Comparable reports whether the instruction length is expected to agree
// with capstone.  Prefixes are decoded as separate instructions, and capstone
// treats some opcodes as two-byte escapes or instruction prefixes.
func Comparable(insn dec86.Insn, b1 byte) bool {
	switch insn.Mnemonic {
	case opcode.SEGMENT, opcode.LOCK, opcode.REP, opcode.WAIT, opcode.ESC:
		return false
	}

	switch b1 {
	case 0x0f: // pop cs
		return false

	case 0xc4, 0xc5: // les, lds with a register operand look like vex
		return !insn.RM.IsReg()
	}

	return true
}

// CheckLength of an instruction decoded from the start of code, which may
// extend past the instruction.  Encodings rejected by capstone are skipped.
func CheckLength(engine *gapstone.Engine, insn dec86.Insn, code []byte) error {
	if !Comparable(insn, code[0]) {
		return nil
	}

	insns, err := engine.Disasm(code, 0, 1)
	if err != nil || len(insns) == 0 {
		return nil
	}

	if size := int(insns[0].Size); size != insn.Len {
		return fmt.Errorf("% x: %s length %d, capstone %s %s length %d", code[:insn.Len], insn.Mnemonic, insn.Len, insns[0].Mnemonic, insns[0].OpStr, size)
	}

	return nil
}

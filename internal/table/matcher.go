// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"

	"github.com/tsavola/dec86/opcode"
)

// Operation is shared by all matchers compiled from a table line.  It must
// not be modified.
type Operation struct {
	Mnemonic opcode.Mnemonic
	Effects  Effects
}

func (op *Operation) String() string {
	if op.Effects == 0 {
		return op.Mnemonic.String()
	}
	return fmt.Sprintf("%s %s", op.Mnemonic, op.Effects)
}

// OpcodeMatcher is compiled from the first byte template of a line.
type OpcodeMatcher struct {
	Template
	D, W, S, V, Z Field
	Reg           Field
	Seg           Field

	// Op is nil if a mode/reg/rm byte must be read to determine the
	// operation.
	Op *Operation

	Line int // Table source line number.
}

// ModRegRmMatcher is compiled from the mode/reg/rm byte template of a line.
type ModRegRmMatcher struct {
	Template
	Mod Field
	RM  Field
	Reg Field
	Seg Field
	Op  *Operation

	Line int
}

// MatchesReg reports whether the template admits the 3-bit selector found in
// bits 3-5 of a mode/reg/rm byte.  Other bits of the byte are taken to be
// zero.
func (m *ModRegRmMatcher) MatchesReg(sel byte) bool {
	return m.Match(sel << 3)
}

func newMatchers(op *Operation, opcodeText, modRegRmText string, line int) (o *OpcodeMatcher, m *ModRegRmMatcher) {
	var f fields

	o = &OpcodeMatcher{
		Template: compileOpcode(opcodeText, &f),
		Line:     line,
	}
	o.D = f.d
	o.W = f.w
	o.S = f.s
	o.V = f.v
	o.Z = f.z
	o.Reg = f.reg
	o.Seg = f.seg

	if modRegRmText == "" {
		o.Op = op
		return
	}

	m = &ModRegRmMatcher{
		Template: compileModRegRm(modRegRmText, &f),
		Op:       op,
		Line:     line,
	}
	m.Mod = f.mod
	m.RM = f.rm
	m.Reg = f.reg
	m.Seg = f.seg
	return
}

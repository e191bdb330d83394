// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm renders decoded instructions as text.
package disasm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsavola/dec86"
	"github.com/tsavola/dec86/opcode"
	"github.com/tsavola/dec86/reg"
	"golang.org/x/xerrors"
)

// Format an instruction.  Immediates are decimal.
func Format(insn dec86.Insn) string {
	return format(insn, "")
}

func format(insn dec86.Insn, target string) string {
	var imm string
	switch {
	case target != "":
		imm = target

	case insn.ImmSize == 4:
		imm = fmt.Sprintf("%d:%d", insn.FarSegment, uint16(insn.Imm))

	case insn.ImmSize > 0:
		imm = strconv.Itoa(int(insn.Imm))
	}

	m := insn.Mnemonic.String()
	hasReg := insn.Reg != reg.None
	hasRM := !insn.RM.IsNone()

	switch {
	case !hasReg && !hasRM:
		if imm == "" {
			return m
		}
		return m + " " + imm

	case hasReg && hasRM:
		if insn.ToReg {
			return fmt.Sprintf("%s %s, %s", m, insn.Reg, insn.RM)
		}
		return fmt.Sprintf("%s %s, %s", m, insn.RM, insn.Reg)

	case hasReg:
		if imm == "" {
			return fmt.Sprintf("%s %s", m, insn.Reg)
		}
		return fmt.Sprintf("%s %s, %s", m, insn.Reg, imm)

	default:
		if imm == "" {
			if insn.RotateCL {
				return fmt.Sprintf("%s %s, %s", m, insn.RM, reg.CL)
			}
			return fmt.Sprintf("%s %s", m, insn.RM)
		}

		var size string
		if insn.RM.IsMem() {
			if insn.Wide {
				size = "word "
			} else {
				size = "byte "
			}
		}
		return fmt.Sprintf("%s %s, %s%s", m, insn.RM, size, imm)
	}
}

// Target address of a relative branch.
func Target(addr int, insn dec86.Insn) (target int, ok bool) {
	if insn.ImmSize == 0 || insn.ImmSize > 2 || insn.Reg != reg.None || !insn.RM.IsNone() {
		return
	}

	switch {
	case insn.Mnemonic.IsConditional(), insn.Mnemonic == opcode.JMP, insn.Mnemonic == opcode.CALL:
		target = addr + insn.Len + int(insn.Imm)
		if insn.ImmSize == 2 {
			target &= 0xffff
		}
		ok = true
	}
	return
}

// Fprint decodes and prints code.  Branch targets within code get labels.
// Instructions which were decoded before an error are printed.
func Fprint(w io.Writer, d *dec86.Decoder, code []byte, showBytes bool) error {
	type item struct {
		addr int
		insn dec86.Insn
	}

	var (
		items     []item
		decodeErr error
	)

	s := dec86.NewStream(d, code)
	for {
		addr := s.Offset()
		insn, err := s.Next()
		if err != nil {
			if err != io.EOF {
				decodeErr = xerrors.Errorf("offset 0x%04x: %w", addr, err)
			}
			break
		}
		items = append(items, item{addr, insn})
	}

	starts := make(map[int]bool, len(items))
	for _, x := range items {
		starts[x.addr] = true
	}

	targets := make(map[int]string)
	sequence := 0

	for _, x := range items {
		if addr, ok := Target(x.addr, x.insn); ok && starts[addr] {
			if _, found := targets[addr]; !found {
				targets[addr] = fmt.Sprintf(".L%d", sequence)
				sequence++
			}
		}
	}

	for _, x := range items {
		if name, found := targets[x.addr]; found {
			if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
				return err
			}
		}

		var label string
		if addr, ok := Target(x.addr, x.insn); ok {
			label = targets[addr]
		}

		var prefix string
		if showBytes {
			hex := fmt.Sprintf("% x", code[x.addr:x.addr+x.insn.Len])
			prefix = fmt.Sprintf("%04x  %-18s", x.addr, hex)
		}

		line := prefix + "\t" + format(x.insn, label)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}

	return decodeErr
}

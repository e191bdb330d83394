// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dec86

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/tsavola/dec86/errors"
	"github.com/tsavola/dec86/opcode"
	"github.com/tsavola/dec86/operand"
	"github.com/tsavola/dec86/reg"
	"golang.org/x/xerrors"
)

var undefinedBytes = []byte{0xc0, 0xc1, 0xc8, 0xc9, 0xd6, 0xf1}

func init() {
	for b := 0x60; b <= 0x6f; b++ {
		undefinedBytes = append(undefinedBytes, byte(b))
	}
}

func isUndefined(b byte) bool {
	return bytes.IndexByte(undefinedBytes, b) >= 0
}

func defaultDecoder(t *testing.T) *Decoder {
	t.Helper()

	d, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	return d
}

var decodeTests = []struct {
	code []byte
	insn Insn
}{
	{[]byte{0x89, 0xd8}, Insn{Mnemonic: opcode.MOV, Wide: true, Reg: reg.BX, RM: operand.Reg(reg.AX), Len: 2}},
	{[]byte{0x8b, 0xd8}, Insn{Mnemonic: opcode.MOV, ToReg: true, Wide: true, Reg: reg.BX, RM: operand.Reg(reg.AX), Len: 2}},
	{[]byte{0x88, 0xe0}, Insn{Mnemonic: opcode.MOV, Reg: reg.AH, RM: operand.Reg(reg.AL), Len: 2}},
	{[]byte{0x8b, 0x47, 0xff}, Insn{Mnemonic: opcode.MOV, ToReg: true, Wide: true, Reg: reg.AX, RM: operand.MemRef(operand.BX, -1), Len: 3}},
	{[]byte{0x8b, 0x87, 0xff, 0x00}, Insn{Mnemonic: opcode.MOV, ToReg: true, Wide: true, Reg: reg.AX, RM: operand.MemRef(operand.BX, 255), Len: 4}},
	{[]byte{0x8b, 0x06, 0x34, 0x12}, Insn{Mnemonic: opcode.MOV, ToReg: true, Wide: true, Reg: reg.AX, RM: operand.MemRef(operand.Direct, 0x1234), Len: 4}},
	{[]byte{0x8a, 0x00}, Insn{Mnemonic: opcode.MOV, ToReg: true, Reg: reg.AL, RM: operand.MemRef(operand.BXSI, 0), Len: 2}},
	{[]byte{0x8a, 0x46, 0x00}, Insn{Mnemonic: opcode.MOV, ToReg: true, Reg: reg.AL, RM: operand.MemRef(operand.BP, 0), Len: 3}},
	{[]byte{0xb8, 0x34, 0x12}, Insn{Mnemonic: opcode.MOV, ToReg: true, Wide: true, Reg: reg.AX, Imm: 0x1234, ImmSize: 2, Len: 3}},
	{[]byte{0xb1, 0xff}, Insn{Mnemonic: opcode.MOV, ToReg: true, Reg: reg.CL, Imm: -1, ImmSize: 1, Len: 2}},
	{[]byte{0xc7, 0x06, 0x34, 0x12, 0x78, 0x56}, Insn{Mnemonic: opcode.MOV, Wide: true, RM: operand.MemRef(operand.Direct, 0x1234), Imm: 0x5678, ImmSize: 2, Len: 6}},
	{[]byte{0xa1, 0x34, 0x12}, Insn{Mnemonic: opcode.MOV, ToReg: true, Wide: true, Reg: reg.AX, RM: operand.MemRef(operand.Direct, 0x1234), Len: 3}},
	{[]byte{0xa2, 0x34, 0x12}, Insn{Mnemonic: opcode.MOV, Reg: reg.AL, RM: operand.MemRef(operand.Direct, 0x1234), Len: 3}},
	{[]byte{0x8e, 0xd8}, Insn{Mnemonic: opcode.MOV, ToReg: true, Wide: true, Reg: reg.DS, RM: operand.Reg(reg.AX), Len: 2}},
	{[]byte{0x8c, 0xc1}, Insn{Mnemonic: opcode.MOV, Wide: true, Reg: reg.ES, RM: operand.Reg(reg.CX), Len: 2}},
	{[]byte{0x81, 0xc3, 0x34, 0x12}, Insn{Mnemonic: opcode.ADD, Wide: true, RM: operand.Reg(reg.BX), Imm: 0x1234, ImmSize: 2, Len: 4}},
	{[]byte{0x83, 0xc3, 0xff}, Insn{Mnemonic: opcode.ADD, Wide: true, SignExtend: true, RM: operand.Reg(reg.BX), Imm: -1, ImmSize: 1, Len: 3}},
	{[]byte{0x80, 0xfb, 0xff}, Insn{Mnemonic: opcode.CMP, RM: operand.Reg(reg.BL), Imm: 255, ImmSize: 1, Len: 3}},
	{[]byte{0x05, 0x34, 0x12}, Insn{Mnemonic: opcode.ADD, ToReg: true, Wide: true, Reg: reg.AX, Imm: 0x1234, ImmSize: 2, Len: 3}},
	{[]byte{0x50}, Insn{Mnemonic: opcode.PUSH, ToReg: true, Wide: true, Reg: reg.AX, Len: 1}},
	{[]byte{0x1e}, Insn{Mnemonic: opcode.PUSH, Wide: true, Reg: reg.DS, Len: 1}},
	{[]byte{0xff, 0x36, 0x34, 0x12}, Insn{Mnemonic: opcode.PUSH, Wide: true, RM: operand.MemRef(operand.Direct, 0x1234), Len: 4}},
	{[]byte{0x8f, 0xc0}, Insn{Mnemonic: opcode.POP, Wide: true, RM: operand.Reg(reg.AX), Len: 2}},
	{[]byte{0x91}, Insn{Mnemonic: opcode.XCHG, Wide: true, Reg: reg.CX, RM: operand.Reg(reg.AX), Len: 1}},
	{[]byte{0x90}, Insn{Mnemonic: opcode.NOP, Len: 1}},
	{[]byte{0xe4, 0x60}, Insn{Mnemonic: opcode.IN, ToReg: true, Reg: reg.AL, Imm: 0x60, ImmSize: 1, Len: 2}},
	{[]byte{0xef}, Insn{Mnemonic: opcode.OUT, Wide: true, Reg: reg.AX, Len: 1}},
	{[]byte{0x8d, 0x40, 0x02}, Insn{Mnemonic: opcode.LEA, Wide: true, Reg: reg.AX, RM: operand.MemRef(operand.BXSI, 2), Len: 3}},
	{[]byte{0xfe, 0xc0}, Insn{Mnemonic: opcode.INC, RM: operand.Reg(reg.AL), Len: 2}},
	{[]byte{0xff, 0xc8}, Insn{Mnemonic: opcode.DEC, Wide: true, RM: operand.Reg(reg.AX), Len: 2}},
	{[]byte{0x47}, Insn{Mnemonic: opcode.INC, ToReg: true, Wide: true, Reg: reg.DI, Len: 1}},
	{[]byte{0xe8, 0xfd, 0xff}, Insn{Mnemonic: opcode.CALL, Imm: -3, ImmSize: 2, Len: 3}},
	{[]byte{0x9a, 0x78, 0x56, 0x34, 0x12}, Insn{Mnemonic: opcode.CALL, Imm: 0x5678, ImmSize: 4, FarSegment: 0x1234, Len: 5}},
	{[]byte{0xff, 0xd3}, Insn{Mnemonic: opcode.CALL, Wide: true, RM: operand.Reg(reg.BX), Len: 2}},
	{[]byte{0xeb, 0xfe}, Insn{Mnemonic: opcode.JMP, Imm: -2, ImmSize: 1, Len: 2}},
	{[]byte{0x74, 0x10}, Insn{Mnemonic: opcode.JE, Imm: 16, ImmSize: 1, Len: 2}},
	{[]byte{0xe2, 0xfe}, Insn{Mnemonic: opcode.LOOP, Imm: -2, ImmSize: 1, Len: 2}},
	{[]byte{0xc2, 0x04, 0x00}, Insn{Mnemonic: opcode.RET, Imm: 4, ImmSize: 2, Len: 3}},
	{[]byte{0xcd, 0x21}, Insn{Mnemonic: opcode.INT, Imm: 0x21, ImmSize: 1, Len: 2}},
	{[]byte{0xcc}, Insn{Mnemonic: opcode.INT3, Len: 1}},
	{[]byte{0xd3, 0xe0}, Insn{Mnemonic: opcode.SHL, Wide: true, RotateCL: true, RM: operand.Reg(reg.AX), Len: 2}},
	{[]byte{0xd0, 0xcb}, Insn{Mnemonic: opcode.ROR, RM: operand.Reg(reg.BL), Len: 2}},
	{[]byte{0xf6, 0xc3, 0x01}, Insn{Mnemonic: opcode.TEST, RM: operand.Reg(reg.BL), Imm: 1, ImmSize: 1, Len: 3}},
	{[]byte{0xf7, 0xe3}, Insn{Mnemonic: opcode.MUL, Wide: true, RM: operand.Reg(reg.BX), Len: 2}},
	{[]byte{0xd4, 0x0a}, Insn{Mnemonic: opcode.AAM, Imm: 10, ImmSize: 1, Len: 2}},
	{[]byte{0xf3}, Insn{Mnemonic: opcode.REP, WhileZero: true, Len: 1}},
	{[]byte{0xf2}, Insn{Mnemonic: opcode.REP, Len: 1}},
	{[]byte{0xa5}, Insn{Mnemonic: opcode.MOVS, Wide: true, Len: 1}},
	{[]byte{0x2e}, Insn{Mnemonic: opcode.SEGMENT, Wide: true, Reg: reg.CS, Len: 1}},
	{[]byte{0xf0}, Insn{Mnemonic: opcode.LOCK, Len: 1}},
	{[]byte{0xf4}, Insn{Mnemonic: opcode.HLT, Len: 1}},
}

func TestDecode(t *testing.T) {
	d := defaultDecoder(t)

	for _, x := range decodeTests {
		insn, err := d.DecodeBytes(x.code)
		if err != nil {
			t.Errorf("% x: %v", x.code, err)
			continue
		}
		if insn != x.insn {
			t.Errorf("% x:\n%s\nexpected:\n%s", x.code, spew.Sdump(insn), spew.Sdump(x.insn))
		}
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	d := defaultDecoder(t)

	r := bytes.NewReader([]byte{0x89, 0xd8, 0x90})

	insn, err := d.Decode(r)
	if err != nil {
		t.Fatal(err)
	}
	if insn.Len != 2 || r.Len() != 1 {
		t.Errorf("length %d, remaining %d", insn.Len, r.Len())
	}
}

func TestDecodeDeterministic(t *testing.T) {
	d := defaultDecoder(t)

	for _, x := range decodeTests {
		insn1, err1 := d.DecodeBytes(x.code)
		insn2, err2 := d.DecodeBytes(x.code)
		if insn1 != insn2 || err1 != err2 {
			t.Errorf("% x: %v %v", x.code, err1, err2)
		}
	}
}

func TestDecodeCoverage(t *testing.T) {
	d := defaultDecoder(t)

	for i := 0; i < 256; i++ {
		b1 := byte(i)

		var decoded bool

		for sel := byte(0); sel < 8; sel++ {
			code := []byte{b1, 0xc0 | sel<<3, 0, 0, 0, 0}

			insn, err := d.DecodeBytes(code)
			if err != nil {
				var illegal *errors.IllegalInstruction
				if !xerrors.As(err, &illegal) {
					t.Errorf("% x: %v", code, err)
				}
				continue
			}

			if insn.Mnemonic == opcode.Invalid || insn.Len < 1 || insn.Len > len(code) {
				t.Errorf("% x:\n%s", code, spew.Sdump(insn))
			}
			decoded = true
		}

		if decoded == isUndefined(b1) {
			t.Errorf("0x%02x: decoded = %v", b1, decoded)
		}
	}
}

func TestDecodeMode3(t *testing.T) {
	d := defaultDecoder(t)

	for _, b1 := range []byte{0x00, 0x01, 0x88, 0x89, 0x8a, 0x8b, 0x30, 0x31, 0x84, 0x85} {
		for b2 := 0xc0; b2 <= 0xff; b2++ {
			insn, err := d.DecodeBytes([]byte{b1, byte(b2)})
			if err != nil {
				t.Errorf("%02x %02x: %v", b1, b2, err)
				continue
			}

			wide := b1&1 != 0
			if insn.Wide != wide {
				t.Errorf("%02x %02x: wide", b1, b2)
			}
			if rm := operand.Reg(reg.Select(byte(b2)&7, wide)); insn.RM != rm {
				t.Errorf("%02x %02x: rm %s, expected %s", b1, b2, insn.RM, rm)
			}
			if r := reg.Select(byte(b2>>3)&7, wide); insn.Reg != r {
				t.Errorf("%02x %02x: reg %s, expected %s", b1, b2, insn.Reg, r)
			}
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	d := defaultDecoder(t)

	for _, code := range [][]byte{
		{0x89},
		{0x8b, 0x47},
		{0x8b, 0x87, 0xff},
		{0xb8, 0x34},
		{0x9a, 0x78, 0x56, 0x34},
		{0x81, 0xc3, 0x34},
	} {
		insn, err := d.DecodeBytes(code)
		if err != errors.ErrTruncated {
			t.Errorf("% x: %v", code, err)
		}
		if insn != (Insn{}) {
			t.Errorf("% x: partial record:\n%s", code, spew.Sdump(insn))
		}
		if !xerrors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("% x: %v does not wrap io.ErrUnexpectedEOF", code, err)
		}
	}
}

func TestDecodeEOF(t *testing.T) {
	d := defaultDecoder(t)

	if _, err := d.Decode(bytes.NewReader(nil)); err != io.EOF {
		t.Errorf("Decode: %v", err)
	}
	if _, err := d.DecodeBytes(nil); err != errors.ErrTruncated {
		t.Errorf("DecodeBytes: %v", err)
	}
}

func TestDecodeReadError(t *testing.T) {
	d := defaultDecoder(t)

	r := io.MultiReader(bytes.NewReader([]byte{0x89}), iotest.ErrReader(io.ErrClosedPipe))
	_, err := d.Decode(byteReader{r})
	if !xerrors.Is(err, io.ErrClosedPipe) {
		t.Errorf("error: %v", err)
	}
}

type byteReader struct {
	r io.Reader
}

func (br byteReader) ReadByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(br.r, b[:])
	return b[0], err
}

func TestDecodeIllegal(t *testing.T) {
	d := defaultDecoder(t)

	for _, x := range []struct {
		code  []byte
		bytes []byte
		text  string
	}{
		{[]byte{0x60, 0x00}, []byte{0x60}, "illegal instruction: 60"},
		{[]byte{0xf1}, []byte{0xf1}, "illegal instruction: f1"},
		{[]byte{0xfe, 0xd0}, []byte{0xfe, 0xd0}, "illegal instruction: fe d0"},
		{[]byte{0x8f, 0x38}, []byte{0x8f, 0x38}, "illegal instruction: 8f 38"},
		{[]byte{0x8e, 0xe0}, []byte{0x8e, 0xe0}, "illegal instruction: 8e e0"},
	} {
		_, err := d.DecodeBytes(x.code)

		var illegal *errors.IllegalInstruction
		if !xerrors.As(err, &illegal) {
			t.Errorf("% x: %v", x.code, err)
			continue
		}
		if !bytes.Equal(illegal.Bytes, x.bytes) {
			t.Errorf("% x: bytes % x", x.code, illegal.Bytes)
		}
		if err.Error() != x.text {
			t.Errorf("% x: %q", x.code, err.Error())
		}
	}
}

func TestCompileLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := Compile(&Config{Logger: logger}, strings.NewReader(DefaultTable()))
	if err != nil {
		t.Fatal(err)
	}

	var compiled, superseded int

	for _, e := range hook.AllEntries() {
		switch e.Message {
		case "compiled encoding":
			compiled++

		case "encoding supersedes earlier line":
			superseded++
		}
	}

	if compiled < 100 || superseded == 0 {
		t.Errorf("%d compiled, %d superseded", compiled, superseded)
	}
}

func TestCompileCustom(t *testing.T) {
	d, err := Compile(nil, strings.NewReader(`
= nop
10010000
= xchg
10010reg wide to_acc
`))
	if err != nil {
		t.Fatal(err)
	}

	insn, err := d.DecodeBytes([]byte{0x90})
	if err != nil {
		t.Fatal(err)
	}
	if insn.Mnemonic != opcode.XCHG || insn.Reg != reg.AX || insn.RM != operand.Reg(reg.AX) {
		t.Errorf("%s", spew.Sdump(insn))
	}

	_, err = d.DecodeBytes([]byte{0x89, 0xd8})
	if _, ok := err.(*errors.IllegalInstruction); !ok {
		t.Errorf("error: %v", err)
	}
}

func TestCompileError(t *testing.T) {
	_, err := Compile(nil, strings.NewReader("= bogus\n"))

	var tableErr interface{ TableError() string }
	if !xerrors.As(err, &tableErr) {
		t.Errorf("error: %v", err)
	}
}

func TestDefaultShared(t *testing.T) {
	d1 := defaultDecoder(t)
	d2 := defaultDecoder(t)
	if d1 != d2 {
		t.Error("Default compiled twice")
	}
}

// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dec86

import (
	"bytes"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/tsavola/dec86/internal/errorpanic"
	"github.com/tsavola/dec86/internal/errors"
	"github.com/tsavola/dec86/internal/loader"
	"github.com/tsavola/dec86/internal/reader"
	"github.com/tsavola/dec86/internal/table"
	"github.com/tsavola/dec86/operand"
	"github.com/tsavola/dec86/reg"
)

// Config for table compilation.
type Config struct {
	// Logger receives debug entries about compiled encodings.  It may be nil.
	Logger logrus.FieldLogger
}

// Decoder is immutable.  It may be used concurrently to decode different
// byte sources.
type Decoder struct {
	t *table.Table
}

// Compile an instruction table.  config may be nil.
func Compile(config *Config, r io.Reader) (*Decoder, error) {
	if config == nil {
		config = new(Config)
	}

	t, err := table.Compile(r, config.Logger)
	if err != nil {
		return nil, err
	}

	return &Decoder{t}, nil
}

// Decode one instruction.  r must be positioned at an instruction boundary.
func (d *Decoder) Decode(r io.ByteReader) (insn Insn, err error) {
	b1, err := r.ReadByte()
	if err != nil {
		return
	}

	defer func() {
		if x := recover(); x != nil {
			insn = Insn{}
			err = errorpanic.Handle(x)
		}
	}()

	c := reader.Counter{R: r, N: 1}
	insn = d.decode(b1, loader.L{R: &c})
	insn.Len = c.N
	return
}

// DecodeBytes decodes the instruction at the start of b.
func (d *Decoder) DecodeBytes(b []byte) (Insn, error) {
	insn, err := d.Decode(bytes.NewReader(b))
	if err == io.EOF {
		err = errors.ErrTruncated
	}
	return insn, err
}

func (d *Decoder) decode(b1 byte, load loader.L) (insn Insn) {
	o := d.t.Primary[b1]
	if o == nil {
		panic(errors.Illegal(b1))
	}

	op := o.Op

	toReg := o.Reg.Defined()
	if o.D.Defined() {
		toReg = o.D.Set(b1)
	}
	wide := o.W.Set(b1) || (op != nil && op.Effects.Has(table.Wide))

	insn.SignExtend = o.S.Set(b1)
	insn.RotateCL = o.V.Set(b1)
	insn.WhileZero = o.Z.Set(b1)

	var r reg.R

	switch {
	case o.Reg.Defined():
		r = reg.Select(o.Reg.Extract(b1), wide)

	case o.Seg.Defined():
		r = reg.Segment(o.Seg.Extract(b1))
		wide = true
	}

	var rm operand.Operand

	if op == nil {
		b2 := load.Byte()

		var m *table.ModRegRmMatcher
		if group := d.t.Secondary[b1]; group != nil {
			m = group[(b2>>3)&7]
		}
		if m == nil {
			panic(errors.Illegal(b1, b2))
		}

		op = m.Op
		if op.Effects.Has(table.Wide) {
			wide = true
		}

		switch {
		case m.Reg.Defined():
			r = reg.Select(m.Reg.Extract(b2), wide)

		case m.Seg.Defined():
			r = reg.Segment(m.Seg.Extract(b2))
			wide = true
		}

		rm = regOrMem(load, m.Mod.Extract(b2), m.RM.Extract(b2), wide)
	}

	for _, e := range op.Effects.List() {
		switch e {
		case table.AddrW:
			if wide {
				rm = operand.MemRef(operand.Direct, load.Uint16())
			} else {
				rm = operand.MemRef(operand.Direct, load.Uint8())
			}

		case table.Addr16:
			rm = operand.MemRef(operand.Direct, load.Uint16())

		case table.DataW:
			if wide {
				insn.Imm, insn.ImmSize = load.Uint16(), 2
			} else {
				insn.Imm, insn.ImmSize = load.Int8(), 1
			}

		case table.DataS:
			switch {
			case !wide:
				insn.Imm, insn.ImmSize = load.Uint8(), 1
			case insn.SignExtend:
				insn.Imm, insn.ImmSize = load.Int8(), 1
			default:
				insn.Imm, insn.ImmSize = load.Uint16(), 2
			}

		case table.Uint8:
			insn.Imm, insn.ImmSize = load.Uint8(), 1

		case table.Uint16:
			insn.Imm, insn.ImmSize = load.Uint16(), 2

		case table.Sint8:
			insn.Imm, insn.ImmSize = load.Int8(), 1

		case table.Sint16:
			insn.Imm, insn.ImmSize = load.Int16(), 2

		case table.Far:
			insn.Imm, insn.ImmSize = load.Uint16(), 4
			insn.FarSegment = uint16(load.Uint16())

		case table.ToAcc:
			if r == reg.None {
				r = reg.Select(0, wide)
				toReg = true
			} else {
				rm = operand.Reg(reg.Select(0, wide))
				toReg = false
			}

		case table.FromAcc:
			if r == reg.None {
				r = reg.Select(0, wide)
				toReg = false
			} else {
				rm = operand.Reg(reg.Select(0, wide))
				toReg = true
			}

		case table.ToSR:
			toReg = true

		case table.FromSR:
			toReg = false
		}
	}

	insn.Mnemonic = op.Mnemonic
	insn.ToReg = toReg
	insn.Wide = wide
	insn.Reg = r
	insn.RM = rm
	return
}

// regOrMem resolves the r/m field according to the mode field.  Mode 2
// displacement is read without sign extension.
func regOrMem(load loader.L, mod, sel byte, wide bool) operand.Operand {
	switch mod {
	case 0:
		if sel == 6 {
			return operand.MemRef(operand.Direct, load.Uint16())
		}
		return operand.MemRef(operand.Bases[sel], 0)

	case 1:
		return operand.MemRef(operand.Bases[sel], load.Int8())

	case 2:
		return operand.MemRef(operand.Bases[sel], load.Uint16())

	default:
		return operand.Reg(reg.Select(sel, wide))
	}
}

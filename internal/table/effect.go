// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"strings"
)

// Effect alters how the bytes following the opcode (and mode/reg/rm) bytes
// are consumed, or how operand roles are assigned.  Effects of an operation
// are applied in declaration order.
type Effect uint8

const (
	AddrW   = Effect(iota) // direct memory operand; address size follows w
	Addr16                 // direct memory operand; 16-bit address
	DataW                  // immediate word if w, signed byte otherwise
	DataS                  // immediate word if w and not s, signed byte if w and s, byte otherwise
	Uint8                  // unsigned byte immediate
	Uint16                 // unsigned word immediate
	Sint8                  // signed byte immediate
	Sint16                 // signed word immediate
	Far                    // offset word immediate followed by segment word
	ToAcc                  // accumulator is destination
	FromAcc                // accumulator is source
	ToSR                   // segment register is destination
	FromSR                 // segment register is source
	Wide                   // operands are words regardless of w

	NumEffects
)

var effectTokens = [NumEffects]string{
	AddrW:   "ADDRW",
	Addr16:  "ADDR16",
	DataW:   "DATAW",
	DataS:   "DATAS",
	Uint8:   "UINT8",
	Uint16:  "UINT16",
	Sint8:   "SINT8",
	Sint16:  "SINT16",
	Far:     "FAR",
	ToAcc:   "TO_ACC",
	FromAcc: "FROM_ACC",
	ToSR:    "TO_SR",
	FromSR:  "FROM_SR",
	Wide:    "WIDE",
}

func (e Effect) String() string {
	if e < NumEffects {
		return effectTokens[e]
	}
	return "<invalid effect>"
}

// Effects is a set.
type Effects uint16

func (es Effects) Has(e Effect) bool {
	return es&(1<<e) != 0
}

func (es Effects) With(e Effect) Effects {
	return es | 1<<e
}

// List in declaration order.
func (es Effects) List() (list []Effect) {
	for e := Effect(0); e < NumEffects; e++ {
		if es.Has(e) {
			list = append(list, e)
		}
	}
	return
}

func (es Effects) String() string {
	var b strings.Builder
	for i, e := range es.List() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	return b.String()
}

// parseEffects consumes every effect token found in text (case-insensitive).
// Characters which are not part of any token are returned as remainder.
func parseEffects(text string) (es Effects, remainder string) {
	remainder = strings.ToUpper(text)
	for e := Effect(0); e < NumEffects; e++ {
		token := effectTokens[e]
		if strings.Contains(remainder, token) {
			es = es.With(e)
			remainder = strings.ReplaceAll(remainder, token, "")
		}
	}
	return
}

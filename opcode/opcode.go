// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package opcode enumerates 8086 instruction mnemonics.
package opcode

import (
	"fmt"
	"strings"
)

type Mnemonic uint8

const (
	Invalid = Mnemonic(iota)

	// Data transfer
	MOV
	PUSH
	POP
	XCHG
	IN
	OUT
	XLAT
	LEA
	LDS
	LES
	LAHF
	SAHF
	PUSHF
	POPF

	// Arithmetic
	ADD
	ADC
	INC
	AAA
	DAA
	SUB
	SBB
	DEC
	NEG
	CMP
	AAS
	DAS
	MUL
	IMUL
	AAM
	DIV
	IDIV
	AAD
	CBW
	CWD

	// Logic
	NOT
	SHL
	SHR
	SAR
	ROL
	ROR
	RCL
	RCR
	AND
	TEST
	OR
	XOR

	// String manipulation
	REP
	MOVS
	CMPS
	SCAS
	LODS
	STOS

	// Control transfer
	CALL
	JMP
	RET
	RETF
	JE
	JL
	JLE
	JB
	JBE
	JP
	JO
	JS
	JNE
	JNL
	JNLE
	JNB
	JNBE
	JNP
	JNO
	JNS
	LOOP
	LOOPZ
	LOOPNZ
	JCXZ
	INT
	INT3
	INTO
	IRET

	// Processor control
	CLC
	CMC
	STC
	CLD
	STD
	CLI
	STI
	HLT
	WAIT
	ESC
	LOCK
	SEGMENT
	NOP

	NumMnemonics
)

var mnemonicStrings = [NumMnemonics]string{
	Invalid: "<invalid>",
	MOV:     "MOV",
	PUSH:    "PUSH",
	POP:     "POP",
	XCHG:    "XCHG",
	IN:      "IN",
	OUT:     "OUT",
	XLAT:    "XLAT",
	LEA:     "LEA",
	LDS:     "LDS",
	LES:     "LES",
	LAHF:    "LAHF",
	SAHF:    "SAHF",
	PUSHF:   "PUSHF",
	POPF:    "POPF",
	ADD:     "ADD",
	ADC:     "ADC",
	INC:     "INC",
	AAA:     "AAA",
	DAA:     "DAA",
	SUB:     "SUB",
	SBB:     "SBB",
	DEC:     "DEC",
	NEG:     "NEG",
	CMP:     "CMP",
	AAS:     "AAS",
	DAS:     "DAS",
	MUL:     "MUL",
	IMUL:    "IMUL",
	AAM:     "AAM",
	DIV:     "DIV",
	IDIV:    "IDIV",
	AAD:     "AAD",
	CBW:     "CBW",
	CWD:     "CWD",
	NOT:     "NOT",
	SHL:     "SHL",
	SHR:     "SHR",
	SAR:     "SAR",
	ROL:     "ROL",
	ROR:     "ROR",
	RCL:     "RCL",
	RCR:     "RCR",
	AND:     "AND",
	TEST:    "TEST",
	OR:      "OR",
	XOR:     "XOR",
	REP:     "REP",
	MOVS:    "MOVS",
	CMPS:    "CMPS",
	SCAS:    "SCAS",
	LODS:    "LODS",
	STOS:    "STOS",
	CALL:    "CALL",
	JMP:     "JMP",
	RET:     "RET",
	RETF:    "RETF",
	JE:      "JE",
	JL:      "JL",
	JLE:     "JLE",
	JB:      "JB",
	JBE:     "JBE",
	JP:      "JP",
	JO:      "JO",
	JS:      "JS",
	JNE:     "JNE",
	JNL:     "JNL",
	JNLE:    "JNLE",
	JNB:     "JNB",
	JNBE:    "JNBE",
	JNP:     "JNP",
	JNO:     "JNO",
	JNS:     "JNS",
	LOOP:    "LOOP",
	LOOPZ:   "LOOPZ",
	LOOPNZ:  "LOOPNZ",
	JCXZ:    "JCXZ",
	INT:     "INT",
	INT3:    "INT3",
	INTO:    "INTO",
	IRET:    "IRET",
	CLC:     "CLC",
	CMC:     "CMC",
	STC:     "STC",
	CLD:     "CLD",
	STD:     "STD",
	CLI:     "CLI",
	STI:     "STI",
	HLT:     "HLT",
	WAIT:    "WAIT",
	ESC:     "ESC",
	LOCK:    "LOCK",
	SEGMENT: "SEGMENT",
	NOP:     "NOP",
}

var byName = make(map[string]Mnemonic, NumMnemonics)

func init() {
	for m := Invalid + 1; m < NumMnemonics; m++ {
		byName[mnemonicStrings[m]] = m
	}
}

func (m Mnemonic) String() string {
	if m < NumMnemonics {
		return mnemonicStrings[m]
	}
	return fmt.Sprintf("<unknown mnemonic %d>", uint8(m))
}

// Lookup mnemonic by name (case-insensitive).
func Lookup(name string) (m Mnemonic, found bool) {
	m, found = byName[strings.ToUpper(name)]
	return
}

// IsConditional reports whether m is a conditional jump or a loop.  Their
// immediate is a signed 8-bit displacement.
func (m Mnemonic) IsConditional() bool {
	switch m {
	case JE, JL, JLE, JB, JBE, JP, JO, JS, JNE, JNL, JNLE, JNB, JNBE, JNP, JNO, JNS,
		LOOP, LOOPZ, LOOPNZ, JCXZ:
		return true
	}
	return false
}

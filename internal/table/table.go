// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table compiles a textual instruction encoding table into dispatch
// tables indexed by the first instruction byte, and by the reg field of the
// mode/reg/rm byte.
package table

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/tsavola/dec86/internal/errors"
	"github.com/tsavola/dec86/opcode"
)

const (
	commentPrefix = "#"
	sectionPrefix = "="
)

// Table is immutable after compilation.
type Table struct {
	Primary   [256]*OpcodeMatcher
	Secondary [256]*[8]*ModRegRmMatcher
}

// Entries counts populated primary slots.
func (t *Table) Entries() (n int) {
	for _, o := range t.Primary {
		if o != nil {
			n++
		}
	}
	return
}

// Compile a table.  Lines are processed in order; a line supersedes earlier
// lines at the byte values which both match.  log may be nil.
func Compile(r io.Reader, log logrus.FieldLogger) (*Table, error) {
	t := new(Table)

	var (
		mnemonic opcode.Mnemonic
		lineNum  int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNum++

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		if strings.HasPrefix(line, sectionPrefix) {
			name := strings.TrimSpace(line[len(sectionPrefix):])
			m, found := opcode.Lookup(name)
			if !found {
				return nil, errors.TableErrorf("line %d: unknown mnemonic: %q", lineNum, name)
			}
			mnemonic = m
			continue
		}

		if mnemonic == opcode.Invalid {
			return nil, errors.TableErrorf("line %d: encoding precedes first mnemonic", lineNum)
		}

		o, m, err := parseLine(mnemonic, line, lineNum)
		if err != nil {
			return nil, err
		}

		if log != nil {
			log.WithFields(logrus.Fields{
				"line":     lineNum,
				"mnemonic": mnemonic,
				"opcode":   o.Template,
			}).Debug("compiled encoding")
		}

		t.install(o, m, log)
	}

	if err := sc.Err(); err != nil {
		return nil, errors.WrapTableError(err, "reading instruction table: "+err.Error())
	}

	return t, nil
}

func parseLine(mnemonic opcode.Mnemonic, line string, lineNum int) (o *OpcodeMatcher, m *ModRegRmMatcher, err error) {
	line = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)

	if len(line) < TemplateLen {
		err = errors.TableErrorf("line %d: short opcode template: %q", lineNum, line)
		return
	}
	opcodeText := line[:TemplateLen]
	line = line[TemplateLen:]

	var modRegRmText string
	if strings.HasPrefix(line, modRegRmMarker) {
		if len(line) < TemplateLen {
			err = errors.TableErrorf("line %d: short mode/reg/rm template: %q", lineNum, line)
			return
		}
		modRegRmText = line[:TemplateLen]
		line = line[TemplateLen:]
	}

	effects, remainder := parseEffects(line)
	if remainder != "" {
		err = errors.TableErrorf("line %d: unhandled flags: %q", lineNum, remainder)
		return
	}

	op := &Operation{mnemonic, effects}

	opcodeText = canonical(opcodeText, opcodeAliases)
	if modRegRmText != "" {
		modRegRmText = canonical(modRegRmText, modRegRmAliases)
	}

	o, m = newMatchers(op, opcodeText, modRegRmText, lineNum)
	return
}

func (t *Table) install(o *OpcodeMatcher, m *ModRegRmMatcher, log logrus.FieldLogger) {
	for i := 0; i < len(t.Primary); i++ {
		if !o.Match(byte(i)) {
			continue
		}

		if prev := t.Primary[i]; prev != nil && log != nil {
			log.WithFields(logrus.Fields{
				"byte":     byte(i),
				"line":     o.Line,
				"previous": prev.Line,
			}).Debug("encoding supersedes earlier line")
		}
		t.Primary[i] = o

		if m == nil {
			continue
		}

		if t.Secondary[i] == nil {
			t.Secondary[i] = new([8]*ModRegRmMatcher)
		}
		for sel := byte(0); sel < 8; sel++ {
			if m.MatchesReg(sel) {
				t.Secondary[i][sel] = m
			}
		}
	}
}

// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reg

import (
	"testing"
)

func TestSelect(t *testing.T) {
	for sel, pair := range [8][2]string{
		{"AL", "AX"},
		{"CL", "CX"},
		{"DL", "DX"},
		{"BL", "BX"},
		{"AH", "SP"},
		{"CH", "BP"},
		{"DH", "SI"},
		{"BH", "DI"},
	} {
		if r := Select(byte(sel), false); r.String() != pair[0] {
			t.Errorf("Select(%d, false) = %s", sel, r)
		}
		if r := Select(byte(sel), true); r.String() != pair[1] {
			t.Errorf("Select(%d, true) = %s", sel, r)
		}
	}
}

func TestSegment(t *testing.T) {
	for sel, name := range []string{"ES", "CS", "SS", "DS"} {
		r := Segment(byte(sel))
		if r.String() != name || !r.IsSegment() || r.Width() != Word {
			t.Errorf("Segment(%d) = %s", sel, r)
		}
	}
}

func TestAliases(t *testing.T) {
	count := 0

	for r := AL; r < NumRegs; r++ {
		word, half, ok := r.Parent()
		if ok != r.IsByte() {
			t.Errorf("%s: Parent ok = %v", r, ok)
		}
		if !ok {
			continue
		}
		count++

		if word.Width() != Word || word.IsSegment() {
			t.Errorf("%s: parent %s is not a general-purpose word register", r, word)
		}
		if word.Alias(half) != r {
			t.Errorf("%s: %s.Alias(%d) = %s", r, word, half, word.Alias(half))
		}
	}

	if count != 8 {
		t.Errorf("%d byte aliases", count)
	}

	for _, r := range []R{SP, BP, SI, DI, ES, CS, SS, DS} {
		if r.Alias(Low) != None || r.Alias(High) != None {
			t.Errorf("%s has a byte alias", r)
		}
	}

	if AX.Alias(Low) != AL || AX.Alias(High) != AH || BX.Alias(High) != BH {
		t.Error("accumulator or base aliases are wrong")
	}
}

func TestLookup(t *testing.T) {
	for r := AL; r < NumRegs; r++ {
		if x, found := Lookup(r.String()); !found || x != r {
			t.Errorf("Lookup(%q) = %s, %v", r.String(), x, found)
		}
	}
	if r, found := Lookup("bh"); !found || r != BH {
		t.Errorf("Lookup(bh) = %s, %v", r, found)
	}
	if _, found := Lookup("EAX"); found {
		t.Error("EAX found")
	}
}

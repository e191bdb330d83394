// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regfile

var parityTable [256]bool

func init() {
	for i := range parityTable {
		even := true
		for x := i; x != 0; x >>= 1 {
			if x&1 != 0 {
				even = !even
			}
		}
		parityTable[i] = even
	}
}

// Parity reports whether the number of set bits in the low byte of x is even.
func Parity(x uint16) bool {
	return parityTable[x&0xff]
}

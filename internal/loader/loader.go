// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"github.com/tsavola/dec86/internal/reader"
)

// L provides panicking little-endian integer reading methods.
type L struct {
	R reader.R
}

func (load L) Byte() byte {
	x, err := load.R.ReadByte()
	if err != nil {
		panic(err)
	}
	return x
}

func (load L) Uint8() int32 {
	return int32(load.Byte())
}

func (load L) Int8() int32 {
	return int32(int8(load.Byte()))
}

func (load L) Uint16() int32 {
	lo := load.Byte()
	hi := load.Byte()
	return int32(uint16(lo) | uint16(hi)<<8)
}

func (load L) Int16() int32 {
	return int32(int16(load.Uint16()))
}

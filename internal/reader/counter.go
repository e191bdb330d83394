// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

// Counter counts the bytes which have been read successfully.
type Counter struct {
	R R
	N int
}

func (c *Counter) ReadByte() (b byte, err error) {
	b, err = c.R.ReadByte()
	if err == nil {
		c.N++
	}
	return
}

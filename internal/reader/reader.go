// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"io"
)

// R is satisfied by bufio.Reader, bytes.Buffer and bytes.Reader, among
// others.
type R = io.ByteReader

// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dec86

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed 8086.txt
var defaultTable string

var defaultOnce struct {
	sync.Once
	d   *Decoder
	err error
}

// DefaultTable text.
func DefaultTable() string {
	return defaultTable
}

// Default decoder for the bundled 8086 table.  It is compiled on first use
// and shared.
func Default() (*Decoder, error) {
	defaultOnce.Do(func() {
		defaultOnce.d, defaultOnce.err = Compile(nil, strings.NewReader(defaultTable))
	})
	return defaultOnce.d, defaultOnce.err
}

// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runetext converts between a sequence of Unicode scalar values
// and well-formed UTF-8 bytes, the wire form of the BARE "string" type
// (spec §4.B). It carries no byte-order mark and rejects ill-formed
// input on decode rather than silently substituting U+FFFD.
package runetext

import (
	"unicode/utf8"

	"github.com/barewire/barewire/barewire"
)

// Encode appends the bytes of s to dst and returns the result. A Go
// string already holds its text as UTF-8, so encoding is a plain copy
// and cannot fail. The bytes are not validated: a string holding
// ill-formed UTF-8 is copied unchanged.
func Encode(dst []byte, s string) []byte {
	return append(dst, s...)
}

// Decode validates that b is well-formed UTF-8 and returns it as a
// string. It fails with barewire.Decoding on the first ill-formed byte
// sequence, reporting the byte offset.
func Decode(b []byte) (string, error) {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return "", barewire.Errorf(barewire.Decoding, "invalid UTF-8 at byte offset %d", i)
		}
		i += size
	}
	return string(b), nil
}

// RuneCount returns the number of Unicode scalar values well-formed
// UTF-8 bytes b decode to.
func RuneCount(b []byte) int {
	return utf8.RuneCount(b)
}

// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package varint implements ULEB128 unsigned variable-length integers
// and their zigzag-mapped signed counterpart (spec §4.C). Writers emit
// the minimal encoding; readers accept redundant continuation bytes but
// never more than the 10 bytes a 64-bit value can require.
package varint

import "github.com/barewire/barewire/barewire"

// MaxBytes is the maximum number of bytes a 64-bit ULEB128 value can
// occupy on the wire.
const MaxBytes = 10

// PutUvarint appends the minimal ULEB128 encoding of v to dst.
func PutUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Uvarint decodes a ULEB128 value from the front of b, returning the
// value and the number of bytes consumed. It fails with
// barewire.Decoding if b is exhausted before a terminating byte is
// found, or if the value would overflow 64 bits.
func Uvarint(b []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i := 0; i < len(b); i++ {
		if i == MaxBytes {
			return 0, 0, barewire.Errorf(barewire.Decoding, "varint overflow: value exceeds 64 bits")
		}
		c := b[i]
		if i == MaxBytes-1 && c&0x7F > 1 {
			// The 10th byte may only contribute bit 63; anything more
			// would require a 65th+ bit.
			return 0, 0, barewire.Errorf(barewire.Decoding, "varint overflow: value exceeds 64 bits")
		}
		v |= uint64(c&0x7F) << shift
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, barewire.Errorf(barewire.Decoding, "varint: unterminated sequence, buffer exhausted")
}

// PutVarint appends the zigzag + ULEB128 encoding of v to dst.
func PutVarint(dst []byte, v int64) []byte {
	return PutUvarint(dst, zigzagEncode(v))
}

// Varint decodes a zigzag ULEB128 value from the front of b.
func Varint(b []byte) (int64, int, error) {
	u, n, err := Uvarint(b)
	if err != nil {
		return 0, 0, err
	}
	return zigzagDecode(u), n, nil
}

func zigzagEncode(n int64) uint64 {
	return (uint64(n) << 1) ^ uint64(n>>63)
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binary packs and unpacks fixed-width integers and IEEE-754
// floats as little-endian byte sequences, the wire form spec §4.A
// requires for every multi-byte BARE primitive. Decoders read from a
// caller-supplied index and never advance an external cursor; that
// bookkeeping belongs to the wire package.
package binary

import "math"

// PutU16 writes v into buf[0:2] little-endian.
func PutU16(buf []byte, v uint16) {
	_ = buf[1]
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
}

// U16 reads a little-endian uint16 starting at buf[0].
func U16(buf []byte) uint16 {
	_ = buf[1]
	return uint16(buf[0]) | uint16(buf[1])<<8
}

// PutU32 writes v into buf[0:4] little-endian.
func PutU32(buf []byte, v uint32) {
	_ = buf[3]
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
}

// U32 reads a little-endian uint32 starting at buf[0].
func U32(buf []byte) uint32 {
	_ = buf[3]
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}

// PutU64 writes v into buf[0:8] little-endian.
func PutU64(buf []byte, v uint64) {
	_ = buf[7]
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
	buf[4] = byte(v >> 32)
	buf[5] = byte(v >> 40)
	buf[6] = byte(v >> 48)
	buf[7] = byte(v >> 56)
}

// U64 reads a little-endian uint64 starting at buf[0].
func U64(buf []byte) uint64 {
	_ = buf[7]
	return uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
		uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
}

// PutI16 writes v into buf[0:2] little-endian.
func PutI16(buf []byte, v int16) { PutU16(buf, uint16(v)) }

// I16 reads a little-endian int16 starting at buf[0].
func I16(buf []byte) int16 { return int16(U16(buf)) }

// PutI32 writes v into buf[0:4] little-endian.
func PutI32(buf []byte, v int32) { PutU32(buf, uint32(v)) }

// I32 reads a little-endian int32 starting at buf[0].
func I32(buf []byte) int32 { return int32(U32(buf)) }

// PutI64 writes v into buf[0:8] little-endian.
func PutI64(buf []byte, v int64) { PutU64(buf, uint64(v)) }

// I64 reads a little-endian int64 starting at buf[0].
func I64(buf []byte) int64 { return int64(U64(buf)) }

// PutF32 writes the little-endian bit pattern of v into buf[0:4]. The
// conversion is value-exact for every one of the 2^32 bit patterns,
// including every quiet and signaling NaN payload: it goes through
// math.Float32bits, which reinterprets the bits without touching them.
func PutF32(buf []byte, v float32) { PutU32(buf, math.Float32bits(v)) }

// F32 reads the little-endian bit pattern at buf[0:4] and reinterprets
// it as a float32, again bit-exact for every pattern.
func F32(buf []byte) float32 { return math.Float32frombits(U32(buf)) }

// PutF64 writes the little-endian bit pattern of v into buf[0:8].
func PutF64(buf []byte, v float64) { PutU64(buf, math.Float64bits(v)) }

// F64 reads the little-endian bit pattern at buf[0:8] and reinterprets
// it as a float64.
func F64(buf []byte) float64 { return math.Float64frombits(U64(buf)) }

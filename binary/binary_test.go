// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binary

import (
	"math"
	"testing"
)

func TestU16RoundTrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 0xFF, 0x1234, 0xFFFF} {
		buf := make([]byte, 2)
		PutU16(buf, v)
		if got := U16(buf); got != v {
			t.Fatalf("U16 round trip: got %#x want %#x", got, v)
		}
	}
}

func TestU32RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0x12345678, 0xFFFFFFFF} {
		buf := make([]byte, 4)
		PutU32(buf, v)
		if got := U32(buf); got != v {
			t.Fatalf("U32 round trip: got %#x want %#x", got, v)
		}
	}
}

func TestU32WireForm(t *testing.T) {
	// S1: u32 = 0x12345678 -> 78 56 34 12
	buf := make([]byte, 4)
	PutU32(buf, 0x12345678)
	want := []byte{0x78, 0x56, 0x34, 0x12}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d: got %#x want %#x", i, buf[i], want[i])
		}
	}
}

func TestU64RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 0x0123456789ABCDEF, math.MaxUint64} {
		buf := make([]byte, 8)
		PutU64(buf, v)
		if got := U64(buf); got != v {
			t.Fatalf("U64 round trip: got %#x want %#x", got, v)
		}
	}
}

func TestSignedRoundTrip(t *testing.T) {
	for _, v := range []int64{0, -1, math.MinInt64, math.MaxInt64, 42, -42} {
		buf := make([]byte, 8)
		PutI64(buf, v)
		if got := I64(buf); got != v {
			t.Fatalf("I64 round trip: got %d want %d", got, v)
		}
	}
	for _, v := range []int16{0, -1, math.MinInt16, math.MaxInt16} {
		buf := make([]byte, 2)
		PutI16(buf, v)
		if got := I16(buf); got != v {
			t.Fatalf("I16 round trip: got %d want %d", got, v)
		}
	}
}

func TestFloatBitExactRoundTrip(t *testing.T) {
	patterns := []uint32{
		0, 1, 0x7F800000, // +Inf
		0xFF800000, // -Inf
		0x7FC00000, // quiet NaN
		0x7F800001, // signaling NaN
		0xFFFFFFFF, // NaN with all bits set
		0x80000000, // -0
	}
	for _, bits := range patterns {
		v := math.Float32frombits(bits)
		buf := make([]byte, 4)
		PutF32(buf, v)
		got := math.Float32bits(F32(buf))
		if got != bits {
			t.Fatalf("float32 bit pattern %#x: round trip got %#x", bits, got)
		}
	}
}

func TestDoubleBitExactRoundTrip(t *testing.T) {
	patterns := []uint64{
		0, 1, 0x7FF0000000000000, // +Inf
		0xFFF0000000000000, // -Inf
		0x7FF8000000000000, // quiet NaN
		0x7FF0000000000001, // signaling NaN
		0x8000000000000000, // -0
	}
	for _, bits := range patterns {
		v := math.Float64frombits(bits)
		buf := make([]byte, 8)
		PutF64(buf, v)
		got := math.Float64bits(F64(buf))
		if got != bits {
			t.Fatalf("float64 bit pattern %#x: round trip got %#x", bits, got)
		}
	}
}

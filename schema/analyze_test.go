// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"testing"

	"github.com/barewire/barewire/platform"
)

func TestSizeOfPrimitiveFixed(t *testing.T) {
	ctx := platform.Default64
	s := New()
	got := SizeOf(ctx, s, Prim(platform.U32, Fixed))
	if !got.IsFixed || got.Min != 4 || got.Max != 4 {
		t.Fatalf("u32 fixed size: got %+v", got)
	}
}

func TestSizeOfVarint(t *testing.T) {
	ctx := platform.Default64
	s := New()
	got := SizeOf(ctx, s, Prim(platform.U64, VarInt))
	if got.IsFixed || got.Min != 1 || got.Max != 10 {
		t.Fatalf("varint size: got %+v", got)
	}
}

func TestSizeOfOptional(t *testing.T) {
	ctx := platform.Default64
	s := New()
	got := SizeOf(ctx, s, Optional(Prim(platform.U8, Fixed)))
	if got.Min != 1 || got.Max != 2 || got.IsFixed {
		t.Fatalf("optional(u8) size: got %+v", got)
	}
}

func TestSizeOfListIsUnbounded(t *testing.T) {
	ctx := platform.Default64
	s := New()
	got := SizeOf(ctx, s, List(Prim(platform.U16, Fixed)))
	if !got.Unbounded || got.Min != 1 {
		t.Fatalf("list size: got %+v", got)
	}
}

func TestSizeOfFixedListOfFixed(t *testing.T) {
	ctx := platform.Default64
	s := New()
	got := SizeOf(ctx, s, FixedList(Prim(platform.U16, Fixed), 4))
	if !got.IsFixed || got.Min != 8 || got.Max != 8 {
		t.Fatalf("fixed list size: got %+v", got)
	}
}

func TestSizeOfUnion(t *testing.T) {
	ctx := platform.Default64
	s := New()
	u := Union(
		UnionCase{Tag: 0, Type: Prim(platform.Void, Fixed)},
		UnionCase{Tag: 1, Type: Prim(platform.U16, Fixed)},
	)
	got := SizeOf(ctx, s, u)
	// tag (1) + min over cases (void contributes 0) = 1
	if got.Min != 1 {
		t.Fatalf("union min size: got %+v", got)
	}
	// tag (1) + max over cases (u16 = 2) = 3
	if got.Max != 3 {
		t.Fatalf("union max size: got %+v", got)
	}
}

func TestStructLayoutMonotonicAndAligned(t *testing.T) {
	ctx := platform.Default64
	s := New()
	st := Struct(
		Field{Name: "flag", Type: Prim(platform.U8, Fixed)},
		Field{Name: "value", Type: Prim(platform.U32, Fixed)},
		Field{Name: "big", Type: Prim(platform.U64, Fixed)},
	)
	s.Define("S", st)
	s.SetRoot("S")

	align := AlignOf(ctx, s, st)
	if align != 8 {
		t.Fatalf("struct align: got %d want 8", align)
	}
	size := SizeOf(ctx, s, st)
	if !size.IsFixed {
		t.Fatalf("expected fixed-size struct, got %+v", size)
	}
	if size.Min%align != 0 {
		t.Fatalf("struct size %d not a multiple of its alignment %d", size.Min, align)
	}
	// flag@0 (1B) + pad(3) -> value@4 (4B) -> big@8 (8B) -> total 16.
	if size.Min != 16 {
		t.Fatalf("struct size: got %d want 16", size.Min)
	}
}

func TestCheckCompatibilitySelf(t *testing.T) {
	s := New()
	s.Define("P", Struct(
		Field{Name: "a", Type: Prim(platform.U32, Fixed)},
	))
	s.SetRoot("P")
	got := CheckCompatibility(s, s)
	if got.Level != FullyCompatible {
		t.Fatalf("self compatibility: got %v", got)
	}
}

func TestCheckCompatibilityBackward(t *testing.T) {
	// S8: old struct {a:u32}, new struct {a:u32, b:u8} -> BackwardCompatible
	oldS := New()
	oldS.Define("P", Struct(Field{Name: "a", Type: Prim(platform.U32, Fixed)}))
	oldS.SetRoot("P")

	newS := New()
	newS.Define("P", Struct(
		Field{Name: "a", Type: Prim(platform.U32, Fixed)},
		Field{Name: "b", Type: Prim(platform.U8, Fixed)},
	))
	newS.SetRoot("P")

	got := CheckCompatibility(oldS, newS)
	if got.Level != BackwardCompatible {
		t.Fatalf("expected BackwardCompatible, got %v (%s)", got.Level, got.Reason)
	}
}

func TestCheckCompatibilityIncompatibleFieldRemoved(t *testing.T) {
	oldS := New()
	oldS.Define("P", Struct(
		Field{Name: "a", Type: Prim(platform.U32, Fixed)},
		Field{Name: "b", Type: Prim(platform.U8, Fixed)},
	))
	oldS.SetRoot("P")

	newS := New()
	newS.Define("P", Struct(Field{Name: "a", Type: Prim(platform.U32, Fixed)}))
	newS.SetRoot("P")

	got := CheckCompatibility(oldS, newS)
	if got.Level != Incompatible {
		t.Fatalf("expected Incompatible, got %v", got.Level)
	}
}

func TestCheckCompatibilityUnion(t *testing.T) {
	oldS := New()
	oldS.Define("U", Union(UnionCase{Tag: 1, Type: Prim(platform.U32, Fixed)}))
	oldS.SetRoot("U")

	newS := New()
	newS.Define("U", Union(
		UnionCase{Tag: 1, Type: Prim(platform.U32, Fixed)},
		UnionCase{Tag: 2, Type: Prim(platform.U8, Fixed)},
	))
	newS.SetRoot("U")

	got := CheckCompatibility(oldS, newS)
	if got.Level != BackwardCompatible {
		t.Fatalf("expected BackwardCompatible, got %v", got.Level)
	}

	got2 := CheckCompatibility(newS, oldS)
	if got2.Level != ForwardCompatible {
		t.Fatalf("expected ForwardCompatible, got %v", got2.Level)
	}
}

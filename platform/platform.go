// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform supplies the host type-kind enumeration and the
// per-target size/alignment answers the schema package needs. BAREWire's
// core never hard-codes the size of a pointer-sized integer; callers
// supply a Context describing the target they are compiling schemas for.
package platform

import "fmt"

// Kind enumerates the primitive BARE type kinds a schema may reference.
// Consumers outside this module are free to extend the set they pass
// around, but the core only understands the values below.
type Kind int

const (
	U8 Kind = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Bool
	Void
	String
)

func (k Kind) String() string {
	switch k {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Bool:
		return "bool"
	case Void:
		return "void"
	case String:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsFloat reports whether k is one of the two IEEE-754 kinds. Map keys
// must reject these (spec §3.3 rule 4).
func (k Kind) IsFloat() bool {
	return k == F32 || k == F64
}

// Context describes a compilation target: the machine word size and the
// size/alignment of a pointer-sized integer on it. The BARE wire format
// itself is platform independent; Context only feeds sizeOf/alignOf for
// in-memory views, where a host may (for example) choose to widen a
// pointer-sized field kind to match its native word.
type Context struct {
	WordSize     int
	PointerSize  int
	PointerAlign int
}

// Default64 is the common LP64-style context: 8-byte words, 8-byte
// pointers, 8-byte pointer alignment.
var Default64 = Context{WordSize: 8, PointerSize: 8, PointerAlign: 8}

// Default32 is the common ILP32-style context.
var Default32 = Context{WordSize: 4, PointerSize: 4, PointerAlign: 4}

// fixedSize and fixedAlign hold the kinds whose size/alignment does not
// vary by target.
var fixedSize = map[Kind]int{
	U8: 1, I8: 1, Bool: 1, Void: 0,
	U16: 2, I16: 2,
	U32: 4, I32: 4, F32: 4,
	U64: 8, I64: 8, F64: 8,
}

// Size returns the natural byte size of kind under ctx. Void is zero
// size; it is only ever legal as a union case payload (spec §3.3 rule 3),
// where the union's own tag carries the byte cost.
func (ctx Context) Size(kind Kind) int {
	if n, ok := fixedSize[kind]; ok {
		return n
	}
	if kind == String {
		return 0 // length-prefixed: no fixed size, see schema.Size.
	}
	panic(fmt.Sprintf("platform: unknown kind %v", kind))
}

// Align returns the natural byte alignment of kind under ctx.
func (ctx Context) Align(kind Kind) int {
	switch kind {
	case Void:
		return 1
	case String:
		return 1
	default:
		if n, ok := fixedSize[kind]; ok {
			return n
		}
	}
	panic(fmt.Sprintf("platform: unknown kind %v", kind))
}

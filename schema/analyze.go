// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"github.com/barewire/barewire/platform"
	"github.com/barewire/barewire/varint"
)

// Size is the derived (min, max, isFixed) triple spec §3.4 defines for
// every SchemaType. A type is fixed-size iff Min == Max and !Unbounded.
type Size struct {
	Min       int
	Max       int
	Unbounded bool
	IsFixed   bool
}

func fixedSize(n int) Size { return Size{Min: n, Max: n, IsFixed: true} }

func unboundedFrom(min int) Size { return Size{Min: min, Unbounded: true} }

// AlignOf returns the alignment of t under ctx (spec §3.4).
func AlignOf(ctx platform.Context, s *Schema, t *SchemaType) int {
	switch t.Kind {
	case TPrimitive:
		return ctx.Align(t.PrimKind)
	case TFixedData:
		return 1
	case TEnum:
		return ctx.Align(t.EnumBase)
	case TOptional:
		a := AlignOf(ctx, s, t.Elem)
		if a < 1 {
			return 1
		}
		return a
	case TList, TFixedList:
		return AlignOf(ctx, s, t.Elem)
	case TMap:
		return max(AlignOf(ctx, s, t.MapKey), AlignOf(ctx, s, t.MapValue))
	case TUnion:
		m := 1
		for _, c := range t.Cases {
			if a := AlignOf(ctx, s, c.Type); a > m {
				m = a
			}
		}
		return m
	case TStruct:
		m := 1
		for _, f := range t.Fields {
			if a := AlignOf(ctx, s, f.Type); a > m {
				m = a
			}
		}
		return m
	case TTypeRef:
		resolved, ok := s.Lookup(t.RefName)
		if !ok {
			return 1
		}
		return AlignOf(ctx, s, resolved)
	default:
		return 1
	}
}

// SizeOf returns the derived (min, max, isFixed) size of t under ctx
// (spec §3.4/§4.F). Struct sizes include the inter-field padding the
// typed view (component H) needs; the raw wire byte count the codec
// produces has no padding and is computed independently per §4.G.
func SizeOf(ctx platform.Context, s *Schema, t *SchemaType) Size {
	switch t.Kind {
	case TPrimitive:
		return primSize(ctx, t)
	case TFixedData:
		return fixedSize(t.FixedLen)
	case TEnum:
		return Size{Min: 1, Max: varint.MaxBytes}
	case TOptional:
		inner := SizeOf(ctx, s, t.Elem)
		if inner.Unbounded {
			return unboundedFrom(1)
		}
		return Size{Min: 1, Max: 1 + inner.Max}
	case TList:
		inner := SizeOf(ctx, s, t.Elem)
		_ = inner
		return unboundedFrom(1)
	case TFixedList:
		inner := SizeOf(ctx, s, t.Elem)
		if inner.Unbounded {
			return unboundedFrom(t.FixedLen * inner.Min)
		}
		min := t.FixedLen * inner.Min
		max := t.FixedLen * inner.Max
		return Size{Min: min, Max: max, IsFixed: inner.IsFixed}
	case TMap:
		return unboundedFrom(1)
	case TUnion:
		return unionSize(ctx, s, t)
	case TStruct:
		return structSize(ctx, s, t)
	case TTypeRef:
		resolved, ok := s.Lookup(t.RefName)
		if !ok {
			return Size{}
		}
		return SizeOf(ctx, s, resolved)
	default:
		return Size{}
	}
}

func primSize(ctx platform.Context, t *SchemaType) Size {
	switch t.Encoding {
	case VarInt:
		return Size{Min: 1, Max: varint.MaxBytes}
	case LengthPrefixed:
		return unboundedFrom(1) // varint(0) alone, for the empty string/data case.
	default: // Fixed
		n := ctx.Size(t.PrimKind)
		return fixedSize(n)
	}
}

func unionSize(ctx platform.Context, s *Schema, t *SchemaType) Size {
	if len(t.Cases) == 0 {
		return fixedSize(1)
	}
	minCase := -1
	maxUnbounded := false
	maxCase := 0
	for i, c := range t.Cases {
		cs := SizeOf(ctx, s, c.Type)
		if minCase == -1 || cs.Min < minCase {
			minCase = cs.Min
		}
		if cs.Unbounded {
			maxUnbounded = true
		} else if cs.Max > maxCase {
			maxCase = cs.Max
		}
		_ = i
	}
	if maxUnbounded {
		return unboundedFrom(1 + minCase)
	}
	isFixed := minCase == maxCase
	return Size{Min: 1 + minCase, Max: 1 + maxCase, IsFixed: isFixed}
}

func structSize(ctx platform.Context, s *Schema, t *SchemaType) Size {
	structAlign := AlignOf(ctx, s, t)

	minCursor, maxCursor := 0, 0
	unbounded := false
	allFixed := true
	for _, f := range t.Fields {
		align := AlignOf(ctx, s, f.Type)
		fs := SizeOf(ctx, s, f.Type)
		minCursor = roundUp(minCursor, align) + fs.Min
		maxCursor = roundUp(maxCursor, align)
		if fs.Unbounded {
			unbounded = true
		} else {
			maxCursor += fs.Max
		}
		if !fs.IsFixed {
			allFixed = false
		}
	}
	minCursor = roundUp(minCursor, structAlign)
	if unbounded {
		return Size{Min: minCursor, Unbounded: true}
	}
	maxCursor = roundUp(maxCursor, structAlign)
	return Size{Min: minCursor, Max: maxCursor, IsFixed: allFixed && minCursor == maxCursor}
}

func roundUp(cursor, align int) int {
	if align <= 1 {
		return cursor
	}
	rem := cursor % align
	if rem == 0 {
		return cursor
	}
	return cursor + (align - rem)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CompatLevel classifies how two schema roots relate (spec §4.F).
type CompatLevel int

const (
	FullyCompatible CompatLevel = iota
	BackwardCompatible
	ForwardCompatible
	Incompatible
)

func (l CompatLevel) String() string {
	switch l {
	case FullyCompatible:
		return "FullyCompatible"
	case BackwardCompatible:
		return "BackwardCompatible"
	case ForwardCompatible:
		return "ForwardCompatible"
	case Incompatible:
		return "Incompatible"
	default:
		return "Unknown"
	}
}

// Compatibility is the result of CheckCompatibility: a classification
// plus, for Incompatible, a human-readable reason.
type Compatibility struct {
	Level  CompatLevel
	Reason string
}

// CheckCompatibility classifies the relationship between oldSchema's
// and newSchema's root types per the table in spec §4.F.
func CheckCompatibility(oldSchema, newSchema *Schema) Compatibility {
	oldRoot := oldSchema.RootType()
	newRoot := newSchema.RootType()

	switch {
	case oldRoot.Kind == TStruct && newRoot.Kind == TStruct:
		return compatStruct(oldRoot, newRoot)
	case oldRoot.Kind == TUnion && newRoot.Kind == TUnion:
		return compatUnion(oldRoot, newRoot)
	default:
		if structurallyCompatible(oldRoot, newRoot) {
			return Compatibility{Level: FullyCompatible}
		}
		return Compatibility{Level: Incompatible, Reason: "Root types are different"}
	}
}

func compatStruct(oldT, newT *SchemaType) Compatibility {
	n := len(oldT.Fields)
	if len(newT.Fields) < n {
		n = len(newT.Fields)
	}
	for i := 0; i < n; i++ {
		of, nf := oldT.Fields[i], newT.Fields[i]
		if of.Name != nf.Name || !structurallyCompatible(of.Type, nf.Type) {
			return Compatibility{Level: Incompatible, Reason: "Incompatible struct types"}
		}
	}
	switch {
	case len(oldT.Fields) == len(newT.Fields):
		return Compatibility{Level: FullyCompatible}
	case len(newT.Fields) > len(oldT.Fields):
		return Compatibility{Level: BackwardCompatible}
	default:
		return Compatibility{Level: Incompatible, Reason: "Incompatible struct types"}
	}
}

func compatUnion(oldT, newT *SchemaType) Compatibility {
	oldToNew := unionSubset(oldT, newT)
	newToOld := unionSubset(newT, oldT)
	switch {
	case oldToNew && newToOld:
		return Compatibility{Level: FullyCompatible}
	case oldToNew && !newToOld:
		return Compatibility{Level: BackwardCompatible}
	case !oldToNew && newToOld:
		return Compatibility{Level: ForwardCompatible}
	default:
		return Compatibility{Level: Incompatible, Reason: "Incompatible union types"}
	}
}

// unionSubset reports whether every case of a exists in b with a
// structurally compatible payload.
func unionSubset(a, b *SchemaType) bool {
	for _, ca := range a.Cases {
		found := false
		for _, cb := range b.Cases {
			if ca.Tag == cb.Tag {
				found = structurallyCompatible(ca.Type, cb.Type)
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// structurallyCompatible recurses through matching constructors.
// TypeRef compares by name only — no alpha-renaming. Nested Struct and
// Union types reuse the root-level classifier and are treated as
// compatible for any non-Incompatible level, since the spec does not
// separately define nested-field compatibility beyond "recursively
// compatible types" (see DESIGN.md).
func structurallyCompatible(a, b *SchemaType) bool {
	if a.Kind == TStruct && b.Kind == TStruct {
		return compatStruct(a, b).Level != Incompatible
	}
	if a.Kind == TUnion && b.Kind == TUnion {
		return compatUnion(a, b).Level != Incompatible
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TPrimitive:
		return a.PrimKind == b.PrimKind && a.Encoding == b.Encoding
	case TFixedData:
		return a.FixedLen == b.FixedLen
	case TEnum:
		return a.EnumBase == b.EnumBase
	case TOptional:
		return structurallyCompatible(a.Elem, b.Elem)
	case TList:
		return structurallyCompatible(a.Elem, b.Elem)
	case TFixedList:
		return a.FixedLen == b.FixedLen && structurallyCompatible(a.Elem, b.Elem)
	case TMap:
		return structurallyCompatible(a.MapKey, b.MapKey) && structurallyCompatible(a.MapValue, b.MapValue)
	case TTypeRef:
		return a.RefName == b.RefName
	default:
		return false
	}
}

// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view is the typed memory view (spec §4.H): given a validated
// struct schema and a platform.Context, it precomputes a dotted
// field-path → offset map and exposes Get/Set against a borrowed byte
// region. Aggregate fields (List, Map, Union) are not addressable —
// only primitives, enums and fixed-data at leaf positions are.
package view

import (
	"strings"

	"github.com/barewire/barewire/barewire"
	"github.com/barewire/barewire/binary"
	"github.com/barewire/barewire/platform"
	"github.com/barewire/barewire/schema"
)

// fieldRecord is one leaf of the precomputed offset map.
type fieldRecord struct {
	offset int
	typ    *schema.SchemaType
	size   int
	align  int
}

// View is a schema-indexed window onto a byte region. The zero value
// is not usable; construct one with New.
type View struct {
	ctx      platform.Context
	s        *schema.Schema
	region   []byte
	size     int
	fields   map[string]fieldRecord
	writable bool
}

// New builds a View over region for root, the name of a Struct type
// defined in s. region must be at least as long as the computed struct
// size; New returns an OutOfBounds error otherwise.
func New(ctx platform.Context, s *schema.Schema, root string, region []byte) (*View, error) {
	rootType, ok := s.Lookup(root)
	if !ok {
		return nil, barewire.Errorf(barewire.InvalidValue, "view: undefined root type %q", root)
	}
	if rootType.Kind != schema.TStruct {
		return nil, barewire.Errorf(barewire.InvalidValue, "view: root type %q is not a struct", root)
	}

	fields := make(map[string]fieldRecord)
	size, err := layoutStruct(ctx, s, rootType, "", fields)
	if err != nil {
		return nil, err
	}
	if len(region) < size {
		return nil, barewire.Bounds(0, size, "view region shorter than computed struct size")
	}

	return &View{ctx: ctx, s: s, region: region, size: size, fields: fields, writable: true}, nil
}

// Size returns the root struct's computed size in bytes.
func (v *View) Size() int { return v.size }

// Writable reports whether Set is permitted against this View. A View
// over a plain byte slice is always writable; a FileView opened
// read-only is not.
func (v *View) Writable() bool { return v.writable }

// layoutStruct walks t's fields in declaration order per spec §4.H,
// recording each addressable leaf in fields under its dotted path
// (prefix + field name). It returns the struct's own size (cursor
// rounded up to maxAlign).
func layoutStruct(ctx platform.Context, s *schema.Schema, t *schema.SchemaType, prefix string, fields map[string]fieldRecord) (int, error) {
	cursor := 0
	maxAlign := 1

	for _, f := range t.Fields {
		resolved := resolveRef(s, f.Type)
		align := schema.AlignOf(ctx, s, resolved)
		cursor = roundUp(cursor, align)
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}

		if resolved.Kind == schema.TStruct {
			nestedSize, err := layoutStruct(ctx, s, resolved, path, fields)
			if err != nil {
				return 0, err
			}
			offsetNested(fields, path, cursor)
			cursor += nestedSize
			if align > maxAlign {
				maxAlign = align
			}
			continue
		}

		if !addressable(resolved) {
			return 0, barewire.Errorf(barewire.InvalidValue, "view: field %q has a non-addressable aggregate type %v", path, resolved.Kind)
		}

		size := leafSize(ctx, resolved)
		fields[path] = fieldRecord{offset: cursor, typ: resolved, size: size, align: align}
		cursor += size
		if align > maxAlign {
			maxAlign = align
		}
	}

	return roundUp(cursor, maxAlign), nil
}

// offsetNested shifts every leaf recorded under a nested struct's own
// (prefix-local) layout pass by the struct's base offset in the
// parent. layoutStruct records nested leaves with offsets relative to
// the nested struct's own cursor==0 start; this call rebases them.
func offsetNested(fields map[string]fieldRecord, structPath string, base int) {
	prefix := structPath + "."
	for path, rec := range fields {
		if strings.HasPrefix(path, prefix) {
			rec.offset += base
			fields[path] = rec
		}
	}
}

// addressable reports whether t can sit at a leaf position in a typed
// view. Only fixed-width primitives, enums and fixed-data qualify — a
// varint- or length-prefixed primitive has no fixed in-memory size and
// is no more addressable than a List or Map.
func addressable(t *schema.SchemaType) bool {
	switch t.Kind {
	case schema.TPrimitive:
		return t.Encoding == schema.Fixed
	case schema.TEnum, schema.TFixedData:
		return true
	default:
		return false
	}
}

// leafSize returns the fixed in-memory byte width of an addressable
// leaf type. Enums use their declared base kind's width, matching
// AlignOf's EnumBase-derived alignment — the view models an enum's
// storage representation, not its varint wire form.
func leafSize(ctx platform.Context, t *schema.SchemaType) int {
	switch t.Kind {
	case schema.TEnum:
		return ctx.Size(t.EnumBase)
	case schema.TFixedData:
		return t.FixedLen
	default:
		return ctx.Size(t.PrimKind)
	}
}

func resolveRef(s *schema.Schema, t *schema.SchemaType) *schema.SchemaType {
	for t.Kind == schema.TTypeRef {
		resolved, ok := s.Lookup(t.RefName)
		if !ok {
			return t
		}
		t = resolved
	}
	return t
}

func roundUp(cursor, align int) int {
	if align <= 1 {
		return cursor
	}
	if rem := cursor % align; rem != 0 {
		return cursor + (align - rem)
	}
	return cursor
}

func (v *View) lookup(path string) (fieldRecord, error) {
	rec, ok := v.fields[path]
	if !ok {
		return fieldRecord{}, barewire.Errorf(barewire.InvalidValue, "Field path not found: %s", path)
	}
	return rec, nil
}

// Get resolves path and reads the primitive, enum, or fixed-data value
// stored there.
func (v *View) Get(path string) (interface{}, error) {
	rec, err := v.lookup(path)
	if err != nil {
		return nil, err
	}
	region, err := v.slice(rec)
	if err != nil {
		return nil, err
	}
	return readLeaf(rec, region)
}

// Set resolves path and writes value, which must match the field's
// declared type (a TypeMismatch error otherwise). Set on a read-only
// View (see Writable) returns an InvalidValue error instead of
// attempting the write.
func (v *View) Set(path string, value interface{}) error {
	if !v.writable {
		return barewire.Errorf(barewire.InvalidValue, "view: Set on a read-only view")
	}
	rec, err := v.lookup(path)
	if err != nil {
		return err
	}
	region, err := v.slice(rec)
	if err != nil {
		return err
	}
	return writeLeaf(rec, region, value)
}

func (v *View) slice(rec fieldRecord) ([]byte, error) {
	if rec.offset+rec.size > len(v.region) {
		return nil, barewire.Bounds(rec.offset, rec.size, "view field access past end of region")
	}
	return v.region[rec.offset : rec.offset+rec.size], nil
}

func readLeaf(rec fieldRecord, b []byte) (interface{}, error) {
	if rec.typ.Kind == schema.TEnum {
		return readUintN(b), nil
	}
	if rec.typ.Kind == schema.TFixedData {
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	}
	switch rec.typ.PrimKind {
	case platform.U8:
		return b[0], nil
	case platform.I8:
		return int8(b[0]), nil
	case platform.U16:
		return binary.U16(b), nil
	case platform.I16:
		return binary.I16(b), nil
	case platform.U32:
		return binary.U32(b), nil
	case platform.I32:
		return binary.I32(b), nil
	case platform.U64:
		return binary.U64(b), nil
	case platform.I64:
		return binary.I64(b), nil
	case platform.F32:
		return binary.F32(b), nil
	case platform.F64:
		return binary.F64(b), nil
	case platform.Bool:
		return b[0] != 0, nil
	default:
		return nil, barewire.Mismatch("addressable view field", rec.typ.PrimKind.String())
	}
}

func writeLeaf(rec fieldRecord, b []byte, value interface{}) error {
	if rec.typ.Kind == schema.TFixedData {
		data, ok := value.([]byte)
		if !ok || len(data) != len(b) {
			return barewire.Mismatch("[]byte of declared length", "other")
		}
		copy(b, data)
		return nil
	}
	if rec.typ.Kind == schema.TEnum {
		n, ok := value.(uint64)
		if !ok {
			return barewire.Mismatch("uint64 enum value", "other")
		}
		writeUintN(b, n)
		return nil
	}
	switch rec.typ.PrimKind {
	case platform.U8:
		n, ok := value.(uint8)
		if !ok {
			return barewire.Mismatch("uint8", "other")
		}
		b[0] = n
	case platform.I8:
		n, ok := value.(int8)
		if !ok {
			return barewire.Mismatch("int8", "other")
		}
		b[0] = byte(n)
	case platform.U16:
		n, ok := value.(uint16)
		if !ok {
			return barewire.Mismatch("uint16", "other")
		}
		binary.PutU16(b, n)
	case platform.I16:
		n, ok := value.(int16)
		if !ok {
			return barewire.Mismatch("int16", "other")
		}
		binary.PutI16(b, n)
	case platform.U32:
		n, ok := value.(uint32)
		if !ok {
			return barewire.Mismatch("uint32", "other")
		}
		binary.PutU32(b, n)
	case platform.I32:
		n, ok := value.(int32)
		if !ok {
			return barewire.Mismatch("int32", "other")
		}
		binary.PutI32(b, n)
	case platform.U64:
		n, ok := value.(uint64)
		if !ok {
			return barewire.Mismatch("uint64", "other")
		}
		binary.PutU64(b, n)
	case platform.I64:
		n, ok := value.(int64)
		if !ok {
			return barewire.Mismatch("int64", "other")
		}
		binary.PutI64(b, n)
	case platform.F32:
		n, ok := value.(float32)
		if !ok {
			return barewire.Mismatch("float32", "other")
		}
		binary.PutF32(b, n)
	case platform.F64:
		n, ok := value.(float64)
		if !ok {
			return barewire.Mismatch("float64", "other")
		}
		binary.PutF64(b, n)
	case platform.Bool:
		n, ok := value.(bool)
		if !ok {
			return barewire.Mismatch("bool", "other")
		}
		if n {
			b[0] = 1
		} else {
			b[0] = 0
		}
	default:
		return barewire.Mismatch("addressable view field", rec.typ.PrimKind.String())
	}
	return nil
}

// readUintN reads a little-endian unsigned integer of len(b) bytes
// (1, 2, 4 or 8 — whatever an enum's base kind resolves to).
func readUintN(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.U16(b))
	case 4:
		return uint64(binary.U32(b))
	default:
		return binary.U64(b)
	}
}

// writeUintN writes v as a little-endian unsigned integer truncated to
// len(b) bytes.
func writeUintN(b []byte, v uint64) {
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.PutU16(b, uint16(v))
	case 4:
		binary.PutU32(b, uint32(v))
	default:
		binary.PutU64(b, v)
	}
}

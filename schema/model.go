// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema is the algebraic model of BARE types (spec §3.2),
// their structural validator (§4.E) and their size/alignment/
// compatibility analyzer (§4.F). Construction is purely additive: a
// Schema is built by inserting named types and a root, then validated
// once. There is no mutation API beyond insertion, and nothing here
// depends on reflection — the model is as language-agnostic as the
// wire format it describes.
package schema

import "github.com/barewire/barewire/platform"

// Tag identifies which case of the SchemaType variant a value holds.
type Tag int

const (
	TPrimitive Tag = iota
	TFixedData
	TEnum
	TOptional
	TList
	TFixedList
	TMap
	TUnion
	TStruct
	TTypeRef
)

func (t Tag) String() string {
	switch t {
	case TPrimitive:
		return "Primitive"
	case TFixedData:
		return "FixedData"
	case TEnum:
		return "Enum"
	case TOptional:
		return "Optional"
	case TList:
		return "List"
	case TFixedList:
		return "FixedList"
	case TMap:
		return "Map"
	case TUnion:
		return "Union"
	case TStruct:
		return "Struct"
	case TTypeRef:
		return "TypeRef"
	default:
		return "Tag(?)"
	}
}

// Encoding distinguishes the three ways a Primitive may be placed on
// the wire (spec §3.2).
type Encoding int

const (
	Fixed Encoding = iota
	VarInt
	LengthPrefixed
)

// EnumValue is one named integer constant of an Enum, in declaration
// order.
type EnumValue struct {
	Name  string
	Value uint64
}

// Field is an ordered (name, type) pair. Field order is part of a
// Struct's type identity (spec §3.2).
type Field struct {
	Name string
	Type *SchemaType
}

// UnionCase is one tagged alternative of a Union. Tags are unique
// within a union but need not be dense (spec §3.3 rule 7).
type UnionCase struct {
	Tag  uint32
	Type *SchemaType
}

// SchemaType is the tagged variant covering every BARE type form.
// Exactly the fields relevant to Kind are meaningful; the rest are
// zero. Callers normally build one with the constructor functions
// below (Prim, Struct, Union, ...) rather than populating it by hand.
type SchemaType struct {
	Kind Tag

	// Primitive
	PrimKind platform.Kind
	Encoding Encoding

	// FixedData, FixedList
	FixedLen int

	// Enum
	EnumBase   platform.Kind
	EnumValues []EnumValue

	// Optional, List, FixedList
	Elem *SchemaType

	// Map
	MapKey   *SchemaType
	MapValue *SchemaType

	// Union
	Cases []UnionCase

	// Struct
	Fields []Field

	// TypeRef
	RefName string
}

// Prim builds a Primitive(kind, encoding) type.
func Prim(kind platform.Kind, enc Encoding) *SchemaType {
	return &SchemaType{Kind: TPrimitive, PrimKind: kind, Encoding: enc}
}

// FixedData builds a FixedData(n) type: exactly n bytes, no prefix.
func FixedData(n int) *SchemaType {
	return &SchemaType{Kind: TFixedData, FixedLen: n}
}

// Enum builds an Enum(baseKind, values) type. values is the ordered
// name→u64 mapping; order only affects presentation, not the wire
// form (an enum is encoded as a varint of the chosen numeric value).
func Enum(base platform.Kind, values ...EnumValue) *SchemaType {
	return &SchemaType{Kind: TEnum, EnumBase: base, EnumValues: values}
}

// Optional builds an Optional(T) type.
func Optional(elem *SchemaType) *SchemaType {
	return &SchemaType{Kind: TOptional, Elem: elem}
}

// List builds a List(T) type.
func List(elem *SchemaType) *SchemaType {
	return &SchemaType{Kind: TList, Elem: elem}
}

// FixedList builds a FixedList(T, n) type: exactly n elements, no
// count prefix.
func FixedList(elem *SchemaType, n int) *SchemaType {
	return &SchemaType{Kind: TFixedList, Elem: elem, FixedLen: n}
}

// Map builds a Map(K, V) type.
func Map(key, value *SchemaType) *SchemaType {
	return &SchemaType{Kind: TMap, MapKey: key, MapValue: value}
}

// Union builds a Union(tag → T) type from its cases.
func Union(cases ...UnionCase) *SchemaType {
	return &SchemaType{Kind: TUnion, Cases: cases}
}

// Struct builds a Struct(ordered [name, T]) type from its fields.
func Struct(fields ...Field) *SchemaType {
	return &SchemaType{Kind: TStruct, Fields: fields}
}

// Ref builds a TypeRef(name) type, resolved in the owning Schema.
func Ref(name string) *SchemaType {
	return &SchemaType{Kind: TTypeRef, RefName: name}
}

// Schema maps a type name to its SchemaType, together with a
// designated root type name (spec §3.2). Schemas are values: built by
// named-type insertions, then treated as immutable once validated.
// Mutating a Schema after deriving caches from it (size/align/view
// offsets) is undefined behavior; callers should treat a Schema as
// frozen the moment it is handed to Validate, SizeOf, AlignOf,
// CheckCompatibility, or view.New.
type Schema struct {
	types map[string]*SchemaType
	order []string
	root  string
}

// New returns an empty Schema with no types and no root.
func New() *Schema {
	return &Schema{types: make(map[string]*SchemaType)}
}

// Define inserts or overwrites the named type and returns the Schema
// for chaining. Construction is purely additive; replacing a type with
// the same name overwrites the previous definition in place.
func (s *Schema) Define(name string, t *SchemaType) *Schema {
	if _, exists := s.types[name]; !exists {
		s.order = append(s.order, name)
	}
	s.types[name] = t
	return s
}

// SetRoot designates name as the schema's root type and returns the
// Schema for chaining.
func (s *Schema) SetRoot(name string) *Schema {
	s.root = name
	return s
}

// Root returns the designated root type name.
func (s *Schema) Root() string {
	return s.root
}

// Lookup resolves name in the type map.
func (s *Schema) Lookup(name string) (*SchemaType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Names returns every defined type name in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// RootType resolves the schema's root type. It assumes the schema has
// already passed Validate, which guarantees root resolves.
func (s *Schema) RootType() *SchemaType {
	return s.types[s.root]
}

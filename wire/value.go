// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/barewire/barewire/barewire"
	"github.com/barewire/barewire/platform"
	"github.com/barewire/barewire/schema"
)

// MapEntry is one decoded (or to-be-encoded) Map pair. Maps decode to
// an ordered []MapEntry rather than a Go map because wire order is
// significant for a byte-exact re-encode, and BARE places no ordering
// requirement on a decoder beyond "whatever the writer chose".
type MapEntry struct {
	Key   interface{}
	Value interface{}
}

// UnionValue is a decoded Union: the case tag plus its payload, boxed
// the same way EncodeValue/DecodeValue box every other compound type.
type UnionValue struct {
	Tag   uint32
	Value interface{}
}

// EncodeValue writes v to w according to t, resolving TypeRef against
// s. v's concrete Go type must match t the way DecodeValue would have
// produced it (see DecodeValue for the mapping); integer kinds and enums
// also accept any narrower Go integer of the same signedness, or int. A
// mismatch is reported as a barewire TypeMismatch error rather than a
// panic.
func EncodeValue(w *Writer, s *schema.Schema, t *schema.SchemaType, v interface{}) error {
	switch t.Kind {
	case schema.TPrimitive:
		return encodePrimitive(w, t, v)
	case schema.TFixedData:
		b, ok := v.([]byte)
		if !ok || len(b) != t.FixedLen {
			return barewire.Mismatch("[]byte of declared length", describeValue(v))
		}
		return w.WriteFixedData(b)
	case schema.TEnum:
		n, ok := toUint64(v)
		if !ok {
			return barewire.Mismatch("uint64 enum value", describeValue(v))
		}
		return w.WriteUvarint(n)
	case schema.TOptional:
		if v == nil {
			return w.WriteOptionalTag(false)
		}
		if err := w.WriteOptionalTag(true); err != nil {
			return err
		}
		return EncodeValue(w, s, t.Elem, v)
	case schema.TList:
		items, ok := v.([]interface{})
		if !ok {
			return barewire.Mismatch("[]interface{} list", describeValue(v))
		}
		if err := w.WriteCount(len(items)); err != nil {
			return err
		}
		for _, item := range items {
			if err := EncodeValue(w, s, t.Elem, item); err != nil {
				return err
			}
		}
		return nil
	case schema.TFixedList:
		items, ok := v.([]interface{})
		if !ok || len(items) != t.FixedLen {
			return barewire.Mismatch("[]interface{} of declared length", describeValue(v))
		}
		for _, item := range items {
			if err := EncodeValue(w, s, t.Elem, item); err != nil {
				return err
			}
		}
		return nil
	case schema.TMap:
		entries, ok := v.([]MapEntry)
		if !ok {
			return barewire.Mismatch("[]wire.MapEntry", describeValue(v))
		}
		if err := w.WriteCount(len(entries)); err != nil {
			return err
		}
		for _, e := range entries {
			if err := EncodeValue(w, s, t.MapKey, e.Key); err != nil {
				return err
			}
			if err := EncodeValue(w, s, t.MapValue, e.Value); err != nil {
				return err
			}
		}
		return nil
	case schema.TUnion:
		uv, ok := v.(UnionValue)
		if !ok {
			return barewire.Mismatch("wire.UnionValue", describeValue(v))
		}
		c, ok := findCase(t, uv.Tag)
		if !ok {
			return barewire.Errorf(barewire.Encoding, "union: no case with tag %d", uv.Tag)
		}
		if err := w.WriteUnionTag(uv.Tag); err != nil {
			return err
		}
		return EncodeValue(w, s, c.Type, uv.Value)
	case schema.TStruct:
		fields, ok := v.(map[string]interface{})
		if !ok {
			return barewire.Mismatch("map[string]interface{} struct", describeValue(v))
		}
		for _, f := range t.Fields {
			fv, present := fields[f.Name]
			if !present {
				return barewire.Errorf(barewire.Encoding, "struct: missing field %q", f.Name)
			}
			if err := EncodeValue(w, s, f.Type, fv); err != nil {
				return err
			}
		}
		return nil
	case schema.TTypeRef:
		resolved, ok := s.Lookup(t.RefName)
		if !ok {
			return barewire.Errorf(barewire.Encoding, "unresolved type reference %q", t.RefName)
		}
		return EncodeValue(w, s, resolved, v)
	default:
		return barewire.Errorf(barewire.Encoding, "unknown schema type tag %v", t.Kind)
	}
}

// DecodeValue reads one t-shaped value from r, resolving TypeRef
// against s. Each SchemaType Kind decodes to:
//   - fixed primitives: the matching Go type (uint8 ... int64, float32,
//     float64, bool); void: nil
//   - varint primitives: uint64 for unsigned kinds, int64 for signed
//   - length-prefixed primitives: string for String, []byte otherwise
//   - FixedData: []byte; Enum: uint64
//   - Optional: nil when absent, else the element's decoded value
//   - List, FixedList: []interface{}; Map: []MapEntry; Union: UnionValue
//   - Struct: map[string]interface{} keyed by field name
func DecodeValue(r *Reader, s *schema.Schema, t *schema.SchemaType) (interface{}, error) {
	switch t.Kind {
	case schema.TPrimitive:
		return decodePrimitive(r, t)
	case schema.TFixedData:
		return r.ReadFixedData(t.FixedLen)
	case schema.TEnum:
		return r.ReadUvarint()
	case schema.TOptional:
		present, err := r.ReadOptionalTag()
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
		return DecodeValue(r, s, t.Elem)
	case schema.TList:
		n, err := r.ReadCount()
		if err != nil {
			return nil, err
		}
		items := make([]interface{}, n)
		for i := 0; i < n; i++ {
			v, err := DecodeValue(r, s, t.Elem)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case schema.TFixedList:
		items := make([]interface{}, t.FixedLen)
		for i := 0; i < t.FixedLen; i++ {
			v, err := DecodeValue(r, s, t.Elem)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case schema.TMap:
		n, err := r.ReadCount()
		if err != nil {
			return nil, err
		}
		entries := make([]MapEntry, n)
		for i := 0; i < n; i++ {
			k, err := DecodeValue(r, s, t.MapKey)
			if err != nil {
				return nil, err
			}
			v, err := DecodeValue(r, s, t.MapValue)
			if err != nil {
				return nil, err
			}
			entries[i] = MapEntry{Key: k, Value: v}
		}
		return entries, nil
	case schema.TUnion:
		tag, err := r.ReadUnionTag()
		if err != nil {
			return nil, err
		}
		c, ok := findCase(t, tag)
		if !ok {
			return nil, barewire.Errorf(barewire.Decoding, "union: unknown tag %d", tag)
		}
		v, err := DecodeValue(r, s, c.Type)
		if err != nil {
			return nil, err
		}
		return UnionValue{Tag: tag, Value: v}, nil
	case schema.TStruct:
		out := make(map[string]interface{}, len(t.Fields))
		for _, f := range t.Fields {
			v, err := DecodeValue(r, s, f.Type)
			if err != nil {
				return nil, err
			}
			out[f.Name] = v
		}
		return out, nil
	case schema.TTypeRef:
		resolved, ok := s.Lookup(t.RefName)
		if !ok {
			return nil, barewire.Errorf(barewire.Decoding, "unresolved type reference %q", t.RefName)
		}
		return DecodeValue(r, s, resolved)
	default:
		return nil, barewire.Errorf(barewire.Decoding, "unknown schema type tag %v", t.Kind)
	}
}

func findCase(t *schema.SchemaType, tag uint32) (schema.UnionCase, bool) {
	for _, c := range t.Cases {
		if c.Tag == tag {
			return c, true
		}
	}
	return schema.UnionCase{}, false
}

func encodePrimitive(w *Writer, t *schema.SchemaType, v interface{}) error {
	if t.Encoding == schema.VarInt {
		switch t.PrimKind {
		case platform.U8, platform.U16, platform.U32, platform.U64:
			n, ok := toUint64(v)
			if !ok {
				return barewire.Mismatch("unsigned integer", describeValue(v))
			}
			return w.WriteUvarint(n)
		default:
			n, ok := toInt64(v)
			if !ok {
				return barewire.Mismatch("signed integer", describeValue(v))
			}
			return w.WriteVarint(n)
		}
	}
	if t.Encoding == schema.LengthPrefixed {
		switch t.PrimKind {
		case platform.String:
			str, ok := v.(string)
			if !ok {
				return barewire.Mismatch("string", describeValue(v))
			}
			return w.WriteString(str)
		default:
			b, ok := v.([]byte)
			if !ok {
				return barewire.Mismatch("[]byte", describeValue(v))
			}
			return w.WriteData(b)
		}
	}
	switch t.PrimKind {
	case platform.U8:
		n, ok := toUint64(v)
		if !ok {
			return barewire.Mismatch("uint8", describeValue(v))
		}
		return w.WriteU8(uint8(n))
	case platform.I8:
		n, ok := toInt64(v)
		if !ok {
			return barewire.Mismatch("int8", describeValue(v))
		}
		return w.WriteI8(int8(n))
	case platform.U16:
		n, ok := toUint64(v)
		if !ok {
			return barewire.Mismatch("uint16", describeValue(v))
		}
		return w.WriteU16(uint16(n))
	case platform.I16:
		n, ok := toInt64(v)
		if !ok {
			return barewire.Mismatch("int16", describeValue(v))
		}
		return w.WriteI16(int16(n))
	case platform.U32:
		n, ok := toUint64(v)
		if !ok {
			return barewire.Mismatch("uint32", describeValue(v))
		}
		return w.WriteU32(uint32(n))
	case platform.I32:
		n, ok := toInt64(v)
		if !ok {
			return barewire.Mismatch("int32", describeValue(v))
		}
		return w.WriteI32(int32(n))
	case platform.U64:
		n, ok := toUint64(v)
		if !ok {
			return barewire.Mismatch("uint64", describeValue(v))
		}
		return w.WriteU64(n)
	case platform.I64:
		n, ok := toInt64(v)
		if !ok {
			return barewire.Mismatch("int64", describeValue(v))
		}
		return w.WriteI64(n)
	case platform.F32:
		f, ok := v.(float32)
		if !ok {
			return barewire.Mismatch("float32", describeValue(v))
		}
		return w.WriteF32(f)
	case platform.F64:
		f, ok := v.(float64)
		if !ok {
			return barewire.Mismatch("float64", describeValue(v))
		}
		return w.WriteF64(f)
	case platform.Bool:
		b, ok := v.(bool)
		if !ok {
			return barewire.Mismatch("bool", describeValue(v))
		}
		return w.WriteBool(b)
	case platform.Void:
		return nil
	default:
		return barewire.Errorf(barewire.Encoding, "unknown primitive kind %v", t.PrimKind)
	}
}

func decodePrimitive(r *Reader, t *schema.SchemaType) (interface{}, error) {
	if t.Encoding == schema.VarInt {
		switch t.PrimKind {
		case platform.U8, platform.U16, platform.U32, platform.U64:
			return r.ReadUvarint()
		default:
			return r.ReadVarint()
		}
	}
	if t.Encoding == schema.LengthPrefixed {
		if t.PrimKind == platform.String {
			return r.ReadString()
		}
		return r.ReadData()
	}
	switch t.PrimKind {
	case platform.U8:
		return r.ReadU8()
	case platform.I8:
		return r.ReadI8()
	case platform.U16:
		return r.ReadU16()
	case platform.I16:
		return r.ReadI16()
	case platform.U32:
		return r.ReadU32()
	case platform.I32:
		return r.ReadI32()
	case platform.U64:
		return r.ReadU64()
	case platform.I64:
		return r.ReadI64()
	case platform.F32:
		return r.ReadF32()
	case platform.F64:
		return r.ReadF64()
	case platform.Bool:
		return r.ReadBool()
	case platform.Void:
		return nil, nil
	default:
		return nil, barewire.Errorf(barewire.Decoding, "unknown primitive kind %v", t.PrimKind)
	}
}

func toUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint32:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case int:
		return uint64(n), true
	default:
		return 0, false
	}
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func describeValue(v interface{}) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/barewire/barewire/barewire"
	"github.com/barewire/barewire/platform"
	"github.com/barewire/barewire/schema"
)

// S1: u32 0x12345678 -> 78 56 34 12.
func TestWriteU32WireForm(t *testing.T) {
	w := NewWriter(0, 0)
	if err := w.WriteU32(0x12345678); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x78, 0x56, 0x34, 0x12}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x want % x", w.Bytes(), want)
	}
}

// S4: string "hi" -> 02 68 69.
func TestWriteStringWireForm(t *testing.T) {
	w := NewWriter(0, 0)
	if err := w.WriteString("hi"); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x02, 0x68, 0x69}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x want % x", w.Bytes(), want)
	}
	r := NewReader(w.Bytes())
	got, err := r.ReadString()
	if err != nil {
		t.Fatal(err)
	}
	if got != "hi" {
		t.Fatalf("got %q want hi", got)
	}
}

// S5: optional u8, present=5 -> 01 05; absent -> 00.
func TestOptionalWireForm(t *testing.T) {
	s := schema.New()
	opt := schema.Optional(schema.Prim(platform.U8, schema.Fixed))

	w := NewWriter(0, 0)
	if err := EncodeValue(w, s, opt, uint8(5)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w.Bytes(), []byte{0x01, 0x05}) {
		t.Fatalf("present encoding: got % x", w.Bytes())
	}

	w2 := NewWriter(0, 0)
	if err := EncodeValue(w2, s, opt, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w2.Bytes(), []byte{0x00}) {
		t.Fatalf("absent encoding: got % x", w2.Bytes())
	}

	r := NewReader(w.Bytes())
	got, err := DecodeValue(r, s, opt)
	if err != nil {
		t.Fatal(err)
	}
	if got.(uint8) != 5 {
		t.Fatalf("decoded present: got %v", got)
	}

	r2 := NewReader(w2.Bytes())
	got2, err := DecodeValue(r2, s, opt)
	if err != nil {
		t.Fatal(err)
	}
	if got2 != nil {
		t.Fatalf("decoded absent: got %v, want nil", got2)
	}
}

// S6: list of u16, [1,2] -> 02 01 00 02 00.
func TestListWireForm(t *testing.T) {
	s := schema.New()
	lst := schema.List(schema.Prim(platform.U16, schema.Fixed))

	w := NewWriter(0, 0)
	if err := EncodeValue(w, s, lst, []interface{}{uint16(1), uint16(2)}); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x02, 0x01, 0x00, 0x02, 0x00}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x want % x", w.Bytes(), want)
	}

	r := NewReader(w.Bytes())
	got, err := DecodeValue(r, s, lst)
	if err != nil {
		t.Fatal(err)
	}
	items := got.([]interface{})
	if len(items) != 2 || items[0].(uint16) != 1 || items[1].(uint16) != 2 {
		t.Fatalf("decoded list: got %v", items)
	}
}

// S7: union tag=3, payload u16=7 -> 03 07 00.
func TestUnionWireForm(t *testing.T) {
	s := schema.New()
	u := schema.Union(
		schema.UnionCase{Tag: 3, Type: schema.Prim(platform.U16, schema.Fixed)},
	)

	w := NewWriter(0, 0)
	if err := EncodeValue(w, s, u, UnionValue{Tag: 3, Value: uint16(7)}); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x03, 0x07, 0x00}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x want % x", w.Bytes(), want)
	}

	r := NewReader(w.Bytes())
	got, err := DecodeValue(r, s, u)
	if err != nil {
		t.Fatal(err)
	}
	uv := got.(UnionValue)
	if uv.Tag != 3 || uv.Value.(uint16) != 7 {
		t.Fatalf("decoded union: got %+v", uv)
	}
}

func TestUnionUnknownTag(t *testing.T) {
	s := schema.New()
	u := schema.Union(schema.UnionCase{Tag: 1, Type: schema.Prim(platform.U8, schema.Fixed)})
	r := NewReader([]byte{0x02, 0x00})
	_, err := DecodeValue(r, s, u)
	var be *barewire.Error
	if !errors.As(err, &be) || be.Kind != barewire.Decoding {
		t.Fatalf("expected Decoding error, got %v", err)
	}
}

func TestStructRoundTrip(t *testing.T) {
	s := schema.New()
	st := schema.Struct(
		schema.Field{Name: "id", Type: schema.Prim(platform.U32, schema.Fixed)},
		schema.Field{Name: "name", Type: schema.Prim(platform.String, schema.LengthPrefixed)},
		schema.Field{Name: "active", Type: schema.Prim(platform.Bool, schema.Fixed)},
	)
	s.Define("Record", st)
	s.SetRoot("Record")

	v := map[string]interface{}{
		"id":     uint32(42),
		"name":   "bare",
		"active": true,
	}
	w := NewWriter(0, 0)
	if err := EncodeValue(w, s, st, v); err != nil {
		t.Fatal(err)
	}
	r := NewReader(w.Bytes())
	got, err := DecodeValue(r, s, st)
	if err != nil {
		t.Fatal(err)
	}
	gm := got.(map[string]interface{})
	if gm["id"].(uint32) != 42 || gm["name"].(string) != "bare" || gm["active"].(bool) != true {
		t.Fatalf("round trip mismatch: %+v", gm)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected all bytes consumed, %d remaining", r.Remaining())
	}
}

func TestMapRoundTrip(t *testing.T) {
	s := schema.New()
	m := schema.Map(schema.Prim(platform.U8, schema.Fixed), schema.Prim(platform.U32, schema.VarInt))

	entries := []MapEntry{
		{Key: uint8(1), Value: uint64(100)},
		{Key: uint8(2), Value: uint64(200)},
	}
	w := NewWriter(0, 0)
	if err := EncodeValue(w, s, m, entries); err != nil {
		t.Fatal(err)
	}
	r := NewReader(w.Bytes())
	got, err := DecodeValue(r, s, m)
	if err != nil {
		t.Fatal(err)
	}
	gotEntries := got.([]MapEntry)
	if len(gotEntries) != 2 || gotEntries[1].Key.(uint8) != 2 || gotEntries[1].Value.(uint64) != 200 {
		t.Fatalf("map round trip: got %+v", gotEntries)
	}
}

func TestFixedListExactConsumption(t *testing.T) {
	s := schema.New()
	fl := schema.FixedList(schema.Prim(platform.U8, schema.Fixed), 3)
	r := NewReader([]byte{1, 2, 3, 0xFF, 0xFF})
	got, err := DecodeValue(r, s, fl)
	if err != nil {
		t.Fatal(err)
	}
	items := got.([]interface{})
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if r.Remaining() != 2 {
		t.Fatalf("expected 2 trailing bytes untouched, got %d", r.Remaining())
	}
}

func TestReadPastEndIsDecoding(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadU32()
	var be *barewire.Error
	if !errors.As(err, &be) || be.Kind != barewire.Decoding {
		t.Fatalf("expected Decoding error, got %v", err)
	}
}

func TestWriterLimitOverflow(t *testing.T) {
	w := NewWriter(0, 2)
	if err := w.WriteU8(1); err != nil {
		t.Fatal(err)
	}
	err := w.WriteU32(1)
	var be *barewire.Error
	if !errors.As(err, &be) || be.Kind != barewire.Encoding {
		t.Fatalf("expected Encoding overflow error, got %v", err)
	}
}

func TestNestedDocumentRoundTrip(t *testing.T) {
	s := schema.New()
	s.Define("Address", schema.Struct(
		schema.Field{Name: "city", Type: schema.Prim(platform.String, schema.LengthPrefixed)},
		schema.Field{Name: "zip", Type: schema.Prim(platform.U32, schema.VarInt)},
	))
	doc := schema.Struct(
		schema.Field{Name: "id", Type: schema.Prim(platform.U64, schema.VarInt)},
		schema.Field{Name: "home", Type: schema.Ref("Address")},
		schema.Field{Name: "tags", Type: schema.List(schema.Prim(platform.String, schema.LengthPrefixed))},
		schema.Field{Name: "note", Type: schema.Optional(schema.Prim(platform.String, schema.LengthPrefixed))},
	)
	s.Define("Doc", doc)
	s.SetRoot("Doc")

	input := map[string]interface{}{
		"id": uint64(7),
		"home": map[string]interface{}{
			"city": "Springfield",
			"zip":  uint64(49007),
		},
		"tags": []interface{}{"a", "bb", "ccc"},
		"note": nil,
	}

	w := NewWriter(0, 0)
	if err := EncodeValue(w, s, doc, input); err != nil {
		t.Fatal(err)
	}
	r := NewReader(w.Bytes())
	got, err := DecodeValue(r, s, doc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(input, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected all bytes consumed, %d remaining", r.Remaining())
	}
}

func TestTypeRefResolution(t *testing.T) {
	s := schema.New()
	s.Define("Inner", schema.Prim(platform.U16, schema.Fixed))
	ref := schema.Ref("Inner")

	w := NewWriter(0, 0)
	if err := EncodeValue(w, s, ref, uint16(9)); err != nil {
		t.Fatal(err)
	}
	r := NewReader(w.Bytes())
	got, err := DecodeValue(r, s, ref)
	if err != nil {
		t.Fatal(err)
	}
	if got.(uint16) != 9 {
		t.Fatalf("got %v want 9", got)
	}
}

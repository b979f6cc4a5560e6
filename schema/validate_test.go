// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/barewire/barewire/barewire"
	"github.com/barewire/barewire/platform"
)

func u64Prim() *SchemaType { return Prim(platform.U64, Fixed) }

func TestValidateAcceptsWellFormedSchema(t *testing.T) {
	s := New()
	s.Define("Point", Struct(
		Field{Name: "x", Type: Prim(platform.I32, Fixed)},
		Field{Name: "y", Type: Prim(platform.I32, Fixed)},
	))
	s.SetRoot("Point")
	if err := Validate(s); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateUndefinedRoot(t *testing.T) {
	s := New()
	s.SetRoot("Missing")
	requireRule(t, Validate(s), "UndefinedType")
}

func TestValidateSelfCycle(t *testing.T) {
	s := New()
	s.Define("Node", Struct(
		Field{Name: "next", Type: Ref("Node")},
	))
	s.SetRoot("Node")
	requireRule(t, Validate(s), "CyclicTypeReference")
}

func TestValidateMutualCycle(t *testing.T) {
	s := New()
	s.Define("A", Struct(Field{Name: "b", Type: Ref("B")}))
	s.Define("B", Struct(Field{Name: "a", Type: Ref("A")}))
	s.SetRoot("A")
	requireRule(t, Validate(s), "CyclicTypeReference")
}

func TestValidateUndefinedRef(t *testing.T) {
	s := New()
	s.Define("A", Struct(Field{Name: "b", Type: Ref("Ghost")}))
	s.SetRoot("A")
	requireRule(t, Validate(s), "UndefinedType")
}

func TestValidateVoidOutsideUnion(t *testing.T) {
	s := New()
	s.Define("Bad", Struct(Field{Name: "v", Type: Prim(platform.Void, Fixed)}))
	s.SetRoot("Bad")
	requireRule(t, Validate(s), "InvalidVoidUsage")
}

func TestValidateVoidInsideUnionIsLegal(t *testing.T) {
	s := New()
	s.Define("Opt", Union(
		UnionCase{Tag: 0, Type: Prim(platform.Void, Fixed)},
		UnionCase{Tag: 1, Type: u64Prim()},
	))
	s.SetRoot("Opt")
	if err := Validate(s); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateEmptyAggregates(t *testing.T) {
	s := New()
	s.Define("E", Enum(platform.U64))
	s.Define("U", Union())
	s.Define("S", Struct())
	s.SetRoot("S")
	// Only S is reachable from root for path reporting, but every
	// defined type is still walked, so all three should fire.
	err := Validate(s)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := barewire.Render(err)
	for _, want := range []string{"EmptyEnum", "EmptyUnion", "EmptyStruct"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in error output, got: %s", want, msg)
		}
	}
}

func TestValidateInvalidMapKey(t *testing.T) {
	s := New()
	s.Define("M", Map(Prim(platform.F64, Fixed), u64Prim()))
	s.SetRoot("M")
	requireRule(t, Validate(s), "InvalidMapKeyType")

	s2 := New()
	s2.Define("M2", Map(FixedData(4), u64Prim()))
	s2.SetRoot("M2")
	requireRule(t, Validate(s2), "InvalidMapKeyType")
}

func TestValidateInvalidFixedLength(t *testing.T) {
	s := New()
	s.Define("FL", FixedList(u64Prim(), 0))
	s.SetRoot("FL")
	requireRule(t, Validate(s), "InvalidFixedLength")

	s2 := New()
	s2.Define("FD", FixedData(-1))
	s2.SetRoot("FD")
	requireRule(t, Validate(s2), "InvalidFixedLength")
}

func requireRule(t *testing.T, err error, rule string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error containing rule %q", rule)
	}
	var be *barewire.Error
	if !errors.As(err, &be) || be.Kind != barewire.SchemaValidation {
		t.Fatalf("expected SchemaValidation error, got %v", err)
	}
	if !strings.Contains(barewire.Render(err), rule) {
		t.Fatalf("expected rule %q in error output, got: %s", rule, barewire.Render(err))
	}
}

// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"

	"github.com/barewire/barewire/barewire"
	"github.com/barewire/barewire/platform"
)

// role names one breadcrumb in the structural path the invariant walk
// tracks (spec §4.E).
type role string

const (
	roleRoot        role = "TypeRoot"
	roleStructField role = "StructField"
	roleUnionCase   role = "UnionCase"
	roleOptional    role = "OptionalValue"
	roleListItem    role = "ListItem"
	roleMapKey      role = "MapKey"
	roleMapValue    role = "MapValue"
)

// pathStep is one breadcrumb: a role, plus the field name or union tag
// that role applies to, when relevant.
type pathStep struct {
	role role
	name string
}

func (p pathStep) String() string {
	switch p.role {
	case roleStructField:
		return fmt.Sprintf("field(%s)", p.name)
	case roleUnionCase:
		return fmt.Sprintf("case(%s)", p.name)
	default:
		return string(p.role)
	}
}

type path []pathStep

func (p path) String() string {
	s := ""
	for i, step := range p {
		if i > 0 {
			s += "."
		}
		s += step.String()
	}
	return s
}

func (p path) push(step pathStep) path {
	next := make(path, len(p), len(p)+1)
	copy(next, p)
	return append(next, step)
}

// inUnionCase reports whether the innermost breadcrumb is a union case:
// that is the one place void/unit is legal (spec §3.3 rule 3).
func (p path) inUnionCase() bool {
	return len(p) > 0 && p[len(p)-1].role == roleUnionCase
}

// violation is one validator finding.
type violation struct {
	rule string
	msg  string
}

func (v violation) Error() string {
	return fmt.Sprintf("%s: %s", v.rule, v.msg)
}

// Validate walks every defined type in s, collecting every violation of
// spec §3.3 rather than stopping at the first one (an Alternative-style
// batch, as opposed to the codec's short-circuiting Result discipline).
// It returns nil if s is well-formed, or a *barewire.Error of Kind
// SchemaValidation wrapping the full violation list otherwise.
func Validate(s *Schema) error {
	var errs []error

	if _, ok := s.Lookup(s.Root()); !ok {
		errs = append(errs, violation{"UndefinedType", fmt.Sprintf("root %q does not resolve", s.Root())})
	}

	errs = append(errs, detectCycles(s)...)
	for _, name := range s.Names() {
		errs = append(errs, checkInvariants(s.types[name], path{{role: roleRoot, name: name}})...)
	}

	if len(errs) == 0 {
		return nil
	}
	return barewire.Validation(errs)
}

// detectCycles performs a DFS from every defined type through TypeRef
// edges, keeping a per-walk path set. A name already on the current
// path is a CyclicTypeReference; a referenced name absent from the type
// map is an UndefinedType. Completed subtrees are memoized as visited
// to avoid re-walking shared references.
func detectCycles(s *Schema) []error {
	var errs []error
	visited := make(map[string]bool, len(s.order))
	onPath := make(map[string]bool, len(s.order))

	var walk func(name string)
	walk = func(name string) {
		if visited[name] {
			return
		}
		onPath[name] = true
		t := s.types[name]
		for _, ref := range directRefs(t) {
			if onPath[ref] {
				errs = append(errs, violation{"CyclicTypeReference", ref})
				continue
			}
			if _, ok := s.Lookup(ref); !ok {
				errs = append(errs, violation{"UndefinedType", ref})
				continue
			}
			walk(ref)
		}
		delete(onPath, name)
		visited[name] = true
	}

	for _, name := range s.Names() {
		walk(name)
	}
	return errs
}

// directRefs returns the TypeRef names appearing anywhere within t's
// own structure (not recursing across a TypeRef into the type it
// names — that edge is followed by the caller's DFS, one graph node at
// a time).
func directRefs(t *SchemaType) []string {
	var out []string
	var walk func(t *SchemaType)
	walk = func(t *SchemaType) {
		switch t.Kind {
		case TTypeRef:
			out = append(out, t.RefName)
		case TOptional, TList, TFixedList:
			walk(t.Elem)
		case TMap:
			walk(t.MapKey)
			walk(t.MapValue)
		case TUnion:
			for _, c := range t.Cases {
				walk(c.Type)
			}
		case TStruct:
			for _, f := range t.Fields {
				walk(f.Type)
			}
		}
	}
	walk(t)
	return out
}

// checkInvariants walks t's structure in context p, emitting the
// per-case violations of spec §3.3/§4.E.
func checkInvariants(t *SchemaType, p path) []error {
	var errs []error

	switch t.Kind {
	case TPrimitive:
		if t.PrimKind == platform.Void && !p.inUnionCase() {
			errs = append(errs, violation{"InvalidVoidUsage", p.String()})
		}
	case TFixedData:
		if t.FixedLen <= 0 {
			errs = append(errs, violation{"InvalidFixedLength", fmt.Sprintf("%d at %s", t.FixedLen, p)})
		}
	case TEnum:
		if len(t.EnumValues) == 0 {
			errs = append(errs, violation{"EmptyEnum", p.String()})
		}
	case TOptional:
		errs = append(errs, checkInvariants(t.Elem, p.push(pathStep{role: roleOptional}))...)
	case TList:
		errs = append(errs, checkInvariants(t.Elem, p.push(pathStep{role: roleListItem}))...)
	case TFixedList:
		if t.FixedLen <= 0 {
			errs = append(errs, violation{"InvalidFixedLength", fmt.Sprintf("%d at %s", t.FixedLen, p)})
		}
		errs = append(errs, checkInvariants(t.Elem, p.push(pathStep{role: roleListItem}))...)
	case TMap:
		if !validMapKey(t.MapKey) {
			errs = append(errs, violation{"InvalidMapKeyType", describeType(t.MapKey)})
		}
		errs = append(errs, checkInvariants(t.MapKey, p.push(pathStep{role: roleMapKey}))...)
		errs = append(errs, checkInvariants(t.MapValue, p.push(pathStep{role: roleMapValue}))...)
	case TUnion:
		if len(t.Cases) == 0 {
			errs = append(errs, violation{"EmptyUnion", p.String()})
		}
		for _, c := range t.Cases {
			errs = append(errs, checkInvariants(c.Type, p.push(pathStep{role: roleUnionCase, name: fmt.Sprintf("%d", c.Tag)}))...)
		}
	case TStruct:
		if len(t.Fields) == 0 {
			errs = append(errs, violation{"EmptyStruct", p.String()})
		}
		for _, f := range t.Fields {
			errs = append(errs, checkInvariants(f.Type, p.push(pathStep{role: roleStructField, name: f.Name}))...)
		}
	case TTypeRef:
		// Edges are validated by detectCycles; nothing further to walk
		// here without re-deriving the graph.
	}
	return errs
}

// validMapKey enforces spec §3.3 rule 4: a Map key must be a
// non-floating, non-void, non-FixedData primitive type.
func validMapKey(key *SchemaType) bool {
	if key.Kind != TPrimitive {
		return false
	}
	if key.PrimKind == platform.Void || key.PrimKind.IsFloat() {
		return false
	}
	return true
}

func describeType(t *SchemaType) string {
	if t.Kind == TPrimitive {
		return t.PrimKind.String()
	}
	return t.Kind.String()
}

// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile loads a schema.Schema from a YAML document. The
// CLI is the only consumer of this format; the core schema package
// itself never touches YAML or any other serialization of its own
// model.
package schemafile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/barewire/barewire/platform"
	"github.com/barewire/barewire/schema"
)

// document is the top-level YAML shape: a root type name plus a map of
// named type definitions.
type document struct {
	Root  string               `yaml:"root"`
	Types map[string]*typeNode `yaml:"types"`
}

// typeNode mirrors schema.SchemaType's tagged-union shape, discriminated
// by its Kind field.
type typeNode struct {
	Kind string `yaml:"kind"`

	// primitive
	Prim     string `yaml:"prim"`
	Encoding string `yaml:"encoding"`

	// fixeddata, fixedlist
	Len int `yaml:"len"`

	// enum
	Base   string          `yaml:"base"`
	Values []enumValueNode `yaml:"values"`

	// optional, list, fixedlist
	Elem *typeNode `yaml:"elem"`

	// map
	Key   *typeNode `yaml:"key"`
	Value *typeNode `yaml:"value"`

	// union
	Cases []caseNode `yaml:"cases"`

	// struct
	Fields []fieldNode `yaml:"fields"`

	// typeref
	Ref string `yaml:"ref"`
}

type enumValueNode struct {
	Name  string `yaml:"name"`
	Value uint64 `yaml:"value"`
}

type caseNode struct {
	Tag  uint32    `yaml:"tag"`
	Type *typeNode `yaml:"type"`
}

type fieldNode struct {
	Name string    `yaml:"name"`
	Type *typeNode `yaml:"type"`
}

// Load reads and parses the schema file at path.
func Load(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a schema document from YAML bytes.
func Parse(data []byte) (*schema.Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if doc.Root == "" {
		return nil, fmt.Errorf("schemafile: document has no root")
	}

	s := schema.New()
	for name, node := range doc.Types {
		t, err := node.toSchemaType()
		if err != nil {
			return nil, fmt.Errorf("schemafile: type %q: %w", name, err)
		}
		s.Define(name, t)
	}
	s.SetRoot(doc.Root)
	return s, nil
}

func (n *typeNode) toSchemaType() (*schema.SchemaType, error) {
	if n == nil {
		return nil, fmt.Errorf("missing type node")
	}
	switch n.Kind {
	case "primitive":
		kind, err := parseKind(n.Prim)
		if err != nil {
			return nil, err
		}
		enc, err := parseEncoding(n.Encoding)
		if err != nil {
			return nil, err
		}
		return schema.Prim(kind, enc), nil
	case "fixeddata":
		return schema.FixedData(n.Len), nil
	case "enum":
		base, err := parseKind(n.Base)
		if err != nil {
			return nil, err
		}
		values := make([]schema.EnumValue, len(n.Values))
		for i, v := range n.Values {
			values[i] = schema.EnumValue{Name: v.Name, Value: v.Value}
		}
		return schema.Enum(base, values...), nil
	case "optional":
		elem, err := n.Elem.toSchemaType()
		if err != nil {
			return nil, err
		}
		return schema.Optional(elem), nil
	case "list":
		elem, err := n.Elem.toSchemaType()
		if err != nil {
			return nil, err
		}
		return schema.List(elem), nil
	case "fixedlist":
		elem, err := n.Elem.toSchemaType()
		if err != nil {
			return nil, err
		}
		return schema.FixedList(elem, n.Len), nil
	case "map":
		key, err := n.Key.toSchemaType()
		if err != nil {
			return nil, err
		}
		value, err := n.Value.toSchemaType()
		if err != nil {
			return nil, err
		}
		return schema.Map(key, value), nil
	case "union":
		cases := make([]schema.UnionCase, len(n.Cases))
		for i, c := range n.Cases {
			ct, err := c.Type.toSchemaType()
			if err != nil {
				return nil, err
			}
			cases[i] = schema.UnionCase{Tag: c.Tag, Type: ct}
		}
		return schema.Union(cases...), nil
	case "struct":
		fields := make([]schema.Field, len(n.Fields))
		for i, f := range n.Fields {
			ft, err := f.Type.toSchemaType()
			if err != nil {
				return nil, err
			}
			fields[i] = schema.Field{Name: f.Name, Type: ft}
		}
		return schema.Struct(fields...), nil
	case "typeref":
		return schema.Ref(n.Ref), nil
	default:
		return nil, fmt.Errorf("unknown type kind %q", n.Kind)
	}
}

func parseKind(s string) (platform.Kind, error) {
	switch s {
	case "u8":
		return platform.U8, nil
	case "u16":
		return platform.U16, nil
	case "u32":
		return platform.U32, nil
	case "u64":
		return platform.U64, nil
	case "i8":
		return platform.I8, nil
	case "i16":
		return platform.I16, nil
	case "i32":
		return platform.I32, nil
	case "i64":
		return platform.I64, nil
	case "f32":
		return platform.F32, nil
	case "f64":
		return platform.F64, nil
	case "bool":
		return platform.Bool, nil
	case "void":
		return platform.Void, nil
	case "string":
		return platform.String, nil
	default:
		return 0, fmt.Errorf("unknown primitive kind %q", s)
	}
}

func parseEncoding(s string) (schema.Encoding, error) {
	switch s {
	case "", "fixed":
		return schema.Fixed, nil
	case "varint":
		return schema.VarInt, nil
	case "lengthprefixed":
		return schema.LengthPrefixed, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q", s)
	}
}

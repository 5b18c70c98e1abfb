package jsonschema

import (
	"strings"

	kagami "github.com/reoring/kagami"
)

// FromType exports a type description as a JSON Schema document. Named
// composite types (structs, tuple structs, enums) land in $defs and are
// referenced, which is what makes recursive descriptions exportable; the
// leaves inline.
//
// Enums export in the externally tagged layout: unit variants as name
// constants, carrying variants as single-property objects keyed by the
// variant name.
func FromType(root kagami.TypeRoot) (*Schema, error) {
	ex := &exporter{graph: root.Graph, defs: map[string]*Schema{}}
	s, err := ex.schemaFor(root.Root)
	if err != nil {
		return nil, err
	}
	if len(ex.defs) > 0 {
		s.Defs = ex.defs
	}
	return s, nil
}

type exporter struct {
	graph *kagami.TypeGraph
	defs  map[string]*Schema
}

func (ex *exporter) schemaFor(id kagami.NodeID) (*Schema, error) {
	node, ok := ex.graph.Lookup(id)
	if !ok {
		return nil, kagami.Issues{kagami.NewIssue("/"+id.String(), kagami.CodeUnknownNode)}
	}

	switch n := node.(type) {
	case *kagami.ScalarNode:
		return scalarSchema(n.Type), nil
	case *kagami.ListNode:
		items, err := ex.schemaFor(n.Elem)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case *kagami.ArrayNode:
		items, err := ex.schemaFor(n.Elem)
		if err != nil {
			return nil, err
		}
		ln := n.Len
		return &Schema{Type: "array", Items: items, MinItems: &ln, MaxItems: &ln}, nil
	case *kagami.MapNode:
		value, err := ex.schemaFor(n.Value)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: value}, nil
	case *kagami.OpaqueNode:
		return &Schema{Title: n.Name}, nil
	case *kagami.StructNode:
		return ex.define(n.Name, func() (*Schema, error) { return ex.structSchema(n) })
	case *kagami.TupleStructNode:
		return ex.define(n.Name, func() (*Schema, error) {
			s, err := ex.tupleSchema(n.Fields)
			if err != nil {
				return nil, err
			}
			s.Title = n.Name
			s.Description = joinDocs(n.Docs)
			return s, nil
		})
	case *kagami.TupleNode:
		return ex.tupleSchema(n.Fields)
	case *kagami.EnumNode:
		return ex.define(n.Name, func() (*Schema, error) { return ex.enumSchema(n) })
	default:
		return nil, kagami.Issues{kagami.NewIssue("/"+id.String(), kagami.CodeUnknownKind)}
	}
}

// define routes a named composite through $defs. A placeholder goes in
// before build runs, so self-references resolve to the ref instead of
// recursing forever.
func (ex *exporter) define(name string, build func() (*Schema, error)) (*Schema, error) {
	ref := &Schema{Ref: "#/$defs/" + escapePointer(name)}
	if _, ok := ex.defs[name]; ok {
		return ref, nil
	}
	ex.defs[name] = &Schema{}
	s, err := build()
	if err != nil {
		delete(ex.defs, name)
		return nil, err
	}
	*ex.defs[name] = *s
	return ref, nil
}

func (ex *exporter) structSchema(n *kagami.StructNode) (*Schema, error) {
	props := make(map[string]*Schema, len(n.Fields))
	required := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		fs, err := ex.schemaFor(f.Type)
		if err != nil {
			return nil, err
		}
		if d := joinDocs(f.Docs); d != "" && fs.Ref == "" {
			fs.Description = d
		}
		props[f.Name] = fs
		required = append(required, f.Name)
	}
	return &Schema{
		Type:                 "object",
		Title:                n.Name,
		Description:          joinDocs(n.Docs),
		Properties:           props,
		Required:             required,
		AdditionalProperties: false,
	}, nil
}

func (ex *exporter) tupleSchema(fields []kagami.UnnamedField) (*Schema, error) {
	prefix := make([]*Schema, len(fields))
	for i, f := range fields {
		fs, err := ex.schemaFor(f.Type)
		if err != nil {
			return nil, err
		}
		prefix[i] = fs
	}
	ln := len(fields)
	return &Schema{Type: "array", PrefixItems: prefix, MinItems: &ln, MaxItems: &ln}, nil
}

func (ex *exporter) enumSchema(n *kagami.EnumNode) (*Schema, error) {
	oneOf := make([]*Schema, len(n.Variants))
	for i, v := range n.Variants {
		switch vn := v.(type) {
		case *kagami.UnitVariantNode:
			oneOf[i] = &Schema{Const: vn.Name, Description: joinDocs(vn.Docs)}
		case *kagami.StructVariantNode:
			props := make(map[string]*Schema, len(vn.Fields))
			required := make([]string, 0, len(vn.Fields))
			for _, f := range vn.Fields {
				fs, err := ex.schemaFor(f.Type)
				if err != nil {
					return nil, err
				}
				props[f.Name] = fs
				required = append(required, f.Name)
			}
			oneOf[i] = wrapVariant(vn.Name, &Schema{
				Type:                 "object",
				Properties:           props,
				Required:             required,
				AdditionalProperties: false,
			})
		case *kagami.TupleVariantNode:
			inner, err := ex.tupleSchema(vn.Fields)
			if err != nil {
				return nil, err
			}
			// One-element tuple variants unwrap, matching the usual
			// externally tagged serialization of newtype payloads.
			if len(vn.Fields) == 1 {
				inner = inner.PrefixItems[0]
			}
			oneOf[i] = wrapVariant(vn.Name, inner)
		}
	}
	return &Schema{Title: n.Name, Description: joinDocs(n.Docs), OneOf: oneOf}, nil
}

// wrapVariant builds the externally tagged carrier object {"Name": payload}.
func wrapVariant(name string, payload *Schema) *Schema {
	return &Schema{
		Type:                 "object",
		Properties:           map[string]*Schema{name: payload},
		Required:             []string{name},
		AdditionalProperties: false,
	}
}

func scalarSchema(st kagami.ScalarType) *Schema {
	switch st {
	case kagami.ScalarBool:
		return &Schema{Type: "boolean"}
	case kagami.ScalarString:
		return &Schema{Type: "string"}
	case kagami.ScalarChar:
		one := 1
		return &Schema{Type: "string", MinLength: &one, MaxLength: &one}
	case kagami.ScalarF32, kagami.ScalarF64:
		return &Schema{Type: "number", Format: st.String()}
	default:
		s := &Schema{Type: "integer", Format: st.String()}
		switch st {
		case kagami.ScalarUint, kagami.ScalarU8, kagami.ScalarU16, kagami.ScalarU32, kagami.ScalarU64:
			zero := 0.0
			s.Minimum = &zero
		}
		return s
	}
}

func joinDocs(docs []string) string {
	return strings.Join(docs, "\n")
}

// escapePointer applies JSON Pointer escaping to a $defs key.
func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

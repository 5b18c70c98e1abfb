package codec

import (
	kagami "github.com/reoring/kagami"
)

// wireGraph is the serialized form of a TypeRoot. Node ids appear as decimal
// strings: YAML map keys and JSON object keys are strings either way, and
// the decimal form survives both unchanged.
type wireGraph struct {
	Root  string              `json:"root" yaml:"root"`
	Nodes map[string]wireNode `json:"nodes" yaml:"nodes"`
}

type wireNode struct {
	Kind     string               `json:"kind" yaml:"kind"`
	Name     string               `json:"name,omitempty" yaml:"name,omitempty"`
	Fields   []wireNamedField     `json:"fields,omitempty" yaml:"fields,omitempty"`
	Elems    []wireUnnamedField   `json:"elems,omitempty" yaml:"elems,omitempty"`
	Variants []wireVariant        `json:"variants,omitempty" yaml:"variants,omitempty"`
	Elem     string               `json:"elem,omitempty" yaml:"elem,omitempty"`
	Len      int                  `json:"len,omitempty" yaml:"len,omitempty"`
	Key      string               `json:"key,omitempty" yaml:"key,omitempty"`
	Value    string               `json:"value,omitempty" yaml:"value,omitempty"`
	Scalar   string               `json:"scalar,omitempty" yaml:"scalar,omitempty"`
	Meta     map[string]wireValue `json:"meta,omitempty" yaml:"meta,omitempty"`
	Docs     []string             `json:"docs,omitempty" yaml:"docs,omitempty"`
}

type wireNamedField struct {
	Name string               `json:"name" yaml:"name"`
	Type string               `json:"type" yaml:"type"`
	Meta map[string]wireValue `json:"meta,omitempty" yaml:"meta,omitempty"`
	Docs []string             `json:"docs,omitempty" yaml:"docs,omitempty"`
}

type wireUnnamedField struct {
	Type string               `json:"type" yaml:"type"`
	Meta map[string]wireValue `json:"meta,omitempty" yaml:"meta,omitempty"`
	Docs []string             `json:"docs,omitempty" yaml:"docs,omitempty"`
}

type wireVariant struct {
	Kind   string             `json:"kind" yaml:"kind"`
	Name   string             `json:"name" yaml:"name"`
	Fields []wireNamedField   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Elems  []wireUnnamedField `json:"elems,omitempty" yaml:"elems,omitempty"`
	Docs   []string           `json:"docs,omitempty" yaml:"docs,omitempty"`
}

func graphToWire(root kagami.TypeRoot) (wireGraph, error) {
	w := wireGraph{Root: root.Root.String(), Nodes: map[string]wireNode{}}
	for _, id := range root.Graph.IDs() {
		node, _ := root.Graph.Lookup(id)
		wn, err := nodeToWire(node)
		if err != nil {
			return w, err
		}
		w.Nodes[id.String()] = wn
	}
	if _, ok := w.Nodes[w.Root]; !ok {
		return w, kagami.Issues{kagami.NewIssue("/root", kagami.CodeUnknownNode)}
	}
	return w, nil
}

func nodeToWire(node kagami.TypeNode) (wireNode, error) {
	switch n := node.(type) {
	case *kagami.StructNode:
		return wireNode{
			Kind:   "struct",
			Name:   n.Name,
			Fields: namedFieldsToWire(n.Fields),
			Meta:   metaToWire(n.Meta),
			Docs:   n.Docs,
		}, nil
	case *kagami.TupleStructNode:
		return wireNode{
			Kind:  "tuple_struct",
			Name:  n.Name,
			Elems: unnamedFieldsToWire(n.Fields),
			Meta:  metaToWire(n.Meta),
			Docs:  n.Docs,
		}, nil
	case *kagami.TupleNode:
		return wireNode{
			Kind:  "tuple",
			Name:  n.Name,
			Elems: unnamedFieldsToWire(n.Fields),
			Meta:  metaToWire(n.Meta),
			Docs:  n.Docs,
		}, nil
	case *kagami.EnumNode:
		variants := make([]wireVariant, len(n.Variants))
		for i, v := range n.Variants {
			switch vn := v.(type) {
			case *kagami.StructVariantNode:
				variants[i] = wireVariant{
					Kind:   shapeStructName,
					Name:   vn.Name,
					Fields: namedFieldsToWire(vn.Fields),
					Docs:   vn.Docs,
				}
			case *kagami.TupleVariantNode:
				variants[i] = wireVariant{
					Kind:  shapeTupleName,
					Name:  vn.Name,
					Elems: unnamedFieldsToWire(vn.Fields),
					Docs:  vn.Docs,
				}
			case *kagami.UnitVariantNode:
				variants[i] = wireVariant{Kind: shapeUnitName, Name: vn.Name, Docs: vn.Docs}
			}
		}
		return wireNode{
			Kind:     "enum",
			Name:     n.Name,
			Variants: variants,
			Meta:     metaToWire(n.Meta),
			Docs:     n.Docs,
		}, nil
	case *kagami.ListNode:
		return wireNode{Kind: "list", Name: n.Name, Elem: n.Elem.String()}, nil
	case *kagami.ArrayNode:
		return wireNode{Kind: "array", Name: n.Name, Elem: n.Elem.String(), Len: n.Len}, nil
	case *kagami.MapNode:
		return wireNode{Kind: "map", Name: n.Name, Key: n.Key.String(), Value: n.Value.String()}, nil
	case *kagami.ScalarNode:
		return wireNode{Kind: "scalar", Scalar: n.Type.String()}, nil
	case *kagami.OpaqueNode:
		return wireNode{Kind: "opaque", Name: n.Name, Meta: metaToWire(n.Meta)}, nil
	default:
		return wireNode{}, kagami.Issues{kagami.NewIssue("/nodes", kagami.CodeUnknownKind)}
	}
}

func namedFieldsToWire(fields []kagami.NamedField) []wireNamedField {
	out := make([]wireNamedField, len(fields))
	for i, f := range fields {
		out[i] = wireNamedField{Name: f.Name, Type: f.Type.String(), Meta: metaToWire(f.Meta), Docs: f.Docs}
	}
	return out
}

func unnamedFieldsToWire(fields []kagami.UnnamedField) []wireUnnamedField {
	out := make([]wireUnnamedField, len(fields))
	for i, f := range fields {
		out[i] = wireUnnamedField{Type: f.Type.String(), Meta: metaToWire(f.Meta), Docs: f.Docs}
	}
	return out
}

func metaToWire(m kagami.Metadata) map[string]wireValue {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]wireValue, len(m))
	for k, v := range m {
		wv, err := valueToWire(v)
		if err != nil {
			continue
		}
		out[k] = wv
	}
	return out
}

// wireToGraph validates and reconnects a serialized graph. Every NodeID
// reference must name a node present in the document.
func wireToGraph(w wireGraph) (kagami.TypeRoot, error) {
	ids := make(map[string]kagami.NodeID, len(w.Nodes))
	for key := range w.Nodes {
		id, ok := kagami.ParseNodeID(key)
		if !ok {
			return kagami.TypeRoot{}, kagami.Issues{kagami.NewIssue("/nodes/"+key, kagami.CodeParseError)}
		}
		ids[key] = id
	}

	g := kagami.NewTypeGraph()
	var issues kagami.Issues
	for key, wn := range w.Nodes {
		node, err := wireToNode(wn, ids, "/nodes/"+key)
		if err != nil {
			iss, _ := kagami.AsIssues(err)
			issues = kagami.AppendIssues(issues, iss...)
			continue
		}
		g.RestoreNode(ids[key], node)
	}
	if len(issues) > 0 {
		return kagami.TypeRoot{}, issues
	}

	rootID, ok := kagami.ParseNodeID(w.Root)
	if !ok {
		return kagami.TypeRoot{}, kagami.Issues{kagami.NewIssue("/root", kagami.CodeParseError)}
	}
	if _, ok := ids[w.Root]; !ok {
		return kagami.TypeRoot{}, kagami.Issues{kagami.NewIssue("/root", kagami.CodeUnknownNode)}
	}
	return kagami.TypeRoot{Root: rootID, Graph: g}, nil
}

func wireToNode(w wireNode, ids map[string]kagami.NodeID, path string) (kagami.TypeNode, error) {
	switch w.Kind {
	case "struct":
		fields, err := namedFieldsFromWire(w.Fields, ids, path)
		if err != nil {
			return nil, err
		}
		return &kagami.StructNode{Name: w.Name, Fields: fields, Meta: metaFromWire(w.Meta), Docs: w.Docs}, nil
	case "tuple_struct":
		fields, err := unnamedFieldsFromWire(w.Elems, ids, path)
		if err != nil {
			return nil, err
		}
		return &kagami.TupleStructNode{Name: w.Name, Fields: fields, Meta: metaFromWire(w.Meta), Docs: w.Docs}, nil
	case "tuple":
		fields, err := unnamedFieldsFromWire(w.Elems, ids, path)
		if err != nil {
			return nil, err
		}
		return &kagami.TupleNode{Name: w.Name, Fields: fields, Meta: metaFromWire(w.Meta), Docs: w.Docs}, nil
	case "enum":
		variants := make([]kagami.VariantNode, len(w.Variants))
		for i, wv := range w.Variants {
			vpath := childPath(path, "variants", i)
			switch wv.Kind {
			case shapeStructName:
				fields, err := namedFieldsFromWire(wv.Fields, ids, vpath)
				if err != nil {
					return nil, err
				}
				variants[i] = &kagami.StructVariantNode{Name: wv.Name, Fields: fields, Docs: wv.Docs}
			case shapeTupleName:
				fields, err := unnamedFieldsFromWire(wv.Elems, ids, vpath)
				if err != nil {
					return nil, err
				}
				variants[i] = &kagami.TupleVariantNode{Name: wv.Name, Fields: fields, Docs: wv.Docs}
			case shapeUnitName:
				variants[i] = &kagami.UnitVariantNode{Name: wv.Name, Docs: wv.Docs}
			default:
				return nil, kagami.Issues{kagami.NewIssue(vpath+"/kind", kagami.CodeUnknownKind)}
			}
		}
		return &kagami.EnumNode{Name: w.Name, Variants: variants, Meta: metaFromWire(w.Meta), Docs: w.Docs}, nil
	case "list":
		elem, err := refFromWire(w.Elem, ids, path+"/elem")
		if err != nil {
			return nil, err
		}
		return &kagami.ListNode{Name: w.Name, Elem: elem}, nil
	case "array":
		elem, err := refFromWire(w.Elem, ids, path+"/elem")
		if err != nil {
			return nil, err
		}
		return &kagami.ArrayNode{Name: w.Name, Elem: elem, Len: w.Len}, nil
	case "map":
		key, err := refFromWire(w.Key, ids, path+"/key")
		if err != nil {
			return nil, err
		}
		value, err := refFromWire(w.Value, ids, path+"/value")
		if err != nil {
			return nil, err
		}
		return &kagami.MapNode{Name: w.Name, Key: key, Value: value}, nil
	case "scalar":
		st, ok := scalarTypeByName(w.Scalar)
		if !ok {
			return nil, kagami.Issues{kagami.NewIssue(path+"/scalar", kagami.CodeUnknownKind)}
		}
		return &kagami.ScalarNode{Type: st}, nil
	case "opaque":
		return &kagami.OpaqueNode{Name: w.Name, Meta: metaFromWire(w.Meta)}, nil
	default:
		return nil, kagami.Issues{kagami.NewIssue(path+"/kind", kagami.CodeUnknownKind)}
	}
}

func namedFieldsFromWire(fields []wireNamedField, ids map[string]kagami.NodeID, path string) ([]kagami.NamedField, error) {
	out := make([]kagami.NamedField, len(fields))
	for i, f := range fields {
		typ, err := refFromWire(f.Type, ids, childPath(path, "fields", i)+"/type")
		if err != nil {
			return nil, err
		}
		out[i] = kagami.NamedField{Name: f.Name, Type: typ, Meta: metaFromWire(f.Meta), Docs: f.Docs}
	}
	return out, nil
}

func unnamedFieldsFromWire(fields []wireUnnamedField, ids map[string]kagami.NodeID, path string) ([]kagami.UnnamedField, error) {
	out := make([]kagami.UnnamedField, len(fields))
	for i, f := range fields {
		typ, err := refFromWire(f.Type, ids, childPath(path, "elems", i)+"/type")
		if err != nil {
			return nil, err
		}
		out[i] = kagami.UnnamedField{Type: typ, Meta: metaFromWire(f.Meta), Docs: f.Docs}
	}
	return out, nil
}

func refFromWire(ref string, ids map[string]kagami.NodeID, path string) (kagami.NodeID, error) {
	id, ok := ids[ref]
	if !ok {
		return 0, kagami.Issues{kagami.NewIssue(path, kagami.CodeUnknownNode)}
	}
	return id, nil
}

func metaFromWire(m map[string]wireValue) kagami.Metadata {
	if len(m) == 0 {
		return nil
	}
	out := make(kagami.Metadata, len(m))
	for k, wv := range m {
		v, err := wireToValue(wv, "/meta/"+k)
		if err != nil {
			continue
		}
		out[k] = v
	}
	return out
}

func scalarTypeByName(name string) (kagami.ScalarType, bool) {
	for st := kagami.ScalarUint; st <= kagami.ScalarString; st++ {
		if st.String() == name {
			return st, true
		}
	}
	return 0, false
}

package keypath

import (
	kagami "github.com/reoring/kagami"
)

// TypeAtPath is the static result of walking a path through a type graph.
// Exactly one of Node and Variant is set: Variant is set when the path ends
// on a ::Name selector, Node otherwise.
type TypeAtPath struct {
	Graph   *kagami.TypeGraph
	Node    kagami.TypeNode
	Variant kagami.VariantNode
}

// TypeAt walks a path against a type description instead of a value. Bounds
// of sequences are not checked statically: any integer literal indexes a
// list or array. A field or positional access on an enum requires the
// preceding ::Name selector, because without a live value there is no active
// variant to read.
func TypeAt(root kagami.TypeRoot, p Path) (TypeAtPath, bool) {
	g := root.Graph
	cur, ok := g.Lookup(root.Root)
	if !ok {
		return TypeAtPath{}, false
	}
	var variant kagami.VariantNode

	for _, seg := range p.segs {
		switch seg.kind {
		case segVariant:
			if variant != nil {
				return TypeAtPath{}, false
			}
			enum, ok := cur.(*kagami.EnumNode)
			if !ok {
				return TypeAtPath{}, false
			}
			v, ok := enum.VariantByName(seg.name)
			if !ok {
				return TypeAtPath{}, false
			}
			variant = v
		case segField:
			var field *kagami.NamedField
			if variant != nil {
				sv, ok := variant.(*kagami.StructVariantNode)
				if !ok {
					return TypeAtPath{}, false
				}
				field, ok = sv.FieldByName(seg.name)
				if !ok {
					return TypeAtPath{}, false
				}
				variant = nil
			} else {
				sn, ok := cur.(*kagami.StructNode)
				if !ok {
					return TypeAtPath{}, false
				}
				field, ok = sn.FieldByName(seg.name)
				if !ok {
					return TypeAtPath{}, false
				}
			}
			next, ok := g.Lookup(field.Type)
			if !ok {
				return TypeAtPath{}, false
			}
			cur = next
		case segIndex:
			var fields []kagami.UnnamedField
			if variant != nil {
				tv, ok := variant.(*kagami.TupleVariantNode)
				if !ok {
					return TypeAtPath{}, false
				}
				fields = tv.Fields
				variant = nil
			} else {
				switch n := cur.(type) {
				case *kagami.TupleStructNode:
					fields = n.Fields
				case *kagami.TupleNode:
					fields = n.Fields
				default:
					return TypeAtPath{}, false
				}
			}
			if seg.index < 0 || seg.index >= len(fields) {
				return TypeAtPath{}, false
			}
			next, ok := g.Lookup(fields[seg.index].Type)
			if !ok {
				return TypeAtPath{}, false
			}
			cur = next
		case segKey:
			if variant != nil {
				return TypeAtPath{}, false
			}
			var elem kagami.NodeID
			switch n := cur.(type) {
			case *kagami.ListNode:
				if _, ok := intKey(seg.key); !ok {
					return TypeAtPath{}, false
				}
				elem = n.Elem
			case *kagami.ArrayNode:
				if _, ok := intKey(seg.key); !ok {
					return TypeAtPath{}, false
				}
				elem = n.Elem
			case *kagami.MapNode:
				elem = n.Value
			default:
				return TypeAtPath{}, false
			}
			next, ok := g.Lookup(elem)
			if !ok {
				return TypeAtPath{}, false
			}
			cur = next
		}
	}

	if variant != nil {
		return TypeAtPath{Graph: g, Variant: variant}, true
	}
	return TypeAtPath{Graph: g, Node: cur}, true
}

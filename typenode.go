package kagami

// Metadata carries free-form, string-keyed annotations. The engine passes it
// through unchanged.
type Metadata map[string]Value

// Clone returns a deep copy.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// TypeNode describes one type's shape inside a TypeGraph. The variant set is
// closed: StructNode, TupleStructNode, TupleNode, EnumNode, ListNode,
// ArrayNode, MapNode, ScalarNode, OpaqueNode.
type TypeNode interface {
	// TypeName returns the canonical name the node was registered under.
	TypeName() string
	isTypeNode()
}

// NamedField is one named field of a struct node or struct variant. The
// field's own type lives behind the NodeID indirection, which is what keeps
// recursive graphs flat and serializable.
type NamedField struct {
	Name string
	Type NodeID
	Meta Metadata
	Docs []string
}

// UnnamedField is one positional field of a tuple-like node.
type UnnamedField struct {
	Type NodeID
	Meta Metadata
	Docs []string
}

// StructNode describes a named-field type. Fields keep declaration order;
// FieldByName provides the name-keyed view over the same storage.
type StructNode struct {
	Name   string
	Fields []NamedField
	Meta   Metadata
	Docs   []string

	byName map[string]int
}

func (n *StructNode) TypeName() string { return n.Name }
func (n *StructNode) isTypeNode()      {}

// FieldByName looks a field up by name. The index is built on first use and
// is not safe for concurrent first lookup; graphs are single-traversal
// structures.
func (n *StructNode) FieldByName(name string) (*NamedField, bool) {
	if n.byName == nil {
		n.byName = make(map[string]int, len(n.Fields))
		for i := range n.Fields {
			n.byName[n.Fields[i].Name] = i
		}
	}
	i, ok := n.byName[name]
	if !ok {
		return nil, false
	}
	return &n.Fields[i], true
}

// TupleStructNode describes a named positional type.
type TupleStructNode struct {
	Name   string
	Fields []UnnamedField
	Meta   Metadata
	Docs   []string
}

func (n *TupleStructNode) TypeName() string { return n.Name }
func (n *TupleStructNode) isTypeNode()      {}

// TupleNode describes an anonymous positional type.
type TupleNode struct {
	Name   string
	Fields []UnnamedField
	Meta   Metadata
	Docs   []string
}

func (n *TupleNode) TypeName() string { return n.Name }
func (n *TupleNode) isTypeNode()      {}

// EnumNode describes a variant type with an ordered variant list.
type EnumNode struct {
	Name     string
	Variants []VariantNode
	Meta     Metadata
	Docs     []string
}

func (n *EnumNode) TypeName() string { return n.Name }
func (n *EnumNode) isTypeNode()      {}

// VariantByName looks a variant up by name.
func (n *EnumNode) VariantByName(name string) (VariantNode, bool) {
	for _, v := range n.Variants {
		if v.VariantName() == name {
			return v, true
		}
	}
	return nil, false
}

// VariantNode describes one enum variant: struct-like, tuple-like, or unit.
type VariantNode interface {
	VariantName() string
	Shape() VariantShape
	isVariantNode()
}

// StructVariantNode is a variant with named fields.
type StructVariantNode struct {
	Name   string
	Fields []NamedField
	Meta   Metadata
	Docs   []string

	byName map[string]int
}

func (n *StructVariantNode) VariantName() string { return n.Name }
func (n *StructVariantNode) Shape() VariantShape { return VariantStruct }
func (n *StructVariantNode) isVariantNode()      {}

// FieldByName looks a variant field up by name.
func (n *StructVariantNode) FieldByName(name string) (*NamedField, bool) {
	if n.byName == nil {
		n.byName = make(map[string]int, len(n.Fields))
		for i := range n.Fields {
			n.byName[n.Fields[i].Name] = i
		}
	}
	i, ok := n.byName[name]
	if !ok {
		return nil, false
	}
	return &n.Fields[i], true
}

// TupleVariantNode is a variant with positional fields.
type TupleVariantNode struct {
	Name   string
	Fields []UnnamedField
	Meta   Metadata
	Docs   []string
}

func (n *TupleVariantNode) VariantName() string { return n.Name }
func (n *TupleVariantNode) Shape() VariantShape { return VariantTuple }
func (n *TupleVariantNode) isVariantNode()      {}

// UnitVariantNode is a variant with no fields.
type UnitVariantNode struct {
	Name string
	Meta Metadata
	Docs []string
}

func (n *UnitVariantNode) VariantName() string { return n.Name }
func (n *UnitVariantNode) Shape() VariantShape { return VariantUnit }
func (n *UnitVariantNode) isVariantNode()      {}

// ListNode describes a homogeneous, unbounded sequence.
type ListNode struct {
	Name string
	Elem NodeID
}

func (n *ListNode) TypeName() string { return n.Name }
func (n *ListNode) isTypeNode()      {}

// ArrayNode describes a homogeneous, fixed-length sequence.
type ArrayNode struct {
	Name string
	Elem NodeID
	Len  int
}

func (n *ArrayNode) TypeName() string { return n.Name }
func (n *ArrayNode) isTypeNode()      {}

// MapNode describes a keyed container.
type MapNode struct {
	Name  string
	Key   NodeID
	Value NodeID
}

func (n *MapNode) TypeName() string { return n.Name }
func (n *MapNode) isTypeNode()      {}

// ScalarNode describes one of the fixed scalar leaves.
type ScalarNode struct {
	Type ScalarType
}

func (n *ScalarNode) TypeName() string { return n.Type.String() }
func (n *ScalarNode) isTypeNode()      {}

// OpaqueNode describes an unreflected leaf, identified only by name.
type OpaqueNode struct {
	Name string
	Meta Metadata
}

func (n *OpaqueNode) TypeName() string { return n.Name }
func (n *OpaqueNode) isTypeNode()      {}

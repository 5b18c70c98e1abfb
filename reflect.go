package kagami

import "iter"

// Reflect is the capability interface every reflectable value implements,
// conventionally through generated code. It is the sole extension point:
// anything implementing it participates fully in value snapshotting,
// patching, and key-path traversal.
type Reflect interface {
	// Shape selects which of the eight behaviors the value exposes right
	// now. Callers switch on Shape and then narrow through the As helpers.
	Shape() Shape

	// ToValue snapshots the value into the dynamic Value union. Snapshots
	// are deep copies and always succeed.
	ToValue() Value

	// CloneReflect returns a capability-preserving deep clone.
	CloneReflect() Reflect

	// Patch applies other onto the receiver, field by field, index by
	// index, variant-aware. Mismatched parts are silently skipped; Patch
	// never fails.
	Patch(other Reflect)

	// DescribeType registers the value's static shape into g and returns
	// its node id.
	DescribeType(g *TypeGraph) NodeID

	// String renders a debug representation.
	String() string
}

// Struct is the named-field view of a value.
type Struct interface {
	Reflect
	NumFields() int
	// Field returns a live handle to the named field, or nil when the
	// shape does not offer it.
	Field(name string) Reflect
	FieldAt(index int) Reflect
	FieldName(index int) string
	Fields() iter.Seq2[string, Reflect]
}

// Tuple is the positional-field view of a value. Tuple structs share the
// same surface; the two are told apart by Shape.
type Tuple interface {
	Reflect
	NumFields() int
	Field(index int) Reflect
	Fields() iter.Seq[Reflect]
}

// Enum is the variant view of a value. Field access reads the active
// variant's fields.
type Enum interface {
	Reflect
	VariantName() string
	VariantShape() VariantShape
	NumFields() int
	Field(name string) Reflect
	FieldAt(index int) Reflect
	Fields() iter.Seq2[string, Reflect]
}

// List is the homogeneous-sequence view of a value.
type List interface {
	Reflect
	Len() int
	Elem(index int) Reflect
	Elems() iter.Seq[Reflect]
}

// Map is the keyed view of a value. Keys are Values under the canonical
// total order.
type Map interface {
	Reflect
	Len() int
	Get(key Value) Reflect
	Entries() iter.Seq2[Value, Reflect]
}

// Scalar is the leaf view of a value.
type Scalar interface {
	Reflect
	// Scalar returns the payload as a Value.
	Scalar() Value
	// SetScalar replaces the payload when the kinds match, reporting
	// whether it did.
	SetScalar(v Value) bool
}

// FromReflecter rebuilds a concrete value in place from a reflected source,
// returning false when the source's shape does not match. Reconstruction is
// the partial inverse of ToValue.
type FromReflecter interface {
	FromReflect(src Reflect) bool
}

// FromValue reconstructs a T from a dynamic Value, returning false when the
// shapes disagree.
func FromValue[T any, P interface {
	*T
	FromReflecter
}](v Value) (T, bool) {
	var out T
	if P(&out).FromReflect(&v) {
		return out, true
	}
	var zero T
	return zero, false
}

// FromReflect reconstructs a T from any reflected value.
func FromReflect[T any, P interface {
	*T
	FromReflecter
}](src Reflect) (T, bool) {
	var out T
	if P(&out).FromReflect(src) {
		return out, true
	}
	var zero T
	return zero, false
}

// The As helpers narrow a Reflect to one of the eight behaviors. They check
// the shape first, so a successful narrow always means the view is active.

func AsStruct(r Reflect) (Struct, bool) {
	if r == nil || r.Shape() != ShapeStruct {
		return nil, false
	}
	if v, ok := r.(*Value); ok {
		s, ok := v.data.(*StructValue)
		return s, ok
	}
	s, ok := r.(Struct)
	return s, ok
}

func AsTupleStruct(r Reflect) (Tuple, bool) {
	if r == nil || r.Shape() != ShapeTupleStruct {
		return nil, false
	}
	if v, ok := r.(*Value); ok {
		t, ok := v.data.(*TupleStructValue)
		return t, ok
	}
	t, ok := r.(Tuple)
	return t, ok
}

func AsTuple(r Reflect) (Tuple, bool) {
	if r == nil || r.Shape() != ShapeTuple {
		return nil, false
	}
	if v, ok := r.(*Value); ok {
		t, ok := v.data.(*TupleValue)
		return t, ok
	}
	t, ok := r.(Tuple)
	return t, ok
}

func AsEnum(r Reflect) (Enum, bool) {
	if r == nil || r.Shape() != ShapeEnum {
		return nil, false
	}
	if v, ok := r.(*Value); ok {
		e, ok := v.data.(*EnumValue)
		return e, ok
	}
	e, ok := r.(Enum)
	return e, ok
}

func AsList(r Reflect) (List, bool) {
	if r == nil || r.Shape() != ShapeList {
		return nil, false
	}
	if v, ok := r.(*Value); ok {
		return &listRef{v}, true
	}
	l, ok := r.(List)
	return l, ok
}

func AsMap(r Reflect) (Map, bool) {
	if r == nil || r.Shape() != ShapeMap {
		return nil, false
	}
	if v, ok := r.(*Value); ok {
		m, ok := v.data.(*ValueMap)
		return m, ok
	}
	m, ok := r.(Map)
	return m, ok
}

func AsScalar(r Reflect) (Scalar, bool) {
	if r == nil || r.Shape() != ShapeScalar {
		return nil, false
	}
	s, ok := r.(Scalar)
	return s, ok
}

package kagami

import (
	"iter"
	"strings"
)

// TupleStructValue is the dynamic materialization of a named positional
// value. It wraps a TupleValue and differs only in shape.
type TupleStructValue struct {
	tuple TupleValue
}

// NewTupleStructValue returns an empty dynamic tuple struct.
func NewTupleStructValue() *TupleStructValue { return &TupleStructValue{} }

// WithElem appends a field, chainable.
func (t *TupleStructValue) WithElem(v Value) *TupleStructValue {
	t.tuple.PushElem(v)
	return t
}

// PushElem appends a field.
func (t *TupleStructValue) PushElem(v Value) { t.tuple.PushElem(v) }

// ElemValue returns a copy of the field at index.
func (t *TupleStructValue) ElemValue(index int) (Value, bool) {
	return t.tuple.ElemValue(index)
}

// Clone returns a deep copy.
func (t *TupleStructValue) Clone() *TupleStructValue {
	return &TupleStructValue{tuple: *t.tuple.Clone()}
}

func (t *TupleStructValue) compare(o *TupleStructValue) int {
	return t.tuple.compare(&o.tuple)
}

// ---- Reflect / Tuple implementation ----

func (t *TupleStructValue) Shape() Shape { return ShapeTupleStruct }

func (t *TupleStructValue) NumFields() int { return t.tuple.NumFields() }

func (t *TupleStructValue) Field(index int) Reflect { return t.tuple.Field(index) }

func (t *TupleStructValue) Fields() iter.Seq[Reflect] { return t.tuple.Fields() }

func (t *TupleStructValue) ToValue() Value { return TupleStructVal(t.Clone()) }

func (t *TupleStructValue) CloneReflect() Reflect { return t.Clone() }

func (t *TupleStructValue) DescribeType(g *TypeGraph) NodeID {
	return BuildOpaque(g, "kagami.TupleStructValue", nil)
}

// Patch updates indices present in both sides.
func (t *TupleStructValue) Patch(other Reflect) {
	o, ok := AsTupleStruct(other)
	if !ok {
		return
	}
	for i := 0; i < t.tuple.NumFields(); i++ {
		if f := o.Field(i); f != nil {
			t.tuple.values[i].Patch(f)
		}
	}
}

// FromReflect rebuilds the dynamic tuple struct from any tuple-struct-shaped
// source.
func (t *TupleStructValue) FromReflect(src Reflect) bool {
	o, ok := AsTupleStruct(src)
	if !ok {
		return false
	}
	out := NewTupleStructValue()
	for f := range o.Fields() {
		out.PushElem(f.ToValue())
	}
	*t = *out
	return true
}

func (t *TupleStructValue) String() string {
	var b strings.Builder
	t.renderInto(&b)
	return b.String()
}

func (t *TupleStructValue) renderInto(b *strings.Builder) {
	t.tuple.renderInto(b)
}

package kagami

import (
	"iter"
	"strings"
)

// TupleValue is the dynamic materialization of a positional value.
type TupleValue struct {
	values []Value
}

// NewTupleValue returns an empty dynamic tuple.
func NewTupleValue() *TupleValue { return &TupleValue{} }

// WithElem appends a field, chainable.
func (t *TupleValue) WithElem(v Value) *TupleValue {
	t.values = append(t.values, v)
	return t
}

// PushElem appends a field.
func (t *TupleValue) PushElem(v Value) {
	t.values = append(t.values, v)
}

// ElemValue returns a copy of the field at index.
func (t *TupleValue) ElemValue(index int) (Value, bool) {
	if index < 0 || index >= len(t.values) {
		return Value{}, false
	}
	return t.values[index], true
}

// Clone returns a deep copy.
func (t *TupleValue) Clone() *TupleValue {
	out := &TupleValue{values: make([]Value, len(t.values))}
	for i := range t.values {
		out.values[i] = t.values[i].Clone()
	}
	return out
}

func (t *TupleValue) compare(o *TupleValue) int {
	return compareValues(t.values, o.values)
}

// ---- Reflect / Tuple implementation ----

func (t *TupleValue) Shape() Shape { return ShapeTuple }

func (t *TupleValue) NumFields() int { return len(t.values) }

func (t *TupleValue) Field(index int) Reflect {
	if index < 0 || index >= len(t.values) {
		return nil
	}
	return &t.values[index]
}

func (t *TupleValue) Fields() iter.Seq[Reflect] {
	return func(yield func(Reflect) bool) {
		for i := range t.values {
			if !yield(&t.values[i]) {
				return
			}
		}
	}
}

func (t *TupleValue) ToValue() Value { return TupleVal(t.Clone()) }

func (t *TupleValue) CloneReflect() Reflect { return t.Clone() }

func (t *TupleValue) DescribeType(g *TypeGraph) NodeID {
	return BuildOpaque(g, "kagami.TupleValue", nil)
}

// Patch updates indices present in both sides.
func (t *TupleValue) Patch(other Reflect) {
	o, ok := AsTuple(other)
	if !ok {
		if o, ok = AsTupleStruct(other); !ok {
			return
		}
	}
	for i := range t.values {
		if f := o.Field(i); f != nil {
			t.values[i].Patch(f)
		}
	}
}

// FromReflect rebuilds the dynamic tuple from any tuple-shaped source.
func (t *TupleValue) FromReflect(src Reflect) bool {
	o, ok := AsTuple(src)
	if !ok {
		return false
	}
	out := NewTupleValue()
	for f := range o.Fields() {
		out.PushElem(f.ToValue())
	}
	*t = *out
	return true
}

func (t *TupleValue) String() string {
	var b strings.Builder
	t.renderInto(&b)
	return b.String()
}

func (t *TupleValue) renderInto(b *strings.Builder) {
	b.WriteByte('(')
	for i := range t.values {
		if i > 0 {
			b.WriteString(", ")
		}
		t.values[i].render(b)
	}
	b.WriteByte(')')
}

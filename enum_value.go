package kagami

import (
	"cmp"
	"iter"
	"strings"
)

// EnumValue is the dynamic materialization of a variant value: one active
// variant that behaves struct-like, tuple-like, or unit-like.
type EnumValue struct {
	variant string
	shape   VariantShape
	names   []string
	values  []Value
	index   map[string]int
}

// NewStructVariant returns a dynamic enum holding an empty struct variant.
func NewStructVariant(name string) *EnumValue {
	return &EnumValue{variant: name, shape: VariantStruct, index: map[string]int{}}
}

// NewTupleVariant returns a dynamic enum holding an empty tuple variant.
func NewTupleVariant(name string) *EnumValue {
	return &EnumValue{variant: name, shape: VariantTuple}
}

// NewUnitVariant returns a dynamic enum holding a unit variant.
func NewUnitVariant(name string) *EnumValue {
	return &EnumValue{variant: name, shape: VariantUnit}
}

// WithField adds a named field to a struct variant, chainable.
func (e *EnumValue) WithField(name string, v Value) *EnumValue {
	e.SetField(name, v)
	return e
}

// SetField inserts or replaces a named field on a struct variant. It is a
// no-op on other variant shapes.
func (e *EnumValue) SetField(name string, v Value) {
	if e.shape != VariantStruct {
		return
	}
	if e.index == nil {
		e.index = map[string]int{}
	}
	if i, ok := e.index[name]; ok {
		e.values[i] = v
		return
	}
	e.index[name] = len(e.names)
	e.names = append(e.names, name)
	e.values = append(e.values, v)
}

// WithElem appends a positional field to a tuple variant, chainable. It is a
// no-op on other variant shapes.
func (e *EnumValue) WithElem(v Value) *EnumValue {
	if e.shape == VariantTuple {
		e.values = append(e.values, v)
	}
	return e
}

// Clone returns a deep copy.
func (e *EnumValue) Clone() *EnumValue {
	out := &EnumValue{variant: e.variant, shape: e.shape}
	switch e.shape {
	case VariantStruct:
		out.index = map[string]int{}
		for i, name := range e.names {
			out.index[name] = i
			out.names = append(out.names, name)
			out.values = append(out.values, e.values[i].Clone())
		}
	case VariantTuple:
		out.values = make([]Value, len(e.values))
		for i := range e.values {
			out.values[i] = e.values[i].Clone()
		}
	}
	return out
}

func (e *EnumValue) compare(o *EnumValue) int {
	if c := strings.Compare(e.variant, o.variant); c != 0 {
		return c
	}
	if c := cmp.Compare(e.shape, o.shape); c != 0 {
		return c
	}
	if e.shape == VariantStruct {
		a := &StructValue{names: e.names, values: e.values, index: e.index}
		b := &StructValue{names: o.names, values: o.values, index: o.index}
		return a.compare(b)
	}
	return compareValues(e.values, o.values)
}

// ---- Reflect / Enum implementation ----

func (e *EnumValue) Shape() Shape { return ShapeEnum }

func (e *EnumValue) VariantName() string { return e.variant }

func (e *EnumValue) VariantShape() VariantShape { return e.shape }

func (e *EnumValue) NumFields() int { return len(e.values) }

// Field returns a live handle to a struct-variant field, or nil.
func (e *EnumValue) Field(name string) Reflect {
	if e.shape != VariantStruct {
		return nil
	}
	i, ok := e.index[name]
	if !ok {
		return nil
	}
	return &e.values[i]
}

func (e *EnumValue) FieldAt(index int) Reflect {
	if index < 0 || index >= len(e.values) {
		return nil
	}
	return &e.values[index]
}

// Fields iterates the active variant's fields. Tuple-variant fields yield an
// empty name.
func (e *EnumValue) Fields() iter.Seq2[string, Reflect] {
	return func(yield func(string, Reflect) bool) {
		for i := range e.values {
			name := ""
			if e.shape == VariantStruct {
				name = e.names[i]
			}
			if !yield(name, &e.values[i]) {
				return
			}
		}
	}
}

func (e *EnumValue) ToValue() Value { return EnumVal(e.Clone()) }

func (e *EnumValue) CloneReflect() Reflect { return e.Clone() }

func (e *EnumValue) DescribeType(g *TypeGraph) NodeID {
	return BuildOpaque(g, "kagami.EnumValue", nil)
}

// Patch is variant-aware: when the incoming enum carries the same variant,
// fields patch member by member; when it carries a different variant, the
// receiver adopts it wholesale. Non-enum sources are ignored.
func (e *EnumValue) Patch(other Reflect) {
	o, ok := AsEnum(other)
	if !ok {
		return
	}
	if o.VariantName() != e.variant {
		var adopted EnumValue
		if adopted.FromReflect(o) {
			*e = adopted
		}
		return
	}
	switch e.shape {
	case VariantStruct:
		for i, name := range e.names {
			if f := o.Field(name); f != nil {
				e.values[i].Patch(f)
			}
		}
	case VariantTuple:
		for i := range e.values {
			if f := o.FieldAt(i); f != nil {
				e.values[i].Patch(f)
			}
		}
	}
}

// FromReflect rebuilds the dynamic enum from any enum-shaped source.
func (e *EnumValue) FromReflect(src Reflect) bool {
	o, ok := AsEnum(src)
	if !ok {
		return false
	}
	var out *EnumValue
	switch o.VariantShape() {
	case VariantStruct:
		out = NewStructVariant(o.VariantName())
		for name, f := range o.Fields() {
			out.SetField(name, f.ToValue())
		}
	case VariantTuple:
		out = NewTupleVariant(o.VariantName())
		for _, f := range o.Fields() {
			out.WithElem(f.ToValue())
		}
	default:
		out = NewUnitVariant(o.VariantName())
	}
	*e = *out
	return true
}

func (e *EnumValue) String() string {
	var b strings.Builder
	e.renderInto(&b)
	return b.String()
}

func (e *EnumValue) renderInto(b *strings.Builder) {
	b.WriteString(e.variant)
	switch e.shape {
	case VariantStruct:
		b.WriteByte('{')
		for i, name := range e.names {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			b.WriteString(": ")
			e.values[i].render(b)
		}
		b.WriteByte('}')
	case VariantTuple:
		b.WriteByte('(')
		for i := range e.values {
			if i > 0 {
				b.WriteString(", ")
			}
			e.values[i].render(b)
		}
		b.WriteByte(')')
	}
}

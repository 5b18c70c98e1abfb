package kagami

import (
	"iter"
	"slices"
	"strings"
)

// StructValue is the dynamic materialization of a named-field value. Fields
// keep insertion order for display and iteration, with a name index for
// lookup; both views stay consistent because all mutation goes through
// SetField.
type StructValue struct {
	names  []string
	values []Value
	index  map[string]int
}

// NewStructValue returns an empty dynamic struct.
func NewStructValue() *StructValue {
	return &StructValue{index: map[string]int{}}
}

// WithField is SetField as a chainable builder step.
func (s *StructValue) WithField(name string, v Value) *StructValue {
	s.SetField(name, v)
	return s
}

// SetField inserts or replaces the named field.
func (s *StructValue) SetField(name string, v Value) {
	if s.index == nil {
		s.index = map[string]int{}
	}
	if i, ok := s.index[name]; ok {
		s.values[i] = v
		return
	}
	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	s.values = append(s.values, v)
}

// FieldValue returns a copy of the named field's payload.
func (s *StructValue) FieldValue(name string) (Value, bool) {
	i, ok := s.index[name]
	if !ok {
		return Value{}, false
	}
	return s.values[i], true
}

// Clone returns a deep copy.
func (s *StructValue) Clone() *StructValue {
	out := NewStructValue()
	for i, name := range s.names {
		out.SetField(name, s.values[i].Clone())
	}
	return out
}

func (s *StructValue) compare(o *StructValue) int {
	// Order over name-sorted (name, value) pairs so the result does not
	// depend on insertion order.
	an := slices.Sorted(slices.Values(s.names))
	bn := slices.Sorted(slices.Values(o.names))
	n := min(len(an), len(bn))
	for i := 0; i < n; i++ {
		if c := strings.Compare(an[i], bn[i]); c != 0 {
			return c
		}
		av := s.values[s.index[an[i]]]
		bv := o.values[o.index[bn[i]]]
		if c := av.Compare(bv); c != 0 {
			return c
		}
	}
	switch {
	case len(an) < len(bn):
		return -1
	case len(an) > len(bn):
		return 1
	default:
		return 0
	}
}

// ---- Reflect / Struct implementation ----

func (s *StructValue) Shape() Shape { return ShapeStruct }

func (s *StructValue) NumFields() int { return len(s.names) }

// Field returns a live handle to the named field, or nil.
func (s *StructValue) Field(name string) Reflect {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return &s.values[i]
}

func (s *StructValue) FieldAt(index int) Reflect {
	if index < 0 || index >= len(s.values) {
		return nil
	}
	return &s.values[index]
}

func (s *StructValue) FieldName(index int) string {
	if index < 0 || index >= len(s.names) {
		return ""
	}
	return s.names[index]
}

func (s *StructValue) Fields() iter.Seq2[string, Reflect] {
	return func(yield func(string, Reflect) bool) {
		for i, name := range s.names {
			if !yield(name, &s.values[i]) {
				return
			}
		}
	}
}

func (s *StructValue) ToValue() Value { return StructVal(s.Clone()) }

func (s *StructValue) CloneReflect() Reflect { return s.Clone() }

func (s *StructValue) DescribeType(g *TypeGraph) NodeID {
	return BuildOpaque(g, "kagami.StructValue", nil)
}

// Patch updates fields present in both sides; extra fields in other are
// ignored, as are kind mismatches inside each field.
func (s *StructValue) Patch(other Reflect) {
	o, ok := AsStruct(other)
	if !ok {
		return
	}
	for i, name := range s.names {
		if f := o.Field(name); f != nil {
			s.values[i].Patch(f)
		}
	}
}

// FromReflect rebuilds the dynamic struct from any struct-shaped source.
func (s *StructValue) FromReflect(src Reflect) bool {
	o, ok := AsStruct(src)
	if !ok {
		return false
	}
	out := NewStructValue()
	for name, f := range o.Fields() {
		out.SetField(name, f.ToValue())
	}
	*s = *out
	return true
}

func (s *StructValue) String() string {
	var b strings.Builder
	s.renderInto(&b)
	return b.String()
}

func (s *StructValue) renderInto(b *strings.Builder) {
	b.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		s.values[i].render(b)
	}
	b.WriteByte('}')
}

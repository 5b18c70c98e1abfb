package kagami

import (
	"fmt"
	"iter"
	"strings"
)

// Value is the dynamic union of every reflectable value. The zero Value is
// invalid and compares before everything else.
//
// A Value owns its payload: aggregate constructors take ownership of the
// container passed in, and Clone always produces a fully independent tree.
type Value struct {
	kind ValueKind
	data any
}

// Scalar constructors. Conversions into Value are total.

func Uint(v uint) Value      { return Value{KindUint, v} }
func U8(v uint8) Value       { return Value{KindU8, v} }
func U16(v uint16) Value     { return Value{KindU16, v} }
func U32(v uint32) Value     { return Value{KindU32, v} }
func U64(v uint64) Value     { return Value{KindU64, v} }
func Int(v int) Value        { return Value{KindInt, v} }
func I8(v int8) Value        { return Value{KindI8, v} }
func I16(v int16) Value      { return Value{KindI16, v} }
func I32(v int32) Value      { return Value{KindI32, v} }
func I64(v int64) Value      { return Value{KindI64, v} }
func Bool(v bool) Value      { return Value{KindBool, v} }
func Char(v rune) Value      { return Value{KindChar, v} }
func F32(v float32) Value    { return Value{KindF32, v} }
func F64(v float64) Value    { return Value{KindF64, v} }
func Str(v string) Value     { return Value{KindString, v} }

// Aggregate constructors. These take ownership of their argument; callers
// must not retain and mutate it afterwards.

func StructVal(s *StructValue) Value           { return Value{KindStructValue, s} }
func EnumVal(e *EnumValue) Value               { return Value{KindEnumValue, e} }
func TupleVal(t *TupleValue) Value             { return Value{KindTupleValue, t} }
func TupleStructVal(t *TupleStructValue) Value { return Value{KindTupleStructValue, t} }
func ListVal(elems ...Value) Value             { return Value{KindList, elems} }
func MapVal(m *ValueMap) Value                 { return Value{KindMap, m} }

// Kind returns the payload discriminant.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether the Value carries a payload.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// As extracts the native payload when it has exactly type T.
func As[T any](v Value) (T, bool) {
	t, ok := v.data.(T)
	return t, ok
}

// AsInt64 widens any signed integer or char payload to int64.
func (v Value) AsInt64() (int64, bool) {
	switch d := v.data.(type) {
	case int:
		return int64(d), true
	case int8:
		return int64(d), true
	case int16:
		return int64(d), true
	case int32: // includes char
		return int64(d), true
	case int64:
		return d, true
	}
	return 0, false
}

// AsUint64 widens any unsigned integer payload to uint64.
func (v Value) AsUint64() (uint64, bool) {
	switch d := v.data.(type) {
	case uint:
		return uint64(d), true
	case uint8:
		return uint64(d), true
	case uint16:
		return uint64(d), true
	case uint32:
		return uint64(d), true
	case uint64:
		return d, true
	}
	return 0, false
}

// Clone returns a deep, independent copy.
func (v Value) Clone() Value {
	switch v.kind {
	case KindStructValue:
		return StructVal(v.data.(*StructValue).Clone())
	case KindEnumValue:
		return EnumVal(v.data.(*EnumValue).Clone())
	case KindTupleStructValue:
		return TupleStructVal(v.data.(*TupleStructValue).Clone())
	case KindTupleValue:
		return TupleVal(v.data.(*TupleValue).Clone())
	case KindList:
		src := v.data.([]Value)
		out := make([]Value, len(src))
		for i := range src {
			out[i] = src[i].Clone()
		}
		return Value{KindList, out}
	case KindMap:
		return MapVal(v.data.(*ValueMap).Clone())
	default:
		return v
	}
}

// Equal reports structural equality under the canonical total order.
func (v Value) Equal(o Value) bool { return v.Compare(o) == 0 }

// ---- Reflect implementation ----

// Shape reports the reflection behavior of the payload.
func (v *Value) Shape() Shape { return v.kind.Shape() }

// ToValue snapshots the value. The snapshot is a deep copy.
func (v *Value) ToValue() Value { return v.Clone() }

// CloneReflect returns an independent dynamic copy.
func (v *Value) CloneReflect() Reflect {
	c := v.Clone()
	return &c
}

// DescribeType registers Value as an opaque leaf: a dynamic value has no
// static shape of its own.
func (v *Value) DescribeType(g *TypeGraph) NodeID {
	return BuildOpaque(g, "kagami.Value", nil)
}

// Patch applies other onto v following the permissive patch policy: kind
// mismatches are ignored, aggregate payloads patch member by member.
func (v *Value) Patch(other Reflect) {
	if other == nil {
		return
	}
	switch v.Shape() {
	case ShapeScalar:
		if s, ok := AsScalar(other); ok {
			nv := s.Scalar()
			if nv.kind == v.kind {
				*v = nv
			}
		}
	case ShapeStruct:
		v.data.(*StructValue).Patch(other)
	case ShapeEnum:
		v.data.(*EnumValue).Patch(other)
	case ShapeTupleStruct:
		v.data.(*TupleStructValue).Patch(other)
	case ShapeTuple:
		v.data.(*TupleValue).Patch(other)
	case ShapeList:
		(&listRef{v}).Patch(other)
	case ShapeMap:
		v.data.(*ValueMap).Patch(other)
	}
}

// Scalar returns the scalar payload as a Value. Meaningful only when the
// shape is ShapeScalar.
func (v *Value) Scalar() Value {
	if !v.kind.IsScalar() {
		return Value{}
	}
	return *v
}

// SetScalar replaces the scalar payload when the kinds match.
func (v *Value) SetScalar(nv Value) bool {
	if !v.kind.IsScalar() || nv.kind != v.kind {
		return false
	}
	*v = nv
	return true
}

// FromReflect snapshots any reflected value. It always succeeds; Value is
// the universal dynamic representation.
func (v *Value) FromReflect(src Reflect) bool {
	if src == nil {
		return false
	}
	*v = src.ToValue()
	return true
}

func (v *Value) String() string {
	var b strings.Builder
	v.render(&b)
	return b.String()
}

func (v *Value) render(b *strings.Builder) {
	switch v.kind {
	case KindInvalid:
		b.WriteString("<invalid>")
	case KindString:
		fmt.Fprintf(b, "%q", v.data.(string))
	case KindChar:
		fmt.Fprintf(b, "%q", v.data.(rune))
	case KindStructValue:
		v.data.(*StructValue).renderInto(b)
	case KindEnumValue:
		v.data.(*EnumValue).renderInto(b)
	case KindTupleStructValue:
		v.data.(*TupleStructValue).renderInto(b)
	case KindTupleValue:
		v.data.(*TupleValue).renderInto(b)
	case KindList:
		elems := v.data.([]Value)
		b.WriteByte('[')
		for i := range elems {
			if i > 0 {
				b.WriteString(", ")
			}
			elems[i].render(b)
		}
		b.WriteByte(']')
	case KindMap:
		v.data.(*ValueMap).renderInto(b)
	default:
		fmt.Fprintf(b, "%v", v.data)
	}
}

// listRef adapts the []Value payload of a list Value to the List interface.
// Element handles point into the backing array, so mutation through them is
// visible in the owning Value.
type listRef struct {
	v *Value
}

func (l *listRef) Shape() Shape { return ShapeList }

func (l *listRef) elems() []Value { return l.v.data.([]Value) }

func (l *listRef) Len() int { return len(l.elems()) }

func (l *listRef) Elem(i int) Reflect {
	s := l.elems()
	if i < 0 || i >= len(s) {
		return nil
	}
	return &s[i]
}

func (l *listRef) Elems() iter.Seq[Reflect] {
	s := l.elems()
	return func(yield func(Reflect) bool) {
		for i := range s {
			if !yield(&s[i]) {
				return
			}
		}
	}
}

func (l *listRef) ToValue() Value { return l.v.Clone() }

func (l *listRef) CloneReflect() Reflect { return l.v.CloneReflect() }

func (l *listRef) DescribeType(g *TypeGraph) NodeID {
	return BuildOpaque(g, "kagami.Value", nil)
}

func (l *listRef) Patch(other Reflect) {
	o, ok := AsList(other)
	if !ok {
		return
	}
	s := l.elems()
	for i := range s {
		if elem := o.Elem(i); elem != nil {
			s[i].Patch(elem)
		}
	}
}

func (l *listRef) String() string { return l.v.String() }

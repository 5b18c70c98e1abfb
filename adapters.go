package kagami

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// ScalarNative is the set of native Go types that map onto scalar Values.
// rune is int32 here; use RefChar when the char kind matters.
type ScalarNative interface {
	uint | uint8 | uint16 | uint32 | uint64 |
		int | int8 | int16 | int32 | int64 |
		bool | float32 | float64 | string
}

// scalarValueOf converts a native scalar into its Value form.
func scalarValueOf(v any) Value {
	switch x := v.(type) {
	case uint:
		return Uint(x)
	case uint8:
		return U8(x)
	case uint16:
		return U16(x)
	case uint32:
		return U32(x)
	case uint64:
		return U64(x)
	case int:
		return Int(x)
	case int8:
		return I8(x)
	case int16:
		return I16(x)
	case int32:
		return I32(x)
	case int64:
		return I64(x)
	case bool:
		return Bool(x)
	case float32:
		return F32(x)
	case float64:
		return F64(x)
	case string:
		return Str(x)
	default:
		return Value{}
	}
}

func scalarTypeOfNative(v any) ScalarType {
	st, _ := ScalarTypeOf(scalarValueOf(v).Kind())
	return st
}

// RefScalar wraps a pointer to a native scalar as a Reflect, so generated
// implementations can hand out live field handles.
func RefScalar[T ScalarNative](p *T) Scalar {
	return &scalarRef[T]{p}
}

type scalarRef[T ScalarNative] struct {
	p *T
}

func (r *scalarRef[T]) Shape() Shape { return ShapeScalar }

func (r *scalarRef[T]) Scalar() Value { return scalarValueOf(*r.p) }

func (r *scalarRef[T]) SetScalar(v Value) bool {
	// Kind must match exactly; rune shares int32's native type but not its
	// scalar kind.
	if v.Kind() != r.Scalar().Kind() {
		return false
	}
	x, ok := As[T](v)
	if !ok {
		return false
	}
	*r.p = x
	return true
}

func (r *scalarRef[T]) ToValue() Value { return r.Scalar() }

func (r *scalarRef[T]) CloneReflect() Reflect {
	c := *r.p
	return &scalarRef[T]{&c}
}

func (r *scalarRef[T]) Patch(other Reflect) {
	if s, ok := AsScalar(other); ok {
		r.SetScalar(s.Scalar())
	}
}

func (r *scalarRef[T]) DescribeType(g *TypeGraph) NodeID {
	return scalarTypeOfNative(*r.p).Build(g)
}

func (r *scalarRef[T]) String() string { return fmt.Sprintf("%v", *r.p) }

// RefChar wraps a pointer to a rune as a char-kinded scalar.
func RefChar(p *rune) Scalar { return &charRef{p} }

type charRef struct {
	p *rune
}

func (r *charRef) Shape() Shape { return ShapeScalar }

func (r *charRef) Scalar() Value { return Char(*r.p) }

func (r *charRef) SetScalar(v Value) bool {
	if v.Kind() != KindChar {
		return false
	}
	*r.p = v.data.(rune)
	return true
}

func (r *charRef) ToValue() Value { return r.Scalar() }

func (r *charRef) CloneReflect() Reflect {
	c := *r.p
	return &charRef{&c}
}

func (r *charRef) Patch(other Reflect) {
	if s, ok := AsScalar(other); ok {
		r.SetScalar(s.Scalar())
	}
}

func (r *charRef) DescribeType(g *TypeGraph) NodeID {
	return ScalarChar.Build(g)
}

func (r *charRef) String() string { return fmt.Sprintf("%q", *r.p) }

// RefScalarSlice wraps a pointer to a slice of native scalars as a List.
func RefScalarSlice[T ScalarNative](p *[]T) List {
	return &scalarSliceRef[T]{p}
}

type scalarSliceRef[T ScalarNative] struct {
	p *[]T
}

func (r *scalarSliceRef[T]) Shape() Shape { return ShapeList }

func (r *scalarSliceRef[T]) Len() int { return len(*r.p) }

func (r *scalarSliceRef[T]) Elem(i int) Reflect {
	s := *r.p
	if i < 0 || i >= len(s) {
		return nil
	}
	return RefScalar(&s[i])
}

func (r *scalarSliceRef[T]) Elems() iter.Seq[Reflect] {
	return func(yield func(Reflect) bool) {
		s := *r.p
		for i := range s {
			if !yield(RefScalar(&s[i])) {
				return
			}
		}
	}
}

func (r *scalarSliceRef[T]) ToValue() Value {
	s := *r.p
	out := make([]Value, len(s))
	for i := range s {
		out[i] = scalarValueOf(s[i])
	}
	return ListVal(out...)
}

func (r *scalarSliceRef[T]) CloneReflect() Reflect {
	c := slices.Clone(*r.p)
	return &scalarSliceRef[T]{&c}
}

func (r *scalarSliceRef[T]) Patch(other Reflect) {
	o, ok := AsList(other)
	if !ok {
		return
	}
	s := *r.p
	for i := range s {
		if elem := o.Elem(i); elem != nil {
			RefScalar(&s[i]).Patch(elem)
		}
	}
}

func (r *scalarSliceRef[T]) DescribeType(g *TypeGraph) NodeID {
	var zero T
	st := scalarTypeOfNative(zero)
	return BuildList(g, "[]"+st.String(), st.Build)
}

func (r *scalarSliceRef[T]) String() string { return fmt.Sprintf("%v", *r.p) }

// RefSlice wraps a pointer to a slice of reflectable elements as a List.
func RefSlice[T any, PT interface {
	*T
	Reflect
}](p *[]T) List {
	return &sliceRef[T, PT]{p}
}

type sliceRef[T any, PT interface {
	*T
	Reflect
}] struct {
	p *[]T
}

func (r *sliceRef[T, PT]) Shape() Shape { return ShapeList }

func (r *sliceRef[T, PT]) Len() int { return len(*r.p) }

func (r *sliceRef[T, PT]) Elem(i int) Reflect {
	s := *r.p
	if i < 0 || i >= len(s) {
		return nil
	}
	return PT(&s[i])
}

func (r *sliceRef[T, PT]) Elems() iter.Seq[Reflect] {
	return func(yield func(Reflect) bool) {
		s := *r.p
		for i := range s {
			if !yield(PT(&s[i])) {
				return
			}
		}
	}
}

func (r *sliceRef[T, PT]) ToValue() Value {
	s := *r.p
	out := make([]Value, len(s))
	for i := range s {
		out[i] = PT(&s[i]).ToValue()
	}
	return ListVal(out...)
}

func (r *sliceRef[T, PT]) CloneReflect() Reflect {
	s := *r.p
	c := make([]T, len(s))
	for i := range s {
		cloned := PT(&s[i]).CloneReflect()
		if elem, ok := cloned.(PT); ok {
			c[i] = *elem
		} else {
			c[i] = s[i]
		}
	}
	return &sliceRef[T, PT]{&c}
}

func (r *sliceRef[T, PT]) Patch(other Reflect) {
	o, ok := AsList(other)
	if !ok {
		return
	}
	s := *r.p
	for i := range s {
		if elem := o.Elem(i); elem != nil {
			PT(&s[i]).Patch(elem)
		}
	}
}

func (r *sliceRef[T, PT]) DescribeType(g *TypeGraph) NodeID {
	// The list name comes from the Go element type. The element id may still
	// be reserved when this runs inside the element's own describe, so the
	// element node cannot be read back here.
	name := "[]" + reflect.TypeFor[T]().String()
	return BuildList(g, name, PT(new(T)).DescribeType)
}

func (r *sliceRef[T, PT]) String() string {
	s := *r.p
	out := "["
	for i := range s {
		if i > 0 {
			out += ", "
		}
		out += PT(&s[i]).String()
	}
	return out + "]"
}

// RefScalarMap wraps a pointer to a native map with scalar keys and values
// as a Map. Go map entries are not addressable, so element handles write
// back through the map on mutation. Maps of aggregate values go through the
// dynamic Value model instead.
func RefScalarMap[K ScalarNative, V ScalarNative](p *map[K]V) Map {
	return &scalarMapRef[K, V]{p}
}

type scalarMapRef[K ScalarNative, V ScalarNative] struct {
	p *map[K]V
}

func (r *scalarMapRef[K, V]) Shape() Shape { return ShapeMap }

func (r *scalarMapRef[K, V]) Len() int { return len(*r.p) }

func (r *scalarMapRef[K, V]) Get(key Value) Reflect {
	k, ok := As[K](key)
	if !ok {
		return nil
	}
	if _, ok := (*r.p)[k]; !ok {
		return nil
	}
	return &mapElemRef[K, V]{m: *r.p, k: k}
}

func (r *scalarMapRef[K, V]) sortedKeys() []K {
	keys := make([]K, 0, len(*r.p))
	for k := range *r.p {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b K) int {
		return scalarValueOf(a).Compare(scalarValueOf(b))
	})
	return keys
}

func (r *scalarMapRef[K, V]) Entries() iter.Seq2[Value, Reflect] {
	return func(yield func(Value, Reflect) bool) {
		for _, k := range r.sortedKeys() {
			if !yield(scalarValueOf(k), &mapElemRef[K, V]{m: *r.p, k: k}) {
				return
			}
		}
	}
}

func (r *scalarMapRef[K, V]) ToValue() Value {
	out := NewValueMap()
	for k, v := range *r.p {
		out.Set(scalarValueOf(k), scalarValueOf(v))
	}
	return MapVal(out)
}

func (r *scalarMapRef[K, V]) CloneReflect() Reflect {
	c := make(map[K]V, len(*r.p))
	for k, v := range *r.p {
		c[k] = v
	}
	return &scalarMapRef[K, V]{&c}
}

func (r *scalarMapRef[K, V]) Patch(other Reflect) {
	o, ok := AsMap(other)
	if !ok {
		return
	}
	for k := range *r.p {
		if elem := o.Get(scalarValueOf(k)); elem != nil {
			(&mapElemRef[K, V]{m: *r.p, k: k}).Patch(elem)
		}
	}
}

func (r *scalarMapRef[K, V]) DescribeType(g *TypeGraph) NodeID {
	var zk K
	var zv V
	kt := scalarTypeOfNative(zk)
	vt := scalarTypeOfNative(zv)
	name := "map[" + kt.String() + "]" + vt.String()
	return BuildMap(g, name, kt.Build, vt.Build)
}

func (r *scalarMapRef[K, V]) String() string { return fmt.Sprintf("%v", *r.p) }

// mapElemRef is a scalar handle that reads and writes one map entry.
type mapElemRef[K ScalarNative, V ScalarNative] struct {
	m map[K]V
	k K
}

func (r *mapElemRef[K, V]) Shape() Shape { return ShapeScalar }

func (r *mapElemRef[K, V]) Scalar() Value { return scalarValueOf(r.m[r.k]) }

func (r *mapElemRef[K, V]) SetScalar(v Value) bool {
	if v.Kind() != r.Scalar().Kind() {
		return false
	}
	x, ok := As[V](v)
	if !ok {
		return false
	}
	r.m[r.k] = x
	return true
}

func (r *mapElemRef[K, V]) ToValue() Value { return r.Scalar() }

func (r *mapElemRef[K, V]) CloneReflect() Reflect {
	c := r.m[r.k]
	return RefScalar(&c)
}

func (r *mapElemRef[K, V]) Patch(other Reflect) {
	if s, ok := AsScalar(other); ok {
		r.SetScalar(s.Scalar())
	}
}

func (r *mapElemRef[K, V]) DescribeType(g *TypeGraph) NodeID {
	var zv V
	return scalarTypeOfNative(zv).Build(g)
}

func (r *mapElemRef[K, V]) String() string { return fmt.Sprintf("%v", r.m[r.k]) }

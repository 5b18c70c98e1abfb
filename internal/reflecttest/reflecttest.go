// Package reflecttest provides hand-maintained reflection implementations
// for the test suites. In a real project these would come from a generator;
// keeping them by hand here keeps the tests honest about what generated code
// has to look like.
package reflecttest

import (
	"iter"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/describe"
)

// scalarField reads one named scalar field from a struct-shaped source.
func scalarField[T kagami.ScalarNative](o kagami.Struct, name string) (T, bool) {
	var zero T
	f := o.Field(name)
	if f == nil {
		return zero, false
	}
	s, ok := kagami.AsScalar(f)
	if !ok {
		return zero, false
	}
	return kagami.As[T](s.Scalar())
}

// Inner is the nested half of the Sample fixture.
type Inner struct {
	C bool
}

func (b *Inner) Shape() kagami.Shape { return kagami.ShapeStruct }

func (b *Inner) NumFields() int { return 1 }

func (b *Inner) Field(name string) kagami.Reflect {
	if name == "c" {
		return kagami.RefScalar(&b.C)
	}
	return nil
}

func (b *Inner) FieldAt(index int) kagami.Reflect {
	if index == 0 {
		return kagami.RefScalar(&b.C)
	}
	return nil
}

func (b *Inner) FieldName(index int) string {
	if index == 0 {
		return "c"
	}
	return ""
}

func (b *Inner) Fields() iter.Seq2[string, kagami.Reflect] {
	return func(yield func(string, kagami.Reflect) bool) {
		yield("c", kagami.RefScalar(&b.C))
	}
}

func (b *Inner) ToValue() kagami.Value {
	return kagami.StructVal(kagami.NewStructValue().WithField("c", kagami.Bool(b.C)))
}

func (b *Inner) CloneReflect() kagami.Reflect {
	c := *b
	return &c
}

func (b *Inner) Patch(other kagami.Reflect) {
	o, ok := kagami.AsStruct(other)
	if !ok {
		return
	}
	if f := o.Field("c"); f != nil {
		kagami.RefScalar(&b.C).Patch(f)
	}
}

func (b *Inner) FromReflect(src kagami.Reflect) bool {
	o, ok := kagami.AsStruct(src)
	if !ok {
		return false
	}
	c, ok := scalarField[bool](o, "c")
	if !ok {
		return false
	}
	b.C = c
	return true
}

func (b *Inner) DescribeType(g *kagami.TypeGraph) kagami.NodeID {
	return describe.Struct("reflecttest.Inner").
		Field("c", kagami.ScalarBool.Build).
		Register(g)
}

func (b *Inner) String() string {
	v := b.ToValue()
	return v.String()
}

// Sample covers one field of each container family.
type Sample struct {
	A int32
	B Inner
	D map[string]uint32
	E []float32
}

func (s *Sample) Shape() kagami.Shape { return kagami.ShapeStruct }

func (s *Sample) NumFields() int { return 4 }

func (s *Sample) Field(name string) kagami.Reflect {
	switch name {
	case "a":
		return kagami.RefScalar(&s.A)
	case "b":
		return &s.B
	case "d":
		return kagami.RefScalarMap(&s.D)
	case "e":
		return kagami.RefScalarSlice(&s.E)
	}
	return nil
}

var sampleFieldNames = []string{"a", "b", "d", "e"}

func (s *Sample) FieldAt(index int) kagami.Reflect {
	if index < 0 || index >= len(sampleFieldNames) {
		return nil
	}
	return s.Field(sampleFieldNames[index])
}

func (s *Sample) FieldName(index int) string {
	if index < 0 || index >= len(sampleFieldNames) {
		return ""
	}
	return sampleFieldNames[index]
}

func (s *Sample) Fields() iter.Seq2[string, kagami.Reflect] {
	return func(yield func(string, kagami.Reflect) bool) {
		for _, name := range sampleFieldNames {
			if !yield(name, s.Field(name)) {
				return
			}
		}
	}
}

func (s *Sample) ToValue() kagami.Value {
	out := kagami.NewStructValue()
	for name, f := range s.Fields() {
		out.SetField(name, f.ToValue())
	}
	return kagami.StructVal(out)
}

func (s *Sample) CloneReflect() kagami.Reflect {
	c := Sample{A: s.A, B: s.B}
	if s.D != nil {
		c.D = make(map[string]uint32, len(s.D))
		for k, v := range s.D {
			c.D[k] = v
		}
	}
	if s.E != nil {
		c.E = append([]float32(nil), s.E...)
	}
	return &c
}

func (s *Sample) Patch(other kagami.Reflect) {
	o, ok := kagami.AsStruct(other)
	if !ok {
		return
	}
	for name, h := range s.Fields() {
		if f := o.Field(name); f != nil {
			h.Patch(f)
		}
	}
}

func (s *Sample) FromReflect(src kagami.Reflect) bool {
	o, ok := kagami.AsStruct(src)
	if !ok {
		return false
	}
	a, ok := scalarField[int32](o, "a")
	if !ok {
		return false
	}
	var b Inner
	fb := o.Field("b")
	if fb == nil || !b.FromReflect(fb) {
		return false
	}
	fd := o.Field("d")
	if fd == nil {
		return false
	}
	dm, ok := kagami.AsMap(fd)
	if !ok {
		return false
	}
	d := make(map[string]uint32, dm.Len())
	for k, ev := range dm.Entries() {
		ks, ok := kagami.As[string](k)
		if !ok {
			return false
		}
		es, ok := kagami.AsScalar(ev)
		if !ok {
			return false
		}
		n, ok := kagami.As[uint32](es.Scalar())
		if !ok {
			return false
		}
		d[ks] = n
	}
	fe := o.Field("e")
	if fe == nil {
		return false
	}
	el, ok := kagami.AsList(fe)
	if !ok {
		return false
	}
	e := make([]float32, 0, el.Len())
	for ev := range el.Elems() {
		es, ok := kagami.AsScalar(ev)
		if !ok {
			return false
		}
		f, ok := kagami.As[float32](es.Scalar())
		if !ok {
			return false
		}
		e = append(e, f)
	}

	s.A, s.B, s.D, s.E = a, b, d, e
	return true
}

func (s *Sample) DescribeType(g *kagami.TypeGraph) kagami.NodeID {
	return describe.Struct("reflecttest.Sample").
		Field("a", kagami.ScalarI32.Build).
		Field("b", (&Inner{}).DescribeType).
		Field("d", func(g *kagami.TypeGraph) kagami.NodeID {
			return kagami.BuildMap(g, "map[string]uint32", kagami.ScalarString.Build, kagami.ScalarU32.Build)
		}).
		Field("e", func(g *kagami.TypeGraph) kagami.NodeID {
			return kagami.BuildList(g, "[]float32", kagami.ScalarF32.Build)
		}).
		Register(g)
}

func (s *Sample) String() string {
	v := s.ToValue()
	return v.String()
}

// Point is a positional fixture.
type Point struct {
	X int32
	Y int32
}

func (p *Point) Shape() kagami.Shape { return kagami.ShapeTupleStruct }

func (p *Point) NumFields() int { return 2 }

func (p *Point) Field(index int) kagami.Reflect {
	switch index {
	case 0:
		return kagami.RefScalar(&p.X)
	case 1:
		return kagami.RefScalar(&p.Y)
	}
	return nil
}

func (p *Point) Fields() iter.Seq[kagami.Reflect] {
	return func(yield func(kagami.Reflect) bool) {
		if !yield(kagami.RefScalar(&p.X)) {
			return
		}
		yield(kagami.RefScalar(&p.Y))
	}
}

func (p *Point) ToValue() kagami.Value {
	return kagami.TupleStructVal(kagami.NewTupleStructValue().
		WithElem(kagami.I32(p.X)).
		WithElem(kagami.I32(p.Y)))
}

func (p *Point) CloneReflect() kagami.Reflect {
	c := *p
	return &c
}

func (p *Point) Patch(other kagami.Reflect) {
	o, ok := kagami.AsTupleStruct(other)
	if !ok {
		return
	}
	if f := o.Field(0); f != nil {
		kagami.RefScalar(&p.X).Patch(f)
	}
	if f := o.Field(1); f != nil {
		kagami.RefScalar(&p.Y).Patch(f)
	}
}

func (p *Point) FromReflect(src kagami.Reflect) bool {
	o, ok := kagami.AsTupleStruct(src)
	if !ok {
		return false
	}
	for i, dst := range []*int32{&p.X, &p.Y} {
		f := o.Field(i)
		if f == nil {
			return false
		}
		s, ok := kagami.AsScalar(f)
		if !ok {
			return false
		}
		n, ok := kagami.As[int32](s.Scalar())
		if !ok {
			return false
		}
		*dst = n
	}
	return true
}

func (p *Point) DescribeType(g *kagami.TypeGraph) kagami.NodeID {
	return describe.TupleStruct("reflecttest.Point").
		Field(kagami.ScalarI32.Build).
		Field(kagami.ScalarI32.Build).
		Register(g)
}

func (p *Point) String() string {
	v := p.ToValue()
	return v.String()
}

// Tree is directly recursive; it exists to exercise graph cycle handling.
type Tree struct {
	Value    int64
	Children []Tree
}

var treeFieldNames = []string{"value", "children"}

func (t *Tree) Shape() kagami.Shape { return kagami.ShapeStruct }

func (t *Tree) NumFields() int { return 2 }

func (t *Tree) Field(name string) kagami.Reflect {
	switch name {
	case "value":
		return kagami.RefScalar(&t.Value)
	case "children":
		return kagami.RefSlice[Tree, *Tree](&t.Children)
	}
	return nil
}

func (t *Tree) FieldAt(index int) kagami.Reflect {
	if index < 0 || index >= len(treeFieldNames) {
		return nil
	}
	return t.Field(treeFieldNames[index])
}

func (t *Tree) FieldName(index int) string {
	if index < 0 || index >= len(treeFieldNames) {
		return ""
	}
	return treeFieldNames[index]
}

func (t *Tree) Fields() iter.Seq2[string, kagami.Reflect] {
	return func(yield func(string, kagami.Reflect) bool) {
		for _, name := range treeFieldNames {
			if !yield(name, t.Field(name)) {
				return
			}
		}
	}
}

func (t *Tree) ToValue() kagami.Value {
	out := kagami.NewStructValue()
	for name, f := range t.Fields() {
		out.SetField(name, f.ToValue())
	}
	return kagami.StructVal(out)
}

func (t *Tree) CloneReflect() kagami.Reflect {
	c := Tree{Value: t.Value}
	for _, child := range t.Children {
		cc := child
		cloned := cc.CloneReflect().(*Tree)
		c.Children = append(c.Children, *cloned)
	}
	return &c
}

func (t *Tree) Patch(other kagami.Reflect) {
	o, ok := kagami.AsStruct(other)
	if !ok {
		return
	}
	for name, h := range t.Fields() {
		if f := o.Field(name); f != nil {
			h.Patch(f)
		}
	}
}

func (t *Tree) FromReflect(src kagami.Reflect) bool {
	o, ok := kagami.AsStruct(src)
	if !ok {
		return false
	}
	value, ok := scalarField[int64](o, "value")
	if !ok {
		return false
	}
	fc := o.Field("children")
	if fc == nil {
		return false
	}
	cl, ok := kagami.AsList(fc)
	if !ok {
		return false
	}
	children := make([]Tree, 0, cl.Len())
	for cv := range cl.Elems() {
		var child Tree
		if !child.FromReflect(cv) {
			return false
		}
		children = append(children, child)
	}
	t.Value, t.Children = value, children
	return true
}

func (t *Tree) DescribeType(g *kagami.TypeGraph) kagami.NodeID {
	return describe.Struct("reflecttest.Tree").
		Field("value", kagami.ScalarI64.Build).
		Field("children", kagami.RefSlice[Tree, *Tree](&t.Children).DescribeType).
		Register(g)
}

func (t *Tree) String() string {
	v := t.ToValue()
	return v.String()
}

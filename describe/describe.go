package describe

import (
	kagami "github.com/reoring/kagami"
)

type namedFieldSpec struct {
	name string
	typ  kagami.BuildFunc
	meta kagami.Metadata
	docs []string
}

type unnamedFieldSpec struct {
	typ  kagami.BuildFunc
	meta kagami.Metadata
	docs []string
}

func (f namedFieldSpec) resolve(g *kagami.TypeGraph) kagami.NamedField {
	return kagami.NamedField{Name: f.name, Type: f.typ(g), Meta: f.meta, Docs: f.docs}
}

func (f unnamedFieldSpec) resolve(g *kagami.TypeGraph) kagami.UnnamedField {
	return kagami.UnnamedField{Type: f.typ(g), Meta: f.meta, Docs: f.docs}
}

func resolveNamed(g *kagami.TypeGraph, specs []namedFieldSpec) []kagami.NamedField {
	out := make([]kagami.NamedField, len(specs))
	for i, f := range specs {
		out[i] = f.resolve(g)
	}
	return out
}

func resolveUnnamed(g *kagami.TypeGraph, specs []unnamedFieldSpec) []kagami.UnnamedField {
	out := make([]kagami.UnnamedField, len(specs))
	for i, f := range specs {
		out[i] = f.resolve(g)
	}
	return out
}

type structBuilder struct {
	name   string
	fields []namedFieldSpec
	meta   kagami.Metadata
	docs   []string
}

// Struct creates a builder for a named-field type description.
func Struct(name string) *structBuilder {
	return &structBuilder{name: name}
}

// Field registers a field with the function describing its type.
func (b *structBuilder) Field(name string, typ kagami.BuildFunc) *fieldStep {
	b.fields = append(b.fields, namedFieldSpec{name: name, typ: typ})
	return &fieldStep{b: b}
}

// Meta annotates the type itself.
func (b *structBuilder) Meta(key string, v kagami.Value) *structBuilder {
	if b.meta == nil {
		b.meta = kagami.Metadata{}
	}
	b.meta[key] = v
	return b
}

// Docs attaches documentation lines to the type itself.
func (b *structBuilder) Docs(lines ...string) *structBuilder {
	b.docs = append(b.docs, lines...)
	return b
}

// Register resolves the field types and registers the node. The id is
// reserved before the fields resolve, so self-referential fields see it.
func (b *structBuilder) Register(g *kagami.TypeGraph) kagami.NodeID {
	return g.GetOrBuild(b.name, func(g *kagami.TypeGraph) kagami.TypeNode {
		return &kagami.StructNode{
			Name:   b.name,
			Fields: resolveNamed(g, b.fields),
			Meta:   b.meta,
			Docs:   b.docs,
		}
	})
}

// fieldStep scopes Meta and Docs to the field just added.
type fieldStep struct {
	b *structBuilder
}

// Meta annotates the current field.
func (f *fieldStep) Meta(key string, v kagami.Value) *fieldStep {
	fs := &f.b.fields[len(f.b.fields)-1]
	if fs.meta == nil {
		fs.meta = kagami.Metadata{}
	}
	fs.meta[key] = v
	return f
}

// Docs attaches documentation lines to the current field.
func (f *fieldStep) Docs(lines ...string) *fieldStep {
	fs := &f.b.fields[len(f.b.fields)-1]
	fs.docs = append(fs.docs, lines...)
	return f
}

func (f *fieldStep) Field(name string, typ kagami.BuildFunc) *fieldStep {
	return f.b.Field(name, typ)
}
func (f *fieldStep) Register(g *kagami.TypeGraph) kagami.NodeID { return f.b.Register(g) }

type tupleStructBuilder struct {
	name   string
	fields []unnamedFieldSpec
	meta   kagami.Metadata
	docs   []string
}

// TupleStruct creates a builder for a named positional type description.
func TupleStruct(name string) *tupleStructBuilder {
	return &tupleStructBuilder{name: name}
}

// Field appends a positional field.
func (b *tupleStructBuilder) Field(typ kagami.BuildFunc) *tupleStructBuilder {
	b.fields = append(b.fields, unnamedFieldSpec{typ: typ})
	return b
}

// FieldDocs attaches documentation lines to the field just added.
func (b *tupleStructBuilder) FieldDocs(lines ...string) *tupleStructBuilder {
	f := &b.fields[len(b.fields)-1]
	f.docs = append(f.docs, lines...)
	return b
}

// Docs attaches documentation lines to the type itself.
func (b *tupleStructBuilder) Docs(lines ...string) *tupleStructBuilder {
	b.docs = append(b.docs, lines...)
	return b
}

func (b *tupleStructBuilder) Register(g *kagami.TypeGraph) kagami.NodeID {
	return g.GetOrBuild(b.name, func(g *kagami.TypeGraph) kagami.TypeNode {
		return &kagami.TupleStructNode{
			Name:   b.name,
			Fields: resolveUnnamed(g, b.fields),
			Meta:   b.meta,
			Docs:   b.docs,
		}
	})
}

type tupleBuilder struct {
	name   string
	fields []unnamedFieldSpec
}

// Tuple creates a builder for an anonymous positional type description.
// Tuples still need a canonical name to live in the graph; the convention is
// the parenthesized element list, for example "(int32, bool)".
func Tuple(name string) *tupleBuilder {
	return &tupleBuilder{name: name}
}

// Field appends a positional field.
func (b *tupleBuilder) Field(typ kagami.BuildFunc) *tupleBuilder {
	b.fields = append(b.fields, unnamedFieldSpec{typ: typ})
	return b
}

func (b *tupleBuilder) Register(g *kagami.TypeGraph) kagami.NodeID {
	return g.GetOrBuild(b.name, func(g *kagami.TypeGraph) kagami.TypeNode {
		return &kagami.TupleNode{Name: b.name, Fields: resolveUnnamed(g, b.fields)}
	})
}

// VariantSpec is one variant description inside an Enum builder.
type VariantSpec interface {
	resolve(g *kagami.TypeGraph) kagami.VariantNode
}

type enumBuilder struct {
	name     string
	variants []VariantSpec
	meta     kagami.Metadata
	docs     []string
}

// Enum creates a builder for a variant type description.
func Enum(name string) *enumBuilder {
	return &enumBuilder{name: name}
}

// Variant appends a variant description.
func (b *enumBuilder) Variant(v VariantSpec) *enumBuilder {
	b.variants = append(b.variants, v)
	return b
}

// Variants appends several variant descriptions at once.
func (b *enumBuilder) Variants(vs ...VariantSpec) *enumBuilder {
	b.variants = append(b.variants, vs...)
	return b
}

// Docs attaches documentation lines to the type itself.
func (b *enumBuilder) Docs(lines ...string) *enumBuilder {
	b.docs = append(b.docs, lines...)
	return b
}

func (b *enumBuilder) Register(g *kagami.TypeGraph) kagami.NodeID {
	return g.GetOrBuild(b.name, func(g *kagami.TypeGraph) kagami.TypeNode {
		variants := make([]kagami.VariantNode, len(b.variants))
		for i, v := range b.variants {
			variants[i] = v.resolve(g)
		}
		return &kagami.EnumNode{Name: b.name, Variants: variants, Meta: b.meta, Docs: b.docs}
	})
}

type structVariantSpec struct {
	name   string
	fields []namedFieldSpec
	docs   []string
}

// StructVariant describes a variant with named fields.
func StructVariant(name string) *structVariantSpec {
	return &structVariantSpec{name: name}
}

// Field registers a named variant field.
func (s *structVariantSpec) Field(name string, typ kagami.BuildFunc) *structVariantSpec {
	s.fields = append(s.fields, namedFieldSpec{name: name, typ: typ})
	return s
}

// Docs attaches documentation lines to the variant.
func (s *structVariantSpec) Docs(lines ...string) *structVariantSpec {
	s.docs = append(s.docs, lines...)
	return s
}

func (s *structVariantSpec) resolve(g *kagami.TypeGraph) kagami.VariantNode {
	return &kagami.StructVariantNode{Name: s.name, Fields: resolveNamed(g, s.fields), Docs: s.docs}
}

type tupleVariantSpec struct {
	name   string
	fields []unnamedFieldSpec
	docs   []string
}

// TupleVariant describes a variant with positional fields.
func TupleVariant(name string) *tupleVariantSpec {
	return &tupleVariantSpec{name: name}
}

// Field appends a positional variant field.
func (s *tupleVariantSpec) Field(typ kagami.BuildFunc) *tupleVariantSpec {
	s.fields = append(s.fields, unnamedFieldSpec{typ: typ})
	return s
}

// Docs attaches documentation lines to the variant.
func (s *tupleVariantSpec) Docs(lines ...string) *tupleVariantSpec {
	s.docs = append(s.docs, lines...)
	return s
}

func (s *tupleVariantSpec) resolve(g *kagami.TypeGraph) kagami.VariantNode {
	return &kagami.TupleVariantNode{Name: s.name, Fields: resolveUnnamed(g, s.fields), Docs: s.docs}
}

type unitVariantSpec struct {
	name string
	docs []string
}

// UnitVariant describes a variant with no fields.
func UnitVariant(name string) *unitVariantSpec {
	return &unitVariantSpec{name: name}
}

// Docs attaches documentation lines to the variant.
func (s *unitVariantSpec) Docs(lines ...string) *unitVariantSpec {
	s.docs = append(s.docs, lines...)
	return s
}

func (s *unitVariantSpec) resolve(g *kagami.TypeGraph) kagami.VariantNode {
	return &kagami.UnitVariantNode{Name: s.name, Docs: s.docs}
}

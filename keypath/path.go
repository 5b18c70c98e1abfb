package keypath

import (
	"math"
	"slices"
	"strconv"
	"strings"

	kagami "github.com/reoring/kagami"
)

type segmentKind int

const (
	segField segmentKind = iota
	segIndex
	segKey
	segVariant
)

// Segment is one step of a Path.
type Segment struct {
	kind  segmentKind
	name  string
	index int
	key   kagami.Value
}

// FieldSeg addresses a named field.
func FieldSeg(name string) Segment { return Segment{kind: segField, name: name} }

// IndexSeg addresses a positional field.
func IndexSeg(i int) Segment { return Segment{kind: segIndex, index: i} }

// KeySeg addresses a list element or map entry. Integer keys canonicalize to
// int64 so that displayed paths re-parse to themselves; unsigned keys above
// the int64 range keep the uint64 kind.
func KeySeg(key kagami.Value) Segment {
	if n, ok := key.AsInt64(); ok && key.Kind() != kagami.KindChar {
		key = kagami.I64(n)
	} else if n, ok := key.AsUint64(); ok {
		if n > math.MaxInt64 {
			key = kagami.U64(n)
		} else {
			key = kagami.I64(int64(n))
		}
	}
	return Segment{kind: segKey, key: key}
}

// VariantSeg narrows to an enum variant.
func VariantSeg(name string) Segment { return Segment{kind: segVariant, name: name} }

func (s Segment) String() string {
	var b strings.Builder
	s.render(&b)
	return b.String()
}

func (s Segment) render(b *strings.Builder) {
	switch s.kind {
	case segField:
		b.WriteByte('.')
		b.WriteString(s.name)
	case segIndex:
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(s.index))
	case segKey:
		b.WriteByte('[')
		renderKey(b, s.key)
		b.WriteByte(']')
	case segVariant:
		b.WriteString("::")
		b.WriteString(s.name)
	}
}

func renderKey(b *strings.Builder, key kagami.Value) {
	switch key.Kind() {
	case kagami.KindString:
		s, _ := kagami.As[string](key)
		b.WriteString(strconv.Quote(s))
	case kagami.KindChar:
		c, _ := kagami.As[rune](key)
		b.WriteString(strconv.QuoteRune(c))
	case kagami.KindBool:
		v, _ := kagami.As[bool](key)
		b.WriteString(strconv.FormatBool(v))
	case kagami.KindF32:
		f, _ := kagami.As[float32](key)
		writeFloat(b, float64(f))
	case kagami.KindF64:
		f, _ := kagami.As[float64](key)
		writeFloat(b, f)
	default:
		if n, ok := key.AsInt64(); ok {
			b.WriteString(strconv.FormatInt(n, 10))
		} else if n, ok := key.AsUint64(); ok {
			b.WriteString(strconv.FormatUint(n, 10))
		} else {
			b.WriteString(key.String())
		}
	}
}

func writeFloat(b *strings.Builder, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	b.WriteString(s)
}

// Path addresses a nested location. The zero Path addresses the value
// itself. Paths are immutable; the builder methods return extended copies.
type Path struct {
	segs []Segment
}

// New returns the empty path.
func New() Path { return Path{} }

// Of builds a path from segments.
func Of(segs ...Segment) Path { return Path{segs: slices.Clone(segs)} }

func (p Path) with(s Segment) Path {
	segs := make([]Segment, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(p.segs)] = s
	return Path{segs: segs}
}

// Field appends a named field segment.
func (p Path) Field(name string) Path { return p.with(FieldSeg(name)) }

// Index appends a positional field segment.
func (p Path) Index(i int) Path { return p.with(IndexSeg(i)) }

// Key appends an indexed-access segment.
func (p Path) Key(key kagami.Value) Path { return p.with(KeySeg(key)) }

// Variant appends a variant selector segment.
func (p Path) Variant(name string) Path { return p.with(VariantSeg(name)) }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// Segments returns a copy of the segment sequence.
func (p Path) Segments() []Segment { return slices.Clone(p.segs) }

// Equal reports whether two paths have identical segments.
func (p Path) Equal(o Path) bool {
	if len(p.segs) != len(o.segs) {
		return false
	}
	for i := range p.segs {
		a, b := p.segs[i], o.segs[i]
		if a.kind != b.kind || a.name != b.name || a.index != b.index || !a.key.Equal(b.key) {
			return false
		}
	}
	return true
}

// String renders the canonical textual form, e.g.
// .a.0.b.c[1]["foo"]::D.e[3]
func (p Path) String() string {
	var b strings.Builder
	for _, s := range p.segs {
		s.render(&b)
	}
	return b.String()
}

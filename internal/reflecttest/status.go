package reflecttest

import (
	"iter"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/describe"
)

// Status is a hand-written variant fixture:
// Active{since uint64} | Renamed(string) | Deleted.
type Status struct {
	tag     string
	since   uint64
	renamed string
}

func Active(since uint64) Status { return Status{tag: "Active", since: since} }
func Renamed(name string) Status { return Status{tag: "Renamed", renamed: name} }
func Deleted() Status            { return Status{tag: "Deleted"} }

func (s *Status) Shape() kagami.Shape { return kagami.ShapeEnum }

func (s *Status) VariantName() string { return s.tag }

func (s *Status) VariantShape() kagami.VariantShape {
	switch s.tag {
	case "Active":
		return kagami.VariantStruct
	case "Renamed":
		return kagami.VariantTuple
	default:
		return kagami.VariantUnit
	}
}

func (s *Status) NumFields() int {
	if s.tag == "Deleted" {
		return 0
	}
	return 1
}

func (s *Status) Field(name string) kagami.Reflect {
	if s.tag == "Active" && name == "since" {
		return kagami.RefScalar(&s.since)
	}
	return nil
}

func (s *Status) FieldAt(index int) kagami.Reflect {
	if index != 0 {
		return nil
	}
	switch s.tag {
	case "Active":
		return kagami.RefScalar(&s.since)
	case "Renamed":
		return kagami.RefScalar(&s.renamed)
	}
	return nil
}

func (s *Status) Fields() iter.Seq2[string, kagami.Reflect] {
	return func(yield func(string, kagami.Reflect) bool) {
		switch s.tag {
		case "Active":
			yield("since", kagami.RefScalar(&s.since))
		case "Renamed":
			yield("", kagami.RefScalar(&s.renamed))
		}
	}
}

func (s *Status) ToValue() kagami.Value {
	switch s.tag {
	case "Active":
		return kagami.EnumVal(kagami.NewStructVariant("Active").
			WithField("since", kagami.U64(s.since)))
	case "Renamed":
		return kagami.EnumVal(kagami.NewTupleVariant("Renamed").
			WithElem(kagami.Str(s.renamed)))
	default:
		return kagami.EnumVal(kagami.NewUnitVariant("Deleted"))
	}
}

func (s *Status) CloneReflect() kagami.Reflect {
	c := *s
	return &c
}

// Patch follows the variant-aware policy: matching variants patch their
// fields, a different incoming variant replaces the receiver.
func (s *Status) Patch(other kagami.Reflect) {
	o, ok := kagami.AsEnum(other)
	if !ok {
		return
	}
	if o.VariantName() != s.tag {
		var next Status
		if next.FromReflect(o) {
			*s = next
		}
		return
	}
	switch s.tag {
	case "Active":
		if f := o.Field("since"); f != nil {
			kagami.RefScalar(&s.since).Patch(f)
		}
	case "Renamed":
		if f := o.FieldAt(0); f != nil {
			kagami.RefScalar(&s.renamed).Patch(f)
		}
	}
}

func (s *Status) FromReflect(src kagami.Reflect) bool {
	o, ok := kagami.AsEnum(src)
	if !ok {
		return false
	}
	switch o.VariantName() {
	case "Active":
		f := o.Field("since")
		if f == nil {
			return false
		}
		sc, ok := kagami.AsScalar(f)
		if !ok {
			return false
		}
		n, ok := kagami.As[uint64](sc.Scalar())
		if !ok {
			return false
		}
		*s = Active(n)
		return true
	case "Renamed":
		f := o.FieldAt(0)
		if f == nil {
			return false
		}
		sc, ok := kagami.AsScalar(f)
		if !ok {
			return false
		}
		name, ok := kagami.As[string](sc.Scalar())
		if !ok {
			return false
		}
		*s = Renamed(name)
		return true
	case "Deleted":
		*s = Deleted()
		return true
	}
	return false
}

func (s *Status) DescribeType(g *kagami.TypeGraph) kagami.NodeID {
	return describe.Enum("reflecttest.Status").
		Variants(
			describe.StructVariant("Active").Field("since", kagami.ScalarU64.Build),
			describe.TupleVariant("Renamed").Field(kagami.ScalarString.Build),
			describe.UnitVariant("Deleted"),
		).
		Register(g)
}

func (s *Status) String() string {
	v := s.ToValue()
	return v.String()
}

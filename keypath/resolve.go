package keypath

import (
	kagami "github.com/reoring/kagami"
)

// Resolve walks a path against a live value and returns the handle at its
// end. Handles stay live: mutating the result mutates the root. The second
// return is false when any segment fails to apply.
func Resolve(r kagami.Reflect, p Path) (kagami.Reflect, bool) {
	cur := r
	for _, seg := range p.segs {
		if cur == nil {
			return nil, false
		}
		var next kagami.Reflect
		switch seg.kind {
		case segField:
			switch cur.Shape() {
			case kagami.ShapeStruct:
				s, ok := kagami.AsStruct(cur)
				if !ok {
					return nil, false
				}
				next = s.Field(seg.name)
			case kagami.ShapeEnum:
				e, ok := kagami.AsEnum(cur)
				if !ok {
					return nil, false
				}
				next = e.Field(seg.name)
			default:
				return nil, false
			}
		case segIndex:
			switch cur.Shape() {
			case kagami.ShapeTuple:
				t, ok := kagami.AsTuple(cur)
				if !ok {
					return nil, false
				}
				next = t.Field(seg.index)
			case kagami.ShapeTupleStruct:
				t, ok := kagami.AsTupleStruct(cur)
				if !ok {
					return nil, false
				}
				next = t.Field(seg.index)
			case kagami.ShapeEnum:
				e, ok := kagami.AsEnum(cur)
				if !ok || e.VariantShape() != kagami.VariantTuple {
					return nil, false
				}
				next = e.FieldAt(seg.index)
			default:
				return nil, false
			}
		case segKey:
			switch cur.Shape() {
			case kagami.ShapeList:
				l, ok := kagami.AsList(cur)
				if !ok {
					return nil, false
				}
				i, ok := intKey(seg.key)
				if !ok || i < 0 || i >= l.Len() {
					return nil, false
				}
				next = l.Elem(i)
			case kagami.ShapeMap:
				m, ok := kagami.AsMap(cur)
				if !ok {
					return nil, false
				}
				next = lookupMap(m, seg.key)
			default:
				return nil, false
			}
		case segVariant:
			e, ok := kagami.AsEnum(cur)
			if !ok || e.VariantName() != seg.name {
				return nil, false
			}
			next = cur
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// ResolveValue resolves and snapshots the value at the path.
func ResolveValue(r kagami.Reflect, p Path) (kagami.Value, bool) {
	at, ok := Resolve(r, p)
	if !ok {
		return kagami.Value{}, false
	}
	return at.ToValue(), true
}

// Get resolves and reads a typed native value at the path.
func Get[T any](r kagami.Reflect, p Path) (T, bool) {
	var zero T
	at, ok := Resolve(r, p)
	if !ok {
		return zero, false
	}
	if s, ok := kagami.AsScalar(at); ok {
		return kagami.As[T](s.Scalar())
	}
	if pt, ok := any(at).(*T); ok {
		return *pt, true
	}
	return zero, false
}

// Set writes a scalar value at the path. For non-scalar targets the write
// succeeds only when the target is a dynamic value of the same kind.
func Set(r kagami.Reflect, p Path, v kagami.Value) bool {
	at, ok := Resolve(r, p)
	if !ok {
		return false
	}
	if s, ok := kagami.AsScalar(at); ok {
		return s.SetScalar(v)
	}
	if dv, ok := at.(*kagami.Value); ok && dv.Kind() == v.Kind() {
		*dv = v
		return true
	}
	return false
}

// intKey extracts an int index from a canonical key literal.
func intKey(key kagami.Value) (int, bool) {
	if !key.Kind().IsInteger() {
		return 0, false
	}
	if n, ok := key.AsInt64(); ok {
		return int(n), true
	}
	if n, ok := key.AsUint64(); ok {
		return int(n), true
	}
	return 0, false
}

// lookupMap finds an entry by key, falling back to numeric comparison so
// that a canonical int64 literal finds entries keyed by any integer kind.
func lookupMap(m kagami.Map, key kagami.Value) kagami.Reflect {
	if r := m.Get(key); r != nil {
		return r
	}
	if !key.Kind().IsInteger() {
		return nil
	}
	for k, v := range m.Entries() {
		if k.Kind().IsInteger() && intEqual(k, key) {
			return v
		}
	}
	return nil
}

func intEqual(a, b kagami.Value) bool {
	ai, aSigned := a.AsInt64()
	bi, bSigned := b.AsInt64()
	if aSigned && bSigned {
		return ai == bi
	}
	au, aOk := a.AsUint64()
	bu, bOk := b.AsUint64()
	if aOk && bOk {
		return au == bu
	}
	// Mixed signedness: equal only when both fit the signed range.
	if aSigned && bOk {
		return ai >= 0 && uint64(ai) == bu
	}
	if aOk && bSigned {
		return bi >= 0 && uint64(bi) == au
	}
	return false
}

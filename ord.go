package kagami

import (
	"cmp"
	"math"
	"slices"
)

// Compare imposes a strict total order over Values: the kind discriminant
// orders first (declaration order of ValueKind), then the payload. Floats use
// the IEEE-754 totalOrder relation, so NaN payloads order deterministically
// and Values can key a ValueMap.
func (v Value) Compare(o Value) int {
	if c := cmp.Compare(v.kind, o.kind); c != 0 {
		return c
	}
	switch v.kind {
	case KindInvalid:
		return 0
	case KindUint:
		return cmp.Compare(v.data.(uint), o.data.(uint))
	case KindU8:
		return cmp.Compare(v.data.(uint8), o.data.(uint8))
	case KindU16:
		return cmp.Compare(v.data.(uint16), o.data.(uint16))
	case KindU32:
		return cmp.Compare(v.data.(uint32), o.data.(uint32))
	case KindU64:
		return cmp.Compare(v.data.(uint64), o.data.(uint64))
	case KindInt:
		return cmp.Compare(v.data.(int), o.data.(int))
	case KindI8:
		return cmp.Compare(v.data.(int8), o.data.(int8))
	case KindI16:
		return cmp.Compare(v.data.(int16), o.data.(int16))
	case KindI32:
		return cmp.Compare(v.data.(int32), o.data.(int32))
	case KindI64:
		return cmp.Compare(v.data.(int64), o.data.(int64))
	case KindBool:
		return compareBool(v.data.(bool), o.data.(bool))
	case KindChar:
		return cmp.Compare(v.data.(rune), o.data.(rune))
	case KindF32:
		return compareF32Total(v.data.(float32), o.data.(float32))
	case KindF64:
		return compareF64Total(v.data.(float64), o.data.(float64))
	case KindString:
		return cmp.Compare(v.data.(string), o.data.(string))
	case KindStructValue:
		return v.data.(*StructValue).compare(o.data.(*StructValue))
	case KindEnumValue:
		return v.data.(*EnumValue).compare(o.data.(*EnumValue))
	case KindTupleStructValue:
		return v.data.(*TupleStructValue).compare(o.data.(*TupleStructValue))
	case KindTupleValue:
		return v.data.(*TupleValue).compare(o.data.(*TupleValue))
	case KindList:
		return compareValues(v.data.([]Value), o.data.([]Value))
	case KindMap:
		return v.data.(*ValueMap).compare(o.data.(*ValueMap))
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// compareValues orders element by element, shorter sequences first on ties.
func compareValues(a, b []Value) int {
	return slices.CompareFunc(a, b, Value.Compare)
}

// compareF64Total implements the IEEE-754 totalOrder predicate via the usual
// bit trick: flip all bits of negatives, flip only the sign bit of
// non-negatives, then compare as unsigned integers.
func compareF64Total(a, b float64) int {
	return cmp.Compare(totalOrderBits64(a), totalOrderBits64(b))
}

func compareF32Total(a, b float32) int {
	return cmp.Compare(totalOrderBits32(a), totalOrderBits32(b))
}

func totalOrderBits64(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | (1 << 63)
}

func totalOrderBits32(f float32) uint32 {
	bits := math.Float32bits(f)
	if bits&(1<<31) != 0 {
		return ^bits
	}
	return bits | (1 << 31)
}

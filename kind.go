package kagami

// Shape identifies which of the eight reflection behaviors a value exposes.
// The set is closed; resolvers switch over it exhaustively.
type Shape int

const (
	ShapeStruct Shape = iota
	ShapeTupleStruct
	ShapeTuple
	ShapeEnum
	ShapeList
	ShapeMap
	ShapeScalar
	ShapeOpaque
)

func (s Shape) String() string {
	switch s {
	case ShapeStruct:
		return "struct"
	case ShapeTupleStruct:
		return "tuple_struct"
	case ShapeTuple:
		return "tuple"
	case ShapeEnum:
		return "enum"
	case ShapeList:
		return "list"
	case ShapeMap:
		return "map"
	case ShapeScalar:
		return "scalar"
	case ShapeOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// ValueKind discriminates the payload of a Value. The declaration order is
// the canonical kind order used by Value.Compare; it never changes.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindUint
	KindU8
	KindU16
	KindU32
	KindU64
	KindInt
	KindI8
	KindI16
	KindI32
	KindI64
	KindBool
	KindChar
	KindF32
	KindF64
	KindString
	KindStructValue
	KindEnumValue
	KindTupleStructValue
	KindTupleValue
	KindList
	KindMap
)

func (k ValueKind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindInt:
		return "int"
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindString:
		return "string"
	case KindStructValue:
		return "struct"
	case KindEnumValue:
		return "enum"
	case KindTupleStructValue:
		return "tuple_struct"
	case KindTupleValue:
		return "tuple"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// IsScalar reports whether the kind is one of the scalar payloads.
func (k ValueKind) IsScalar() bool {
	return k >= KindUint && k <= KindString
}

// IsInteger reports whether the kind is an integer payload (signed or
// unsigned, char excluded).
func (k ValueKind) IsInteger() bool {
	return k >= KindUint && k <= KindI64
}

// Shape maps a ValueKind onto the reflection Shape it behaves as.
func (k ValueKind) Shape() Shape {
	switch {
	case k.IsScalar():
		return ShapeScalar
	case k == KindStructValue:
		return ShapeStruct
	case k == KindEnumValue:
		return ShapeEnum
	case k == KindTupleStructValue:
		return ShapeTupleStruct
	case k == KindTupleValue:
		return ShapeTuple
	case k == KindList:
		return ShapeList
	case k == KindMap:
		return ShapeMap
	default:
		return ShapeOpaque
	}
}

// VariantShape classifies an enum variant.
type VariantShape int

const (
	VariantStruct VariantShape = iota
	VariantTuple
	VariantUnit
)

func (v VariantShape) String() string {
	switch v {
	case VariantStruct:
		return "struct"
	case VariantTuple:
		return "tuple"
	case VariantUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// ScalarType enumerates the scalar leaves of the type graph.
type ScalarType int

const (
	ScalarUint ScalarType = iota
	ScalarU8
	ScalarU16
	ScalarU32
	ScalarU64
	ScalarInt
	ScalarI8
	ScalarI16
	ScalarI32
	ScalarI64
	ScalarBool
	ScalarChar
	ScalarF32
	ScalarF64
	ScalarString
)

func (s ScalarType) String() string {
	switch s {
	case ScalarUint:
		return "uint"
	case ScalarU8:
		return "uint8"
	case ScalarU16:
		return "uint16"
	case ScalarU32:
		return "uint32"
	case ScalarU64:
		return "uint64"
	case ScalarInt:
		return "int"
	case ScalarI8:
		return "int8"
	case ScalarI16:
		return "int16"
	case ScalarI32:
		return "int32"
	case ScalarI64:
		return "int64"
	case ScalarBool:
		return "bool"
	case ScalarChar:
		return "char"
	case ScalarF32:
		return "float32"
	case ScalarF64:
		return "float64"
	case ScalarString:
		return "string"
	default:
		return "unknown"
	}
}

// Kind returns the ValueKind a scalar of this type materializes as.
func (s ScalarType) Kind() ValueKind {
	switch s {
	case ScalarUint:
		return KindUint
	case ScalarU8:
		return KindU8
	case ScalarU16:
		return KindU16
	case ScalarU32:
		return KindU32
	case ScalarU64:
		return KindU64
	case ScalarInt:
		return KindInt
	case ScalarI8:
		return KindI8
	case ScalarI16:
		return KindI16
	case ScalarI32:
		return KindI32
	case ScalarI64:
		return KindI64
	case ScalarBool:
		return KindBool
	case ScalarChar:
		return KindChar
	case ScalarF32:
		return KindF32
	case ScalarF64:
		return KindF64
	case ScalarString:
		return KindString
	default:
		return KindInvalid
	}
}

// ScalarTypeOf returns the ScalarType for a scalar ValueKind.
func ScalarTypeOf(k ValueKind) (ScalarType, bool) {
	switch k {
	case KindUint:
		return ScalarUint, true
	case KindU8:
		return ScalarU8, true
	case KindU16:
		return ScalarU16, true
	case KindU32:
		return ScalarU32, true
	case KindU64:
		return ScalarU64, true
	case KindInt:
		return ScalarInt, true
	case KindI8:
		return ScalarI8, true
	case KindI16:
		return ScalarI16, true
	case KindI32:
		return ScalarI32, true
	case KindI64:
		return ScalarI64, true
	case KindBool:
		return ScalarBool, true
	case KindChar:
		return ScalarChar, true
	case KindF32:
		return ScalarF32, true
	case KindF64:
		return ScalarF64, true
	case KindString:
		return ScalarString, true
	default:
		return 0, false
	}
}

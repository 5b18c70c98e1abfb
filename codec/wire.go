package codec

import (
	stdjson "encoding/json"
	"math"
	"strconv"
	"strings"

	kagami "github.com/reoring/kagami"
)

// wireValue is the serialized form of a kagami.Value. Exactly one payload
// group is populated, selected by Kind.
type wireValue struct {
	Kind    string      `json:"kind" yaml:"kind"`
	Scalar  any         `json:"value,omitempty" yaml:"value,omitempty"`
	Fields  []wireField `json:"fields,omitempty" yaml:"fields,omitempty"`
	Elems   []wireValue `json:"elems,omitempty" yaml:"elems,omitempty"`
	Entries []wireEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
	Variant string      `json:"variant,omitempty" yaml:"variant,omitempty"`
	Shape   string      `json:"variantShape,omitempty" yaml:"variantShape,omitempty"`
}

type wireField struct {
	Name  string    `json:"name" yaml:"name"`
	Value wireValue `json:"value" yaml:"value"`
}

type wireEntry struct {
	Key   wireValue `json:"key" yaml:"key"`
	Value wireValue `json:"value" yaml:"value"`
}

const (
	shapeStructName = "struct"
	shapeTupleName  = "tuple"
	shapeUnitName   = "unit"
)

// valueToWire lowers a Value into its wire form. Non-finite floats encode as
// the strings "NaN", "+Inf" and "-Inf"; plain JSON has no spelling for them.
func valueToWire(v kagami.Value) (wireValue, error) {
	kind := v.Kind()
	w := wireValue{Kind: kind.String()}
	if kind == kagami.KindInvalid {
		return w, kagami.Issues{kagami.NewIssue("/kind", kagami.CodeUnknownKind)}
	}
	if kind.IsScalar() {
		w.Scalar = scalarPayload(v)
		return w, nil
	}

	vv := v
	r := &vv
	switch v.Shape() {
	case kagami.ShapeStruct:
		s, _ := kagami.AsStruct(r)
		for name, f := range s.Fields() {
			fw, err := valueToWire(f.ToValue())
			if err != nil {
				return w, err
			}
			w.Fields = append(w.Fields, wireField{Name: name, Value: fw})
		}
	case kagami.ShapeTuple, kagami.ShapeTupleStruct:
		t, ok := kagami.AsTuple(r)
		if !ok {
			t, _ = kagami.AsTupleStruct(r)
		}
		for f := range t.Fields() {
			fw, err := valueToWire(f.ToValue())
			if err != nil {
				return w, err
			}
			w.Elems = append(w.Elems, fw)
		}
	case kagami.ShapeList:
		l, _ := kagami.AsList(r)
		for f := range l.Elems() {
			fw, err := valueToWire(f.ToValue())
			if err != nil {
				return w, err
			}
			w.Elems = append(w.Elems, fw)
		}
	case kagami.ShapeMap:
		m, _ := kagami.AsMap(r)
		for k, f := range m.Entries() {
			kw, err := valueToWire(k)
			if err != nil {
				return w, err
			}
			fw, err := valueToWire(f.ToValue())
			if err != nil {
				return w, err
			}
			w.Entries = append(w.Entries, wireEntry{Key: kw, Value: fw})
		}
	case kagami.ShapeEnum:
		e, _ := kagami.AsEnum(r)
		w.Variant = e.VariantName()
		switch e.VariantShape() {
		case kagami.VariantStruct:
			w.Shape = shapeStructName
			for name, f := range e.Fields() {
				fw, err := valueToWire(f.ToValue())
				if err != nil {
					return w, err
				}
				w.Fields = append(w.Fields, wireField{Name: name, Value: fw})
			}
		case kagami.VariantTuple:
			w.Shape = shapeTupleName
			for _, f := range e.Fields() {
				fw, err := valueToWire(f.ToValue())
				if err != nil {
					return w, err
				}
				w.Elems = append(w.Elems, fw)
			}
		default:
			w.Shape = shapeUnitName
		}
	}
	return w, nil
}

func scalarPayload(v kagami.Value) any {
	switch v.Kind() {
	case kagami.KindBool:
		b, _ := kagami.As[bool](v)
		return b
	case kagami.KindString:
		s, _ := kagami.As[string](v)
		return s
	case kagami.KindChar:
		c, _ := kagami.As[rune](v)
		return string(c)
	case kagami.KindF32:
		f, _ := kagami.As[float32](v)
		return floatPayload(float64(f))
	case kagami.KindF64:
		f, _ := kagami.As[float64](v)
		return floatPayload(f)
	default:
		if n, ok := v.AsInt64(); ok {
			return n
		}
		n, _ := v.AsUint64()
		return n
	}
}

func floatPayload(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return f
	}
}

// wireToValue raises a wire form back into a Value, validating as it goes.
func wireToValue(w wireValue, path string) (kagami.Value, error) {
	switch w.Kind {
	case "uint", "u8", "u16", "u32", "u64", "int", "i8", "i16", "i32", "i64":
		return decodeIntScalar(w, path)
	case "bool":
		b, ok := w.Scalar.(bool)
		if !ok {
			return kagami.Value{}, typeIssue(path)
		}
		return kagami.Bool(b), nil
	case "string":
		s, ok := w.Scalar.(string)
		if !ok {
			return kagami.Value{}, typeIssue(path)
		}
		return kagami.Str(s), nil
	case "char":
		s, ok := w.Scalar.(string)
		if !ok {
			return kagami.Value{}, typeIssue(path)
		}
		runes := []rune(s)
		if len(runes) != 1 {
			return kagami.Value{}, typeIssue(path)
		}
		return kagami.Char(runes[0]), nil
	case "f32":
		f, ok := toFloat(w.Scalar)
		if !ok {
			return kagami.Value{}, typeIssue(path)
		}
		return kagami.F32(float32(f)), nil
	case "f64":
		f, ok := toFloat(w.Scalar)
		if !ok {
			return kagami.Value{}, typeIssue(path)
		}
		return kagami.F64(f), nil
	case "struct":
		s := kagami.NewStructValue()
		for i, f := range w.Fields {
			fv, err := wireToValue(f.Value, childPath(path, "fields", i))
			if err != nil {
				return kagami.Value{}, err
			}
			s.SetField(f.Name, fv)
		}
		return kagami.StructVal(s), nil
	case "tuple_struct":
		ts := kagami.NewTupleStructValue()
		for i, e := range w.Elems {
			ev, err := wireToValue(e, childPath(path, "elems", i))
			if err != nil {
				return kagami.Value{}, err
			}
			ts.WithElem(ev)
		}
		return kagami.TupleStructVal(ts), nil
	case "tuple":
		t := kagami.NewTupleValue()
		for i, e := range w.Elems {
			ev, err := wireToValue(e, childPath(path, "elems", i))
			if err != nil {
				return kagami.Value{}, err
			}
			t.PushElem(ev)
		}
		return kagami.TupleVal(t), nil
	case "list":
		elems := make([]kagami.Value, len(w.Elems))
		for i, e := range w.Elems {
			ev, err := wireToValue(e, childPath(path, "elems", i))
			if err != nil {
				return kagami.Value{}, err
			}
			elems[i] = ev
		}
		return kagami.ListVal(elems...), nil
	case "map":
		m := kagami.NewValueMap()
		for i, e := range w.Entries {
			kv, err := wireToValue(e.Key, childPath(path, "entries", i)+"/key")
			if err != nil {
				return kagami.Value{}, err
			}
			vv, err := wireToValue(e.Value, childPath(path, "entries", i)+"/value")
			if err != nil {
				return kagami.Value{}, err
			}
			m.Set(kv, vv)
		}
		return kagami.MapVal(m), nil
	case "enum":
		return decodeEnum(w, path)
	default:
		return kagami.Value{}, kagami.Issues{kagami.NewIssue(path+"/kind", kagami.CodeUnknownKind)}
	}
}

func decodeEnum(w wireValue, path string) (kagami.Value, error) {
	if w.Variant == "" {
		return kagami.Value{}, typeIssue(path + "/variant")
	}
	switch w.Shape {
	case shapeStructName:
		e := kagami.NewStructVariant(w.Variant)
		for i, f := range w.Fields {
			fv, err := wireToValue(f.Value, childPath(path, "fields", i))
			if err != nil {
				return kagami.Value{}, err
			}
			e.SetField(f.Name, fv)
		}
		return kagami.EnumVal(e), nil
	case shapeTupleName:
		e := kagami.NewTupleVariant(w.Variant)
		for i, el := range w.Elems {
			ev, err := wireToValue(el, childPath(path, "elems", i))
			if err != nil {
				return kagami.Value{}, err
			}
			e.WithElem(ev)
		}
		return kagami.EnumVal(e), nil
	case shapeUnitName:
		return kagami.EnumVal(kagami.NewUnitVariant(w.Variant)), nil
	default:
		return kagami.Value{}, typeIssue(path + "/variantShape")
	}
}

func decodeIntScalar(w wireValue, path string) (kagami.Value, error) {
	switch w.Kind {
	case "uint", "u8", "u16", "u32", "u64":
		n, ok := toUint64(w.Scalar)
		if !ok {
			return kagami.Value{}, typeIssue(path)
		}
		switch w.Kind {
		case "uint":
			return kagami.Uint(uint(n)), nil
		case "u8":
			if n > math.MaxUint8 {
				return kagami.Value{}, typeIssue(path)
			}
			return kagami.U8(uint8(n)), nil
		case "u16":
			if n > math.MaxUint16 {
				return kagami.Value{}, typeIssue(path)
			}
			return kagami.U16(uint16(n)), nil
		case "u32":
			if n > math.MaxUint32 {
				return kagami.Value{}, typeIssue(path)
			}
			return kagami.U32(uint32(n)), nil
		default:
			return kagami.U64(n), nil
		}
	default:
		n, ok := toInt64(w.Scalar)
		if !ok {
			return kagami.Value{}, typeIssue(path)
		}
		switch w.Kind {
		case "int":
			return kagami.Int(int(n)), nil
		case "i8":
			if n < math.MinInt8 || n > math.MaxInt8 {
				return kagami.Value{}, typeIssue(path)
			}
			return kagami.I8(int8(n)), nil
		case "i16":
			if n < math.MinInt16 || n > math.MaxInt16 {
				return kagami.Value{}, typeIssue(path)
			}
			return kagami.I16(int16(n)), nil
		case "i32":
			if n < math.MinInt32 || n > math.MaxInt32 {
				return kagami.Value{}, typeIssue(path)
			}
			return kagami.I32(int32(n)), nil
		default:
			return kagami.I64(n), nil
		}
	}
}

// Numeric coercion across the decoder backends: JSON numbers arrive as
// json.Number, YAML numbers as int, int64, uint64 or float64.

func toInt64(x any) (int64, bool) {
	switch n := x.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case stdjson.Number:
		v, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func toUint64(x any) (uint64, bool) {
	switch n := x.(type) {
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint64:
		return n, true
	case float64:
		if n < 0 || n != math.Trunc(n) {
			return 0, false
		}
		return uint64(n), true
	case stdjson.Number:
		v, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func toFloat(x any) (float64, bool) {
	switch n := x.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case stdjson.Number:
		v, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case string:
		switch n {
		case "NaN":
			return math.NaN(), true
		case "+Inf":
			return math.Inf(1), true
		case "-Inf":
			return math.Inf(-1), true
		}
	}
	return 0, false
}

func typeIssue(path string) error {
	return kagami.Issues{kagami.NewIssue(path, kagami.CodeInvalidType)}
}

func childPath(path, group string, i int) string {
	var b strings.Builder
	b.WriteString(path)
	b.WriteByte('/')
	b.WriteString(group)
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(i))
	return b.String()
}

package kagami_test

import (
	"testing"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/keypath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueKinds(t *testing.T) {
	assert.Equal(t, kagami.KindU8, kagami.U8(1).Kind())
	assert.Equal(t, kagami.KindChar, kagami.Char('a').Kind())
	assert.Equal(t, kagami.KindList, kagami.ListVal().Kind())
	assert.False(t, kagami.Value{}.IsValid())
	assert.True(t, kagami.Str("").IsValid())

	assert.Equal(t, kagami.ShapeScalar, kagami.I32(1).Kind().Shape())
	assert.Equal(t, kagami.ShapeStruct, kagami.KindStructValue.Shape())
	assert.Equal(t, kagami.ShapeTupleStruct, kagami.KindTupleStructValue.Shape())
}

func TestAsExtraction(t *testing.T) {
	v := kagami.I32(42)

	n, ok := kagami.As[int32](v)
	require.True(t, ok)
	assert.Equal(t, int32(42), n)

	// As is exact; widening goes through AsInt64/AsUint64.
	_, ok = kagami.As[int64](v)
	assert.False(t, ok)

	w, ok := v.AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(42), w)

	u, ok := kagami.U16(9).AsUint64()
	require.True(t, ok)
	assert.Equal(t, uint64(9), u)

	_, ok = kagami.U16(9).AsInt64()
	assert.False(t, ok)
}

func TestCloneIndependence(t *testing.T) {
	orig := kagami.StructVal(kagami.NewStructValue().
		WithField("xs", kagami.ListVal(kagami.I32(1), kagami.I32(2))))
	clone := orig.Clone()

	require.True(t, keypath.Set(&orig, keypath.MustParse(".xs[0]"), kagami.I32(99)))

	got, _ := keypath.Get[int32](&orig, keypath.MustParse(".xs[0]"))
	assert.Equal(t, int32(99), got)
	got, _ = keypath.Get[int32](&clone, keypath.MustParse(".xs[0]"))
	assert.Equal(t, int32(1), got)
}

func TestValueRender(t *testing.T) {
	cases := []struct {
		v    kagami.Value
		want string
	}{
		{kagami.I32(-3), "-3"},
		{kagami.Bool(true), "true"},
		{kagami.Str("hi"), `"hi"`},
		{kagami.Char('x'), `'x'`},
		{kagami.ListVal(kagami.I32(1), kagami.I32(2)), "[1, 2]"},
		{kagami.StructVal(kagami.NewStructValue().
			WithField("a", kagami.I32(1)).
			WithField("b", kagami.Str("x"))), `{a: 1, b: "x"}`},
		{kagami.TupleVal(kagami.NewTupleValue().
			WithElem(kagami.I32(1)).
			WithElem(kagami.Bool(false))), "(1, false)"},
		{kagami.EnumVal(kagami.NewStructVariant("Active").
			WithField("since", kagami.U64(5))), "Active{since: 5}"},
		{kagami.EnumVal(kagami.NewTupleVariant("Renamed").
			WithElem(kagami.Str("n"))), `Renamed("n")`},
		{kagami.EnumVal(kagami.NewUnitVariant("Deleted")), "Deleted"},
		{kagami.MapVal(kagami.NewValueMap().
			WithEntry(kagami.Str("k"), kagami.I32(1))), `{"k" => 1}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.v.String())
	}
}

func TestScalarAccessOnValue(t *testing.T) {
	v := kagami.I32(1)
	s, ok := kagami.AsScalar(&v)
	require.True(t, ok)
	assert.True(t, kagami.I32(1).Equal(s.Scalar()))

	require.True(t, s.SetScalar(kagami.I32(2)))
	assert.True(t, kagami.I32(2).Equal(v))

	// Kind changes are rejected.
	assert.False(t, s.SetScalar(kagami.I64(3)))
	assert.True(t, kagami.I32(2).Equal(v))

	// Aggregates do not expose the scalar view.
	l := kagami.ListVal()
	_, ok = kagami.AsScalar(&l)
	assert.False(t, ok)
}

func TestAsHelpersCheckShape(t *testing.T) {
	v := kagami.StructVal(kagami.NewStructValue())
	_, ok := kagami.AsStruct(&v)
	assert.True(t, ok)
	_, ok = kagami.AsList(&v)
	assert.False(t, ok)
	_, ok = kagami.AsEnum(&v)
	assert.False(t, ok)
	_, ok = kagami.AsStruct(nil)
	assert.False(t, ok)

	ts := kagami.TupleStructVal(kagami.NewTupleStructValue().WithElem(kagami.I32(1)))
	_, ok = kagami.AsTuple(&ts)
	assert.False(t, ok)
	tup, ok := kagami.AsTupleStruct(&ts)
	require.True(t, ok)
	assert.Equal(t, 1, tup.NumFields())
}

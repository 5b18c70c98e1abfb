package codec_test

import (
	"math"
	"testing"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/codec"
	"github.com/reoring/kagami/describe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complexValue() kagami.Value {
	return kagami.StructVal(kagami.NewStructValue().
		WithField("small", kagami.U8(255)).
		WithField("big", kagami.U64(math.MaxUint64)).
		WithField("neg", kagami.I64(math.MinInt64)).
		WithField("flag", kagami.Bool(true)).
		WithField("letter", kagami.Char('é')).
		WithField("ratio", kagami.F32(1.5)).
		WithField("nan", kagami.F64(math.NaN())).
		WithField("name", kagami.Str("kagami")).
		WithField("pair", kagami.TupleVal(kagami.NewTupleValue().
			WithElem(kagami.I32(1)).
			WithElem(kagami.Bool(false)))).
		WithField("wrapped", kagami.TupleStructVal(kagami.NewTupleStructValue().
			WithElem(kagami.Str("inner")))).
		WithField("items", kagami.ListVal(kagami.I16(-3), kagami.I16(4))).
		WithField("lookup", kagami.MapVal(kagami.NewValueMap().
			WithEntry(kagami.Str("k"), kagami.U32(7)).
			WithEntry(kagami.I64(2), kagami.Str("two")))).
		WithField("state", kagami.EnumVal(kagami.NewStructVariant("Active").
			WithField("since", kagami.U64(1700000000)))))
}

func TestValueRoundTripJSON(t *testing.T) {
	v := complexValue()

	data, err := codec.EncodeValueJSON(v)
	require.NoError(t, err)

	back, err := codec.DecodeValueJSON(data)
	require.NoError(t, err)
	assert.True(t, v.Equal(back), "decoded: %s", back.String())
}

func TestEnumVariantsRoundTripJSON(t *testing.T) {
	for _, v := range []kagami.Value{
		kagami.EnumVal(kagami.NewStructVariant("A").WithField("a", kagami.Str("x"))),
		kagami.EnumVal(kagami.NewTupleVariant("B").WithElem(kagami.I32(5))),
		kagami.EnumVal(kagami.NewUnitVariant("C")),
	} {
		data, err := codec.EncodeValueJSON(v)
		require.NoError(t, err)
		back, err := codec.DecodeValueJSON(data)
		require.NoError(t, err)
		assert.True(t, v.Equal(back), "value %s", v.String())
	}
}

func TestDecodeValueJSONErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		code string
	}{
		{"not json", `{`, kagami.CodeParseError},
		{"unknown kind", `{"kind":"u256","value":1}`, kagami.CodeUnknownKind},
		{"bool payload for int", `{"kind":"i32","value":true}`, kagami.CodeInvalidType},
		{"fractional int", `{"kind":"i32","value":1.5}`, kagami.CodeInvalidType},
		{"u8 overflow", `{"kind":"u8","value":300}`, kagami.CodeInvalidType},
		{"negative unsigned", `{"kind":"u32","value":-1}`, kagami.CodeInvalidType},
		{"char too long", `{"kind":"char","value":"ab"}`, kagami.CodeInvalidType},
		{"enum without variant", `{"kind":"enum","variantShape":"unit"}`, kagami.CodeInvalidType},
		{"enum bad shape", `{"kind":"enum","variant":"A","variantShape":"zz"}`, kagami.CodeInvalidType},
		{"nested", `{"kind":"list","elems":[{"kind":"i8","value":999}]}`, kagami.CodeInvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.DecodeValueJSON([]byte(tc.in))
			require.Error(t, err)
			iss, ok := kagami.AsIssues(err)
			require.True(t, ok)
			require.NotEmpty(t, iss)
			assert.Equal(t, tc.code, iss[0].Code)
		})
	}
}

func TestDecodeValueJSONPathPointsAtOffender(t *testing.T) {
	in := `{"kind":"struct","fields":[{"name":"ok","value":{"kind":"bool","value":true}},{"name":"bad","value":{"kind":"u8","value":900}}]}`
	_, err := codec.DecodeValueJSON([]byte(in))
	require.Error(t, err)
	iss, ok := kagami.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "/fields/1", iss[0].Path)
}

func sampleRoot(t *testing.T) kagami.TypeRoot {
	t.Helper()
	g := kagami.NewTypeGraph()
	id := describe.Struct("sample.Node").
		Docs("One node of a linked structure.").
		Field("id", kagami.ScalarU64.Build).
		Field("label", kagami.ScalarString.Build).Meta("display", kagami.Str("Label")).
		Field("next", func(g *kagami.TypeGraph) kagami.NodeID {
			return kagami.BuildList(g, "[]sample.Node", describe.Struct("sample.Node").Register)
		}).
		Register(g)
	return kagami.TypeRoot{Root: id, Graph: g}
}

func TestTypeRoundTripJSON(t *testing.T) {
	root := sampleRoot(t)

	data, err := codec.EncodeTypeJSON(root)
	require.NoError(t, err)

	back, err := codec.DecodeTypeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, root.Root, back.Root)
	assert.Equal(t, root.Graph.Len(), back.Graph.Len())

	sn, ok := back.Node().(*kagami.StructNode)
	require.True(t, ok)
	assert.Equal(t, "sample.Node", sn.TypeName())
	assert.Equal(t, []string{"One node of a linked structure."}, sn.Docs)

	label, ok := sn.FieldByName("label")
	require.True(t, ok)
	assert.True(t, kagami.Str("Label").Equal(label.Meta["display"]))

	// The recursive field reconnects to the root node.
	next, ok := sn.FieldByName("next")
	require.True(t, ok)
	ln, ok := back.Graph.Lookup(next.Type)
	require.True(t, ok)
	list, ok := ln.(*kagami.ListNode)
	require.True(t, ok)
	assert.Equal(t, back.Root, list.Elem)
}

func TestDecodeTypeJSONErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		code string
	}{
		{"dangling field ref", `{"root":"1","nodes":{"1":{"kind":"struct","name":"X","fields":[{"name":"a","type":"99"}]}}}`, kagami.CodeUnknownNode},
		{"missing root", `{"root":"2","nodes":{"1":{"kind":"scalar","scalar":"bool"}}}`, kagami.CodeUnknownNode},
		{"bad node kind", `{"root":"1","nodes":{"1":{"kind":"blob"}}}`, kagami.CodeUnknownKind},
		{"bad scalar name", `{"root":"1","nodes":{"1":{"kind":"scalar","scalar":"quaternion"}}}`, kagami.CodeUnknownKind},
		{"bad node id", `{"root":"1","nodes":{"x":{"kind":"scalar","scalar":"bool"}}}`, kagami.CodeParseError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.DecodeTypeJSON([]byte(tc.in))
			require.Error(t, err)
			iss, ok := kagami.AsIssues(err)
			require.True(t, ok)
			require.NotEmpty(t, iss)
			assert.Equal(t, tc.code, iss[0].Code)
		})
	}
}

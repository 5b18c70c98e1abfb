package kagami_test

import (
	"testing"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/internal/reflecttest"
	"github.com/reoring/kagami/keypath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFixture() reflecttest.Sample {
	return reflecttest.Sample{
		A: 7,
		B: reflecttest.Inner{C: true},
		D: map[string]uint32{"x": 5, "y": 6},
		E: []float32{1, 2, 3},
	}
}

func TestSampleRoundTrip(t *testing.T) {
	s := sampleFixture()
	v := s.ToValue()

	back, ok := kagami.FromValue[reflecttest.Sample](v)
	require.True(t, ok)
	assert.Equal(t, s, back)
}

func TestFromValueShapeMismatch(t *testing.T) {
	_, ok := kagami.FromValue[reflecttest.Sample](kagami.ListVal())
	assert.False(t, ok)

	_, ok = kagami.FromValue[reflecttest.Point](kagami.Str("nope"))
	assert.False(t, ok)
}

func TestSampleLiveHandles(t *testing.T) {
	s := sampleFixture()

	// Scalar field handles write through to the native struct.
	f := s.Field("a")
	require.NotNil(t, f)
	sc, ok := kagami.AsScalar(f)
	require.True(t, ok)
	require.True(t, sc.SetScalar(kagami.I32(100)))
	assert.Equal(t, int32(100), s.A)

	// Nested struct handles too.
	require.True(t, keypath.Set(&s, keypath.MustParse(".b.c"), kagami.Bool(false)))
	assert.False(t, s.B.C)

	// Slice elements.
	require.True(t, keypath.Set(&s, keypath.MustParse(".e[2]"), kagami.F32(30)))
	assert.Equal(t, float32(30), s.E[2])

	// Map entries write back through the map.
	require.True(t, keypath.Set(&s, keypath.MustParse(`.d["x"]`), kagami.U32(50)))
	assert.Equal(t, uint32(50), s.D["x"])
}

func TestSamplePatchFromDynamic(t *testing.T) {
	s := sampleFixture()
	src := kagami.StructVal(kagami.NewStructValue().
		WithField("a", kagami.I32(42)).
		WithField("b", kagami.StructVal(kagami.NewStructValue().
			WithField("c", kagami.Bool(false)))).
		WithField("zz", kagami.Str("ignored")))

	s.Patch(&src)

	assert.Equal(t, int32(42), s.A)
	assert.False(t, s.B.C)
	assert.Equal(t, []float32{1, 2, 3}, s.E)
}

func TestSampleCloneReflect(t *testing.T) {
	s := sampleFixture()
	c := s.CloneReflect().(*reflecttest.Sample)

	s.E[0] = 99
	s.D["x"] = 99
	assert.Equal(t, float32(1), c.E[0])
	assert.Equal(t, uint32(5), c.D["x"])
}

func TestPointTupleStruct(t *testing.T) {
	p := reflecttest.Point{X: 1, Y: 2}
	assert.Equal(t, kagami.ShapeTupleStruct, p.Shape())

	v := p.ToValue()
	back, ok := kagami.FromValue[reflecttest.Point](v)
	require.True(t, ok)
	assert.Equal(t, p, back)

	got, ok := keypath.Get[int32](&p, keypath.MustParse(".1"))
	require.True(t, ok)
	assert.Equal(t, int32(2), got)

	src := kagami.TupleStructVal(kagami.NewTupleStructValue().WithElem(kagami.I32(10)))
	p.Patch(&src)
	assert.Equal(t, reflecttest.Point{X: 10, Y: 2}, p)
}

func TestStatusEnum(t *testing.T) {
	s := reflecttest.Active(1700000000)
	assert.Equal(t, kagami.ShapeEnum, s.Shape())
	assert.Equal(t, "Active", s.VariantName())
	assert.Equal(t, kagami.VariantStruct, s.VariantShape())

	since, ok := keypath.Get[uint64](&s, keypath.MustParse("::Active.since"))
	require.True(t, ok)
	assert.Equal(t, uint64(1700000000), since)

	// Snapshot and rebuild.
	back, ok := kagami.FromValue[reflecttest.Status](s.ToValue())
	require.True(t, ok)
	assert.Equal(t, s, back)

	// Same-variant patch updates fields in place.
	src := kagami.EnumVal(kagami.NewStructVariant("Active").
		WithField("since", kagami.U64(42)))
	s.Patch(&src)
	since, _ = keypath.Get[uint64](&s, keypath.MustParse("::Active.since"))
	assert.Equal(t, uint64(42), since)

	// A different incoming variant replaces the receiver wholesale.
	repl := kagami.EnumVal(kagami.NewTupleVariant("Renamed").
		WithElem(kagami.Str("next")))
	s.Patch(&repl)
	assert.Equal(t, "Renamed", s.VariantName())
	name, ok := keypath.Get[string](&s, keypath.MustParse("::Renamed.0"))
	require.True(t, ok)
	assert.Equal(t, "next", name)
}

func TestScalarRefKeepsKind(t *testing.T) {
	// rune and int32 share a native type; the handles still refuse writes
	// that cross scalar kinds.
	var n int32 = 7
	ref := kagami.RefScalar(&n)
	assert.False(t, ref.SetScalar(kagami.Char('x')))
	assert.Equal(t, int32(7), n)
	require.True(t, ref.SetScalar(kagami.I32(9)))
	assert.Equal(t, int32(9), n)

	ch := kagami.Char('y')
	ref.Patch(&ch)
	assert.Equal(t, int32(9), n)

	m := map[string]uint32{"k": 1}
	h, ok := kagami.AsScalar(kagami.RefScalarMap(&m).Get(kagami.Str("k")))
	require.True(t, ok)
	assert.False(t, h.SetScalar(kagami.I32(5)))
	assert.Equal(t, uint32(1), m["k"])
	require.True(t, h.SetScalar(kagami.U32(5)))
	assert.Equal(t, uint32(5), m["k"])
}

func TestAdapterDescribeType(t *testing.T) {
	var xs []int64
	root := kagami.TypeOf(kagami.RefScalarSlice(&xs))
	ln, ok := root.Node().(*kagami.ListNode)
	require.True(t, ok)
	assert.Equal(t, "[]int64", ln.TypeName())

	var m map[string]uint32
	mroot := kagami.TypeOf(kagami.RefScalarMap(&m))
	mn, ok := mroot.Node().(*kagami.MapNode)
	require.True(t, ok)
	assert.Equal(t, "map[string]uint32", mn.TypeName())
}

func TestValueAndTypeResolversAgree(t *testing.T) {
	// Structurally valid explicit-selector paths resolve against both the
	// live value and its type description.
	s := sampleFixture()
	root := kagami.TypeOf(&s)

	for _, in := range []string{".a", ".b.c", ".e[0]", `.d["x"]`} {
		p := keypath.MustParse(in)
		_, okValue := keypath.Resolve(&s, p)
		_, okType := keypath.TypeAt(root, p)
		assert.True(t, okValue, "value resolver on %q", in)
		assert.True(t, okType, "type resolver on %q", in)
	}

	for _, in := range []string{".zz", ".a.b", `.e["x"]`, "::A"} {
		p := keypath.MustParse(in)
		_, okValue := keypath.Resolve(&s, p)
		_, okType := keypath.TypeAt(root, p)
		assert.False(t, okValue, "value resolver on %q", in)
		assert.False(t, okType, "type resolver on %q", in)
	}
}

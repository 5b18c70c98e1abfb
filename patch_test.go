package kagami_test

import (
	"testing"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/keypath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchStructShallow(t *testing.T) {
	dst := kagami.StructVal(kagami.NewStructValue().
		WithField("a", kagami.I32(1)).
		WithField("b", kagami.Str("keep")))
	src := kagami.StructVal(kagami.NewStructValue().
		WithField("a", kagami.I32(42)))

	dst.Patch(&src)

	a, _ := keypath.Get[int32](&dst, keypath.MustParse(".a"))
	assert.Equal(t, int32(42), a)
	b, _ := keypath.Get[string](&dst, keypath.MustParse(".b"))
	assert.Equal(t, "keep", b)
}

// Kind mismatches and extra fields are skipped silently rather than
// reported; patching is best-effort by policy.
func TestPatchIgnoresMismatches(t *testing.T) {
	dst := kagami.StructVal(kagami.NewStructValue().
		WithField("a", kagami.I32(1)).
		WithField("b", kagami.Str("keep")))
	src := kagami.StructVal(kagami.NewStructValue().
		WithField("a", kagami.Str("wrong kind")).
		WithField("zz", kagami.I32(9)))

	before := dst.Clone()
	dst.Patch(&src)
	assert.True(t, before.Equal(dst))

	// A source of a different shape entirely is a no-op.
	list := kagami.ListVal(kagami.I32(1))
	dst.Patch(&list)
	assert.True(t, before.Equal(dst))
}

func TestPatchTuplePartial(t *testing.T) {
	dst := kagami.TupleVal(kagami.NewTupleValue().
		WithElem(kagami.I32(1)).
		WithElem(kagami.Bool(false)))
	src := kagami.TupleVal(kagami.NewTupleValue().
		WithElem(kagami.I32(42)))

	dst.Patch(&src)

	want := kagami.TupleVal(kagami.NewTupleValue().
		WithElem(kagami.I32(42)).
		WithElem(kagami.Bool(false)))
	assert.True(t, want.Equal(dst), "got %s", dst.String())
}

func TestPatchListByIndex(t *testing.T) {
	dst := kagami.ListVal(kagami.I32(1), kagami.I32(2), kagami.I32(3))
	src := kagami.ListVal(kagami.I32(10), kagami.I32(20))

	dst.Patch(&src)

	// Only overlapping indices update; length never changes.
	want := kagami.ListVal(kagami.I32(10), kagami.I32(20), kagami.I32(3))
	assert.True(t, want.Equal(dst), "got %s", dst.String())
}

func TestPatchMapSharedKeysOnly(t *testing.T) {
	dst := kagami.MapVal(kagami.NewValueMap().
		WithEntry(kagami.Str("a"), kagami.I32(1)).
		WithEntry(kagami.Str("b"), kagami.I32(2)))
	src := kagami.MapVal(kagami.NewValueMap().
		WithEntry(kagami.Str("b"), kagami.I32(20)).
		WithEntry(kagami.Str("c"), kagami.I32(30)))

	dst.Patch(&src)

	want := kagami.MapVal(kagami.NewValueMap().
		WithEntry(kagami.Str("a"), kagami.I32(1)).
		WithEntry(kagami.Str("b"), kagami.I32(20)))
	assert.True(t, want.Equal(dst), "got %s", dst.String())
}

func TestPatchEnumSameVariant(t *testing.T) {
	dst := kagami.EnumVal(kagami.NewStructVariant("Active").
		WithField("since", kagami.U64(1)))
	src := kagami.EnumVal(kagami.NewStructVariant("Active").
		WithField("since", kagami.U64(2)))

	dst.Patch(&src)

	got, _ := keypath.Get[uint64](&dst, keypath.MustParse("::Active.since"))
	assert.Equal(t, uint64(2), got)
}

func TestPatchEnumVariantAdoption(t *testing.T) {
	dst := kagami.EnumVal(kagami.NewStructVariant("Active").
		WithField("since", kagami.U64(1)))
	src := kagami.EnumVal(kagami.NewUnitVariant("Deleted"))

	dst.Patch(&src)
	assert.True(t, src.Equal(dst), "got %s", dst.String())

	// Non-enum sources are ignored.
	other := kagami.I32(1)
	before := dst.Clone()
	dst.Patch(&other)
	assert.True(t, before.Equal(dst))
}

func TestPatchIdempotent(t *testing.T) {
	dst := kagami.StructVal(kagami.NewStructValue().
		WithField("a", kagami.I32(1)).
		WithField("xs", kagami.ListVal(kagami.I32(1), kagami.I32(2))).
		WithField("m", kagami.MapVal(kagami.NewValueMap().
			WithEntry(kagami.Str("k"), kagami.Bool(false)))))
	src := kagami.StructVal(kagami.NewStructValue().
		WithField("a", kagami.I32(5)).
		WithField("xs", kagami.ListVal(kagami.I32(9))).
		WithField("m", kagami.MapVal(kagami.NewValueMap().
			WithEntry(kagami.Str("k"), kagami.Bool(true)))))

	dst.Patch(&src)
	once := dst.Clone()
	dst.Patch(&src)
	require.True(t, once.Equal(dst), "patch must be idempotent; got %s", dst.String())
}

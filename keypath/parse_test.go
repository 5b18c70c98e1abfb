package keypath_test

import (
	"math"
	"testing"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/keypath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDisplayRoundTrip(t *testing.T) {
	cases := []string{
		"",
		".a",
		".a.b.c",
		".0",
		".a.0.b",
		"[3]",
		`["foo"]`,
		`["with ] bracket"]`,
		"[true]",
		"[false]",
		"[-7]",
		"[1.5]",
		"['x']",
		"::Active",
		"::B.0",
		`.a.0.b.c[1]["foo"]::D.e[3]`,
	}
	for _, in := range cases {
		p, err := keypath.Parse(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, in, p.String(), "input %q", in)
	}
}

func TestParseBuilderEquivalence(t *testing.T) {
	built := keypath.New().
		Field("a").
		Index(0).
		Field("b").
		Key(kagami.I64(1)).
		Key(kagami.Str("foo")).
		Variant("D").
		Field("e")
	parsed := keypath.MustParse(`.a.0.b[1]["foo"]::D.e`)
	assert.True(t, built.Equal(parsed))
	assert.Equal(t, built.String(), parsed.String())
}

func TestParseCanonicalizesIntegerKeys(t *testing.T) {
	// Non-canonical integer key kinds display as int64 literals, so display
	// output always re-parses to an equal path.
	p := keypath.New().Key(kagami.U8(9))
	assert.Equal(t, "[9]", p.String())
	assert.True(t, p.Equal(keypath.MustParse("[9]")))
}

func TestLargeUnsignedKeyKeepsKind(t *testing.T) {
	// Unsigned keys above the int64 range stay uint64 instead of wrapping
	// negative, and still round-trip through the display form.
	p := keypath.New().Key(kagami.U64(math.MaxUint64))
	assert.Equal(t, "[18446744073709551615]", p.String())

	back, err := keypath.Parse(p.String())
	require.NoError(t, err)
	assert.True(t, p.Equal(back))

	// At the boundary the canonical int64 kind still applies.
	q := keypath.New().Key(kagami.U64(math.MaxInt64))
	assert.True(t, q.Equal(keypath.MustParse("[9223372036854775807]")))
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code string
	}{
		{"foo", kagami.CodeBadSegment},
		{".", kagami.CodeBadSegment},
		{".a.", kagami.CodeBadSegment},
		{":", kagami.CodeBadSegment},
		{"::", kagami.CodeBadSegment},
		{":x", kagami.CodeBadSegment},
		{"[", kagami.CodeTruncated},
		{"[1", kagami.CodeTruncated},
		{`["abc`, kagami.CodeParseError},
		{"[abc]", kagami.CodeParseError},
		{"[]", kagami.CodeParseError},
		{"[99999999999999999999]", kagami.CodeParseError},
	}
	for _, tc := range cases {
		_, err := keypath.Parse(tc.in)
		require.Error(t, err, "input %q", tc.in)
		iss, ok := kagami.AsIssues(err)
		require.True(t, ok, "input %q", tc.in)
		require.Len(t, iss, 1, "input %q", tc.in)
		assert.Equal(t, tc.code, iss[0].Code, "input %q", tc.in)
		assert.GreaterOrEqual(t, iss[0].Offset, 0, "input %q", tc.in)
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { keypath.MustParse("not a path") })
}

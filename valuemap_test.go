package kagami_test

import (
	"math"
	"testing"

	kagami "github.com/reoring/kagami"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueMapBasics(t *testing.T) {
	m := kagami.NewValueMap()
	assert.Equal(t, 0, m.Len())

	m.Set(kagami.Str("b"), kagami.I32(2))
	m.Set(kagami.Str("a"), kagami.I32(1))
	m.Set(kagami.Str("b"), kagami.I32(20)) // replace
	assert.Equal(t, 2, m.Len())

	v, ok := m.GetValue(kagami.Str("b"))
	require.True(t, ok)
	assert.True(t, kagami.I32(20).Equal(v))

	_, ok = m.GetValue(kagami.Str("zz"))
	assert.False(t, ok)

	assert.True(t, m.Delete(kagami.Str("a")))
	assert.False(t, m.Delete(kagami.Str("a")))
	assert.Equal(t, 1, m.Len())
}

func TestValueMapKeysSorted(t *testing.T) {
	m := kagami.NewValueMap().
		WithEntry(kagami.Str("z"), kagami.I32(1)).
		WithEntry(kagami.I32(5), kagami.I32(2)).
		WithEntry(kagami.Str("a"), kagami.I32(3)).
		WithEntry(kagami.Bool(true), kagami.I32(4))

	keys := m.Keys()
	require.Len(t, keys, 4)
	for i := 0; i < len(keys)-1; i++ {
		assert.Negative(t, keys[i].Compare(keys[i+1]))
	}
}

func TestValueMapAggregateKeys(t *testing.T) {
	// Any Value can key the map, including aggregates and NaN.
	m := kagami.NewValueMap().
		WithEntry(kagami.ListVal(kagami.I32(1), kagami.I32(2)), kagami.Str("list")).
		WithEntry(kagami.F64(math.NaN()), kagami.Str("nan"))

	v, ok := m.GetValue(kagami.ListVal(kagami.I32(1), kagami.I32(2)))
	require.True(t, ok)
	assert.True(t, kagami.Str("list").Equal(v))

	v, ok = m.GetValue(kagami.F64(math.NaN()))
	require.True(t, ok)
	assert.True(t, kagami.Str("nan").Equal(v))
}

func TestValueMapLiveHandles(t *testing.T) {
	m := kagami.NewValueMap().WithEntry(kagami.Str("k"), kagami.I32(1))

	h := m.Get(kagami.Str("k"))
	require.NotNil(t, h)
	s, ok := kagami.AsScalar(h)
	require.True(t, ok)
	require.True(t, s.SetScalar(kagami.I32(9)))

	v, _ := m.GetValue(kagami.Str("k"))
	assert.True(t, kagami.I32(9).Equal(v))

	assert.Nil(t, m.Get(kagami.Str("missing")))
}

func TestValueMapCloneIndependence(t *testing.T) {
	m := kagami.NewValueMap().WithEntry(kagami.Str("k"), kagami.I32(1))
	c := m.Clone()

	m.Set(kagami.Str("k"), kagami.I32(2))
	v, _ := c.GetValue(kagami.Str("k"))
	assert.True(t, kagami.I32(1).Equal(v))
}

package kagami_test

import (
	"testing"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/internal/reflecttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeIDDerivation(t *testing.T) {
	a := kagami.NodeIDFor("demo.A")
	assert.Equal(t, a, kagami.NodeIDFor("demo.A"))
	assert.NotEqual(t, a, kagami.NodeIDFor("demo.B"))

	parsed, ok := kagami.ParseNodeID(a.String())
	require.True(t, ok)
	assert.Equal(t, a, parsed)

	_, ok = kagami.ParseNodeID("not a number")
	assert.False(t, ok)
}

func TestGetOrBuildRunsOnce(t *testing.T) {
	g := kagami.NewTypeGraph()
	calls := 0
	build := func(*kagami.TypeGraph) kagami.TypeNode {
		calls++
		return &kagami.OpaqueNode{Name: "demo.Once"}
	}

	id1 := g.GetOrBuild("demo.Once", build)
	id2 := g.GetOrBuild("demo.Once", build)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, g.Len())
}

func TestNodeLookup(t *testing.T) {
	g := kagami.NewTypeGraph()
	id := kagami.ScalarBool.Build(g)

	n := g.Node(id)
	assert.Equal(t, "bool", n.TypeName())

	_, ok := g.Lookup(kagami.NodeIDFor("missing"))
	assert.False(t, ok)
	assert.Panics(t, func() { g.Node(kagami.NodeIDFor("missing")) })
}

func TestIDsSorted(t *testing.T) {
	g := kagami.NewTypeGraph()
	kagami.ScalarBool.Build(g)
	kagami.ScalarI32.Build(g)
	kagami.ScalarString.Build(g)

	ids := g.IDs()
	require.Len(t, ids, 3)
	for i := 0; i < len(ids)-1; i++ {
		assert.Less(t, ids[i], ids[i+1])
	}
}

func TestTypeOfSample(t *testing.T) {
	root := kagami.TypeOf(&reflecttest.Sample{})

	sn, ok := root.Node().(*kagami.StructNode)
	require.True(t, ok)
	assert.Equal(t, "reflecttest.Sample", sn.TypeName())
	require.Len(t, sn.Fields, 4)

	a, ok := sn.FieldByName("a")
	require.True(t, ok)
	scalar, ok := root.Graph.Node(a.Type).(*kagami.ScalarNode)
	require.True(t, ok)
	assert.Equal(t, kagami.ScalarI32, scalar.Type)

	b, ok := sn.FieldByName("b")
	require.True(t, ok)
	inner, ok := root.Graph.Node(b.Type).(*kagami.StructNode)
	require.True(t, ok)
	assert.Equal(t, "reflecttest.Inner", inner.TypeName())

	d, ok := sn.FieldByName("d")
	require.True(t, ok)
	mn, ok := root.Graph.Node(d.Type).(*kagami.MapNode)
	require.True(t, ok)
	assert.Equal(t, "map[string]uint32", mn.TypeName())

	e, ok := sn.FieldByName("e")
	require.True(t, ok)
	ln, ok := root.Graph.Node(e.Type).(*kagami.ListNode)
	require.True(t, ok)
	assert.Equal(t, kagami.NodeIDFor("float32"), ln.Elem)
}

func TestTypeOfRecursiveTerminates(t *testing.T) {
	root := kagami.TypeOf(&reflecttest.Tree{})

	tn, ok := root.Node().(*kagami.StructNode)
	require.True(t, ok)

	children, ok := tn.FieldByName("children")
	require.True(t, ok)
	ln, ok := root.Graph.Node(children.Type).(*kagami.ListNode)
	require.True(t, ok)

	// The element reference closes the cycle onto the single tree node.
	assert.Equal(t, root.Root, ln.Elem)

	// Ids are name-derived, so separate traversals agree.
	again := kagami.TypeOf(&reflecttest.Tree{})
	assert.Equal(t, root.Root, again.Root)
}

func TestRefSliceDescribeDuringElementBuild(t *testing.T) {
	// The children field's list type is described by the slice adapter while
	// the element's own node id is still reserved.
	var tree reflecttest.Tree
	g := kagami.NewTypeGraph()
	var id kagami.NodeID
	require.NotPanics(t, func() { id = tree.DescribeType(g) })

	sn, ok := g.Node(id).(*kagami.StructNode)
	require.True(t, ok)
	children, ok := sn.FieldByName("children")
	require.True(t, ok)
	ln, ok := g.Node(children.Type).(*kagami.ListNode)
	require.True(t, ok)
	assert.Equal(t, "[]reflecttest.Tree", ln.TypeName())
	assert.Equal(t, id, ln.Elem)
}

func TestTypeOfEnum(t *testing.T) {
	s := reflecttest.Active(1)
	root := kagami.TypeOf(&s)

	en, ok := root.Node().(*kagami.EnumNode)
	require.True(t, ok)
	assert.Equal(t, "reflecttest.Status", en.TypeName())
	require.Len(t, en.Variants, 3)

	v, ok := en.VariantByName("Renamed")
	require.True(t, ok)
	assert.Equal(t, kagami.VariantTuple, v.Shape())

	// The description covers all variants no matter which one is active.
	d := reflecttest.Deleted()
	other := kagami.TypeOf(&d)
	assert.Equal(t, root.Root, other.Root)
}

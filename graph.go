package kagami

import (
	"slices"
	"strconv"

	"github.com/reoring/kagami/internal/hashid"
)

// NodeID identifies a type inside a TypeGraph. It is derived from the type's
// canonical name, so two descriptions of the same type always agree on the
// id. Collisions would be a fatal internal bug, not a user-facing condition.
type NodeID uint64

// NodeIDFor derives the id for a canonical type name.
func NodeIDFor(typeName string) NodeID {
	return NodeID(hashid.Sum(typeName))
}

func (id NodeID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseNodeID parses the decimal form produced by String.
func ParseNodeID(s string) (NodeID, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return NodeID(n), true
}

// TypeGraph is an append-only registry of type descriptions keyed by NodeID.
// Entries pass through three states: absent, reserved (present but nil,
// build in progress), and resolved. Reserving before recursing is what keeps
// directly recursive types from looping forever.
//
// Graphs are not safe for concurrent mutation; the intended pattern is one
// graph per traversal.
type TypeGraph struct {
	nodes map[NodeID]TypeNode
}

// NewTypeGraph returns an empty graph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{nodes: map[NodeID]TypeNode{}}
}

// GetOrBuild returns the id for typeName, running build only on the first
// request. The id is reserved before build runs, so a recursive build of the
// same type resolves to the reserved id instead of re-entering construction.
func (g *TypeGraph) GetOrBuild(typeName string, build func(g *TypeGraph) TypeNode) NodeID {
	id := NodeIDFor(typeName)
	if _, ok := g.nodes[id]; ok {
		// Either resolved or currently being built; both return the id.
		return id
	}
	g.nodes[id] = nil
	g.nodes[id] = build(g)
	return id
}

// Node returns the resolved node for id. A missing or still-reserved node
// after construction claims completion is a construction bug; continuing
// would silently corrupt traversals, so Node panics.
func (g *TypeGraph) Node(id NodeID) TypeNode {
	n, ok := g.nodes[id]
	if !ok || n == nil {
		panic("kagami: no node found in graph; this is a bug, please open an issue")
	}
	return n
}

// Lookup is the non-panicking variant of Node, for serialization surfaces
// that must validate foreign input.
func (g *TypeGraph) Lookup(id NodeID) (TypeNode, bool) {
	n, ok := g.nodes[id]
	if !ok || n == nil {
		return nil, false
	}
	return n, true
}

// Len returns the number of resolved nodes.
func (g *TypeGraph) Len() int {
	n := 0
	for _, node := range g.nodes {
		if node != nil {
			n++
		}
	}
	return n
}

// IDs returns the resolved node ids in ascending order.
func (g *TypeGraph) IDs() []NodeID {
	out := make([]NodeID, 0, len(g.nodes))
	for id, node := range g.nodes {
		if node != nil {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// insert places a pre-built node, used when decoding a serialized graph.
func (g *TypeGraph) insert(id NodeID, n TypeNode) {
	g.nodes[id] = n
}

// RestoreNode places a decoded node into the graph under an explicit id.
// It exists for the codec layer; regular construction goes through
// GetOrBuild.
func (g *TypeGraph) RestoreNode(id NodeID, n TypeNode) {
	if n == nil {
		return
	}
	g.insert(id, n)
}

// TypeRoot pairs a graph with the id of the type it was built for.
type TypeRoot struct {
	Root  NodeID
	Graph *TypeGraph
}

// Node returns the root node.
func (r TypeRoot) Node() TypeNode { return r.Graph.Node(r.Root) }

// Describer is the static "describe your shape" entry point, conventionally
// implemented by generated code alongside Reflect.
type Describer interface {
	DescribeType(g *TypeGraph) NodeID
}

// TypeOf builds a fresh graph describing d. Graphs are short-lived by
// design; callers wanting cross-call caching memoize externally.
func TypeOf(d Describer) TypeRoot {
	g := NewTypeGraph()
	return TypeRoot{Root: d.DescribeType(g), Graph: g}
}

// BuildFunc builds (or returns the cached id of) one type description.
// Method values such as ScalarI32.Build and B{}.DescribeType satisfy it.
type BuildFunc func(g *TypeGraph) NodeID

// Build registers the scalar leaf node for s.
func (s ScalarType) Build(g *TypeGraph) NodeID {
	return g.GetOrBuild(s.String(), func(*TypeGraph) TypeNode {
		return &ScalarNode{Type: s}
	})
}

// BuildList registers a homogeneous, unbounded sequence type.
func BuildList(g *TypeGraph, typeName string, elem BuildFunc) NodeID {
	return g.GetOrBuild(typeName, func(g *TypeGraph) TypeNode {
		return &ListNode{Name: typeName, Elem: elem(g)}
	})
}

// BuildArray registers a homogeneous, fixed-length sequence type.
func BuildArray(g *TypeGraph, typeName string, length int, elem BuildFunc) NodeID {
	return g.GetOrBuild(typeName, func(g *TypeGraph) TypeNode {
		return &ArrayNode{Name: typeName, Elem: elem(g), Len: length}
	})
}

// BuildMap registers a keyed container type.
func BuildMap(g *TypeGraph, typeName string, key, value BuildFunc) NodeID {
	return g.GetOrBuild(typeName, func(g *TypeGraph) TypeNode {
		return &MapNode{Name: typeName, Key: key(g), Value: value(g)}
	})
}

// BuildOpaque registers an unreflected leaf, identified only by name.
func BuildOpaque(g *TypeGraph, typeName string, meta Metadata) NodeID {
	return g.GetOrBuild(typeName, func(*TypeGraph) TypeNode {
		return &OpaqueNode{Name: typeName, Meta: meta}
	})
}

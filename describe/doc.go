// Package describe provides fluent builders for type-graph nodes.
//
// Builders resolve field types lazily: Register reserves the node id before
// running the field descriptions, so self-referential types terminate.
// Register itself satisfies kagami.BuildFunc, which lets descriptions nest:
//
//	tree := describe.Struct("demo.Tree").
//		Field("value", kagami.ScalarI64.Build).
//		Field("children", func(g *kagami.TypeGraph) kagami.NodeID {
//			return kagami.BuildList(g, "[]demo.Tree", describe.Struct("demo.Tree").Register)
//		}).
//		Register(g)
package describe

package jsonschema_test

import (
	"testing"

	"github.com/goccy/go-json"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/describe"
	"github.com/reoring/kagami/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func export(t *testing.T, root kagami.TypeRoot) string {
	t.Helper()
	s, err := jsonschema.FromType(root)
	require.NoError(t, err)
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return string(data)
}

func TestFromTypeStruct(t *testing.T) {
	g := kagami.NewTypeGraph()
	id := describe.Struct("demo.User").
		Docs("A registered account.").
		Field("id", kagami.ScalarU64.Build).
		Field("name", kagami.ScalarString.Build).Docs("Display name.").
		Field("tags", func(g *kagami.TypeGraph) kagami.NodeID {
			return kagami.BuildList(g, "[]string", kagami.ScalarString.Build)
		}).
		Register(g)

	got := export(t, kagami.TypeRoot{Root: id, Graph: g})
	assert.JSONEq(t, `{
		"$ref": "#/$defs/demo.User",
		"$defs": {
			"demo.User": {
				"type": "object",
				"title": "demo.User",
				"description": "A registered account.",
				"properties": {
					"id": {"type": "integer", "format": "uint64", "minimum": 0},
					"name": {"type": "string", "description": "Display name."},
					"tags": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["id", "name", "tags"],
				"additionalProperties": false
			}
		}
	}`, got)
}

func TestFromTypeEnum(t *testing.T) {
	g := kagami.NewTypeGraph()
	id := describe.Enum("demo.Event").
		Variants(
			describe.StructVariant("Created").Field("id", kagami.ScalarU64.Build),
			describe.TupleVariant("Renamed").Field(kagami.ScalarString.Build),
			describe.UnitVariant("Deleted"),
		).
		Register(g)

	got := export(t, kagami.TypeRoot{Root: id, Graph: g})
	assert.JSONEq(t, `{
		"$ref": "#/$defs/demo.Event",
		"$defs": {
			"demo.Event": {
				"title": "demo.Event",
				"oneOf": [
					{
						"type": "object",
						"properties": {
							"Created": {
								"type": "object",
								"properties": {"id": {"type": "integer", "format": "uint64", "minimum": 0}},
								"required": ["id"],
								"additionalProperties": false
							}
						},
						"required": ["Created"],
						"additionalProperties": false
					},
					{
						"type": "object",
						"properties": {"Renamed": {"type": "string"}},
						"required": ["Renamed"],
						"additionalProperties": false
					},
					{"const": "Deleted"}
				]
			}
		}
	}`, got)
}

func TestFromTypeRecursive(t *testing.T) {
	g := kagami.NewTypeGraph()
	id := describe.Struct("demo.Tree").
		Field("value", kagami.ScalarI64.Build).
		Field("children", func(g *kagami.TypeGraph) kagami.NodeID {
			return kagami.BuildList(g, "[]demo.Tree", describe.Struct("demo.Tree").Register)
		}).
		Register(g)

	got := export(t, kagami.TypeRoot{Root: id, Graph: g})
	assert.JSONEq(t, `{
		"$ref": "#/$defs/demo.Tree",
		"$defs": {
			"demo.Tree": {
				"type": "object",
				"title": "demo.Tree",
				"properties": {
					"value": {"type": "integer", "format": "int64"},
					"children": {"type": "array", "items": {"$ref": "#/$defs/demo.Tree"}}
				},
				"required": ["value", "children"],
				"additionalProperties": false
			}
		}
	}`, got)
}

func TestFromTypeScalarRoot(t *testing.T) {
	g := kagami.NewTypeGraph()
	id := kagami.ScalarBool.Build(g)

	got := export(t, kagami.TypeRoot{Root: id, Graph: g})
	assert.JSONEq(t, `{"type": "boolean"}`, got)
}

func TestFromTypeMapAndArray(t *testing.T) {
	g := kagami.NewTypeGraph()
	id := kagami.BuildMap(g, "map[string][3]uint8",
		kagami.ScalarString.Build,
		func(g *kagami.TypeGraph) kagami.NodeID {
			return kagami.BuildArray(g, "[3]uint8", 3, kagami.ScalarU8.Build)
		})

	got := export(t, kagami.TypeRoot{Root: id, Graph: g})
	assert.JSONEq(t, `{
		"type": "object",
		"additionalProperties": {
			"type": "array",
			"items": {"type": "integer", "format": "uint8", "minimum": 0},
			"minItems": 3,
			"maxItems": 3
		}
	}`, got)
}

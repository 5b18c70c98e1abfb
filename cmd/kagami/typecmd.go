package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/keypath"
)

var typeCmd = &cobra.Command{
	Use:   "type <file> [path]",
	Short: "Inspect a type graph document",
	Long: `Print the type at a key path inside a serialized type graph. Without a
path the root type and the full node listing are shown.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := readTypeDoc(args[0])
		if err != nil {
			return err
		}

		if len(args) == 1 {
			printGraph(root)
			return nil
		}

		p, err := keypath.Parse(args[1])
		if err != nil {
			return err
		}
		at, ok := keypath.TypeAt(root, p)
		if !ok {
			return fmt.Errorf("path %s does not resolve in %s", p.String(), args[0])
		}

		color.New(color.FgCyan).Printf("%s ", p.String())
		if at.Variant != nil {
			fmt.Printf("variant %s (%s)\n", at.Variant.VariantName(), variantShapeName(at.Variant.Shape()))
			return nil
		}
		fmt.Println(describeNode(at.Node))
		return nil
	},
}

func printGraph(root kagami.TypeRoot) {
	color.New(color.FgCyan).Printf("root ")
	fmt.Println(describeNode(root.Node()))
	for _, id := range root.Graph.IDs() {
		n, _ := root.Graph.Lookup(id)
		fmt.Printf("  %s  %s\n", id.String(), describeNode(n))
	}
}

func describeNode(n kagami.TypeNode) string {
	switch node := n.(type) {
	case *kagami.StructNode:
		names := make([]string, len(node.Fields))
		for i, f := range node.Fields {
			names[i] = f.Name
		}
		return fmt.Sprintf("struct %s {%s}", node.Name, strings.Join(names, ", "))
	case *kagami.TupleStructNode:
		return fmt.Sprintf("tuple struct %s (%d fields)", node.Name, len(node.Fields))
	case *kagami.TupleNode:
		return fmt.Sprintf("tuple %s (%d fields)", node.Name, len(node.Fields))
	case *kagami.EnumNode:
		names := make([]string, len(node.Variants))
		for i, v := range node.Variants {
			names[i] = v.VariantName()
		}
		return fmt.Sprintf("enum %s {%s}", node.Name, strings.Join(names, " | "))
	case *kagami.ListNode:
		return fmt.Sprintf("list %s", node.Name)
	case *kagami.ArrayNode:
		return fmt.Sprintf("array %s (len %d)", node.Name, node.Len)
	case *kagami.MapNode:
		return fmt.Sprintf("map %s", node.Name)
	case *kagami.ScalarNode:
		return fmt.Sprintf("scalar %s", node.Type.String())
	case *kagami.OpaqueNode:
		return fmt.Sprintf("opaque %s", node.Name)
	default:
		return "unknown node"
	}
}

func variantShapeName(s kagami.VariantShape) string {
	switch s {
	case kagami.VariantStruct:
		return "struct"
	case kagami.VariantTuple:
		return "tuple"
	default:
		return "unit"
	}
}

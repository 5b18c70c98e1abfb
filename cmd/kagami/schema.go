package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/kagami/jsonschema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <file>",
	Short: "Export a type graph as JSON Schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := readTypeDoc(args[0])
		if err != nil {
			return err
		}
		s, err := jsonschema.FromType(root)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/kagami/keypath"
)

var getCmd = &cobra.Command{
	Use:   "get <file> <path>",
	Short: "Read the value at a key path",
	Long: `Resolve a key path like .user.name or .items[0] inside a value document
and print what it addresses.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := readValueDoc(args[0])
		if err != nil {
			return err
		}
		p, err := keypath.Parse(args[1])
		if err != nil {
			return err
		}
		logger.Debug("resolving", zap.String("path", p.String()))

		at, ok := keypath.ResolveValue(&v, p)
		if !ok {
			return fmt.Errorf("path %s does not resolve in %s", p.String(), args[0])
		}

		color.New(color.FgCyan).Printf("%s ", p.String())
		fmt.Println(at.String())
		return nil
	},
}

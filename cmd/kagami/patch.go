package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/kagami/codec"
)

var patchOutput string

func init() {
	patchCmd.Flags().StringVarP(&patchOutput, "output", "o", "", "Write the result to this file instead of stdout")
}

var patchCmd = &cobra.Command{
	Use:   "patch <dst> <src>",
	Short: "Apply one value document onto another",
	Long: `Patch the destination document with the source document. Matching parts
update, mismatched parts are skipped; the destination's structure never
changes shape.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, err := readValueDoc(args[0])
		if err != nil {
			return err
		}
		src, err := readValueDoc(args[1])
		if err != nil {
			return err
		}

		dst.Patch(&src)
		logger.Debug("patched", zap.String("dst", args[0]), zap.String("src", args[1]))

		if patchOutput != "" {
			if err := writeValueDoc(patchOutput, dst); err != nil {
				return err
			}
			color.New(color.FgGreen).Printf("wrote %s\n", patchOutput)
			return nil
		}

		data, err := codec.EncodeValueJSON(dst)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	},
}

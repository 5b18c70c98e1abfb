package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	kagami "github.com/reoring/kagami"
	"github.com/reoring/kagami/codec"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

var debug bool

var logger = zap.NewNop()

func main() {
	rootCmd := &cobra.Command{
		Use:   "kagami",
		Short: "Inspect and edit reflected value and type documents",
		Long: `kagami works with the tagged wire documents produced by the kagami
library: values carry their kinds, type graphs carry their node ids. Both
JSON and YAML documents are accepted, selected by file extension.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(patchCmd)
	rootCmd.AddCommand(schemaCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func readValueDoc(path string) (kagami.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return kagami.Value{}, err
	}
	logger.Debug("read value document", zap.String("path", path), zap.Int("bytes", len(data)))
	if isYAML(path) {
		return codec.DecodeValueYAML(data)
	}
	return codec.DecodeValueJSON(data)
}

func writeValueDoc(path string, v kagami.Value) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = codec.EncodeValueYAML(v)
	} else {
		data, err = codec.EncodeValueJSON(v)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readTypeDoc(path string) (kagami.TypeRoot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return kagami.TypeRoot{}, err
	}
	logger.Debug("read type document", zap.String("path", path), zap.Int("bytes", len(data)))
	if isYAML(path) {
		return codec.DecodeTypeYAML(data)
	}
	return codec.DecodeTypeJSON(data)
}

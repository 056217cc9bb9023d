// Package main provides the CLI entry point for toon: encode/decode/convert
// between JSON, YAML, and TOON, and infer a JSON Schema from a TOON document.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.toonfmt.dev/log"
	"go.toonfmt.dev/profile"
)

func main() {
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "toon",
		Short:         "Encode, decode, and convert Token-Oriented Object Notation documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	var profiler *profile.Profiler

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		handler, err := logCfg.NewHandler(os.Stderr)
		if err != nil {
			return err
		}

		slog.SetDefault(slog.New(handler))

		profiler = profCfg.NewProfiler()

		return profiler.Start()
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return profiler.Stop()
	}

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newConvertCmd(),
		newInferSchemaCmd(),
		newFmtCmd(),
		newVersionCmd(),
	)

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

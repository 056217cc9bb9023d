package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.toonfmt.dev/toon"
)

func newDecodeCmd() *cobra.Command {
	cfg := toon.NewDecodeConfig()

	var output string

	cmd := &cobra.Command{
		Use:   "decode [flags] [file...]",
		Short: "Decode a TOON document to JSON",
		Long: `decode reads a TOON document from each named file (or stdin for
"-" or no arguments), decodes it, and writes the equivalent JSON to stdout
or --output.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return runDecode(cfg, output, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")

	if err := cfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runDecode(cfg *toon.DecodeConfig, output string, args []string) error {
	opts, err := cfg.NewDecodeOptions()
	if err != nil {
		return err
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}

	for i, input := range inputs {
		v, err := toon.Decode(string(input), opts)
		if err != nil {
			return err
		}

		out, err := toon.ToJSON(v)
		if err != nil {
			return err
		}

		slog.Debug("decoded document", "input_index", i, "input_bytes", len(input), "output_bytes", len(out))

		if err := writeOutput(output, out); err != nil {
			return err
		}
	}

	return nil
}

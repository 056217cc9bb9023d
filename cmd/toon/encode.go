package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.toonfmt.dev/toon"
)

func newEncodeCmd() *cobra.Command {
	cfg := toon.NewEncodeConfig()

	var output string

	cmd := &cobra.Command{
		Use:   "encode [flags] [file...]",
		Short: "Encode JSON input to a TOON document",
		Long: `encode reads JSON from each named file (or stdin for "-" or no
arguments), encodes it to a TOON document, and writes the result to stdout
or --output.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return runEncode(cfg, output, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")

	if err := cfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runEncode(cfg *toon.EncodeConfig, output string, args []string) error {
	opts, err := cfg.NewEncodeOptions()
	if err != nil {
		return err
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}

	for i, input := range inputs {
		v, err := toon.FromJSON(input)
		if err != nil {
			return err
		}

		text, err := toon.Encode(v, opts)
		if err != nil {
			return err
		}

		slog.Debug("encoded document", "input_index", i, "input_bytes", len(input), "output_bytes", len(text))

		if err := writeOutput(output, []byte(text)); err != nil {
			return err
		}
	}

	return nil
}

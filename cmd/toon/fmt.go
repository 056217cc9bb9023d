package main

import (
	"github.com/spf13/cobra"

	"go.toonfmt.dev/toon"
)

func newFmtCmd() *cobra.Command {
	encCfg := toon.NewEncodeConfig()
	// --indent belongs to the encoder; the decoder's indent gets its own name
	// so both configs can register on one flag set.
	decCfg := toon.DecodeFlags{Indent: "input-indent", Strict: "strict", ExpandPaths: "expand-paths"}.NewDecodeConfig()

	var output string

	cmd := &cobra.Command{
		Use:   "fmt [flags] [file...]",
		Short: "Rewrite a TOON document in canonical form",
		Long: `fmt decodes a TOON document and re-encodes it, normalizing
indentation, delimiters, quoting, and number formatting to their canonical
form (spec.md §8 idempotence).`,
		RunE: func(_ *cobra.Command, args []string) error {
			return runFmt(encCfg, decCfg, output, args)
		},
	}

	encCfg.RegisterFlags(cmd.Flags())
	decCfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")

	return cmd
}

func runFmt(encCfg *toon.EncodeConfig, decCfg *toon.DecodeConfig, output string, args []string) error {
	decOpts, err := decCfg.NewDecodeOptions()
	if err != nil {
		return err
	}

	encOpts, err := encCfg.NewEncodeOptions()
	if err != nil {
		return err
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}

	for _, input := range inputs {
		v, err := toon.Decode(string(input), decOpts)
		if err != nil {
			return err
		}

		text, err := toon.Encode(v, encOpts)
		if err != nil {
			return err
		}

		if err := writeOutput(output, []byte(text)); err != nil {
			return err
		}
	}

	return nil
}

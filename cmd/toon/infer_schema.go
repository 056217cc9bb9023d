package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.toonfmt.dev/toon"
	"go.toonfmt.dev/toonschema"
)

func newInferSchemaCmd() *cobra.Command {
	// --indent and --strict belong to the schema config; the decoder's
	// flags get their own names so both can register on one flag set.
	decCfg := toon.DecodeFlags{Indent: "input-indent", Strict: "input-strict", ExpandPaths: "expand-paths"}.NewDecodeConfig()
	schemaCfg := toonschema.NewConfig()

	var from string

	cmd := &cobra.Command{
		Use:   "infer-schema [flags] [file...]",
		Short: "Infer a JSON Schema describing a TOON (or JSON) document",
		RunE: func(_ *cobra.Command, args []string) error {
			return runInferSchema(decCfg, schemaCfg, from, args)
		},
	}

	decCfg.RegisterFlags(cmd.Flags())
	schemaCfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&from, "from", "toon", "input format, one of: toon, json")

	if err := cmd.RegisterFlagCompletionFunc("from",
		cobra.FixedCompletions([]string{"toon", "json"}, cobra.ShellCompDirectiveNoFileComp)); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := schemaCfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runInferSchema(decCfg *toon.DecodeConfig, schemaCfg *toonschema.Config, from string, args []string) error {
	decOpts, err := decCfg.NewDecodeOptions()
	if err != nil {
		return err
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}

	for _, input := range inputs {
		v, err := decodeAs(from, input, decOpts)
		if err != nil {
			return err
		}

		schema := toonschema.Infer(v, schemaCfg.Options()...)

		indent := "  "
		if schemaCfg.Indent > 0 {
			indent = fmt.Sprintf("%*s", schemaCfg.Indent, "")
		}

		out, err := json.MarshalIndent(schema, "", indent)
		if err != nil {
			return err
		}

		if err := writeOutput(schemaCfg.Output, out); err != nil {
			return err
		}
	}

	return nil
}

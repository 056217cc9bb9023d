package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.toonfmt.dev/toon"
	"go.toonfmt.dev/toonyaml"
)

// ErrUnknownFormat is returned by convert when --from/--to names a format
// other than json, yaml, or toon.
var ErrUnknownFormat = errors.New("toon: unknown format")

func newConvertCmd() *cobra.Command {
	encCfg := toon.NewEncodeConfig()
	// --indent belongs to the encoder; the decoder's indent gets its own name
	// so both configs can register on one flag set.
	decCfg := toon.DecodeFlags{Indent: "input-indent", Strict: "strict", ExpandPaths: "expand-paths"}.NewDecodeConfig()

	var (
		from   string
		to     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert --from <json|yaml|toon> --to <json|yaml|toon> [file...]",
		Short: "Convert a document between JSON, YAML, and TOON",
		RunE: func(_ *cobra.Command, args []string) error {
			return runConvert(encCfg, decCfg, from, to, output, args)
		},
	}

	encCfg.RegisterFlags(cmd.Flags())
	decCfg.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&from, "from", "toon", "source format, one of: json, yaml, toon")
	cmd.Flags().StringVar(&to, "to", "toon", "destination format, one of: json, yaml, toon")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")

	if err := cmd.RegisterFlagCompletionFunc("from",
		cobra.FixedCompletions([]string{"json", "yaml", "toon"}, cobra.ShellCompDirectiveNoFileComp)); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := cmd.RegisterFlagCompletionFunc("to",
		cobra.FixedCompletions([]string{"json", "yaml", "toon"}, cobra.ShellCompDirectiveNoFileComp)); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runConvert(
	encCfg *toon.EncodeConfig, decCfg *toon.DecodeConfig,
	from, to, output string, args []string,
) error {
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
		v, err := decodeAs(from, input, decOpts)
		if err != nil {
			return err
		}

		out, err := encodeAs(to, v, encOpts)
		if err != nil {
			return err
		}

		if err := writeOutput(output, out); err != nil {
			return err
		}
	}

	return nil
}

func decodeAs(format string, data []byte, opts toon.DecodeOptions) (toon.Value, error) {
	switch format {
	case "toon":
		return toon.Decode(string(data), opts)
	case "json":
		return toon.FromJSON(data)
	case "yaml":
		return toonyaml.FromYAML(data)
	default:
		return toon.Null(), fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func encodeAs(format string, v toon.Value, opts toon.EncodeOptions) ([]byte, error) {
	switch format {
	case "toon":
		text, err := toon.Encode(v, opts)
		if err != nil {
			return nil, err
		}

		return []byte(text), nil
	case "json":
		return toon.ToJSON(v)
	case "yaml":
		return toonyaml.ToYAML(v)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

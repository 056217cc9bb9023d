package toon

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Delimiter identifies the document/active separator used for row and
// inline splitting and for string-quoting decisions (spec.md §3).
type Delimiter string

// The three delimiters TOON supports.
const (
	DelimiterComma Delimiter = "comma"
	DelimiterTab   Delimiter = "tab"
	DelimiterPipe  Delimiter = "pipe"
)

// Byte returns the literal byte this delimiter represents on the wire.
func (d Delimiter) Byte() byte {
	switch d {
	case DelimiterTab:
		return '\t'
	case DelimiterPipe:
		return '|'
	default:
		return ','
	}
}

// Symbol returns the header delimiter symbol as it appears inside "[N<sym>]"
// -- empty for comma, since comma is the default and carries no symbol.
func (d Delimiter) Symbol() string {
	switch d {
	case DelimiterTab:
		return "\t"
	case DelimiterPipe:
		return "|"
	default:
		return ""
	}
}

func delimiterFromByte(b byte) (Delimiter, bool) {
	switch b {
	case ',':
		return DelimiterComma, true
	case '\t':
		return DelimiterTab, true
	case '|':
		return DelimiterPipe, true
	default:
		return "", false
	}
}

// KeyFolding selects whether the encoder collapses single-child object
// chains into dotted paths (spec.md §4.6).
type KeyFolding string

// The two key-folding modes.
const (
	KeyFoldingOff  KeyFolding = "off"
	KeyFoldingSafe KeyFolding = "safe"
)

// ExpandPaths selects whether the decoder splits dotted object keys back
// into nested objects (spec.md §4.7).
type ExpandPaths string

// The two path-expansion modes.
const (
	ExpandPathsOff  ExpandPaths = "off"
	ExpandPathsSafe ExpandPaths = "safe"
)

// EncodeOptions is an immutable configuration for [Encode]. Construct with
// [DefaultEncodeOptions] and override fields, or build one via
// [EncodeConfig.NewEncodeOptions] from parsed CLI flags.
type EncodeOptions struct {
	// Indent is the number of spaces per depth level. Must be positive.
	Indent int
	// Delimiter is the document delimiter: participates in every quoting
	// decision and is the default active delimiter for every array.
	Delimiter Delimiter
	// KeyFolding enables single-key chain folding with identifier-only
	// segments.
	KeyFolding KeyFolding
	// FlattenDepth caps the number of segments a folded path may reach.
	// Zero disables folding outright; a negative value means unbounded.
	FlattenDepth int
}

// DefaultEncodeOptions returns the documented defaults from spec.md §6:
// indent 2, comma delimiter, key folding off, unbounded flatten depth.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Indent:       2,
		Delimiter:    DelimiterComma,
		KeyFolding:   KeyFoldingOff,
		FlattenDepth: -1,
	}
}

func (o EncodeOptions) foldingEnabled() bool {
	return o.KeyFolding == KeyFoldingSafe && o.FlattenDepth != 0
}

// DecodeOptions is an immutable configuration for [Decode]. Construct with
// [DefaultDecodeOptions] and override fields, or build one via
// [DecodeConfig.NewDecodeOptions] from parsed CLI flags.
type DecodeOptions struct {
	// Indent is the expected number of spaces per depth level.
	Indent int
	// Strict enables every strict-mode check in spec.md §4.7/§7.
	Strict bool
	// ExpandPaths enables dotted-identifier path expansion with deep merge.
	ExpandPaths ExpandPaths
}

// DefaultDecodeOptions returns the documented defaults from spec.md §6:
// indent 2, strict mode on, path expansion off.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		Indent:      2,
		Strict:      true,
		ExpandPaths: ExpandPathsOff,
	}
}

// --- CLI flag binding, following the teacher's Flags/Config split -------

// EncodeFlags holds CLI flag names for [EncodeConfig], letting callers
// customize names while keeping sensible defaults via [NewEncodeConfig].
type EncodeFlags struct {
	Indent       string
	Delimiter    string
	KeyFolding   string
	FlattenDepth string
}

// NewEncodeConfig creates a new [EncodeConfig] embedding these flag names.
func (f EncodeFlags) NewEncodeConfig() *EncodeConfig {
	return &EncodeConfig{Flags: f}
}

// EncodeConfig holds CLI flag values for encoder configuration.
//
// Create instances with [NewEncodeConfig] and register CLI flags with
// [EncodeConfig.RegisterFlags]. Use [EncodeConfig.NewEncodeOptions] to build
// the immutable [EncodeOptions] the codec takes.
type EncodeConfig struct {
	Flags        EncodeFlags
	Indent       int
	Delimiter    string
	KeyFolding   string
	FlattenDepth int
}

// NewEncodeConfig returns a new [EncodeConfig] with default flag names and
// the documented option defaults.
func NewEncodeConfig() *EncodeConfig {
	f := EncodeFlags{
		Indent:       "indent",
		Delimiter:    "delimiter",
		KeyFolding:   "key-folding",
		FlattenDepth: "flatten-depth",
	}

	return f.NewEncodeConfig()
}

// RegisterFlags adds encoder flags to the given [*pflag.FlagSet].
func (c *EncodeConfig) RegisterFlags(flags *pflag.FlagSet) {
	defaults := DefaultEncodeOptions()

	flags.IntVar(&c.Indent, c.Flags.Indent, defaults.Indent,
		"spaces per indentation level")
	flags.StringVar(&c.Delimiter, c.Flags.Delimiter, string(defaults.Delimiter),
		"document delimiter, one of: comma, tab, pipe")
	flags.StringVar(&c.KeyFolding, c.Flags.KeyFolding, string(defaults.KeyFolding),
		"key-folding mode, one of: off, safe")
	flags.IntVar(&c.FlattenDepth, c.Flags.FlattenDepth, defaults.FlattenDepth,
		"max segments in a folded key path (negative means unbounded)")
}

// RegisterCompletions registers shell completions for encoder flags on cmd.
func (c *EncodeConfig) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Delimiter,
		cobra.FixedCompletions([]string{"comma", "tab", "pipe"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Delimiter, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.KeyFolding,
		cobra.FixedCompletions([]string{"off", "safe"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.KeyFolding, err)
	}

	return nil
}

// NewEncodeOptions builds an [EncodeOptions] from this config's parsed
// values, validating the delimiter and key-folding strings.
func (c *EncodeConfig) NewEncodeOptions() (EncodeOptions, error) {
	delim, err := parseDelimiter(c.Delimiter)
	if err != nil {
		return EncodeOptions{}, err
	}

	folding, err := parseKeyFolding(c.KeyFolding)
	if err != nil {
		return EncodeOptions{}, err
	}

	return EncodeOptions{
		Indent:       c.Indent,
		Delimiter:    delim,
		KeyFolding:   folding,
		FlattenDepth: c.FlattenDepth,
	}, nil
}

// DecodeFlags holds CLI flag names for [DecodeConfig], letting callers
// customize names while keeping sensible defaults via [NewDecodeConfig].
type DecodeFlags struct {
	Indent      string
	Strict      string
	ExpandPaths string
}

// NewDecodeConfig creates a new [DecodeConfig] embedding these flag names.
func (f DecodeFlags) NewDecodeConfig() *DecodeConfig {
	return &DecodeConfig{Flags: f}
}

// DecodeConfig holds CLI flag values for decoder configuration.
//
// Create instances with [NewDecodeConfig] and register CLI flags with
// [DecodeConfig.RegisterFlags]. Use [DecodeConfig.NewDecodeOptions] to build
// the immutable [DecodeOptions] the codec takes.
type DecodeConfig struct {
	Flags       DecodeFlags
	Indent      int
	Strict      bool
	ExpandPaths string
}

// NewDecodeConfig returns a new [DecodeConfig] with default flag names and
// the documented option defaults.
func NewDecodeConfig() *DecodeConfig {
	f := DecodeFlags{
		Indent:      "indent",
		Strict:      "strict",
		ExpandPaths: "expand-paths",
	}

	return f.NewDecodeConfig()
}

// RegisterFlags adds decoder flags to the given [*pflag.FlagSet].
func (c *DecodeConfig) RegisterFlags(flags *pflag.FlagSet) {
	defaults := DefaultDecodeOptions()

	flags.IntVar(&c.Indent, c.Flags.Indent, defaults.Indent,
		"expected spaces per indentation level")
	flags.BoolVar(&c.Strict, c.Flags.Strict, defaults.Strict,
		"enforce strict-mode validation")
	flags.StringVar(&c.ExpandPaths, c.Flags.ExpandPaths, string(defaults.ExpandPaths),
		"path-expansion mode, one of: off, safe")
}

// RegisterCompletions registers shell completions for decoder flags on cmd.
func (c *DecodeConfig) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.ExpandPaths,
		cobra.FixedCompletions([]string{"off", "safe"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.ExpandPaths, err)
	}

	return nil
}

// NewDecodeOptions builds a [DecodeOptions] from this config's parsed
// values, validating the expand-paths string.
func (c *DecodeConfig) NewDecodeOptions() (DecodeOptions, error) {
	expand, err := parseExpandPaths(c.ExpandPaths)
	if err != nil {
		return DecodeOptions{}, err
	}

	return DecodeOptions{
		Indent:      c.Indent,
		Strict:      c.Strict,
		ExpandPaths: expand,
	}, nil
}

func parseDelimiter(s string) (Delimiter, error) {
	switch Delimiter(s) {
	case DelimiterComma, DelimiterTab, DelimiterPipe:
		return Delimiter(s), nil
	default:
		return "", fmt.Errorf("toon: unknown delimiter %q (want comma, tab, or pipe)", s)
	}
}

func parseKeyFolding(s string) (KeyFolding, error) {
	switch KeyFolding(s) {
	case KeyFoldingOff, KeyFoldingSafe:
		return KeyFolding(s), nil
	default:
		return "", fmt.Errorf("toon: unknown key-folding mode %q (want off or safe)", s)
	}
}

func parseExpandPaths(s string) (ExpandPaths, error) {
	switch ExpandPaths(s) {
	case ExpandPathsOff, ExpandPathsSafe:
		return ExpandPaths(s), nil
	default:
		return "", fmt.Errorf("toon: unknown expand-paths mode %q (want off or safe)", s)
	}
}

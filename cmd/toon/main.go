// Command toon converts between JSON and TOON on the command line.
//
// Usage:
//
//	toon encode [file]   JSON (stdin or file) -> TOON on stdout
//	toon decode [file]   TOON (stdin or file) -> JSON on stdout
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ondatra-labs/toon"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

type cliFlags struct {
	verbose    bool
	indentSize int
	delimiter  string
	keyFolding string
	strict     bool
	expandPath string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:           "toon",
		Short:         "Convert between JSON and TOON",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(newEncodeCmd(flags))
	root.AddCommand(newDecodeCmd(flags))

	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newEncodeCmd(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Convert JSON to TOON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, args, flags)
		},
	}
	registerEncoderFlags(cmd, flags)
	return cmd
}

func newDecodeCmd(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Convert TOON to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, flags)
		},
	}
	registerDecoderFlags(cmd, flags)
	return cmd
}

func registerEncoderFlags(cmd *cobra.Command, flags *cliFlags) {
	cmd.Flags().IntVar(&flags.indentSize, "indent-size", toon.DefaultEncoderConfig().IndentSize, "spaces per indentation level")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", "comma", "array delimiter: comma, tab, or pipe")
	cmd.Flags().StringVar(&flags.keyFolding, "key-folding", "none", "dotted-path key folding: none or safe")
}

func registerDecoderFlags(cmd *cobra.Command, flags *cliFlags) {
	cmd.Flags().BoolVar(&flags.strict, "strict", true, "enforce declared array lengths, row arity, and unique keys")
	cmd.Flags().StringVar(&flags.expandPath, "expand-paths", "none", "dotted-key expansion: none or safe")
}

func runEncode(cmd *cobra.Command, args []string, flags *cliFlags) error {
	log := newLogger(cmd.ErrOrStderr(), flags.verbose)

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	log.Debug("read input", "bytes", len(data))

	v, err := decodeJSON(data)
	if err != nil {
		return err
	}

	cfg, err := encoderConfigFromFlags(flags)
	if err != nil {
		return err
	}
	log.Debug("resolved encoder config", "indent_size", cfg.IndentSize, "delimiter", cfg.Delimiter, "key_folding", cfg.KeyFolding)

	out, err := toon.Encode(v, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runDecode(cmd *cobra.Command, args []string, flags *cliFlags) error {
	log := newLogger(cmd.ErrOrStderr(), flags.verbose)

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	log.Debug("read input", "bytes", len(data))

	cfg, err := decoderConfigFromFlags(flags)
	if err != nil {
		return err
	}
	log.Debug("resolved decoder config", "strict", cfg.Strict, "expand_paths", cfg.ExpandPaths)

	v, err := toon.Decode(string(data), cfg)
	if err != nil {
		return err
	}

	out, err := encodeJSON(v)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

func encoderConfigFromFlags(flags *cliFlags) (toon.EncoderConfig, error) {
	cfg := toon.DefaultEncoderConfig()
	cfg.IndentSize = flags.indentSize

	delim, err := parseDelimiter(flags.delimiter)
	if err != nil {
		return toon.EncoderConfig{}, err
	}
	cfg.Delimiter = delim

	switch flags.keyFolding {
	case "none":
		cfg.KeyFolding = toon.KeyFoldingNone
	case "safe":
		cfg.KeyFolding = toon.KeyFoldingSafe
	default:
		return toon.EncoderConfig{}, fmt.Errorf("toon: unknown --key-folding %q", flags.keyFolding)
	}

	return cfg, nil
}

func decoderConfigFromFlags(flags *cliFlags) (toon.DecoderConfig, error) {
	cfg := toon.DefaultDecoderConfig()
	cfg.Strict = flags.strict

	switch flags.expandPath {
	case "none":
		cfg.ExpandPaths = toon.PathExpansionNone
	case "safe":
		cfg.ExpandPaths = toon.PathExpansionSafe
	default:
		return toon.DecoderConfig{}, fmt.Errorf("toon: unknown --expand-paths %q", flags.expandPath)
	}

	return cfg, nil
}

func parseDelimiter(s string) (toon.Delimiter, error) {
	switch s {
	case "comma":
		return toon.Comma, nil
	case "tab":
		return toon.Tab, nil
	case "pipe":
		return toon.Pipe, nil
	default:
		return 0, fmt.Errorf("toon: unknown --delimiter %q", s)
	}
}

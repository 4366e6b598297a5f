package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/kmap/internal/config"
	"github.com/roach88/kmap/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DB      string
	Config  string

	cfg    config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "kmap.yaml"

// NewRootCommand creates the root command for the kmap CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "kmap",
		Short: "kmap - a map of headed notes",
		Long: `kmap stores notes as a tree of headed nodes with aliases and tags.

Nodes are addressed by heading paths: "/notes.todo" is the child todo of
the top-level node notes, "todo," is its parent and "/notes#urgent" narrows
a step to nodes tagged urgent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.load(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "database path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", DefaultConfigPath, "config file path")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewAliasCommand(opts))
	cmd.AddCommand(NewLsCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewRmCommand(opts))
	cmd.AddCommand(NewTagCommand(opts))
	cmd.AddCommand(NewMvCommand(opts))
	cmd.AddCommand(NewOrderCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// load resolves the effective config. Flags win over the file.
func (o *RootOptions) load(logOut io.Writer) error {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if o.DB != "" {
		cfg.Database = o.DB
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	o.cfg = cfg
	o.logger = cfg.Logger(logOut)
	return nil
}

// Logger returns the configured logger, discarding output before load.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// Execute runs the CLI with args and returns the process exit code.
// Errors are reported on stderr, or on stdout as a JSON response when
// --format json is in effect.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	formatter := &OutputFormatter{Format: "text", Writer: stderr}
	if f := cmd.PersistentFlags().Lookup("format"); f != nil && f.Value.String() == "json" {
		formatter = &OutputFormatter{Format: "json", Writer: stdout}
	}
	_ = formatter.Error(errorCode(err), err.Error(), nil)
	return GetExitCode(err)
}

// ErrCodeCommand marks failures that carry no graph error code.
const ErrCodeCommand = "COMMAND_ERROR"

func errorCode(err error) string {
	if code := ir.CodeOf(err); code != "" {
		return string(code)
	}
	return ErrCodeCommand
}

// graphError reports a failed graph operation.
func graphError(action string, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return WrapExitError(ExitFailure, action, err)
}

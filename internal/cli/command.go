// Package cli wires the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/foldersize/internal/config"
	"github.com/idelchi/foldersize/internal/dirstat"
	"github.com/idelchi/foldersize/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// TopOptions configures the top command.
type TopOptions struct {
	// Path is the directory whose subdirectories are ranked.
	Path string
	// Count is the number of folders to report.
	Count int
	// SuppressAccessErrors ignores access errors below the root.
	SuppressAccessErrors bool
	// Concurrency bounds concurrently scanned subdirectories (0=unbounded).
	Concurrency int
	// Output is the output format (table, json or paths).
	Output string
	// Debug enables debug logging.
	Debug bool
}

// ServeOptions configures the serve command.
type ServeOptions struct {
	// ConfigPath is an optional JSON configuration file.
	ConfigPath string
	// Config is the effective configuration after flags are applied.
	Config config.Config
}

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json", "paths"}

// Execute runs the CLI with the process arguments. Cancelling ctx aborts scans
// and shuts the server down.
func (c CLI) Execute(ctx context.Context) error {
	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "foldersize",
		Short: "Find the largest subfolders of a directory",
		Long: heredoc.Doc(`
			foldersize ranks the immediate subdirectories of a directory by the
			total size of everything below them.

			Use 'foldersize top' for a one-off scan, or 'foldersize serve' to expose
			the same query over HTTP at GET /api/v1/File.
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(topCommand(), serveCommand(), initCommand())

	return root
}

func topCommand() *cobra.Command {
	var options TopOptions

	cmd := &cobra.Command{
		Use:   "top [path]",
		Short: "Print the largest subfolders of path",
		Long: heredoc.Doc(`
			Scans every immediate subdirectory of path concurrently and prints the
			largest ones, largest first.

			Positional Arguments:
			  path   Directory to analyze. Defaults to the current directory.

			Access errors below path abort the scan unless --suppress-access-errors
			is set, in which case the inaccessible branches count as empty.
			Failing to read path itself is always an error.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Path = "."
			if len(args) == 1 {
				options.Path = args[0]
			}

			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			if options.Count < 1 {
				return errors.New("count must be positive")
			}

			if options.Concurrency < 0 {
				return errors.New("concurrency cannot be negative")
			}

			return top(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.IntVarP(&options.Count, "count", "n", dirstat.DefaultCount, "Number of folders to display")
	flags.BoolVarP(&options.SuppressAccessErrors, "suppress-access-errors", "s", false,
		"Treat inaccessible files and folders below path as empty")
	flags.StringVarP(&options.Output, "output", "o", "table", "Output format: table, json or paths")
	flags.IntVarP(&options.Concurrency, "concurrency", "c", 0,
		"Maximum subfolders scanned at once (0=one goroutine per subfolder)")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")

	return cmd
}

func serveCommand() *cobra.Command {
	var (
		options ServeOptions
		flagCfg = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the largest-folders query over HTTP",
		Long: heredoc.Doc(`
			Serves GET /api/v1/File?path=&count=&suppressAccessErrors= and answers
			with {"paths": [...]} ordered by size, largest first.

			Errors are answered with {"message": ...}: 400 when the path does not
			exist or a parameter is invalid, 401 on access errors, 500 otherwise.

			Settings are read from --config (JSON) when given; flags that are set
			explicitly take precedence over the file.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(options.ConfigPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = flagCfg.Addr
			}

			if flags.Changed("default-count") {
				cfg.DefaultCount = flagCfg.DefaultCount
			}

			if flags.Changed("concurrency") {
				cfg.Concurrency = flagCfg.Concurrency
			}

			if flags.Changed("shutdown-timeout") {
				cfg.ShutdownTimeout = flagCfg.ShutdownTimeout
			}

			if flags.Changed("debug") {
				cfg.Debug = flagCfg.Debug
			}

			if flags.Changed("log-format") {
				cfg.LogFormat = flagCfg.LogFormat
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			options.Config = cfg

			return serve(cmd.Context(), options, cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVar(&options.ConfigPath, "config", "", "Path to a JSON configuration file")
	flags.StringVar(&flagCfg.Addr, "addr", flagCfg.Addr, "Listen address")
	flags.IntVar(&flagCfg.DefaultCount, "default-count", flagCfg.DefaultCount,
		"Number of folders returned when a request has no count")
	flags.IntVarP(&flagCfg.Concurrency, "concurrency", "c", flagCfg.Concurrency,
		"Maximum subfolders scanned at once per request (0=unbounded)")
	flags.DurationVar(&flagCfg.ShutdownTimeout, "shutdown-timeout", flagCfg.ShutdownTimeout,
		"Grace period for in-flight requests on shutdown")
	flags.BoolVar(&flagCfg.Debug, "debug", flagCfg.Debug, "Enable debug logging")
	flags.StringVar(&flagCfg.LogFormat, "log-format", flagCfg.LogFormat, "Log format: text or json")

	return cmd
}

func initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Print the zsh integration script",
		Long: heredoc.Doc(`
			Prints a zsh function that pipes 'foldersize top -o paths' into fzf and
			changes into the selected folder. Add it to your shell with:

			  eval "$(foldersize init)"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rendered, err := integration.Render()
			if err != nil {
				return fmt.Errorf("rendering integration script: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)

			return err
		},
	}
}

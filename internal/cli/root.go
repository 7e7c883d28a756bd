package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/merge2048/internal/factory"
	filestorage "github.com/mcoot/merge2048/internal/storage/file"
)

// Options holds the process-level dependencies of the CLI
type Options struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Logger *slog.Logger
	// Level is raised to debug by --verbose (optional)
	Level *slog.LevelVar
}

func (o Options) withDefaults() Options {
	if o.In == nil {
		o.In = strings.NewReader("")
	}
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.Err == nil {
		o.Err = io.Discard
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return o
}

// env is the state shared by every command of one invocation
type env struct {
	opts   Options
	cfg    *Config
	app    *factory.App
	output *Output
}

// NewRootCmd creates the root command
func NewRootCmd(opts Options) *cobra.Command {
	opts = opts.withDefaults()
	e := &env{opts: opts, cfg: DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "merge2048",
		Short: "Play the 2048 sliding tile puzzle in the terminal",
		Long: `merge2048 is a terminal version of the 2048 puzzle.

Slide tiles with the arrow keys; equal tiles merge and add to the score.
Boards are saved as plain text files that can be loaded again with -i.

Keys: arrows or h/j/k/l move, u undo, r rotate clockwise,
R rotate counter-clockwise, s save, q quit.`,
		Args: usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runPlay(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(opts.In)
	rootCmd.SetOut(opts.Out)
	rootCmd.SetErr(opts.Err)

	// Global flags
	e.cfg.BindFlags(rootCmd.PersistentFlags())

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.PrintErrln(cmd.UsageString())
		return newUsageError(err)
	})

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd(e))
	rootCmd.AddCommand(newNewCmd(e))
	rootCmd.AddCommand(newShowCmd(e))
	rootCmd.AddCommand(newMoveCmd(e))
	rootCmd.AddCommand(newValidateCmd(e))
	rootCmd.AddCommand(newListCmd(e))

	return rootCmd
}

// setup finishes configuration once flags are parsed and wires the app
func (e *env) setup(cmd *cobra.Command) error {
	if seed := cmd.Flags().Lookup("seed"); seed != nil && seed.Changed {
		v, err := cmd.Flags().GetUint64("seed")
		if err != nil {
			return newUsageError(err)
		}
		e.cfg.Seed = &v
	}
	if err := e.cfg.Normalize(); err != nil {
		return err
	}
	if e.cfg.Verbose && e.opts.Level != nil {
		e.opts.Level.Set(slog.LevelDebug)
	}

	app, err := factory.New(factory.Config{
		Logger:      e.opts.Logger,
		StorageType: factory.StorageTypeFile,
		FileConfig:  filestorage.Config{Dir: e.cfg.BoardDir},
		Seed:        e.cfg.Seed,
	})
	if err != nil {
		return err
	}
	e.app = app
	e.output = NewOutput(e.cfg.Format, e.opts.Out, e.opts.Err, NewRenderer(e.opts.Out, e.cfg.Color))
	return nil
}

// usageArgs prints usage when the positional arguments are rejected
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			cmd.PrintErrln(cmd.UsageString())
			return newUsageError(err)
		}
		return nil
	}
}

// Run executes the CLI with args and returns the process exit code
func Run(ctx context.Context, args []string, opts Options) int {
	opts = opts.withDefaults()
	cmd := NewRootCmd(opts)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	format := FormatText
	if f := cmd.PersistentFlags().Lookup("format"); f != nil && f.Value.String() == FormatJSON {
		format = FormatJSON
	}
	return NewOutput(format, opts.Out, opts.Err, nil).PrintError(err)
}

// Execute runs the root command against the process's standard streams
func Execute(logger *slog.Logger, level *slog.LevelVar) int {
	if err := LoadEnvFile(".env"); err != nil {
		logger.Warn("could not load .env", slog.String("error", err.Error()))
	}
	return Run(context.Background(), os.Args[1:], Options{
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Logger: logger,
		Level:  level,
	})
}

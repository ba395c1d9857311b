// Package cli declares the chromaview command tree. It parses flags and
// resolves configuration; running a command is the job of the Handlers the
// caller supplies.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"chromaview/core/load"
	"chromaview/internal/clibase"
	"chromaview/internal/cliutil"
	"chromaview/internal/cmdutil"
	"chromaview/internal/config"
	"chromaview/internal/output"
	"chromaview/internal/version"
)

// Env is what every handler receives once flags and config are resolved.
type Env struct {
	Common clibase.Common
	Config config.Config
	Log    *log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Handlers run the commands.
type Handlers struct {
	Detect  func(ctx context.Context, env *Env, files []string) error
	Inspect func(ctx context.Context, env *Env, o InspectOptions, file string) error
	Export  func(ctx context.Context, env *Env, o ExportOptions, file string) error
	View    func(ctx context.Context, env *Env, o ViewOptions, file string) error
	Batch   func(ctx context.Context, env *Env, o BatchOptions, files []string) error
}

// flagKeys binds command flags to config keys, per command name ("" = any).
var flagKeys = map[string]map[string]string{
	"":        {"log-level": config.KeyLogLevel, "seed": config.KeySeed},
	"inspect": {"threshold": config.KeyQualityThresh},
	"batch":   {"threshold": config.KeyQualityThresh},
	"view": {
		"width":      config.KeyCanvasWidth,
		"height":     config.KeyCanvasHeight,
		"threshold":  config.KeyQualityThresh,
		"hit-radius": config.KeyHitRadius,
	},
}

// NewRootCommand builds the command tree around h.
func NewRootCommand(h Handlers) *cobra.Command {
	var (
		common clibase.Common
		env    = &Env{}
	)

	root := &cobra.Command{
		Use:   "chromaview",
		Short: "Decode and explore Sanger sequencing chromatograms (AB1/ABIF, SCF)",
		Long: `chromaview decodes ABI (.ab1) and SCF chromatogram files into base calls,
quality scores, peak positions and smoothed dye traces, and lays them out
for display with zoom, scroll, selection and base editing.

Undecodable input is replaced by synthetic data unless --strict is given.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if common.Examples {
				clibase.PrintExamples(cmd.OutOrStdout(), "chromaview", clibase.Examples)
				return clibase.ErrPrintedAndExitOK
			}
			if err := clibase.Validate(&common); err != nil {
				return clibase.UsageError{Err: err}
			}
			v := config.New()
			for _, scope := range []string{"", cmd.Name()} {
				for name, key := range flagKeys[scope] {
					if f := cmd.Flags().Lookup(name); f != nil {
						_ = v.BindPFlag(key, f)
					}
				}
			}
			cfg, err := config.Load(v, common.ConfigFile)
			if err != nil {
				return clibase.UsageError{Err: err}
			}
			if common.Strict {
				cfg.Policy = load.Strict
			}
			logger, err := cmdutil.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, common.Quiet)
			if err != nil {
				return clibase.UsageError{Err: err}
			}
			*env = Env{
				Common: common, Config: cfg, Log: logger,
				Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr(),
			}
			return nil
		},
	}
	root.SetVersionTemplate("chromaview version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clibase.UsageError{Err: err}
	})
	clibase.Register(root.PersistentFlags(), &common)

	root.AddCommand(
		detectCommand(env, h),
		inspectCommand(env, h),
		exportCommand(env, h),
		viewCommand(env, h),
		batchCommand(env, h),
	)
	return root
}

// usageArgs turns cobra's positional-argument errors into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return clibase.UsageError{Err: err}
		}
		return nil
	}
}

// run validates, then calls fn, marking its failures as runtime errors.
func run(validate func() error, fn func() error) error {
	if validate != nil {
		if err := validate(); err != nil {
			return clibase.UsageError{Err: err}
		}
	}
	err := fn()
	var (
		ue clibase.UsageError
		ec clibase.ExitCode
	)
	if err == nil || errors.As(err, &ue) || errors.As(err, &ec) {
		return err
	}
	return clibase.RuntimeError{Err: err}
}

func detectCommand(env *Env, h Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE|GLOB...",
		Short: "Print the container format of each file",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expand(args)
			if err != nil {
				return err
			}
			return run(nil, func() error { return h.Detect(cmd.Context(), env, files) })
		},
	}
}

func inspectCommand(env *Env, h Handlers) *cobra.Command {
	var (
		o        InspectOptions
		noHeader bool
	)
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Decode one file and print the record",
		Long:  "Decode one file ('-' reads stdin) and print the record as text, JSON, FASTA or a per-base TSV table.",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Header = !noHeader
			return run(o.Validate, func() error { return h.Inspect(cmd.Context(), env, o, args[0]) })
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.Output, "output", "o", output.FormatText, "output: text | json | fasta | tsv")
	f.BoolVar(&noHeader, "no-header", false, "suppress header line in TSV")
	f.IntVar(&o.LineWidth, "line-width", output.DefaultLineWidth, "FASTA line width")
	f.Int("threshold", 0, "low-quality cut-off (default from config: 20)")
	return cmd
}

func exportCommand(env *Env, h Handlers) *cobra.Command {
	var o ExportOptions
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export the sequence, or a base range, as FASTA",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o.Validate, func() error { return h.Export(cmd.Context(), env, o, args[0]) })
		},
	}
	cmd.Flags().StringVar(&o.Range, "range", "", "1-based inclusive base range START-END")
	cmd.Flags().IntVar(&o.LineWidth, "width", 0, "FASTA line width (default 60)")
	return cmd
}

func viewCommand(env *Env, h Handlers) *cobra.Command {
	var o ViewOptions
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Apply viewer actions and print the resulting frame geometry as JSON",
		Long: `Apply viewer actions to a decoded file and print the frame geometry (GeometryV1 JSON).

Actions run in this order: zoom, scroll/center, channel filter, select or
click, hover, edit, range highlight.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.HasClick = cmd.Flags().Changed("click")
			o.HasHover = cmd.Flags().Changed("hover")
			return run(o.Validate, func() error { return h.View(cmd.Context(), env, o, args[0]) })
		},
	}
	f := cmd.Flags()
	f.Float64Var(&o.Zoom, "zoom", 1, "zoom factor [0.5,20]")
	f.Float64Var(&o.Scroll, "scroll", 0, "scroll position [0,1]")
	f.IntVar(&o.Center, "center", -1, "trace sample to centre the window on")
	f.IntVar(&o.Select, "select", -1, "select base (0-based index)")
	f.Float64Var(&o.Click, "click", 0, "click at canvas x (selects the nearest base)")
	f.Float64Var(&o.Hover, "hover", 0, "hover at canvas x")
	f.StringVar(&o.Edit, "edit", "", "replace the selected base with this symbol")
	f.StringVar(&o.Range, "range", "", "highlight a 1-based inclusive base range START-END")
	f.StringVar(&o.Channels, "channels", "", "visible channels, e.g. AG (default all)")
	f.StringVarP(&o.Output, "output", "o", output.FormatJSON, "output: json | fasta (highlighted range)")
	addCanvasFlags(f)
	return cmd
}

func addCanvasFlags(f *pflag.FlagSet) {
	f.Int("width", 0, "canvas width in px (default from config: 1200)")
	f.Int("height", 0, "canvas height in px (default from config: 300)")
	f.Int("threshold", 0, "low-quality cut-off (default from config: 20)")
	f.Float64("hit-radius", 0, "click/hover radius in px (default from config: 50)")
}

func batchCommand(env *Env, h Handlers) *cobra.Command {
	var (
		o        BatchOptions
		noHeader bool
	)
	cmd := &cobra.Command{
		Use:   "batch FILE|GLOB...",
		Short: "Decode many files in parallel and stream one summary per file",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expand(args)
			if err != nil {
				return err
			}
			o.Header = !noHeader
			return run(o.Validate, func() error { return h.Batch(cmd.Context(), env, o, files) })
		},
	}
	f := cmd.Flags()
	f.IntVarP(&o.Threads, "threads", "t", 0, "worker threads (0 = all CPUs)")
	f.BoolVar(&o.Progress, "progress", false, "show a progress bar on stderr")
	f.StringVarP(&o.Output, "output", "o", output.FormatJSONL, "output: jsonl | tsv")
	f.BoolVar(&noHeader, "no-header", false, "suppress header line in TSV")
	f.BoolVar(&o.SkipMock, "skip-mock", false, "omit files that fell back to mock data")
	f.Int("threshold", 0, "low-quality cut-off (default from config: 20)")
	return cmd
}

// expand resolves globs among positionals.
func expand(args []string) ([]string, error) {
	files, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return nil, clibase.UsageError{Err: err}
	}
	return files, nil
}

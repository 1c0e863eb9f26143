package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/sift/pkg/sift/chart"
	"github.com/jamesainslie/sift/pkg/sift/config"
	"github.com/jamesainslie/sift/pkg/sift/logging"
	"github.com/jamesainslie/sift/pkg/sift/output"
)

// app holds the state shared by the root command and its subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// interactive reports whether the path may be asked for.
	interactive func() bool
	// renderer builds the chart renderer for a loaded config.
	renderer func(cfg *config.Config) chart.Renderer
}

func newApp() *app {
	return &app{
		v:           viper.New(),
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: stdioIsTerminal,
		renderer: func(cfg *config.Config) chart.Renderer {
			return chart.NewPNGRenderer(cfg.Charts.Width, cfg.Charts.Height)
		},
	}
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sift [path]",
		Short: "Analyze a directory tree by file type and size",
		Long: heredoc.Doc(`
			Sift walks a directory, classifies every file by extension into a
			category and reports how files and bytes are distributed.

			Alongside the report it writes three charts into the output directory:
			file_size_histogram.png, file_type_distribution.png and file_size_cdf.png.
			Files whose extension matches no category are listed in
			other_category_analysis.txt.

			Without a path argument sift asks for one when run in a terminal and
			falls back to default_path from the config file otherwise.
		`),
		Example: heredoc.Doc(`
			sift                      # prompt for a directory
			sift ~/Downloads          # analyze a specific directory
			sift -o pretty .          # styled report
			sift -o json --no-charts  # machine readable, no images
			sift -o template --template '{{.TotalFiles}} files{{"\n"}}' .
			sift config show          # show configuration
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}

	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/sift/config.yaml)")
	flags.StringP("output", "o", output.DefaultFormat, fmt.Sprintf("report format (%s)", joinFormats()))
	flags.String("template", "", "Go template for -o template")
	flags.String("out-dir", config.DefaultOutDir, "directory for charts and side reports")
	flags.Bool("no-charts", false, "skip chart rendering")
	flags.BoolP("quiet", "q", false, "print only the report")
	flags.BoolP("verbose", "v", false, "debug logging")
	flags.String("log-format", config.DefaultLogFormat, "log format (text, json, logfmt)")

	_ = a.v.BindPFlag("output", flags.Lookup("output"))
	_ = a.v.BindPFlag("template", flags.Lookup("template"))
	_ = a.v.BindPFlag("out_dir", flags.Lookup("out-dir"))
	_ = a.v.BindPFlag("no_charts", flags.Lookup("no-charts"))
	_ = a.v.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = a.v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	a := newApp()
	cmd := newRootCmd(a)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errPromptCancelled) {
		a.printError("%v", err)
	}
	return err
}

// loadConfig merges the config file, flags and defaults and starts logging.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, err
	}

	if a.getNoCharts() {
		cfg.Charts.Enabled = false
	}
	switch {
	case a.getVerbose():
		cfg.Logging.Level = logging.LevelDebug.String()
	case a.getQuiet():
		cfg.Logging.Level = logging.LevelError.String()
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     a.stderr,
		Path:       cfg.Logging.Path,
		Components: cfg.Logging.Components,
	}); err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	return cfg, nil
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logging.Close() }()

	path, err := a.resolvePath(args, cfg)
	if err != nil {
		return err
	}

	opts := runOptions{
		Path:     path,
		Output:   cfg.Output,
		Template: a.v.GetString("template"),
		OutDir:   cfg.OutDir,
		Charts:   cfg.Charts.Enabled,
		Bins:     cfg.Charts.Bins,
		Quiet:    a.getQuiet(),
		Progress: !a.getQuiet() && writerIsTerminal(a.stderr),
	}
	return analyze(cmd.Context(), opts, a.renderer(cfg), a.stdout, a.stderr)
}

// resolvePath picks the directory to analyze: the argument, an interactive
// answer, or the configured default.
func (a *app) resolvePath(args []string, cfg *config.Config) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if a.interactive() {
		return promptPath(a.stdin, a.stdout, cfg.DefaultPath)
	}
	return cfg.DefaultPath, nil
}

// getVerbose returns true if verbose mode is enabled.
func (a *app) getVerbose() bool {
	return a.v.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func (a *app) getQuiet() bool {
	return a.v.GetBool("quiet")
}

func (a *app) getNoCharts() bool {
	return a.v.GetBool("no_charts")
}

// printError prints an error message to stderr.
func (a *app) printError(format string, args ...interface{}) {
	fmt.Fprintf(a.stderr, "Error: "+format+"\n", args...)
}

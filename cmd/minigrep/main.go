// Command minigrep prints the lines of a file that contain a query string.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/phyten/minigrep/internal/config"
	"github.com/phyten/minigrep/internal/engine"
	"github.com/phyten/minigrep/internal/engine/opts"
	"github.com/phyten/minigrep/internal/output"
	"github.com/phyten/minigrep/internal/termcolor"
)

// app carries the process environment so tests can swap it out.
type app struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	env     map[string]string
	workDir string
}

func main() {
	wd, _ := os.Getwd()
	a := &app{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		env:     termcolor.EnvMap(os.Environ()),
		workDir: wd,
	}
	os.Exit(run(a, os.Args[1:]))
}

// usageError marks problems with the command line itself.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func run(a *app, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var argErr *config.ArgumentError
	var flagErr *usageError
	if errors.As(err, &argErr) || errors.As(err, &flagErr) {
		fmt.Fprintf(a.stderr, "Problem parsing arguments: %v\n", err)
		return 1
	}
	fmt.Fprintf(a.stderr, "Runtime Error : %v\n", err)
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minigrep [flags] QUERY FILE",
		Short: "Print the lines of FILE that contain QUERY",
		Long: `Print the lines of FILE (or stdin when FILE is "-") that contain QUERY.

Settings are read from .minigrep.{yaml,yml,toml,json}, then MINIGREP_*
environment variables (IGNORE_CASE and SHOW_LINE_NUMBERS are honoured when
set to anything), then flags.`,
		Args: func(_ *cobra.Command, args []string) error {
			return config.CheckArgs(args, 2)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, args[0], args[1])
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := cmd.PersistentFlags()
	pf.BoolP("ignore-case", "i", false, "match regardless of case")
	pf.BoolP("line-numbers", "n", false, `prefix each line with "<index> : "`)
	pf.Bool("highlight", true, "mark the matched text (lines are trimmed when off)")
	pf.String("marker", "auto", "highlight marker: auto|ansi|bracket|none")
	pf.Int("max-bytes", opts.DefaultMaxBytes, "largest input accepted, in bytes")
	pf.String("config", "", "config file (default: search .minigrep.* upwards, then XDG and HOME)")
	pf.BoolP("verbose", "v", false, "log debug details to stderr")

	f := cmd.Flags()
	f.String("color", "auto", "color output: auto|always|never")
	f.StringP("output", "o", "plain", "output format: plain|table|json|ndjson|csv|markdown|html")
	f.Int("max-width", 0, "truncate plain/table lines to N columns (0 = no limit)")

	cmd.AddCommand(newServeCmd(a))
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, query, path string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(a.stderr, verbose)

	settings, source, err := a.resolveSettings(cmd.Flags())
	if err != nil {
		return err
	}
	if source != "" {
		logger.WithField("config", source).Debug("loaded config file")
	}
	logger.Debugf("Query : %q; File path : %s", query, path)

	o := opts.Options{Query: query}
	settings.ApplyToOptions(&o)

	text, err := a.readInput(path, o.MaxBytes)
	if err != nil {
		return err
	}

	useColor := a.colorEnabled(o.Color)
	var terminal engine.Marker
	if useColor {
		style := termcolor.HighlightStyle(termcolor.DetectScheme(a.env), termcolor.DetectProfile(a.env))
		terminal = termcolor.Marker(style, true)
	}
	cfg := o.EngineConfig(output.SelectMarker(o.Marker, o.Output, terminal))
	if o.Output == output.FormatTable {
		// the table has its own LINE column
		cfg.LineNumbers = false
	}

	res := engine.Run(cfg, text)
	logger.WithFields(logrus.Fields{"lines": res.Lines, "total": res.Total}).Debug("search finished")

	if res.Total == 0 && (o.Output == output.FormatPlain || o.Output == output.FormatTable) {
		return a.noMatches(useColor)
	}
	return output.Write(a.stdout, o.Output, res, output.Options{
		Query:    query,
		MaxWidth: o.MaxWidth,
		Color:    useColor,
	})
}

func (a *app) noMatches(useColor bool) error {
	notice := color.New(color.FgYellow)
	if useColor {
		notice.EnableColor()
	} else {
		notice.DisableColor()
	}
	if _, err := fmt.Fprintln(a.stdout); err != nil {
		return err
	}
	_, err := notice.Fprintln(a.stdout, "No matches found")
	return err
}

// readInput reads path, or stdin for "-", refusing anything over limit bytes.
func (a *app) readInput(path string, limit int) (string, error) {
	var r io.Reader
	if path == "-" {
		r = a.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > limit {
		return "", fmt.Errorf("%s: input exceeds max_bytes (%d)", path, limit)
	}
	return string(data), nil
}

func (a *app) colorEnabled(mode string) bool {
	m, err := termcolor.ParseMode(mode)
	if err != nil {
		return false
	}
	var stdout *os.File
	if f, ok := a.stdout.(*os.File); ok {
		stdout = f
	}
	return termcolor.Resolve(m, stdout, a.env)
}

func (a *app) lookupEnv(key string) (string, bool) {
	v, ok := a.env[key]
	return v, ok
}

// resolveSettings merges defaults < config file < environment < flags and
// returns the config file used, if any.
func (a *app) resolveSettings(fs *pflag.FlagSet) (config.Settings, string, error) {
	explicit, _ := fs.GetString("config")
	if explicit == "" {
		explicit, _ = a.lookupEnv(config.ExplicitPathEnv)
	}
	xdg, _ := a.lookupEnv("XDG_CONFIG_HOME")
	home, _ := a.lookupEnv("HOME")
	path, _, err := config.Find(a.workDir, explicit, xdg, home)
	if err != nil {
		return config.Settings{}, "", fmt.Errorf("config: %w", err)
	}
	fileLayer, err := config.Load(path)
	if err != nil {
		return config.Settings{}, "", fmt.Errorf("config: %w", err)
	}
	envLayer, err := config.FromEnv(a.lookupEnv)
	if err != nil {
		return config.Settings{}, "", fmt.Errorf("environment: %w", err)
	}
	merged := config.Merge(config.SettingsFromOptions(opts.Defaults()), fileLayer, envLayer, flagLayer(fs))
	settings, err := config.Normalize(merged)
	if err != nil {
		return config.Settings{}, "", &usageError{err: err}
	}
	return settings, path, nil
}

// flagLayer holds only the flags given on the command line, so unset flags
// do not mask the file and environment layers.
func flagLayer(fs *pflag.FlagSet) config.Config {
	var c config.Config
	boolFlag := func(name string) *bool {
		if !fs.Changed(name) {
			return nil
		}
		v, err := fs.GetBool(name)
		if err != nil {
			return nil
		}
		return &v
	}
	stringFlag := func(name string) *string {
		if !fs.Changed(name) {
			return nil
		}
		v, err := fs.GetString(name)
		if err != nil {
			return nil
		}
		return &v
	}
	intFlag := func(name string) *int {
		if !fs.Changed(name) {
			return nil
		}
		v, err := fs.GetInt(name)
		if err != nil {
			return nil
		}
		return &v
	}
	c.Search.IgnoreCase = boolFlag("ignore-case")
	c.Search.Highlight = boolFlag("highlight")
	c.Search.LineNumbers = boolFlag("line-numbers")
	c.Search.MaxBytes = intFlag("max-bytes")
	c.Display.Marker = stringFlag("marker")
	c.Display.Color = stringFlag("color")
	c.Display.Output = stringFlag("output")
	c.Display.MaxWidth = intFlag("max-width")
	return c
}

// pattern: Imperative Shell
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"projpick/internal/cli"
	"projpick/internal/config"
	"projpick/internal/launch"
	"projpick/internal/logging"
	"projpick/internal/session"
	"projpick/internal/tui"
)

var version = "dev"

// options holds the raw flag values. Only flags the user actually set
// override the config file.
type options struct {
	configDir string
	root      string
	depth     int
	history   string
	recent    int
	theme     string
	logLevel  string
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("projpick", flag.ContinueOnError)
	// Stop at the first positional arg so flags of the launched command
	// (e.g. "code --new-window %F") are left alone.
	fs.SetInterspersed(false)

	fs.StringVarP(&opts.configDir, "config-dir", "c", "", "config directory (default: ~/.config/projpick)")
	fs.StringVarP(&opts.root, "root", "r", "", "directory to search for projects (default: ~/projects)")
	fs.IntVarP(&opts.depth, "depth", "d", 0, "maximum search depth below root (default: 2)")
	fs.StringVar(&opts.history, "history", "", "history file (default: ~/.projects_history)")
	fs.IntVarP(&opts.recent, "recent", "n", 0, "length of each recent list (default: 3)")
	fs.StringVar(&opts.theme, "theme", "", "color theme: latte, frappe, macchiato, mocha")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	return fs
}

// overrides returns the config overrides for the flags set on fs.
func (o *options) overrides(fs *flag.FlagSet) config.Overrides {
	var ov config.Overrides
	if fs.Changed("root") {
		ov.Root = &o.root
	}
	if fs.Changed("depth") {
		ov.Depth = &o.depth
	}
	if fs.Changed("history") {
		ov.HistoryFile = &o.history
	}
	if fs.Changed("recent") {
		ov.Recent = &o.recent
	}
	if fs.Changed("theme") {
		ov.Theme = &o.theme
	}
	if fs.Changed("log-level") {
		ov.LogLevel = &o.logLevel
	}
	return ov
}

// subcommandArgs returns the args to try as a subcommand. Args after a
// leading "--" are always a launch command.
func subcommandArgs(fs *flag.FlagSet) []string {
	if fs.ArgsLenAtDash() == 0 {
		return nil
	}
	return fs.Args()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		cli.BuildApp(version, nil, logging.NopProvider(), stdout).PrintHelp(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := loadConfig(opts.configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	cfg.Apply(opts.overrides(fs))
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: invalid config: %v\n", err)
		return 1
	}

	logs, closeLogs := openLogs(opts.configDir, cfg.LogLevel, stderr)
	defer closeLogs()

	app := cli.BuildApp(version, &cfg, logs, stdout)
	handled, err := app.Execute(subcommandArgs(fs), stderr)
	if handled {
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	template, err := launch.TemplateFromArgs(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg.Apply(config.Overrides{Command: template})

	return runPicker(&cfg, logs, stdout, stderr)
}

// loadConfig loads the configuration from the specified directory or default location.
func loadConfig(configDir string) (config.Config, error) {
	if configDir != "" {
		return config.LoadFromDir(configDir)
	}
	return config.Load()
}

// openLogs starts file logging in the state directory. The picker still
// runs when the log file cannot be opened.
func openLogs(configDir, level string, stderr io.Writer) (logging.LoggerProvider, func()) {
	logPath := filepath.Join(config.ResolveStateDir(configDir), "projpick.log")

	logManager, err := logging.NewManager(logging.Config{
		FilePath:   logPath,
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Level:      level,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
		return logging.NopProvider(), func() {}
	}
	return logManager, func() { _ = logManager.Close() }
}

// runPicker runs discovery, the interactive search and the launch.
func runPicker(cfg *config.Config, logs logging.LoggerProvider, stdout, stderr io.Writer) int {
	appLogger := logs.For("app")
	appLogger.Info("application starting", "root", cfg.ResolvedRoot(), "version", version)

	env, err := cli.Prepare(cfg, logs)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	s := session.New(env.Candidates, env.RecentOpened, env.RecentModified)
	model := tui.NewModel(s, cfg.Theme, logs.For("tui"))

	outcome, err := tui.Run(model, nil, stderr)
	if err != nil {
		appLogger.Error("picker exited with error", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !outcome.Confirmed() {
		appLogger.Info("application stopped", "outcome", outcome.State.String())
		return 0
	}

	launcher := launch.NewLauncher(launch.Config{
		Template: cfg.Command,
		Stdin:    os.Stdin,
		Stdout:   stdout,
		Stderr:   stderr,
	}, logs.For("launch"))

	if err := launchAndRecord(context.Background(), launcher, env.History, outcome.Project); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}

	appLogger.Info("application stopped", "outcome", outcome.State.String(), "project", outcome.Project)
	return 0
}

// recorder is the history side of a launch.
type recorder interface {
	Record(project string) error
}

// launchAndRecord launches project and adds it to the history. A command
// that ran but exited non-zero still counts as opened; one that could not
// start does not.
func launchAndRecord(ctx context.Context, launcher *launch.Launcher, history recorder, project string) error {
	launchErr := launcher.Launch(ctx, project)

	var exitErr *launch.ExitError
	if launchErr != nil && !errors.As(launchErr, &exitErr) {
		return launchErr
	}

	if err := history.Record(project); err != nil {
		return errors.Join(launchErr, fmt.Errorf("record history: %w", err))
	}
	return launchErr
}

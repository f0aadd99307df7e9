// pattern: Imperative Shell
package cli

import (
	"fmt"
	"io"

	"projpick/internal/config"
	"projpick/internal/discovery"
	"projpick/internal/logging"
	"projpick/internal/recency"
)

// Environment is everything the picker needs, gathered once at startup.
type Environment struct {
	Projects       []discovery.Project
	Candidates     []string
	RecentOpened   []string
	RecentModified []string
	History        *recency.History
}

// Prepare discovers projects under the configured root and derives both
// recency lists. Any error here aborts startup.
func Prepare(cfg *config.Config, logs logging.LoggerProvider) (*Environment, error) {
	logger := logs.For("app")

	projects := discoverProjects(cfg, logs)
	candidates := discovery.Paths(projects)

	modified, err := recency.RankByModTime(candidates, cfg.Recent)
	if err != nil {
		logger.Error("ranking by modification time failed", "error", err)
		return nil, fmt.Errorf("rank projects: %w", err)
	}

	history := recency.NewHistory(cfg.ResolvedHistoryFile(), logs.For("history"))
	opened, err := history.Recent(cfg.Recent)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	return &Environment{
		Projects:       projects,
		Candidates:     candidates,
		RecentOpened:   opened,
		RecentModified: modified,
		History:        history,
	}, nil
}

func discoverProjects(cfg *config.Config, logs logging.LoggerProvider) []discovery.Project {
	root := cfg.ResolvedRoot()
	scanner := discovery.NewScanner(logs.For("discovery"), cfg.Markers...)
	projects := scanner.Discover(root, cfg.Depth)
	logs.For("app").Info("discovered projects", "count", len(projects), "root", root, "depth", cfg.Depth)
	return projects
}

// BuildApp creates the CLI application with its subcommands. Output goes to
// stdout.
func BuildApp(version string, cfg *config.Config, logs logging.LoggerProvider, stdout io.Writer) *App {
	app := NewApp(version)

	app.AddCommand(&Command{
		Name:    "list",
		Summary: "Print every discovered project path",
		Usage:   "Usage: projpick list",
		Run: func(args []string) error {
			return runListCommand(cfg, logs, stdout)
		},
	})

	app.AddCommand(&Command{
		Name:    "recent",
		Summary: "Print recently opened and recently modified projects",
		Usage:   "Usage: projpick recent",
		Run: func(args []string) error {
			return runRecentCommand(cfg, logs, stdout)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: projpick version",
		Run: func(args []string) error {
			_, err := fmt.Fprintln(stdout, version)
			return err
		},
	})

	return app
}

func runListCommand(cfg *config.Config, logs logging.LoggerProvider, stdout io.Writer) error {
	for _, p := range discoverProjects(cfg, logs) {
		if _, err := fmt.Fprintln(stdout, p.Path); err != nil {
			return err
		}
	}
	return nil
}

// runRecentCommand prints the cycling order: opened projects, then modified
// ones, each line tagged with its list.
func runRecentCommand(cfg *config.Config, logs logging.LoggerProvider, stdout io.Writer) error {
	env, err := Prepare(cfg, logs)
	if err != nil {
		return err
	}
	for _, p := range env.RecentOpened {
		if _, err := fmt.Fprintf(stdout, "opened\t%s\n", p); err != nil {
			return err
		}
	}
	for _, p := range env.RecentModified {
		if _, err := fmt.Fprintf(stdout, "modified\t%s\n", p); err != nil {
			return err
		}
	}
	return nil
}

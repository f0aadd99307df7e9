// pattern: Functional Core
package cli

import (
	"fmt"
	"io"
	"slices"
)

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Run     func(args []string) error
}

// App is the set of subcommands. Arguments that do not name a command are
// left for the picker to use as the launch command.
type App struct {
	commands map[string]*Command
	order    []string
	version  string
}

// NewApp creates a new CLI application with the given version.
func NewApp(version string) *App {
	return &App{
		commands: make(map[string]*Command),
		version:  version,
	}
}

// AddCommand registers a command. Help lists commands in registration order.
func (a *App) AddCommand(cmd *Command) {
	if _, exists := a.commands[cmd.Name]; !exists {
		a.order = append(a.order, cmd.Name)
	}
	a.commands[cmd.Name] = cmd
}

// Lookup returns the command registered under name.
func (a *App) Lookup(name string) (*Command, bool) {
	cmd, ok := a.commands[name]
	return cmd, ok
}

// Execute runs the command named by args[0]. It reports handled=false when
// args are empty or do not name a command, in which case the caller starts
// the picker.
func (a *App) Execute(args []string, stderr io.Writer) (handled bool, err error) {
	if len(args) == 0 {
		return false, nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return false, nil
	}

	if slices.Contains(args[1:], "--help") || slices.Contains(args[1:], "-h") {
		fmt.Fprintf(stderr, "%s\n", cmd.Usage)
		return true, nil
	}

	if err := cmd.Run(args[1:]); err != nil {
		return true, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return true, nil
}

// PrintHelp prints the top-level help text.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: projpick [options] [command...]\n")
	fmt.Fprintf(w, "       projpick [options] <subcommand>\n\n")
	fmt.Fprintf(w, "Pick a project interactively, then run command with %%F replaced by its\n")
	fmt.Fprintf(w, "path. Without a command the chosen path is printed. Use -- before a\n")
	fmt.Fprintf(w, "command whose name clashes with a subcommand.\n\n")
	fmt.Fprintf(w, "Subcommands:\n")

	for _, name := range a.order {
		cmd := a.commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}

	fmt.Fprintf(w, "\nOptions:\n")
}

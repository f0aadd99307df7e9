// pattern: Imperative Shell

package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"projpick/internal/logging"
)

// PathPlaceholder is replaced with the chosen project path in every token.
const PathPlaceholder = "%F"

// ParseTemplate splits a shell-style command string into tokens.
func ParseTemplate(s string) ([]string, error) {
	tokens, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", s, err)
	}
	return tokens, nil
}

// TemplateFromArgs builds a template from positional arguments. A single
// argument containing whitespace is treated as a whole command line.
func TemplateFromArgs(args []string) ([]string, error) {
	if len(args) == 1 && strings.ContainsAny(args[0], " \t") {
		return ParseTemplate(args[0])
	}
	return args, nil
}

// Expand substitutes every occurrence of PathPlaceholder in every token.
func Expand(template []string, path string) []string {
	out := make([]string, len(template))
	for i, tok := range template {
		out[i] = strings.ReplaceAll(tok, PathPlaceholder, path)
	}
	return out
}

// ExitError reports a launched command that ran but exited non-zero.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// Config describes how the chosen project is handed off.
type Config struct {
	Template []string // empty: print the path instead of executing
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// Launcher runs the configured command against a chosen project.
type Launcher struct {
	cfg    Config
	logger *logging.ScopedLogger
}

// NewLauncher creates a launcher. Nil streams default to the process's own.
func NewLauncher(cfg Config, logger *logging.ScopedLogger) *Launcher {
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Launcher{cfg: cfg, logger: logger}
}

// PrintOnly reports whether the launcher writes the path instead of executing.
func (l *Launcher) PrintOnly() bool {
	return len(l.cfg.Template) == 0
}

// Launch runs the command in the foreground with stdio attached and blocks
// until it exits. A start failure is returned as is; a non-zero exit is
// returned as *ExitError.
func (l *Launcher) Launch(ctx context.Context, path string) error {
	if l.PrintOnly() {
		l.logger.Debug("printing project path", "path", path)
		_, err := fmt.Fprintln(l.cfg.Stdout, path)
		return err
	}

	argv := Expand(l.cfg.Template, path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = l.cfg.Stdin
	cmd.Stdout = l.cfg.Stdout
	cmd.Stderr = l.cfg.Stderr

	l.logger.Info("launching command", "binary", argv[0], "args", fmt.Sprintf("%v", argv[1:]), "path", path)

	if err := cmd.Start(); err != nil {
		l.logger.Error("failed to start command", "error", err, "binary", argv[0])
		return fmt.Errorf("start %s: %w", argv[0], err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			l.logger.Warn("command exited", "binary", argv[0], "exit_code", code)
			return &ExitError{Command: argv[0], Code: code}
		}
		l.logger.Error("command wait failed", "error", err, "binary", argv[0])
		return fmt.Errorf("wait %s: %w", argv[0], err)
	}

	l.logger.Info("command exited cleanly", "binary", argv[0])
	return nil
}

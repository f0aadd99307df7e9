// pattern: Functional Core

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"projpick/internal/launch"
)

const appName = "projpick"

// Config is the explicit configuration passed into discovery, recency and
// the launcher at construction.
type Config struct {
	Root        string          `yaml:"root" toml:"root"`
	Depth       int             `yaml:"depth" toml:"depth"`
	Markers     []string        `yaml:"markers" toml:"markers"`
	HistoryFile string          `yaml:"history_file" toml:"history_file"`
	Recent      int             `yaml:"recent" toml:"recent"`
	Command     CommandTemplate `yaml:"command" toml:"command"`
	Theme       string          `yaml:"theme" toml:"theme"`
	LogLevel    string          `yaml:"log_level" toml:"log_level"`
}

// CommandTemplate is the launch command. In a config file it may be written
// either as a list of tokens or as a single shell-style string.
type CommandTemplate []string

// UnmarshalYAML accepts a scalar string or a sequence of strings.
func (c *CommandTemplate) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		tokens, err := launch.ParseTemplate(value.Value)
		if err != nil {
			return fmt.Errorf("command: %w", err)
		}
		*c = tokens
		return nil
	case yaml.SequenceNode:
		var tokens []string
		if err := value.Decode(&tokens); err != nil {
			return fmt.Errorf("command: %w", err)
		}
		*c = tokens
		return nil
	default:
		return fmt.Errorf("command: expected string or list, line %d", value.Line)
	}
}

// UnmarshalTOML accepts a string or an array of strings.
func (c *CommandTemplate) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		tokens, err := launch.ParseTemplate(v)
		if err != nil {
			return fmt.Errorf("command: %w", err)
		}
		*c = tokens
		return nil
	case []any:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("command: expected string token, got %T", item)
			}
			tokens = append(tokens, s)
		}
		*c = tokens
		return nil
	default:
		return fmt.Errorf("command: expected string or array, got %T", data)
	}
}

// Overrides carries values set on the command line. Nil fields are unset.
type Overrides struct {
	Root        *string
	Depth       *int
	HistoryFile *string
	Recent      *int
	Theme       *string
	LogLevel    *string
	Command     []string
}

func DefaultConfig() Config {
	return Config{
		Root:        "~/projects",
		Depth:       2,
		Markers:     []string{".git"},
		HistoryFile: "~/.projects_history",
		Recent:      3,
		Theme:       "mocha",
		LogLevel:    "info",
	}
}

// Load reads config.yaml, or config.toml when no YAML file exists, from the
// default config directory.
func Load() (Config, error) {
	return LoadFromDir(getConfigDir())
}

// LoadFromDir loads config.yaml or config.toml from dir. A directory with
// neither file yields the defaults.
func LoadFromDir(dir string) (Config, error) {
	yamlPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return LoadFrom(yamlPath)
	}
	return LoadFrom(filepath.Join(dir, "config.toml"))
}

// LoadFrom loads a single config file, choosing the decoder by extension.
// A missing file is not an error.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("parse %s: %w", configPath, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", configPath, err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for keys a file set to their zero value.
// Depth and Recent keep explicit zeros.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Root == "" {
		c.Root = def.Root
	}
	if len(c.Markers) == 0 {
		c.Markers = def.Markers
	}
	if c.HistoryFile == "" {
		c.HistoryFile = def.HistoryFile
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Apply layers command-line overrides on top of the loaded config.
func (c *Config) Apply(o Overrides) {
	if o.Root != nil {
		c.Root = *o.Root
	}
	if o.Depth != nil {
		c.Depth = *o.Depth
	}
	if o.HistoryFile != nil {
		c.HistoryFile = *o.HistoryFile
	}
	if o.Recent != nil {
		c.Recent = *o.Recent
	}
	if o.Theme != nil {
		c.Theme = *o.Theme
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if len(o.Command) > 0 {
		c.Command = CommandTemplate(o.Command)
	}
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}
	if c.Depth < 0 {
		errs = append(errs, fmt.Errorf("depth must be >= 0, got: %d", c.Depth))
	}
	if c.Recent < 0 {
		errs = append(errs, fmt.Errorf("recent must be >= 0, got: %d", c.Recent))
	}
	if strings.TrimSpace(c.HistoryFile) == "" {
		errs = append(errs, errors.New("history_file must not be empty"))
	}
	for _, m := range c.Markers {
		if m == "" || strings.ContainsRune(m, filepath.Separator) {
			errs = append(errs, fmt.Errorf("marker must be a plain directory name, got: %q", m))
		}
	}
	return errors.Join(errs...)
}

// ResolvedRoot returns Root with a leading ~ expanded, made absolute
// against the working directory.
func (c *Config) ResolvedRoot() string {
	root := ExpandHome(c.Root)
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// ResolvedHistoryFile returns HistoryFile with a leading ~ expanded.
func (c *Config) ResolvedHistoryFile() string {
	return ExpandHome(c.HistoryFile)
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Paths without that prefix, or an unresolvable home, are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ResolveStateDir returns the directory holding the log file. An explicit
// config directory wins; otherwise XDG_STATE_HOME or ~/.local/state is used.
func ResolveStateDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "state", appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}

func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", appName)
	}

	return filepath.Join(home, ".config", appName)
}

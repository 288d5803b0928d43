// Package config provides reading and writing of llmedit configuration.
// Supports both global (~/.llmedit/config.yaml) and local (.llmedit/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/tokenize"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.llmedit/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is workspace-specific config in .llmedit/config.yaml
	ScopeLocal
)

// Dir is the name of the per-workspace and per-user directory.
const Dir = ".llmedit"

// localDir is where the local config lives. It is relative to the working
// directory until SetLocalDir points it at a discovered workspace.
var localDir = Dir

// SetLocalDir sets the workspace .llmedit directory used for local config.
func SetLocalDir(dir string) {
	localDir = dir
}

// Author represents the author recorded in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Diff holds diff presentation options.
type Diff struct {
	Context      *int   `yaml:"context,omitempty"`
	Algorithm    string `yaml:"algorithm,omitempty"`
	Tokenizer    string `yaml:"tokenizer,omitempty"`
	LongestToken *bool  `yaml:"longest_token,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxPath    *int   `yaml:"max_path,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Output holds terminal output options.
type Output struct {
	Colour string `yaml:"colour,omitempty"`
}

// Colour modes for output.colour.
const (
	ColourAuto   = "auto"
	ColourAlways = "always"
	ColourNever  = "never"
)

// Defaults applied when not configured.
const (
	DefaultContext    = 4
	DefaultMaxPath    = 1024
	DefaultMaxContent = 10 * 1024 * 1024 // 10 MB
)

// Validation bounds for configuration values.
const (
	MinContext    = 0
	MaxContext    = 1000
	MinMaxPath    = 1
	MaxMaxPath    = 65536 // 64 KB - reasonable upper bound for paths
	MinMaxContent = 1
	MaxMaxContent = 1024 * 1024 * 1024 // 1 GB - the diff is quadratic in the worst case
)

// Config contains configuration for llmedit.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Diff   Diff   `yaml:"diff,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`
	Output Output `yaml:"output,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Diff.Context != nil {
		v := *c.Diff.Context
		if v < MinContext || v > MaxContext {
			return fmt.Errorf("%w: diff.context must be between %d and %d, got %d",
				ErrInvalidValue, MinContext, MaxContext, v)
		}
	}
	if _, err := diff.ParseAlgorithm(c.Diff.Algorithm); err != nil {
		return fmt.Errorf("%w: diff.algorithm: %w", ErrInvalidValue, err)
	}
	if _, err := tokenize.ParseKind(c.Diff.Tokenizer); err != nil {
		return fmt.Errorf("%w: diff.tokenizer: %w", ErrInvalidValue, err)
	}
	if c.Limits.MaxPath != nil {
		v := *c.Limits.MaxPath
		if v < MinMaxPath || v > MaxMaxPath {
			return fmt.Errorf("%w: max_path must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPath, MaxMaxPath, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	switch c.Output.Colour {
	case "", ColourAuto, ColourAlways, ColourNever:
	default:
		return fmt.Errorf("%w: output.colour must be auto, always or never, got %q", ErrInvalidValue, c.Output.Colour)
	}
	return nil
}

// Context returns the number of hunk context lines (defaults to 4).
func (c *Config) Context() int {
	if c.Diff.Context == nil {
		return DefaultContext
	}
	return *c.Diff.Context
}

// Algorithm returns the configured diff algorithm (defaults to Myers).
func (c *Config) Algorithm() diff.Algorithm {
	a, _ := diff.ParseAlgorithm(c.Diff.Algorithm)
	return a
}

// Tokenizer returns the configured tokenizer for previews (defaults to line).
func (c *Config) Tokenizer() tokenize.Kind {
	k, _ := tokenize.ParseKind(c.Diff.Tokenizer)
	return k
}

// LongestToken reports whether longest-token alignment is on (defaults to false).
func (c *Config) LongestToken() bool {
	return c.Diff.LongestToken != nil && *c.Diff.LongestToken
}

// DiffOptions returns the configured diff options.
func (c *Config) DiffOptions() diff.Options {
	return diff.Options{
		Tokenizer:    c.Tokenizer(),
		Algorithm:    c.Algorithm(),
		LongestToken: c.LongestToken(),
	}
}

// MaxPath returns the maximum path length in bytes (defaults to 1024).
func (c *Config) MaxPath() int {
	if c.Limits.MaxPath == nil {
		return DefaultMaxPath
	}
	return *c.Limits.MaxPath
}

// MaxContent returns the maximum file size in bytes (defaults to 10 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// Colour returns the colour mode (defaults to auto).
func (c *Config) Colour() string {
	if c.Output.Colour == "" {
		return ColourAuto
	}
	return c.Output.Colour
}

// LocalPath returns the path to the local (workspace) config file.
func LocalPath() string {
	return filepath.Join(localDir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.llmedit/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable that points at a config file
const EnvVar = "ANURAG_CONFIG"

// DefaultFile is picked up from the working directory when present
const DefaultFile = "anurag.toml"

// Config holds the complete interpreter configuration
type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Check  CheckConfig  `toml:"check"`
	Run    RunConfig    `toml:"run"`
	REPL   REPLConfig   `toml:"repl"`

	// Path is the file the config was read from; empty for defaults
	Path string `toml:"-"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// OutputConfig holds diagnostic rendering settings
type OutputConfig struct {
	Color bool `toml:"color"`
}

// CheckConfig holds settings for the warnings pass
type CheckConfig struct {
	Warnings bool `toml:"warnings"`
}

// RunConfig holds interpreter limits
type RunConfig struct {
	MaxCallDepth int      `toml:"max_call_depth"`
	Timeout      Duration `toml:"timeout"` // zero means no limit
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	Prompt       string `toml:"prompt"`
	Continuation string `toml:"continuation"`
	HistoryFile  string `toml:"history_file"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{Color: true},
		Check:  CheckConfig{Warnings: true},
		Run: RunConfig{
			MaxCallDepth: 10000,
		},
		REPL: REPLConfig{
			Prompt:       "ang> ",
			Continuation: "...> ",
			HistoryFile:  "~/.anurag_history",
		},
	}
}

// Load loads configuration from a TOML file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	cfg.Path = path
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve finds the config to use: the explicit path if given, else the file
// named by $ANURAG_CONFIG, else ./anurag.toml, else defaults.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}

	cfg := Default()
	cfg.expandPaths()
	return cfg, nil
}

// Validate rejects values the rest of the program cannot act on
func (c *Config) Validate() error {
	var errs []error

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q: want text or json", c.Log.Format))
	}
	if c.Run.MaxCallDepth < 0 {
		errs = append(errs, fmt.Errorf("run.max_call_depth must not be negative, got %d", c.Run.MaxCallDepth))
	}
	if c.Run.Timeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("run.timeout must not be negative, got %s", c.Run.Timeout.Duration))
	}

	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: want debug, info, warn or error", level)
	}
}

// expandPaths expands environment variables and a leading ~ in file paths
func (c *Config) expandPaths() {
	c.REPL.HistoryFile = expandHome(os.ExpandEnv(c.REPL.HistoryFile))
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

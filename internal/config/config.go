// Package config provides the application settings loaded from prakriti.yaml
// and PRAKRITI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default values for application settings. These are the single source of
// truth; New() references them and no other code should duplicate them.
const (
	FileName  = "prakriti.yaml"
	EnvPrefix = "PRAKRITI"

	DefaultDataDir      = ".prakriti"
	DefaultDatabaseName = "prakriti.db"
	DefaultReportsDir   = "reports"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultServerPort = 8080

	DefaultFollowupDays = 7
)

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// Settings is the top-level application configuration.
type Settings struct {
	DataDir      string       `mapstructure:"data_dir" yaml:"data_dir"`
	RulesFile    string       `mapstructure:"rules_file" yaml:"rules_file,omitempty"`
	LogLevel     string       `mapstructure:"log_level" yaml:"log_level"`
	LogFormat    string       `mapstructure:"log_format" yaml:"log_format"`
	Server       ServerConfig `mapstructure:"server" yaml:"server"`
	FollowupDays int          `mapstructure:"followup_days" yaml:"followup_days"`
	Strict       bool         `mapstructure:"strict" yaml:"strict"`

	// path of the file the settings were read from, empty for defaults
	source string
}

// New returns Settings with all hard-coded defaults populated.
func New() *Settings {
	return &Settings{
		DataDir:      DefaultDataDir,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Server:       ServerConfig{Port: DefaultServerPort},
		FollowupDays: DefaultFollowupDays,
	}
}

// Source returns the config file path, or "" when only defaults and the
// environment were used.
func (s *Settings) Source() string {
	return s.source
}

// DatabasePath is the SQLite file inside DataDir.
func (s *Settings) DatabasePath() string {
	return filepath.Join(s.DataDir, DefaultDatabaseName)
}

// ReportsDir is where rendered reports are written by default.
func (s *Settings) ReportsDir() string {
	return filepath.Join(s.DataDir, DefaultReportsDir)
}

// Load reads settings. An explicit path must exist; otherwise prakriti.yaml
// is searched for by walking up from startDir (max 10 levels) and defaults
// are used when none is found. PRAKRITI_* variables override file values,
// e.g. PRAKRITI_SERVER_PORT.
func Load(startDir, explicit string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := explicit
	if path == "" {
		found, err := findConfigFile(startDir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", FileName, err)
		}
		path = found
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	cfg.source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := New()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("rules_file", def.RulesFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("followup_days", def.FollowupDays)
	v.SetDefault("strict", def.Strict)
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	var errs []error
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q: must be debug, info, warn, or error", s.LogLevel))
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q: must be console or json", s.LogFormat))
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d: out of range", s.Server.Port))
	}
	if s.FollowupDays < 1 {
		errs = append(errs, fmt.Errorf("followup_days %d: must be at least 1", s.FollowupDays))
	}
	return errors.Join(errs...)
}

// findConfigFile walks up from dir looking for prakriti.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Real I/O errors
// (e.g. permission denied) are propagated.
func findConfigFile(dir string) (string, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("checking %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Package config manages application configuration from ~/.classdesk/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. CLASSDESK_API_BASE_URL.
const EnvPrefix = "CLASSDESK"

// Config represents the application configuration
type Config struct {
	API     APIConfig     `yaml:"api"     mapstructure:"api"`
	Prefs   PrefsConfig   `yaml:"prefs"   mapstructure:"prefs"`
	Theme   ThemeConfig   `yaml:"theme"   mapstructure:"theme"`
	Refresh RefreshConfig `yaml:"refresh" mapstructure:"refresh"`
	Log     LogConfig     `yaml:"log"     mapstructure:"log"`
}

// APIConfig configures the student API client
type APIConfig struct {
	// BaseURL is used when neither --api nor a saved preference is set
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout"  mapstructure:"timeout"`
}

// PrefsConfig selects the preference store
type PrefsConfig struct {
	// Backend is one of file, sqlite, dynamodb, memory
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Path is the file or database path for file and sqlite backends
	Path string `yaml:"path,omitempty" mapstructure:"path"`

	// DynamoDBTable, AWSProfile and AWSRegion configure the dynamodb backend
	DynamoDBTable string `yaml:"dynamodb_table,omitempty" mapstructure:"dynamodb_table"`
	AWSProfile    string `yaml:"aws_profile,omitempty"    mapstructure:"aws_profile"`
	AWSRegion     string `yaml:"aws_region,omitempty"     mapstructure:"aws_region"`

	// Namespace separates users sharing one dynamodb table
	Namespace string `yaml:"namespace,omitempty" mapstructure:"namespace"`
}

// ThemeConfig configures theming
type ThemeConfig struct {
	// Dir holds user theme files (*.toml, *.json)
	Dir string `yaml:"dir" mapstructure:"dir"`

	// ApplyDelay separates the clear and commit phases of a theme switch
	ApplyDelay time.Duration `yaml:"apply_delay" mapstructure:"apply_delay"`
}

// RefreshConfig configures the auto-refresh ticker
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// LogConfig configures file logging
type LogConfig struct {
	// File enables JSON file logging when set
	File  string `yaml:"file,omitempty" mapstructure:"file"`
	Level string `yaml:"level"          mapstructure:"level"`
}

// Dir returns the classdesk configuration directory
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".classdesk"
	}
	return filepath.Join(homeDir, ".classdesk")
}

// DefaultConfigPath returns the default config file path
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Prefs: PrefsConfig{
			Backend:   "file",
			Namespace: "default",
		},
		Theme: ThemeConfig{
			Dir:        filepath.Join(Dir(), "themes"),
			ApplyDelay: 50 * time.Millisecond,
		},
		Refresh: RefreshConfig{
			Interval: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// New returns a viper instance seeded with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("prefs.backend", d.Prefs.Backend)
	v.SetDefault("prefs.path", d.Prefs.Path)
	v.SetDefault("prefs.dynamodb_table", d.Prefs.DynamoDBTable)
	v.SetDefault("prefs.aws_profile", d.Prefs.AWSProfile)
	v.SetDefault("prefs.aws_region", d.Prefs.AWSRegion)
	v.SetDefault("prefs.namespace", d.Prefs.Namespace)
	v.SetDefault("theme.dir", d.Theme.Dir)
	v.SetDefault("theme.apply_delay", d.Theme.ApplyDelay)
	v.SetDefault("refresh.interval", d.Refresh.Interval)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load loads the configuration from the default path
func Load() (*Config, error) {
	return LoadFrom(New(), DefaultConfigPath())
}

// LoadFrom reads path into v and decodes the result. A missing file is not an
// error; defaults and environment overrides still apply.
func LoadFrom(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) && !isPathError(err) {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func isPathError(err error) bool {
	var pe *os.PathError
	return errors.As(err, &pe) && errors.Is(pe.Err, os.ErrNotExist)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// WriteDefault writes the default config to path unless a file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %q already exists", path)
	}
	return Default().SaveTo(path)
}

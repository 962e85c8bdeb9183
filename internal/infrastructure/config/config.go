// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName names the config and data directories.
	AppName = "mens"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.toml"
	// DefaultDocumentFile is the local note document file name.
	DefaultDocumentFile = "local.yml"
	// EnvPrefix prefixes environment overrides, e.g. MENS_REMOTE_KIND.
	EnvPrefix = "MENS"
)

// Remote backend kinds.
const (
	RemoteGist   = "gist"
	RemoteS3     = "s3"
	RemoteSQLite = "sqlite"
)

// Config holds the resolved configuration.
type Config struct {
	Remote RemoteConfig `mapstructure:"remote" toml:"remote"`
	Data   DataConfig   `mapstructure:"data" toml:"data"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
}

// RemoteConfig selects and configures the sync remote.
type RemoteConfig struct {
	Kind   string       `mapstructure:"kind" toml:"kind"`
	Token  string       `mapstructure:"token" toml:"token"`
	ID     string       `mapstructure:"id" toml:"id"`
	Handle string       `mapstructure:"handle" toml:"handle"`
	Gist   GistConfig   `mapstructure:"gist" toml:"gist"`
	S3     S3Config     `mapstructure:"s3" toml:"s3"`
	SQLite SQLiteConfig `mapstructure:"sqlite" toml:"sqlite"`
}

// GistConfig holds configuration for the GitHub gist remote.
type GistConfig struct {
	// BaseURL overrides the API endpoint (GitHub Enterprise).
	BaseURL string `mapstructure:"base_url" toml:"base_url"`
}

// S3Config holds configuration for the S3-compatible remote.
type S3Config struct {
	Bucket   string `mapstructure:"bucket" toml:"bucket"`
	Region   string `mapstructure:"region" toml:"region"`
	Endpoint string `mapstructure:"endpoint" toml:"endpoint"`
}

// SQLiteConfig holds configuration for the SQLite file remote.
type SQLiteConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// DataConfig locates the local document.
type DataConfig struct {
	Dir string `mapstructure:"dir" toml:"dir"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Dir        string `mapstructure:"dir" toml:"dir"`
	Level      string `mapstructure:"level" toml:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" toml:"max_age_days"`
}

// Default returns a Config with default values. Directory fields left empty
// are derived from Data.Dir when the config is resolved.
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			Kind: RemoteGist,
			S3: S3Config{
				Bucket: AppName,
				Region: "us-east-1",
			},
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Store is a file-backed dotted-key configuration store.
// Reads go through viper (file, defaults and MENS_* environment overrides);
// writes edit the raw TOML tree.
type Store struct {
	path string
	v    *viper.Viper
}

// Open loads the config file at path. A missing file yields defaults.
// A .env file in the working directory is loaded first, if present.
func Open(path string) (*Store, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	dataDir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, Default(), dataDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("remote.token", EnvPrefix+"_REMOTE_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("binding token env: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")

	s := &Store{path: path, v: v}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper, d *Config, dataDir string) {
	v.SetDefault("remote.kind", d.Remote.Kind)
	v.SetDefault("remote.token", "")
	v.SetDefault("remote.id", "")
	v.SetDefault("remote.handle", "")
	v.SetDefault("remote.gist.base_url", "")
	v.SetDefault("remote.s3.bucket", d.Remote.S3.Bucket)
	v.SetDefault("remote.s3.region", d.Remote.S3.Region)
	v.SetDefault("remote.s3.endpoint", "")
	v.SetDefault("remote.sqlite.path", "")
	v.SetDefault("data.dir", dataDir)
	v.SetDefault("log.dir", "")
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
}

func (s *Store) reload() error {
	if !Exists(s.path) {
		return nil
	}
	if err := s.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for a dotted key as a string.
func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

// Config returns the resolved configuration with derived paths filled in.
func (s *Store) Config() (*Config, error) {
	cfg := &Config{}
	if err := s.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Data.Dir = expandHome(cfg.Data.Dir)
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = filepath.Join(cfg.Data.Dir, "logs")
	}
	cfg.Log.Dir = expandHome(cfg.Log.Dir)
	if cfg.Remote.SQLite.Path == "" {
		cfg.Remote.SQLite.Path = filepath.Join(cfg.Data.Dir, "remote.db")
	}
	cfg.Remote.SQLite.Path = expandHome(cfg.Remote.SQLite.Path)

	switch cfg.Remote.Kind {
	case RemoteGist, RemoteS3, RemoteSQLite:
	default:
		return nil, fmt.Errorf("unknown remote kind %q (valid: %s, %s, %s)", cfg.Remote.Kind, RemoteGist, RemoteS3, RemoteSQLite)
	}

	return cfg, nil
}

// DocumentPath returns the path of the local note document.
func (c *Config) DocumentPath() string {
	return filepath.Join(c.Data.Dir, DefaultDocumentFile)
}

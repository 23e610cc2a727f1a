package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	dirName    = "bazaaradmin"
	fileName   = "config.json"
	logName    = "console.log"
	dirPerms   = 0700
	filePerms  = 0600
	DefaultURL = "http://localhost:8080"
)

// Environment overrides. BAZAAR_CONFIG_DIR relocates the config file.
const (
	EnvConfigDir   = "BAZAAR_CONFIG_DIR"
	EnvServerURL   = "BAZAAR_SERVER_URL"
	EnvToken       = "BAZAAR_TOKEN"
	EnvLogLevel    = "BAZAAR_LOG_LEVEL"
	EnvLogFile     = "BAZAAR_LOG_FILE"
	EnvNarrowWidth = "BAZAAR_NARROW_WIDTH"
)

// Config holds persisted CLI configuration.
type Config struct {
	ServerURL   string `json:"server_url"`
	Token       string `json:"token"`
	LogLevel    string `json:"log_level,omitempty"`
	LogFile     string `json:"log_file,omitempty"`
	NarrowWidth int    `json:"narrow_width,omitempty"`
}

// Path returns the full path to the config file.
func Path() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, fileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dirName, fileName), nil
}

// Load reads the config from disk. Returns a default Config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return &Config{ServerURL: DefaultURL}, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{ServerURL: DefaultURL}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultURL
	}
	return &cfg, nil
}

// Resolve loads a .env file from the working directory if present, then the
// config file, then applies environment overrides.
func Resolve() (*Config, error) {
	_ = godotenv.Load()
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields with non-empty BAZAAR_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvServerURL); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvNarrowWidth); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: invalid width %q", EnvNarrowWidth, v)
		}
		c.NarrowWidth = n
	}
	return nil
}

// Save writes the config to disk, creating the directory if needed.
func Save(cfg *Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), dirPerms); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, filePerms)
}

// Clear removes the config file.
func Clear() error {
	p, err := Path()
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// HasToken reports whether a token is configured.
func (c *Config) HasToken() bool {
	return c.Token != ""
}

// ConsoleLogPath is where the interactive console writes its log, since the
// terminal belongs to the UI.
func (c *Config) ConsoleLogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), dirName+"-"+logName)
	}
	return filepath.Join(dir, dirName, logName)
}

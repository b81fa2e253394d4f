package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Record service modes
const (
	ServiceLocal = "local"
	ServiceHTTP  = "http"
)

// View store and event backends
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendLocal  = "local"
)

// Config represents the application configuration
type Config struct {
	DataDir       string              `yaml:"data_dir"`
	User          string              `yaml:"user"`
	RecordService RecordServiceConfig `yaml:"record_service"`
	ViewStore     ViewStoreConfig     `yaml:"view_store"`
	Events        EventsConfig        `yaml:"events"`
	KeyMappings   KeyMappings         `yaml:"key_mappings"`
	ColorScheme   ColorScheme         `yaml:"theme"`
}

// RecordServiceConfig selects where records live
type RecordServiceConfig struct {
	Mode    string        `yaml:"mode"` // local | http
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// Listen is the address makerflowd serves the local records on
	Listen string `yaml:"listen"`
}

// ViewStoreConfig selects where view configurations are persisted
type ViewStoreConfig struct {
	Backend   string `yaml:"backend"` // sqlite | redis | memory
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
	Namespace string `yaml:"namespace"`
}

// EventsConfig selects how board changes are announced
type EventsConfig struct {
	Backend   string `yaml:"backend"` // local | redis
	RedisAddr string `yaml:"redis_addr"`
	Namespace string `yaml:"namespace"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// loadThemeFile loads and merges theme from MAKERFLOW_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("MAKERFLOW_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		config := Default()
		loadThemeFile(config)
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from an explicit path. A missing file yields defaults.
func LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		config := Default()
		loadThemeFile(config)
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	// Load theme from MAKERFLOW_THEME_FILE if set
	loadThemeFile(&config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return &config, nil
}

// Validate rejects settings that cannot be wired
func (c *Config) Validate() error {
	switch c.RecordService.Mode {
	case ServiceLocal:
	case ServiceHTTP:
		if c.RecordService.BaseURL == "" {
			return fmt.Errorf("record_service.base_url is required in http mode")
		}
	default:
		return fmt.Errorf("unknown record_service.mode %q", c.RecordService.Mode)
	}
	switch c.ViewStore.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown view_store.backend %q", c.ViewStore.Backend)
	}
	switch c.Events.Backend {
	case BackendLocal, BackendRedis:
	default:
		return fmt.Errorf("unknown events.backend %q", c.Events.Backend)
	}
	return nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "makerflow", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "makerflow", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.User == "" {
		c.User = "local"
	}
	if c.RecordService.Mode == "" {
		c.RecordService.Mode = ServiceLocal
	}
	if c.RecordService.Timeout <= 0 {
		c.RecordService.Timeout = 10 * time.Second
	}
	if c.RecordService.Listen == "" {
		c.RecordService.Listen = "127.0.0.1:7420"
	}
	if c.ViewStore.Backend == "" {
		c.ViewStore.Backend = BackendSQLite
	}
	if c.ViewStore.RedisAddr == "" {
		c.ViewStore.RedisAddr = "localhost:6379"
	}
	if c.ViewStore.Namespace == "" {
		c.ViewStore.Namespace = "default"
	}
	if c.Events.Backend == "" {
		c.Events.Backend = BackendLocal
	}
	if c.Events.RedisAddr == "" {
		c.Events.RedisAddr = c.ViewStore.RedisAddr
	}
	if c.Events.Namespace == "" {
		c.Events.Namespace = c.ViewStore.Namespace
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the name of the config file inside the config directory
const FileName = "usersearch.toml"

// Config represents the application configuration
type Config struct {
	Version int `toml:"version"`
	// Endpoint is the URL the search form POSTs to.
	Endpoint       string     `toml:"endpoint" env:"USERSEARCH_BASE_URL"`
	RequestTimeout string     `toml:"request_timeout,omitempty" env:"USERSEARCH_REQUEST_TIMEOUT"`
	LogFile        string     `toml:"log_file" env:"USERSEARCH_LOG_FILE"`
	UISettings     UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	AltScreen bool `toml:"alt_screen" env:"USERSEARCH_ALT_SCREEN"`
	ShowHelp  bool `toml:"show_help" env:"USERSEARCH_SHOW_HELP"`
}

// Timeout parses RequestTimeout. An empty value means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid request_timeout %q: must not be negative", c.RequestTimeout)
	}
	return d, nil
}

// Validate checks the values that cannot be fixed up at runtime
func (c *Config) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid endpoint %q: missing host", c.Endpoint)
		}
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath   string
	dotenvPath string
}

// NewConfigService creates a config service reading from the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath:   filepath.Join(configDir, "usersearch", FileName),
		dotenvPath: ".env",
	}
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{
		filePath:   path,
		dotenvPath: filepath.Join(filepath.Dir(path), ".env"),
	}
}

// Path returns the config file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load resolves the configuration: defaults, then the config file if
// present, then .env, then environment variables.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if err := godotenv.Load(cs.dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", cs.dotenvPath, err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. A missing file
// yields an error matching os.ErrNotExist.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides cfg with any USERSEARCH_* variables that are set
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		LogFile: "usersearch.log",
		UISettings: UISettings{
			AltScreen: true,
			ShowHelp:  true,
		},
	}
}

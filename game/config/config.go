package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "configs/game2048.yaml"

// Config is the complete server configuration
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Game     GameConfig    `yaml:"game"`
	Sessions SessionConfig `yaml:"sessions"`
}

// ServerConfig controls the HTTP listener and static assets
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	StaticDir    string        `yaml:"static_dir"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// GameConfig controls the engine
type GameConfig struct {
	// Seed makes tile placement reproducible. Zero means nondeterministic.
	Seed uint64 `yaml:"seed"`
}

// SessionConfig controls session expiry
type SessionConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "localhost",
			Port:         8080,
			StaticDir:    "static",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Sessions: SessionConfig{
			TTL:             24 * time.Hour,
			CleanupInterval: 1 * time.Hour,
		},
	}
}

// Load reads the configuration.
// Search order: customPath -> ./configs/game2048.yaml -> defaults.
// An explicit path that cannot be read is an error.
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := LoadFile(DefaultPath)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads a YAML file on top of the defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 0 and 65535, got %d", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.StaticDir == "" {
		return fmt.Errorf("%w: server.static_dir is required", ErrInvalidConfig)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("%w: server timeouts cannot be negative", ErrInvalidConfig)
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("%w: sessions.ttl must be positive, got %s", ErrInvalidConfig, c.Sessions.TTL)
	}
	if c.Sessions.CleanupInterval <= 0 {
		return fmt.Errorf("%w: sessions.cleanup_interval must be positive, got %s", ErrInvalidConfig, c.Sessions.CleanupInterval)
	}
	return nil
}

// Marshal encodes the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

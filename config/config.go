package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jaki95/audio-downloader/internal/media"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	Server   ServerConfig   `yaml:"server"`
	Form     FormConfig     `yaml:"form"`
	Sessions SessionsConfig `yaml:"sessions"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// Gin mode: "debug", "release" or "test"
	Mode string `yaml:"mode"`
}

type FormConfig struct {
	DefaultFormat  media.Format  `yaml:"default_format"`
	DefaultBitrate media.Bitrate `yaml:"default_bitrate"`

	// How long a submitted form stays in the loading state
	SimulatedDelay time.Duration `yaml:"simulated_delay"`
}

type SessionsConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}

	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}

	if c.Form.DefaultFormat == "" {
		c.Form.DefaultFormat = media.DefaultFormat
	}

	if c.Form.DefaultBitrate == 0 {
		c.Form.DefaultBitrate = media.DefaultBitrate
	}

	if c.Form.SimulatedDelay == 0 {
		c.Form.SimulatedDelay = 2 * time.Second
	}

	if c.Sessions.TTL == 0 {
		c.Sessions.TTL = 24 * time.Hour
	}

	if c.Sessions.CleanupInterval == 0 {
		c.Sessions.CleanupInterval = 2 * time.Hour
	}
}

func (c *Config) validate() error {
	if _, err := media.ParseFormat(string(c.Form.DefaultFormat)); err != nil {
		return fmt.Errorf("form.default_format: %w", err)
	}
	if _, err := media.ParseBitrate(c.Form.DefaultBitrate.Value()); err != nil {
		return fmt.Errorf("form.default_bitrate: %w", err)
	}
	if c.Form.SimulatedDelay < 0 {
		return fmt.Errorf("form.simulated_delay must not be negative: %s", c.Form.SimulatedDelay)
	}
	return nil
}

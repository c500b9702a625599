package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Presets   PresetsConfig   `yaml:"presets"`
	Alarm     AlarmConfig     `yaml:"alarm"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"`
}

type PresetsConfig struct {
	// Path to a TOML file overriding the builtin quick-rest chips.
	// Empty means builtins.
	Path string `yaml:"path"`
}

type AlarmConfig struct {
	Enabled       bool `yaml:"enabled"`
	RepeatSeconds int  `yaml:"repeat_seconds"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix RESTBELL_ and underscore-separated
// paths:
//
//	RESTBELL_SERVER_HOST, RESTBELL_SERVER_PORT,
//	RESTBELL_STORAGE_DIR, RESTBELL_PRESETS_PATH,
//	RESTBELL_AUTH_API_KEY, RESTBELL_TS_HOSTNAME
func Load(path string) (*Config, error) {
	cfg := &Config{
		Alarm: AlarmConfig{Enabled: true, RepeatSeconds: 10},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RESTBELL_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("RESTBELL_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RESTBELL_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("RESTBELL_PRESETS_PATH"); v != "" {
		cfg.Presets.Path = v
	}
	if v := os.Getenv("RESTBELL_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("RESTBELL_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Alarm.RepeatSeconds < 0 {
		return fmt.Errorf("alarm.repeat_seconds must not be negative")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}

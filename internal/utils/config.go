package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoggerConfig controls log severity and optional file rotation.
type LoggerConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// RendererConfig selects and tunes the invoice renderer.
type RendererConfig struct {
	Engine          string `yaml:"engine"`
	Paper           string `yaml:"paper"`
	Font            string `yaml:"font"`
	ChromePath      string `yaml:"chrome_path"`
	ChromeNoSandbox bool   `yaml:"chrome_no_sandbox"`
	TimeoutSecs     int    `yaml:"timeout_secs"`
}

// ServerConfig is only used by the local gateway.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logger   LoggerConfig   `yaml:"logger"`
	Renderer RendererConfig `yaml:"renderer"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: ":3000",
		},
		Logger: LoggerConfig{
			Level:      "WARN",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Renderer: RendererConfig{
			Engine:      "gofpdf",
			Paper:       "A4",
			Font:        "Helvetica",
			TimeoutSecs: 30,
		},
	}
}

// LoadConfig reads the file named by CONFIG_PATH, if any.
func LoadConfig() (Config, error) {
	return LoadConfigFrom(os.Getenv("CONFIG_PATH"))
}

// LoadConfigFrom reads a YAML config from path on top of DefaultConfig and
// applies environment overrides. A missing file is not an error.
func LoadConfigFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.Logger.Level = v
	}
	// Allow common container env var to override chrome_path.
	if cfg.Renderer.ChromePath == "" {
		if v := os.Getenv("CHROME_BIN"); v != "" {
			cfg.Renderer.ChromePath = v
		}
	}

	fillDefaults(&cfg)
	return cfg, nil
}

func fillDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Renderer.Engine == "" {
		cfg.Renderer.Engine = def.Renderer.Engine
	}
	if cfg.Renderer.Paper == "" {
		cfg.Renderer.Paper = def.Renderer.Paper
	}
	if cfg.Renderer.Font == "" {
		cfg.Renderer.Font = def.Renderer.Font
	}
	if cfg.Renderer.TimeoutSecs <= 0 {
		cfg.Renderer.TimeoutSecs = def.Renderer.TimeoutSecs
	}
}

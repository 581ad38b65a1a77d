package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const configDirName = "wikitext"

var configFiles = []string{
	"config.yaml",
	"config.yml",
}

type Config struct {
	// Installation root; archives and token files live under <Root>/data.
	Root string `yaml:"root"`

	// Download
	MirrorURL       string        `yaml:"mirror_url"` // replaces the archive host when set
	UserAgent       string        `yaml:"user_agent" default:"Wget/1.16 (linux-gnu)"`
	DownloadTimeout time.Duration `yaml:"download_timeout" default:"30s"`

	// HTTP API
	Port   string `yaml:"port" default:"8090"`
	APIKey string `yaml:"api_key"`

	// Chunking defaults, in estimated tokens
	DefaultChunkSize    int `yaml:"chunk_size" default:"512"`
	DefaultChunkOverlap int `yaml:"chunk_overlap" default:"64"`

	LogLevel string `yaml:"log_level" default:"info"`
}

// Load builds the configuration from struct defaults, then the YAML config
// file if one exists, then environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return cfg, fmt.Errorf("apply defaults: %w", err)
	}

	path, err := filePath()
	if err != nil {
		return cfg, err
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Root = envOr("WIKITEXT_ROOT", cfg.Root)
	cfg.MirrorURL = envOr("WIKITEXT_MIRROR", cfg.MirrorURL)
	cfg.UserAgent = envOr("WIKITEXT_USER_AGENT", cfg.UserAgent)
	cfg.DownloadTimeout = envDuration("WIKITEXT_DOWNLOAD_TIMEOUT", cfg.DownloadTimeout)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("WIKITEXT_API_KEY", cfg.APIKey)
	cfg.DefaultChunkSize = envInt("DEFAULT_CHUNK_SIZE", cfg.DefaultChunkSize)
	cfg.DefaultChunkOverlap = envInt("DEFAULT_CHUNK_OVERLAP", cfg.DefaultChunkOverlap)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)

	if cfg.Root == "" {
		cfg.Root = defaultRoot()
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = 30 * time.Second
	}
	if cfg.DefaultChunkSize <= 0 {
		cfg.DefaultChunkSize = 512
	}
	if cfg.DefaultChunkOverlap < 0 {
		cfg.DefaultChunkOverlap = 0
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.DefaultChunkOverlap >= c.DefaultChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", c.DefaultChunkOverlap, c.DefaultChunkSize)
	}
	if c.MirrorURL != "" {
		u, err := url.Parse(c.MirrorURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid mirror url %q", c.MirrorURL)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// filePath returns the config file to read, or "" when none exists.
// WIKITEXT_CONFIG names a file that must exist.
func filePath() (string, error) {
	if p := os.Getenv("WIKITEXT_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		configHome = filepath.Join(home, ".config")
	}

	for _, name := range configFiles {
		p := filepath.Join(configHome, configDirName, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func defaultRoot() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, configDirName)
	}
	return configDirName
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

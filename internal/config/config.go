package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	envPrefix     = "DOCSCOUT_"
	appDir        = "docscout"
	configFile    = "config.yaml"
	logFileName   = "docscout.log"
	defaultServer = "http://localhost:7860"
)

// Config is the fully resolved runtime configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout of zero leaves requests bounded only by the transport.
	Timeout time.Duration `yaml:"timeout"`
}

type UIConfig struct {
	NoticeTTL    time.Duration `yaml:"notice_ttl"`
	GlamourStyle string        `yaml:"glamour_style"`
	StartDir     string        `yaml:"start_dir"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func defaults() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: defaultServer,
		},
		UI: UIConfig{
			NoticeTTL:    3 * time.Second,
			GlamourStyle: "dark",
			StartDir:     ".",
		},
		Log: LogConfig{
			File:  defaultLogPath(),
			Level: "info",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/docscout/config.yaml or the platform equivalent.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, appDir, configFile)
}

func defaultLogPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, appDir, logFileName)
}

// Load resolves defaults, then the YAML file, then DOCSCOUT_* environment
// variables. An empty path reads the default location and tolerates its
// absence; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(envPrefix + "BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv(envPrefix + "BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sBACKEND_TIMEOUT: %w", envPrefix, err)
		}
		cfg.Backend.Timeout = d
	}
	if v := os.Getenv(envPrefix + "NOTICE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sNOTICE_TTL: %w", envPrefix, err)
		}
		cfg.UI.NoticeTTL = d
	}
	if v := os.Getenv(envPrefix + "GLAMOUR_STYLE"); v != "" {
		cfg.UI.GlamourStyle = v
	}
	if v := os.Getenv(envPrefix + "LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Validate rejects configurations the client cannot run with.
func (c Config) Validate() error {
	parsed, err := url.Parse(strings.TrimSpace(c.Backend.BaseURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("backend.base_url %q must be an http(s) URL", c.Backend.BaseURL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must not be negative, got %s", c.Backend.Timeout)
	}
	if c.UI.NoticeTTL <= 0 {
		return fmt.Errorf("ui.notice_ttl must be positive, got %s", c.UI.NoticeTTL)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

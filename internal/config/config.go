package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/jywlabs/brio/internal/template"
)

// Mode selects which relay base URL is used.
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// Environment variables that override config.yaml.
const (
	EnvMode          = "BRIO_MODE"
	EnvAPIBaseURL    = "BRIO_API_BASE_URL"
	EnvDevBaseURL    = "BRIO_DEV_BASE_URL"
	EnvTimeout       = "BRIO_TIMEOUT"
	EnvJournal       = "BRIO_JOURNAL"
	EnvLogLevel      = "BRIO_LOG_LEVEL"
	EnvLogFile       = "BRIO_LOG_FILE"
	EnvTelegramToken = "TELEGRAM_BOT_TOKEN"
)

// Config is the effective configuration after defaults, config.yaml, .env
// and the environment have been applied, in that order.
type Config struct {
	Mode          Mode              `yaml:"mode"`
	APIBaseURL    string            `yaml:"apiBaseURL"`
	DevBaseURL    string            `yaml:"devBaseURL"`
	Timeout       time.Duration     `yaml:"timeout"`
	Journal       string            `yaml:"journal"`
	LogLevel      string            `yaml:"logLevel"`
	LogFile       string            `yaml:"logFile"`
	TelegramToken string            `yaml:"-"`
	Schemas       map[string]string `yaml:"schemas,omitempty"`
}

// rawConfig is used for YAML unmarshaling to distinguish missing keys from
// explicit empty values.
type rawConfig struct {
	Mode       *string           `yaml:"mode"`
	APIBaseURL *string           `yaml:"apiBaseURL"`
	DevBaseURL *string           `yaml:"devBaseURL"`
	Timeout    *string           `yaml:"timeout"`
	Journal    *string           `yaml:"journal"`
	LogLevel   *string           `yaml:"logLevel"`
	LogFile    *string           `yaml:"logFile"`
	Telegram   rawTelegram       `yaml:"telegram"`
	Schemas    map[string]string `yaml:"schemas"`
}

type rawTelegram struct {
	Token *string `yaml:"token"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Mode:       Development,
		DevBaseURL: "http://localhost:8080",
		Timeout:    30 * time.Second,
		LogLevel:   "info",
	}
}

// Load reads .brio/config.yaml and .env from dir. Missing files are not an
// error; defaults fill every unset key.
func Load(dir string) (*Config, error) {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		// Existing environment variables win over .env entries.
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	cfg := Default()

	configPath := filepath.Join(dir, template.BrioDir, template.ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		var raw rawConfig
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
		if err := cfg.merge(raw); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Schema paths in config.yaml are relative to the project directory.
	for name, path := range cfg.Schemas {
		if !filepath.IsAbs(path) {
			cfg.Schemas[name] = filepath.Join(dir, path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) merge(raw rawConfig) error {
	if raw.Mode != nil {
		c.Mode = Mode(*raw.Mode)
	}
	if raw.APIBaseURL != nil {
		c.APIBaseURL = *raw.APIBaseURL
	}
	if raw.DevBaseURL != nil {
		c.DevBaseURL = *raw.DevBaseURL
	}
	if raw.Timeout != nil {
		d, err := parseTimeout(*raw.Timeout)
		if err != nil {
			return err
		}
		c.Timeout = d
	}
	if raw.Journal != nil {
		c.Journal = *raw.Journal
	}
	if raw.LogLevel != nil {
		c.LogLevel = *raw.LogLevel
	}
	if raw.LogFile != nil {
		c.LogFile = *raw.LogFile
	}
	if raw.Telegram.Token != nil {
		c.TelegramToken = *raw.Telegram.Token
	}
	if len(raw.Schemas) > 0 {
		c.Schemas = make(map[string]string, len(raw.Schemas))
		for name, path := range raw.Schemas {
			c.Schemas[name] = path
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvMode); ok {
		c.Mode = Mode(v)
	}
	if v, ok := os.LookupEnv(EnvAPIBaseURL); ok {
		c.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvDevBaseURL); ok {
		c.DevBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := os.LookupEnv(EnvJournal); ok {
		c.Journal = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		c.LogFile = v
	}
	if v, ok := os.LookupEnv(EnvTelegramToken); ok {
		c.TelegramToken = v
	}
	return nil
}

// parseTimeout accepts Go durations and a bare "0".
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	return d, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	switch c.Mode {
	case Development:
		if c.DevBaseURL == "" {
			errs = append(errs, errors.New("devBaseURL must not be empty in development mode"))
		}
	case Production:
		if !isAbsoluteURL(c.APIBaseURL) {
			errs = append(errs, fmt.Errorf("apiBaseURL must be an absolute http(s) URL in production mode, got %q", c.APIBaseURL))
		}
	default:
		errs = append(errs, fmt.Errorf("mode must be %q or %q, got %q", Development, Production, c.Mode))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid logLevel %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// BaseURL returns the relay base URL for the configured mode.
func (c *Config) BaseURL() string {
	if c.Mode == Production {
		return c.APIBaseURL
	}
	return c.DevBaseURL
}

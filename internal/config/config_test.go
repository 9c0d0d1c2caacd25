package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jywlabs/brio/internal/template"
)

// clearEnv unsets every override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvMode, EnvAPIBaseURL, EnvDevBaseURL, EnvTimeout, EnvJournal, EnvLogLevel, EnvLogFile, EnvTelegramToken} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	brioDir := filepath.Join(dir, template.BrioDir)
	if err := os.MkdirAll(brioDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(brioDir, template.ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Mode != Development {
		t.Errorf("Mode = %q, want development", cfg.Mode)
	}
	if cfg.DevBaseURL != "http://localhost:8080" {
		t.Errorf("DevBaseURL = %q", cfg.DevBaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL() != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL())
	}
}

func TestLoadTemplateConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, template.DefaultConfig)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Mode != want.Mode || cfg.Timeout != want.Timeout || cfg.DevBaseURL != want.DevBaseURL {
		t.Errorf("template config diverges from defaults: %+v", cfg)
	}
}

func TestLoadMergesYAML(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "production with absolute URL",
			yaml: "mode: production\napiBaseURL: https://relay.example.com\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.BaseURL() != "https://relay.example.com" {
					t.Errorf("BaseURL = %q", cfg.BaseURL())
				}
			},
		},
		{
			name: "explicit zero timeout disables it",
			yaml: "timeout: 0\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Timeout != 0 {
					t.Errorf("Timeout = %v, want 0", cfg.Timeout)
				}
			},
		},
		{
			name: "missing keys keep defaults",
			yaml: "logLevel: debug\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.LogLevel != "debug" || cfg.Timeout != 30*time.Second {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
		{
			name: "telegram token and journal",
			yaml: "journal: .brio/journal.db\ntelegram:\n  token: abc\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.TelegramToken != "abc" || cfg.Journal != ".brio/journal.db" {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeConfig(t, dir, tt.yaml)
			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadResolvesSchemaPaths(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "schemas:\n  survey: .brio/schemas/survey.yaml\n  abs: /etc/brio/abs.yaml\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Schemas["survey"], filepath.Join(dir, ".brio/schemas/survey.yaml"); got != want {
		t.Errorf("survey path = %q, want %q", got, want)
	}
	if got := cfg.Schemas["abs"]; got != "/etc/brio/abs.yaml" {
		t.Errorf("abs path = %q", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown mode", "mode: staging\n", "mode must be"},
		{"production without URL", "mode: production\n", "apiBaseURL"},
		{"production with relative URL", "mode: production\napiBaseURL: /api\n", "apiBaseURL"},
		{"negative timeout", "timeout: -1s\n", "timeout"},
		{"bad timeout", "timeout: soon\n", "invalid timeout"},
		{"bad log level", "logLevel: loud\n", "logLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeConfig(t, dir, tt.yaml)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "mode: development\ntimeout: 10s\n")

	t.Setenv(EnvMode, "production")
	t.Setenv(EnvAPIBaseURL, "https://env.example.com")
	t.Setenv(EnvTimeout, "5s")
	t.Setenv(EnvTelegramToken, "tok")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL() != "https://env.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL())
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.TelegramToken != "tok" {
		t.Errorf("TelegramToken = %q", cfg.TelegramToken)
	}
}

func TestDotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BRIO_JOURNAL=from-dotenv.db\nBRIO_LOG_LEVEL=warn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// The real environment wins over .env.
	t.Setenv(EnvLogLevel, "error")
	// godotenv sets variables process-wide; restore them after the test.
	t.Cleanup(func() { os.Unsetenv(EnvJournal) })

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Journal != "from-dotenv.db" {
		t.Errorf("Journal = %q, want value from .env", cfg.Journal)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want environment to win", cfg.LogLevel)
	}
}

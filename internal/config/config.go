// Package config builds the immutable runtime configuration: defaults,
// then an optional yaml file, then environment overrides. Every sink is
// optional; a missing credential disables that sink without failing
// startup.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Telegram TelegramConfig `yaml:"telegram"`
	CRM      CRMConfig      `yaml:"crm"`

	// Timezone localizes the timestamps shown in sheet rows and chat
	// notifications. Stored timestamps stay UTC.
	Timezone string `yaml:"timezone"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
	File    string `yaml:"file"`
}

type ServerConfig struct {
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

type LedgerConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type SheetsConfig struct {
	CredentialsJSON string `yaml:"credentials_json"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID string `yaml:"chat_id"`
}

type CRMConfig struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
}

func Default() Config {
	return Config{
		Log:      LogConfig{Level: "info", Console: true},
		Server:   ServerConfig{Port: 3004, StaticDir: "./public"},
		Ledger:   LedgerConfig{Driver: "file", Path: "./leads-backup.json"},
		Timezone: "Europe/Rome",
	}
}

// Load returns the runtime configuration. path may be empty; env vars
// alone are a complete configuration. The returned value is never
// mutated after startup.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := fromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	fromEnv(&cfg)
	return cfg, nil
}

func fromFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	// Reject unknown keys so a typo fails loudly instead of silently
	// disabling a sink.
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

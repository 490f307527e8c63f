package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophidentity/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations go
// through timex.Duration, so both "30m" and integer nanoseconds are
// accepted. Absent keys leave the current value alone.
type JsonConfig struct {
	DatabaseDSN     string          `json:"database_dsn"`
	MaxOpenConns    *int            `json:"max_open_conns"`
	MaxIdleConns    *int            `json:"max_idle_conns"`
	ConnMaxLifetime *timex.Duration `json:"conn_max_lifetime"`
	AutoMigrate     *bool           `json:"auto_migrate"`
	LogLevel        string          `json:"log_level"`
	LogFormat       string          `json:"log_format"`
}

func applyJSON(config *Config, path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.MaxOpenConns != nil {
		config.MaxOpenConns = *c.MaxOpenConns
	}
	if c.MaxIdleConns != nil {
		config.MaxIdleConns = *c.MaxIdleConns
	}
	if c.ConnMaxLifetime != nil {
		config.ConnMaxLifetime = c.ConnMaxLifetime.Duration
	}
	if c.AutoMigrate != nil {
		config.AutoMigrate = *c.AutoMigrate
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the TOML layout. Empty values leave the current
// setting alone.
type fileConfig struct {
	APIURL         string `toml:"api_url"`
	DatabasePath   string `toml:"database_path"`
	RequestTimeout string `toml:"request_timeout"`
	Offline        *bool  `toml:"offline"`

	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`

	Telemetry struct {
		Endpoint    string `toml:"endpoint"`
		ServiceName string `toml:"service_name"`
	} `toml:"telemetry"`
}

// parseFile overlays cfg with the TOML file at path. When required is false
// a missing file is not an error.
func parseFile(cfg *Config, path string, required bool) error {
	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("config path: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", resolved, err)
	}

	setString(&cfg.APIURL, fc.APIURL)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.LogLevel, fc.Log.Level)
	setString(&cfg.LogFormat, fc.Log.Format)
	setString(&cfg.OTelEndpoint, fc.Telemetry.Endpoint)
	setString(&cfg.ServiceName, fc.Telemetry.ServiceName)
	if fc.Offline != nil {
		cfg.StartOffline = *fc.Offline
	}
	if s := strings.TrimSpace(fc.RequestTimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse config %s: request_timeout: %w", resolved, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

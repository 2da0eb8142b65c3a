package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configEnvVar names the TOML file when no -config flag is given.
const configEnvVar = "USERDIR_CONFIG"

// environ merges the .env file under the real environment; variables that
// are already set win, as with godotenv.Load.
func (l Loader) environ() (map[string]string, error) {
	out := map[string]string{}
	if l.DotEnv != "" {
		vars, err := godotenv.Read(l.DotEnv)
		switch {
		case err == nil:
			for k, v := range vars {
				out[k] = v
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", l.DotEnv, err)
		}
	}
	for _, kv := range l.Environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out, nil
}

// parseEnv overlays cfg with USERDIR_* variables. Unset variables leave the
// field as it is.
func parseEnv(cfg *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

package config

import (
	"flag"
	"io"
)

// parseFlags overlays cfg with command-line flags. -config is accepted here
// so the full set parses cleanly; its value was already consumed.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("userdir", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath string
	fs.StringVar(&configPath, "config", "", "path to TOML config file")
	fs.StringVar(&configPath, "c", "", "path to TOML config file (short)")
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "random-user API base URL")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "path to the local database")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "HTTP request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	fs.BoolVar(&cfg.StartOffline, "offline", cfg.StartOffline, "start in manual offline mode")
	fs.StringVar(&cfg.OTelEndpoint, "otel-endpoint", cfg.OTelEndpoint, "OTLP/HTTP endpoint for traces")

	return fs.Parse(args)
}

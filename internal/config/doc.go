// Package config loads runtime configuration for the userdir CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. TOML file named by -config / -c, or USERDIR_CONFIG, or
//     ~/.config/userdir/config.toml when present.
//  3. Environment variables (USERDIR_*), with ./.env filling in unset ones.
//  4. Command-line flags, which override everything else.
//
// # TOML layout
//
//	api_url         = "https://randomuser.me/api"
//	database_path   = "~/.local/share/userdir/userdir.db"
//	request_timeout = "10s"
//	offline         = false
//
//	[log]
//	level  = "warn"
//	format = "text"
//
//	[telemetry]
//	endpoint     = "http://localhost:4318"
//	service_name = "userdir"
//
// Supported flags
//
//	-api string            API base URL
//	-db string             database path
//	-timeout duration      HTTP request timeout
//	-log-level string      debug, info, warn or error
//	-log-format string     text or json
//	-offline               start in manual offline mode
//	-otel-endpoint string  OTLP/HTTP trace endpoint
package config

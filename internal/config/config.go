package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdir/internal/flagx"
	"github.com/dmitrijs2005/userdir/internal/randomuser"
)

const (
	defaultConfigPath   = "~/.config/userdir/config.toml"
	defaultDatabasePath = "~/.local/share/userdir/userdir.db"
	defaultTimeout      = 10 * time.Second
	defaultLogLevel     = "warn"
	defaultLogFormat    = "text"
	defaultServiceName  = "userdir"
)

// Config holds runtime settings for the directory CLI.
type Config struct {
	APIURL         string        `env:"USERDIR_API_URL"`
	DatabasePath   string        `env:"USERDIR_DB_PATH"`
	RequestTimeout time.Duration `env:"USERDIR_REQUEST_TIMEOUT"`
	LogLevel       string        `env:"USERDIR_LOG_LEVEL"`
	LogFormat      string        `env:"USERDIR_LOG_FORMAT"`
	StartOffline   bool          `env:"USERDIR_OFFLINE"`
	OTelEndpoint   string        `env:"USERDIR_OTEL_ENDPOINT"`
	ServiceName    string        `env:"USERDIR_SERVICE_NAME"`
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = randomuser.DefaultBaseURL
	c.DatabasePath = defaultDatabasePath
	c.RequestTimeout = defaultTimeout
	c.LogLevel = defaultLogLevel
	c.LogFormat = defaultLogFormat
	c.ServiceName = defaultServiceName
}

// Loader reads configuration from a fixed set of sources. The zero value
// reads nothing but defaults and args.
type Loader struct {
	// Environ is the process environment in "KEY=value" form.
	Environ []string
	// DotEnv is an optional .env file; a missing file is ignored.
	DotEnv string
	// DefaultFile is the TOML file read when no -config flag or
	// USERDIR_CONFIG is set; a missing file is ignored.
	DefaultFile string
}

// Load reads the process environment, ./.env and the default config file,
// then args.
func Load(args []string) (*Config, error) {
	return Loader{
		Environ:     os.Environ(),
		DotEnv:      ".env",
		DefaultFile: defaultConfigPath,
	}.Load(args)
}

// Load builds a Config from defaults, the TOML file, the environment and
// finally args. Later sources override earlier ones.
func (l Loader) Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	environ, err := l.environ()
	if err != nil {
		return nil, err
	}

	path, required := flagx.ConfigPath(args), true
	if path == "" {
		path = environ[configEnvVar]
	}
	if path == "" {
		path, required = l.DefaultFile, false
	}
	if path != "" {
		if err := parseFile(cfg, path, required); err != nil {
			return nil, err
		}
	}

	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.APIURL = strings.TrimSpace(c.APIURL)
	if c.APIURL == "" {
		c.APIURL = randomuser.DefaultBaseURL
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		c.DatabasePath = defaultDatabasePath
	}
	path, err := expandPath(c.DatabasePath)
	if err != nil {
		return fmt.Errorf("database path: %w", err)
	}
	c.DatabasePath = path
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if strings.TrimSpace(c.ServiceName) == "" {
		c.ServiceName = defaultServiceName
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

const DefaultServerBaseURL = "http://legismente.ddns.net:3000"

// Config holds runtime settings for the ArcaneDex CLI.
type Config struct {
	ServerBaseURL       string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	DatabasePath        string
	PageSize            int
	OfflinePageSize     int
	RequestsPerSecond   float64
	// ProbeAddr is an optional host:port dialed to confirm reachability on top
	// of the interface check. Empty disables the dial.
	ProbeAddr              string
	ClearTokenOnDisconnect bool
	LogLevel               string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = DefaultServerBaseURL
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "arcanedex.db"
	c.PageSize = 6
	c.OfflinePageSize = 10
	c.RequestsPerSecond = 5
	c.ProbeAddr = ""
	c.ClearTokenOnDisconnect = true
	c.LogLevel = "info"
}

// Validate reports the first setting that cannot work at runtime.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server base url %q", c.ServerBaseURL)
	}
	if c.OnlineCheckInterval <= 0 {
		return errors.New("online check interval must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.PageSize <= 0 || c.OfflinePageSize <= 0 {
		return errors.New("page sizes must be positive")
	}
	if c.RequestsPerSecond <= 0 {
		return errors.New("requests per second must be positive")
	}
	if c.DatabasePath == "" {
		return errors.New("database path is empty")
	}
	return nil
}

// Load builds a Config from defaults, the environment, an optional config
// file and the given command-line arguments (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics when the configuration cannot
// be built; the CLI cannot start without one.
func LoadConfig() *Config {
	loadDotEnv(".env")

	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}

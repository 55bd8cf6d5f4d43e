package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "ARCANEDEX_"

// loadDotEnv copies variables from path into the process environment without
// overriding ones that are already set. A missing file is not an error.
func loadDotEnv(path string) {
	_ = godotenv.Load(path)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func parseEnv(cfg *Config) error {
	if v, ok := lookup("SERVER_URL"); ok {
		cfg.ServerBaseURL = v
	}
	if v, ok := lookup("DATABASE_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup("PROBE_ADDR"); ok {
		cfg.ProbeAddr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}

	durations := map[string]*time.Duration{
		"ONLINE_CHECK_INTERVAL": &cfg.OnlineCheckInterval,
		"REQUEST_TIMEOUT":       &cfg.RequestTimeout,
	}
	for name, dst := range durations {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"PAGE_SIZE":         &cfg.PageSize,
		"OFFLINE_PAGE_SIZE": &cfg.OfflinePageSize,
	}
	for name, dst := range ints {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = n
		}
	}

	if v, ok := lookup("REQUESTS_PER_SECOND"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sREQUESTS_PER_SECOND: %w", envPrefix, err)
		}
		cfg.RequestsPerSecond = f
	}
	if v, ok := lookup("CLEAR_TOKEN_ON_DISCONNECT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCLEAR_TOKEN_ON_DISCONNECT: %w", envPrefix, err)
		}
		cfg.ClearTokenOnDisconnect = b
	}

	return nil
}

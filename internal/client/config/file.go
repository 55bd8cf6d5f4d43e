package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/arcanedex/internal/flagx"
	"github.com/dmitrijs2005/arcanedex/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used exclusively for file decoding. Pointer fields
// distinguish "absent" from a zero value so partial files only override what
// they mention.
type fileConfig struct {
	ServerBaseURL          *string         `json:"server_base_url" yaml:"server_base_url"`
	OnlineCheckInterval    *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	RequestTimeout         *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath           *string         `json:"database_path" yaml:"database_path"`
	PageSize               *int            `json:"page_size" yaml:"page_size"`
	OfflinePageSize        *int            `json:"offline_page_size" yaml:"offline_page_size"`
	RequestsPerSecond      *float64        `json:"requests_per_second" yaml:"requests_per_second"`
	ProbeAddr              *string         `json:"probe_addr" yaml:"probe_addr"`
	ClearTokenOnDisconnect *bool           `json:"clear_token_on_disconnect" yaml:"clear_token_on_disconnect"`
	LogLevel               *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config in args, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return err
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *fc.ServerBaseURL
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.PageSize != nil {
		cfg.PageSize = *fc.PageSize
	}
	if fc.OfflinePageSize != nil {
		cfg.OfflinePageSize = *fc.OfflinePageSize
	}
	if fc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *fc.RequestsPerSecond
	}
	if fc.ProbeAddr != nil {
		cfg.ProbeAddr = *fc.ProbeAddr
	}
	if fc.ClearTokenOnDisconnect != nil {
		cfg.ClearTokenOnDisconnect = *fc.ClearTokenOnDisconnect
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
}

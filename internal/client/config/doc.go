// Package config loads runtime configuration for the ArcaneDex CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with ARCANEDEX_, optionally read from a
//     .env file in the working directory.
//  3. Optional config file selected via -c or -config. Files ending in .yaml
//     or .yml are decoded as YAML, anything else as JSON.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the ArcaneDex API
//	-i int      online status check interval (seconds)
//	-d string   path to the local SQLite database
//	-p int      catalog page size
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "5s" or
// integer nanoseconds. Absent keys keep their previous value:
//
//	{
//	  "server_base_url": "http://localhost:3000",
//	  "online_check_interval": "5s",
//	  "request_timeout": "15s",
//	  "database_path": "arcanedex.db",
//	  "page_size": 6,
//	  "offline_page_size": 10,
//	  "requests_per_second": 5,
//	  "probe_addr": "",
//	  "clear_token_on_disconnect": true,
//	  "log_level": "info"
//	}
package config

// Package config loads runtime configuration for the MediaVault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//  4. Environment variables (see parseEnv), which override everything else.
//
// Supported flags
//
//	-a string   base URL of the MediaVault server
//	-t int      request timeout (seconds)
//	-k          skip TLS certificate verification (self-signed servers)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_addr": "https://127.0.0.1:8443",
//	  "api_key": "dev-key",
//	  "output_dir": ".",
//	  "request_timeout": "30s",
//	  "insecure_tls": false
//	}
//
// # Environment
//
//	MEDIAVAULT_API_KEY   API key presented to the server
//
// Primary API
//
//   - type Config                     — holds the CLI settings
//   - func LoadConfig() *Config       — builds Config by applying all sources
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config

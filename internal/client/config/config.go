package config

import "time"

// Config holds runtime settings for the MediaVault CLI.
//
// Fields:
//   - ServerAddr: base URL of the MediaVault server.
//   - APIKey: key presented to the server on every request.
//   - OutputDir: directory fetched artifacts are written into.
//   - RequestTimeout: overall budget for one server request.
//   - InsecureTLS: accept self-signed server certificates.
type Config struct {
	ServerAddr     string
	APIKey         string
	OutputDir      string
	RequestTimeout time.Duration
	InsecureTLS    bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "https://127.0.0.1:8443"
	c.OutputDir = "."
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), command-line flags and environment variables. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}

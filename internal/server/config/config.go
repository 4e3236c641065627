// Package config assembles the server configuration from defaults,
// an optional JSON file, command line flags and environment variables,
// in that order of precedence.
package config

import (
	"strings"
	"time"
)

type Config struct {
	Addr string

	APIKeys []string

	StagingDir   string
	ReapInterval time.Duration
	MaxFileAge   time.Duration

	FetchTimeoutPerAttempt time.Duration
	FetchMaxAttempts       int
	FetchBaseDelay         time.Duration
	FetchMaxResponseBytes  int64
	AllowedHosts           []string

	RateLimitPerSecond float64
	RateLimitBurst     int

	CORSAllowOrigin string

	TLSCertFile string
	TLSKeyFile  string
}

func LoadDefaults() *Config {
	return &Config{
		Addr:                   ":8443",
		StagingDir:             "",
		ReapInterval:           1 * time.Minute,
		MaxFileAge:             15 * time.Minute,
		FetchTimeoutPerAttempt: 10 * time.Second,
		FetchMaxAttempts:       3,
		FetchBaseDelay:         500 * time.Millisecond,
		FetchMaxResponseBytes:  64 << 20,
		RateLimitPerSecond:     5,
		RateLimitBurst:         10,
		CORSAllowOrigin:        "*",
	}
}

func LoadConfig() *Config {
	config := LoadDefaults()
	parseJson(config)
	parseFlags(config)
	parseEnv(config)
	return config
}

// splitList turns a comma separated value into a slice, dropping
// surrounding whitespace and empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mediavault/internal/flagx"
	"github.com/dmitrijs2005/mediavault/internal/timex"
)

// JsonConfig mirrors Config for the JSON file, with durations accepting
// either "10s" strings or plain nanosecond numbers.
type JsonConfig struct {
	Addr                   string         `json:"addr"`
	APIKeys                []string       `json:"api_keys"`
	StagingDir             string         `json:"staging_dir"`
	ReapInterval           timex.Duration `json:"reap_interval"`
	MaxFileAge             timex.Duration `json:"max_file_age"`
	FetchTimeoutPerAttempt timex.Duration `json:"fetch_timeout_per_attempt"`
	FetchMaxAttempts       int            `json:"fetch_max_attempts"`
	FetchBaseDelay         timex.Duration `json:"fetch_base_delay"`
	FetchMaxResponseBytes  int64          `json:"fetch_max_response_bytes"`
	AllowedHosts           []string       `json:"allowed_hosts"`
	RateLimitPerSecond     float64        `json:"rate_limit_per_second"`
	RateLimitBurst         int            `json:"rate_limit_burst"`
	CORSAllowOrigin        string         `json:"cors_allow_origin"`
	TLSCertFile            string         `json:"tls_cert_file"`
	TLSKeyFile             string         `json:"tls_key_file"`
}

// parseJson overlays the config with values from the JSON file named by the
// CONFIG environment variable or the -c/-config flag. Fields absent from the
// file keep their current values. An unreadable or invalid file is a startup
// error, so it panics.
func parseJson(config *Config) {
	configFile := flagx.JsonConfigFlags()

	if envVal, ok := os.LookupEnv("CONFIG"); ok {
		configFile = envVal
	}

	if configFile == "" {
		return
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		panic(err)
	}

	// Seed the DTO with the current values so Unmarshal only touches the
	// fields the file actually specifies.
	parsed := &JsonConfig{
		Addr:                   config.Addr,
		APIKeys:                config.APIKeys,
		StagingDir:             config.StagingDir,
		ReapInterval:           timex.Duration{Duration: config.ReapInterval},
		MaxFileAge:             timex.Duration{Duration: config.MaxFileAge},
		FetchTimeoutPerAttempt: timex.Duration{Duration: config.FetchTimeoutPerAttempt},
		FetchMaxAttempts:       config.FetchMaxAttempts,
		FetchBaseDelay:         timex.Duration{Duration: config.FetchBaseDelay},
		FetchMaxResponseBytes:  config.FetchMaxResponseBytes,
		AllowedHosts:           config.AllowedHosts,
		RateLimitPerSecond:     config.RateLimitPerSecond,
		RateLimitBurst:         config.RateLimitBurst,
		CORSAllowOrigin:        config.CORSAllowOrigin,
		TLSCertFile:            config.TLSCertFile,
		TLSKeyFile:             config.TLSKeyFile,
	}

	if err := json.Unmarshal(data, parsed); err != nil {
		panic(err)
	}

	config.Addr = parsed.Addr
	config.APIKeys = parsed.APIKeys
	config.StagingDir = parsed.StagingDir
	config.ReapInterval = parsed.ReapInterval.Duration
	config.MaxFileAge = parsed.MaxFileAge.Duration
	config.FetchTimeoutPerAttempt = parsed.FetchTimeoutPerAttempt.Duration
	config.FetchMaxAttempts = parsed.FetchMaxAttempts
	config.FetchBaseDelay = parsed.FetchBaseDelay.Duration
	config.FetchMaxResponseBytes = parsed.FetchMaxResponseBytes
	config.AllowedHosts = parsed.AllowedHosts
	config.RateLimitPerSecond = parsed.RateLimitPerSecond
	config.RateLimitBurst = parsed.RateLimitBurst
	config.CORSAllowOrigin = parsed.CORSAllowOrigin
	config.TLSCertFile = parsed.TLSCertFile
	config.TLSKeyFile = parsed.TLSKeyFile
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mediavault/internal/flagx"
	"github.com/dmitrijs2005/mediavault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "30s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerAddr     string         `json:"server_addr"`
	APIKey         string         `json:"api_key"`
	OutputDir      string         `json:"output_dir"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	InsecureTLS    bool           `json:"insecure_tls"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// The DTO is seeded with the current values, so fields the file omits
// keep their defaults. Read or unmarshal errors panic, since a broken
// config file is a startup failure.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		ServerAddr:     cfg.ServerAddr,
		APIKey:         cfg.APIKey,
		OutputDir:      cfg.OutputDir,
		RequestTimeout: timex.Duration{Duration: cfg.RequestTimeout},
		InsecureTLS:    cfg.InsecureTLS,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerAddr = jc.ServerAddr
	cfg.APIKey = jc.APIKey
	cfg.OutputDir = jc.OutputDir
	cfg.RequestTimeout = jc.RequestTimeout.Duration
	cfg.InsecureTLS = jc.InsecureTLS
}

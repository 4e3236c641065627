package config

import "os"

// parseEnv populates Config fields from environment variables. The API key
// lives here so it stays out of argv and shell history.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("MEDIAVAULT_API_KEY"); ok {
		cfg.APIKey = v
	}
}

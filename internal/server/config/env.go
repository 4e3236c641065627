package config

import "os"

// parseEnv overlays the config with environment variables. Only the API keys
// are read from the environment, so they can stay out of argv and files.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("MEDIAVAULT_API_KEYS"); ok {
		config.APIKeys = splitList(v)
	}
}

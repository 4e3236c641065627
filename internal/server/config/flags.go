package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/mediavault/internal/flagx"
)

// parseFlags overlays the config with command line flags. Flag defaults are
// initialized from the current config, so flags that are not passed leave it
// unchanged. A malformed flag is a startup error, so it panics.
func parseFlags(config *Config) {
	allowed := []string{
		"-a", "-k", "-d", "-i", "-m",
		"-t", "-n", "-b", "-x", "-l",
		"-r", "-u", "-g", "-e", "-y",
	}
	args := flagx.FilterArgs(os.Args[1:], allowed)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to listen on")
	apiKeys := fs.String("k", strings.Join(config.APIKeys, ","), "comma separated list of accepted API keys")
	fs.StringVar(&config.StagingDir, "d", config.StagingDir, "staging directory for decrypted artifacts, empty disables staging")
	fs.DurationVar(&config.ReapInterval, "i", config.ReapInterval, "interval between staging directory sweeps")
	fs.DurationVar(&config.MaxFileAge, "m", config.MaxFileAge, "age after which staged files are removed")
	fs.DurationVar(&config.FetchTimeoutPerAttempt, "t", config.FetchTimeoutPerAttempt, "timeout for a single download attempt")
	fs.IntVar(&config.FetchMaxAttempts, "n", config.FetchMaxAttempts, "maximum download attempts per request")
	fs.DurationVar(&config.FetchBaseDelay, "b", config.FetchBaseDelay, "base delay between download attempts")
	fs.Int64Var(&config.FetchMaxResponseBytes, "x", config.FetchMaxResponseBytes, "maximum accepted response size in bytes")
	allowedHosts := fs.String("l", strings.Join(config.AllowedHosts, ","), "comma separated list of expected download hosts")
	fs.Float64Var(&config.RateLimitPerSecond, "r", config.RateLimitPerSecond, "sustained requests per second per client")
	fs.IntVar(&config.RateLimitBurst, "u", config.RateLimitBurst, "burst size per client")
	fs.StringVar(&config.CORSAllowOrigin, "g", config.CORSAllowOrigin, "value for the Access-Control-Allow-Origin header")
	fs.StringVar(&config.TLSCertFile, "e", config.TLSCertFile, "path to the TLS certificate")
	fs.StringVar(&config.TLSKeyFile, "y", config.TLSKeyFile, "path to the TLS key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.APIKeys = splitList(*apiKeys)
	config.AllowedHosts = splitList(*allowedHosts)
}

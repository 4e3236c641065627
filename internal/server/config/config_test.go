package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	config := LoadDefaults()

	require.Equal(t, ":8443", config.Addr)
	require.Empty(t, config.APIKeys)
	require.Equal(t, "", config.StagingDir)
	require.Equal(t, 1*time.Minute, config.ReapInterval)
	require.Equal(t, 15*time.Minute, config.MaxFileAge)
	require.Equal(t, 10*time.Second, config.FetchTimeoutPerAttempt)
	require.Equal(t, 3, config.FetchMaxAttempts)
	require.Equal(t, 500*time.Millisecond, config.FetchBaseDelay)
	require.Equal(t, int64(64<<20), config.FetchMaxResponseBytes)
	require.Empty(t, config.AllowedHosts)
	require.Equal(t, float64(5), config.RateLimitPerSecond)
	require.Equal(t, 10, config.RateLimitBurst)
	require.Equal(t, "*", config.CORSAllowOrigin)
	require.Equal(t, "", config.TLSCertFile)
	require.Equal(t, "", config.TLSKeyFile)
}

func TestLoadConfig(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"main"}
	t.Setenv("CONFIG", "")
	t.Setenv("MEDIAVAULT_API_KEYS", "")

	config := LoadConfig()
	require.Equal(t, LoadDefaults(), config)
}

func TestLoadConfigEnvOverridesFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"main", "-k", "flagkey"}
	t.Setenv("CONFIG", "")
	t.Setenv("MEDIAVAULT_API_KEYS", "envkey1, envkey2")

	config := LoadConfig()
	require.Equal(t, []string{"envkey1", "envkey2"}, config.APIKeys)
}

func TestParseEnv(t *testing.T) {
	t.Run("api keys from environment", func(t *testing.T) {
		t.Setenv("MEDIAVAULT_API_KEYS", "alpha,beta")

		config := LoadDefaults()
		parseEnv(config)

		require.Equal(t, []string{"alpha", "beta"}, config.APIKeys)
	})

	t.Run("unset variable leaves config unchanged", func(t *testing.T) {
		config := LoadDefaults()
		config.APIKeys = []string{"keep"}
		parseEnv(config)

		require.Equal(t, []string{"keep"}, config.APIKeys)
	})
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "one", []string{"one"}},
		{"multiple", "one,two,three", []string{"one", "two", "three"}},
		{"whitespace trimmed", " one , two ", []string{"one", "two"}},
		{"empty items dropped", "one,,two,", []string{"one", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, splitList(tt.in))
		})
	}
}

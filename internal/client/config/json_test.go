package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads values from json", func(t *testing.T) {
		path := writeTempJSON(t, `{
			"server_addr": "https://vault.example.com",
			"api_key": "file-key",
			"output_dir": "/tmp/media",
			"request_timeout": "5s",
			"insecure_tls": true
		}`)
		os.Args = []string{"mediavault", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		require.Equal(t, "https://vault.example.com", cfg.ServerAddr)
		require.Equal(t, "file-key", cfg.APIKey)
		require.Equal(t, "/tmp/media", cfg.OutputDir)
		require.Equal(t, 5*time.Second, cfg.RequestTimeout)
		require.True(t, cfg.InsecureTLS)
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		path := writeTempJSON(t, `{"api_key": "file-key"}`)
		os.Args = []string{"mediavault", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		require.Equal(t, "file-key", cfg.APIKey)
		require.Equal(t, "https://127.0.0.1:8443", cfg.ServerAddr)
		require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	})

	t.Run("no config flag results in no changes", func(t *testing.T) {
		os.Args = []string{"mediavault"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		want := &Config{}
		want.LoadDefaults()
		require.Equal(t, want, cfg)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		path := writeTempJSON(t, `{broken`)
		os.Args = []string{"mediavault", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"mediavault", "-c", filepath.Join(t.TempDir(), "absent.json")}

		cfg := &Config{}
		cfg.LoadDefaults()
		require.Panics(t, func() { parseJson(cfg) })
	})
}

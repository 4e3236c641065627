package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/mediavault/internal/api"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Run("healthy server", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/healthz", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		c := NewHTTPClient(ts.URL, "", time.Second, false)
		require.NoError(t, c.Health(context.Background()))
	})

	t.Run("unreachable server", func(t *testing.T) {
		c := NewHTTPClient("http://127.0.0.1:1", "", time.Second, false)

		err := c.Health(context.Background())
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("failing server", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		c := NewHTTPClient(ts.URL, "", time.Second, false)
		require.Error(t, c.Health(context.Background()))
	})
}

func TestFetchMedia(t *testing.T) {
	t.Run("returns the artifact", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/v1/media", r.URL.Path)
			require.Equal(t, "secret-key", r.Header.Get(api.APIKeyHeader))
			require.NotEmpty(t, r.Header.Get(api.RequestIDHeader))

			var req api.MediaRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "https://cdn.example.com/blob", req.URL)
			require.Equal(t, "image", req.Category)

			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Content-Disposition", `attachment; filename="media.jpg"`)
			w.Header().Set(api.StagedNameHeader, "abc.jpg")
			_, _ = w.Write([]byte("picture bytes"))
		}))
		defer ts.Close()

		c := NewHTTPClient(ts.URL, "secret-key", time.Second, false)

		artifact, err := c.FetchMedia(context.Background(), "https://cdn.example.com/blob", "c2VjcmV0", "image")
		require.NoError(t, err)
		require.Equal(t, []byte("picture bytes"), artifact.Data)
		require.Equal(t, "image/jpeg", artifact.ContentType)
		require.Equal(t, "media.jpg", artifact.Filename)
		require.Equal(t, "abc.jpg", artifact.StagedName)
	})

	t.Run("maps auth failures", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "invalid api key"})
			}))

			c := NewHTTPClient(ts.URL, "wrong", time.Second, false)

			_, err := c.FetchMedia(context.Background(), "https://cdn.example.com/blob", "c2VjcmV0", "image")
			require.ErrorIs(t, err, ErrUnauthorized)
			require.Contains(t, err.Error(), "invalid api key")

			ts.Close()
		}
	})

	t.Run("keeps the server message", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "payload authentication failed"})
		}))
		defer ts.Close()

		c := NewHTTPClient(ts.URL, "", time.Second, false)

		_, err := c.FetchMedia(context.Background(), "https://cdn.example.com/blob", "c2VjcmV0", "image")
		require.Error(t, err)
		require.False(t, errors.Is(err, ErrUnauthorized))
		require.Contains(t, err.Error(), "payload authentication failed")
	})

	t.Run("plain text failure body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer ts.Close()

		c := NewHTTPClient(ts.URL, "", time.Second, false)

		_, err := c.FetchMedia(context.Background(), "https://cdn.example.com/blob", "c2VjcmV0", "image")
		require.Error(t, err)
		require.Contains(t, err.Error(), http.StatusText(http.StatusBadGateway))
	})

	t.Run("self signed server needs insecure mode", func(t *testing.T) {
		ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		strict := NewHTTPClient(ts.URL, "", time.Second, false)
		require.Error(t, strict.Health(context.Background()))

		relaxed := NewHTTPClient(ts.URL, "", time.Second, true)
		require.NoError(t, relaxed.Health(context.Background()))
	})
}

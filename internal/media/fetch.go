package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dmitrijs2005/mediavault/internal/logging"
)

// FetchConfig bounds a fetch operation. Values come from the service
// configuration; the fetcher itself never consults the environment.
type FetchConfig struct {
	// TimeoutPerAttempt bounds each individual GET, not the whole operation.
	TimeoutPerAttempt time.Duration
	// MaxAttempts is the total number of GETs before giving up.
	MaxAttempts int
	// BaseDelay is multiplied by the attempt number for the sleep between
	// attempts (linear backoff).
	BaseDelay time.Duration
	// MaxResponseBytes caps the response body; larger bodies fail instead of
	// being truncated.
	MaxResponseBytes int64
	// AllowedHosts, when non-empty, marks the expected content hosts. A miss
	// is logged, not rejected, since CDN endpoints rotate.
	AllowedHosts []string
}

// Fetcher retrieves encrypted media objects over HTTPS with bounded retries.
type Fetcher struct {
	cfg    FetchConfig
	client *http.Client
	logger logging.Logger
}

func NewFetcher(cfg FetchConfig, logger logging.Logger) *Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.TimeoutPerAttempt <= 0 {
		cfg.TimeoutPerAttempt = 10 * time.Second
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = 64 << 20
	}

	// Payloads are ciphertext and do not compress; keep transfers
	// identity-encoded.
	transport := &http.Transport{
		Proxy:              http.ProxyFromEnvironment,
		DisableCompression: true,
	}

	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Transport: transport},
		logger: logger,
	}
}

// Fetch downloads the object at rawURL. The scheme must be https; that is
// checked before any network traffic. Failed attempts are retried with a
// linear backoff until the attempt budget is spent, then a network error
// wrapping the final cause is returned. Cancelling ctx stops both the
// in-flight request and the backoff sleep.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, validationErrorf("media url is not valid")
	}
	if u.Scheme != "https" {
		return nil, validationErrorf("media url scheme must be https")
	}
	if len(f.cfg.AllowedHosts) > 0 && !f.hostAllowed(u.Hostname()) {
		f.logger.Warn(ctx, "media host is not on the allowlist", "host", u.Hostname())
	}

	var body []byte
	attempts := 0

	op := func() error {
		attempts++
		b, err := f.attempt(ctx, rawURL)
		if err != nil {
			f.logger.Warn(ctx, "fetch attempt failed", "attempt", attempts, "error", err.Error())
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{base: f.cfg.BaseDelay}, uint64(f.cfg.MaxAttempts-1)),
		ctx,
	)

	if err := backoff.Retry(op, policy); err != nil {
		var me *Error
		if errors.As(err, &me) && me.kind == KindNetwork {
			return nil, me
		}
		return nil, networkError(fmt.Sprintf("fetch failed after %d attempts", attempts), err)
	}

	f.logger.Debug(ctx, "fetched encrypted payload", "bytes", len(body), "attempts", attempts)
	return body, nil
}

// attempt performs a single GET bounded by the per-attempt timeout. An
// oversized response is wrapped as permanent, since the origin will serve
// the same object on every retry.
func (f *Fetcher) attempt(ctx context.Context, rawURL string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.cfg.TimeoutPerAttempt)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	if resp.ContentLength > f.cfg.MaxResponseBytes {
		return nil, backoff.Permanent(networkError("response exceeds size limit", nil))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxResponseBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.cfg.MaxResponseBytes {
		return nil, backoff.Permanent(networkError("response exceeds size limit", nil))
	}

	return body, nil
}

func (f *Fetcher) hostAllowed(host string) bool {
	for _, h := range f.cfg.AllowedHosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// linearBackOff sleeps base, 2*base, 3*base and so on between attempts.
type linearBackOff struct {
	base time.Duration
	n    int
}

func (l *linearBackOff) NextBackOff() time.Duration {
	l.n++
	return time.Duration(l.n) * l.base
}

func (l *linearBackOff) Reset() { l.n = 0 }

package media

import (
	"context"

	"github.com/dmitrijs2005/mediavault/internal/logging"
)

// PayloadFetcher retrieves the encrypted object behind a URL.
type PayloadFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Service runs the full pipeline for one request: fetch the encrypted
// object, verify it, decrypt it, and dispose of the key material.
type Service struct {
	fetcher PayloadFetcher
	logger  logging.Logger
}

func NewService(fetcher PayloadFetcher, logger logging.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger}
}

// DecryptFromURL fetches the object at rawURL and returns the decrypted
// plaintext. The key set is wiped before the call returns on every path,
// success or failure; callers that need extra safety may defer their own
// Wipe, which is a no-op by then.
func (s *Service) DecryptFromURL(ctx context.Context, rawURL string, keys *ExpandedKeySet) ([]byte, error) {
	defer keys.Wipe()

	if err := checkKeySet(keys); err != nil {
		return nil, err
	}

	payload, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "verifying payload", "bytes", len(payload))

	plaintext, err := Decrypt(payload, keys)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "payload decrypted", "bytes", len(plaintext))
	return plaintext, nil
}

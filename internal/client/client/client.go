package client

import "context"

// Client is the transport used by the CLI to talk to the MediaVault server.
type Client interface {
	Health(ctx context.Context) error
	FetchMedia(ctx context.Context, mediaURL, secretB64, category string) (*MediaArtifact, error)
}

// MediaArtifact is one decrypted object returned by the server.
type MediaArtifact struct {
	Data        []byte
	ContentType string
	Filename    string
	StagedName  string
}

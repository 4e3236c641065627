// Package api defines the wire-level types and header names shared by the
// MediaVault server and client.
package api

// ServiceName identifies the service in health responses and logs.
const ServiceName = "mediavault"

// Header names used by the HTTP API.
const (
	APIKeyHeader     = "X-Api-Key"
	RequestIDHeader  = "X-Request-Id"
	StagedNameHeader = "X-Staged-Name"
)

// MediaRequest is the JSON body of POST /v1/media.
type MediaRequest struct {
	URL      string `json:"url"`
	Secret   string `json:"secret"`
	Category string `json:"category"`
}

// ErrorResponse is the only error body shape the API emits.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

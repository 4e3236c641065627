// Package client implements the HTTP transport the CLI uses to reach the
// MediaVault server. The Client interface hides the wire details so the
// command layer can be tested against a stub.
package client

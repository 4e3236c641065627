// Package cli implements the MediaVault command line client.
//
// Usage:
//
//	mediavault <command> [flags]
//
// Commands:
//
//	fetch    download and decrypt one media object
//	health   check that the server is reachable
//
// The fetch command prompts for any value not given as a flag. The media
// secret is always read without echo when the -s flag is omitted.
package cli

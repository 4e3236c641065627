// Package media implements the fetch, verify and decrypt pipeline for
// encrypted media objects: key expansion from a shared secret, bounded-retry
// fetching, authenticated CBC decryption, and zeroization of key material.
//
// The package exposes two entry points to the service layer: Expand and
// Service.DecryptFromURL. Everything else supports those two calls.
package media

package media

import (
	"crypto/sha256"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// SecretSize is the required decoded length of the shared secret.
	SecretSize = 32

	cipherKeySize    = 32
	macKeySize       = 32
	ivSize           = 16
	reservedTailSize = 32

	expandedSize = cipherKeySize + macKeySize + ivSize + reservedTailSize
)

// ExpandedKeySet holds the key material for one decrypt operation. It is
// derived deterministically from (secret, category), owned by the single
// in-flight operation, and wiped before that operation returns.
type ExpandedKeySet struct {
	CipherKey    []byte
	MACKey       []byte
	IV           []byte
	ReservedTail []byte
}

// Expand decodes the base64 secret and stretches it into an ExpandedKeySet
// using HKDF (HMAC-SHA-256, zero salt, the category's domain-separation
// string as context). The 112-byte output is partitioned as cipher key,
// MAC key, IV and a reserved tail, in that order.
//
// Pure and deterministic: identical inputs always produce byte-identical
// key sets.
func Expand(secretB64, category string) (*ExpandedKeySet, error) {
	secret, err := base64.StdEncoding.DecodeString(secretB64)
	if err != nil {
		return nil, validationErrorf("secret is not valid base64")
	}
	defer wipeBytes(secret)

	if len(secret) != SecretSize {
		return nil, validationErrorf("secret must decode to exactly %d bytes", SecretSize)
	}

	cat, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	info, err := cat.domainInfo()
	if err != nil {
		return nil, err
	}

	okm := make([]byte, expandedSize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, info), okm); err != nil {
		return nil, internalError(err)
	}

	// The four slices cover okm completely and share its backing array, so a
	// wipe of the key set leaves no live copy of the derived bytes.
	return &ExpandedKeySet{
		CipherKey:    okm[0:cipherKeySize:cipherKeySize],
		MACKey:       okm[cipherKeySize : cipherKeySize+macKeySize : cipherKeySize+macKeySize],
		IV:           okm[cipherKeySize+macKeySize : cipherKeySize+macKeySize+ivSize : cipherKeySize+macKeySize+ivSize],
		ReservedTail: okm[cipherKeySize+macKeySize+ivSize : expandedSize : expandedSize],
	}, nil
}

// Wipe overwrites all four buffers with zeros. It runs on every exit path of
// the enclosing decrypt operation, usually deferred. Idempotent; wiping an
// already-wiped or nil set is a no-op.
func (k *ExpandedKeySet) Wipe() {
	if k == nil {
		return
	}
	wipeBytes(k.CipherKey)
	wipeBytes(k.MACKey)
	wipeBytes(k.IV)
	wipeBytes(k.ReservedTail)
}

// wipeBytes overwrites b with zeros. Does nothing for a nil slice.
func wipeBytes(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

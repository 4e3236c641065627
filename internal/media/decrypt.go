package media

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
)

// TagSize is the length of the truncated authentication tag prefixed to
// every encrypted payload.
const TagSize = 10

// A MAC mismatch and a padding or alignment failure share one external
// message, so a caller probing the endpoint cannot tell the two apart and
// use the difference as a padding oracle.
const msgIntegrityFailure = "payload authentication failed"

// Decrypt verifies and decrypts an encrypted payload. The first TagSize
// bytes are a truncated HMAC-SHA-256 tag over the remaining ciphertext; the
// tag is checked in constant time before any decryption happens. On a match
// the ciphertext is decrypted with AES-256-CBC and PKCS#7 padding is
// removed.
//
// The caller keeps ownership of keys and is responsible for wiping them.
func Decrypt(payload []byte, keys *ExpandedKeySet) ([]byte, error) {
	if err := checkKeySet(keys); err != nil {
		return nil, err
	}

	if len(payload) < TagSize {
		return nil, decryptionError("payload too small")
	}
	tag, body := payload[:TagSize], payload[TagSize:]

	mac := hmac.New(sha256.New, keys.MACKey)
	mac.Write(body)
	if !hmac.Equal(tag, mac.Sum(nil)[:TagSize]) {
		return nil, decryptionError(msgIntegrityFailure)
	}

	if len(body) == 0 || len(body)%aes.BlockSize != 0 {
		return nil, decryptionError(msgIntegrityFailure)
	}

	block, err := aes.NewCipher(keys.CipherKey)
	if err != nil {
		return nil, internalError(err)
	}

	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, keys.IV).CryptBlocks(plaintext, body)

	return unpadPKCS7(plaintext)
}

func checkKeySet(keys *ExpandedKeySet) error {
	if keys == nil {
		return validationErrorf("key set is required")
	}
	if len(keys.CipherKey) != cipherKeySize || len(keys.MACKey) != macKeySize || len(keys.IV) != ivSize {
		return validationErrorf("malformed key set")
	}
	return nil
}

// unpadPKCS7 strips PKCS#7 padding from b. Any inconsistency reports the
// same message as a MAC mismatch.
func unpadPKCS7(b []byte) ([]byte, error) {
	if len(b) == 0 || len(b)%aes.BlockSize != 0 {
		return nil, decryptionError(msgIntegrityFailure)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, decryptionError(msgIntegrityFailure)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, decryptionError(msgIntegrityFailure)
		}
	}
	return b[:len(b)-n], nil
}

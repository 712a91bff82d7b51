package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// Hasher turns plaintext passwords into stored credentials. The transform is a
// keyed MAC of the plaintext under a server-wide secret: deterministic, with no
// per-password salt, so the same plaintext always yields the same credential.
// The secret acts as a global salt; equal passwords collide in storage.
type Hasher struct {
	secret []byte
}

func NewHasher(secret string) (*Hasher, error) {
	if secret == "" {
		return nil, errors.New("password secret must not be empty")
	}
	return &Hasher{secret: []byte(secret)}, nil
}

// Hash returns the stored credential for plaintext.
func (h *Hasher) Hash(plaintext string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the credential for plaintext and compares it against the
// stored one in constant time. Mismatched lengths fail.
func (h *Hasher) Verify(plaintext, credential string) bool {
	computed := h.Hash(plaintext)
	if len(computed) != len(credential) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(credential)) == 1
}

package token

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// ErrInvalidToken is returned for every verification failure. Malformed,
// forged, and expired tokens are deliberately indistinguishable so expiry
// cannot be used as an oracle.
var ErrInvalidToken = errors.New("invalid or expired token")

// TTL tiers for issued tokens.
const (
	TTLSession    = 12 * time.Hour
	TTLRememberMe = 30 * 24 * time.Hour
	// TTLUnbounded is the "effectively forever" tier for kiosk-style clients.
	TTLUnbounded = 10 * 365 * 24 * time.Hour
)

// Identity is the payload carried by a session token.
type Identity struct {
	UserID uint
	Name   string
	Wing   *string
}

// Codec issues and verifies self-contained bearer tokens. There is no
// server-side session store and no revocation list: a password change does not
// void tokens already in circulation. Sensitive flows compensate by requiring
// the current password again.
type Codec interface {
	Issue(identity Identity, ttl time.Duration) (string, error)
	Verify(token string) (*Identity, error)
}

type sessionClaims struct {
	Name string  `json:"name"`
	Wing *string `json:"wing,omitempty"`
	jwt.RegisteredClaims
}

type jwtCodec struct {
	key []byte
	now func() time.Time
}

// NewCodec builds a JWT (HS256) codec. When sessionSecret is set it is used as
// the signing key directly; otherwise the key is derived from passwordSecret
// via HKDF so the hashing secret is never reused as raw key material.
func NewCodec(passwordSecret, sessionSecret string) (Codec, error) {
	if sessionSecret != "" {
		return &jwtCodec{key: []byte(sessionSecret), now: time.Now}, nil
	}
	if passwordSecret == "" {
		return nil, errors.New("token codec requires a secret")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(passwordSecret), nil, []byte("wingscore session tokens"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return &jwtCodec{key: key, now: time.Now}, nil
}

func (c *jwtCodec) Issue(identity Identity, ttl time.Duration) (string, error) {
	now := c.now()
	claims := sessionClaims{
		Name: identity.Name,
		Wing: identity.Wing,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", identity.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.key)
	if err != nil {
		return "", err
	}

	return signed, nil
}

func (c *jwtCodec) Verify(tokenString string) (*Identity, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*sessionClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	var userID uint
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID: userID,
		Name:   claims.Name,
		Wing:   claims.Wing,
	}, nil
}

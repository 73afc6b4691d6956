package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid session token")

// Signer protects opaque session identifiers carried in cookies.
type Signer interface {
	Sign(id string) string
	Verify(token string) (string, error)
}

// HMACSigner signs session identifiers with HMAC-SHA256.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner builds HMACSigner with provided secret.
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// Sign returns "<id>.<signature>".
func (s *HMACSigner) Sign(id string) string {
	return id + "." + s.mac(id)
}

// Verify checks the signature and returns the embedded identifier.
func (s *HMACSigner) Verify(token string) (string, error) {
	idx := strings.LastIndexByte(token, '.')
	if idx <= 0 || idx == len(token)-1 {
		return "", ErrInvalidToken
	}

	id, sig := token[:idx], token[idx+1:]
	if !hmac.Equal([]byte(s.mac(id)), []byte(sig)) {
		return "", ErrInvalidToken
	}
	return id, nil
}

func (s *HMACSigner) mac(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

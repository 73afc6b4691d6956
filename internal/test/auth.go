package test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/thermopolio/thermopolio/internal/domain/model"
	pkgAuth "github.com/thermopolio/thermopolio/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	if len(password) < pkgAuth.MinPasswordLength {
		return "", pkgAuth.ErrPasswordTooShort
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// SignerStub signs session identifiers with a fixed "signed:" prefix.
type SignerStub struct {
	VerifyFn func(string) (string, error)
}

// Sign returns a predictable token for id.
func (s SignerStub) Sign(id string) string {
	return "signed:" + id
}

// Verify strips the prefix added by Sign.
func (s SignerStub) Verify(token string) (string, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(token)
	}
	id, ok := strings.CutPrefix(token, "signed:")
	if !ok || id == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return id, nil
}

// NotifierStub records notifications instead of dispatching them.
type NotifierStub struct {
	mu   sync.Mutex
	Sent []model.Notification
}

// Notify records n.
func (s *NotifierStub) Notify(ctx context.Context, n model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, n)
}

// For returns the notifications addressed to userID.
func (s *NotifierStub) For(userID int64) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Notification
	for _, n := range s.Sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// PusherStub records realtime pushes.
type PusherStub struct {
	mu          sync.Mutex
	Pushed      map[int64][]any
	Connections int
}

// Push records payload for userID and reports Connections deliveries.
func (s *PusherStub) Push(userID int64, payload any) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Pushed == nil {
		s.Pushed = make(map[int64][]any)
	}
	s.Pushed[userID] = append(s.Pushed[userID], payload)
	return s.Connections
}

// Count returns the number of payloads pushed to userID.
func (s *PusherStub) Count(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Pushed[userID])
}

// ErrStub is a generic failure used by tests.
var ErrStub = errors.New("stub failure")

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Signer = SignerStub{}

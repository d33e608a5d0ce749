// Package session owns the console's authentication state: the bearer
// token, the cached admin profile and the remember-me flag. It stores all
// three under fixed keys in a kvstore.Store and never talks to the network;
// whether the token is still honoured is only ever discovered by the guard
// or the gateway.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/shashiranjanraj/vyapar/pkg/kvstore"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// Storage keys, kept compatible with the original back-office console so a
// migrated state file keeps working.
const (
	KeyAuthToken  = "admin_auth_token"
	KeyAdminInfo  = "admin_info"
	KeyRememberMe = "admin_remember_me"
)

// Admin is the cached identity of the logged-in administrator.
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store exposes the current session over a key-value backend.
type Store struct {
	kv kvstore.Store
}

// New wraps a key-value backend.
func New(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// IsAuthenticated reports whether a non-empty token is present. It says
// nothing about whether the server still accepts it.
func (s *Store) IsAuthenticated() bool {
	token, ok := s.kv.Get(KeyAuthToken)
	return ok && token != ""
}

// Token returns the stored bearer token, if any.
func (s *Store) Token() (string, bool) {
	token, ok := s.kv.Get(KeyAuthToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// CurrentAdmin returns the cached admin profile, or nil when absent.
// Malformed stored JSON is treated as absent rather than an error: the
// profile is a display cache, not a source of truth.
func (s *Store) CurrentAdmin() *Admin {
	raw, ok := s.kv.Get(KeyAdminInfo)
	if !ok || raw == "" {
		return nil
	}

	var admin Admin
	if err := json.Unmarshal([]byte(raw), &admin); err != nil {
		logger.Warn("session: malformed admin profile in store, ignoring")
		return nil
	}
	return &admin
}

// RememberMe reports whether the operator asked to be remembered.
func (s *Store) RememberMe() bool {
	v, ok := s.kv.Get(KeyRememberMe)
	return ok && v == "true"
}

// Login persists the token, profile and remember-me flag. The token is
// written last so a reader never observes a token without its profile.
func (s *Store) Login(token string, admin Admin, rememberMe bool) error {
	raw, err := json.Marshal(admin)
	if err != nil {
		return fmt.Errorf("session: marshal admin: %w", err)
	}

	if err := s.kv.Set(KeyAdminInfo, string(raw)); err != nil {
		return fmt.Errorf("session: store admin: %w", err)
	}
	if rememberMe {
		if err := s.kv.Set(KeyRememberMe, "true"); err != nil {
			return fmt.Errorf("session: store remember-me: %w", err)
		}
	} else {
		if err := s.kv.Delete(KeyRememberMe); err != nil {
			return fmt.Errorf("session: clear remember-me: %w", err)
		}
	}
	if err := s.kv.Set(KeyAuthToken, token); err != nil {
		return fmt.Errorf("session: store token: %w", err)
	}
	return nil
}

// Logout clears all three keys. Calling it on an already-empty store is
// fine; the end state is identical.
func (s *Store) Logout() error {
	for _, key := range []string{KeyAuthToken, KeyAdminInfo, KeyRememberMe} {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("session: clear %s: %w", key, err)
		}
	}
	return nil
}

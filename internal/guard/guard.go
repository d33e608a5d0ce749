// Package guard gates access to protected console views. It runs once per
// command invocation and decides between rendering the view and sending
// the operator to login.
//
// The check is a small state machine:
//
//	no token                 → redirect to login
//	token, verified remotely → render
//	token, definite rejection → logout, redirect to login
//	token, backend unreachable → defer: render from cache unless the token
//	                             is provably expired locally
//
// The deferral distinguishes "network down" from "session expired": only a
// real answer from the backend, or a token whose own exp claim has passed,
// invalidates the session.
package guard

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// Decision is the guard's verdict for this invocation.
type Decision int

const (
	// Render means the protected view may proceed.
	Render Decision = iota
	// RedirectLogin means the operator must (re-)authenticate first.
	RedirectLogin
)

// Result carries the verdict and how it was reached.
type Result struct {
	Decision Decision
	Reason   string
	// Deferred is set when the backend was unreachable and the session
	// was accepted on local evidence only.
	Deferred bool
}

// Verifier confirms the stored token remotely. Implemented by auth.Service.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Guard checks sessions before protected views run.
type Guard struct {
	sessions *session.Store
	verifier Verifier
	now      func() time.Time
}

func New(sessions *session.Store, verifier Verifier) *Guard {
	return &Guard{sessions: sessions, verifier: verifier, now: time.Now}
}

// Check is the protected-view gate.
func (g *Guard) Check(ctx context.Context) Result {
	token, ok := g.sessions.Token()
	if !ok {
		return Result{Decision: RedirectLogin, Reason: "not authenticated"}
	}

	err := g.verifier.Verify(ctx)
	switch {
	case err == nil:
		return Result{Decision: Render}

	case errors.Is(err, gateway.ErrSessionExpired):
		// The gateway already cleared the store on the 401.
		return Result{Decision: RedirectLogin, Reason: "session expired"}

	case gateway.IsNetwork(err):
		if tokenExpired(token, g.now()) {
			logger.Warn("guard: backend unreachable and token expired locally, logging out")
			if lerr := g.sessions.Logout(); lerr != nil {
				logger.Error("guard: logout failed", "error", lerr)
			}
			return Result{Decision: RedirectLogin, Reason: "session expired"}
		}
		logger.Warn("guard: backend unreachable, deferring verification", "error", err)
		return Result{Decision: Render, Deferred: true, Reason: "verification deferred: backend unreachable"}

	default:
		// Any other definite answer rejects the token.
		logger.Warn("guard: token rejected, logging out", "error", err)
		if lerr := g.sessions.Logout(); lerr != nil {
			logger.Error("guard: logout failed", "error", lerr)
		}
		return Result{Decision: RedirectLogin, Reason: "session invalid"}
	}
}

// CheckLogin is the inverse gate for the login view: when a valid session
// already exists the form is skipped and the operator lands on the
// authenticated home view.
func (g *Guard) CheckLogin(ctx context.Context) Result {
	if _, ok := g.sessions.Token(); !ok {
		return Result{Decision: Render}
	}
	if err := g.verifier.Verify(ctx); err != nil {
		// Stale token: show the form. A 401 already cleared the store.
		return Result{Decision: Render, Reason: "stored token rejected"}
	}
	return Result{Decision: RedirectLogin, Reason: "already authenticated"}
}

// tokenExpired inspects the token's own exp claim without verifying the
// signature. Opaque (non-JWT) tokens and tokens without exp report false;
// only the backend can judge those.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

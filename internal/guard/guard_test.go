package guard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vyapar/internal/auth"
	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/guard"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/kvstore"
	"github.com/shashiranjanraj/vyapar/pkg/testkit"
)

const base = "http://api.test/api"

func newGuard(t *testing.T) (*guard.Guard, *session.Store, *testkit.MockTransport) {
	t.Helper()
	mt := testkit.Install(t)
	sessions := session.New(kvstore.NewMemory())
	api := gateway.New(base, sessions)
	return guard.New(sessions, auth.New(api, sessions)), sessions, mt
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestCheck_NoTokenRedirects(t *testing.T) {
	g, _, mt := newGuard(t)

	res := g.Check(context.Background())
	assert.Equal(t, guard.RedirectLogin, res.Decision)
	assert.Zero(t, mt.TotalCalls(), "no session means no verification round trip")
}

func TestCheck_VerifiedRenders(t *testing.T) {
	g, sessions, mt := newGuard(t)
	require.NoError(t, sessions.Login("tok", session.Admin{ID: 1, Username: "admin"}, false))
	mt.Stub("GET", "/api/admin/auth/me", 200, `{"id":1,"username":"admin","role":"superadmin"}`)

	res := g.Check(context.Background())
	assert.Equal(t, guard.Render, res.Decision)
	assert.False(t, res.Deferred)
}

func TestCheck_RejectedTokenLogsOut(t *testing.T) {
	g, sessions, mt := newGuard(t)
	require.NoError(t, sessions.Login("stale", session.Admin{ID: 1, Username: "admin"}, false))
	mt.Stub("GET", "/api/admin/auth/me", 401, `{"detail":"Could not validate credentials"}`)

	res := g.Check(context.Background())
	assert.Equal(t, guard.RedirectLogin, res.Decision)
	assert.False(t, sessions.IsAuthenticated())
}

func TestCheck_NetworkErrorDefersForOpaqueToken(t *testing.T) {
	g, sessions, mt := newGuard(t)
	require.NoError(t, sessions.Login("opaque-token", session.Admin{ID: 1, Username: "admin"}, false))
	mt.StubError("GET", "/api/admin/auth/me", errors.New("dial tcp: connection refused"))

	res := g.Check(context.Background())
	assert.Equal(t, guard.Render, res.Decision)
	assert.True(t, res.Deferred)
	assert.True(t, sessions.IsAuthenticated(), "offline must not destroy the session")
}

func TestCheck_NetworkErrorDefersForLiveJWT(t *testing.T) {
	g, sessions, mt := newGuard(t)
	tok := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, sessions.Login(tok, session.Admin{ID: 1, Username: "admin"}, false))
	mt.StubError("GET", "/api/admin/auth/me", errors.New("dial tcp: connection refused"))

	res := g.Check(context.Background())
	assert.Equal(t, guard.Render, res.Decision)
	assert.True(t, res.Deferred)
}

func TestCheck_NetworkErrorWithLocallyExpiredJWTLogsOut(t *testing.T) {
	g, sessions, mt := newGuard(t)
	tok := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, sessions.Login(tok, session.Admin{ID: 1, Username: "admin"}, false))
	mt.StubError("GET", "/api/admin/auth/me", errors.New("dial tcp: connection refused"))

	res := g.Check(context.Background())
	assert.Equal(t, guard.RedirectLogin, res.Decision)
	assert.False(t, sessions.IsAuthenticated())
}

func TestCheckLogin_NoSessionShowsForm(t *testing.T) {
	g, _, mt := newGuard(t)

	res := g.CheckLogin(context.Background())
	assert.Equal(t, guard.Render, res.Decision)
	assert.Zero(t, mt.TotalCalls())
}

func TestCheckLogin_ValidSessionSkipsForm(t *testing.T) {
	g, sessions, mt := newGuard(t)
	require.NoError(t, sessions.Login("tok", session.Admin{ID: 1, Username: "admin"}, false))
	mt.Stub("GET", "/api/admin/auth/me", 200, `{"id":1,"username":"admin","role":"superadmin"}`)

	res := g.CheckLogin(context.Background())
	assert.Equal(t, guard.RedirectLogin, res.Decision)
}

func TestCheckLogin_StaleTokenStaysOnForm(t *testing.T) {
	g, sessions, mt := newGuard(t)
	require.NoError(t, sessions.Login("stale", session.Admin{ID: 1, Username: "admin"}, false))
	mt.Stub("GET", "/api/admin/auth/me", 401, `{"detail":"Could not validate credentials"}`)

	res := g.CheckLogin(context.Background())
	assert.Equal(t, guard.Render, res.Decision)
	// The 401 already cleared the stale session through the gateway.
	assert.False(t, sessions.IsAuthenticated())
}

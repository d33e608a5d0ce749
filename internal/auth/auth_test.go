package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vyapar/internal/auth"
	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/kvstore"
	"github.com/shashiranjanraj/vyapar/pkg/testkit"
)

const base = "http://api.test/api"

func newService(t *testing.T) (*auth.Service, *session.Store, *testkit.MockTransport) {
	t.Helper()
	mt := testkit.Install(t)
	sessions := session.New(kvstore.NewMemory())
	api := gateway.New(base, sessions)
	return auth.New(api, sessions), sessions, mt
}

func TestLogin_StoresTokenAndProfile(t *testing.T) {
	svc, sessions, mt := newService(t)
	mt.Stub("POST", "/api/admin/auth/login", 200,
		`{"access_token":"tok-xyz","admin_id":3,"username":"admin","role":"superadmin"}`)

	admin, err := svc.Login(context.Background(), "admin", "secret", true)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)

	assert.True(t, sessions.IsAuthenticated())
	token, _ := sessions.Token()
	assert.Equal(t, "tok-xyz", token)
	assert.True(t, sessions.RememberMe())
}

func TestLogin_InvalidCredentialsShowsServerDetail(t *testing.T) {
	svc, sessions, mt := newService(t)
	mt.Stub("POST", "/api/admin/auth/login", 401, `{"detail":"Invalid credentials"}`)

	_, err := svc.Login(context.Background(), "admin", "wrong", false)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Error())

	// No token is written on failure.
	assert.False(t, sessions.IsAuthenticated())
}

func TestLogin_EmptyInputFailsLocally(t *testing.T) {
	svc, _, mt := newService(t)

	_, err := svc.Login(context.Background(), "", "", false)
	require.Error(t, err)
	assert.Zero(t, mt.TotalCalls(), "local validation must not contact the server")
}

func TestVerify_UsesAuthenticatedEndpoint(t *testing.T) {
	svc, sessions, mt := newService(t)
	require.NoError(t, sessions.Login("tok", session.Admin{ID: 1, Username: "admin"}, false))
	mt.Stub("GET", "/api/admin/auth/me", 200, `{"id":1,"username":"admin","role":"superadmin"}`)

	require.NoError(t, svc.Verify(context.Background()))
	assert.Equal(t, 1, mt.CallCount("GET", "/api/admin/auth/me"))
}

func TestChangePassword_RejectsShortPasswordLocally(t *testing.T) {
	svc, _, mt := newService(t)

	err := svc.ChangePassword(context.Background(), "old-secret", "short")
	require.Error(t, err)
	assert.Zero(t, mt.TotalCalls())
}

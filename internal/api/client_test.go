package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestCall_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticToken("tok-123")))
	var out map[string]any
	require.NoError(t, c.get(context.Background(), "/dashboard/overview", &out))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestCall_SkipAuthOmitsHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"access_token":"t","token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticToken("stale")))
	_, err := c.Login(context.Background(), LoginRequest{University: "u", RollNo: "1"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestCall_UnauthorizedRunsHookOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookCalls := 0
	c := New(srv.URL, WithUnauthorizedHook(func() { hookCalls++ }))

	err := c.get(context.Background(), "/auth/me", nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsForbidden(err))
	assert.Equal(t, 1, hookCalls)
}

func TestCall_WrongCredentialsAtLoginKeepSessionIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookCalls := 0
	c := New(srv.URL, WithUnauthorizedHook(func() { hookCalls++ }))

	_, err := c.Login(context.Background(), LoginRequest{University: "u", RollNo: "1", Password: "nope"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 0, hookCalls, "a rejected password must not invalidate the session")
}

func TestCall_ForbiddenKeepsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	hookCalls := 0
	c := New(srv.URL, WithUnauthorizedHook(func() { hookCalls++ }))

	err := c.get(context.Background(), "/admin/users", nil)
	require.Error(t, err)
	assert.True(t, IsForbidden(err))
	assert.Equal(t, 0, hookCalls, "403 must not invalidate the session")
}

func TestCall_ServerErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail":"index rebuilding"}`))
	}))
	defer srv.Close()

	err := New(srv.URL).get(context.Background(), "/documents", nil)
	require.Error(t, err)

	var te *ErrTransport
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.Status)
	assert.Contains(t, te.Error(), "index rebuilding")
}

func TestCall_MalformedBodyIsBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metrics": [`))
	}))
	defer srv.Close()

	var out DashboardOverview
	err := New(srv.URL).get(context.Background(), "/dashboard/overview", &out)

	var br *ErrBadResponse
	require.ErrorAs(t, err, &br)
}

func TestCall_NetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	err := New(srv.URL).get(context.Background(), "/documents", nil)

	var te *ErrTransport
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.Status)
}

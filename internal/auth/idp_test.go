package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("provider-secret"))
	require.NoError(t, err)
	return token
}

func TestIdentityVerifier_Verify(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"0b6c","email":"alice@example.com","user_metadata":{}}`))
	}))
	defer srv.Close()

	v := NewIdentityVerifier(srv.URL+"/", "service-key", srv.Client())
	identity, err := v.Verify(context.Background(), signedToken(t, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "0b6c", identity.ID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestIdentityVerifier_RejectsLocally(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	v := NewIdentityVerifier(srv.URL, "service-key", srv.Client())

	_, err := v.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify(context.Background(), signedToken(t, time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestIdentityVerifier_ProviderResponses(t *testing.T) {
	status := http.StatusUnauthorized
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	v := NewIdentityVerifier(srv.URL, "service-key", srv.Client())
	token := signedToken(t, time.Now().Add(time.Hour))

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	status = http.StatusBadGateway
	_, err = v.Verify(context.Background(), token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestUsernameFor(t *testing.T) {
	u := idpUser{ID: "id-1", Email: "bob@example.com"}
	assert.Equal(t, "bob", usernameFor(u))

	u.UserMetadata.Username = "bobby"
	assert.Equal(t, "bobby", usernameFor(u))

	assert.Equal(t, "id-2", usernameFor(idpUser{ID: "id-2"}))
}

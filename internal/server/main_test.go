package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"commons/internal/auth"
	"commons/internal/config"
	"commons/internal/models"
	"commons/internal/testutil"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubTranscriber struct {
	text  string
	err   error
	calls int
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ []byte) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubIdentity struct {
	identities map[string]*auth.Identity
	err        error
}

func (s *stubIdentity) Verify(_ context.Context, token string) (*auth.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	if id, ok := s.identities[token]; ok {
		return id, nil
	}
	return nil, auth.ErrInvalidToken
}

func testConfig() *config.Config {
	return &config.Config{
		Env:           "test",
		Port:          "0",
		BodyLimitMB:   25,
		AuthStrategy:  config.AuthStrategySession,
		SessionStore:  config.SessionStoreDatabase,
		SessionSecret: "test-session-secret",
	}
}

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T, cfg *config.Config, opts ...Option) *testEnv {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	opts = append([]Option{WithTranscriber(&stubTranscriber{text: "stub"})}, opts...)
	srv, err := NewServerWithDeps(cfg, db, nil, opts...)
	require.NoError(t, err)

	return &testEnv{app: srv.NewApp(), db: db}
}

// do sends a request. body may be nil, a raw string, or a value to encode as JSON.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// register creates an account and returns its session cookie header.
func (e *testEnv) register(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return sessionCookie(t, resp)
}

// registerAdmin creates an account, grants it admin and returns its session cookie header.
func (e *testEnv) registerAdmin(t *testing.T, username string) string {
	t.Helper()
	cookie := e.register(t, username, "admin-password")
	require.NoError(t, e.db.Model(&models.User{}).Where("username = ?", username).Update("is_admin", true).Error)
	return cookie
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	require.FailNow(t, "no session cookie in response")
	return ""
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[models.ErrorResponse](t, resp).Message
}

var errProviderDown = errors.New("identity provider unreachable")

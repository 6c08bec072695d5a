package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"commons/internal/observability"
	"commons/internal/resilience"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
)

// ErrInvalidToken reports a bearer token the identity provider does not accept.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the caller as described by the identity provider.
type Identity struct {
	ID       string
	Email    string
	Username string
}

type idpUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Username string `json:"username"`
	} `json:"user_metadata"`
}

// IdentityVerifier validates bearer tokens against a Supabase-compatible
// identity provider (GET {baseURL}/auth/v1/user).
type IdentityVerifier struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker[*Identity]
	now        func() time.Time
}

func NewIdentityVerifier(baseURL, serviceKey string, client *http.Client) *IdentityVerifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &IdentityVerifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     client,
		breaker: resilience.NewBreaker[*Identity](resilience.BreakerConfig{
			Name: "identity-provider",
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrInvalidToken)
			},
		}),
		now: time.Now,
	}
}

// Verify resolves token to an identity. Tokens that are not JWTs or that have
// expired are rejected without contacting the provider.
func (v *IdentityVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if err := v.precheck(token); err != nil {
		observability.IdentityLookups.WithLabelValues("rejected_locally").Inc()
		return nil, err
	}

	identity, err := v.breaker.Execute(func() (*Identity, error) {
		return v.fetch(ctx, token)
	})
	switch {
	case err == nil:
		observability.IdentityLookups.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrInvalidToken):
		observability.IdentityLookups.WithLabelValues("invalid").Inc()
	case resilience.IsRejected(err):
		observability.IdentityLookups.WithLabelValues("circuit_open").Inc()
		return nil, fmt.Errorf("identity provider unavailable: %w", err)
	default:
		observability.IdentityLookups.WithLabelValues("error").Inc()
	}
	return identity, err
}

func (v *IdentityVerifier) precheck(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return ErrInvalidToken
	}
	if exp != nil && !v.now().Before(exp.Time) {
		return ErrInvalidToken
	}
	return nil
}

func (v *IdentityVerifier) fetch(ctx context.Context, token string) (identity *Identity, err error) {
	ctx, span := observability.StartClientSpan(ctx, "identity.verify",
		attribute.String("peer.service", "identity-provider"))
	defer func() { observability.EndSpan(span, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.serviceKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("identity provider returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read identity response: %w", err)
	}
	var user idpUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{ID: user.ID, Email: user.Email, Username: usernameFor(user)}, nil
}

// usernameFor picks the preferred local username: explicit metadata, then the
// email local part, then the provider ID. Users are matched by ID, never by
// this name.
func usernameFor(u idpUser) string {
	if name := strings.TrimSpace(u.UserMetadata.Username); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	return u.ID
}

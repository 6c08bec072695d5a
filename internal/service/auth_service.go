package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"commons/internal/auth"
	"commons/internal/middleware"
	"commons/internal/models"
	"commons/internal/repository"
	"commons/internal/validation"

	"github.com/google/uuid"
)

const (
	maxUsernameLen       = 50
	maxProvisionAttempts = 12
)

// IdentityVerifier resolves a bearer token to a provider identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Identity, error)
}

// AuthService handles credentials, login sessions and bearer identities.
type AuthService struct {
	users    repository.UserRepository
	sessions auth.SessionStore
	signer   auth.CookieSigner
	identity IdentityVerifier
}

type AuthServiceConfig struct {
	Users    repository.UserRepository
	Sessions auth.SessionStore
	Signer   auth.CookieSigner
	// Identity is only needed for the bearer strategy.
	Identity IdentityVerifier
}

func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		users:    cfg.Users,
		sessions: cfg.Sessions,
		signer:   cfg.Signer,
		identity: cfg.Identity,
	}
}

// Register creates a non-admin account.
func (s *AuthService) Register(ctx context.Context, in models.CredentialsInput) (*models.User, error) {
	if appErr := validation.ValidateStruct(in); appErr != nil {
		return nil, appErr
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Username already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: in.Username, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewValidationError("Username already exists")
		}
		return nil, err
	}
	return user, nil
}

// Enroll registers an account and opens its first session. If the session
// cannot be opened the new account is removed so a retry can reuse the
// username.
func (s *AuthService) Enroll(ctx context.Context, in models.CredentialsInput) (*models.User, string, error) {
	user, err := s.Register(ctx, in)
	if err != nil {
		return nil, "", err
	}

	cookie, err := s.StartSession(ctx, user.ID)
	if err != nil {
		if derr := s.users.Delete(context.WithoutCancel(ctx), user.ID); derr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to remove user after session error",
				"user_id", user.ID, "error", derr)
		}
		return nil, "", err
	}
	return user, cookie, nil
}

// Login checks credentials. Unknown users and wrong passwords get the same error.
func (s *AuthService) Login(ctx context.Context, in models.CredentialsInput) (*models.User, error) {
	invalid := models.NewUnauthorizedError("Invalid username or password")
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, invalid
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		middleware.AuthFailures.WithLabelValues("unknown_user").Inc()
		return nil, invalid
	}

	ok, err := auth.VerifyPassword(in.Password, user.Password)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "stored password hash unreadable", "user_id", user.ID, "error", err)
		return nil, invalid
	}
	if !ok {
		middleware.AuthFailures.WithLabelValues("bad_password").Inc()
		return nil, invalid
	}
	return user, nil
}

// StartSession opens a session for userID and returns the signed cookie value.
func (s *AuthService) StartSession(ctx context.Context, userID uint) (string, error) {
	id, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.signer.Sign(id), nil
}

// EndSession destroys the session behind cookie, if any.
func (s *AuthService) EndSession(ctx context.Context, cookie string) error {
	id, ok := s.signer.Unsign(cookie)
	if !ok {
		return nil
	}
	return s.sessions.Destroy(ctx, id)
}

// SessionPrincipal resolves a session cookie. It returns nil for missing,
// tampered or expired sessions.
func (s *AuthService) SessionPrincipal(ctx context.Context, cookie string) (*auth.Principal, error) {
	if cookie == "" {
		return nil, nil
	}
	id, ok := s.signer.Unsign(cookie)
	if !ok {
		middleware.AuthFailures.WithLabelValues("bad_cookie").Inc()
		return nil, nil
	}
	userID, err := s.sessions.Lookup(ctx, id)
	if err != nil || userID == 0 {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}
	return auth.NewPrincipal(user), nil
}

// BearerPrincipal resolves a provider token, creating the local user on
// first sight. It returns nil for tokens the provider rejects.
func (s *AuthService) BearerPrincipal(ctx context.Context, token string) (*auth.Principal, error) {
	if token == "" || s.identity == nil {
		return nil, nil
	}
	identity, err := s.identity.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			middleware.AuthFailures.WithLabelValues("invalid_token").Inc()
			return nil, nil
		}
		return nil, err
	}

	user, err := s.userForIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	return auth.NewPrincipal(user), nil
}

func (s *AuthService) userForIdentity(ctx context.Context, identity *auth.Identity) (*models.User, error) {
	user, err := s.users.GetByExternalID(ctx, identity.ID)
	if err != nil || user != nil {
		return user, err
	}

	// Provider-managed accounts never log in with a local password.
	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}

	subject := identity.ID
	base := strings.TrimSpace(identity.Username)
	if base == "" {
		base = "member"
	}
	for attempt := 0; attempt < maxProvisionAttempts; attempt++ {
		user = &models.User{
			Username:   candidateUsername(base, attempt),
			ExternalID: &subject,
			Password:   hash,
		}
		err := s.users.Create(ctx, user)
		if err == nil {
			middleware.Logger.InfoContext(ctx, "provisioned user from identity provider",
				"user_id", user.ID, "username", user.Username, "provider_id", subject)
			return user, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		// Either the username is taken or a concurrent request linked this subject first.
		linked, err := s.users.GetByExternalID(ctx, subject)
		if err != nil || linked != nil {
			return linked, err
		}
	}
	return nil, fmt.Errorf("no free username for identity %s", subject)
}

// candidateUsername returns base on the first attempt and a suffixed variant
// after that, cut by runes to fit the username column.
func candidateUsername(base string, attempt int) string {
	var suffix string
	switch {
	case attempt == 0:
	case attempt < 10:
		suffix = "-" + strconv.Itoa(attempt+1)
	default:
		suffix = "-" + uuid.NewString()[:8]
	}
	runes := []rune(base)
	if limit := maxUsernameLen - len(suffix); len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + suffix
}

// CurrentUser returns the stored user behind a principal.
func (s *AuthService) CurrentUser(ctx context.Context, principal *auth.Principal) (*models.User, error) {
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	return user, nil
}

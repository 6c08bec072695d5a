package server

import (
	"strings"
	"time"

	"commons/internal/auth"
	"commons/internal/config"
	"commons/internal/middleware"
	"commons/internal/models"

	"github.com/gofiber/fiber/v2"
)

// authenticate resolves the caller from the session cookie or bearer token,
// depending on the configured strategy. A nil principal with a nil error
// carries the 401 message to report.
func (s *Server) authenticate(c *fiber.Ctx) (*auth.Principal, string, error) {
	if p := principal(c); p != nil {
		return p, "", nil
	}

	if s.config.AuthStrategy == config.AuthStrategyBearer {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return nil, "No token provided", nil
		}
		p, err := s.authService.BearerPrincipal(c.UserContext(), token)
		if err != nil || p == nil {
			return nil, "Invalid token", err
		}
		return p, "", nil
	}

	p, err := s.authService.SessionPrincipal(c.UserContext(), c.Cookies(auth.SessionCookieName))
	if err != nil || p == nil {
		return nil, "Unauthorized", err
	}
	return p, "", nil
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (s *Server) attachPrincipal(c *fiber.Ctx, p *auth.Principal) {
	c.Locals(principalKey, p)
	c.Locals("userID", p.UserID)
	c.SetUserContext(middleware.WithUserID(c.UserContext(), p.UserID))
}

// AuthRequired returns middleware that rejects anonymous callers with 401
// before the handler reads the request body.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, msg, err := s.authenticate(c)
		if err != nil {
			return respondError(c, err)
		}
		if p == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(msg))
		}
		s.attachPrincipal(c, p)
		return c.Next()
	}
}

// AdminRequired returns middleware that rejects anonymous callers with 401 and
// non-admins with 403. It authenticates on its own, so it does not need
// AuthRequired in front of it.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, msg, err := s.authenticate(c)
		if err != nil {
			return respondError(c, err)
		}
		if p == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(msg))
		}
		if !p.CanAdminister() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Forbidden: Admin access required"))
		}
		s.attachPrincipal(c, p)
		return c.Next()
	}
}

func (s *Server) setSessionCookie(c *fiber.Ctx, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionTTL),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Register handles account creation and logs the new user in.
// @Summary Register
// @Description Create a non-admin account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.CredentialsInput true "Credentials"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req models.CredentialsInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, cookie, err := s.authService.Enroll(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	s.setSessionCookie(c, cookie)

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles password authentication.
// @Summary Log in
// @Description Verify credentials and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.CredentialsInput true "Credentials"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req models.CredentialsInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.authService.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	cookie, err := s.authService.StartSession(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	s.setSessionCookie(c, cookie)

	return c.JSON(user)
}

// Logout ends the current session, if any.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.authService.EndSession(c.UserContext(), c.Cookies(auth.SessionCookieName)); err != nil {
		return respondError(c, err)
	}
	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// GetCurrentUser returns the authenticated user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /user [get]
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.authService.CurrentUser(c.UserContext(), principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

package auth

import "commons/internal/models"

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID   uint
	Username string
	IsAdmin  bool
}

// NewPrincipal builds the principal for a stored user.
func NewPrincipal(user *models.User) *Principal {
	return &Principal{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}
}

// CanAdminister reports whether the caller may use admin-gated routes.
func (p *Principal) CanAdminister() bool {
	return p != nil && p.IsAdmin
}

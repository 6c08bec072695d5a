package service

import (
	"context"
	"fmt"

	"commons/internal/models"
	"commons/internal/repository"
)

// AdminService manages the admin flag. It is only reachable from the admin CLI.
type AdminService struct {
	users repository.UserRepository
}

func NewAdminService(users repository.UserRepository) *AdminService {
	return &AdminService{users: users}
}

func (s *AdminService) Promote(ctx context.Context, username string) error {
	return s.setAdmin(ctx, username, true)
}

func (s *AdminService) Demote(ctx context.Context, username string) error {
	return s.setAdmin(ctx, username, false)
}

func (s *AdminService) setAdmin(ctx context.Context, username string, isAdmin bool) error {
	found, err := s.users.SetAdmin(ctx, username, isAdmin)
	if err != nil {
		return err
	}
	if !found {
		return &models.AppError{Code: models.CodeNotFound, Message: fmt.Sprintf("user %q not found", username)}
	}
	return nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]models.User, error) {
	return s.users.ListAdmins(ctx)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewhub/internal/audit"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// Profile is a user plus the role-derived fields clients route on.
type Profile struct {
	User                    *model.User
	OwnedRestaurantPublicID *uuid.UUID
}

// UserService exposes user lookups and admin projections.
type UserService interface {
	Profile(ctx context.Context, user *model.User) (*Profile, error)
	GetUser(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error)
	ListOwners(ctx context.Context, actor *model.User) ([]model.User, error)
	// ListCustomers lists users without a restaurant, the candidates for ownership.
	ListCustomers(ctx context.Context, actor *model.User) ([]model.User, error)
	SetEnabled(ctx context.Context, actor *model.User, id uuid.UUID, enabled bool) (*model.User, error)
}

type userService struct {
	repo           repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	audit          *audit.Logger
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, restaurantRepo repository.RestaurantRepository, auditLog *audit.Logger) UserService {
	return &userService{repo: repo, restaurantRepo: restaurantRepo, audit: auditLog}
}

func (s *userService) Profile(ctx context.Context, user *model.User) (*Profile, error) {
	owned, err := ownedRestaurantID(ctx, s.restaurantRepo, user)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, OwnedRestaurantPublicID: owned}, nil
}

// GetUser returns a user's profile to themselves or to an admin.
func (s *userService) GetUser(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error) {
	if actor == nil || (!actor.IsAdmin() && actor.PublicID != id) {
		return nil, apperrors.ErrForbidden
	}
	user, err := s.repo.FindByPublicID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) ListOwners(ctx context.Context, actor *model.User) ([]model.User, error) {
	return s.listByRole(ctx, actor, model.RoleOwner)
}

func (s *userService) ListCustomers(ctx context.Context, actor *model.User) ([]model.User, error) {
	return s.listByRole(ctx, actor, model.RoleCustomer)
}

func (s *userService) listByRole(ctx context.Context, actor *model.User, role model.Role) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}
	users, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list %s users: %w", role, err)
	}
	return users, nil
}

// SetEnabled soft-disables or re-enables an account.
func (s *userService) SetEnabled(ctx context.Context, actor *model.User, id uuid.UUID, enabled bool) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}
	if actor.PublicID == id && !enabled {
		return nil, apperrors.ErrCannotDisableSelf
	}
	if err := s.repo.SetEnabled(ctx, id, enabled); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("set enabled: %w", err)
	}
	user, err := s.repo.FindByPublicID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}

	action := "enable_user"
	if !enabled {
		action = "disable_user"
	}
	s.audit.LogAction(ctx, actor.PublicID.String(), action, "user", id.String(), "success", "")
	return user, nil
}

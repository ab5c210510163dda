package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reviewhub/internal/audit"
	"reviewhub/internal/auth"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/metrics"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the fields of a registration.
type RegisterInput struct {
	Name     string
	Password string
	Contact  string
	Email    string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken             string
	RefreshToken            string
	ExpiresIn               time.Duration
	User                    *model.User
	OwnedRestaurantPublicID *uuid.UUID
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, access *auth.Claims, refreshToken string) error
	// ResolveToken validates a bearer access token and checks it has not been revoked.
	ResolveToken(ctx context.Context, token string) (*auth.Claims, error)
	// ResolveIdentity returns the public id of the user a bearer token was issued to.
	ResolveIdentity(ctx context.Context, token string) (uuid.UUID, error)
	// Principal loads the caller behind a resolved identity; role is always read fresh.
	Principal(ctx context.Context, userPublicID uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	jwtService     *auth.JWTService
	tokenStore     auth.TokenStoreInterface
	audit          *audit.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	auditLog *audit.Logger,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		jwtService:     jwtService,
		tokenStore:     tokenStore,
		audit:          auditLog,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer account with a hashed password.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Email = normalizeEmail(in.Email)
	switch {
	case in.Name == "":
		return nil, apperrors.Validation("name is required")
	case in.Email == "":
		return nil, apperrors.Validation("email is required")
	case in.Password == "":
		return nil, apperrors.Validation("password is required")
	}

	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		PublicID:     uuid.New(),
		Name:         in.Name,
		PasswordHash: string(hashedPassword),
		Contact:      in.Contact,
		Email:        in.Email,
		Role:         model.RoleCustomer,
		Enabled:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns access and refresh tokens plus role flags.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.ObserveLogin("not_found")
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.ObserveLogin("bad_credentials")
		return nil, apperrors.ErrBadCredentials
	}
	if !user.Enabled {
		metrics.ObserveLogin("disabled")
		return nil, apperrors.ErrAccountDisabled
	}

	subject := user.PublicID.String()
	accessToken, _, err := s.jwtService.GenerateAccessToken(subject)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(subject)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, subject, s.jwtService.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	owned, err := ownedRestaurantID(ctx, s.restaurantRepo, user)
	if err != nil {
		return nil, err
	}

	metrics.ObserveLogin("success")
	s.audit.LogAction(ctx, subject, "login", "user", subject, "success", "")
	return &LoginResult{
		AccessToken:             accessToken,
		RefreshToken:            refreshToken,
		ExpiresIn:               s.jwtService.AccessTTL(),
		User:                    user,
		OwnedRestaurantPublicID: owned,
	}, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	storedUser, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			return "", apperrors.ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("load refresh token: %w", err)
	}
	if storedUser != claims.Subject {
		return "", apperrors.ErrInvalidRefreshToken
	}

	userID, err := claims.UserPublicID()
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if _, err := s.Principal(ctx, userID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindAuth {
			return "", apperrors.ErrInvalidRefreshToken
		}
		return "", err
	}

	accessToken, _, err := s.jwtService.GenerateAccessToken(claims.Subject)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes the presented access token and, when given, the refresh token.
func (s *authService) Logout(ctx context.Context, access *auth.Claims, refreshToken string) error {
	if access == nil {
		return apperrors.ErrInvalidToken
	}

	if refreshToken != "" {
		claims, err := s.jwtService.ValidateToken(refreshToken, auth.TokenTypeRefresh)
		if err != nil || claims.Subject != access.Subject {
			return apperrors.ErrInvalidRefreshToken
		}
		if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
	}

	if err := s.tokenStore.BlacklistAccessToken(ctx, access.ID, access.RemainingTTL(time.Now())); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	s.audit.LogAction(ctx, access.Subject, "logout", "user", access.Subject, "success", "")
	return nil
}

func (s *authService) ResolveToken(ctx context.Context, token string) (*auth.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.ErrInvalidToken
	}
	claims, err := s.jwtService.ValidateToken(token, auth.TokenTypeAccess)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	revoked, err := s.tokenStore.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}

func (s *authService) ResolveIdentity(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.ResolveToken(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := claims.UserPublicID()
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidToken
	}
	return id, nil
}

func (s *authService) Principal(ctx context.Context, userPublicID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByPublicID(ctx, userPublicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("load principal: %w", err)
	}
	if !user.Enabled {
		return nil, apperrors.ErrAccountDisabled
	}
	return user, nil
}

// ownedRestaurantID returns the public id of the restaurant an owner runs, or nil.
func ownedRestaurantID(ctx context.Context, repo repository.RestaurantRepository, user *model.User) (*uuid.UUID, error) {
	if !user.IsOwner() {
		return nil, nil
	}
	r, err := repo.FindByOwner(ctx, user.PublicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find owned restaurant: %w", err)
	}
	id := r.PublicID
	return &id, nil
}

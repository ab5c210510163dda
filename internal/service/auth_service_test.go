package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reviewhub/internal/auth"
	"reviewhub/internal/cache"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByPublicID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByPublicIDForUpdate(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByPublicIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	args := m.Called(ctx, id, enabled)
	return args.Error(0)
}

// MockRestaurantRepository is a mock implementation of RestaurantRepository.
type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) Create(ctx context.Context, r *model.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Update(ctx context.Context, r *model.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRestaurantRepository) FindByPublicID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) FindByPublicIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Restaurant, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userPublicID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userPublicID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService("test-secret", "reviewhub", time.Minute, time.Hour)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedKind  apperrors.Kind
	}{
		{
			name:  "successful registration",
			input: RegisterInput{Name: "Test User", Password: "password123", Contact: "555-0100", Email: " Test@Example.com "},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "email already registered",
			input: RegisterInput{Name: "Existing", Password: "password123", Email: "existing@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:  "lost registration race",
			input: RegisterInput{Name: "Racer", Password: "password123", Email: "race@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:         "missing name",
			input:        RegisterInput{Name: "  ", Password: "password123", Email: "a@example.com"},
			setupMock:    func(m *MockUserRepository) {},
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "missing password",
			input:        RegisterInput{Name: "A", Email: "a@example.com"},
			setupMock:    func(m *MockUserRepository) {},
			expectedKind: apperrors.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, new(MockRestaurantRepository), newTestJWT(), new(MockTokenStore), nil)
			user, err := svc.Register(context.Background(), tt.input)

			switch {
			case tt.expectedError != nil:
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			case tt.expectedKind != "":
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, "Test User", user.Name)
				assert.Equal(t, model.RoleCustomer, user.Role)
				assert.True(t, user.Enabled)
				assert.NotEqual(t, uuid.Nil, user.PublicID)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	customerID := uuid.New()
	ownerID := uuid.New()
	restaurantID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockRestaurantRepository, *MockTokenStore)
		expectedError error
		expectOwned   *uuid.UUID
	}{
		{
			name:     "customer login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, _ *MockRestaurantRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					PublicID: customerID, Email: "test@example.com", PasswordHash: hashed(t, "password123"),
					Role: model.RoleCustomer, Enabled: true,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, customerID.String(), time.Hour).Return(nil)
			},
		},
		{
			name:     "owner login resolves restaurant",
			email:    "owner@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mRest *MockRestaurantRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "owner@example.com").Return(&model.User{
					PublicID: ownerID, Email: "owner@example.com", PasswordHash: hashed(t, "password123"),
					Role: model.RoleOwner, Enabled: true,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, ownerID.String(), time.Hour).Return(nil)
				mRest.On("FindByOwner", mock.Anything, ownerID).Return(&model.Restaurant{PublicID: restaurantID}, nil)
			},
			expectOwned: &restaurantID,
		},
		{
			name:     "account not found",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, _ *MockRestaurantRepository, _ *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAccountNotFound,
		},
		{
			name:     "bad credentials",
			email:    "test@example.com",
			password: "wrong",
			setupMock: func(mRepo *MockUserRepository, _ *MockRestaurantRepository, _ *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					PublicID: customerID, PasswordHash: hashed(t, "password123"), Enabled: true,
				}, nil)
			},
			expectedError: apperrors.ErrBadCredentials,
		},
		{
			name:     "disabled account",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, _ *MockRestaurantRepository, _ *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					PublicID: customerID, PasswordHash: hashed(t, "password123"), Enabled: false,
				}, nil)
			},
			expectedError: apperrors.ErrAccountDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockRest := new(MockRestaurantRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockRest, mockTokenStore)

			jwtService := newTestJWT()
			svc := NewAuthService(mockRepo, mockRest, jwtService, mockTokenStore, nil)

			result, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
				assert.Equal(t, time.Minute, result.ExpiresIn)
				assert.Equal(t, tt.expectOwned, result.OwnedRestaurantPublicID)

				claims, err := jwtService.ValidateToken(result.AccessToken, auth.TokenTypeAccess)
				require.NoError(t, err)
				assert.Equal(t, result.User.PublicID.String(), claims.Subject)
			}

			mockRepo.AssertExpectations(t)
			mockRest.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveIdentity(t *testing.T) {
	jwtService := newTestJWT()
	userID := uuid.New()
	token, claims, err := jwtService.GenerateAccessToken(userID.String())
	require.NoError(t, err)
	_, refresh, err := jwtService.GenerateRefreshToken(userID.String())
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("IsAccessTokenBlacklisted", mock.Anything, claims.ID).Return(false, nil)
		svc := NewAuthService(new(MockUserRepository), new(MockRestaurantRepository), jwtService, store, nil)

		got, err := svc.ResolveIdentity(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
		store.AssertExpectations(t)
	})

	t.Run("revoked token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("IsAccessTokenBlacklisted", mock.Anything, claims.ID).Return(true, nil)
		svc := NewAuthService(new(MockUserRepository), new(MockRestaurantRepository), jwtService, store, nil)

		_, err := svc.ResolveIdentity(context.Background(), token)
		assert.Equal(t, apperrors.ErrTokenRevoked, err)
	})

	t.Run("revocation store down", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("IsAccessTokenBlacklisted", mock.Anything, claims.ID).Return(false, cache.ErrUnavailable)
		svc := NewAuthService(new(MockUserRepository), new(MockRestaurantRepository), jwtService, store, nil)

		_, err := svc.ResolveIdentity(context.Background(), token)
		assert.ErrorIs(t, err, cache.ErrUnavailable)
	})

	for name, bad := range map[string]string{"missing": "", "garbage": "abc", "refresh token": refresh} {
		t.Run(name, func(t *testing.T) {
			svc := NewAuthService(new(MockUserRepository), new(MockRestaurantRepository), jwtService, new(MockTokenStore), nil)
			_, err := svc.ResolveIdentity(context.Background(), bad)
			assert.Equal(t, apperrors.ErrInvalidToken, err)
		})
	}
}

func TestAuthService_Principal(t *testing.T) {
	id := uuid.New()
	repo := new(MockUserRepository)
	repo.On("FindByPublicID", mock.Anything, id).Return(&model.User{PublicID: id, Enabled: false}, nil).Once()
	repo.On("FindByPublicID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound).Once()
	svc := NewAuthService(repo, new(MockRestaurantRepository), newTestJWT(), new(MockTokenStore), nil)

	_, err := svc.Principal(context.Background(), id)
	assert.Equal(t, apperrors.ErrAccountDisabled, err)
	_, err = svc.Principal(context.Background(), id)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
	repo.AssertExpectations(t)
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := newTestJWT()
	userID := uuid.New()
	tokenID, refresh, err := jwtService.GenerateRefreshToken(userID.String())
	require.NoError(t, err)

	t.Run("stored token issues access token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(userID.String(), nil)
		repo := new(MockUserRepository)
		repo.On("FindByPublicID", mock.Anything, userID).Return(&model.User{PublicID: userID, Enabled: true}, nil)
		svc := NewAuthService(repo, new(MockRestaurantRepository), jwtService, store, nil)

		access, err := svc.RefreshToken(context.Background(), refresh)
		require.NoError(t, err)
		claims, err := jwtService.ValidateToken(access, auth.TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return("", auth.ErrRefreshTokenNotFound)
		svc := NewAuthService(new(MockUserRepository), new(MockRestaurantRepository), jwtService, store, nil)

		_, err := svc.RefreshToken(context.Background(), refresh)
		assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
	})

	t.Run("token store down", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return("", cache.ErrUnavailable)
		svc := NewAuthService(new(MockUserRepository), new(MockRestaurantRepository), jwtService, store, nil)

		_, err := svc.RefreshToken(context.Background(), refresh)
		assert.ErrorIs(t, err, cache.ErrUnavailable)
	})

	t.Run("disabled user", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(userID.String(), nil)
		repo := new(MockUserRepository)
		repo.On("FindByPublicID", mock.Anything, userID).Return(&model.User{PublicID: userID, Enabled: false}, nil)
		svc := NewAuthService(repo, new(MockRestaurantRepository), jwtService, store, nil)

		_, err := svc.RefreshToken(context.Background(), refresh)
		assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := newTestJWT()
	userID := uuid.New()
	_, access, err := jwtService.GenerateAccessToken(userID.String())
	require.NoError(t, err)
	refreshID, refresh, err := jwtService.GenerateRefreshToken(userID.String())
	require.NoError(t, err)

	store := new(MockTokenStore)
	store.On("DeleteRefreshToken", mock.Anything, refreshID).Return(nil)
	store.On("BlacklistAccessToken", mock.Anything, access.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= time.Minute
	})).Return(nil)
	svc := NewAuthService(new(MockUserRepository), new(MockRestaurantRepository), jwtService, store, nil)

	require.NoError(t, svc.Logout(context.Background(), access, refresh))
	store.AssertExpectations(t)

	_, otherRefresh, err := jwtService.GenerateRefreshToken(uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, apperrors.ErrInvalidRefreshToken, svc.Logout(context.Background(), access, otherRefresh))
	assert.Equal(t, apperrors.ErrInvalidToken, svc.Logout(context.Background(), nil, ""))
}

func TestAuthService_Logout_FailsWhenRevocationNotStored(t *testing.T) {
	jwtService := newTestJWT()
	_, access, err := jwtService.GenerateAccessToken(uuid.NewString())
	require.NoError(t, err)

	store := new(MockTokenStore)
	store.On("BlacklistAccessToken", mock.Anything, access.ID, mock.Anything).Return(cache.ErrUnavailable)
	svc := NewAuthService(new(MockUserRepository), new(MockRestaurantRepository), jwtService, store, nil)

	err = svc.Logout(context.Background(), access, "")
	assert.ErrorIs(t, err, cache.ErrUnavailable)
	assert.Equal(t, "INTERNAL_ERROR", apperrors.MapErrorToHTTP(err).Code)
	store.AssertExpectations(t)
}

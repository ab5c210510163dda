package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"reviewhub/internal/audit"
	"reviewhub/internal/cache"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/metrics"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/tracing"
)

const (
	defaultRestaurantCacheTTL = 5 * time.Minute
	maxReferenceLength        = 255
	restaurantListCacheKey    = "restaurants:all"
)

// RestaurantInput carries restaurant attributes for creation.
type RestaurantInput struct {
	Name    string
	Address string
	Contact string
	Email   string
	Rating  float64
	Image   string
	Menu    string
	AvgCost decimal.Decimal
}

// RestaurantUpdate is a partial update; nil fields are left unchanged.
type RestaurantUpdate struct {
	Name    *string
	Address *string
	Contact *string
	Email   *string
	Rating  *float64
	Image   *string
	Menu    *string
	AvgCost *decimal.Decimal
}

// RestaurantService manages restaurants and the owner role that comes with them.
type RestaurantService interface {
	// AddRestaurant creates a restaurant and promotes its owner in one transaction.
	AddRestaurant(ctx context.Context, actor *model.User, ownerID uuid.UUID, in RestaurantInput) (*model.Restaurant, error)
	// DeleteRestaurant removes a restaurant and its reviews and demotes the owner in one transaction.
	DeleteRestaurant(ctx context.Context, actor *model.User, restaurantID uuid.UUID) error
	GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*model.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	UpdateRestaurant(ctx context.Context, actor *model.User, restaurantID uuid.UUID, in RestaurantUpdate) (*model.Restaurant, error)
}

type restaurantService struct {
	uow      repository.UnitOfWork
	repo     repository.RestaurantRepository
	cache    *cache.Client
	cacheTTL time.Duration
	audit    *audit.Logger
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(
	uow repository.UnitOfWork,
	repo repository.RestaurantRepository,
	cache *cache.Client,
	cacheTTL time.Duration,
	auditLog *audit.Logger,
) RestaurantService {
	if cacheTTL <= 0 {
		cacheTTL = defaultRestaurantCacheTTL
	}
	return &restaurantService{
		uow:      uow,
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		audit:    auditLog,
	}
}

func (s *restaurantService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("restaurant:%s", id.String())
}

func (s *restaurantService) AddRestaurant(ctx context.Context, actor *model.User, ownerID uuid.UUID, in RestaurantInput) (*model.Restaurant, error) {
	ctx, span := tracing.Start(ctx, "RestaurantService.AddRestaurant")
	defer span.End()

	if !actor.IsAdmin() {
		s.denied(ctx, actor, "add_restaurant")
		return nil, apperrors.ErrAdminRequired
	}
	if err := validateRestaurantInput(&in); err != nil {
		return nil, err
	}

	var (
		created  *model.Restaurant
		previous model.Role
	)
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		owner, err := repos.Users.FindByPublicIDForUpdate(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return err
		}
		switch {
		case owner.Role == model.RoleOwner:
			return apperrors.ErrOwnerHasRestaurant
		case owner.Role == model.RoleAdmin:
			return apperrors.ErrAdminCannotOwn
		case !owner.Enabled:
			return apperrors.ErrUserDisabled
		}
		previous = owner.Role

		if err := repos.Users.UpdateRole(ctx, owner.PublicID, model.RoleOwner); err != nil {
			return err
		}

		restaurant := &model.Restaurant{
			Name:          in.Name,
			Address:       in.Address,
			Contact:       in.Contact,
			Email:         in.Email,
			Rating:        in.Rating,
			Image:         in.Image,
			Menu:          in.Menu,
			AvgCost:       in.AvgCost,
			OwnerPublicID: uuid.NullUUID{UUID: owner.PublicID, Valid: true},
		}
		if err := repos.Restaurants.Create(ctx, restaurant); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrOwnerHasRestaurant
			}
			return err
		}
		created = restaurant
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, txError("add restaurant", err)
	}

	metrics.ObserveRoleTransition(string(previous), string(model.RoleOwner))
	s.audit.LogRoleTransition(ctx, actor.PublicID.String(), ownerID.String(), string(previous), string(model.RoleOwner))
	s.audit.LogAction(ctx, actor.PublicID.String(), "add_restaurant", "restaurant", created.PublicID.String(), "success", created.Name)
	_ = s.cache.Delete(ctx, restaurantListCacheKey)
	return created, nil
}

func (s *restaurantService) DeleteRestaurant(ctx context.Context, actor *model.User, restaurantID uuid.UUID) error {
	ctx, span := tracing.Start(ctx, "RestaurantService.DeleteRestaurant")
	defer span.End()

	if !actor.IsAdmin() {
		s.denied(ctx, actor, "delete_restaurant")
		return apperrors.ErrAdminRequired
	}

	var (
		demoted    uuid.UUID
		reviews    int64
		wasDemoted bool
	)
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		restaurant, err := repos.Restaurants.FindByPublicIDForUpdate(ctx, restaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRestaurantNotFound
			}
			return err
		}

		if restaurant.OwnerPublicID.Valid {
			owner, err := repos.Users.FindByPublicIDForUpdate(ctx, restaurant.OwnerPublicID.UUID)
			switch {
			case err == nil:
				if owner.Role == model.RoleOwner {
					if err := repos.Users.UpdateRole(ctx, owner.PublicID, model.RoleCustomer); err != nil {
						return err
					}
					demoted, wasDemoted = owner.PublicID, true
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				// dangling owner reference, nothing to reset
			default:
				return err
			}
		}

		if reviews, err = repos.Reviews.DeleteByRestaurant(ctx, restaurant.PublicID); err != nil {
			return err
		}
		return repos.Restaurants.Delete(ctx, restaurant.PublicID)
	})
	if err != nil {
		span.RecordError(err)
		return txError("delete restaurant", err)
	}

	if wasDemoted {
		metrics.ObserveRoleTransition(string(model.RoleOwner), string(model.RoleCustomer))
		s.audit.LogRoleTransition(ctx, actor.PublicID.String(), demoted.String(), string(model.RoleOwner), string(model.RoleCustomer))
	}
	s.audit.LogAction(ctx, actor.PublicID.String(), "delete_restaurant", "restaurant", restaurantID.String(), "success",
		fmt.Sprintf("%d reviews removed", reviews))
	_ = s.cache.Delete(ctx, s.cacheKey(restaurantID), restaurantListCacheKey)
	return nil
}

// GetRestaurant retrieves a restaurant by public id with caching.
func (s *restaurantService) GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*model.Restaurant, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(restaurantID)); data != nil {
		var cached model.Restaurant
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	restaurant, err := s.repo.FindByPublicID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}

	if payload, err := json.Marshal(restaurant); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(restaurantID), payload, s.cacheTTL)
	}
	return restaurant, nil
}

func (s *restaurantService) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	if data, _ := s.cache.Get(ctx, restaurantListCacheKey); data != nil {
		var cached []model.Restaurant
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	restaurants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	if payload, err := json.Marshal(restaurants); err == nil {
		_ = s.cache.Set(ctx, restaurantListCacheKey, payload, s.cacheTTL)
	}
	return restaurants, nil
}

func (s *restaurantService) UpdateRestaurant(ctx context.Context, actor *model.User, restaurantID uuid.UUID, in RestaurantUpdate) (*model.Restaurant, error) {
	restaurant, err := s.repo.FindByPublicID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	if !actor.IsAdmin() && !restaurant.OwnedBy(actor.PublicID) {
		s.denied(ctx, actor, "update_restaurant")
		return nil, apperrors.ErrNotRestaurantOwner
	}

	patched := RestaurantInput{
		Name:    restaurant.Name,
		Address: restaurant.Address,
		Contact: restaurant.Contact,
		Email:   restaurant.Email,
		Rating:  restaurant.Rating,
		Image:   restaurant.Image,
		Menu:    restaurant.Menu,
		AvgCost: restaurant.AvgCost,
	}
	applyRestaurantUpdate(&patched, in)
	if err := validateRestaurantInput(&patched); err != nil {
		return nil, err
	}

	restaurant.Name = patched.Name
	restaurant.Address = patched.Address
	restaurant.Contact = patched.Contact
	restaurant.Email = patched.Email
	restaurant.Rating = patched.Rating
	restaurant.Image = patched.Image
	restaurant.Menu = patched.Menu
	restaurant.AvgCost = patched.AvgCost
	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(restaurantID), restaurantListCacheKey)
	return restaurant, nil
}

func (s *restaurantService) denied(ctx context.Context, actor *model.User, action string) {
	actorID := ""
	if actor != nil {
		actorID = actor.PublicID.String()
	}
	s.audit.LogDenied(ctx, actorID, action, "insufficient role")
}

func applyRestaurantUpdate(dst *RestaurantInput, in RestaurantUpdate) {
	if in.Name != nil {
		dst.Name = *in.Name
	}
	if in.Address != nil {
		dst.Address = *in.Address
	}
	if in.Contact != nil {
		dst.Contact = *in.Contact
	}
	if in.Email != nil {
		dst.Email = *in.Email
	}
	if in.Rating != nil {
		dst.Rating = *in.Rating
	}
	if in.Image != nil {
		dst.Image = *in.Image
	}
	if in.Menu != nil {
		dst.Menu = *in.Menu
	}
	if in.AvgCost != nil {
		dst.AvgCost = *in.AvgCost
	}
}

func validateRestaurantInput(in *RestaurantInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Name == "":
		return apperrors.Validation("restaurant name is required")
	case utf8.RuneCountInString(in.Name) > 50:
		return apperrors.Validation("restaurant name must be at most 50 characters")
	case in.Address == "":
		return apperrors.Validation("restaurant address is required")
	case utf8.RuneCountInString(in.Address) > 60:
		return apperrors.Validation("restaurant address must be at most 60 characters")
	case utf8.RuneCountInString(in.Contact) > 20:
		return apperrors.Validation("contact must be at most 20 characters")
	case utf8.RuneCountInString(in.Email) > maxReferenceLength:
		return apperrors.Validation("email must be at most 255 characters")
	case utf8.RuneCountInString(in.Image) > maxReferenceLength:
		return apperrors.Validation("image must be at most 255 characters")
	case utf8.RuneCountInString(in.Menu) > maxReferenceLength:
		return apperrors.Validation("menu must be at most 255 characters")
	case in.Rating < 0 || in.Rating > 5:
		return apperrors.Validation("rating must be between 0 and 5")
	case in.AvgCost.IsNegative():
		return apperrors.Validation("average cost cannot be negative")
	}
	return nil
}

// txError keeps typed errors raised inside a transaction and marks anything
// else as a rolled-back multi-row write.
func txError(op string, err error) error {
	if apperrors.KindOf(err) != "" {
		return err
	}
	return apperrors.Integrity(op, err)
}

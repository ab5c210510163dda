package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reviewhub/internal/model"
)

// RestaurantRepository defines restaurant persistence operations.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	Update(ctx context.Context, restaurant *model.Restaurant) error
	FindByPublicID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	FindByPublicIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Restaurant, error)
	List(ctx context.Context) ([]model.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository.
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

// Create creates a new restaurant.
func (r *restaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

// Update saves every column of an existing restaurant.
func (r *restaurantRepository) Update(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

// FindByPublicID finds a restaurant by public id.
func (r *restaurantRepository) FindByPublicID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).Where("public_id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FindByPublicIDForUpdate finds a restaurant with a row-level lock for update.
func (r *restaurantRepository) FindByPublicIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("public_id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FindByOwner finds the restaurant owned by the given user.
func (r *restaurantRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).Where("owner_public_id = ?", ownerID).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// List lists all restaurants by name.
func (r *restaurantRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := r.db.WithContext(ctx).Order("name, id").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Delete removes a restaurant, returning gorm.ErrRecordNotFound when nothing matched.
func (r *restaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("public_id = ?", id).Delete(&model.Restaurant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

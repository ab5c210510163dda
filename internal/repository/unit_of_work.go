package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the repositories bound to one transaction.
type Repositories struct {
	Users       UserRepository
	Restaurants RestaurantRepository
	Reviews     ReviewRepository
}

// UnitOfWork runs multi-repository writes atomically.
type UnitOfWork interface {
	// WithTransaction commits when fn returns nil and rolls everything back otherwise.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a GORM-backed unit of work.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{db: db}
}

// WithTransaction executes a function within a database transaction.
func (u *unitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, Repositories{
			Users:       &userRepository{db: tx},
			Restaurants: &restaurantRepository{db: tx},
			Reviews:     &reviewRepository{db: tx},
		})
	})
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.Review, error)
	Delete(ctx context.Context, id uint) error
	DeleteByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error)
	// MarkAnswered flips an unanswered review to answered; false means it was already answered or is gone.
	MarkAnswered(ctx context.Context, id uint, text string, at time.Time) (bool, error)
	// EditAnswer overwrites the response of an answered review; false means no answered review matched.
	EditAnswer(ctx context.Context, id uint, text string, at time.Time) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// FindByID finds a review by ID.
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByRestaurant lists a restaurant's reviews, newest first.
func (r *reviewRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("restaurant_public_id = ?", restaurantID).
		Order("posted_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Delete removes a review, returning gorm.ErrRecordNotFound when nothing matched.
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByRestaurant removes every review of a restaurant.
func (r *reviewRepository) DeleteByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("restaurant_public_id = ?", restaurantID).Delete(&model.Review{})
	return res.RowsAffected, res.Error
}

func (r *reviewRepository) MarkAnswered(ctx context.Context, id uint, text string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ? AND is_replied = ?", id, false).
		Updates(map[string]interface{}{
			"is_replied":    true,
			"response_text": text,
			"responded_at":  at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *reviewRepository) EditAnswer(ctx context.Context, id uint, text string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ? AND is_replied = ?", id, true).
		Updates(map[string]interface{}{
			"response_text": text,
			"responded_at":  at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

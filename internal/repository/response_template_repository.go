package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// ResponseTemplateRepository defines reply template persistence operations.
type ResponseTemplateRepository interface {
	Create(ctx context.Context, tmpl *model.ResponseTemplate) error
	FindByID(ctx context.Context, id uint) (*model.ResponseTemplate, error)
	FindByText(ctx context.Context, text string) (*model.ResponseTemplate, error)
	List(ctx context.Context, sentiment *int) ([]model.ResponseTemplate, error)
}

type responseTemplateRepository struct {
	db *gorm.DB
}

// NewResponseTemplateRepository creates a new template repository.
func NewResponseTemplateRepository(db *gorm.DB) ResponseTemplateRepository {
	return &responseTemplateRepository{db: db}
}

func (r *responseTemplateRepository) Create(ctx context.Context, tmpl *model.ResponseTemplate) error {
	return r.db.WithContext(ctx).Create(tmpl).Error
}

func (r *responseTemplateRepository) FindByID(ctx context.Context, id uint) (*model.ResponseTemplate, error) {
	var tmpl model.ResponseTemplate
	if err := r.db.WithContext(ctx).First(&tmpl, id).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *responseTemplateRepository) FindByText(ctx context.Context, text string) (*model.ResponseTemplate, error) {
	var tmpl model.ResponseTemplate
	if err := r.db.WithContext(ctx).Where("text = ?", text).First(&tmpl).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// List returns templates ordered by sentiment, optionally only those with the given score.
func (r *responseTemplateRepository) List(ctx context.Context, sentiment *int) ([]model.ResponseTemplate, error) {
	q := r.db.WithContext(ctx).Order("sentiment_score DESC, id")
	if sentiment != nil {
		q = q.Where("sentiment_score = ?", *sentiment)
	}
	var templates []model.ResponseTemplate
	if err := q.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

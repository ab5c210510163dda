package service

import (
	"context"
	"fmt"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

const maxTemplateLength = 200

// ResponseTemplateService manages canned owner replies.
type ResponseTemplateService interface {
	CreateTemplate(ctx context.Context, actor *model.User, text string, sentiment int) (*model.ResponseTemplate, error)
	ListTemplates(ctx context.Context, actor *model.User, sentiment *int) ([]model.ResponseTemplate, error)
}

type responseTemplateService struct {
	repo repository.ResponseTemplateRepository
}

// NewResponseTemplateService creates a new template service.
func NewResponseTemplateService(repo repository.ResponseTemplateRepository) ResponseTemplateService {
	return &responseTemplateService{repo: repo}
}

func (s *responseTemplateService) CreateTemplate(ctx context.Context, actor *model.User, text string, sentiment int) (*model.ResponseTemplate, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}
	text, err := cleanText(text, "template text", maxTemplateLength)
	if err != nil {
		return nil, err
	}
	if err := validateSentiment(sentiment); err != nil {
		return nil, err
	}

	tmpl := &model.ResponseTemplate{Text: text, SentimentScore: sentiment}
	if err := s.repo.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return tmpl, nil
}

func (s *responseTemplateService) ListTemplates(ctx context.Context, actor *model.User, sentiment *int) ([]model.ResponseTemplate, error) {
	if !actor.IsAdmin() && !actor.IsOwner() {
		return nil, apperrors.ErrForbidden
	}
	if sentiment != nil {
		if err := validateSentiment(*sentiment); err != nil {
			return nil, err
		}
	}
	templates, err := s.repo.List(ctx, sentiment)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func validateSentiment(score int) error {
	if score < model.MinSentimentScore || score > model.MaxSentimentScore {
		return apperrors.Validationf("sentiment_score must be between %d and %d", model.MinSentimentScore, model.MaxSentimentScore)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewhub/internal/audit"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/metrics"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/statemachine"
	"reviewhub/internal/tracing"
)

const maxReviewLength = 300

// ResponseInput is an owner reply: free text or a reply template, not both.
type ResponseInput struct {
	Text       string
	TemplateID *uint
}

// ResponseResult reports the review after a reply and which transition it took.
type ResponseResult struct {
	Review  *model.Review
	Outcome statemachine.Outcome
}

// ReviewService runs the review and owner-reply workflow.
type ReviewService interface {
	PostReview(ctx context.Context, author *model.User, restaurantID uuid.UUID, text string) (*model.Review, error)
	PostResponse(ctx context.Context, responder *model.User, reviewID uint, in ResponseInput) (*ResponseResult, error)
	ListReviewsForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.ReviewView, error)
	DeleteReview(ctx context.Context, actor *model.User, reviewID uint) error
}

type reviewService struct {
	reviews     repository.ReviewRepository
	restaurants repository.RestaurantRepository
	users       repository.UserRepository
	templates   repository.ResponseTemplateRepository
	audit       *audit.Logger
	now         func() time.Time
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviews repository.ReviewRepository,
	restaurants repository.RestaurantRepository,
	users repository.UserRepository,
	templates repository.ResponseTemplateRepository,
	auditLog *audit.Logger,
) ReviewService {
	return &reviewService{
		reviews:     reviews,
		restaurants: restaurants,
		users:       users,
		templates:   templates,
		audit:       auditLog,
		now:         time.Now,
	}
}

func (s *reviewService) PostReview(ctx context.Context, author *model.User, restaurantID uuid.UUID, text string) (*model.Review, error) {
	if author == nil || author.Role != model.RoleCustomer {
		return nil, apperrors.ErrCustomerRequired
	}
	text, err := cleanText(text, "review text", maxReviewLength)
	if err != nil {
		return nil, err
	}

	if _, err := s.findRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	review := &model.Review{
		Text:               text,
		PostedAt:           s.now().UTC(),
		AuthorPublicID:     author.PublicID,
		RestaurantPublicID: restaurantID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	metrics.ObserveReviewPosted()
	return review, nil
}

// PostResponse sets the owner's reply. The first reply flips the review to
// answered ("posted"); later replies overwrite the text ("edited").
func (s *reviewService) PostResponse(ctx context.Context, responder *model.User, reviewID uint, in ResponseInput) (*ResponseResult, error) {
	ctx, span := tracing.Start(ctx, "ReviewService.PostResponse")
	defer span.End()

	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	restaurant, err := s.findRestaurant(ctx, review.RestaurantPublicID)
	if err != nil {
		return nil, err
	}
	if responder == nil || !restaurant.OwnedBy(responder.PublicID) {
		return nil, apperrors.ErrNotRestaurantOwner
	}
	text, err := s.responseText(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	from := statemachine.StateOf(review.IsReplied)
	if from == statemachine.Unanswered {
		flipped, err := s.reviews.MarkAnswered(ctx, reviewID, text, now)
		if err != nil {
			return nil, fmt.Errorf("answer review: %w", err)
		}
		if !flipped {
			// A concurrent writer answered it first.
			from = statemachine.Answered
		}
	}
	if from == statemachine.Answered {
		edited, err := s.reviews.EditAnswer(ctx, reviewID, text, now)
		if err != nil {
			return nil, fmt.Errorf("edit answer: %w", err)
		}
		if !edited {
			// Either deleted in between or an identical write the driver counted as unchanged.
			if _, err := s.findReview(ctx, reviewID); err != nil {
				return nil, err
			}
		}
	}

	transition, err := statemachine.Respond(from)
	if err != nil {
		return nil, err
	}

	updated, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(from, statemachine.StateOf(updated.IsReplied)); err != nil {
		return nil, fmt.Errorf("review %d: %w", reviewID, err)
	}
	metrics.ObserveReviewResponse(string(transition.Outcome))
	return &ResponseResult{Review: updated, Outcome: transition.Outcome}, nil
}

func (s *reviewService) ListReviewsForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.ReviewView, error) {
	if _, err := s.findRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	seen := make(map[uuid.UUID]bool, len(reviews))
	var authorIDs []uuid.UUID
	for _, r := range reviews {
		if !seen[r.AuthorPublicID] {
			seen[r.AuthorPublicID] = true
			authorIDs = append(authorIDs, r.AuthorPublicID)
		}
	}
	authors, err := s.users.FindByPublicIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load review authors: %w", err)
	}
	names := make(map[uuid.UUID]string, len(authors))
	for _, a := range authors {
		names[a.PublicID] = a.Name
	}

	views := make([]model.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, model.NewReviewView(r, names[r.AuthorPublicID]))
	}
	return views, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor *model.User, reviewID uint) error {
	if !actor.IsAdmin() {
		return apperrors.ErrAdminRequired
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}
	s.audit.LogAction(ctx, actor.PublicID.String(), "delete_review", "review", fmt.Sprint(reviewID), "success", "")
	return nil
}

func (s *reviewService) responseText(ctx context.Context, in ResponseInput) (string, error) {
	hasText := strings.TrimSpace(in.Text) != ""
	switch {
	case hasText && in.TemplateID != nil:
		return "", apperrors.Validation("provide either response text or template_id, not both")
	case in.TemplateID != nil:
		tmpl, err := s.templates.FindByID(ctx, *in.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", apperrors.ErrTemplateNotFound
			}
			return "", fmt.Errorf("find template: %w", err)
		}
		return tmpl.Text, nil
	default:
		return cleanText(in.Text, "response text", maxReviewLength)
	}
}

func (s *reviewService) findReview(ctx context.Context, id uint) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}

func (s *reviewService) findRestaurant(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.FindByPublicID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return restaurant, nil
}

func cleanText(text, field string, max int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.Validationf("%s is required", field)
	}
	if utf8.RuneCountInString(text) > max {
		return "", apperrors.Validationf("%s must be at most %d characters", field, max)
	}
	return text, nil
}

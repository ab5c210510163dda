package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/model"
	"reviewhub/internal/service"
	"reviewhub/internal/statemachine"
)

// ReviewHandler handles review and owner-reply endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// PostReviewRequest carries a customer review.
type PostReviewRequest struct {
	Text string `json:"text" validate:"required,max=300"`
}

// PostResponseRequest carries an owner reply, as free text or a template id.
type PostResponseRequest struct {
	Text       string `json:"text" validate:"omitempty,max=300"`
	TemplateID *uint  `json:"template_id" validate:"omitempty,gt=0"`
}

// ResponseResponse reports an owner reply and the transition it took.
type ResponseResponse struct {
	Outcome statemachine.Outcome `json:"outcome"`
	Review  *model.Review        `json:"review"`
}

// StateDescription is one reply state with its stored flag and successors.
type StateDescription struct {
	State     statemachine.ReplyState   `json:"state"`
	IsReplied bool                      `json:"is_replied"`
	Next      []statemachine.ReplyState `json:"next"`
}

// StateMachineResponse describes the reply lifecycle of a review.
type StateMachineResponse struct {
	States      []StateDescription        `json:"states"`
	Initial     statemachine.ReplyState   `json:"initial"`
	Transitions []statemachine.Transition `json:"transitions"`
}

// PostReview godoc
// @Summary Post a review
// @Description Customers only. The review starts unanswered.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant public ID"
// @Param request body PostReviewRequest true "Review text"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id}/reviews [post]
func (h *ReviewHandler) PostReview(c echo.Context) error {
	restaurantID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req PostReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewService.PostReview(c.Request().Context(), principal(c), restaurantID, req.Text)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, review)
}

// ListReviews godoc
// @Summary List reviews of a restaurant
// @Description Newest first. The owner's reply is included only once the review is answered.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant public ID"
// @Success 200 {array} model.ReviewView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	restaurantID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	views, err := h.reviewService.ListReviewsForRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// PostResponse godoc
// @Summary Reply to a review
// @Description Restaurant owner only. The first reply is reported as posted, later ones as edited.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param request body PostResponseRequest true "Reply text or template"
// @Success 200 {object} ResponseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id}/response [post]
func (h *ReviewHandler) PostResponse(c echo.Context) error {
	reviewID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	var req PostResponseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.reviewService.PostResponse(c.Request().Context(), principal(c), reviewID, service.ResponseInput{
		Text:       req.Text,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, ResponseResponse{Outcome: result.Outcome, Review: result.Review})
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	reviewID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.reviewService.DeleteReview(c.Request().Context(), principal(c), reviewID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// StateMachine godoc
// @Summary Describe the review reply lifecycle
// @Tags reviews
// @Produce json
// @Success 200 {object} StateMachineResponse
// @Router /reviews/state-machine [get]
func (h *ReviewHandler) StateMachine(c echo.Context) error {
	var states []StateDescription
	for _, st := range []statemachine.ReplyState{statemachine.Unanswered, statemachine.Answered} {
		states = append(states, StateDescription{
			State:     st,
			IsReplied: st.IsReplied(),
			Next:      statemachine.ValidTransitionsFrom(st),
		})
	}
	return c.JSON(http.StatusOK, StateMachineResponse{
		States:      states,
		Initial:     statemachine.Unanswered,
		Transitions: statemachine.Transitions(),
	})
}

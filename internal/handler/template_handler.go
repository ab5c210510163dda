package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/service"
)

// TemplateHandler serves canned owner replies.
type TemplateHandler struct {
	svc service.ResponseTemplateService
}

// NewTemplateHandler creates a new template handler.
func NewTemplateHandler(svc service.ResponseTemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// CreateTemplateRequest creates a reply template.
type CreateTemplateRequest struct {
	Text           string `json:"text" validate:"required,max=200"`
	SentimentScore *int   `json:"sentiment_score" validate:"required,min=-5,max=5"`
}

// CreateTemplate godoc
// @Summary Create a reply template
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTemplateRequest true "Template"
// @Success 201 {object} model.ResponseTemplate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/templates [post]
func (h *TemplateHandler) CreateTemplate(c echo.Context) error {
	var req CreateTemplateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tmpl, err := h.svc.CreateTemplate(c.Request().Context(), principal(c), req.Text, *req.SentimentScore)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, tmpl)
}

// ListTemplates godoc
// @Summary List reply templates
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param sentiment query int false "Exact sentiment score"
// @Success 200 {array} model.ResponseTemplate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	var sentiment *int
	if raw := c.QueryParam("sentiment"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest("invalid sentiment", "INVALID_SENTIMENT")
		}
		sentiment = &v
	}

	templates, err := h.svc.ListTemplates(c.Request().Context(), principal(c), sentiment)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, templates)
}

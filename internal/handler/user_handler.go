package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/service"
)

// UserHandler serves profile and admin user endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SetEnabledRequest toggles an account.
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	profile, err := h.svc.Profile(c.Request().Context(), principal(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newProfileResponse(profile.User, profile.OwnedRestaurantPublicID))
}

// GetUser godoc
// @Summary Get user by public id
// @Description Visible to the user themselves and to admins.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User public ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), principal(c), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListOwners godoc
// @Summary List restaurant owners
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/owners [get]
func (h *UserHandler) ListOwners(c echo.Context) error {
	users, err := h.svc.ListOwners(c.Request().Context(), principal(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// ListCustomers godoc
// @Summary List customers
// @Description Users who do not own a restaurant yet, the candidates for ownership.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/customers [get]
func (h *UserHandler) ListCustomers(c echo.Context) error {
	users, err := h.svc.ListCustomers(c.Request().Context(), principal(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// SetEnabled godoc
// @Summary Enable or disable a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User public ID"
// @Param request body SetEnabledRequest true "Enabled flag"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/enabled [patch]
func (h *UserHandler) SetEnabled(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req SetEnabledRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.SetEnabled(c.Request().Context(), principal(c), id, *req.Enabled)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

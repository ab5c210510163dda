package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"reviewhub/internal/service"
)

// RestaurantHandler handles restaurant endpoints.
type RestaurantHandler struct {
	restaurantService service.RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(restaurantService service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// AddRestaurantRequest creates a restaurant and names its owner.
type AddRestaurantRequest struct {
	OwnerID string  `json:"owner_id" validate:"required,uuid"`
	Name    string  `json:"name" validate:"required,max=50"`
	Address string  `json:"address" validate:"required,max=60"`
	Contact string  `json:"contact" validate:"omitempty,max=20"`
	Email   string  `json:"email" validate:"omitempty,email"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
	Image   string  `json:"image" validate:"omitempty,max=255"`
	Menu    string  `json:"menu" validate:"omitempty,max=255"`
	AvgCost string  `json:"avg_cost"`
}

// UpdateRestaurantRequest is a partial update; omitted fields are unchanged.
type UpdateRestaurantRequest struct {
	Name    *string  `json:"name" validate:"omitempty,max=50"`
	Address *string  `json:"address" validate:"omitempty,max=60"`
	Contact *string  `json:"contact" validate:"omitempty,max=20"`
	Email   *string  `json:"email" validate:"omitempty,email"`
	Rating  *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Image   *string  `json:"image" validate:"omitempty,max=255"`
	Menu    *string  `json:"menu" validate:"omitempty,max=255"`
	AvgCost *string  `json:"avg_cost"`
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, badRequest("invalid avg_cost", "INVALID_AMOUNT")
	}
	return amount, nil
}

// AddRestaurant godoc
// @Summary Add a restaurant
// @Description Creates the restaurant and promotes the named user to owner in one transaction.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddRestaurantRequest true "Restaurant data"
// @Success 201 {object} model.Restaurant
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/restaurants [post]
func (h *RestaurantHandler) AddRestaurant(c echo.Context) error {
	var req AddRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return badRequest("invalid owner_id", "INVALID_UUID")
	}
	avgCost, err := parseAmount(req.AvgCost)
	if err != nil {
		return err
	}

	restaurant, err := h.restaurantService.AddRestaurant(c.Request().Context(), principal(c), ownerID, service.RestaurantInput{
		Name:    req.Name,
		Address: req.Address,
		Contact: req.Contact,
		Email:   req.Email,
		Rating:  req.Rating,
		Image:   req.Image,
		Menu:    req.Menu,
		AvgCost: avgCost,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, restaurant)
}

// DeleteRestaurant godoc
// @Summary Delete a restaurant
// @Description Removes the restaurant and its reviews and demotes the owner in one transaction.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant public ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/restaurants/{id} [delete]
func (h *RestaurantHandler) DeleteRestaurant(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.restaurantService.DeleteRestaurant(c.Request().Context(), principal(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetRestaurant godoc
// @Summary Get a restaurant
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant public ID"
// @Success 200 {object} model.Restaurant
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetRestaurant(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	restaurant, err := h.restaurantService.GetRestaurant(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

// ListRestaurants godoc
// @Summary List restaurants
// @Tags restaurants
// @Produce json
// @Success 200 {array} model.Restaurant
// @Router /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c echo.Context) error {
	restaurants, err := h.restaurantService.ListRestaurants(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, restaurants)
}

// UpdateRestaurant godoc
// @Summary Update a restaurant
// @Description Allowed for the restaurant's owner and for admins.
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant public ID"
// @Param request body UpdateRestaurantRequest true "Fields to change"
// @Success 200 {object} model.Restaurant
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id} [put]
func (h *RestaurantHandler) UpdateRestaurant(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdateRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	update := service.RestaurantUpdate{
		Name:    req.Name,
		Address: req.Address,
		Contact: req.Contact,
		Email:   req.Email,
		Rating:  req.Rating,
		Image:   req.Image,
		Menu:    req.Menu,
	}
	if req.AvgCost != nil {
		avgCost, err := parseAmount(*req.AvgCost)
		if err != nil {
			return err
		}
		update.AvgCost = &avgCost
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(c.Request().Context(), principal(c), id, update)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

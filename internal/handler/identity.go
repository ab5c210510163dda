package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reviewhub/internal/auth"
	"reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/service"
)

const (
	claimsContextKey    = "user"
	principalContextKey = "principal"
)

// respondError converts a service error into the JSON error envelope.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

// TokenParser plugs bearer token resolution into echo-jwt. Revoked tokens are
// rejected here, before any handler runs.
func TokenParser(authService service.AuthService) func(c echo.Context, token string) (interface{}, error) {
	return func(c echo.Context, token string) (interface{}, error) {
		return authService.ResolveToken(c.Request().Context(), token)
	}
}

// AuthErrorHandler renders echo-jwt failures with the same envelope as every
// other error.
func AuthErrorHandler(c echo.Context, err error) error {
	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		return respondError(appErr)
	}
	return respondError(errors.ErrInvalidToken)
}

// LoadPrincipal loads the caller's user record for the verified token. Role
// and enabled flag always come from storage, never from the token.
func LoadPrincipal(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := accessClaims(c)
			if claims == nil {
				return respondError(errors.ErrInvalidToken)
			}
			id, err := claims.UserPublicID()
			if err != nil {
				return respondError(errors.ErrInvalidToken)
			}
			user, err := authService.Principal(c.Request().Context(), id)
			if err != nil {
				return respondError(err)
			}
			c.Set(principalContextKey, user)
			return next(c)
		}
	}
}

// RequireRole rejects callers whose role is not one of roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := principal(c)
			if user == nil {
				return respondError(errors.ErrInvalidToken)
			}
			for _, r := range roles {
				if user.Role == r {
					return next(c)
				}
			}
			if len(roles) == 1 && roles[0] == model.RoleAdmin {
				return respondError(errors.ErrAdminRequired)
			}
			return respondError(errors.ErrForbidden)
		}
	}
}

func principal(c echo.Context) *model.User {
	user, _ := c.Get(principalContextKey).(*model.User)
	return user
}

func accessClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, badRequest("invalid "+name, "INVALID_UUID")
	}
	return id, nil
}

func uintParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid "+name, "INVALID_ID")
	}
	return uint(id), nil
}

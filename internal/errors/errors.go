package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for callers and for HTTP status mapping.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
	KindIntegrity  Kind = "integrity"
)

// Error is a typed application error.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	// ErrUserNotFound is returned when a user public id resolves to nothing.
	ErrUserNotFound = newError(KindNotFound, "USER_NOT_FOUND", "user not found")
	// ErrRestaurantNotFound is returned when a restaurant public id resolves to nothing.
	ErrRestaurantNotFound = newError(KindNotFound, "RESTAURANT_NOT_FOUND", "restaurant not found")
	// ErrReviewNotFound is returned when a review id resolves to nothing.
	ErrReviewNotFound = newError(KindNotFound, "REVIEW_NOT_FOUND", "review not found")
	// ErrTemplateNotFound is returned when a reply template id resolves to nothing.
	ErrTemplateNotFound = newError(KindNotFound, "TEMPLATE_NOT_FOUND", "response template not found")

	// ErrEmailTaken is returned when registering an email that is already in use.
	ErrEmailTaken = newError(KindConflict, "EMAIL_TAKEN", "email already registered")
	// ErrOwnerHasRestaurant is returned when the target user already owns a restaurant.
	ErrOwnerHasRestaurant = newError(KindConflict, "OWNER_HAS_RESTAURANT", "user already owns a restaurant")
	// ErrAdminCannotOwn is returned when an admin is proposed as a restaurant owner.
	ErrAdminCannotOwn = newError(KindConflict, "ADMIN_CANNOT_OWN", "admins cannot own restaurants")
	// ErrUserDisabled is returned when a disabled user is made an owner.
	ErrUserDisabled = newError(KindConflict, "USER_DISABLED", "user is disabled")
	// ErrCannotDisableSelf is returned when an admin tries to disable their own account.
	ErrCannotDisableSelf = newError(KindConflict, "CANNOT_DISABLE_SELF", "admins cannot disable their own account")

	// ErrAccountNotFound is returned by login when no user matches the email.
	ErrAccountNotFound = newError(KindAuth, "ACCOUNT_NOT_FOUND", "no account for this email")
	// ErrBadCredentials is returned by login when the password does not match.
	ErrBadCredentials = newError(KindAuth, "BAD_CREDENTIALS", "bad credentials")
	// ErrAccountDisabled is returned when a disabled user logs in or presents a token.
	ErrAccountDisabled = newError(KindAuth, "ACCOUNT_DISABLED", "account is disabled")
	// ErrInvalidToken is returned for missing, malformed or expired bearer tokens.
	ErrInvalidToken = newError(KindAuth, "INVALID_TOKEN", "invalid or expired token")
	// ErrTokenRevoked is returned for access tokens revoked by logout.
	ErrTokenRevoked = newError(KindAuth, "TOKEN_REVOKED", "token has been revoked")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or revoked.
	ErrInvalidRefreshToken = newError(KindAuth, "INVALID_REFRESH_TOKEN", "invalid or expired refresh token")

	// ErrForbidden is returned when the caller may not read or change a resource.
	ErrForbidden = newError(KindForbidden, "FORBIDDEN", "not allowed")
	// ErrAdminRequired is returned when a non-admin calls an admin operation.
	ErrAdminRequired = newError(KindForbidden, "ADMIN_REQUIRED", "admin role required")
	// ErrNotRestaurantOwner is returned when the caller does not own the restaurant involved.
	ErrNotRestaurantOwner = newError(KindForbidden, "NOT_RESTAURANT_OWNER", "caller does not own this restaurant")
	// ErrCustomerRequired is returned when a non-customer tries to post a review.
	ErrCustomerRequired = newError(KindForbidden, "CUSTOMER_REQUIRED", "only customers can post reviews")
)

// Validation builds a validation error with a caller-facing message.
func Validation(message string) *Error {
	return newError(KindValidation, "VALIDATION_ERROR", message)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Integrity wraps the failure of an atomic multi-row write that was rolled back.
func Integrity(op string, err error) *Error {
	return &Error{Kind: KindIntegrity, Code: "INTEGRITY_ERROR", Message: op + " rolled back", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}

	switch appErr.Kind {
	case KindValidation:
		return NewHTTPError(http.StatusBadRequest, appErr.Message, appErr.Code)
	case KindAuth:
		return NewHTTPError(http.StatusUnauthorized, appErr.Message, appErr.Code)
	case KindForbidden:
		return NewHTTPError(http.StatusForbidden, appErr.Message, appErr.Code)
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, appErr.Message, appErr.Code)
	case KindConflict:
		return NewHTTPError(http.StatusConflict, appErr.Message, appErr.Code)
	case KindIntegrity:
		// The cause stays in logs.
		return NewHTTPError(http.StatusInternalServerError, appErr.Message, appErr.Code)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

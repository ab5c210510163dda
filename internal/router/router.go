package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"reviewhub/internal/audit"
	"reviewhub/internal/config"
	"reviewhub/internal/errors"
	"reviewhub/internal/handler"
	"reviewhub/internal/metrics"
	"reviewhub/internal/model"
	"reviewhub/internal/service"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Restaurant *handler.RestaurantHandler
	Review     *handler.ReviewHandler
	Template   *handler.TemplateHandler
	Health     *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *slog.Logger,
	authService service.AuthService,
	h Handlers,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(audit.WithRequestID(c.Request().Context(), id)))
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(requestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	e.Use(metrics.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", h.Health.Healthz)
	e.GET("/readyz", h.Health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	authGroup := api.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		authGroup.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.AuthRateLimit)),
			DenyHandler: func(c echo.Context, _ string, _ error) error {
				return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
					Error: "too many requests",
					Code:  "RATE_LIMITED",
				})
			},
		}))
	}
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)

	api.GET("/restaurants", h.Restaurant.ListRestaurants)
	api.GET("/restaurants/:id", h.Restaurant.GetRestaurant)
	api.GET("/reviews/state-machine", h.Review.StateMachine)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: handler.TokenParser(authService),
		ErrorHandler:   handler.AuthErrorHandler,
	}), handler.LoadPrincipal(authService))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/me", h.User.Me)
	secured.GET("/users/:id", h.User.GetUser)

	secured.PUT("/restaurants/:id", h.Restaurant.UpdateRestaurant)
	secured.GET("/restaurants/:id/reviews", h.Review.ListReviews)
	secured.POST("/restaurants/:id/reviews", h.Review.PostReview, handler.RequireRole(model.RoleCustomer))
	secured.POST("/reviews/:id/response", h.Review.PostResponse, handler.RequireRole(model.RoleOwner))
	secured.GET("/templates", h.Template.ListTemplates, handler.RequireRole(model.RoleOwner, model.RoleAdmin))

	// Admin routes
	admin := secured.Group("/admin", handler.RequireRole(model.RoleAdmin))
	admin.POST("/templates", h.Template.CreateTemplate)
	admin.POST("/restaurants", h.Restaurant.AddRestaurant)
	admin.DELETE("/restaurants/:id", h.Restaurant.DeleteRestaurant)
	admin.DELETE("/reviews/:id", h.Review.DeleteReview)
	admin.GET("/users/owners", h.User.ListOwners)
	admin.GET("/users/customers", h.User.ListCustomers)
	admin.PATCH("/users/:id/enabled", h.User.SetEnabled)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency.Round(time.Microsecond)),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "http request", attrs...)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

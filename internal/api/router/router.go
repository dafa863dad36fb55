package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/api/handlers"
	apiMiddleware "github/chapool/go-near-tools/internal/api/middleware"
)

func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true

	s.Echo.HTTPErrorHandler = HTTPErrorHandlerWithConfig(HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	// ---
	// General middleware
	if s.Config.Echo.EnableTrailingSlashMiddleware {
		s.Echo.Pre(middleware.RemoveTrailingSlash())
	}

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(middleware.Recover())
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(middleware.RequestID())
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(apiMiddleware.LoggerWithConfig(apiMiddleware.LoggerConfig{
			Level:             s.Config.Logger.RequestLevel,
			LogRequestBody:    s.Config.Logger.LogRequestBody,
			LogRequestHeader:  s.Config.Logger.LogRequestHeader,
			LogRequestQuery:   s.Config.Logger.LogRequestQuery,
			LogResponseBody:   s.Config.Logger.LogResponseBody,
			LogResponseHeader: s.Config.Logger.LogResponseHeader,
		}))
	}

	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(middleware.CORS())
	}

	// HTTP-level metrics live on the same registry as the application-level
	// collectors and are scraped together at /-/metrics.
	if s.Config.Metrics.Enable && s.Metrics != nil {
		s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "http",
			Registerer: s.Metrics.Registry,
		}))
	}

	// ---
	// Initialize our general groups and set middleware to use above them
	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		// Unsecured base group available at /**
		Root: s.Echo.Group(""),

		// Management endpoints, secured by the mgmt-secret query parameter,
		// available at /-/**
		Management: s.Echo.Group("/-", middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			KeyLookup: "query:mgmt-secret",
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == s.Config.Management.Secret, nil
			},
			Skipper: func(c echo.Context) bool {
				// /-/ready is public, it reveals nothing but liveness
				return c.Path() == "/-/ready"
			},
		})),

		// Tool discovery and invocation, available at /api/v1/tools/**
		APIV1Tools: s.Echo.Group("/api/v1/tools"),
	}

	// ---
	// Finally attach our handlers
	handlers.AttachAllRoutes(s)
}

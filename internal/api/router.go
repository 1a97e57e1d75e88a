package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/asservice/shiftboard/internal/api/handler"
	"github.com/asservice/shiftboard/internal/api/middleware"
	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/ports"

	_ "github.com/asservice/shiftboard/docs"
)

// Dependencies are the collaborators the HTTP layer is wired to.
type Dependencies struct {
	AuthService     ports.AuthService
	ScheduleService ports.ScheduleService
	// HealthChecks are run by the readiness probe, keyed by dependency name.
	HealthChecks map[string]handler.DependencyCheck
	JWTSecret    string
	Logger       zerolog.Logger
	// Registry receives the HTTP metrics. Nil uses the Prometheus default
	// registry, where the application metrics live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(metricsMiddleware(deps.Registry))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	scheduleHandler := handler.NewScheduleHandler(deps.ScheduleService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))

	v1.GET("/me/work-items", scheduleHandler.MyWorkItems)
	v1.GET("/me/messages", scheduleHandler.MyMessages)
	v1.PUT("/work-items/:id/statuses/:user_id/interest", scheduleHandler.SetInterest)
	v1.PUT("/work-items/:id/statuses/:user_id/attendance", scheduleHandler.SetAttendance)

	admin := v1.Group("", middleware.RequireRole(domain.RoleAdmin))

	admin.GET("/users", scheduleHandler.ListUsers)
	admin.POST("/users", scheduleHandler.CreateWorker)
	admin.GET("/availability", scheduleHandler.Availability)
	admin.GET("/calendar", scheduleHandler.Calendar)

	admin.GET("/work-items", scheduleHandler.ListWorkItems)
	admin.POST("/work-items", scheduleHandler.CreateWorkItem)
	admin.POST("/work-items/describe", scheduleHandler.DescribeWork)
	admin.GET("/work-items/:id", scheduleHandler.GetWorkItem)
	admin.PUT("/work-items/:id", scheduleHandler.UpdateWorkItem)
	admin.POST("/work-items/:id/reminders", scheduleHandler.SendReminders)

	admin.GET("/insights/daily", scheduleHandler.DailyInsight)
	admin.GET("/exports/workers.csv", scheduleHandler.ExportWorkers)
	admin.GET("/exports/schedule.csv", scheduleHandler.ExportSchedule)
	admin.GET("/join-code", scheduleHandler.JoinCode)
	admin.POST("/join-code/regenerate", scheduleHandler.RegenerateJoinCode)

	return e
}

// requestLogger writes one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware("shiftboard")
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "shiftboard",
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

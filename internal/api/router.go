package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workpulse/attendance-system/internal/api/handler"
	"github.com/workpulse/attendance-system/internal/api/middleware"
	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/service"
	"github.com/workpulse/attendance-system/internal/infrastructure/config"
	mongodb "github.com/workpulse/attendance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/workpulse/attendance-system/internal/infrastructure/db/redis"
	"github.com/workpulse/attendance-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("attendance"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	counterRepo := mongodb.NewCounterRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)
	leaveRepo := mongodb.NewLeaveRepository(db)

	// --- Services ---
	var throttle service.LoginThrottle
	if rdb != nil {
		throttle = redisdb.NewLoginThrottle(rdb)
	}
	authService := service.NewAuthService(userRepo, counterRepo, throttle, cfg.JWTSecret, cfg.TokenTTL, cfg.AdminSignupKey, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo, log)
	leaveService := service.NewLeaveService(leaveRepo, userRepo, log)
	statsService := service.NewStatsService(attendanceRepo, leaveRepo, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	leaveHandler := handler.NewLeaveHandler(leaveService)
	statsHandler := handler.NewStatsHandler(statsService)

	authRequired := middleware.Auth(cfg.JWTSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Attendance ledger ---
	attendance := e.Group("/attendance", authRequired)
	attendance.POST("/clock-in", attendanceHandler.ClockIn)
	attendance.POST("/clock-out", attendanceHandler.ClockOut)
	attendance.GET("/me", attendanceHandler.ListMine)
	attendance.GET("/employees", attendanceHandler.Employees, adminOnly)
	attendance.GET("", attendanceHandler.ListAll, adminOnly)

	// --- Leave ledger ---
	leaves := e.Group("/leaves", authRequired)
	leaves.POST("", leaveHandler.Apply)
	leaves.GET("/me", leaveHandler.ListMine)
	leaves.GET("", leaveHandler.ListAll, adminOnly)
	leaves.PATCH("/:id/status", leaveHandler.Decide, adminOnly)

	// --- Dashboards ---
	stats := e.Group("/stats", authRequired)
	stats.GET("/me", statsHandler.Mine)
	stats.GET("/admin", statsHandler.Admin, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

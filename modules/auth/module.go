package auth

import (
	"context"
	"event-booking-api/core/cache"
	"event-booking-api/core/config"
	"event-booking-api/core/database"
	"event-booking-api/core/logger"
	"event-booking-api/core/middleware"
	"event-booking-api/modules/auth/controller"
	"event-booking-api/modules/auth/repository"
	"event-booking-api/modules/auth/router"
	"event-booking-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, cache cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(repo, cache)
	ctrl := controller.NewAuthController(authService)

	seedAdminUser(authService)

	router.NewAuthRouter(ctrl).Setup(e, mw)
}

func seedAdminUser(svc service.AuthServiceInterface) {
	cfg, ok := config.GetSafe()
	if !ok {
		logger.Warn("Auth:SeedAdminUser:ConfigNotInitialized")
		return
	}

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Info("Auth:SeedAdminUser:Skipped", "reason", "admin credentials not configured in env")
		return
	}

	if err := svc.SeedAdminUser(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Error("Auth:SeedAdminUser:Error", "error", err)
	}
}

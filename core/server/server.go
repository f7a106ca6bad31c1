package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"event-booking-api/core/cache"
	"event-booking-api/core/config"
	"event-booking-api/core/constants"
	"event-booking-api/core/database"
	"event-booking-api/core/logger"
	"event-booking-api/core/middleware"
	"event-booking-api/core/queue"
	"event-booking-api/modules/auth"
	authRepository "event-booking-api/modules/auth/repository"
	"event-booking-api/modules/event"
	"event-booking-api/modules/notification"
	"event-booking-api/modules/notification/worker"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run boots the HTTP server and the background task worker, then blocks
// until an interrupt signal triggers graceful shutdown.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}
	cfg := config.Get()

	logger.Init(cfg.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logger.Error("Server:Run:InitDB:Error:", err)
		return err
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		logger.Error("Server:Run:EnsureSchema:Error:", err)
		return err
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		logger.Error("Server:Run:NewRedisCache:Error:", err)
		return err
	}

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	mw := middleware.NewMiddleware(redisCache)

	auth.Init(e, db, redisCache, mw)
	event.Init(e, db, mw, queueClient)

	private := e.Group("/api/v1/private")
	notifSvc := notification.Init(private, db, mw)

	asynqServer, mux := queue.NewServer(cfg.Redis)
	w := worker.NewWorker(notifSvc, authRepository.NewAuthRepository(db))
	w.Register(mux)
	if err := asynqServer.Start(mux); err != nil {
		logger.Error("Server:Run:AsynqServer:Error:", err)
		return err
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("server started", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:Start:Error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	asynqServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}

package notification

import (
	"event-booking-api/core/database"
	"event-booking-api/core/middleware"
	"event-booking-api/modules/notification/controller"
	"event-booking-api/modules/notification/repository"
	"event-booking-api/modules/notification/router"
	"event-booking-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init wires the notification module and returns its service so the
// background worker can create notifications out of band.
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	router.NewNotificationRouter(ctrl).Register(e, mw)

	return svc
}

package event

import (
	"event-booking-api/core/config"
	"event-booking-api/core/database"
	"event-booking-api/core/middleware"
	"event-booking-api/core/queue"
	"event-booking-api/modules/event/controller"
	"event-booking-api/modules/event/policy"
	"event-booking-api/modules/event/repository"
	"event-booking-api/modules/event/router"
	"event-booking-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, qc queue.Enqueuer) {
	cfg := config.Get()

	repo := repository.NewEventRepository(db)
	pol := policy.Policy{
		RequireAuthToSubmit: cfg.Events.RequireAuthToSubmit,
		VerifyOwnerOnList:   cfg.Events.VerifyOwnerOnList,
	}
	svc := service.NewEventService(repo, pol, qc)
	ctrl := controller.NewEventController(svc)

	router.NewEventRouter(ctrl).Setup(e, mw)
}

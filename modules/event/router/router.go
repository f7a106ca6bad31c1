package router

import (
	"event-booking-api/core/middleware"
	"event-booking-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter registers the event request routes.
type EventRouter struct {
	Controller *controller.EventController
}

func NewEventRouter(ctrl *controller.EventController) *EventRouter {
	return &EventRouter{Controller: ctrl}
}

func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	events := v1.Group("/events")

	// Public endpoints. Optional auth so the policy toggles can see who is
	// calling when a token is supplied.
	events.POST("", r.Controller.Submit, mw.OptionalAuthMiddleware())
	events.GET("/user/:email", r.Controller.ListByOwner, mw.OptionalAuthMiddleware())
	events.GET("/ref/:reference", r.Controller.GetByReference)
	events.GET("/time-slots", r.Controller.TimeSlots)

	// Admin endpoints
	admin := events.Group("", mw.AuthMiddleware(), mw.AdminMiddleware())
	admin.GET("", r.Controller.ListAll)
	admin.GET("/:id", r.Controller.GetByID)
	admin.PATCH("/:id/status", r.Controller.UpdateStatus)
	admin.PATCH("/:id", r.Controller.Reschedule)
}

package controller

import (
	"event-booking-api/core/constants"
	"event-booking-api/core/controller"
	"event-booking-api/core/errors"
	"event-booking-api/core/utils"
	"event-booking-api/modules/event/dto"
	"event-booking-api/modules/event/lifecycle"
	"event-booking-api/modules/event/policy"
	"event-booking-api/modules/event/service"
	"event-booking-api/modules/event/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EventController handles event request HTTP endpoints
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

// principalFromContext builds the acting principal from the claims the
// auth middleware stored, or Anonymous when none are present.
func principalFromContext(ctx echo.Context) policy.Principal {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return policy.Anonymous
	}
	return policy.FromClaims(claims)
}

// Submit handles POST /events
// @Summary Submit an event request
// @Description Creates a new event request with pending status
// @Tags Events
// @Accept json
// @Produce json
// @Param request body dto.SubmitEventRequest true "Event request details"
// @Success 201 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /events [post]
func (c *EventController) Submit(ctx echo.Context) error {
	req := new(dto.SubmitEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	validationResult := validator.ValidateSubmitEventRequest(req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	event, appErr := c.EventService.Submit(ctx.Request().Context(), principalFromContext(ctx), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, event, "Event request submitted successfully")
}

// ListAll handles GET /events (admin)
// @Summary List all event requests
// @Description Returns every event request, newest first, optionally filtered by status
// @Tags Events
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status (pending|approved|rejected)"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /events [get]
func (c *EventController) ListAll(ctx echo.Context) error {
	events, appErr := c.EventService.ListAll(ctx.Request().Context(), principalFromContext(ctx), ctx.QueryParam("status"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, events, "Events retrieved successfully")
}

// GetByID handles GET /events/:id (admin)
// @Summary Get one event request
// @Tags Events
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [get]
func (c *EventController) GetByID(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	event, appErr := c.EventService.GetByID(ctx.Request().Context(), principalFromContext(ctx), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event retrieved successfully")
}

// UpdateStatus handles PATCH /events/:id/status (admin)
// @Summary Approve, reject or reopen an event request
// @Tags Events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id}/status [patch]
func (c *EventController) UpdateStatus(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	req := new(dto.UpdateStatusRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	validationResult := validator.ValidateUpdateStatusRequest(req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	event, appErr := c.EventService.SetStatus(ctx.Request().Context(), principalFromContext(ctx), id, req.Status)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event "+req.Status+" successfully")
}

// Reschedule handles PATCH /events/:id (admin)
// @Summary Correct the date and time of an event request
// @Tags Events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.RescheduleRequest true "New date and time"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [patch]
func (c *EventController) Reschedule(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	req := new(dto.RescheduleRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	validationResult := validator.ValidateRescheduleRequest(req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	event, appErr := c.EventService.Reschedule(ctx.Request().Context(), principalFromContext(ctx), id, req.Date, req.Time)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event updated successfully")
}

// ListByOwner handles GET /events/user/:email
// @Summary List event requests for an email
// @Description Returns the requests submitted with the given email, newest first
// @Tags Events
// @Produce json
// @Param email path string true "Requester email"
// @Success 200 {object} controller.SuccessResponse
// @Router /events/user/{email} [get]
func (c *EventController) ListByOwner(ctx echo.Context) error {
	email := ctx.Param("email")

	events, appErr := c.EventService.ListByOwner(ctx.Request().Context(), principalFromContext(ctx), email)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, events, "Events retrieved successfully")
}

// GetByReference handles GET /events/ref/:reference
// @Summary Look up an event request by its booking reference
// @Tags Events
// @Produce json
// @Param reference path string true "Booking reference"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/ref/{reference} [get]
func (c *EventController) GetByReference(ctx echo.Context) error {
	event, appErr := c.EventService.GetByReference(ctx.Request().Context(), ctx.Param("reference"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event retrieved successfully")
}

// TimeSlots handles GET /events/time-slots
// @Summary List the bookable time slots
// @Tags Events
// @Produce json
// @Success 200 {object} dto.TimeSlotsResponse
// @Router /events/time-slots [get]
func (c *EventController) TimeSlots(ctx echo.Context) error {
	return c.SuccessResponse(ctx, dto.TimeSlotsResponse{Slots: lifecycle.TimeSlots()}, "Time slots retrieved successfully")
}

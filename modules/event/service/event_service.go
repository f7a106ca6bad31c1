package service

import (
	"context"
	"event-booking-api/core/constants"
	"event-booking-api/core/errors"
	"event-booking-api/core/logger"
	"event-booking-api/core/queue"
	"event-booking-api/modules/event/dto"
	"event-booking-api/modules/event/entity"
	"event-booking-api/modules/event/lifecycle"
	"event-booking-api/modules/event/policy"
	"event-booking-api/modules/event/repository"
	"time"

	"github.com/google/uuid"
)

// EventServiceInterface orchestrates policy, lifecycle and the store for
// every operation on event requests.
type EventServiceInterface interface {
	Submit(ctx context.Context, pr policy.Principal, req *dto.SubmitEventRequest) (*entity.Event, *errors.AppError)
	ListAll(ctx context.Context, pr policy.Principal, statusFilter string) ([]entity.Event, *errors.AppError)
	GetByID(ctx context.Context, pr policy.Principal, id uuid.UUID) (*entity.Event, *errors.AppError)
	SetStatus(ctx context.Context, pr policy.Principal, id uuid.UUID, status string) (*entity.Event, *errors.AppError)
	Reschedule(ctx context.Context, pr policy.Principal, id uuid.UUID, date, timeSlot string) (*entity.Event, *errors.AppError)
	ListByOwner(ctx context.Context, pr policy.Principal, email string) ([]entity.Event, *errors.AppError)
	GetByReference(ctx context.Context, reference string) (*entity.Event, *errors.AppError)
}

type EventService struct {
	repo   repository.EventRepositoryInterface
	policy policy.Policy
	queue  queue.Enqueuer
	now    func() time.Time
}

func NewEventService(repo repository.EventRepositoryInterface, pol policy.Policy, enqueuer queue.Enqueuer) *EventService {
	return &EventService{
		repo:   repo,
		policy: pol,
		queue:  enqueuer,
		now:    time.Now,
	}
}

func (s *EventService) Submit(ctx context.Context, pr policy.Principal, req *dto.SubmitEventRequest) (*entity.Event, *errors.AppError) {
	if !s.policy.CanCreate(pr) {
		return nil, errors.NewAppError(errors.ErrForbidden, "authentication required to submit an event request", nil)
	}

	event, appErr := lifecycle.NewEvent(lifecycle.CreateInput{
		Name:        req.Name,
		Email:       req.Email,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	}, s.now())
	if appErr != nil {
		return nil, appErr
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	created, err := s.repo.Insert(ctx, event)
	if err != nil {
		logger.Error("EventService:Submit:Insert:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save event request", err)
	}

	return created, nil
}

// ListAll returns every event, newest first. The status filter is passed
// through to the store as-is; a value outside the enumerated set matches
// nothing and yields an empty list, not an error.
func (s *EventService) ListAll(ctx context.Context, pr policy.Principal, statusFilter string) ([]entity.Event, *errors.AppError) {
	if !s.policy.CanListAll(pr) {
		return nil, errors.NewAppError(errors.ErrForbidden, "admin privileges required", nil)
	}

	events, err := s.repo.FindAll(ctx, entity.EventStatus(statusFilter))
	if err != nil {
		logger.Error("EventService:ListAll:FindAll:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list events", err)
	}
	if events == nil {
		events = []entity.Event{}
	}

	return events, nil
}

func (s *EventService) GetByID(ctx context.Context, pr policy.Principal, id uuid.UUID) (*entity.Event, *errors.AppError) {
	if !s.policy.CanGetByID(pr) {
		return nil, errors.NewAppError(errors.ErrForbidden, "admin privileges required", nil)
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logger.Error("EventService:GetByID:FindByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	return event, nil
}

// SetStatus applies a status transition. Non-admin callers are rejected
// before the status value is even looked at, so a foreign principal never
// learns whether a status string would have been acceptable.
func (s *EventService) SetStatus(ctx context.Context, pr policy.Principal, id uuid.UUID, status string) (*entity.Event, *errors.AppError) {
	newStatus := entity.EventStatus(status)
	if !s.policy.CanTransitionStatus(pr, newStatus) {
		if pr.Role != policy.RoleAdmin {
			return nil, errors.NewAppError(errors.ErrForbidden, "admin privileges required", nil)
		}
		return nil, errors.NewAppError(errors.ErrInvalidStatus, "status must be pending, approved or rejected", nil)
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logger.Error("EventService:SetStatus:FindByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	if appErr := lifecycle.ApplyStatus(event, newStatus, s.now()); appErr != nil {
		return nil, appErr
	}

	if err := s.repo.Update(ctx, event); err != nil {
		logger.Error("EventService:SetStatus:Update:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update event", err)
	}

	s.notifyOwner(ctx, event, "status")

	return event, nil
}

func (s *EventService) Reschedule(ctx context.Context, pr policy.Principal, id uuid.UUID, date, timeSlot string) (*entity.Event, *errors.AppError) {
	if !s.policy.CanReschedule(pr) {
		return nil, errors.NewAppError(errors.ErrForbidden, "admin privileges required", nil)
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logger.Error("EventService:Reschedule:FindByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	if appErr := lifecycle.ApplySchedule(event, date, timeSlot, s.now()); appErr != nil {
		return nil, appErr
	}

	if err := s.repo.Update(ctx, event); err != nil {
		logger.Error("EventService:Reschedule:Update:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update event", err)
	}

	s.notifyOwner(ctx, event, "schedule")

	return event, nil
}

// ListByOwner returns the requester's events, newest first. An unknown
// email is not an error; the result is simply empty.
func (s *EventService) ListByOwner(ctx context.Context, pr policy.Principal, email string) ([]entity.Event, *errors.AppError) {
	if !s.policy.CanListByOwner(pr, email) {
		return nil, errors.NewAppError(errors.ErrForbidden, "you may only view your own event requests", nil)
	}

	events, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("EventService:ListByOwner:FindByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list events", err)
	}
	if events == nil {
		events = []entity.Event{}
	}

	return events, nil
}

func (s *EventService) GetByReference(ctx context.Context, reference string) (*entity.Event, *errors.AppError) {
	event, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		logger.Error("EventService:GetByReference:FindByReference:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	return event, nil
}

// notifyOwner enqueues an in-app notification for the requester. Delivery
// is best effort; a queue failure never fails the admin's operation.
func (s *EventService) notifyOwner(ctx context.Context, event *entity.Event, change string) {
	if s.queue == nil {
		return
	}

	err := s.queue.EnqueueEventStatus(ctx, queue.EventStatusPayload{
		Email:     event.Email,
		EventID:   event.ID.String(),
		EventName: event.Name,
		Status:    string(event.Status),
		Date:      event.Date,
		Time:      event.Time,
		Change:    change,
	})
	if err != nil {
		logger.Error("EventService:notifyOwner:Enqueue:Error:", err)
	}
}

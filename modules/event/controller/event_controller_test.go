package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"event-booking-api/core/constants"
	"event-booking-api/core/errors"
	"event-booking-api/core/utils"
	"event-booking-api/modules/event/dto"
	"event-booking-api/modules/event/entity"
	"event-booking-api/modules/event/policy"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) Submit(ctx context.Context, pr policy.Principal, req *dto.SubmitEventRequest) (*entity.Event, *errors.AppError) {
	args := m.Called(ctx, pr, req)
	return eventResult(args)
}

func (m *mockEventService) ListAll(ctx context.Context, pr policy.Principal, statusFilter string) ([]entity.Event, *errors.AppError) {
	args := m.Called(ctx, pr, statusFilter)
	return eventsResult(args)
}

func (m *mockEventService) GetByID(ctx context.Context, pr policy.Principal, id uuid.UUID) (*entity.Event, *errors.AppError) {
	args := m.Called(ctx, pr, id)
	return eventResult(args)
}

func (m *mockEventService) SetStatus(ctx context.Context, pr policy.Principal, id uuid.UUID, status string) (*entity.Event, *errors.AppError) {
	args := m.Called(ctx, pr, id, status)
	return eventResult(args)
}

func (m *mockEventService) Reschedule(ctx context.Context, pr policy.Principal, id uuid.UUID, date, timeSlot string) (*entity.Event, *errors.AppError) {
	args := m.Called(ctx, pr, id, date, timeSlot)
	return eventResult(args)
}

func (m *mockEventService) ListByOwner(ctx context.Context, pr policy.Principal, email string) ([]entity.Event, *errors.AppError) {
	args := m.Called(ctx, pr, email)
	return eventsResult(args)
}

func (m *mockEventService) GetByReference(ctx context.Context, reference string) (*entity.Event, *errors.AppError) {
	args := m.Called(ctx, reference)
	return eventResult(args)
}

func eventResult(args mock.Arguments) (*entity.Event, *errors.AppError) {
	var ev *entity.Event
	if args.Get(0) != nil {
		ev = args.Get(0).(*entity.Event)
	}
	var appErr *errors.AppError
	if args.Get(1) != nil {
		appErr = args.Get(1).(*errors.AppError)
	}
	return ev, appErr
}

func eventsResult(args mock.Arguments) ([]entity.Event, *errors.AppError) {
	var evs []entity.Event
	if args.Get(0) != nil {
		evs = args.Get(0).([]entity.Event)
	}
	var appErr *errors.AppError
	if args.Get(1) != nil {
		appErr = args.Get(1).(*errors.AppError)
	}
	return evs, appErr
}

func sampleEvent() *entity.Event {
	ev := &entity.Event{
		Name:        "Team Offsite",
		Email:       "alice@example.com",
		Date:        "2026-10-01",
		Time:        "10:00 AM",
		Description: "Quarterly planning session",
		Reference:   "team-offsite-a1b2c3d",
		Status:      entity.EventStatusPending,
	}
	ev.ID = uuid.New()
	return ev
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asAdmin(ctx echo.Context) {
	ctx.Set(constants.ContextTokenData, &utils.TokenClaims{
		UserID:  uuid.New(),
		Email:   "admin@example.com",
		IsAdmin: true,
		Scope:   constants.ScopeTokenAccess,
	})
}

func TestSubmit_Created(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	svc.On("Submit", mock.Anything, policy.Anonymous, mock.AnythingOfType("*dto.SubmitEventRequest")).
		Return(sampleEvent(), nil)

	body := `{"name":"Team Offsite","email":"alice@example.com","date":"2026-10-01","time":"10:00 AM","description":"Quarterly planning session"}`
	ctx, rec := newContext(http.MethodPost, "/api/v1/events", body)

	err := c.Submit(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event request submitted successfully")
	assert.Contains(t, rec.Body.String(), "pending")
	svc.AssertExpectations(t)
}

func TestSubmit_ValidationFailure(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	body := `{"name":"Team Offsite","email":"alice@example.com","date":"2026-10-01","time":"10:15 AM","description":"x"}`
	ctx, _ := newContext(http.MethodPost, "/api/v1/events", body)

	err := c.Submit(ctx)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_Forbidden(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	svc.On("Submit", mock.Anything, policy.Anonymous, mock.AnythingOfType("*dto.SubmitEventRequest")).
		Return(nil, errors.NewAppError(errors.ErrForbidden, "authentication required to submit an event request", nil))

	body := `{"name":"Team Offsite","email":"alice@example.com","date":"2026-10-01","time":"10:00 AM","description":"Quarterly planning session"}`
	ctx, rec := newContext(http.MethodPost, "/api/v1/events", body)

	err := c.Submit(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListAll_AdminPrincipalPassedThrough(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	svc.On("ListAll", mock.Anything, mock.MatchedBy(func(pr policy.Principal) bool {
		return pr.Role == policy.RoleAdmin && pr.Email == "admin@example.com"
	}), "pending").Return([]entity.Event{*sampleEvent()}, nil)

	ctx, rec := newContext(http.MethodGet, "/api/v1/events?status=pending", "")
	asAdmin(ctx)

	err := c.ListAll(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestListAll_Forbidden(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	svc.On("ListAll", mock.Anything, policy.Anonymous, "").
		Return(nil, errors.NewAppError(errors.ErrForbidden, "admin privileges required", nil))

	ctx, rec := newContext(http.MethodGet, "/api/v1/events", "")

	err := c.ListAll(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetByID_BadID(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	ctx, _ := newContext(http.MethodGet, "/api/v1/events/not-a-uuid", "")
	ctx.SetParamNames("id")
	ctx.SetParamValues("not-a-uuid")

	err := c.GetByID(ctx)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	id := uuid.New()
	svc.On("GetByID", mock.Anything, mock.Anything, id).
		Return(nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil))

	ctx, rec := newContext(http.MethodGet, "/api/v1/events/"+id.String(), "")
	ctx.SetParamNames("id")
	ctx.SetParamValues(id.String())
	asAdmin(ctx)

	err := c.GetByID(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatus(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	ev := sampleEvent()
	ev.Status = entity.EventStatusApproved
	svc.On("SetStatus", mock.Anything, mock.Anything, ev.ID, "approved").Return(ev, nil)

	ctx, rec := newContext(http.MethodPatch, "/api/v1/events/"+ev.ID.String()+"/status", `{"status":"approved"}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues(ev.ID.String())
	asAdmin(ctx)

	err := c.UpdateStatus(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event approved successfully")
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	id := uuid.New()
	svc.On("SetStatus", mock.Anything, mock.Anything, id, "cancelled").
		Return(nil, errors.NewAppError(errors.ErrInvalidStatus, "status must be pending, approved or rejected", nil))

	ctx, rec := newContext(http.MethodPatch, "/api/v1/events/"+id.String()+"/status", `{"status":"cancelled"}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues(id.String())
	asAdmin(ctx)

	err := c.UpdateStatus(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReschedule(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	ev := sampleEvent()
	ev.Date = "2026-11-15"
	ev.Time = "2:30 PM"
	svc.On("Reschedule", mock.Anything, mock.Anything, ev.ID, "2026-11-15", "2:30 PM").Return(ev, nil)

	ctx, rec := newContext(http.MethodPatch, "/api/v1/events/"+ev.ID.String(), `{"date":"2026-11-15","time":"2:30 PM"}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues(ev.ID.String())
	asAdmin(ctx)

	err := c.Reschedule(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2026-11-15")
}

func TestListByOwner(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	svc.On("ListByOwner", mock.Anything, policy.Anonymous, "alice@example.com").
		Return([]entity.Event{*sampleEvent()}, nil)

	ctx, rec := newContext(http.MethodGet, "/api/v1/events/user/alice@example.com", "")
	ctx.SetParamNames("email")
	ctx.SetParamValues("alice@example.com")

	err := c.ListByOwner(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestGetByReference(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	ev := sampleEvent()
	svc.On("GetByReference", mock.Anything, ev.Reference).Return(ev, nil)

	ctx, rec := newContext(http.MethodGet, "/api/v1/events/ref/"+ev.Reference, "")
	ctx.SetParamNames("reference")
	ctx.SetParamValues(ev.Reference)

	err := c.GetByReference(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ev.Reference)
}

func TestTimeSlots(t *testing.T) {
	svc := new(mockEventService)
	c := NewEventController(svc)

	ctx, rec := newContext(http.MethodGet, "/api/v1/events/time-slots", "")

	err := c.TimeSlots(ctx)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "9:00 AM")
	assert.Contains(t, rec.Body.String(), "9:00 PM")
	assert.NotContains(t, rec.Body.String(), "9:30 PM")
}

package service

import (
	"context"
	"testing"
	"time"

	"event-booking-api/core/errors"
	"event-booking-api/core/queue"
	"event-booking-api/modules/event/dto"
	"event-booking-api/modules/event/entity"
	"event-booking-api/modules/event/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Insert(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *mockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *mockEventRepository) FindAll(ctx context.Context, status entity.EventStatus) ([]entity.Event, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *mockEventRepository) FindByEmail(ctx context.Context, email string) ([]entity.Event, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *mockEventRepository) FindByReference(ctx context.Context, reference string) (*entity.Event, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *mockEventRepository) Update(ctx context.Context, event *entity.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type recordingEnqueuer struct {
	payloads []queue.EventStatusPayload
}

func (r *recordingEnqueuer) EnqueueEventStatus(ctx context.Context, payload queue.EventStatusPayload) error {
	r.payloads = append(r.payloads, payload)
	return nil
}

var (
	adminPrincipal = policy.Principal{Role: policy.RoleAdmin, Email: "admin@example.com"}
	userPrincipal  = policy.Principal{Role: policy.RoleUser, Email: "alice@example.com"}
)

func newTestService(repo *mockEventRepository, pol policy.Policy) (*EventService, *recordingEnqueuer) {
	enq := &recordingEnqueuer{}
	svc := NewEventService(repo, pol, enq)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc, enq
}

func pendingEvent() *entity.Event {
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

func TestSubmit(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(ev *entity.Event) bool {
		return ev.Status == entity.EventStatusPending && ev.Reference != ""
	})).Return(pendingEvent(), nil)

	created, appErr := svc.Submit(context.Background(), policy.Anonymous, &dto.SubmitEventRequest{
		Name:        "Team Offsite",
		Email:       "alice@example.com",
		Date:        "2026-10-01",
		Time:        "10:00 AM",
		Description: "Quarterly planning session",
	})

	assert.Nil(t, appErr)
	assert.Equal(t, entity.EventStatusPending, created.Status)
	repo.AssertExpectations(t)
}

func TestSubmit_AuthRequired(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{RequireAuthToSubmit: true})

	created, appErr := svc.Submit(context.Background(), policy.Anonymous, &dto.SubmitEventRequest{
		Name:        "Team Offsite",
		Email:       "alice@example.com",
		Date:        "2026-10-01",
		Time:        "10:00 AM",
		Description: "Quarterly planning session",
	})

	assert.Nil(t, created)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmit_InvalidInput(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	created, appErr := svc.Submit(context.Background(), policy.Anonymous, &dto.SubmitEventRequest{
		Name:  "Team Offsite",
		Email: "alice@example.com",
	})

	assert.Nil(t, created)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestListAll(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	events := []entity.Event{*pendingEvent(), *pendingEvent()}
	repo.On("FindAll", mock.Anything, entity.EventStatus("")).Return(events, nil)

	got, appErr := svc.ListAll(context.Background(), adminPrincipal, "")

	assert.Nil(t, appErr)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}

func TestListAll_StatusFilter(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	repo.On("FindAll", mock.Anything, entity.EventStatusApproved).Return([]entity.Event{}, nil)

	_, appErr := svc.ListAll(context.Background(), adminPrincipal, "approved")

	assert.Nil(t, appErr)
	repo.AssertExpectations(t)
}

func TestListAll_UnknownStatusFilterYieldsEmptyList(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	repo.On("FindAll", mock.Anything, entity.EventStatus("cancelled")).Return(nil, nil)

	got, appErr := svc.ListAll(context.Background(), adminPrincipal, "cancelled")

	assert.Nil(t, appErr)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	repo.AssertExpectations(t)
}

func TestListAll_Forbidden(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	for _, pr := range []policy.Principal{userPrincipal, policy.Anonymous} {
		got, appErr := svc.ListAll(context.Background(), pr, "")
		assert.Nil(t, got)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	}
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestGetByID(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	ev := pendingEvent()
	repo.On("FindByID", mock.Anything, ev.ID).Return(ev, nil)

	got, appErr := svc.GetByID(context.Background(), adminPrincipal, ev.ID)

	assert.Nil(t, appErr)
	assert.Equal(t, ev.ID, got.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	got, appErr := svc.GetByID(context.Background(), adminPrincipal, id)

	assert.Nil(t, got)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestGetByID_Forbidden(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	got, appErr := svc.GetByID(context.Background(), userPrincipal, uuid.New())

	assert.Nil(t, got)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSetStatus(t *testing.T) {
	repo := new(mockEventRepository)
	svc, enq := newTestService(repo, policy.Policy{})

	ev := pendingEvent()
	repo.On("FindByID", mock.Anything, ev.ID).Return(ev, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *entity.Event) bool {
		return e.Status == entity.EventStatusApproved
	})).Return(nil)

	got, appErr := svc.SetStatus(context.Background(), adminPrincipal, ev.ID, "approved")

	assert.Nil(t, appErr)
	assert.Equal(t, entity.EventStatusApproved, got.Status)
	repo.AssertExpectations(t)

	assert.Len(t, enq.payloads, 1)
	assert.Equal(t, "approved", enq.payloads[0].Status)
	assert.Equal(t, "alice@example.com", enq.payloads[0].Email)
	assert.Equal(t, "status", enq.payloads[0].Change)
}

func TestSetStatus_Idempotent(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	ev := pendingEvent()
	ev.Status = entity.EventStatusApproved
	repo.On("FindByID", mock.Anything, ev.ID).Return(ev, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	got, appErr := svc.SetStatus(context.Background(), adminPrincipal, ev.ID, "approved")

	assert.Nil(t, appErr)
	assert.Equal(t, entity.EventStatusApproved, got.Status)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	repo := new(mockEventRepository)
	svc, enq := newTestService(repo, policy.Policy{})

	got, appErr := svc.SetStatus(context.Background(), adminPrincipal, uuid.New(), "cancelled")

	assert.Nil(t, got)
	assert.Equal(t, errors.ErrInvalidStatus, appErr.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Empty(t, enq.payloads)
}

func TestSetStatus_Forbidden(t *testing.T) {
	repo := new(mockEventRepository)
	svc, enq := newTestService(repo, policy.Policy{})

	for _, pr := range []policy.Principal{userPrincipal, policy.Anonymous} {
		got, appErr := svc.SetStatus(context.Background(), pr, uuid.New(), "approved")
		assert.Nil(t, got)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	}

	// A non-admin with a bogus status is still a permission failure, not a
	// validation failure.
	_, appErr := svc.SetStatus(context.Background(), userPrincipal, uuid.New(), "cancelled")
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Empty(t, enq.payloads)
}

func TestSetStatus_NotFound(t *testing.T) {
	repo := new(mockEventRepository)
	svc, enq := newTestService(repo, policy.Policy{})

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	got, appErr := svc.SetStatus(context.Background(), adminPrincipal, id, "approved")

	assert.Nil(t, got)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
	assert.Empty(t, enq.payloads)
}

func TestReschedule(t *testing.T) {
	repo := new(mockEventRepository)
	svc, enq := newTestService(repo, policy.Policy{})

	ev := pendingEvent()
	repo.On("FindByID", mock.Anything, ev.ID).Return(ev, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *entity.Event) bool {
		return e.Date == "2026-11-15" && e.Time == "2:30 PM" && e.Status == entity.EventStatusPending
	})).Return(nil)

	got, appErr := svc.Reschedule(context.Background(), adminPrincipal, ev.ID, "2026-11-15", "2:30 PM")

	assert.Nil(t, appErr)
	assert.Equal(t, "2026-11-15", got.Date)
	assert.Equal(t, "2:30 PM", got.Time)
	assert.Equal(t, entity.EventStatusPending, got.Status)
	repo.AssertExpectations(t)

	assert.Len(t, enq.payloads, 1)
	assert.Equal(t, "schedule", enq.payloads[0].Change)
}

func TestReschedule_InvalidInput(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	ev := pendingEvent()
	repo.On("FindByID", mock.Anything, ev.ID).Return(ev, nil)

	got, appErr := svc.Reschedule(context.Background(), adminPrincipal, ev.ID, "", "")

	assert.Nil(t, got)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReschedule_Forbidden(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	got, appErr := svc.Reschedule(context.Background(), userPrincipal, uuid.New(), "2026-11-15", "2:30 PM")

	assert.Nil(t, got)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestListByOwner(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	events := []entity.Event{*pendingEvent()}
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(events, nil)

	got, appErr := svc.ListByOwner(context.Background(), policy.Anonymous, "alice@example.com")

	assert.Nil(t, appErr)
	assert.Len(t, got, 1)
}

func TestListByOwner_EmptyNotNil(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	got, appErr := svc.ListByOwner(context.Background(), policy.Anonymous, "nobody@example.com")

	assert.Nil(t, appErr)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByOwner_VerifiedOwner(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{VerifyOwnerOnList: true})

	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return([]entity.Event{}, nil)

	_, appErr := svc.ListByOwner(context.Background(), userPrincipal, "alice@example.com")
	assert.Nil(t, appErr)

	got, appErr := svc.ListByOwner(context.Background(), userPrincipal, "bob@example.com")
	assert.Nil(t, got)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	got, appErr = svc.ListByOwner(context.Background(), policy.Anonymous, "alice@example.com")
	assert.Nil(t, got)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestListByOwner_EmailMatchIsCaseSensitive(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	// The store matches the email column exactly. The service must pass
	// the queried email through unnormalized, so a differently-cased
	// email finds nothing.
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return([]entity.Event{*pendingEvent()}, nil)
	repo.On("FindByEmail", mock.Anything, "Alice@example.com").Return(nil, nil)

	got, appErr := svc.ListByOwner(context.Background(), policy.Anonymous, "alice@example.com")
	assert.Nil(t, appErr)
	assert.Len(t, got, 1)

	got, appErr = svc.ListByOwner(context.Background(), policy.Anonymous, "Alice@example.com")
	assert.Nil(t, appErr)
	assert.Empty(t, got)
	repo.AssertExpectations(t)
}

func TestGetByReference(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	ev := pendingEvent()
	repo.On("FindByReference", mock.Anything, ev.Reference).Return(ev, nil)

	got, appErr := svc.GetByReference(context.Background(), ev.Reference)

	assert.Nil(t, appErr)
	assert.Equal(t, ev.Reference, got.Reference)
}

func TestGetByReference_NotFound(t *testing.T) {
	repo := new(mockEventRepository)
	svc, _ := newTestService(repo, policy.Policy{})

	repo.On("FindByReference", mock.Anything, "missing-ref").Return(nil, nil)

	got, appErr := svc.GetByReference(context.Background(), "missing-ref")

	assert.Nil(t, got)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

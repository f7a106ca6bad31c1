package repository

import (
	"context"
	"database/sql"
	"event-booking-api/core/database"
	"event-booking-api/core/logger"
	"event-booking-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository persists event requests in the events table.
type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the store contract. FindByID and
// FindByReference return (nil, nil) when the record does not exist.
type EventRepositoryInterface interface {
	Insert(ctx context.Context, event *entity.Event) (*entity.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindAll(ctx context.Context, status entity.EventStatus) ([]entity.Event, error)
	FindByEmail(ctx context.Context, email string) ([]entity.Event, error)
	FindByReference(ctx context.Context, reference string) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
}

const eventColumns = `id, name, email, event_date, event_time, description, reference, status, created_at, updated_at`

func (r *EventRepository) Insert(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (name, email, event_date, event_time, description, reference, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.Name, event.Email, event.Date, event.Time,
		event.Description, event.Reference, event.Status,
		event.CreatedAt, event.UpdatedAt)
	if err != nil {
		logger.Error("EventRepository:Insert:Error:", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:FindByID:Error:", err)
		return nil, err
	}

	return &event, nil
}

// FindAll returns every event, newest-created first. An empty status means
// no filter.
func (r *EventRepository) FindAll(ctx context.Context, status entity.EventStatus) ([]entity.Event, error) {
	var events []entity.Event
	var err error

	if status == "" {
		query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
		err = r.DB.SelectContext(ctx, &events, query)
	} else {
		query := `SELECT ` + eventColumns + ` FROM events WHERE status = $1 ORDER BY created_at DESC`
		err = r.DB.SelectContext(ctx, &events, query, status)
	}
	if err != nil {
		logger.Error("EventRepository:FindAll:Error:", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) FindByEmail(ctx context.Context, email string) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE email = $1 ORDER BY created_at DESC`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, email)
	if err != nil {
		logger.Error("EventRepository:FindByEmail:Error:", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) FindByReference(ctx context.Context, reference string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE reference = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:FindByReference:Error:", err)
		return nil, err
	}

	return &event, nil
}

// Update writes the mutable columns. Last write wins; there is no version
// check on concurrent updates of the same record.
func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET event_date = $2, event_time = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Date, event.Time, event.Status, event.UpdatedAt)
	if err != nil {
		logger.Error("EventRepository:Update:Error:", err)
		return err
	}

	return nil
}

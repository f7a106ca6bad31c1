package lifecycle

import (
	coreEntity "event-booking-api/core/entity"
	"event-booking-api/core/errors"
	"event-booking-api/core/utils"
	"event-booking-api/modules/event/entity"
	"fmt"
	"time"
)

// The bookable slots: every 30 minutes from 9:00 AM through 9:00 PM.
var timeSlots = buildTimeSlots()

func buildTimeSlots() []string {
	var slots []string
	for hour := 9; hour <= 21; hour++ {
		h := hour % 12
		if h == 0 {
			h = 12
		}
		ampm := "AM"
		if hour >= 12 {
			ampm = "PM"
		}
		slots = append(slots, fmt.Sprintf("%d:00 %s", h, ampm))
		if hour < 21 {
			slots = append(slots, fmt.Sprintf("%d:30 %s", h, ampm))
		}
	}
	return slots
}

// TimeSlots returns the fixed set of bookable time tokens.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

func IsValidTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

const dateLayout = "2006-01-02"

func isValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

// CreateInput is the validated shape of a submission. Any status supplied
// by the caller is ignored: new requests are always pending.
type CreateInput struct {
	Name        string
	Email       string
	Date        string
	Time        string
	Description string
}

// NewEvent builds a pending event record from a submission. The record id
// is assigned by the store; the public reference is assigned here.
func NewEvent(in CreateInput, now time.Time) (*entity.Event, *errors.AppError) {
	if in.Name == "" || in.Email == "" || in.Date == "" || in.Time == "" || in.Description == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name, email, date, time and description are required", nil)
	}
	if !utils.IsValidEmail(in.Email) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid email address", nil)
	}
	if !isValidDate(in.Date) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date must be in YYYY-MM-DD format", nil)
	}
	if !IsValidTimeSlot(in.Time) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "time is not an available slot", nil)
	}

	return &entity.Event{
		Name:        in.Name,
		Email:       in.Email,
		Date:        in.Date,
		Time:        in.Time,
		Description: in.Description,
		Reference:   utils.GenerateReference(in.Name),
		Status:      entity.EventStatusPending,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

// ApplyStatus moves the record to newStatus. Any of the three enumerated
// statuses is reachable from any other; re-applying the current status is
// a valid no-op transition.
func ApplyStatus(ev *entity.Event, newStatus entity.EventStatus, now time.Time) *errors.AppError {
	if !newStatus.Valid() {
		return errors.NewAppError(errors.ErrInvalidStatus, "status must be pending, approved or rejected", nil)
	}
	ev.Status = newStatus
	ev.UpdatedAt = now
	return nil
}

// ApplySchedule corrects the requested date and time slot. Status is never
// touched here.
func ApplySchedule(ev *entity.Event, date, timeSlot string, now time.Time) *errors.AppError {
	if date == "" || timeSlot == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "date and time are required", nil)
	}
	if !isValidDate(date) {
		return errors.NewAppError(errors.ErrInvalidInput, "date must be in YYYY-MM-DD format", nil)
	}
	if !IsValidTimeSlot(timeSlot) {
		return errors.NewAppError(errors.ErrInvalidInput, "time is not an available slot", nil)
	}
	ev.Date = date
	ev.Time = timeSlot
	ev.UpdatedAt = now
	return nil
}

package entity

import (
	"event-booking-api/core/entity"
)

// EventStatus is the lifecycle status of an event request.
type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
)

// Valid reports whether s is one of the three enumerated statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPending, EventStatusApproved, EventStatusRejected:
		return true
	}
	return false
}

// Event is one event-booking request. Email is the ownership key; a
// requester may hold many records. Approved/rejected are terminal only
// until an admin explicitly changes them again.
type Event struct {
	Name        string      `db:"name" json:"name"`
	Email       string      `db:"email" json:"email"`
	Date        string      `db:"event_date" json:"date"`
	Time        string      `db:"event_time" json:"time"`
	Description string      `db:"description" json:"description"`
	Reference   string      `db:"reference" json:"reference"`
	Status      EventStatus `db:"status" json:"status"`
	entity.BaseEntity
}

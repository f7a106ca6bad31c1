package entity

import (
	"event-booking-api/core/entity"
	"time"
)

// User is an account that can authenticate. Admin accounts manage event
// requests; regular accounts only own them by email.
type User struct {
	Email    string `db:"email" json:"email"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
	IsAdmin  bool   `db:"is_admin" json:"is_admin"`
	IsActive bool   `db:"is_active" json:"is_active"`
	entity.BaseEntity
}

// OAuthState is a one-shot nonce for the Google sign-in flow.
type OAuthState struct {
	State     string    `db:"state"`
	ExpiresAt time.Time `db:"expires_at"`
}

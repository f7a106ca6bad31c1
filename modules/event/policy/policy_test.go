package policy

import (
	"testing"

	"event-booking-api/core/utils"
	"event-booking-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	admin = Principal{Role: RoleAdmin, Email: "admin@example.com"}
	user  = Principal{Role: RoleUser, Email: "alice@example.com"}
)

func TestFromClaims(t *testing.T) {
	assert.Equal(t, Anonymous, FromClaims(nil))

	claims := &utils.TokenClaims{
		UserID:  uuid.New(),
		Email:   "alice@example.com",
		IsAdmin: false,
	}
	pr := FromClaims(claims)
	assert.Equal(t, RoleUser, pr.Role)
	assert.Equal(t, "alice@example.com", pr.Email)

	claims.IsAdmin = true
	pr = FromClaims(claims)
	assert.Equal(t, RoleAdmin, pr.Role)
}

func TestCanCreate(t *testing.T) {
	tests := []struct {
		name        string
		requireAuth bool
		principal   Principal
		want        bool
	}{
		{"open submission, anonymous", false, Anonymous, true},
		{"open submission, user", false, user, true},
		{"open submission, admin", false, admin, true},
		{"auth required, anonymous", true, Anonymous, false},
		{"auth required, user", true, user, true},
		{"auth required, admin", true, admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{RequireAuthToSubmit: tt.requireAuth}
			assert.Equal(t, tt.want, p.CanCreate(tt.principal))
		})
	}
}

func TestCanListAll(t *testing.T) {
	p := Policy{}
	assert.True(t, p.CanListAll(admin))
	assert.False(t, p.CanListAll(user))
	assert.False(t, p.CanListAll(Anonymous))
}

func TestCanGetByID(t *testing.T) {
	p := Policy{}
	assert.True(t, p.CanGetByID(admin))
	assert.False(t, p.CanGetByID(user))
	assert.False(t, p.CanGetByID(Anonymous))
}

func TestCanListByOwner(t *testing.T) {
	tests := []struct {
		name        string
		verifyOwner bool
		principal   Principal
		ownerEmail  string
		want        bool
	}{
		{"public lookup, anonymous", false, Anonymous, "alice@example.com", true},
		{"public lookup, other user", false, user, "bob@example.com", true},
		{"verified, owner matches", true, user, "alice@example.com", true},
		{"verified, other user", true, user, "bob@example.com", false},
		{"verified, case mismatch", true, user, "Alice@example.com", false},
		{"verified, anonymous", true, Anonymous, "alice@example.com", false},
		{"verified, admin any owner", true, admin, "bob@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{VerifyOwnerOnList: tt.verifyOwner}
			assert.Equal(t, tt.want, p.CanListByOwner(tt.principal, tt.ownerEmail))
		})
	}
}

func TestCanTransitionStatus(t *testing.T) {
	p := Policy{}

	assert.True(t, p.CanTransitionStatus(admin, entity.EventStatusApproved))
	assert.True(t, p.CanTransitionStatus(admin, entity.EventStatusRejected))
	assert.True(t, p.CanTransitionStatus(admin, entity.EventStatusPending))
	assert.False(t, p.CanTransitionStatus(admin, entity.EventStatus("cancelled")))
	assert.False(t, p.CanTransitionStatus(user, entity.EventStatusApproved))
	assert.False(t, p.CanTransitionStatus(Anonymous, entity.EventStatusApproved))
}

func TestCanReschedule(t *testing.T) {
	p := Policy{}
	assert.True(t, p.CanReschedule(admin))
	assert.False(t, p.CanReschedule(user))
	assert.False(t, p.CanReschedule(Anonymous))
}

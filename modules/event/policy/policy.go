package policy

import (
	"event-booking-api/core/utils"
	"event-booking-api/modules/event/entity"
)

// Role is the level at which a caller acts on event requests.
type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleAdmin
)

// Principal is the acting identity for one operation. It is built from the
// request's token claims and passed explicitly; there is no ambient session.
type Principal struct {
	Role  Role
	Email string
}

// Anonymous is the principal for requests carrying no credential.
var Anonymous = Principal{Role: RoleAnonymous}

// FromClaims maps parsed token claims to a principal. A nil claims value
// means the request was unauthenticated.
func FromClaims(claims *utils.TokenClaims) Principal {
	if claims == nil {
		return Anonymous
	}
	role := RoleUser
	if claims.IsAdmin {
		role = RoleAdmin
	}
	return Principal{Role: role, Email: claims.Email}
}

// Policy holds the two deployment-dependent authorization toggles. Every
// check is pure, synchronous and never fails; callers translate a false
// result into a Forbidden error.
type Policy struct {
	// RequireAuthToSubmit gates event submission behind authentication.
	RequireAuthToSubmit bool
	// VerifyOwnerOnList requires the caller's authenticated email to match
	// the queried owner email. Off by default: the owner lookup is public
	// by email alone.
	VerifyOwnerOnList bool
}

func (p Policy) CanCreate(pr Principal) bool {
	if p.RequireAuthToSubmit {
		return pr.Role != RoleAnonymous
	}
	return true
}

func (p Policy) CanListAll(pr Principal) bool {
	return pr.Role == RoleAdmin
}

func (p Policy) CanGetByID(pr Principal) bool {
	return pr.Role == RoleAdmin
}

// CanListByOwner matches owner email case-sensitively, the same way the
// store matches the email column.
func (p Policy) CanListByOwner(pr Principal, ownerEmail string) bool {
	if !p.VerifyOwnerOnList {
		return true
	}
	if pr.Role == RoleAdmin {
		return true
	}
	return pr.Role == RoleUser && pr.Email == ownerEmail
}

func (p Policy) CanTransitionStatus(pr Principal, newStatus entity.EventStatus) bool {
	return pr.Role == RoleAdmin && newStatus.Valid()
}

func (p Policy) CanReschedule(pr Principal) bool {
	return pr.Role == RoleAdmin
}

package validator

import (
	"event-booking-api/core/controller"
	"event-booking-api/core/utils"
	"event-booking-api/modules/auth/dto"
)

const minPasswordLength = 8

type ValidationResult struct {
	Errors []controller.ValidationError `json:"errors"`
}

func (r *ValidationResult) HasError() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) add(field, message string) {
	r.Errors = append(r.Errors, controller.NewValidationError(field, message))
}

func ValidateRegisterRequest(req *dto.RegisterRequest) *ValidationResult {
	result := &ValidationResult{}

	if req.Email == "" {
		result.add("email", "email is required")
	} else if !utils.IsValidEmail(req.Email) {
		result.add("email", "email is not a valid address")
	}
	if req.Password == "" {
		result.add("password", "password is required")
	} else if len(req.Password) < minPasswordLength {
		result.add("password", "password must be at least 8 characters")
	}

	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) *ValidationResult {
	result := &ValidationResult{}

	if req.Email == "" {
		result.add("email", "email is required")
	}
	if req.Password == "" {
		result.add("password", "password is required")
	}

	return result
}

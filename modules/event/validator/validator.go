package validator

import (
	"event-booking-api/core/controller"
	"event-booking-api/core/utils"
	"event-booking-api/modules/event/dto"
	"event-booking-api/modules/event/lifecycle"
)

type ValidationResult struct {
	Errors []controller.ValidationError `json:"errors"`
}

func (r *ValidationResult) HasError() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) add(field, message string) {
	r.Errors = append(r.Errors, controller.NewValidationError(field, message))
}

func ValidateSubmitEventRequest(req *dto.SubmitEventRequest) *ValidationResult {
	result := &ValidationResult{}

	if req.Name == "" {
		result.add("name", "name is required")
	}
	if req.Email == "" {
		result.add("email", "email is required")
	} else if !utils.IsValidEmail(req.Email) {
		result.add("email", "email is not a valid address")
	}
	if req.Date == "" {
		result.add("date", "date is required")
	}
	if req.Time == "" {
		result.add("time", "time is required")
	} else if !lifecycle.IsValidTimeSlot(req.Time) {
		result.add("time", "time is not an available slot")
	}
	if req.Description == "" {
		result.add("description", "description is required")
	}

	return result
}

func ValidateUpdateStatusRequest(req *dto.UpdateStatusRequest) *ValidationResult {
	result := &ValidationResult{}

	if req.Status == "" {
		result.add("status", "status is required")
	}

	return result
}

func ValidateRescheduleRequest(req *dto.RescheduleRequest) *ValidationResult {
	result := &ValidationResult{}

	if req.Date == "" {
		result.add("date", "date is required")
	}
	if req.Time == "" {
		result.add("time", "time is required")
	}

	return result
}

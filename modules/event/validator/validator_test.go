package validator

import (
	"testing"

	"event-booking-api/modules/event/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateSubmitEventRequest(t *testing.T) {
	valid := &dto.SubmitEventRequest{
		Name:        "Team Offsite",
		Email:       "alice@example.com",
		Date:        "2026-10-01",
		Time:        "10:00 AM",
		Description: "Quarterly planning session",
	}
	assert.False(t, ValidateSubmitEventRequest(valid).HasError())

	tests := []struct {
		name   string
		mutate func(*dto.SubmitEventRequest)
		field  string
	}{
		{"missing name", func(r *dto.SubmitEventRequest) { r.Name = "" }, "name"},
		{"missing email", func(r *dto.SubmitEventRequest) { r.Email = "" }, "email"},
		{"bad email", func(r *dto.SubmitEventRequest) { r.Email = "nope" }, "email"},
		{"missing date", func(r *dto.SubmitEventRequest) { r.Date = "" }, "date"},
		{"missing time", func(r *dto.SubmitEventRequest) { r.Time = "" }, "time"},
		{"off-grid time", func(r *dto.SubmitEventRequest) { r.Time = "10:15 AM" }, "time"},
		{"missing description", func(r *dto.SubmitEventRequest) { r.Description = "" }, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := *valid
			tt.mutate(&req)

			result := ValidateSubmitEventRequest(&req)

			assert.True(t, result.HasError())
			assert.Equal(t, tt.field, result.Errors[0].Field)
		})
	}
}

func TestValidateSubmitEventRequest_CollectsAllErrors(t *testing.T) {
	result := ValidateSubmitEventRequest(&dto.SubmitEventRequest{})
	assert.True(t, result.HasError())
	assert.Len(t, result.Errors, 5)
}

func TestValidateUpdateStatusRequest(t *testing.T) {
	assert.False(t, ValidateUpdateStatusRequest(&dto.UpdateStatusRequest{Status: "approved"}).HasError())
	assert.True(t, ValidateUpdateStatusRequest(&dto.UpdateStatusRequest{}).HasError())
}

func TestValidateRescheduleRequest(t *testing.T) {
	assert.False(t, ValidateRescheduleRequest(&dto.RescheduleRequest{Date: "2026-11-15", Time: "2:30 PM"}).HasError())

	result := ValidateRescheduleRequest(&dto.RescheduleRequest{})
	assert.True(t, result.HasError())
	assert.Len(t, result.Errors, 2)
}

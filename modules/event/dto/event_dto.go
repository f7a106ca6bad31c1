package dto

// SubmitEventRequest is the body of POST /events. A status field, if sent,
// is ignored.
type SubmitEventRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// TimeSlotsResponse lists the bookable time tokens for the booking form.
type TimeSlotsResponse struct {
	Slots []string `json:"slots"`
}

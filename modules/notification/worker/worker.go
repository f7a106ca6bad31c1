package worker

import (
	"context"
	"encoding/json"
	"event-booking-api/core/logger"
	"event-booking-api/core/queue"
	authRepository "event-booking-api/modules/auth/repository"
	"event-booking-api/modules/notification/dto"
	"event-booking-api/modules/notification/entity"
	"event-booking-api/modules/notification/service"
	"fmt"

	"github.com/hibiken/asynq"
)

// Worker consumes notification tasks enqueued by the event service and
// turns them into in-app notifications for the owning user.
type Worker struct {
	notifications *service.NotificationService
	users         authRepository.AuthRepositoryInterface
}

func NewWorker(notifications *service.NotificationService, users authRepository.AuthRepositoryInterface) *Worker {
	return &Worker{notifications: notifications, users: users}
}

// Register wires the task handlers onto the asynq mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskTypeEventStatus, w.HandleEventStatus)
}

// HandleEventStatus processes one event-change task. Requests submitted
// with an email that has no account are skipped, not retried.
func (w *Worker) HandleEventStatus(ctx context.Context, task *asynq.Task) error {
	var payload queue.EventStatusPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("NotificationWorker:HandleEventStatus:Unmarshal:Error:", err)
		return fmt.Errorf("invalid payload: %w: %w", err, asynq.SkipRetry)
	}

	user, err := w.users.GetUserByEmail(ctx, payload.Email)
	if err != nil {
		logger.Error("NotificationWorker:HandleEventStatus:GetUserByEmail:Error:", err)
		return err
	}
	if user == nil {
		logger.Debug("NotificationWorker:HandleEventStatus:NoAccount", "email", payload.Email)
		return nil
	}

	title, message, notifType := composeMessage(payload)

	err = w.notifications.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  user.ID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Data: map[string]interface{}{
			"event_id": payload.EventID,
			"status":   payload.Status,
			"date":     payload.Date,
			"time":     payload.Time,
		},
	})
	if err != nil {
		logger.Error("NotificationWorker:HandleEventStatus:Create:Error:", err)
		return err
	}

	return nil
}

func composeMessage(payload queue.EventStatusPayload) (title, message, notifType string) {
	if payload.Change == "schedule" {
		title = "Event rescheduled"
		message = fmt.Sprintf("Your event %q has been moved to %s at %s.", payload.EventName, payload.Date, payload.Time)
		return title, message, entity.TypeEventSchedule
	}

	switch payload.Status {
	case "approved":
		title = "Event approved"
		message = fmt.Sprintf("Your event %q on %s at %s has been approved.", payload.EventName, payload.Date, payload.Time)
	case "rejected":
		title = "Event rejected"
		message = fmt.Sprintf("Your event %q has been rejected.", payload.EventName)
	default:
		title = "Event updated"
		message = fmt.Sprintf("Your event %q is now %s.", payload.EventName, payload.Status)
	}
	return title, message, entity.TypeEventStatus
}

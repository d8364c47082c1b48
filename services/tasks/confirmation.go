package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeConfirmationEmail = "confirmation:email"

// ConfirmationPayload is the task body for a booking confirmation email.
type ConfirmationPayload struct {
	BookingID string `json:"bookingId"`
	Email     string `json:"email"`
	UserName  string `json:"userName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	QRPayload string `json:"qrPayload"`
}

func NewConfirmationTask(payload ConfirmationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeConfirmationEmail, b, asynq.MaxRetry(5)), nil
}

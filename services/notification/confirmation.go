package notification

import (
	"context"
	"fmt"
	"strings"

	"turfbook/models"
	"turfbook/services/tasks"
	"turfbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqNotificationService enqueues confirmation emails on the Redis-backed
// task queue; the worker in cron/ picks them up. Delivery is decoupled from
// the commit path so a slow mail provider cannot stall a booking.
type AsynqNotificationService struct {
	Client *asynq.Client
}

func NewAsynqNotificationService(client *asynq.Client) *AsynqNotificationService {
	return &AsynqNotificationService{Client: client}
}

func (s *AsynqNotificationService) SendBookingConfirmation(ctx context.Context, booking models.Booking) error {
	payload := tasks.ConfirmationPayload{
		BookingID: booking.ID,
		Email:     booking.UserEmail,
		UserName:  userNameFromEmail(booking.UserEmail),
		Date:      booking.Date,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		QRPayload: QRPayload(booking),
	}

	task, err := tasks.NewConfirmationTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build confirmation task: %w", err)
	}
	info, err := s.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue confirmation task: %w", err)
	}

	utils.GetLogger().Info("confirmation email enqueued",
		zap.String("bookingID", booking.ID), zap.String("taskID", info.ID))
	return nil
}

// QRPayload builds the text encoded into the confirmation QR code. Image
// rendering happens on the receiving side.
func QRPayload(booking models.Booking) string {
	return fmt.Sprintf("Date: %s, Time: %s - %s, User: %s, Booking: %s",
		booking.Date, booking.StartTime, booking.EndTime, booking.UserEmail, booking.ID)
}

func userNameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

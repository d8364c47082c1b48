package notification

import (
	"context"

	"turfbook/models"
)

// NotificationService delivers booking confirmations. Actual transport
// (email provider) is an external collaborator behind this interface.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, booking models.Booking) error
}

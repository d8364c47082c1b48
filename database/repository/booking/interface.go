package bookingRepo

import (
	"context"

	"turfbook/models"
)

// BookingRepository persists full booking records. Records are written once
// by the committer and never updated here.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

package slots

import (
	"context"
	"time"

	availabilityRepo "turfbook/database/repository/availability"
	bookingRepo "turfbook/database/repository/booking"
	"turfbook/models"
	"turfbook/services/notification"
	"turfbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationCommitter finalizes a selected range into a booking, defending
// against concurrent sessions racing for the same slots.
type ReservationCommitter interface {
	Commit(ctx context.Context, date string, sel models.SelectionRange, payer models.PayerInfo) (*models.Booking, error)
}

// DefaultReservationCommitter is the production implementation. The store's
// atomic array-union is the only serialization point: availability is checked
// optimistically and re-validated against a fresh read just before the merge.
type DefaultReservationCommitter struct {
	Availability availabilityRepo.AvailabilityRepository
	Bookings     bookingRepo.BookingRepository
	Notifier     notification.NotificationService

	WeekdayRate float64
	WeekendRate float64
	AdvanceRate float64 // fraction of the total collected up front
}

func (rc *DefaultReservationCommitter) rateFor(date string) float64 {
	if IsWeekend(date) {
		return rc.WeekendRate
	}
	return rc.WeekdayRate
}

// Commit runs the full reserve flow: local validation, label expansion,
// authoritative re-read, conflict check, atomic union, booking insert.
// Once the merge starts the flow runs to completion or fails atomically; no
// partial reservation is ever observable.
func (rc *DefaultReservationCommitter) Commit(ctx context.Context, date string, sel models.SelectionRange, payer models.PayerInfo) (*models.Booking, error) {
	logger := utils.GetLogger()

	// 1. Local validation, no store contact.
	if sel.State != models.SelectionRangeSet || sel.Start == "" || sel.End == "" {
		return nil, NewValidationError("no time range selected")
	}
	if sel.Error != "" {
		return nil, NewValidationError(sel.Error)
	}
	quote, err := ComputeQuote(sel.Start, sel.End, rc.rateFor(date), rc.AdvanceRate)
	if err != nil {
		return nil, NewValidationError("selection contains an unreadable time label")
	}
	if quote.DurationHours <= 0 {
		return nil, NewValidationError("end must be after start")
	}

	// 2. The conflict check runs on expanded labels, not coveredHours, so a
	// drifted session snapshot cannot mask an overlap.
	labels, err := ExpandRangeLabels(sel.Start, sel.End)
	if err != nil {
		return nil, NewValidationError("selection contains an unreadable time label")
	}

	// 3. Re-read the authoritative booked set, not the local mirror. This
	// closes the race window between two clients selecting overlapping ranges.
	current, err := rc.Availability.Get(ctx, date)
	if err != nil {
		return nil, &StoreUnavailableError{Op: "read", Err: err}
	}

	// 4. Any intersection loses the race outright; nothing is applied.
	taken := intersect(labels, current.BookedSlots)
	if len(taken) > 0 {
		logger.Warn("booking conflict detected",
			zap.String("date", date), zap.Strings("taken", taken))
		return nil, &ConflictError{Date: date, Slots: taken}
	}

	// 5. Atomic server-side union. Detach from the caller's context so a
	// disconnect cannot abort the flow mid-write.
	writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rc.Availability.AtomicMerge(writeCtx, date, labels); err != nil {
		return nil, &StoreUnavailableError{Op: "merge", Err: err}
	}

	// 6. Persist the booking record.
	booking := &models.Booking{
		ID:               uuid.New().String(),
		Date:             date,
		StartTime:        sel.Start,
		EndTime:          sel.End,
		DurationHours:    quote.DurationHours,
		HourlyRate:       quote.HourlyRate,
		TotalAmount:      quote.TotalAmount,
		InitialPayment:   quote.InitialPayment,
		RemainingAmount:  quote.RemainingAmount,
		UserID:           payer.UserID,
		UserEmail:        payer.UserEmail,
		PaymentMethod:    payer.PaymentMethod,
		PaymentReference: payer.PaymentReference,
		Status:           "confirmed",
		PaymentStatus:    "partial",
		CreatedAt:        time.Now(),
	}
	if err := rc.Bookings.Create(writeCtx, booking); err != nil {
		return nil, &StoreUnavailableError{Op: "write", Err: err}
	}

	// Confirmation delivery is best-effort; the reservation already holds.
	if rc.Notifier != nil {
		if err := rc.Notifier.SendBookingConfirmation(writeCtx, *booking); err != nil {
			logger.Warn("failed to enqueue booking confirmation",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	logger.Info("booking committed",
		zap.String("bookingID", booking.ID),
		zap.String("date", date),
		zap.String("range", sel.Start+" - "+sel.End))
	return booking, nil
}

func intersect(labels, booked []string) []string {
	set := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		set[b] = struct{}{}
	}
	var out []string
	for _, l := range labels {
		if _, ok := set[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

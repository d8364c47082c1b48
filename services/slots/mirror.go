package slots

import (
	"context"
	"errors"
	"sync"
	"time"

	availabilityRepo "turfbook/database/repository/availability"
	"turfbook/models"
	"turfbook/utils"

	"go.uber.org/zap"
)

// AvailabilityMirror is the read-only local copy of per-date booked sets,
// refreshed by the store's live subscription. The grid classifies against it;
// the committer never trusts it and always re-reads the store. Malformed
// stored labels are absorbed here so one bad entry cannot break rendering.
type AvailabilityMirror struct {
	mu     sync.RWMutex
	hours  map[string][]float64
	labels map[string][]string
}

func NewAvailabilityMirror() *AvailabilityMirror {
	return &AvailabilityMirror{
		hours:  make(map[string][]float64),
		labels: make(map[string][]string),
	}
}

// Update replaces the mirrored set for one date with the latest full set
// pushed by the subscription.
func (m *AvailabilityMirror) Update(day models.DailyAvailability) {
	hours := make([]float64, 0, len(day.BookedSlots))
	for _, label := range day.BookedSlots {
		hv, err := DecodeLabel(label)
		if err != nil {
			utils.GetLogger().Warn("skipping malformed booked label",
				zap.String("date", day.Date), zap.String("label", label))
			continue
		}
		hours = append(hours, hv)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.hours[day.Date] = hours
	m.labels[day.Date] = append([]string(nil), day.BookedSlots...)
}

// BookedHours returns the mirrored hour values for a date.
func (m *AvailabilityMirror) BookedHours(date string) []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float64(nil), m.hours[date]...)
}

// BookedLabels returns the mirrored labels for a date.
func (m *AvailabilityMirror) BookedLabels(date string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.labels[date]...)
}

// Seed primes the mirror for a date with a point read, for first render
// before any change event arrives.
func (m *AvailabilityMirror) Seed(ctx context.Context, repo availabilityRepo.AvailabilityRepository, date string) error {
	day, err := repo.Get(ctx, date)
	if err != nil {
		return err
	}
	m.Update(day)
	return nil
}

// Run keeps the mirror subscribed, resubscribing with a small backoff when
// the change stream drops. Blocks until ctx is cancelled.
func (m *AvailabilityMirror) Run(ctx context.Context, repo availabilityRepo.AvailabilityRepository) {
	logger := utils.GetLogger()
	for {
		err := repo.Subscribe(ctx, m.Update)
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			logger.Warn("availability subscription dropped, resubscribing", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

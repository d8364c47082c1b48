package slots

import (
	"context"
	"math"
	"sync"
	"time"

	"turfbook/models"
)

// DateLayout is the per-date document key format ("MM/DD/YYYY"), matching
// the en-US formatting the stored booked sets are keyed by.
const DateLayout = "01/02/2006"

// bookedTolerance absorbs label/format rounding in stored hour values.
// The check is a symmetric distance strictly below half a slot; a value
// exactly 0.5 away marks the neighbouring slot, not this one.
const bookedTolerance = 0.5

// SlotTimestamp resolves a slot's hour value on a calendar date to a local
// timestamp.
func SlotTimestamp(date string, hourValue float64, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, err
	}
	minutes := int(math.Round(hourValue * 60))
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// IsBookedHour reports whether any booked hour value lies strictly within
// half an hour of v.
func IsBookedHour(v float64, booked []float64) bool {
	for _, b := range booked {
		if math.Abs(b-v) < bookedTolerance {
			return true
		}
	}
	return false
}

// Classify tags a grid slot for a concrete date against the sampled wall
// clock and the date's booked hour values. Past wins over booked.
func Classify(slot models.Slot, date string, now time.Time, booked []float64) models.ClassifiedSlot {
	cs := models.ClassifiedSlot{Slot: slot}

	ts, err := SlotTimestamp(date, slot.HourValue, now.Location())
	if err == nil {
		cs.IsPast = ts.Before(now)
	}
	cs.IsBooked = IsBookedHour(slot.HourValue, booked)
	cs.IsSelectable = !cs.IsPast && !cs.IsBooked
	return cs
}

// ClassifyDay classifies the full grid for one date.
func ClassifyDay(date string, now time.Time, booked []float64) []models.ClassifiedSlot {
	grid := GenerateGrid()
	out := make([]models.ClassifiedSlot, 0, len(grid))
	for _, s := range grid {
		out = append(out, Classify(s, date, now, booked))
	}
	return out
}

// Clock samples wall-clock time on a fixed interval so long-lived sessions
// see slots flip to past without a reload. Source is injectable for tests.
type Clock struct {
	Source func() time.Time

	mu  sync.RWMutex
	now time.Time
}

func NewClock() *Clock {
	c := &Clock{Source: time.Now}
	c.now = c.Source()
	return c
}

// Now returns the last sampled time.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Run re-samples until ctx is cancelled. Policy: at least once per minute.
func (c *Clock) Run(ctx context.Context, every time.Duration) {
	if every <= 0 || every > time.Minute {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			c.now = c.Source()
			c.mu.Unlock()
		}
	}
}

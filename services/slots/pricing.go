package slots

import (
	"math"
	"time"
)

// Quote is the price breakdown for a selected range. The hourly rate is an
// external input (weekday vs weekend); only the arithmetic lives here.
type Quote struct {
	DurationHours   float64 `json:"durationHours"`
	HourlyRate      float64 `json:"hourlyRate"`
	TotalAmount     float64 `json:"totalAmount"`
	InitialPayment  float64 `json:"initialPayment"`
	RemainingAmount float64 `json:"remainingAmount"`
}

// ComputeQuote prices a [start, end] label pair. advanceRate is the fraction
// collected up front; the remainder is settled at the venue.
func ComputeQuote(start, end string, hourlyRate, advanceRate float64) (Quote, error) {
	low, err := DecodeLabel(start)
	if err != nil {
		return Quote{}, err
	}
	high, err := DecodeLabel(end)
	if err != nil {
		return Quote{}, err
	}

	duration := high - low
	total := math.Round(duration * hourlyRate)
	initial := math.Round(total * advanceRate)
	return Quote{
		DurationHours:   duration,
		HourlyRate:      hourlyRate,
		TotalAmount:     total,
		InitialPayment:  initial,
		RemainingAmount: total - initial,
	}, nil
}

// IsWeekend reports whether a formatted date falls on Saturday or Sunday,
// for weekend rate selection.
func IsWeekend(date string) bool {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

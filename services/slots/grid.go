package slots

import (
	"turfbook/models"
)

// SlotsPerDay is 24 hours x 2 half-hour slots.
const SlotsPerDay = 48

// TimeBlockFor maps an hour value onto its coarse band.
func TimeBlockFor(hourValue float64) models.TimeBlock {
	switch {
	case hourValue >= 6 && hourValue < 12:
		return models.BlockMorning
	case hourValue >= 12 && hourValue < 17:
		return models.BlockAfternoon
	case hourValue >= 17 && hourValue < 22:
		return models.BlockEvening
	default:
		return models.BlockNight
	}
}

// GenerateGrid produces the 48 half-hour slots of a calendar day in strictly
// increasing order, from 12:00 AM through 11:30 PM. The grid itself is
// day-independent; past/booked classification happens downstream.
func GenerateGrid() []models.Slot {
	grid := make([]models.Slot, 0, SlotsPerDay)
	for i := 0; i < SlotsPerDay; i++ {
		hv := float64(i) * 0.5
		grid = append(grid, models.Slot{
			Time:      EncodeLabel(hv),
			HourValue: hv,
			TimeBlock: TimeBlockFor(hv),
		})
	}
	return grid
}

package slots

import (
	"turfbook/models"
)

// ApplyTap feeds one tap on a classified slot into the selection state
// machine. Taps on past or booked slots are ignored. A tap below the anchor
// reorders the range; any tap after a completed range restarts with a fresh
// anchor.
func ApplyTap(sel models.SelectionRange, slot models.ClassifiedSlot, booked []float64) models.SelectionRange {
	if !slot.IsSelectable {
		return sel
	}

	switch sel.State {
	case models.SelectionAnchorSet:
		anchor, err := DecodeLabel(sel.Start)
		if err != nil {
			// Corrupt anchor; restart rather than propagate.
			return anchorOn(slot)
		}
		switch {
		case slot.HourValue == anchor:
			return sel // idempotent re-tap
		case slot.HourValue < anchor:
			return completeRange(slot.HourValue, anchor, booked)
		default:
			return completeRange(anchor, slot.HourValue, booked)
		}
	case models.SelectionRangeSet:
		return anchorOn(slot)
	default:
		return anchorOn(slot)
	}
}

func anchorOn(slot models.ClassifiedSlot) models.SelectionRange {
	return models.SelectionRange{
		State:        models.SelectionAnchorSet,
		Start:        slot.Time,
		CoveredHours: []float64{slot.HourValue},
	}
}

func completeRange(low, high float64, booked []float64) models.SelectionRange {
	sel := models.SelectionRange{
		State:        models.SelectionRangeSet,
		Start:        EncodeLabel(low),
		End:          EncodeLabel(high),
		CoveredHours: halfHoursBetween(low, high),
	}
	sel.Error = validateRange(low, high, booked)
	return sel
}

// halfHoursBetween lists every half-hour value in [low, high].
func halfHoursBetween(low, high float64) []float64 {
	var hours []float64
	for h := low; h <= high; h += 0.5 {
		hours = append(hours, h)
	}
	return hours
}

// validateRange re-checks an assembled range. Guarded cases: an inverted
// range (cannot arise from the transitions, but kept defensively by the
// state machine contract) and a booked half-hour boundary strictly inside
// (start, end).
func validateRange(low, high float64, booked []float64) string {
	if low >= high {
		return "end must be after start"
	}
	for h := low + 0.5; h < high; h += 0.5 {
		if IsBookedHour(h, booked) {
			return "range contains booked slots"
		}
	}
	return ""
}

// ExpandRangeLabels lists the half-hour labels in [start, end), the unit the
// commit-time conflict check runs on. The end label itself is excluded: a
// range ending at 2:00 PM does not occupy the 2:00 PM slot.
func ExpandRangeLabels(start, end string) ([]string, error) {
	low, err := DecodeLabel(start)
	if err != nil {
		return nil, err
	}
	high, err := DecodeLabel(end)
	if err != nil {
		return nil, err
	}
	var labels []string
	for h := low; h < high; h += 0.5 {
		labels = append(labels, EncodeLabel(h))
	}
	return labels, nil
}

// ResetSelection returns the empty state, used after a successful commit or
// when the session is abandoned.
func ResetSelection() models.SelectionRange {
	return models.SelectionRange{State: models.SelectionEmpty}
}

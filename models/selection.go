package models

// SelectionState names the phase of the range selector.
type SelectionState string

const (
	SelectionEmpty     SelectionState = "empty"
	SelectionAnchorSet SelectionState = "anchorSet"
	SelectionRangeSet  SelectionState = "rangeSet"
)

// SelectionRange is the transient per-session slot selection.
// Owned by one interactive session; reset after a completed commit or when
// a third tap restarts the selection.
type SelectionRange struct {
	State        SelectionState `json:"state"`
	Start        string         `json:"start,omitempty"` // TimeLabel, set in anchorSet and rangeSet
	End          string         `json:"end,omitempty"`   // TimeLabel, set in rangeSet only
	CoveredHours []float64      `json:"coveredHours,omitempty"`
	Error        string         `json:"error,omitempty"` // validation message, blocks commit
}

// BookingSession ties a selection to a date for the lifetime of one
// interactive booking attempt. Cached in Redis under a session ID.
type BookingSession struct {
	Date      string         `json:"date"` // "MM/DD/YYYY"
	UserID    string         `json:"userId"`
	UserEmail string         `json:"userEmail"`
	Selection SelectionRange `json:"selection"`
}

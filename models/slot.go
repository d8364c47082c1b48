package models

// TimeBlock is the coarse band a slot falls into.
type TimeBlock string

const (
	BlockMorning   TimeBlock = "morning"   // [06:00, 12:00)
	BlockAfternoon TimeBlock = "afternoon" // [12:00, 17:00)
	BlockEvening   TimeBlock = "evening"   // [17:00, 22:00)
	BlockNight     TimeBlock = "night"     // everything else
)

// Slot is one half-hour entry of a day's booking grid.
// Immutable once generated for a given day.
type Slot struct {
	Time      string    `json:"time"`      // display label, e.g. "9:30 AM"
	HourValue float64   `json:"hourValue"` // hours from midnight, e.g. 9.5
	TimeBlock TimeBlock `json:"timeBlock"`
}

// ClassifiedSlot is a grid slot annotated with its availability state
// for a concrete date and wall-clock time.
type ClassifiedSlot struct {
	Slot
	IsPast       bool `json:"isPast"`
	IsBooked     bool `json:"isBooked"`
	IsSelectable bool `json:"isSelectable"`
}

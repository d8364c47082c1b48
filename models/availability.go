package models

// DailyAvailability is the per-date booked-set document. The key is the
// formatted date; bookedSlots only ever grows (no cancellation flow).
type DailyAvailability struct {
	Date        string   `bson:"date" json:"date"` // "MM/DD/YYYY"
	BookedSlots []string `bson:"bookedSlots" json:"bookedSlots"`
}

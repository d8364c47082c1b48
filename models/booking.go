package models

import "time"

// Booking represents a confirmed turf reservation.
// Written exactly once after the conflict check passes; never updated here
// (no edit or cancellation flow exists).
type Booking struct {
	ID               string    `bson:"id" json:"id"`                              // UUID
	Date             string    `bson:"date" json:"date"`                          // "MM/DD/YYYY"
	StartTime        string    `bson:"start_time" json:"startTime"`               // e.g. "9:00 AM"
	EndTime          string    `bson:"end_time" json:"endTime"`                   // e.g. "11:30 AM"
	DurationHours    float64   `bson:"duration_hours" json:"durationHours"`       // multiple of 0.5
	HourlyRate       float64   `bson:"hourly_rate" json:"hourlyRate"`             // external input (weekday/weekend)
	TotalAmount      float64   `bson:"total_amount" json:"totalAmount"`           // round(duration * rate)
	InitialPayment   float64   `bson:"initial_payment" json:"initialPayment"`     // advance paid now
	RemainingAmount  float64   `bson:"remaining_amount" json:"remainingAmount"`   // settled at the venue
	UserID           string    `bson:"user_id" json:"userId"`
	UserEmail        string    `bson:"user_email" json:"userEmail"`
	PaymentMethod    string    `bson:"payment_method" json:"paymentMethod"`       // e.g. "upi", "paytm"
	PaymentReference string    `bson:"payment_reference" json:"paymentReference"` // gateway reference, opaque here
	Status           string    `bson:"status" json:"status"`                      // "confirmed"
	PaymentStatus    string    `bson:"payment_status" json:"paymentStatus"`       // "partial" until settled
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}

// PayerInfo carries the identity and payment details supplied at commit time.
// How the payment reference was obtained is out of scope.
type PayerInfo struct {
	UserID           string `json:"userId"`
	UserEmail        string `json:"userEmail"`
	PaymentMethod    string `json:"paymentMethod"`
	PaymentReference string `json:"paymentReference"`
}

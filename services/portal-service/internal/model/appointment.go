package model

const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
)

// Appointment is the dashboard view of a booking. Date and Time are local to
// the business timezone.
type Appointment struct {
	ID              string `json:"id"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // HH:MM, 24h
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	Service         string `json:"service"`
	DurationMinutes int    `json:"duration"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

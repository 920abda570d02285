package model

import "time"

// Seat request statuses. Approval is the only transition with a side
// effect: it merges the requested seats into the seating rows.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDenied   = "denied"
)

// ValidRequestStatus reports whether s is one of the known statuses.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusDenied:
		return true
	}
	return false
}

// SeatRequest is a customer's request to reserve seats for an event.
type SeatRequest struct {
	ID              uint64    `db:"id"               json:"id"`
	EventID         *uint64   `db:"event_id"         json:"event_id"`
	EventTitle      *string   `db:"event_title"      json:"event_title,omitempty"`
	CustomerName    string    `db:"customer_name"    json:"customer_name"`
	CustomerEmail   string    `db:"customer_email"   json:"customer_email"`
	CustomerPhone   *string   `db:"customer_phone"   json:"customer_phone"`
	SelectedSeats   SeatList  `db:"selected_seats"   json:"selected_seats"`
	TotalSeats      int       `db:"total_seats"      json:"total_seats"`
	SpecialRequests *string   `db:"special_requests" json:"special_requests"`
	Status          string    `db:"status"           json:"status"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updated_at"`
}

// SeatRequestFilter narrows a seat request listing.
type SeatRequestFilter struct {
	Status  string
	EventID *uint64
}

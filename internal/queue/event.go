// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

// SeatRequestQueue is the durable queue carrying seat request lifecycle events.
const SeatRequestQueue = "seat_requests.events"

// Lifecycle event types.
const (
	EventSubmitted = "seat_request.submitted"
	EventApproved  = "seat_request.approved"
	EventDenied    = "seat_request.denied"
)

// SeatRequestEvent is published when a seat request is submitted, approved
// or denied. It carries enough for downstream consumers to log or notify
// without querying the database.
type SeatRequestEvent struct {
	Type          string   `json:"type"`
	RequestID     uint64   `json:"request_id"`
	EventID       *uint64  `json:"event_id,omitempty"`
	EventTitle    string   `json:"event_title,omitempty"`
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	Seats         []string `json:"seats"`
	Status        string   `json:"status"`
	OccurredAt    string   `json:"occurred_at"`
}

// NewSeatRequestEvent builds an event of the given type from req.
func NewSeatRequestEvent(typ string, req *model.SeatRequest) SeatRequestEvent {
	ev := SeatRequestEvent{
		Type:          typ,
		RequestID:     req.ID,
		EventID:       req.EventID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Seats:         append([]string{}, req.SelectedSeats...),
		Status:        req.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if req.EventTitle != nil {
		ev.EventTitle = *req.EventTitle
	}
	return ev
}

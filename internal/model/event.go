package model

import "time"

// Event statuses.
const (
	EventStatusScheduled = "scheduled"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

// Event is a show at the venue as stored in the `events` table.
//
// StartDatetime is the consolidated start; legacy rows kept event_date and
// event_time separately and were backfilled by migration. VenueSection is
// the part of the venue the event uses, if any. TicketPrice is the general
// admission price and VIPPrice the price for VIP seating.
type Event struct {
	ID            uint64     `db:"id"             json:"id"`
	Title         string     `db:"title"          json:"title"`
	ArtistName    *string    `db:"artist_name"    json:"artist_name"`
	Description   *string    `db:"description"    json:"description"`
	StartDatetime *time.Time `db:"start_datetime" json:"start_datetime"`
	EndDatetime   *time.Time `db:"end_datetime"   json:"end_datetime"`
	VenueSection  *string    `db:"venue_section"  json:"venue_section"`
	TicketPrice   *float64   `db:"ticket_price"   json:"ticket_price"`
	VIPPrice      *float64   `db:"vip_price"      json:"vip_price"`
	Capacity      *int       `db:"capacity"       json:"capacity"`
	Status        string     `db:"status"         json:"status"`
	ImageURL      *string    `db:"image_url"      json:"image_url"`
	CreatedAt     time.Time  `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"     json:"updated_at"`
}

package model

import "time"

// Seating is one (section, row) unit of the seating chart. SelectedSeats
// holds the seat identifiers currently reserved in the row; an identifier
// never appears twice. Position and rotation only drive the admin layout
// editor.
type Seating struct {
	ID            uint64    `db:"id"             json:"id"`
	EventID       *uint64   `db:"event_id"       json:"event_id"`
	Section       string    `db:"section"        json:"section"`
	RowLabel      string    `db:"row_label"      json:"row_label"`
	SeatNumber    int       `db:"seat_number"    json:"seat_number"`
	TotalSeats    int       `db:"total_seats"    json:"total_seats"`
	SeatType      string    `db:"seat_type"      json:"seat_type"`
	IsActive      bool      `db:"is_active"      json:"is_active"`
	SelectedSeats SeatList  `db:"selected_seats" json:"selected_seats"`
	PositionX     float64   `db:"position_x"     json:"position_x"`
	PositionY     float64   `db:"position_y"     json:"position_y"`
	Rotation      float64   `db:"rotation"       json:"rotation"`
	Status        string    `db:"status"         json:"status"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

// SeatingPatch carries the fields of a partial seating update. Nil fields
// are left untouched.
type SeatingPatch struct {
	EventID       *uint64
	Section       *string
	RowLabel      *string
	SeatNumber    *int
	TotalSeats    *int
	SeatType      *string
	IsActive      *bool
	SelectedSeats *SeatList
	PositionX     *float64
	PositionY     *float64
	Rotation      *float64
	Status        *string
}

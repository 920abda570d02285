package model

import "time"

// Suggestion is an artist suggestion or booking inquiry submitted through
// the public site. Status is free-form (new, contacted, booked, ...).
type Suggestion struct {
	ID             uint64    `db:"id"              json:"id"`
	Name           string    `db:"name"            json:"name"`
	ArtistName     *string   `db:"artist_name"     json:"artist_name"`
	Contact        Contact   `db:"contact"         json:"contact"`
	Message        *string   `db:"message"         json:"message"`
	SubmissionType string    `db:"submission_type" json:"submission_type"`
	Status         string    `db:"status"          json:"status"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updated_at"`
}

// SuggestionStatusNew is assigned to fresh submissions.
const SuggestionStatusNew = "new"

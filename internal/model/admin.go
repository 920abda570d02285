package model

import "time"

// Admin is a dashboard user from the `admins` table. There is no roles
// model; every admin can do everything. Username and Email are both unique
// and either can be used to log in. PasswordHash is a bcrypt hash and is
// never serialized.
type Admin struct {
	ID           uint64    `db:"id"            json:"id"`
	Username     string    `db:"username"      json:"username"`
	Email        string    `db:"email"         json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         *string   `db:"name"          json:"name"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}

// DashboardStats are the headline counters of the admin dashboard.
type DashboardStats struct {
	TotalEvents      int `db:"total_events"      json:"total_events"`
	PendingRequests  int `db:"pending_requests"  json:"pending_requests"`
	TotalSuggestions int `db:"total_suggestions" json:"total_suggestions"`
}

package model

import "time"

// LayoutSnapshot is an entry of the append-only layout history used for
// undo in the seating editor.
type LayoutSnapshot struct {
	ID          uint64    `db:"id"          json:"id"`
	Layout      JSONDoc   `db:"layout"      json:"layout"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
}

// PruneResult reports how many snapshots each retention rule removed.
type PruneResult struct {
	DeletedByCount int64 `json:"deleted_by_count"`
	DeletedByAge   int64 `json:"deleted_by_age"`
}

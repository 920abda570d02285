package model

import "time"

// Setting is one key/value pair of the business or stage settings tables.
type Setting struct {
	Key       string    `db:"setting_key"   json:"key"`
	Value     JSONDoc   `db:"setting_value" json:"value"`
	UpdatedAt time.Time `db:"updated_at"    json:"updated_at"`
}

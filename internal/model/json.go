package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONDoc is a JSON column kept verbatim: settings values and layout
// snapshots. A NULL column reads back as JSON null.
type JSONDoc json.RawMessage

// Valid reports whether the document is well-formed JSON.
func (d JSONDoc) Valid() bool { return len(d) > 0 && json.Valid(d) }

func (d JSONDoc) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *JSONDoc) UnmarshalJSON(b []byte) error {
	*d = append((*d)[0:0], b...)
	return nil
}

// Value implements driver.Valuer.
func (d JSONDoc) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return string(d), nil
}

// Scan implements sql.Scanner.
func (d *JSONDoc) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = append(JSONDoc(nil), v...)
	case string:
		*d = JSONDoc(v)
	default:
		return fmt.Errorf("json doc: unsupported type %T", src)
	}
	return nil
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Contact is the contact record attached to a suggestion. All fields are
// optional; it is stored as a JSON object column.
type Contact struct {
	Email     string `json:"email,omitempty"     validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Website   string `json:"website,omitempty"`
}

// IsZero reports whether no field is set.
func (c Contact) IsZero() bool { return c == Contact{} }

// UnmarshalJSON accepts either an object or a bare string. Bare strings
// come from older clients that sent a single contact line; a value with an
// @ is taken as an email, anything else as a phone number.
func (c *Contact) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*c = Contact{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = contactFromString(s)
		return nil
	}
	type plain Contact
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = Contact(p)
	return nil
}

func contactFromString(s string) Contact {
	s = strings.TrimSpace(s)
	if s == "" {
		return Contact{}
	}
	if strings.Contains(s, "@") {
		return Contact{Email: s}
	}
	return Contact{Phone: s}
}

// Value implements driver.Valuer; an empty contact is stored as NULL.
func (c Contact) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *Contact) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = Contact{}
		return nil
	case []byte:
		return c.scanText(string(v))
	case string:
		return c.scanText(v)
	}
	return fmt.Errorf("contact: unsupported type %T", src)
}

func (c *Contact) scanText(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, `"`) || s == "null" {
		return c.UnmarshalJSON([]byte(s))
	}
	*c = contactFromString(s)
	return nil
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSeatID is returned when a seat identifier does not have the
// <section>-<row>-<seat> shape.
var ErrInvalidSeatID = errors.New("invalid seat identifier")

// SeatID is the unit of reservation, encoding section, row label and seat
// number as "<section>-<row>-<seat>", e.g. "A-1-5". The row and seat are
// the last two dash separated parts so a section may itself contain dashes
// ("VIP-LEFT-2-7").
type SeatID string

// ParseSeatID trims s and checks that it splits into section, row and seat.
func ParseSeatID(s string) (SeatID, error) {
	id := SeatID(strings.TrimSpace(s))
	if _, _, _, err := id.Parts(); err != nil {
		return "", err
	}
	return id, nil
}

// Parts splits the identifier into its section, row label and seat number.
func (id SeatID) Parts() (section, row, seat string, err error) {
	parts := strings.Split(string(id), "-")
	n := len(parts)
	if n < 3 {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidSeatID, string(id))
	}
	section = strings.Join(parts[:n-2], "-")
	row, seat = parts[n-2], parts[n-1]
	if section == "" || row == "" || seat == "" {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidSeatID, string(id))
	}
	return section, row, seat, nil
}

// SeatList is an ordered list of seat identifiers stored as a JSON array
// column (seating.selected_seats, seat_requests.selected_seats).
type SeatList []string

// Contains reports whether id is in the list.
func (l SeatList) Contains(id string) bool {
	for _, s := range l {
		if s == id {
			return true
		}
	}
	return false
}

// Unique returns the list without duplicates, first occurrence wins.
func (l SeatList) Unique() SeatList {
	out := make(SeatList, 0, len(l))
	seen := make(map[string]struct{}, len(l))
	for _, s := range l {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Validate parses every entry as a SeatID and returns the trimmed,
// de-duplicated list.
func (l SeatList) Validate() (SeatList, error) {
	out := make(SeatList, 0, len(l))
	for _, s := range l {
		id, err := ParseSeatID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, string(id))
	}
	return out.Unique(), nil
}

// MarshalJSON always renders an array, never null.
func (l SeatList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Value implements driver.Valuer.
func (l SeatList) Value() (driver.Value, error) {
	b, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. Besides a JSON array it accepts a JSON
// string holding an encoded array and a plain comma separated list, both
// of which older rows contain.
func (l *SeatList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = SeatList{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("seat list: unsupported type %T", src)
	}
	parsed, err := parseSeatList(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func parseSeatList(raw string) (SeatList, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "" || raw == "null":
		return SeatList{}, nil
	case strings.HasPrefix(raw, "["):
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, fmt.Errorf("seat list: %w", err)
		}
		return SeatList(out), nil
	case strings.HasPrefix(raw, `"`):
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			return nil, fmt.Errorf("seat list: %w", err)
		}
		return parseSeatList(inner)
	}
	out := SeatList{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

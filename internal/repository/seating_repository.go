package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

const seatingColumns = `id, event_id, section, row_label, seat_number, total_seats, seat_type, is_active,
	selected_seats, position_x, position_y, rotation, status, created_at, updated_at`

// SeatingRepo provides methods to work with seating rows.
type SeatingRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// NewSeatingRepo constructs a SeatingRepo with the given DB handle.
func NewSeatingRepo(db *sqlx.DB, logger *logrus.Entry) *SeatingRepo {
	return &SeatingRepo{db: db, logger: logger.WithField(log.FldTable, "seating")}
}

// List returns seating rows ordered by section then row. A non-nil eventID
// restricts the result to rows bound to that event plus unbound rows.
func (r *SeatingRepo) List(ctx context.Context, eventID *uint64) ([]model.Seating, error) {
	q := `SELECT ` + seatingColumns + ` FROM seating`
	var args []any
	if eventID != nil {
		q += ` WHERE event_id = ? OR event_id IS NULL`
		args = append(args, *eventID)
	}
	q += ` ORDER BY section, row_label, id`
	rows := []model.Seating{}
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "list seating")
	}
	return rows, nil
}

// Get retrieves a seating row by its id.
func (r *SeatingRepo) Get(ctx context.Context, id uint64) (*model.Seating, error) {
	var s model.Seating
	if err := r.db.GetContext(ctx, &s, `SELECT `+seatingColumns+` FROM seating WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get seating")
	}
	return &s, nil
}

// Create inserts a seating row. On success s is reloaded from the database.
func (r *SeatingRepo) Create(ctx context.Context, s *model.Seating) error {
	r.logger.WithField("section", s.Section).WithField("row", s.RowLabel).Debug("Adding seating row")
	if s.SelectedSeats == nil {
		s.SelectedSeats = model.SeatList{}
	}
	const q = `INSERT INTO seating (event_id, section, row_label, seat_number, total_seats, seat_type,
	               is_active, selected_seats, position_x, position_y, rotation, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.EventID, s.Section, s.RowLabel, s.SeatNumber, s.TotalSeats,
		s.SeatType, s.IsActive, s.SelectedSeats, s.PositionX, s.PositionY, s.Rotation, s.Status)
	if err != nil {
		return errors.Wrap(err, "insert seating")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "insert seating")
	}
	fresh, err := r.Get(ctx, uint64(id))
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// Patch updates exactly the fields set in p and returns the updated row.
func (r *SeatingRepo) Patch(ctx context.Context, id uint64, p model.SeatingPatch) (*model.Seating, error) {
	sets, args := seatingPatchSet(p)
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	r.logger.WithField(log.FldID, id).WithField("fields", len(sets)).Debug("Patching seating row")
	q := `UPDATE seating SET ` + strings.Join(sets, ", ") + `, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "patch seating")
	}
	if err := expectRows(res); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// seatingPatchSet builds the SET fragments for the non-nil patch fields in
// a fixed column order.
func seatingPatchSet(p model.SeatingPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.EventID != nil {
		if *p.EventID == 0 {
			add("event_id", nil)
		} else {
			add("event_id", *p.EventID)
		}
	}
	if p.Section != nil {
		add("section", *p.Section)
	}
	if p.RowLabel != nil {
		add("row_label", *p.RowLabel)
	}
	if p.SeatNumber != nil {
		add("seat_number", *p.SeatNumber)
	}
	if p.TotalSeats != nil {
		add("total_seats", *p.TotalSeats)
	}
	if p.SeatType != nil {
		add("seat_type", *p.SeatType)
	}
	if p.IsActive != nil {
		add("is_active", *p.IsActive)
	}
	if p.SelectedSeats != nil {
		add("selected_seats", p.SelectedSeats.Unique())
	}
	if p.PositionX != nil {
		add("position_x", *p.PositionX)
	}
	if p.PositionY != nil {
		add("position_y", *p.PositionY)
	}
	if p.Rotation != nil {
		add("rotation", *p.Rotation)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	return sets, args
}

// Delete removes a seating row.
func (r *SeatingRepo) Delete(ctx context.Context, id uint64) error {
	r.logger.WithField(log.FldID, id).Debug("Deleting seating row")
	res, err := r.db.ExecContext(ctx, `DELETE FROM seating WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete seating")
	}
	return expectRows(res)
}

// lockSeatingRowTx loads the seating row for (section, row) inside tx and locks it
// until the transaction ends. With an event id, a row bound to that event
// wins over an unbound one. ErrNotFound means no row matches.
func lockSeatingRowTx(ctx context.Context, tx *sqlx.Tx, section, row string, eventID *uint64) (*model.Seating, error) {
	q := `SELECT ` + seatingColumns + ` FROM seating WHERE section = ? AND row_label = ?`
	args := []any{section, row}
	if eventID != nil {
		q += ` AND (event_id = ? OR event_id IS NULL) ORDER BY (event_id IS NULL), id`
		args = append(args, *eventID)
	} else {
		q += ` ORDER BY id`
	}
	q += ` LIMIT 1 FOR UPDATE`
	var s model.Seating
	if err := tx.GetContext(ctx, &s, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "lock seating row")
	}
	return &s, nil
}

func writeSelectedSeatsTx(ctx context.Context, tx *sqlx.Tx, id uint64, seats model.SeatList) error {
	const q = `UPDATE seating SET selected_seats = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, seats, id); err != nil {
		return errors.Wrap(err, "write selected seats")
	}
	return nil
}

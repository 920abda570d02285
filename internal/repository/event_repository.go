package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

const eventColumns = `id, title, artist_name, description, start_datetime, end_datetime,
	venue_section, ticket_price, vip_price, capacity, status, image_url, created_at, updated_at`

// EventRepo provides CRUD operations for events.
type EventRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// NewEventRepo constructs an EventRepo with the given DB handle and logger.
func NewEventRepo(db *sqlx.DB, logger *logrus.Entry) *EventRepo {
	return &EventRepo{db: db, logger: logger.WithField(log.FldTable, "events")}
}

// List returns events ordered by start time. With upcomingOnly set, events
// that already started are left out.
func (r *EventRepo) List(ctx context.Context, upcomingOnly bool) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events`
	if upcomingOnly {
		q += ` WHERE start_datetime >= UTC_TIMESTAMP()`
	}
	q += ` ORDER BY COALESCE(start_datetime, created_at) ASC, id ASC`
	events := []model.Event{}
	if err := r.db.SelectContext(ctx, &events, q); err != nil {
		return nil, errors.Wrap(err, "list events")
	}
	return events, nil
}

// Get returns the event with the given id.
func (r *EventRepo) Get(ctx context.Context, id uint64) (*model.Event, error) {
	var ev model.Event
	err := r.db.GetContext(ctx, &ev, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get event")
	}
	return &ev, nil
}

// Create inserts the event and reloads it so defaults and timestamps are
// populated.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	r.logger.WithField("title", ev.Title).Debug("Adding new event")
	if ev.Status == "" {
		ev.Status = model.EventStatusScheduled
	}
	const q = `INSERT INTO events (title, artist_name, description, start_datetime, end_datetime,
	               venue_section, ticket_price, vip_price, capacity, status, image_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, ev.Title, ev.ArtistName, ev.Description, ev.StartDatetime,
		ev.EndDatetime, ev.VenueSection, ev.TicketPrice, ev.VIPPrice, ev.Capacity, ev.Status, ev.ImageURL)
	if err != nil {
		return errors.Wrap(err, "insert event")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "insert event")
	}
	fresh, err := r.Get(ctx, uint64(id))
	if err != nil {
		return err
	}
	*ev = *fresh
	return nil
}

// Update overwrites every editable column of the event.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event) error {
	r.logger.WithField(log.FldID, ev.ID).Debug("Updating event")
	const q = `UPDATE events SET title = ?, artist_name = ?, description = ?, start_datetime = ?,
	               end_datetime = ?, venue_section = ?, ticket_price = ?, vip_price = ?, capacity = ?,
	               status = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, ev.Title, ev.ArtistName, ev.Description, ev.StartDatetime,
		ev.EndDatetime, ev.VenueSection, ev.TicketPrice, ev.VIPPrice, ev.Capacity, ev.Status, ev.ImageURL, ev.ID)
	if err != nil {
		return errors.Wrap(err, "update event")
	}
	if err := expectRows(res); err != nil {
		return err
	}
	fresh, err := r.Get(ctx, ev.ID)
	if err != nil {
		return err
	}
	*ev = *fresh
	return nil
}

// Delete removes the event. Seating rows and seat requests keep existing
// with their event reference cleared by the foreign key.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	r.logger.WithField(log.FldID, id).Debug("Deleting event")
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete event")
	}
	return expectRows(res)
}

// expectRows turns a zero RowsAffected into ErrNotFound. The DSN sets
// clientFoundRows so an UPDATE that matches but changes nothing still
// counts as one row.
func expectRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

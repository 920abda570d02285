package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

const seatRequestColumns = `sr.id, sr.event_id, e.title AS event_title, sr.customer_name, sr.customer_email,
	sr.customer_phone, sr.selected_seats, sr.total_seats, sr.special_requests, sr.status,
	sr.created_at, sr.updated_at`

const seatRequestFrom = ` FROM seat_requests sr LEFT JOIN events e ON e.id = sr.event_id`

// SeatRequestRepo stores seat reservation requests and runs the approval
// workflow that merges approved seats into the seating rows.
type SeatRequestRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// NewSeatRequestRepo returns a new SeatRequestRepo bound to the given database.
func NewSeatRequestRepo(db *sqlx.DB, logger *logrus.Entry) *SeatRequestRepo {
	return &SeatRequestRepo{db: db, logger: logger.WithField(log.FldTable, "seat_requests")}
}

// SeatRequestUpdate carries the editable fields of a request. Nil fields
// are left untouched.
type SeatRequestUpdate struct {
	CustomerName    *string
	CustomerEmail   *string
	CustomerPhone   *string
	SelectedSeats   *model.SeatList
	TotalSeats      *int
	SpecialRequests *string
	Status          *string
}

// ApprovalResult describes a committed approval. Skipped lists seat
// identifiers that did not parse or matched no seating row; they were
// ignored.
type ApprovalResult struct {
	Request *model.SeatRequest
	Applied []string
	Skipped []string
}

// List returns requests newest first, optionally filtered by status and event.
func (r *SeatRequestRepo) List(ctx context.Context, f model.SeatRequestFilter) ([]model.SeatRequest, error) {
	q := `SELECT ` + seatRequestColumns + seatRequestFrom
	var where []string
	var args []any
	if f.Status != "" {
		where = append(where, "sr.status = ?")
		args = append(args, f.Status)
	}
	if f.EventID != nil {
		where = append(where, "sr.event_id = ?")
		args = append(args, *f.EventID)
	}
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY sr.created_at DESC, sr.id DESC`
	out := []model.SeatRequest{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "list seat requests")
	}
	return out, nil
}

// Get returns a single request including the event title.
func (r *SeatRequestRepo) Get(ctx context.Context, id uint64) (*model.SeatRequest, error) {
	var req model.SeatRequest
	err := r.db.GetContext(ctx, &req, `SELECT `+seatRequestColumns+seatRequestFrom+` WHERE sr.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get seat request")
	}
	return &req, nil
}

// Create stores a new pending request. TotalSeats defaults to the number of
// selected seats.
func (r *SeatRequestRepo) Create(ctx context.Context, req *model.SeatRequest) error {
	if req.TotalSeats == 0 {
		req.TotalSeats = len(req.SelectedSeats)
	}
	req.Status = model.RequestStatusPending
	const q = `INSERT INTO seat_requests (event_id, customer_name, customer_email, customer_phone,
	               selected_seats, total_seats, special_requests, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, req.EventID, req.CustomerName, req.CustomerEmail, req.CustomerPhone,
		req.SelectedSeats, req.TotalSeats, req.SpecialRequests, req.Status)
	if err != nil {
		return errors.Wrap(err, "insert seat request")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "insert seat request")
	}
	entry := r.logger.WithField(log.FldID, id).WithField("seats", len(req.SelectedSeats))
	if req.EventID != nil {
		entry = entry.WithField(log.FldEvent, *req.EventID)
	}
	entry.Info("Seat request submitted")
	fresh, err := r.Get(ctx, uint64(id))
	if err != nil {
		return err
	}
	*req = *fresh
	return nil
}

// Update applies the non-nil fields of u and returns the updated request.
func (r *SeatRequestRepo) Update(ctx context.Context, id uint64, u SeatRequestUpdate) (*model.SeatRequest, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.CustomerName != nil {
		add("customer_name", *u.CustomerName)
	}
	if u.CustomerEmail != nil {
		add("customer_email", *u.CustomerEmail)
	}
	if u.CustomerPhone != nil {
		add("customer_phone", *u.CustomerPhone)
	}
	if u.SelectedSeats != nil {
		add("selected_seats", *u.SelectedSeats)
	}
	if u.TotalSeats != nil {
		add("total_seats", *u.TotalSeats)
	}
	if u.SpecialRequests != nil {
		add("special_requests", *u.SpecialRequests)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	q := `UPDATE seat_requests SET ` + strings.Join(sets, ", ") + `, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "update seat request")
	}
	if err := expectRows(res); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Deny marks the request denied. Seating is never touched.
func (r *SeatRequestRepo) Deny(ctx context.Context, id uint64) (*model.SeatRequest, error) {
	r.logger.WithField(log.FldID, id).Info("Denying seat request")
	const q = `UPDATE seat_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, model.RequestStatusDenied, id)
	if err != nil {
		return nil, errors.Wrap(err, "deny seat request")
	}
	if err := expectRows(res); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Approve merges the request's seats into the matching seating rows and
// marks it approved, all in one transaction.
//
// The request row and every seating row it touches are locked FOR UPDATE,
// so two approvals for the same row serialize instead of both reading the
// pre-update list. If any requested seat is already in its row's list the
// transaction is rolled back and a *SeatConflictError listing those seats
// is returned. Identifiers that do not parse or match no seating row are
// skipped. A missing request yields ErrNotFound.
func (r *SeatRequestRepo) Approve(ctx context.Context, id uint64) (*ApprovalResult, error) {
	logger := r.logger.WithField(log.FldID, id)
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin approval")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var req model.SeatRequest
	const load = `SELECT id, event_id, customer_name, customer_email, customer_phone, selected_seats,
	                  total_seats, special_requests, status, created_at, updated_at
	              FROM seat_requests WHERE id = ? FOR UPDATE`
	if err := tx.GetContext(ctx, &req, load, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "load seat request")
	}
	if req.EventID != nil {
		logger = logger.WithField(log.FldEvent, *req.EventID)
	}

	type rowKey struct{ section, row string }
	type wantedSeat struct {
		seat string
		key  rowKey
	}
	var wanted []wantedSeat
	var keys []rowKey
	seenKey := map[rowKey]bool{}
	var conflicts, applied, skipped []string

	for _, seat := range req.SelectedSeats.Unique() {
		section, row, _, err := model.SeatID(seat).Parts()
		if err != nil {
			logger.WithField(log.FldSeat, seat).Warn("Skipping unparsable seat identifier")
			skipped = append(skipped, seat)
			continue
		}
		key := rowKey{section, row}
		wanted = append(wanted, wantedSeat{seat: seat, key: key})
		if !seenKey[key] {
			seenKey[key] = true
			keys = append(keys, key)
		}
	}

	// Rows are locked in (section, row) order so concurrent approvals
	// touching the same rows cannot deadlock.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].section != keys[j].section {
			return keys[i].section < keys[j].section
		}
		return keys[i].row < keys[j].row
	})
	rows := make(map[rowKey]*model.Seating, len(keys))
	var touched []*model.Seating
	for _, key := range keys {
		s, err := lockSeatingRowTx(ctx, tx, key.section, key.row, req.EventID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if s != nil {
			rows[key] = s
			touched = append(touched, s)
		}
	}

	for _, w := range wanted {
		s := rows[w.key]
		if s == nil {
			logger.WithField(log.FldSeat, w.seat).Warn("No seating row for seat, skipping")
			skipped = append(skipped, w.seat)
			continue
		}
		if s.SelectedSeats.Contains(w.seat) {
			conflicts = append(conflicts, w.seat)
			continue
		}
		s.SelectedSeats = append(s.SelectedSeats, w.seat)
		applied = append(applied, w.seat)
	}

	if len(conflicts) > 0 {
		logger.WithField("conflicts", conflicts).Info("Seat request approval rejected")
		return nil, &SeatConflictError{Seats: conflicts}
	}

	for _, s := range touched {
		if err := writeSelectedSeatsTx(ctx, tx, s.ID, s.SelectedSeats); err != nil {
			return nil, err
		}
	}
	const approve = `UPDATE seat_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := tx.ExecContext(ctx, approve, model.RequestStatusApproved, id); err != nil {
		return nil, errors.Wrap(err, "mark approved")
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit approval")
	}
	committed = true

	req.Status = model.RequestStatusApproved
	logger.WithField("seats", len(applied)).WithField("skipped", len(skipped)).Info("Seat request approved")
	return &ApprovalResult{Request: &req, Applied: applied, Skipped: skipped}, nil
}

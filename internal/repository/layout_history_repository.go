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

// DefaultHistoryListLimit caps List when the caller passes no limit.
const DefaultHistoryListLimit = 50

// LayoutHistoryRepo is the append-only snapshot log of the seating layout.
// Every insert is followed by the two retention rules: keep at most
// maxEntries rows and drop rows older than retentionDays. A value <= 0
// disables the corresponding rule.
type LayoutHistoryRepo struct {
	db            *sqlx.DB
	logger        *logrus.Entry
	maxEntries    int
	retentionDays int
}

func NewLayoutHistoryRepo(db *sqlx.DB, logger *logrus.Entry, maxEntries, retentionDays int) *LayoutHistoryRepo {
	return &LayoutHistoryRepo{
		db:            db,
		logger:        logger.WithField(log.FldTable, "layout_history"),
		maxEntries:    maxEntries,
		retentionDays: retentionDays,
	}
}

// Limits returns the configured retention rules.
func (r *LayoutHistoryRepo) Limits() (maxEntries, retentionDays int) {
	return r.maxEntries, r.retentionDays
}

// Create appends a snapshot. Pruning afterwards is best effort: failures
// are logged and the snapshot insert still succeeds.
func (r *LayoutHistoryRepo) Create(ctx context.Context, snap *model.LayoutSnapshot) error {
	const q = `INSERT INTO layout_history (layout, description) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, snap.Layout, snap.Description)
	if err != nil {
		return errors.Wrap(err, "insert layout snapshot")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "insert layout snapshot")
	}
	if _, err := r.Prune(ctx, r.maxEntries, r.retentionDays); err != nil {
		r.logger.WithError(err).Warn("Layout history cleanup failed")
	}
	fresh, err := r.Get(ctx, uint64(id))
	if err != nil {
		return err
	}
	*snap = *fresh
	return nil
}

// List returns the most recent snapshots first.
func (r *LayoutHistoryRepo) List(ctx context.Context, limit int) ([]model.LayoutSnapshot, error) {
	if limit <= 0 {
		limit = DefaultHistoryListLimit
	}
	out := []model.LayoutSnapshot{}
	const q = `SELECT id, layout, description, created_at FROM layout_history
	           ORDER BY created_at DESC, id DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &out, q, limit); err != nil {
		return nil, errors.Wrap(err, "list layout history")
	}
	return out, nil
}

func (r *LayoutHistoryRepo) Get(ctx context.Context, id uint64) (*model.LayoutSnapshot, error) {
	var s model.LayoutSnapshot
	const q = `SELECT id, layout, description, created_at FROM layout_history WHERE id = ?`
	if err := r.db.GetContext(ctx, &s, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get layout snapshot")
	}
	return &s, nil
}

// Prune applies the count rule then the age rule. Both run even if the
// first fails; the first error is returned.
func (r *LayoutHistoryRepo) Prune(ctx context.Context, maxEntries, retentionDays int) (model.PruneResult, error) {
	var res model.PruneResult
	var firstErr error

	if maxEntries > 0 {
		// MySQL refuses LIMIT inside IN (subquery); the derived table works around it.
		const byCount = `DELETE FROM layout_history WHERE id NOT IN (
		                     SELECT id FROM (
		                         SELECT id FROM layout_history ORDER BY created_at DESC, id DESC LIMIT ?
		                     ) AS keep_rows)`
		if n, err := r.exec(ctx, byCount, maxEntries); err != nil {
			firstErr = errors.Wrap(err, "prune layout history by count")
		} else {
			res.DeletedByCount = n
		}
	}
	if retentionDays > 0 {
		const byAge = `DELETE FROM layout_history WHERE created_at < UTC_TIMESTAMP() - INTERVAL ? DAY`
		if n, err := r.exec(ctx, byAge, retentionDays); err != nil {
			if firstErr == nil {
				firstErr = errors.Wrap(err, "prune layout history by age")
			}
		} else {
			res.DeletedByAge = n
		}
	}
	if res.DeletedByCount > 0 || res.DeletedByAge > 0 {
		r.logger.WithField("by_count", res.DeletedByCount).WithField("by_age", res.DeletedByAge).Debug("Layout history pruned")
	}
	return res, firstErr
}

func (r *LayoutHistoryRepo) exec(ctx context.Context, q string, arg any) (int64, error) {
	res, err := r.db.ExecContext(ctx, q, arg)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

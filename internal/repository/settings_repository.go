package repository

import (
	"context"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

// Settings tables share one shape: a unique setting_key and a JSON value.
const (
	BusinessSettingsTable = "business_settings"
	StageSettingsTable    = "stage_settings"
)

// SettingsRepo reads and upserts key/value settings in one table.
type SettingsRepo struct {
	db     *sqlx.DB
	table  string
	logger *logrus.Entry
}

// NewSettingsRepo binds the repo to table, which must be one of the
// *SettingsTable constants; the name is spliced into SQL.
func NewSettingsRepo(db *sqlx.DB, table string, logger *logrus.Entry) *SettingsRepo {
	if table != BusinessSettingsTable && table != StageSettingsTable {
		panic("unknown settings table " + table)
	}
	return &SettingsRepo{db: db, table: table, logger: logger.WithField(log.FldTable, table)}
}

// All returns every setting ordered by key.
func (r *SettingsRepo) All(ctx context.Context) ([]model.Setting, error) {
	out := []model.Setting{}
	q := `SELECT setting_key, setting_value, updated_at FROM ` + r.table + ` ORDER BY setting_key`
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, errors.Wrap(err, "list settings")
	}
	return out, nil
}

// Upsert inserts or updates every key in values within one transaction.
// Keys are written in sorted order so concurrent upserts lock rows in the
// same sequence.
func (r *SettingsRepo) Upsert(ctx context.Context, values map[string]model.JSONDoc) error {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin settings upsert")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	q := `INSERT INTO ` + r.table + ` (setting_key, setting_value) VALUES (?, ?)
	      ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value), updated_at = CURRENT_TIMESTAMP`
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, q, k, values[k]); err != nil {
			return errors.Wrapf(err, "upsert setting %q", k)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit settings upsert")
	}
	committed = true
	r.logger.WithField("keys", keys).Debug("Settings upserted")
	return nil
}

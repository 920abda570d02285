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

const suggestionColumns = `id, name, artist_name, contact, message, submission_type, status, created_at, updated_at`

// SuggestionRepo stores artist suggestions submitted from the public site.
type SuggestionRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

func NewSuggestionRepo(db *sqlx.DB, logger *logrus.Entry) *SuggestionRepo {
	return &SuggestionRepo{db: db, logger: logger.WithField(log.FldTable, "suggestions")}
}

// SuggestionUpdate carries the fields an admin may change.
type SuggestionUpdate struct {
	Name           *string
	ArtistName     *string
	Contact        *model.Contact
	Message        *string
	SubmissionType *string
	Status         *string
}

// List returns suggestions newest first, optionally by status.
func (r *SuggestionRepo) List(ctx context.Context, status string) ([]model.Suggestion, error) {
	q := `SELECT ` + suggestionColumns + ` FROM suggestions`
	var args []any
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	out := []model.Suggestion{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "list suggestions")
	}
	return out, nil
}

func (r *SuggestionRepo) Get(ctx context.Context, id uint64) (*model.Suggestion, error) {
	var s model.Suggestion
	if err := r.db.GetContext(ctx, &s, `SELECT `+suggestionColumns+` FROM suggestions WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get suggestion")
	}
	return &s, nil
}

// Create stores a new suggestion with status "new" unless one is given.
func (r *SuggestionRepo) Create(ctx context.Context, s *model.Suggestion) error {
	if s.Status == "" {
		s.Status = model.SuggestionStatusNew
	}
	if s.SubmissionType == "" {
		s.SubmissionType = "artist"
	}
	const q = `INSERT INTO suggestions (name, artist_name, contact, message, submission_type, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.ArtistName, s.Contact, s.Message, s.SubmissionType, s.Status)
	if err != nil {
		return errors.Wrap(err, "insert suggestion")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "insert suggestion")
	}
	r.logger.WithField(log.FldID, id).Info("Suggestion submitted")
	fresh, err := r.Get(ctx, uint64(id))
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// Update applies the non-nil fields of u.
func (r *SuggestionRepo) Update(ctx context.Context, id uint64, u SuggestionUpdate) (*model.Suggestion, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.ArtistName != nil {
		add("artist_name", *u.ArtistName)
	}
	if u.Contact != nil {
		add("contact", *u.Contact)
	}
	if u.Message != nil {
		add("message", *u.Message)
	}
	if u.SubmissionType != nil {
		add("submission_type", *u.SubmissionType)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	q := `UPDATE suggestions SET ` + strings.Join(sets, ", ") + `, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "update suggestion")
	}
	if err := expectRows(res); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

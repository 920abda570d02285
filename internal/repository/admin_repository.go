package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// AdminRepo looks up dashboard users for login.
type AdminRepo struct{ db *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByLogin fetches an admin by username or email (case-insensitive on
// the normalized input).
func (r *AdminRepo) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	login = strings.TrimSpace(login)
	var a model.Admin
	const q = `SELECT id, username, email, password_hash, name, created_at
	           FROM admins WHERE username = ? OR email = ? LIMIT 1`
	if err := r.db.GetContext(ctx, &a, q, login, strings.ToLower(login)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get admin")
	}
	return &a, nil
}

// Create inserts an admin whose PasswordHash is already set.
func (r *AdminRepo) Create(ctx context.Context, a *model.Admin) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	const q = `INSERT INTO admins (username, email, password_hash, name) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Username, a.Email, a.PasswordHash, a.Name)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "insert admin")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "insert admin")
	}
	a.ID = uint64(id)
	return nil
}

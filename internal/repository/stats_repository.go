package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// StatsRepo computes dashboard counters.
type StatsRepo struct{ db *sqlx.DB }

func NewStatsRepo(db *sqlx.DB) *StatsRepo { return &StatsRepo{db: db} }

// Dashboard counts all events, pending seat requests and all suggestions.
func (r *StatsRepo) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	const q = `SELECT
	               (SELECT COUNT(*) FROM events) AS total_events,
	               (SELECT COUNT(*) FROM seat_requests WHERE status = 'pending') AS pending_requests,
	               (SELECT COUNT(*) FROM suggestions) AS total_suggestions`
	var s model.DashboardStats
	if err := r.db.GetContext(ctx, &s, q); err != nil {
		return model.DashboardStats{}, errors.Wrap(err, "dashboard stats")
	}
	return s, nil
}

// Ping checks database connectivity for the health endpoint.
func (r *StatsRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

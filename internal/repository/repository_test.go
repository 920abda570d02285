package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = raw.Close()
	})
	return sqlx.NewDb(raw, "mysql"), mock
}

var requestCols = []string{"id", "event_id", "customer_name", "customer_email", "customer_phone",
	"selected_seats", "total_seats", "special_requests", "status", "created_at", "updated_at"}

func requestRow(id int64, seats, status string) *sqlmock.Rows {
	return sqlmock.NewRows(requestCols).
		AddRow(id, nil, "Dana", "dana@example.com", nil, []byte(seats), 2, nil, status, testTime, testTime)
}

var seatingCols = []string{"id", "event_id", "section", "row_label", "seat_number", "total_seats", "seat_type",
	"is_active", "selected_seats", "position_x", "position_y", "rotation", "status", "created_at", "updated_at"}

func seatingRow(id int64, section, row, seats string) *sqlmock.Rows {
	return sqlmock.NewRows(seatingCols).
		AddRow(id, nil, section, row, 10, 10, "standard", true, []byte(seats), 0.0, 0.0, 0.0, "available", testTime, testTime)
}

package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

func TestStatsRepo_Dashboard(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStatsRepo(db)

	mock.ExpectQuery(`SELECT \(SELECT COUNT\(\*\) FROM events\)`).
		WillReturnRows(sqlmock.NewRows([]string{"total_events", "pending_requests", "total_suggestions"}).
			AddRow(3, 1, 0))

	stats, err := repo.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{TotalEvents: 3, PendingRequests: 1, TotalSuggestions: 0}, stats)
}

func TestAdminRepo_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAdminRepo(db)

	mock.ExpectExec(`INSERT INTO admins`).WithArgs("root", "root@example.com", "hash", nil).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), &model.Admin{Username: "root", Email: " Root@Example.com ", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAdminRepo_GetByLoginMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAdminRepo(db)

	mock.ExpectQuery(`FROM admins WHERE username = \? OR email = \?`).WithArgs("Nobody", "nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByLogin(context.Background(), " Nobody ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeatingRepo_PatchClearsEventAndDedupes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSeatingRepo(db, log.Discard())

	zero := uint64(0)
	seats := model.SeatList{"A-1-5", "A-1-5", "A-1-6"}
	mock.ExpectExec(`UPDATE seating SET event_id = \?, selected_seats = \?, updated_at`).
		WithArgs(nil, `["A-1-5","A-1-6"]`, 4).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM seating WHERE id = \?`).WithArgs(4).
		WillReturnRows(seatingRow(4, "A", "1", `["A-1-5","A-1-6"]`))

	row, err := repo.Patch(context.Background(), 4, model.SeatingPatch{EventID: &zero, SelectedSeats: &seats})
	require.NoError(t, err)
	assert.Nil(t, row.EventID)
	assert.Equal(t, model.SeatList{"A-1-5", "A-1-6"}, row.SelectedSeats)
}

func TestSeatingRepo_PatchMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSeatingRepo(db, log.Discard())

	active := false
	mock.ExpectExec(`UPDATE seating SET is_active = \?`).WithArgs(false, 99).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Patch(context.Background(), 99, model.SeatingPatch{IsActive: &active})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepo_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEventRepo(db, log.Discard())

	mock.ExpectExec(`DELETE FROM events WHERE id = \?`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 1), ErrNotFound)
}

func TestSuggestionRepo_CreateDefaultsStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSuggestionRepo(db, log.Discard())

	mock.ExpectExec(`INSERT INTO suggestions`).
		WithArgs("Kim", nil, `{"email":"kim@example.com"}`, nil, "artist", model.SuggestionStatusNew).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery(`FROM suggestions WHERE id = \?`).WithArgs(21).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "artist_name", "contact", "message",
			"submission_type", "status", "created_at", "updated_at"}).
			AddRow(21, "Kim", nil, []byte(`{"email":"kim@example.com"}`), nil, "artist", "new", testTime, testTime))

	s := &model.Suggestion{Name: "Kim", Contact: model.Contact{Email: "kim@example.com"}}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.EqualValues(t, 21, s.ID)
	assert.Equal(t, "kim@example.com", s.Contact.Email)
}

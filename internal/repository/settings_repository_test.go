package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
)

func TestSettingsRepo_UpsertSortedInOneTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSettingsRepo(db, BusinessSettingsTable, log.Discard())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO business_settings .* ON DUPLICATE KEY UPDATE`).
		WithArgs("hours", `{"open":"18:00"}`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO business_settings`).
		WithArgs("name", `"The Hall"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), map[string]model.JSONDoc{
		"name":  model.JSONDoc(`"The Hall"`),
		"hours": model.JSONDoc(`{"open":"18:00"}`),
	})
	require.NoError(t, err)
}

func TestSettingsRepo_UpsertRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSettingsRepo(db, StageSettingsTable, log.Discard())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO stage_settings`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.Upsert(context.Background(), map[string]model.JSONDoc{"width": model.JSONDoc(`12`)})
	assert.Error(t, err)
}

func TestSettingsRepo_All(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSettingsRepo(db, StageSettingsTable, log.Discard())

	mock.ExpectQuery(`FROM stage_settings ORDER BY setting_key`).
		WillReturnRows(sqlmock.NewRows([]string{"setting_key", "setting_value", "updated_at"}).
			AddRow("width", []byte(`12`), testTime))

	out, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "width", out[0].Key)
	assert.JSONEq(t, `12`, string(out[0].Value))
}

func TestNewSettingsRepo_UnknownTablePanics(t *testing.T) {
	db, _ := newMock(t)
	assert.Panics(t, func() { NewSettingsRepo(db, "users; --", log.Discard()) })
}

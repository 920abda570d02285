package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
)

type mockEvents struct{ mock.Mock }

func (m *mockEvents) List(ctx context.Context, upcomingOnly bool) ([]model.Event, error) {
	args := m.Called(ctx, upcomingOnly)
	out, _ := args.Get(0).([]model.Event)
	return out, args.Error(1)
}

func (m *mockEvents) Get(ctx context.Context, id uint64) (*model.Event, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Event)
	return out, args.Error(1)
}

func (m *mockEvents) Create(ctx context.Context, ev *model.Event) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockEvents) Update(ctx context.Context, ev *model.Event) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockEvents) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSeating struct{ mock.Mock }

func (m *mockSeating) List(ctx context.Context, eventID *uint64) ([]model.Seating, error) {
	args := m.Called(ctx, eventID)
	out, _ := args.Get(0).([]model.Seating)
	return out, args.Error(1)
}

func (m *mockSeating) Get(ctx context.Context, id uint64) (*model.Seating, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Seating)
	return out, args.Error(1)
}

func (m *mockSeating) Create(ctx context.Context, s *model.Seating) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSeating) Patch(ctx context.Context, id uint64, p model.SeatingPatch) (*model.Seating, error) {
	args := m.Called(ctx, id, p)
	out, _ := args.Get(0).(*model.Seating)
	return out, args.Error(1)
}

func (m *mockSeating) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type mockRequests struct{ mock.Mock }

func (m *mockRequests) List(ctx context.Context, f model.SeatRequestFilter) ([]model.SeatRequest, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]model.SeatRequest)
	return out, args.Error(1)
}

func (m *mockRequests) Get(ctx context.Context, id uint64) (*model.SeatRequest, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.SeatRequest)
	return out, args.Error(1)
}

func (m *mockRequests) Create(ctx context.Context, req *model.SeatRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockRequests) Update(ctx context.Context, id uint64, u repository.SeatRequestUpdate) (*model.SeatRequest, error) {
	args := m.Called(ctx, id, u)
	out, _ := args.Get(0).(*model.SeatRequest)
	return out, args.Error(1)
}

func (m *mockRequests) Approve(ctx context.Context, id uint64) (*repository.ApprovalResult, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*repository.ApprovalResult)
	return out, args.Error(1)
}

func (m *mockRequests) Deny(ctx context.Context, id uint64) (*model.SeatRequest, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.SeatRequest)
	return out, args.Error(1)
}

type mockSuggestions struct{ mock.Mock }

func (m *mockSuggestions) List(ctx context.Context, status string) ([]model.Suggestion, error) {
	args := m.Called(ctx, status)
	out, _ := args.Get(0).([]model.Suggestion)
	return out, args.Error(1)
}

func (m *mockSuggestions) Get(ctx context.Context, id uint64) (*model.Suggestion, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Suggestion)
	return out, args.Error(1)
}

func (m *mockSuggestions) Create(ctx context.Context, s *model.Suggestion) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSuggestions) Update(ctx context.Context, id uint64, u repository.SuggestionUpdate) (*model.Suggestion, error) {
	args := m.Called(ctx, id, u)
	out, _ := args.Get(0).(*model.Suggestion)
	return out, args.Error(1)
}

type mockSettings struct{ mock.Mock }

func (m *mockSettings) All(ctx context.Context) ([]model.Setting, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Setting)
	return out, args.Error(1)
}

func (m *mockSettings) Upsert(ctx context.Context, values map[string]model.JSONDoc) error {
	return m.Called(ctx, values).Error(0)
}

type mockHistory struct{ mock.Mock }

func (m *mockHistory) Create(ctx context.Context, snap *model.LayoutSnapshot) error {
	return m.Called(ctx, snap).Error(0)
}

func (m *mockHistory) List(ctx context.Context, limit int) ([]model.LayoutSnapshot, error) {
	args := m.Called(ctx, limit)
	out, _ := args.Get(0).([]model.LayoutSnapshot)
	return out, args.Error(1)
}

func (m *mockHistory) Get(ctx context.Context, id uint64) (*model.LayoutSnapshot, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.LayoutSnapshot)
	return out, args.Error(1)
}

func (m *mockHistory) Prune(ctx context.Context, maxEntries, retentionDays int) (model.PruneResult, error) {
	args := m.Called(ctx, maxEntries, retentionDays)
	return args.Get(0).(model.PruneResult), args.Error(1)
}

func (m *mockHistory) Limits() (int, int) {
	args := m.Called()
	return args.Int(0), args.Int(1)
}

type mockStats struct{ mock.Mock }

func (m *mockStats) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.DashboardStats), args.Error(1)
}

type mockAdmins struct{ mock.Mock }

func (m *mockAdmins) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	args := m.Called(ctx, login)
	out, _ := args.Get(0).(*model.Admin)
	return out, args.Error(1)
}

type mockPinger struct{ mock.Mock }

func (m *mockPinger) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, ev queue.SeatRequestEvent) { m.Called(ctx, ev) }

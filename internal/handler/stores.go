package handler

import (
	"context"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// The handlers depend on these narrow interfaces rather than on the
// concrete repositories so tests can substitute mocks.

type EventStore interface {
	List(ctx context.Context, upcomingOnly bool) ([]model.Event, error)
	Get(ctx context.Context, id uint64) (*model.Event, error)
	Create(ctx context.Context, ev *model.Event) error
	Update(ctx context.Context, ev *model.Event) error
	Delete(ctx context.Context, id uint64) error
}

type SeatingStore interface {
	List(ctx context.Context, eventID *uint64) ([]model.Seating, error)
	Get(ctx context.Context, id uint64) (*model.Seating, error)
	Create(ctx context.Context, s *model.Seating) error
	Patch(ctx context.Context, id uint64, p model.SeatingPatch) (*model.Seating, error)
	Delete(ctx context.Context, id uint64) error
}

type SeatRequestStore interface {
	List(ctx context.Context, f model.SeatRequestFilter) ([]model.SeatRequest, error)
	Get(ctx context.Context, id uint64) (*model.SeatRequest, error)
	Create(ctx context.Context, req *model.SeatRequest) error
	Update(ctx context.Context, id uint64, u repository.SeatRequestUpdate) (*model.SeatRequest, error)
	Approve(ctx context.Context, id uint64) (*repository.ApprovalResult, error)
	Deny(ctx context.Context, id uint64) (*model.SeatRequest, error)
}

type SuggestionStore interface {
	List(ctx context.Context, status string) ([]model.Suggestion, error)
	Get(ctx context.Context, id uint64) (*model.Suggestion, error)
	Create(ctx context.Context, s *model.Suggestion) error
	Update(ctx context.Context, id uint64, u repository.SuggestionUpdate) (*model.Suggestion, error)
}

type SettingsStore interface {
	All(ctx context.Context) ([]model.Setting, error)
	Upsert(ctx context.Context, values map[string]model.JSONDoc) error
}

type LayoutHistoryStore interface {
	Create(ctx context.Context, snap *model.LayoutSnapshot) error
	List(ctx context.Context, limit int) ([]model.LayoutSnapshot, error)
	Get(ctx context.Context, id uint64) (*model.LayoutSnapshot, error)
	Prune(ctx context.Context, maxEntries, retentionDays int) (model.PruneResult, error)
	Limits() (maxEntries, retentionDays int)
}

type StatsStore interface {
	Dashboard(ctx context.Context) (model.DashboardStats, error)
}

type AdminStore interface {
	GetByLogin(ctx context.Context, login string) (*model.Admin, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Notifier publishes seat request lifecycle events. Implementations must
// not block the request on broker failures.
type Notifier interface {
	Notify(ctx context.Context, ev queue.SeatRequestEvent)
}

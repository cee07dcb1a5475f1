package event

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
)

var ErrNotFound = errors.New("event not found")

type (
	Repository interface {
		CreateEvent(ctx context.Context, evt Event, exec ...core.DBExecutor) (Event, error)
		// QueryEvents returns matches soonest first.
		QueryEvents(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) ([]Event, error)
	}

	Service struct {
		repo    Repository
		nowFunc func() time.Time
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, nowFunc: func() time.Time { return time.Now().UTC() }}
}

func (svc *Service) Create(ctx context.Context, ne NewEvent) (Event, error) {
	evt := Event{
		Title:       ne.Title,
		Description: ne.Description,
		Type:        ne.Type,
		Location:    ne.Location,
		Date:        ne.Date.UTC(),
	}
	return svc.repo.CreateEvent(ctx, evt)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Event, error) {
	return svc.repo.QueryEvents(ctx, filter)
}

// Upcoming lists events that have not happened yet, soonest first.
func (svc *Service) Upcoming(ctx context.Context, limit int) ([]Event, error) {
	return svc.repo.QueryEvents(ctx, &QueryFilter{From: svc.nowFunc(), Limit: limit})
}

package sqlxrepos

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/event"
)

const eventColumns = "id, title, description, type, location, date"

type eventRepository struct {
	repository
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(exec core.DBExecutor) *eventRepository {
	return &eventRepository{repository{exec: exec}}
}

func (repo eventRepository) CreateEvent(ctx context.Context, evt event.Event, exec ...core.DBExecutor) (event.Event, error) {
	evt.ID = uuid.New().String()
	q := `INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		evt.ID, evt.Title, evt.Description, evt.Type, evt.Location, evt.Date)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "inserting event")
	}
	return evt, nil
}

func (repo eventRepository) QueryEvents(ctx context.Context, filter *event.QueryFilter, exec ...core.DBExecutor) ([]event.Event, error) {
	q := "SELECT " + eventColumns + " FROM events"
	var clauses []string
	var args []interface{}
	var limit int

	if filter != nil {
		if !filter.From.IsZero() {
			clauses = append(clauses, "date >= ?")
			args = append(args, filter.From.UTC())
		}
		if !filter.To.IsZero() {
			clauses = append(clauses, "date < ?")
			args = append(args, filter.To.UTC())
		}
		limit = filter.Limit
	}
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY date ASC"
	if limit > 0 {
		q += " LIMIT " + strconv.Itoa(limit)
	}

	q, args, err := rebind(q, args...)
	if err != nil {
		return nil, err
	}
	var events []event.Event
	if err := repo.getExec(exec).SelectContext(ctx, &events, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	return events, nil
}

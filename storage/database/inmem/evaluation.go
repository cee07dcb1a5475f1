package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
)

type evaluationRepository struct {
	db *DB
}

var _ evaluation.Repository = (*evaluationRepository)(nil) // interface compliance check

func NewEvaluationRepository(db *DB) *evaluationRepository {
	return &evaluationRepository{db: db}
}

func (repo *evaluationRepository) CreateEvaluation(ctx context.Context, ev evaluation.Evaluation, exec ...core.DBExecutor) (evaluation.Evaluation, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	ev.ID = uuid.New().String()
	repo.db.evaluations[ev.ID] = &ev
	return ev, nil
}

func (repo *evaluationRepository) QueryEvaluations(ctx context.Context, filter *evaluation.QueryFilter, exec ...core.DBExecutor) ([]evaluation.Evaluation, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var evals []evaluation.Evaluation
	for _, ev := range repo.db.evaluations {
		if filter != nil {
			if filter.StudentID != "" && ev.StudentID != filter.StudentID {
				continue
			}
			if filter.TeacherID != "" && ev.TeacherID != filter.TeacherID {
				continue
			}
			if !filter.From.IsZero() && ev.Date.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && !ev.Date.Before(filter.To) {
				continue
			}
		}
		evals = append(evals, *ev)
	}
	sort.Slice(evals, func(i, j int) bool { return evals[i].Date.After(evals[j].Date) })
	if filter != nil && filter.Limit > 0 && len(evals) > filter.Limit {
		evals = evals[:filter.Limit]
	}
	return evals, nil
}

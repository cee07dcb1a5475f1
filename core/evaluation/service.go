package evaluation

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
)

var ErrNotFound = errors.New("evaluation not found")

type (
	Repository interface {
		CreateEvaluation(ctx context.Context, ev Evaluation, exec ...core.DBExecutor) (Evaluation, error)
		QueryEvaluations(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) ([]Evaluation, error)
	}

	// StudentPoints applies relative point deltas to a student's cumulative
	// score. The delta form matters: concurrent submissions for the same
	// student must not lose updates, so implementations express the change
	// as `points = points + delta`, never as a read-modify-write.
	StudentPoints interface {
		IncrementPoints(ctx context.Context, studentID string, delta int, exec ...core.DBExecutor) error
	}

	Service struct {
		db     core.DB
		repo   Repository
		points StudentPoints
	}
)

func NewService(db core.DB, repo Repository, points StudentPoints) *Service {
	return &Service{db: db, repo: repo, points: points}
}

// Create records a submitted evaluation and awards its points. The record
// insert and the point increment are one transaction: either the evaluation
// exists with its award applied, or neither happened. The award is computed
// exactly once here; nothing ever recomputes or reverses it.
func (svc *Service) Create(ctx context.Context, ne NewEvaluation, teacherID string) (Result, error) {
	ev := Evaluation{
		StudentID:     ne.StudentID,
		TeacherID:     teacherID,
		Uniform:       ne.Uniform,
		Discipline:    *ne.Discipline,
		Participation: ne.Participation,
		Progress:      ne.Progress,
		Comments:      ne.Comments,
		Date:          time.Now().UTC(),
	}
	pts := ev.Score()

	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, errors.Wrap(err, "beginning transaction")
	}

	created, err := svc.repo.CreateEvaluation(ctx, ev, tx)
	if err != nil {
		_ = tx.Rollback()
		return Result{}, errors.Wrap(err, "could not record evaluation")
	}
	// skip the no-op write when nothing was earned
	if pts > 0 {
		if err := svc.points.IncrementPoints(ctx, created.StudentID, pts, tx); err != nil {
			_ = tx.Rollback()
			return Result{}, errors.Wrap(err, "awarding points")
		}
	}
	if err := tx.Commit(); err != nil {
		return Result{}, errors.Wrap(err, "committing evaluation")
	}

	return Result{Evaluation: created, PointsAwarded: pts}, nil
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Evaluation, error) {
	return svc.repo.QueryEvaluations(ctx, filter)
}

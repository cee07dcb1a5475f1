package sqlxrepos

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
)

const evaluationColumns = "id, student_id, teacher_id, uniform, discipline, participation, progress, comments, date"

type evaluationRepository struct {
	repository
}

var _ evaluation.Repository = (*evaluationRepository)(nil) // interface compliance check

func NewEvaluationRepository(exec core.DBExecutor) *evaluationRepository {
	return &evaluationRepository{repository{exec: exec}}
}

func (repo evaluationRepository) CreateEvaluation(ctx context.Context, ev evaluation.Evaluation, exec ...core.DBExecutor) (evaluation.Evaluation, error) {
	ev.ID = uuid.New().String()
	q := `INSERT INTO evaluations (` + evaluationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		ev.ID, ev.StudentID, ev.TeacherID, ev.Uniform, ev.Discipline,
		ev.Participation, ev.Progress, ev.Comments, ev.Date)
	if err != nil {
		return evaluation.Evaluation{}, errors.Wrap(err, "inserting evaluation")
	}
	return ev, nil
}

func (repo evaluationRepository) QueryEvaluations(ctx context.Context, filter *evaluation.QueryFilter, exec ...core.DBExecutor) ([]evaluation.Evaluation, error) {
	q := "SELECT " + evaluationColumns + " FROM evaluations"
	var clauses []string
	var args []interface{}
	var limit int

	if filter != nil {
		if filter.StudentID != "" {
			clauses = append(clauses, "student_id = ?")
			args = append(args, filter.StudentID)
		}
		if filter.TeacherID != "" {
			clauses = append(clauses, "teacher_id = ?")
			args = append(args, filter.TeacherID)
		}
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
	q += " ORDER BY date DESC"
	if limit > 0 {
		q += " LIMIT " + strconv.Itoa(limit)
	}

	q, args, err := rebind(q, args...)
	if err != nil {
		return nil, err
	}
	var evals []evaluation.Evaluation
	if err := repo.getExec(exec).SelectContext(ctx, &evals, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying evaluations")
	}
	return evals, nil
}

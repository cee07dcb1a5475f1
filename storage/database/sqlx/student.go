package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/student"
)

const studentColumns = "id, name, birth_date, specialty, level, guardian_id, points, avatar, created_at"

type studentRepository struct {
	repository
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) *studentRepository {
	return &studentRepository{repository{exec: exec}}
}

func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CreateStudent(ctx context.Context, stu student.Student, exec ...core.DBExecutor) (student.Student, error) {
	stu.ID = uuid.New().String()
	q := `INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		stu.ID, stu.Name, stu.BirthDate, stu.Specialty, stu.Level,
		stu.GuardianID, stu.Points, stu.Avatar, stu.CreatedAt)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return stu, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, filter student.GetFilter, exec ...core.DBExecutor) (student.Student, error) {
	if _, err := uuid.Parse(filter.ID); err != nil {
		return student.Student{}, student.ErrNotFound
	}

	q := "SELECT " + studentColumns + " FROM students WHERE id = $1"
	args := []interface{}{filter.ID}
	if filter.GuardianID != "" {
		q += " AND guardian_id = $2"
		args = append(args, filter.GuardianID)
	}

	var stu student.Student
	if err := repo.getExec(exec).GetContext(ctx, &stu, q, args...); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student")
	}
	return stu, nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter *student.QueryFilter, exec ...core.DBExecutor) ([]student.Student, error) {
	q := "SELECT " + studentColumns + " FROM students"
	var clauses []string
	var args []interface{}

	if filter != nil {
		if filter.GuardianID != "" {
			clauses = append(clauses, "guardian_id = ?")
			args = append(args, filter.GuardianID)
		}
		if filter.Specialty != "" {
			clauses = append(clauses, "specialty = ?")
			args = append(args, filter.Specialty)
		}
		if filter.Level != "" {
			clauses = append(clauses, "level = ?")
			args = append(args, filter.Level)
		}
	}
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY name ASC"

	q, args, err := rebind(q, args...)
	if err != nil {
		return nil, err
	}
	var students []student.Student
	if err := repo.getExec(exec).SelectContext(ctx, &students, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo studentRepository) IncrementPoints(ctx context.Context, id string, delta int, exec ...core.DBExecutor) error {
	q := "UPDATE students SET points = points + $2 WHERE id = $1"
	res, err := repo.getExec(exec).ExecContext(ctx, q, id, delta)
	if err != nil {
		return errors.Wrap(err, "incrementing points")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo studentRepository) TopStudents(ctx context.Context, limit int, exec ...core.DBExecutor) ([]student.Student, error) {
	q := "SELECT " + studentColumns + " FROM students ORDER BY points DESC LIMIT $1"
	var students []student.Student
	if err := repo.getExec(exec).SelectContext(ctx, &students, q, limit); err != nil {
		return nil, errors.Wrap(err, "querying top students")
	}
	return students, nil
}

func (repo studentRepository) CountStudents(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	var cnt int
	if err := repo.getExec(exec).GetContext(ctx, &cnt, "SELECT COUNT(*) FROM students"); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return cnt, nil
}

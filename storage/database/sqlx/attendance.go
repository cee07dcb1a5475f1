package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/attendance"
)

const attendanceColumns = "id, student_id, teacher_id, class, date, status"

type attendanceRepository struct {
	repository
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(exec core.DBExecutor) *attendanceRepository {
	return &attendanceRepository{repository{exec: exec}}
}

func (repo attendanceRepository) CreateAttendance(ctx context.Context, att attendance.Attendance, exec ...core.DBExecutor) (attendance.Attendance, error) {
	att.ID = uuid.New().String()
	q := `INSERT INTO attendance (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		att.ID, att.StudentID, att.TeacherID, att.Class, att.Date, att.Status)
	if err != nil {
		return attendance.Attendance{}, errors.Wrap(err, "inserting attendance")
	}
	return att, nil
}

func (repo attendanceRepository) UpdateAttendanceStatus(ctx context.Context, id, status string, exec ...core.DBExecutor) (attendance.Attendance, error) {
	exe := repo.getExec(exec)
	q := "UPDATE attendance SET status = $2 WHERE id = $1"
	res, err := exe.ExecContext(ctx, q, id, status)
	if err != nil {
		return attendance.Attendance{}, errors.Wrap(err, "updating attendance")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return attendance.Attendance{}, attendance.ErrNotFound
	}

	var att attendance.Attendance
	if err := exe.GetContext(ctx, &att, "SELECT "+attendanceColumns+" FROM attendance WHERE id = $1", id); err != nil {
		return attendance.Attendance{}, errors.Wrap(err, "reloading attendance")
	}
	return att, nil
}

func (repo attendanceRepository) GetAttendanceForDay(ctx context.Context, studentID, class string, day time.Time, exec ...core.DBExecutor) (attendance.Attendance, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	q := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE student_id = $1 AND class = $2 AND date >= $3 AND date < $4`
	var att attendance.Attendance
	err := repo.getExec(exec).GetContext(ctx, &att, q, studentID, class, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		if err == sql.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrNotFound
		}
		return attendance.Attendance{}, errors.Wrap(err, "finding day attendance")
	}
	return att, nil
}

func (repo attendanceRepository) QueryAttendance(ctx context.Context, filter *attendance.QueryFilter, exec ...core.DBExecutor) ([]attendance.Attendance, error) {
	q := "SELECT " + attendanceColumns + " FROM attendance"
	var clauses []string
	var args []interface{}

	if filter != nil {
		if filter.StudentID != "" {
			clauses = append(clauses, "student_id = ?")
			args = append(args, filter.StudentID)
		}
		if filter.TeacherID != "" {
			clauses = append(clauses, "teacher_id = ?")
			args = append(args, filter.TeacherID)
		}
		if filter.Class != "" {
			clauses = append(clauses, "class = ?")
			args = append(args, filter.Class)
		}
		if !filter.From.IsZero() {
			clauses = append(clauses, "date >= ?")
			args = append(args, filter.From.UTC())
		}
		if !filter.To.IsZero() {
			clauses = append(clauses, "date < ?")
			args = append(args, filter.To.UTC())
		}
	}
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY date DESC"

	q, args, err := rebind(q, args...)
	if err != nil {
		return nil, err
	}
	var atts []attendance.Attendance
	if err := repo.getExec(exec).SelectContext(ctx, &atts, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	return atts, nil
}

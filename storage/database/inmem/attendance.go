package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) CreateAttendance(ctx context.Context, att attendance.Attendance, exec ...core.DBExecutor) (attendance.Attendance, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	att.ID = uuid.New().String()
	repo.db.attendance[att.ID] = &att
	return att, nil
}

func (repo *attendanceRepository) UpdateAttendanceStatus(ctx context.Context, id, status string, exec ...core.DBExecutor) (attendance.Attendance, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	att, ok := repo.db.attendance[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	att.Status = status
	return *att, nil
}

func (repo *attendanceRepository) GetAttendanceForDay(ctx context.Context, studentID, class string, day time.Time, exec ...core.DBExecutor) (attendance.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)
	for _, att := range repo.db.attendance {
		if att.StudentID == studentID && att.Class == class &&
			!att.Date.Before(dayStart) && att.Date.Before(dayEnd) {
			return *att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) QueryAttendance(ctx context.Context, filter *attendance.QueryFilter, exec ...core.DBExecutor) ([]attendance.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var atts []attendance.Attendance
	for _, att := range repo.db.attendance {
		if filter != nil {
			if filter.StudentID != "" && att.StudentID != filter.StudentID {
				continue
			}
			if filter.TeacherID != "" && att.TeacherID != filter.TeacherID {
				continue
			}
			if filter.Class != "" && att.Class != filter.Class {
				continue
			}
			if !filter.From.IsZero() && att.Date.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && !att.Date.Before(filter.To) {
				continue
			}
		}
		atts = append(atts, *att)
	}
	sort.Slice(atts, func(i, j int) bool { return atts[i].Date.After(atts[j].Date) })
	return atts, nil
}

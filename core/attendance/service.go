package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
)

var ErrNotFound = errors.New("attendance record not found")

type (
	Repository interface {
		CreateAttendance(ctx context.Context, att Attendance, exec ...core.DBExecutor) (Attendance, error)
		UpdateAttendanceStatus(ctx context.Context, id, status string, exec ...core.DBExecutor) (Attendance, error)
		// GetAttendanceForDay returns the single record for (student, class)
		// within the day containing `day`, or ErrNotFound.
		GetAttendanceForDay(ctx context.Context, studentID, class string, day time.Time, exec ...core.DBExecutor) (Attendance, error)
		QueryAttendance(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) ([]Attendance, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record upserts the day's attendance for a student: a second submission for
// the same (student, class, day) updates the status instead of creating a
// duplicate row.
func (svc *Service) Record(ctx context.Context, na NewAttendance, teacherID string) (Attendance, error) {
	now := time.Now().UTC()

	existing, err := svc.repo.GetAttendanceForDay(ctx, na.StudentID, na.Class, now)
	if err == nil {
		return svc.repo.UpdateAttendanceStatus(ctx, existing.ID, na.Status)
	}
	if errors.Cause(err) != ErrNotFound {
		return Attendance{}, errors.Wrap(err, "checking existing attendance")
	}

	att := Attendance{
		StudentID: na.StudentID,
		TeacherID: teacherID,
		Class:     na.Class,
		Date:      now,
		Status:    na.Status,
	}
	return svc.repo.CreateAttendance(ctx, att)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Attendance, error) {
	return svc.repo.QueryAttendance(ctx, filter)
}

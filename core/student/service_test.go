package student

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/achievement"
	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
)

type fakeStudentRepo struct {
	students []Student
}

func (r *fakeStudentRepo) CreateStudent(ctx context.Context, stu Student, exec ...core.DBExecutor) (Student, error) {
	stu.ID = "s-new"
	r.students = append(r.students, stu)
	return stu, nil
}

func (r *fakeStudentRepo) GetStudent(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Student, error) {
	for _, s := range r.students {
		if s.ID == filter.ID && (filter.GuardianID == "" || s.GuardianID == filter.GuardianID) {
			return s, nil
		}
	}
	return Student{}, ErrNotFound
}

func (r *fakeStudentRepo) QueryStudents(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) ([]Student, error) {
	var res []Student
	for _, s := range r.students {
		if filter.GuardianID != "" && s.GuardianID != filter.GuardianID {
			continue
		}
		if filter.Specialty != "" && s.Specialty != filter.Specialty {
			continue
		}
		if filter.Level != "" && s.Level != filter.Level {
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

func (r *fakeStudentRepo) IncrementPoints(ctx context.Context, id string, delta int, exec ...core.DBExecutor) error {
	for i, s := range r.students {
		if s.ID == id {
			r.students[i].Points += delta
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeStudentRepo) TopStudents(ctx context.Context, limit int, exec ...core.DBExecutor) ([]Student, error) {
	res := append([]Student(nil), r.students...)
	for i := 0; i < len(res); i++ {
		for j := i + 1; j < len(res); j++ {
			if res[j].Points > res[i].Points {
				res[i], res[j] = res[j], res[i]
			}
		}
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (r *fakeStudentRepo) CountStudents(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	return len(r.students), nil
}

type fakeAttRepo struct {
	records []attendance.Attendance
}

func (r *fakeAttRepo) CreateAttendance(ctx context.Context, att attendance.Attendance, exec ...core.DBExecutor) (attendance.Attendance, error) {
	att.ID = "a-new"
	r.records = append(r.records, att)
	return att, nil
}

func (r *fakeAttRepo) UpdateAttendanceStatus(ctx context.Context, id, status string, exec ...core.DBExecutor) (attendance.Attendance, error) {
	for i, a := range r.records {
		if a.ID == id {
			r.records[i].Status = status
			return r.records[i], nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (r *fakeAttRepo) GetAttendanceForDay(ctx context.Context, studentID, class string, day time.Time, exec ...core.DBExecutor) (attendance.Attendance, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	for _, a := range r.records {
		if a.StudentID == studentID && a.Class == class && !a.Date.Before(dayStart) && a.Date.Before(dayStart.Add(24*time.Hour)) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (r *fakeAttRepo) QueryAttendance(ctx context.Context, filter *attendance.QueryFilter, exec ...core.DBExecutor) ([]attendance.Attendance, error) {
	var res []attendance.Attendance
	for _, a := range r.records {
		if filter.StudentID != "" && a.StudentID != filter.StudentID {
			continue
		}
		if filter.Class != "" && a.Class != filter.Class {
			continue
		}
		if !filter.From.IsZero() && a.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !a.Date.Before(filter.To) {
			continue
		}
		res = append(res, a)
	}
	return res, nil
}

type fakeEvalRepo struct {
	evals []evaluation.Evaluation
}

func (r *fakeEvalRepo) CreateEvaluation(ctx context.Context, ev evaluation.Evaluation, exec ...core.DBExecutor) (evaluation.Evaluation, error) {
	r.evals = append(r.evals, ev)
	return ev, nil
}

func (r *fakeEvalRepo) QueryEvaluations(ctx context.Context, filter *evaluation.QueryFilter, exec ...core.DBExecutor) ([]evaluation.Evaluation, error) {
	var res []evaluation.Evaluation
	for _, ev := range r.evals {
		if filter.StudentID != "" && ev.StudentID != filter.StudentID {
			continue
		}
		res = append(res, ev)
	}
	if filter.Limit > 0 && len(res) > filter.Limit {
		res = res[:filter.Limit]
	}
	return res, nil
}

type fakeAchRepo struct {
	achs []achievement.Achievement
}

func (r *fakeAchRepo) CreateAchievement(ctx context.Context, ach achievement.Achievement, exec ...core.DBExecutor) (achievement.Achievement, error) {
	r.achs = append(r.achs, ach)
	return ach, nil
}

func (r *fakeAchRepo) QueryAchievements(ctx context.Context, filter *achievement.QueryFilter, exec ...core.DBExecutor) ([]achievement.Achievement, error) {
	var res []achievement.Achievement
	for _, a := range r.achs {
		if filter.StudentID != "" && a.StudentID != filter.StudentID {
			continue
		}
		res = append(res, a)
	}
	return res, nil
}

func TestAttendancePct(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     int
	}{
		{name: "no records", statuses: nil, want: 0},
		{name: "all present", statuses: []string{"present", "present"}, want: 100},
		{name: "late does not count", statuses: []string{"present", "late", "absent"}, want: 33},
		{name: "two of three", statuses: []string{"present", "present", "absent"}, want: 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atts := make([]attendance.Attendance, len(tt.statuses))
			for i, s := range tt.statuses {
				atts[i].Status = s
			}
			if got := attendancePct(atts); got != tt.want {
				t.Errorf("attendancePct() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGuardianOverview(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	stuRepo := &fakeStudentRepo{students: []Student{
		{ID: "s1", Name: "Sofia Martin", GuardianID: "g1", Points: 140},
		{ID: "s2", Name: "Emma Brown", GuardianID: "g2", Points: 90},
	}}
	attRepo := &fakeAttRepo{records: []attendance.Attendance{
		{ID: "a1", StudentID: "s1", Status: attendance.StatusPresent, Date: now.AddDate(0, 0, -2)},
		{ID: "a2", StudentID: "s1", Status: attendance.StatusAbsent, Date: now.AddDate(0, 0, -1)},
		// outside the 30 day window, must not count
		{ID: "a3", StudentID: "s1", Status: attendance.StatusAbsent, Date: now.AddDate(0, 0, -40)},
		{ID: "a4", StudentID: "s2", Status: attendance.StatusPresent, Date: now.AddDate(0, 0, -1)},
	}}
	evalRepo := &fakeEvalRepo{evals: []evaluation.Evaluation{
		{ID: "e1", StudentID: "s1", Discipline: 5},
	}}
	achRepo := &fakeAchRepo{achs: []achievement.Achievement{
		{ID: "l1", StudentID: "s1", Title: "Perfect Attendance"},
		{ID: "l2", StudentID: "s2", Title: "First Recital"},
	}}

	svc := NewService(stuRepo, attendance.NewService(attRepo), evalRepo, achRepo)
	svc.nowFunc = func() time.Time { return now }

	overviews, err := svc.GuardianOverview(context.Background(), "g1")
	assert.NoError(t, err)
	if !assert.Len(t, overviews, 1) {
		return
	}
	ov := overviews[0]
	assert.Equal(t, "s1", ov.ID)
	assert.Equal(t, 140, ov.Points)
	assert.Equal(t, 50, ov.AttendancePct)
	assert.Len(t, ov.Achievements, 1)
	assert.Len(t, ov.RecentEvaluations, 1)
}

func TestRoster(t *testing.T) {
	now := time.Date(2026, 3, 16, 15, 30, 0, 0, time.UTC)
	class := "Ballet Intermediate - Group A"
	stuRepo := &fakeStudentRepo{students: []Student{
		{ID: "s1", Name: "Sofia Martin", Specialty: "Ballet", Level: "Intermediate"},
		{ID: "s2", Name: "Emma Brown", Specialty: "Ballet", Level: "Intermediate"},
		{ID: "s3", Name: "Liam Jones", Specialty: "Jazz", Level: "Intermediate"},
	}}
	attRepo := &fakeAttRepo{records: []attendance.Attendance{
		{ID: "a1", StudentID: "s1", Class: class, Status: attendance.StatusPresent, Date: now},
		// yesterday's record must not leak into today's roster
		{ID: "a2", StudentID: "s2", Class: class, Status: attendance.StatusAbsent, Date: now.AddDate(0, 0, -1)},
	}}

	svc := NewService(stuRepo, attendance.NewService(attRepo), &fakeEvalRepo{}, &fakeAchRepo{})
	svc.nowFunc = func() time.Time { return now }

	roster, err := svc.Roster(context.Background(), "Ballet", "Intermediate", class, now)
	assert.NoError(t, err)
	if !assert.Len(t, roster, 2) {
		return
	}
	byID := map[string]RosterEntry{}
	for _, entry := range roster {
		byID[entry.ID] = entry
	}
	assert.Equal(t, attendance.StatusPresent, byID["s1"].AttendanceStatus)
	assert.Equal(t, "", byID["s2"].AttendanceStatus)
}

func TestLeaderboard(t *testing.T) {
	stuRepo := &fakeStudentRepo{students: []Student{
		{ID: "s1", Points: 10},
		{ID: "s2", Points: 300},
		{ID: "s3", Points: 70},
		{ID: "s4", Points: 150},
		{ID: "s5", Points: 90},
		{ID: "s6", Points: 20},
	}}
	svc := NewService(stuRepo, attendance.NewService(&fakeAttRepo{}), &fakeEvalRepo{}, &fakeAchRepo{})

	top, err := svc.Leaderboard(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, top, 5) {
		assert.Equal(t, "s2", top[0].ID)
		assert.Equal(t, "s6", top[4].ID)
	}
}

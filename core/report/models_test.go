package report

import (
	"testing"
	"time"

	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
	"github.com/Eddy-C127/dance-academy/core/user"
)

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name      string
		t         time.Time
		wantStart time.Time
	}{
		{
			name:      "wednesday",
			t:         time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC),
			wantStart: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monday maps to itself",
			t:         time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday belongs to the week that started six days earlier",
			t:         time.Date(2026, 3, 22, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := WeekOf(tt.t)
			if !week.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", week.Start, tt.wantStart)
			}
			if want := tt.wantStart.AddDate(0, 0, 7); !week.End.Equal(want) {
				t.Errorf("End = %v, want %v", week.End, want)
			}
			if !week.Contains(tt.t) {
				t.Errorf("Contains(%v) = false, want true", tt.t)
			}
		})
	}
}

func TestWeekWindowContains(t *testing.T) {
	week := WeekOf(time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC))
	if week.Contains(week.End) {
		t.Error("Contains(End) = true, the window is half open")
	}
	if !week.Contains(week.Start) {
		t.Error("Contains(Start) = false")
	}
}

func TestPayroll(t *testing.T) {
	day1 := time.Date(2026, 3, 16, 16, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 17, 16, 0, 0, 0, time.UTC)
	class := "Ballet Intermediate - Group A"

	teachers := []user.User{
		{ID: "t1", Name: "Carmen Diaz"},
		{ID: "t2", Name: "Diego Ruiz"},
	}
	// t1 marked three students across two days of the same class: two
	// sessions, not three. t2 recorded nothing.
	atts := []attendance.Attendance{
		{TeacherID: "t1", Class: class, Date: day1, StudentID: "s1"},
		{TeacherID: "t1", Class: class, Date: day1, StudentID: "s2"},
		{TeacherID: "t1", Class: class, Date: day2, StudentID: "s1"},
	}
	evals := []evaluation.Evaluation{
		{TeacherID: "t1"},
		{TeacherID: "t1"},
	}

	rows := payroll(teachers, atts, evals)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	t1 := rows[0]
	if t1.ClassesTaught != 2 {
		t.Errorf("t1 ClassesTaught = %d, want 2", t1.ClassesTaught)
	}
	if t1.HoursWorked != 3.0 {
		t.Errorf("t1 HoursWorked = %v, want 3.0", t1.HoursWorked)
	}
	if t1.WeeklyPay != 450.0 {
		t.Errorf("t1 WeeklyPay = %v, want 450.0", t1.WeeklyPay)
	}
	if t1.Evaluations != 2 {
		t.Errorf("t1 Evaluations = %d, want 2", t1.Evaluations)
	}

	t2 := rows[1]
	if t2.ClassesTaught != 0 || t2.WeeklyPay != 0 || t2.Evaluations != 0 {
		t.Errorf("t2 row = %+v, want all zero", t2)
	}
}

func TestSummarize(t *testing.T) {
	atts := []attendance.Attendance{
		{Status: attendance.StatusPresent},
		{Status: attendance.StatusPresent},
		{Status: attendance.StatusLate},
		{Status: attendance.StatusAbsent},
	}
	sum := summarize(atts)
	if sum.Present != 2 || sum.Late != 1 || sum.Absent != 1 || sum.Total != 4 {
		t.Errorf("summarize() = %+v", sum)
	}
}

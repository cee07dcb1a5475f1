package report

import (
	"time"

	"github.com/Eddy-C127/dance-academy/core/event"
	"github.com/Eddy-C127/dance-academy/core/payment"
)

// WeekWindow is the Monday to Sunday span the admin dashboard reports on.
// Start is Monday 00:00 UTC; End is the following Monday 00:00 UTC, so the
// window is half open and a Sunday night class still falls inside it.
type WeekWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WeekOf returns the window containing t.
func WeekOf(t time.Time) WeekWindow {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysSinceMonday)
	return WeekWindow{Start: start, End: start.AddDate(0, 0, 7)}
}

func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// PayrollRow is one teacher's week: every distinct (class, day) pair in the
// attendance they recorded counts as one class taught, paid at the academy's
// fixed class length and hourly rate.
type PayrollRow struct {
	TeacherID     string  `json:"teacher_id"`
	TeacherName   string  `json:"teacher_name"`
	Avatar        string  `json:"avatar"`
	ClassesTaught int     `json:"classes_taught"`
	HoursWorked   float64 `json:"hours_worked"`
	WeeklyPay     float64 `json:"weekly_pay"`
	Evaluations   int     `json:"evaluations"`
}

// AttendanceSummary breaks the week's attendance records down by status.
type AttendanceSummary struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
}

// Dashboard is everything the admin home screen shows for the current week.
type Dashboard struct {
	Week              WeekWindow        `json:"week"`
	Payroll           []PayrollRow      `json:"payroll"`
	AttendanceSummary AttendanceSummary `json:"attendance_summary"`
	OverduePayments   []payment.Detail  `json:"overdue_payments"`
	UpcomingEvents    []event.Event     `json:"upcoming_events"`
	TotalStudents     int               `json:"total_students"`
	ClassesThisWeek   int               `json:"classes_this_week"`
}

package report

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
	"github.com/Eddy-C127/dance-academy/core/event"
	"github.com/Eddy-C127/dance-academy/core/payment"
	"github.com/Eddy-C127/dance-academy/core/student"
	"github.com/Eddy-C127/dance-academy/core/user"
)

const upcomingEventsLimit = 5

type Service struct {
	usrSvc   user.Service
	attSvc   *attendance.Service
	evalRepo evaluation.Repository
	pmtSvc   *payment.Service
	evtSvc   *event.Service
	stuSvc   *student.Service
	nowFunc  func() time.Time
}

func NewService(
	usrSvc user.Service,
	attSvc *attendance.Service,
	evalRepo evaluation.Repository,
	pmtSvc *payment.Service,
	evtSvc *event.Service,
	stuSvc *student.Service,
) *Service {
	return &Service{
		usrSvc:   usrSvc,
		attSvc:   attSvc,
		evalRepo: evalRepo,
		pmtSvc:   pmtSvc,
		evtSvc:   evtSvc,
		stuSvc:   stuSvc,
		nowFunc:  func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard assembles the admin metrics for the week containing now.
func (svc *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	week := WeekOf(svc.nowFunc())

	atts, err := svc.attSvc.Query(ctx, &attendance.QueryFilter{From: week.Start, To: week.End})
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "loading week attendance")
	}
	evals, err := svc.evalRepo.QueryEvaluations(ctx, &evaluation.QueryFilter{From: week.Start, To: week.End})
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "loading week evaluations")
	}

	teachers, err := svc.usrSvc.Query(ctx, &user.QueryFilter{Roles: []string{user.RoleTeacher}}, nil)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "loading teachers")
	}

	overdue, err := svc.pmtSvc.Overdue(ctx)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "loading overdue payments")
	}
	upcoming, err := svc.evtSvc.Upcoming(ctx, upcomingEventsLimit)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "loading events")
	}
	total, err := svc.stuSvc.Count(ctx)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "counting students")
	}

	return Dashboard{
		Week:              week,
		Payroll:           payroll(teachers, atts, evals),
		AttendanceSummary: summarize(atts),
		OverduePayments:   overdue,
		UpcomingEvents:    upcoming,
		TotalStudents:     total,
		ClassesThisWeek:   len(classDays(atts, "")),
	}, nil
}

// payroll derives each teacher's week from the attendance they recorded:
// distinct (class, day) pairs taught, paid at the configured class length
// and hourly rate.
func payroll(teachers []user.User, atts []attendance.Attendance, evals []evaluation.Evaluation) []PayrollRow {
	evalsByTeacher := make(map[string]int)
	for _, ev := range evals {
		evalsByTeacher[ev.TeacherID]++
	}

	rows := make([]PayrollRow, 0, len(teachers))
	for _, t := range teachers {
		classes := len(classDays(atts, t.ID))
		hours := float64(classes) * core.Conf.Academy.ClassHours
		rows = append(rows, PayrollRow{
			TeacherID:     t.ID,
			TeacherName:   t.Name,
			Avatar:        t.Avatar,
			ClassesTaught: classes,
			HoursWorked:   hours,
			WeeklyPay:     hours * core.Conf.Academy.HourlyRate,
			Evaluations:   evalsByTeacher[t.ID],
		})
	}
	return rows
}

// classDays collects the distinct (class, day) pairs in atts, optionally
// limited to one recording teacher. Multiple students marked in the same
// class on the same day are one class session.
func classDays(atts []attendance.Attendance, teacherID string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, att := range atts {
		if teacherID != "" && att.TeacherID != teacherID {
			continue
		}
		set[att.Class+"|"+att.Date.UTC().Format("2006-01-02")] = struct{}{}
	}
	return set
}

func summarize(atts []attendance.Attendance) AttendanceSummary {
	sum := AttendanceSummary{Total: len(atts)}
	for _, att := range atts {
		switch att.Status {
		case attendance.StatusPresent:
			sum.Present++
		case attendance.StatusLate:
			sum.Late++
		case attendance.StatusAbsent:
			sum.Absent++
		}
	}
	return sum
}

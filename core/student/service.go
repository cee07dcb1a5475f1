package student

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/achievement"
	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
)

var ErrNotFound = errors.New("student not found")

const (
	overviewWindow     = 30 * 24 * time.Hour
	recentItemsLimit   = 5
	leaderboardDefault = 5
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, stu Student, exec ...core.DBExecutor) (Student, error)
		GetStudent(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Student, error)
		QueryStudents(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) ([]Student, error)
		// IncrementPoints applies a relative delta so concurrent awards for
		// the same student never lose updates.
		IncrementPoints(ctx context.Context, id string, delta int, exec ...core.DBExecutor) error
		// TopStudents returns up to limit students ordered by points, highest first.
		TopStudents(ctx context.Context, limit int, exec ...core.DBExecutor) ([]Student, error)
		CountStudents(ctx context.Context, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		repo     Repository
		attSvc   *attendance.Service
		evalRepo evaluation.Repository
		achRepo  achievement.Repository
		nowFunc  func() time.Time
	}
)

// Overview is what a guardian sees for one child: enrollment, accumulated
// points, attendance over the last 30 days, and the latest badges and
// evaluations.
type Overview struct {
	Student
	AttendancePct     int                       `json:"attendance_pct"`
	Achievements      []achievement.Achievement `json:"achievements"`
	RecentEvaluations []evaluation.Evaluation   `json:"recent_evaluations"`
}

// RosterEntry is a student on a class list together with the day's recorded
// attendance, empty when nothing was recorded yet.
type RosterEntry struct {
	Student
	AttendanceStatus string `json:"attendance_status"`
}

func NewService(repo Repository, attSvc *attendance.Service, evalRepo evaluation.Repository, achRepo achievement.Repository) *Service {
	return &Service{
		repo:     repo,
		attSvc:   attSvc,
		evalRepo: evalRepo,
		achRepo:  achRepo,
		nowFunc:  func() time.Time { return time.Now().UTC() },
	}
}

var _ evaluation.StudentPoints = (*Service)(nil)

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	stu := Student{
		Name:       ns.Name,
		BirthDate:  ns.BirthDate.UTC(),
		Specialty:  ns.Specialty,
		Level:      ns.Level,
		GuardianID: ns.GuardianID,
		Avatar:     ns.Avatar,
		CreatedAt:  svc.nowFunc(),
	}
	return svc.repo.CreateStudent(ctx, stu)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudent(ctx, GetFilter{ID: id})
}

// GetForGuardian fetches a student only if they belong to the guardian;
// other families' students are indistinguishable from nonexistent ones.
func (svc *Service) GetForGuardian(ctx context.Context, id, guardianID string) (Student, error) {
	return svc.repo.GetStudent(ctx, GetFilter{ID: id, GuardianID: guardianID})
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, filter)
}

func (svc *Service) IncrementPoints(ctx context.Context, id string, delta int, exec ...core.DBExecutor) error {
	return svc.repo.IncrementPoints(ctx, id, delta, exec...)
}

func (svc *Service) Leaderboard(ctx context.Context) ([]Student, error) {
	return svc.repo.TopStudents(ctx, leaderboardDefault)
}

func (svc *Service) Count(ctx context.Context) (int, error) {
	return svc.repo.CountStudents(ctx)
}

// GuardianOverview assembles the per-child summary for a guardian's home
// screen.
func (svc *Service) GuardianOverview(ctx context.Context, guardianID string) ([]Overview, error) {
	children, err := svc.repo.QueryStudents(ctx, &QueryFilter{GuardianID: guardianID})
	if err != nil {
		return nil, err
	}

	now := svc.nowFunc()
	overviews := make([]Overview, 0, len(children))
	for _, child := range children {
		atts, err := svc.attSvc.Query(ctx, &attendance.QueryFilter{
			StudentID: child.ID,
			From:      now.Add(-overviewWindow),
		})
		if err != nil {
			return nil, errors.Wrap(err, "loading attendance")
		}

		achs, err := svc.achRepo.QueryAchievements(ctx, &achievement.QueryFilter{StudentID: child.ID})
		if err != nil {
			return nil, errors.Wrap(err, "loading achievements")
		}
		if len(achs) > recentItemsLimit {
			achs = achs[:recentItemsLimit]
		}

		evals, err := svc.evalRepo.QueryEvaluations(ctx, &evaluation.QueryFilter{
			StudentID: child.ID,
			Limit:     recentItemsLimit,
		})
		if err != nil {
			return nil, errors.Wrap(err, "loading evaluations")
		}

		overviews = append(overviews, Overview{
			Student:           child,
			AttendancePct:     attendancePct(atts),
			Achievements:      achs,
			RecentEvaluations: evals,
		})
	}
	return overviews, nil
}

// Roster lists the students of a class together with the attendance already
// recorded for them on `day`, for the teacher's roll call screen.
func (svc *Service) Roster(ctx context.Context, specialty, level, class string, day time.Time) ([]RosterEntry, error) {
	students, err := svc.repo.QueryStudents(ctx, &QueryFilter{Specialty: specialty, Level: level})
	if err != nil {
		return nil, err
	}

	dayStart := day.UTC().Truncate(24 * time.Hour)
	atts, err := svc.attSvc.Query(ctx, &attendance.QueryFilter{
		Class: class,
		From:  dayStart,
		To:    dayStart.Add(24 * time.Hour),
	})
	if err != nil {
		return nil, errors.Wrap(err, "loading attendance")
	}
	statusByStudent := make(map[string]string, len(atts))
	for _, att := range atts {
		statusByStudent[att.StudentID] = att.Status
	}

	roster := make([]RosterEntry, 0, len(students))
	for _, stu := range students {
		roster = append(roster, RosterEntry{
			Student:          stu,
			AttendanceStatus: statusByStudent[stu.ID],
		})
	}
	return roster, nil
}

// attendancePct is the share of records marked present over the window,
// rounded to a whole percentage. Late does not count as present.
func attendancePct(atts []attendance.Attendance) int {
	if len(atts) == 0 {
		return 0
	}
	var present int
	for _, att := range atts {
		if att.Status == attendance.StatusPresent {
			present++
		}
	}
	return int(math.Round(float64(present) / float64(len(atts)) * 100))
}

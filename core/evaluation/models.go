package evaluation

import (
	"time"

	"github.com/Eddy-C127/dance-academy/core"
)

// Uniform states
const (
	UniformComplete   = "complete"
	UniformIncomplete = "incomplete"
	UniformAbsent     = "absent"
)

// Progress levels
const (
	ProgressOutstanding        = "outstanding"
	ProgressExpected           = "expected"
	ProgressNeedsReinforcement = "needs-reinforcement"
)

// Point award rule: each bonus is granted independently, on top of the others.
const (
	perfectDiscipline    = 5
	highParticipation    = 8
	defaultParticipation = 5 // mid-scale, matches the submission form default

	disciplineBonus    = 20
	participationBonus = 15
	progressBonus      = 30
	uniformBonus       = 5
)

// Evaluation is a teacher's structured assessment of one student on one day.
// Records are written once at submission and never mutated.
type Evaluation struct {
	ID            string    `json:"id" db:"id"`
	StudentID     string    `json:"student_id" db:"student_id"`
	TeacherID     string    `json:"teacher_id" db:"teacher_id"`
	Uniform       string    `json:"uniform" db:"uniform"`
	Discipline    int       `json:"discipline" db:"discipline"`
	Participation int       `json:"participation" db:"participation"`
	Progress      string    `json:"progress" db:"progress"`
	Comments      string    `json:"comments" db:"comments"`
	Date          time.Time `json:"date" db:"date"` // UTC
}

// Score computes the point award for this evaluation. The four bonuses are
// additive with no interaction effects, so the result is order-independent
// and ranges from 0 (no condition met) to 70 (all four met).
func (e Evaluation) Score() int {
	var pts int
	if e.Discipline == perfectDiscipline {
		pts += disciplineBonus
	}
	if e.Participation >= highParticipation {
		pts += participationBonus
	}
	if e.Progress == ProgressOutstanding {
		pts += progressBonus
	}
	if e.Uniform == UniformComplete {
		pts += uniformBonus
	}
	return pts
}

// NewEvaluation contains a teacher's submission. Discipline is a pointer so a
// 0 rating still counts as provided; Participation falls back to the form's
// mid-scale default when omitted.
type NewEvaluation struct {
	StudentID     string `json:"student_id" validate:"required"`
	Uniform       string `json:"uniform" validate:"required,oneof=complete incomplete absent"`
	Discipline    *int   `json:"discipline" validate:"required,gte=0,lte=5"`
	Participation int    `json:"participation" validate:"omitempty,gte=1,lte=10"`
	Progress      string `json:"progress" validate:"required,oneof=outstanding expected needs-reinforcement"`
	Comments      string `json:"comments"`
}

func (ne *NewEvaluation) Validate() error {
	ne.Comments = core.CleanString(ne.Comments)
	if ne.Participation == 0 {
		ne.Participation = defaultParticipation
	}
	return core.Validate.Struct(ne)
}

// Result is a created evaluation together with the points it awarded.
type Result struct {
	Evaluation
	PointsAwarded int `json:"points_awarded"`
}

type QueryFilter struct {
	StudentID string
	TeacherID string
	From      time.Time
	To        time.Time
	Limit     int
}

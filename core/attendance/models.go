package attendance

import (
	"time"

	"github.com/Eddy-C127/dance-academy/core"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

type Attendance struct {
	ID        string    `json:"id" db:"id"`
	StudentID string    `json:"student_id" db:"student_id"`
	TeacherID string    `json:"teacher_id" db:"teacher_id"`
	Class     string    `json:"class" db:"class"`
	Date      time.Time `json:"date" db:"date"` // UTC
	Status    string    `json:"status" db:"status"`
}

// NewAttendance contains information needed to record a student's attendance.
// The recording teacher comes from the session, never from the payload.
type NewAttendance struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present late absent"`
	Class     string `json:"class"`
}

func (na *NewAttendance) Validate() error {
	na.Class = core.CleanString(na.Class)
	if na.Class == "" {
		na.Class = core.Conf.Academy.DefaultClass
	}
	return core.Validate.Struct(na)
}

type QueryFilter struct {
	StudentID string
	TeacherID string
	Class     string
	From      time.Time
	To        time.Time
}

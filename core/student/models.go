package student

import (
	"time"

	"github.com/Eddy-C127/dance-academy/core"
)

// Student is an enrolled dancer. Points accumulate from evaluation awards
// and only ever grow; GuardianID links the student to the parent account
// that sees their progress and pays their bills.
type Student struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	BirthDate  time.Time `json:"birth_date" db:"birth_date"`
	Specialty  string    `json:"specialty" db:"specialty"`
	Level      string    `json:"level" db:"level"`
	GuardianID string    `json:"guardian_id" db:"guardian_id"`
	Points     int       `json:"points" db:"points"`
	Avatar     string    `json:"avatar" db:"avatar"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
}

type NewStudent struct {
	Name       string    `json:"name" validate:"required"`
	BirthDate  time.Time `json:"birth_date" validate:"required"`
	Specialty  string    `json:"specialty" validate:"required"`
	Level      string    `json:"level" validate:"required"`
	GuardianID string    `json:"guardian_id" validate:"required"`
	Avatar     string    `json:"avatar" validate:"omitempty,url"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Specialty = core.CleanString(ns.Specialty)
	ns.Level = core.CleanString(ns.Level)
	return core.Validate.Struct(ns)
}

type QueryFilter struct {
	GuardianID string
	Specialty  string
	Level      string
}

// GetFilter selects a single student. GuardianID, when set, restricts the
// match to that guardian's own children.
type GetFilter struct {
	ID         string
	GuardianID string
}

package achievement

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
)

var ErrNotFound = errors.New("achievement not found")

// Achievement is a badge earned by a student, shown on the guardian's
// overview next to the cumulative point total.
type Achievement struct {
	ID          string    `json:"id" db:"id"`
	StudentID   string    `json:"student_id" db:"student_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	Date        time.Time `json:"date" db:"date"` // UTC
}

type NewAchievement struct {
	StudentID   string `json:"student_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (na *NewAchievement) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return core.Validate.Struct(na)
}

type QueryFilter struct {
	StudentID string
}

type Repository interface {
	CreateAchievement(ctx context.Context, ach Achievement, exec ...core.DBExecutor) (Achievement, error)
	// QueryAchievements returns matches newest first.
	QueryAchievements(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) ([]Achievement, error)
}

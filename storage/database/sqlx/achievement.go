package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/achievement"
)

const achievementColumns = "id, student_id, title, description, icon, date"

type achievementRepository struct {
	repository
}

var _ achievement.Repository = (*achievementRepository)(nil) // interface compliance check

func NewAchievementRepository(exec core.DBExecutor) *achievementRepository {
	return &achievementRepository{repository{exec: exec}}
}

func (repo achievementRepository) CreateAchievement(ctx context.Context, ach achievement.Achievement, exec ...core.DBExecutor) (achievement.Achievement, error) {
	ach.ID = uuid.New().String()
	q := `INSERT INTO achievements (` + achievementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		ach.ID, ach.StudentID, ach.Title, ach.Description, ach.Icon, ach.Date)
	if err != nil {
		return achievement.Achievement{}, errors.Wrap(err, "inserting achievement")
	}
	return ach, nil
}

func (repo achievementRepository) QueryAchievements(ctx context.Context, filter *achievement.QueryFilter, exec ...core.DBExecutor) ([]achievement.Achievement, error) {
	q := "SELECT " + achievementColumns + " FROM achievements"
	var args []interface{}

	if filter != nil && filter.StudentID != "" {
		q += " WHERE student_id = $1"
		args = append(args, filter.StudentID)
	}
	q += " ORDER BY date DESC"

	var achs []achievement.Achievement
	if err := repo.getExec(exec).SelectContext(ctx, &achs, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying achievements")
	}
	return achs, nil
}

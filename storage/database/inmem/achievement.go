package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/achievement"
)

type achievementRepository struct {
	db *DB
}

var _ achievement.Repository = (*achievementRepository)(nil) // interface compliance check

func NewAchievementRepository(db *DB) *achievementRepository {
	return &achievementRepository{db: db}
}

func (repo *achievementRepository) CreateAchievement(ctx context.Context, ach achievement.Achievement, exec ...core.DBExecutor) (achievement.Achievement, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	ach.ID = uuid.New().String()
	repo.db.achievements[ach.ID] = &ach
	return ach, nil
}

func (repo *achievementRepository) QueryAchievements(ctx context.Context, filter *achievement.QueryFilter, exec ...core.DBExecutor) ([]achievement.Achievement, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var achs []achievement.Achievement
	for _, ach := range repo.db.achievements {
		if filter != nil && filter.StudentID != "" && ach.StudentID != filter.StudentID {
			continue
		}
		achs = append(achs, *ach)
	}
	sort.Slice(achs, func(i, j int) bool { return achs[i].Date.After(achs[j].Date) })
	return achs, nil
}

package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, stu student.Student, exec ...core.DBExecutor) (student.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	stu.ID = uuid.New().String()
	repo.db.students[stu.ID] = &stu
	return stu, nil
}

func (repo *studentRepository) GetStudent(ctx context.Context, filter student.GetFilter, exec ...core.DBExecutor) (student.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	stu, ok := repo.db.students[filter.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	if filter.GuardianID != "" && stu.GuardianID != filter.GuardianID {
		return student.Student{}, student.ErrNotFound
	}
	return *stu, nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter *student.QueryFilter, exec ...core.DBExecutor) ([]student.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var students []student.Student
	for _, stu := range repo.db.students {
		if filter != nil {
			if filter.GuardianID != "" && stu.GuardianID != filter.GuardianID {
				continue
			}
			if filter.Specialty != "" && stu.Specialty != filter.Specialty {
				continue
			}
			if filter.Level != "" && stu.Level != filter.Level {
				continue
			}
		}
		students = append(students, *stu)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}

func (repo *studentRepository) IncrementPoints(ctx context.Context, id string, delta int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	stu, ok := repo.db.students[id]
	if !ok {
		return student.ErrNotFound
	}
	stu.Points += delta
	return nil
}

func (repo *studentRepository) TopStudents(ctx context.Context, limit int, exec ...core.DBExecutor) ([]student.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	students := make([]student.Student, 0, len(repo.db.students))
	for _, stu := range repo.db.students {
		students = append(students, *stu)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Points > students[j].Points })
	if len(students) > limit {
		students = students[:limit]
	}
	return students, nil
}

func (repo *studentRepository) CountStudents(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return len(repo.db.students), nil
}

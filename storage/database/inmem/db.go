// Package inmemdb backs the domain repositories with in-memory tables for
// handler and service tests. Repositories ignore the executor argument; the
// transactor returned by BeginTx is a no-op so transactional services run
// unchanged.
package inmemdb

import (
	"context"
	"database/sql"
	"sync"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/achievement"
	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
	"github.com/Eddy-C127/dance-academy/core/event"
	"github.com/Eddy-C127/dance-academy/core/payment"
	"github.com/Eddy-C127/dance-academy/core/student"
	"github.com/Eddy-C127/dance-academy/core/user"
)

type DB struct {
	mu sync.RWMutex

	users        map[string]*user.User
	students     map[string]*student.Student
	attendance   map[string]*attendance.Attendance
	evaluations  map[string]*evaluation.Evaluation
	achievements map[string]*achievement.Achievement
	payments     map[string]*payment.Payment
	events       map[string]*event.Event
}

var _ core.DB = (*DB)(nil)

func NewDB() *DB {
	return &DB{
		users:        make(map[string]*user.User),
		students:     make(map[string]*student.Student),
		attendance:   make(map[string]*attendance.Attendance),
		evaluations:  make(map[string]*evaluation.Evaluation),
		achievements: make(map[string]*achievement.Achievement),
		payments:     make(map[string]*payment.Payment),
		events:       make(map[string]*event.Event),
	}
}

func (db *DB) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (db *DB) GetContext(context.Context, interface{}, string, ...interface{}) error    { return nil }
func (db *DB) SelectContext(context.Context, interface{}, string, ...interface{}) error { return nil }

func (db *DB) BeginTx(context.Context, *sql.TxOptions) (core.DBTransactor, error) {
	return noopTx{}, nil
}

type noopTx struct{}

func (noopTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (noopTx) GetContext(context.Context, interface{}, string, ...interface{}) error    { return nil }
func (noopTx) SelectContext(context.Context, interface{}, string, ...interface{}) error { return nil }
func (noopTx) Commit() error                                                            { return nil }
func (noopTx) Rollback() error                                                          { return nil }

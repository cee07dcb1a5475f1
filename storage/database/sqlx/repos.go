// Package sqlxrepos implements the domain repositories on PostgreSQL
// through sqlx. Queries are written with "?" bindvars and rebound for
// Postgres so slice arguments can go through sqlx.In.
package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
)

type repository struct {
	exec core.DBExecutor
}

// getExec prefers the executor a service passed in, typically an open
// transaction, over the repository's own connection.
func (repo repository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

// rebind expands slice args and converts "?" bindvars to "$N".
func rebind(query string, args ...interface{}) (string, []interface{}, error) {
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, errors.Wrap(err, "binding query args")
	}
	return sqlx.Rebind(sqlx.DOLLAR, q), expanded, nil
}

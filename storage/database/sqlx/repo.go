package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campusdesk/portal/core"
)

const uniqueViolation = "23505"

type baseRepository struct {
	exec core.DBExecutor
}

func (repo baseRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

// selectInto scans all the rows of the query into dest, a pointer to a slice of structs.
func selectInto(ctx context.Context, exec core.DBExecutor, dest interface{}, query string, args ...interface{}) error {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	return sqlx.StructScan(rows, dest)
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}

func rowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	return int(n), err
}

// whereBuilder accumulates AND conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// add appends cond, where "?" stands for the next positional argument.
func (wb *whereBuilder) add(cond string, arg interface{}) {
	wb.args = append(wb.args, arg)
	wb.conds = append(wb.conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(wb.args)), 1))
}

func (wb *whereBuilder) String() string {
	if len(wb.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(wb.conds, " AND ")
}

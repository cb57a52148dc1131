package core

import (
	"context"
	"database/sql"
	"strings"
)

// DBExecutor is satisfied by *sql.DB and *sql.Tx.
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// FilterOrderings keeps the orderings on allowed fields, mapping them to their column names.
func FilterOrderings(orderings []DBOrdering, allowed map[string]string) []DBOrdering {
	if len(orderings) == 0 {
		return nil
	}
	res := make([]DBOrdering, 0, len(orderings))
	for _, ord := range orderings {
		if col, ok := allowed[ord.Field]; ok {
			res = append(res, DBOrdering{Field: col, Ascending: ord.Ascending})
		}
	}
	return res
}

// OrderByClause joins orderings for an ORDER BY clause.
func OrderByClause(orderings []DBOrdering) string {
	parts := make([]string, 0, len(orderings))
	for _, ord := range orderings {
		parts = append(parts, ord.String())
	}
	return strings.Join(parts, ", ")
}

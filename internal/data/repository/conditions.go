package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// conditions accumulates positional WHERE clauses for filter queries.
type conditions struct {
	clauses []string
	args    []any
}

// add appends a clause; expr must contain a single %d for the placeholder index.
func (c *conditions) add(expr string, value any) {
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf(expr, len(c.args)))
}

func (c *conditions) addRaw(expr string) {
	c.clauses = append(c.clauses, expr)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

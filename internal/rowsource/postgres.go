package rowsource

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"
)

// Querier is the subset of pgxpool.Pool the Postgres row source uses.
// pgxmock's pool satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// Table and column names come from candidate lists in code, never from user
// input, but validate anyway before interpolating into SQL.
var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type postgresClient struct {
	db Querier
}

// NewPostgres creates a row-source client over a direct pgx connection.
// PgError codes (42P01, 42703) pass through unchanged for the classifier.
func NewPostgres(db Querier) Client {
	return &postgresClient{db: db}
}

func (c *postgresClient) Select(ctx context.Context, q Query) ([]GenericRow, error) {
	for _, ident := range []string{q.Table, q.FilterColumn} {
		if !identRe.MatchString(ident) {
			return nil, eris.Errorf("postgres: invalid identifier %q", ident)
		}
	}

	sql := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1",
		pgx.Identifier{q.Table}.Sanitize(),
		pgx.Identifier{q.FilterColumn}.Sanitize(),
	)
	if q.OrderColumn != "" {
		if !identRe.MatchString(q.OrderColumn) {
			return nil, eris.Errorf("postgres: invalid identifier %q", q.OrderColumn)
		}
		dir := "DESC"
		if q.Ascending {
			dir = "ASC"
		}
		sql += fmt.Sprintf(" ORDER BY %s %s", pgx.Identifier{q.OrderColumn}.Sanitize(), dir)
	}
	if q.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := c.db.Query(ctx, sql, q.FilterValue)
	if err != nil {
		return nil, asSourceError(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []GenericRow
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, eris.Wrap(err, "postgres: read row values")
		}
		row := make(GenericRow, len(fields))
		for i, fd := range fields {
			if i < len(values) {
				row[string(fd.Name)] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, asSourceError(err)
	}
	return out, nil
}

func (c *postgresClient) Close() error {
	c.db.Close()
	return nil
}

// asSourceError converts a pgx failure into a SourceError, keeping the
// SQLSTATE code when one is present.
func asSourceError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &SourceError{Code: pgErr.Code, Message: pgErr.Message}
	}
	return &SourceError{Message: err.Error()}
}

package rowsource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// sqliteClient reads from a locally exported snapshot database. Analysts
// use these offline copies of the data service; they exhibit the same
// schema drift as the live deployments, and sqlite's "no such table" /
// "no such column" message shapes are covered by Classify.
type sqliteClient struct {
	db *sql.DB
}

// OpenSnapshot opens a SQLite snapshot file as a row source.
func OpenSnapshot(path string) (Client, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open snapshot")
	}
	if _, err := db.Exec("PRAGMA query_only=ON"); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: set query_only")
	}
	return &sqliteClient{db: db}, nil
}

func (c *sqliteClient) Select(ctx context.Context, q Query) ([]GenericRow, error) {
	for _, ident := range []string{q.Table, q.FilterColumn} {
		if !identRe.MatchString(ident) {
			return nil, eris.Errorf("sqlite: invalid identifier %q", ident)
		}
	}

	query := fmt.Sprintf(`SELECT * FROM "%s" WHERE "%s" = ?`, q.Table, q.FilterColumn)
	if q.OrderColumn != "" {
		if !identRe.MatchString(q.OrderColumn) {
			return nil, eris.Errorf("sqlite: invalid identifier %q", q.OrderColumn)
		}
		dir := "DESC"
		if q.Ascending {
			dir = "ASC"
		}
		query += fmt.Sprintf(` ORDER BY "%s" %s`, q.OrderColumn, dir)
	}
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query, q.FilterValue)
	if err != nil {
		return nil, &SourceError{Message: err.Error()}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: read columns")
	}

	var out []GenericRow
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan row")
		}
		row := make(GenericRow, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &SourceError{Message: err.Error()}
	}
	return out, nil
}

func (c *sqliteClient) Close() error {
	return c.db.Close()
}

package rowsource

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_SelectScansGenericRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT \* FROM "purchase_history" WHERE "company_id" = \$1 ORDER BY "trade_date" DESC LIMIT 50`).
		WithArgs("c-1").
		WillReturnRows(pgxmock.NewRows([]string{"Company_ID", "Quantity"}).
			AddRow("c-1", 12.5).
			AddRow("c-1", nil))

	c := NewPostgres(mock)
	rows, err := c.Select(context.Background(), Query{
		Table:        "purchase_history",
		FilterColumn: "company_id",
		FilterValue:  "c-1",
		OrderColumn:  "trade_date",
		Limit:        50,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c-1", rows[0]["Company_ID"])
	assert.Equal(t, 12.5, rows[0]["Quantity"])
	assert.Nil(t, rows[1]["Quantity"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_NoOrderClause(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE "company_id" = \$1$`).
		WithArgs("c-2").
		WillReturnRows(pgxmock.NewRows([]string{"email"}))

	c := NewPostgres(mock)
	rows, err := c.Select(context.Background(), Query{
		Table:        "contacts",
		FilterColumn: "company_id",
		FilterValue:  "c-2",
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_PgErrorCodePassesThrough(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT \* FROM "company_overview"`).
		WithArgs("c-1").
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "company_overview" does not exist`})

	c := NewPostgres(mock)
	_, err = c.Select(context.Background(), Query{
		Table:        "company_overview",
		FilterColumn: "company_id",
		FilterValue:  "c-1",
	})
	require.Error(t, err)
	assert.Equal(t, ClassMissingTable, Classify(err))
}

func TestPostgres_RejectsInvalidIdentifiers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	c := NewPostgres(mock)

	_, err = c.Select(context.Background(), Query{Table: "x; DROP TABLE y", FilterColumn: "company_id", FilterValue: "1"})
	assert.Error(t, err)

	_, err = c.Select(context.Background(), Query{Table: "t", FilterColumn: `a" OR "1"="1`, FilterValue: "1"})
	assert.Error(t, err)

	_, err = c.Select(context.Background(), Query{Table: "t", FilterColumn: "company_id", FilterValue: "1", OrderColumn: "a b"})
	assert.Error(t, err)
}

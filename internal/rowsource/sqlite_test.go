package rowsource

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSnapshot creates a snapshot database with a drifted purchase table.
func seedSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE purchase_records (
			CompanyID TEXT,
			qty REAL,
			trade_date TEXT
		);
		INSERT INTO purchase_records VALUES ('c-1', 10, '2025-01-02');
		INSERT INTO purchase_records VALUES ('c-1', 20, '2025-03-04');
		INSERT INTO purchase_records VALUES ('c-2', 5, '2025-02-01');
	`)
	require.NoError(t, err)
	return path
}

func TestSQLite_SelectFiltersAndOrders(t *testing.T) {
	c, err := OpenSnapshot(seedSnapshot(t))
	require.NoError(t, err)
	defer c.Close()

	rows, err := c.Select(context.Background(), Query{
		Table:        "purchase_records",
		FilterColumn: "CompanyID",
		FilterValue:  "c-1",
		OrderColumn:  "trade_date",
		Limit:        10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-03-04", rows[0]["trade_date"])
	assert.Equal(t, 20.0, rows[0]["qty"])
}

func TestSQLite_MissingTableClassifies(t *testing.T) {
	c, err := OpenSnapshot(seedSnapshot(t))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Select(context.Background(), Query{
		Table:        "purchase_history",
		FilterColumn: "CompanyID",
		FilterValue:  "c-1",
	})
	require.Error(t, err)
	assert.Equal(t, ClassMissingTable, Classify(err))
}

func TestSQLite_MissingColumnClassifies(t *testing.T) {
	c, err := OpenSnapshot(seedSnapshot(t))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Select(context.Background(), Query{
		Table:        "purchase_records",
		FilterColumn: "company_id",
		FilterValue:  "c-1",
	})
	require.Error(t, err)
	assert.Equal(t, ClassMissingColumn, Classify(err))
}

func TestSQLite_MissingOrderColumnClassifies(t *testing.T) {
	c, err := OpenSnapshot(seedSnapshot(t))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Select(context.Background(), Query{
		Table:        "purchase_records",
		FilterColumn: "CompanyID",
		FilterValue:  "c-1",
		OrderColumn:  "purchase_date",
	})
	require.Error(t, err)
	assert.Equal(t, ClassMissingColumn, Classify(err))
}

package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tradelens/internal/rowsource"
)

// fakeSource scripts per-table/column responses and records every query.
type fakeSource struct {
	responses map[string]fakeResponse // key: table or table+"/"+filterColumn
	queries   []rowsource.Query
}

type fakeResponse struct {
	rows []rowsource.GenericRow
	err  error
}

func (f *fakeSource) Select(_ context.Context, q rowsource.Query) ([]rowsource.GenericRow, error) {
	f.queries = append(f.queries, q)
	if r, ok := f.responses[q.Table+"/"+q.FilterColumn]; ok {
		return r.rows, r.err
	}
	if r, ok := f.responses[q.Table]; ok {
		return r.rows, r.err
	}
	return nil, &rowsource.SourceError{Code: "42P01", Message: "relation does not exist"}
}

func (f *fakeSource) Close() error { return nil }

func (f *fakeSource) queriedTables() []string {
	var out []string
	for _, q := range f.queries {
		out = append(out, q.Table)
	}
	return out
}

var threeRows = []rowsource.GenericRow{{"id": "1"}, {"id": "2"}, {"id": "3"}}

func TestFetchFirstAvailable_SkipsMissingTable(t *testing.T) {
	src := &fakeSource{responses: map[string]fakeResponse{
		"a": {err: &rowsource.SourceError{Code: "42P01", Message: `relation "a" does not exist`}},
		"b": {rows: threeRows},
	}}
	f := NewFetcher(src)

	rows, err := f.FetchFirstAvailable(context.Background(), FetchSpec{
		Entity: "test",
		Tables: []string{"a", "b", "c"},
	}, "c-1")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	// c is never queried once b succeeds.
	assert.NotContains(t, src.queriedTables(), "c")
}

func TestFetchFirstAvailable_EmptySuccessShortCircuits(t *testing.T) {
	src := &fakeSource{responses: map[string]fakeResponse{
		"a": {rows: nil},
	}}
	f := NewFetcher(src)

	rows, err := f.FetchFirstAvailable(context.Background(), FetchSpec{
		Entity: "test",
		Tables: []string{"a", "b"},
	}, "c-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, []string{"a"}, src.queriedTables())
}

func TestFetchFirstAvailable_TriesNextFilterColumn(t *testing.T) {
	src := &fakeSource{responses: map[string]fakeResponse{
		"a/company_id": {err: &rowsource.SourceError{Code: "42703", Message: `column "company_id" does not exist`}},
		"a/companyid":  {rows: threeRows},
	}}
	f := NewFetcher(src)

	rows, err := f.FetchFirstAvailable(context.Background(), FetchSpec{
		Entity: "test",
		Tables: []string{"a"},
	}, "c-1")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestFetchFirstAvailable_RetriesWithoutOrderClause(t *testing.T) {
	// Script: ordered query fails with missing column, unordered succeeds.
	calls := 0
	custom := &scriptedSource{fn: func(q rowsource.Query) ([]rowsource.GenericRow, error) {
		calls++
		if q.OrderColumn != "" {
			return nil, &rowsource.SourceError{Code: "42703", Message: `column "date" does not exist`}
		}
		return threeRows, nil
	}}
	f := NewFetcher(custom)

	rows, err := f.FetchFirstAvailable(context.Background(), FetchSpec{
		Entity:      "test",
		Tables:      []string{"a"},
		OrderColumn: "date",
	}, "c-1")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, 2, calls)
}

func TestFetchFirstAvailable_OtherErrorIsFatal(t *testing.T) {
	src := &fakeSource{responses: map[string]fakeResponse{
		"a": {err: &rowsource.SourceError{Code: "57014", Message: "statement timeout"}},
	}}
	f := NewFetcher(src)

	_, err := f.FetchFirstAvailable(context.Background(), FetchSpec{
		Entity: "test",
		Tables: []string{"a", "b"},
	}, "c-1")
	require.Error(t, err)
	// b is never tried after a fatal error.
	assert.Equal(t, []string{"a"}, src.queriedTables())
}

func TestFetchFirstAvailable_AllCandidatesMissingYieldsNoRows(t *testing.T) {
	src := &fakeSource{responses: map[string]fakeResponse{}}
	f := NewFetcher(src)

	rows, err := f.FetchFirstAvailable(context.Background(), FetchSpec{
		Entity: "test",
		Tables: []string{"a", "b"},
	}, "c-1")
	require.NoError(t, err)
	assert.Nil(t, rows)
}

// scriptedSource delegates Select to a closure.
type scriptedSource struct {
	fn func(q rowsource.Query) ([]rowsource.GenericRow, error)
}

func (s *scriptedSource) Select(_ context.Context, q rowsource.Query) ([]rowsource.GenericRow, error) {
	return s.fn(q)
}

func (s *scriptedSource) Close() error { return nil }

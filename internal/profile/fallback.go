package profile

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/tradelens/internal/rowsource"
)

// FetchSpec names the ordered candidate tables and filter columns for one
// entity, plus the ordering and limit the query should carry.
type FetchSpec struct {
	Entity        string
	Tables        []string
	FilterColumns []string
	OrderColumn   string
	Ascending     bool
	Limit         int
}

// filterColumnCandidates covers the company-key renames seen in the wild.
var filterColumnCandidates = []string{"company_id", "companyid", "company"}

// Fetcher resolves one FetchSpec against the row source, walking candidate
// tables and filter columns in order until one query succeeds.
type Fetcher struct {
	source rowsource.Client
}

// NewFetcher creates a Fetcher over a row-source client. The client is an
// explicit dependency so the chain is testable with a fake store.
func NewFetcher(source rowsource.Client) *Fetcher {
	return &Fetcher{source: source}
}

// FetchFirstAvailable walks the spec's candidate tables in list order.
// Per table it tries each candidate filter column; a missing-column
// failure triggers one retry without the order clause before the next
// filter column is tried, and a missing-table failure skips the rest of
// the table's variants. The first successful response wins outright, even
// when empty: results are never unioned across candidate tables, because
// candidate tables are alternate renames of the same relation, not
// complementary shards. Anything classified as Other is fatal.
func (f *Fetcher) FetchFirstAvailable(ctx context.Context, spec FetchSpec, companyID string) ([]rowsource.GenericRow, error) {
	log := zap.L().With(
		zap.String("entity", spec.Entity),
		zap.String("company_id", companyID),
	)

	cols := spec.FilterColumns
	if len(cols) == 0 {
		cols = filterColumnCandidates
	}

	for _, table := range spec.Tables {
	columns:
		for _, col := range cols {
			q := rowsource.Query{
				Table:        table,
				FilterColumn: col,
				FilterValue:  companyID,
				OrderColumn:  spec.OrderColumn,
				Ascending:    spec.Ascending,
				Limit:        spec.Limit,
			}

			rows, err := f.source.Select(ctx, q)
			if err == nil {
				log.Debug("fetch: candidate succeeded",
					zap.String("table", table),
					zap.String("filter_column", col),
					zap.Int("rows", len(rows)),
				)
				return rows, nil
			}

			switch rowsource.Classify(err) {
			case rowsource.ClassMissingTable:
				log.Debug("fetch: table unavailable, trying next candidate",
					zap.String("table", table),
				)
				break columns
			case rowsource.ClassMissingColumn:
				// Could be the filter column or the order clause. Retry
				// once without ordering before giving up on this variant.
				if q.OrderColumn != "" {
					q.OrderColumn = ""
					rows, retryErr := f.source.Select(ctx, q)
					if retryErr == nil {
						log.Debug("fetch: succeeded without order clause",
							zap.String("table", table),
							zap.String("filter_column", col),
						)
						return rows, nil
					}
					if rowsource.Classify(retryErr) == rowsource.ClassMissingTable {
						break columns
					}
					if rowsource.Classify(retryErr) == rowsource.ClassOther {
						return nil, eris.Wrapf(retryErr, "fetch %s: table %s", spec.Entity, table)
					}
				}
				continue
			default:
				return nil, eris.Wrapf(err, "fetch %s: table %s", spec.Entity, table)
			}
		}
	}

	// Every candidate was a schema-drift miss: this deployment simply does
	// not carry the entity.
	log.Debug("fetch: no candidate table available")
	return nil, nil
}

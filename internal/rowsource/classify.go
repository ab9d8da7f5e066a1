package rowsource

import (
	"errors"
	"regexp"
)

// Classification buckets a source failure into the recovery paths the
// fallback resolver understands.
type Classification int

const (
	// ClassOther is any failure that is not a schema-drift artifact.
	// It is fatal for the fetch that raised it.
	ClassOther Classification = iota
	// ClassMissingTable means the relation does not exist in this
	// deployment. The next candidate table should be tried.
	ClassMissingTable
	// ClassMissingColumn means a referenced column does not exist.
	// The query should be retried without the offending clause.
	ClassMissingColumn
)

func (c Classification) String() string {
	switch c {
	case ClassMissingTable:
		return "missing_table"
	case ClassMissingColumn:
		return "missing_column"
	default:
		return "other"
	}
}

// Postgres SQLSTATE and PostgREST schema-cache codes.
const (
	codeUndefinedTable   = "42P01"
	codeUndefinedColumn  = "42703"
	codeTableNotInCache  = "PGRST205"
	codeColumnNotInCache = "PGRST204"
)

// Message shapes observed across backends. Column phrases are checked
// before table phrases: PostgREST mentions the schema cache in both cases,
// and "does not exist" alone is ambiguous.
var (
	missingColumnRe = regexp.MustCompile(`(?i)(column .+ does not exist|no such column|could not find the '.+' column)`)
	missingTableRe  = regexp.MustCompile(`(?i)(relation .+ does not exist|no such table|could not find the table|schema cache)`)
)

// Classify inspects a Select error and returns its recovery classification.
// All code- and phrase-based branching lives here so new backend phrasings
// are a one-line addition rather than a change at every call site.
func Classify(err error) Classification {
	var se *SourceError
	if !errors.As(err, &se) {
		return ClassOther
	}

	switch se.Code {
	case codeUndefinedTable, codeTableNotInCache:
		return ClassMissingTable
	case codeUndefinedColumn, codeColumnNotInCache:
		return ClassMissingColumn
	}

	if missingColumnRe.MatchString(se.Message) {
		return ClassMissingColumn
	}
	if missingTableRe.MatchString(se.Message) {
		return ClassMissingTable
	}
	return ClassOther
}

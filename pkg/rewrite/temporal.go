package rewrite

// TemporalFilter pairs a relation name with the temporal clause text
// stripped from a query.
type TemporalFilter struct {
	Relation string
	Clause   string
}

// ExtractTemporal scans sql for temporal clauses ahead of parsing.
// Extraction is not implemented yet: the input passes through unchanged
// and the filter list is always empty. Callers must not rely on any
// clause being stripped.
//
// TODO: strip FOR clauses and named date ranges into TemporalFilters.
func ExtractTemporal(sql string) (string, []TemporalFilter) {
	return sql, nil
}

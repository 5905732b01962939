package domain

import "strings"

// QueryResult is the tabular output of an ad-hoc query, with every value
// rendered as a string by the repository layer.
type QueryResult struct {
	Columns []string
	Rows    [][]string
}

// String renders the result as a tab-separated table for terminal output.
func (r *QueryResult) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.Columns, "\t"))
	for _, row := range r.Rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}

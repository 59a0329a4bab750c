package aggregate

import (
	"fmt"

	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal/errors"
)

// TotalLabel marks a totals row
const TotalLabel = "Total"

// Totals returns a one-row row-set with rs's schema holding the sum of each
// of cols. label, when set, names a text column that receives TotalLabel;
// every other cell is missing.
func Totals(rs *table.RowSet, label string, cols ...string) (*table.RowSet, error) {
	schema := rs.Schema()
	rec := make(table.Record, schema.Len())

	for _, col := range cols {
		values, err := numbers(rs, col, allRows(rs))
		if err != nil {
			return nil, err
		}
		total, err := Sum.Apply(values)
		if err != nil {
			return nil, errors.Wrap(err, "total of "+col)
		}
		idx, _ := schema.Index(col)
		rec[idx] = table.NewNumeric(total)
	}

	if label != "" {
		idx, ok := schema.Index(label)
		if !ok {
			return nil, errors.ColumnNotFound(label, core.NewColumnNotFoundError(label))
		}
		c := schema.At(idx)
		if c.Type != table.ColumnString {
			return nil, errors.TypeMismatch(
				fmt.Sprintf("totals label column %s is %s", label, c.Type), core.ErrMixedTypes)
		}
		rec[idx] = table.NewString(TotalLabel)
	}

	out, err := table.New(schema, []table.Record{rec})
	if err != nil {
		return nil, errors.Wrap(err, "totals")
	}
	return out, nil
}

// WithTotals appends the Totals row to rs
func WithTotals(rs *table.RowSet, label string, cols ...string) (*table.RowSet, error) {
	totals, err := Totals(rs, label, cols...)
	if err != nil {
		return nil, err
	}
	return rs.Concat(totals)
}

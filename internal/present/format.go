package present

import (
	"math"

	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal/errors"
)

// Formatter turns one cell into display text
type Formatter func(table.Value) string

// MoneyCells formats numeric cells with m; other cells keep their text
func MoneyCells(m *MoneyFormatter) Formatter {
	return func(v table.Value) string {
		if f, ok := v.Float(); ok {
			return m.Format(f)
		}
		if v.IsMissing() {
			return m.Format(math.NaN())
		}
		return v.String()
	}
}

// PercentCells formats numeric ratios as percentages
func PercentCells(places int) Formatter {
	return func(v table.Value) string {
		if f, ok := v.Float(); ok {
			return Percent(f, places)
		}
		if v.IsMissing() {
			return ""
		}
		return v.String()
	}
}

// FormatColumns returns a copy of rs where each of cols is a string column
// holding f's output. With no cols every numeric column is formatted.
func FormatColumns(rs *table.RowSet, f Formatter, cols ...string) (*table.RowSet, error) {
	if len(cols) == 0 {
		for _, c := range rs.Schema().Columns() {
			if c.Type == table.ColumnNumeric {
				cols = append(cols, c.Name)
			}
		}
	}
	out := rs
	for _, col := range cols {
		if _, ok := out.Schema().Index(col); !ok {
			return nil, errors.ColumnNotFound(col, core.NewColumnNotFoundError(col))
		}
		next, err := out.WithColumn(table.Column{Name: col, Type: table.ColumnString}, func(r table.Row) table.Value {
			return table.NewString(f(r.Get(col)))
		})
		if err != nil {
			return nil, errors.Wrap(err, "format "+col)
		}
		out = next
	}
	return out, nil
}

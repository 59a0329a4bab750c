// Package normalize fills missing cells and maps free-text values onto
// canonical codes.
package normalize

import (
	"fmt"

	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal/errors"
)

// FillMissing replaces every missing cell of col with value. Present cells are
// untouched, so a second call changes nothing.
func FillMissing(rs *table.RowSet, col string, value table.Value) (*table.RowSet, error) {
	c, ok := rs.Schema().Column(col)
	if !ok {
		return nil, errors.ColumnNotFound(col, core.NewColumnNotFoundError(col))
	}
	if value.IsMissing() {
		return nil, errors.InvalidInput("fill value for " + col + " is missing")
	}
	if !c.Type.Accepts(value.Type()) {
		return nil, errors.TypeMismatch(
			fmt.Sprintf("cannot fill %s column %s with %s", c.Type, col, value.Type()),
			core.NewMixedTypesError(col, string(c.Type), string(value.Type())))
	}
	if c.Categories != nil {
		s, _ := value.Str()
		if !c.Categories.Contains(s) {
			return nil, errors.TypeMismatch(fmt.Sprintf("fill value %q", s), core.ErrNotCategory)
		}
	}

	out, err := rs.WithColumn(c, func(r table.Row) table.Value {
		if v := r.Get(col); !v.IsMissing() {
			return v
		}
		return value
	})
	if err != nil {
		return nil, errors.Wrap(err, "fill "+col)
	}
	return out, nil
}

// FillMissingAll fills every numeric column, like fillna(0) on a frame
func FillMissingAll(rs *table.RowSet, value float64) (*table.RowSet, error) {
	out := rs
	for _, c := range rs.Schema().Columns() {
		if c.Type != table.ColumnNumeric {
			continue
		}
		next, err := FillMissing(out, c.Name, table.NewNumeric(value))
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

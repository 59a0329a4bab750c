package table

import (
	"fmt"

	"sheetops/domain/core"
)

// CategorySet is a closed set of string values with a display order
type CategorySet struct {
	values []string
	rank   map[string]int
}

// NewCategorySet keeps the first occurrence of each value, in argument order
func NewCategorySet(values ...string) *CategorySet {
	c := &CategorySet{rank: make(map[string]int, len(values))}
	for _, v := range values {
		if _, seen := c.rank[v]; seen {
			continue
		}
		c.rank[v] = len(c.values)
		c.values = append(c.values, v)
	}
	return c
}

// Values returns the categories in display order
func (c *CategorySet) Values() []string {
	out := make([]string, len(c.values))
	copy(out, c.values)
	return out
}

func (c *CategorySet) Len() int {
	return len(c.values)
}

func (c *CategorySet) Contains(v string) bool {
	_, ok := c.rank[v]
	return ok
}

// Rank returns the display position of v
func (c *CategorySet) Rank(v string) (int, bool) {
	r, ok := c.rank[v]
	return r, ok
}

// AsCategory marks col as categorical over set. Every non-missing cell must be
// a string inside the set.
func (rs *RowSet) AsCategory(col string, set *CategorySet) (*RowSet, error) {
	idx, ok := rs.schema.Index(col)
	if !ok {
		return nil, core.NewColumnNotFoundError(col)
	}
	for i, row := range rs.rows {
		v := row[idx]
		if v.IsMissing() {
			continue
		}
		s, isStr := v.Str()
		if !isStr || !set.Contains(s) {
			return nil, fmt.Errorf("%w: row %d value %q in column %s", core.ErrNotCategory, i, v.String(), col)
		}
	}

	cols := rs.schema.Columns()
	cols[idx].Type = ColumnCategorical
	cols[idx].Categories = set
	schema, err := NewSchema(cols...)
	if err != nil {
		return nil, err
	}
	return &RowSet{schema: schema, rows: rs.rows}, nil
}

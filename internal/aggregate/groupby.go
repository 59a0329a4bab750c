package aggregate

import (
	"sort"

	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal/errors"
)

// Grouped is a row-set partitioned by the values of one column
type Grouped struct {
	src    *table.RowSet
	by     table.Column
	cols   []string
	keys   []table.Value
	groups map[string][]int
}

// GroupBy partitions rs by column by. Rows with a missing key are dropped.
// With no cols every numeric column other than by is aggregated.
func GroupBy(rs *table.RowSet, by string, cols ...string) (*Grouped, error) {
	byCol, ok := rs.Schema().Column(by)
	if !ok {
		return nil, errors.ColumnNotFound(by, core.NewColumnNotFoundError(by))
	}
	if len(cols) == 0 {
		for _, c := range rs.Schema().Columns() {
			if c.Name != by && c.Type == table.ColumnNumeric {
				cols = append(cols, c.Name)
			}
		}
	}
	for _, c := range cols {
		if _, ok := rs.Schema().Index(c); !ok {
			return nil, errors.ColumnNotFound(c, core.NewColumnNotFoundError(c))
		}
	}

	g := &Grouped{
		src:    rs,
		by:     byCol,
		cols:   append([]string(nil), cols...),
		groups: make(map[string][]int),
	}
	for i := 0; i < rs.Len(); i++ {
		key := rs.Row(i).Get(by)
		if key.IsMissing() {
			continue
		}
		k := key.Key()
		if _, seen := g.groups[k]; !seen {
			g.keys = append(g.keys, key)
		}
		g.groups[k] = append(g.groups[k], i)
	}
	return g, nil
}

// Len returns the number of groups
func (g *Grouped) Len() int {
	return len(g.keys)
}

// Keys returns group keys in the current order
func (g *Grouped) Keys() []table.Value {
	return append([]table.Value(nil), g.keys...)
}

// Sorted orders groups by category rank for categorical keys, otherwise by
// natural value order.
func (g *Grouped) Sorted() *Grouped {
	keys := g.Keys()
	cats := g.by.Categories
	sort.SliceStable(keys, func(a, b int) bool {
		if cats != nil {
			sa, _ := keys[a].Str()
			sb, _ := keys[b].Str()
			ra, okA := cats.Rank(sa)
			rb, okB := cats.Rank(sb)
			if okA && okB {
				return ra < rb
			}
		}
		return keys[a].Compare(keys[b]) < 0
	})
	out := *g
	out.keys = keys
	return &out
}

// Agg computes funcs for every aggregated column. Output columns are named
// "<col>_<func>", or just "<col>" when a single func is requested.
func (g *Grouped) Agg(funcs ...Func) (*table.RowSet, error) {
	if len(funcs) == 0 {
		return nil, errors.InvalidInput("no aggregation functions given")
	}

	cols := []table.Column{g.by}
	for _, c := range g.cols {
		for _, f := range funcs {
			name := c
			if len(funcs) > 1 {
				name = c + "_" + string(f)
			}
			cols = append(cols, table.Column{Name: name, Type: table.ColumnNumeric})
		}
	}
	schema, err := table.NewSchema(cols...)
	if err != nil {
		return nil, errors.SchemaMismatch("aggregate columns collide", err)
	}

	records := make([]table.Record, 0, len(g.keys))
	for _, key := range g.keys {
		rows := g.groups[key.Key()]
		rec := table.Record{key}
		for _, c := range g.cols {
			for _, f := range funcs {
				v, err := g.compute(c, f, rows)
				if err != nil {
					return nil, err
				}
				rec = append(rec, v)
			}
		}
		records = append(records, rec)
	}

	rs, err := table.New(schema, records)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate")
	}
	return rs, nil
}

func (g *Grouped) compute(col string, f Func, rows []int) (table.Value, error) {
	if f == Count {
		n := 0
		for _, r := range rows {
			if !g.src.Row(r).Get(col).IsMissing() {
				n++
			}
		}
		return table.NewNumeric(float64(n)), nil
	}
	values, err := numbers(g.src, col, rows)
	if err != nil {
		return table.Value{}, err
	}
	x, err := f.Apply(values)
	if err != nil {
		return table.Value{}, errors.Wrap(err, string(f)+" of "+col)
	}
	return table.NewNumeric(x), nil
}

// Sum aggregates with Sum only
func (g *Grouped) Sum() (*table.RowSet, error) {
	return g.Agg(Sum)
}

// Mean aggregates with Mean only
func (g *Grouped) Mean() (*table.RowSet, error) {
	return g.Agg(Mean)
}

// CountBy counts non-missing cells of col per value of by
func CountBy(rs *table.RowSet, by, col string) (*table.RowSet, error) {
	g, err := GroupBy(rs, by, col)
	if err != nil {
		return nil, err
	}
	return g.Agg(Count)
}

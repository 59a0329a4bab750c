// Package table holds the immutable row-set model the walkthroughs operate on.
//
// A RowSet is never modified after construction. Every transform returns a
// new RowSet; record slices may be shared between row-sets because no code
// path writes to them once built.
package table

import (
	"fmt"
	"sort"

	"sheetops/domain/core"
)

// Record is one row, positional by schema
type Record []Value

// RowSet is an ordered collection of uniform-schema records
type RowSet struct {
	schema Schema
	rows   []Record
}

// New validates rows against schema and returns a row-set owning a copy of them
func New(schema Schema, rows []Record) (*RowSet, error) {
	out := make([]Record, len(rows))
	for i, row := range rows {
		if len(row) != schema.Len() {
			return nil, fmt.Errorf("%w: row %d has %d cells, schema has %d",
				core.ErrRowLength, i, len(row), schema.Len())
		}
		for j, v := range row {
			col := schema.At(j)
			if !col.Type.Accepts(v.Type()) {
				return nil, fmt.Errorf("row %d: %w", i,
					core.NewMixedTypesError(col.Name, string(col.Type), string(v.Type())))
			}
		}
		out[i] = append(Record(nil), row...)
	}
	return &RowSet{schema: schema, rows: out}, nil
}

// Empty returns a row-set with the schema and no rows
func Empty(schema Schema) *RowSet {
	return &RowSet{schema: schema}
}

// Len returns the number of rows
func (rs *RowSet) Len() int {
	return len(rs.rows)
}

// Schema returns the row-set schema
func (rs *RowSet) Schema() Schema {
	return rs.schema
}

// Names returns column names in order
func (rs *RowSet) Names() []string {
	return rs.schema.Names()
}

// Row returns a read-only view of row i
func (rs *RowSet) Row(i int) Row {
	return Row{schema: &rs.schema, values: rs.rows[i]}
}

// Get returns a single cell
func (rs *RowSet) Get(i int, col string) (Value, error) {
	idx, ok := rs.schema.Index(col)
	if !ok {
		return Value{}, core.NewColumnNotFoundError(col)
	}
	if i < 0 || i >= len(rs.rows) {
		return Value{}, fmt.Errorf("row %d out of range [0,%d)", i, len(rs.rows))
	}
	return rs.rows[i][idx], nil
}

// Column returns a copy of every cell in col
func (rs *RowSet) Column(col string) ([]Value, error) {
	idx, ok := rs.schema.Index(col)
	if !ok {
		return nil, core.NewColumnNotFoundError(col)
	}
	out := make([]Value, len(rs.rows))
	for i, row := range rs.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Head returns the first n rows
func (rs *RowSet) Head(n int) *RowSet {
	if n > len(rs.rows) {
		n = len(rs.rows)
	}
	if n < 0 {
		n = 0
	}
	return &RowSet{schema: rs.schema, rows: rs.rows[:n:n]}
}

// Tail returns the last n rows
func (rs *RowSet) Tail(n int) *RowSet {
	if n > len(rs.rows) {
		n = len(rs.rows)
	}
	if n < 0 {
		n = 0
	}
	return &RowSet{schema: rs.schema, rows: rs.rows[len(rs.rows)-n:]}
}

// Select keeps the named columns in the given order
func (rs *RowSet) Select(cols ...string) (*RowSet, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := rs.schema.Index(c)
		if !ok {
			return nil, core.NewColumnNotFoundError(c)
		}
		idx[i] = j
	}
	return rs.SelectIndex(idx...)
}

// SelectIndex keeps columns by position
func (rs *RowSet) SelectIndex(idx ...int) (*RowSet, error) {
	cols := make([]Column, len(idx))
	for i, j := range idx {
		if j < 0 || j >= rs.schema.Len() {
			return nil, fmt.Errorf("%w: position %d", core.ErrColumnNotFound, j)
		}
		cols[i] = rs.schema.At(j)
	}
	schema, err := NewSchema(cols...)
	if err != nil {
		return nil, err
	}
	rows := make([]Record, len(rs.rows))
	for r, row := range rs.rows {
		out := make(Record, len(idx))
		for i, j := range idx {
			out[i] = row[j]
		}
		rows[r] = out
	}
	return &RowSet{schema: schema, rows: rows}, nil
}

// Drop removes the named columns
func (rs *RowSet) Drop(cols ...string) (*RowSet, error) {
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		if _, ok := rs.schema.Index(c); !ok {
			return nil, core.NewColumnNotFoundError(c)
		}
		drop[c] = true
	}
	var keep []int
	for i, c := range rs.schema.columns {
		if !drop[c.Name] {
			keep = append(keep, i)
		}
	}
	return rs.SelectIndex(keep...)
}

// WithColumn replaces col if it exists, otherwise appends it. fn computes the
// new cell from the current row.
func (rs *RowSet) WithColumn(col Column, fn func(Row) Value) (*RowSet, error) {
	pos, exists := rs.schema.Index(col.Name)
	if !exists {
		pos = rs.schema.Len()
	}
	return rs.putColumn(pos, exists, col, fn)
}

// InsertColumn places a new column at position pos
func (rs *RowSet) InsertColumn(pos int, col Column, fn func(Row) Value) (*RowSet, error) {
	if _, exists := rs.schema.Index(col.Name); exists {
		return nil, fmt.Errorf("%w: %s", core.ErrDuplicateName, col.Name)
	}
	if pos < 0 || pos > rs.schema.Len() {
		return nil, fmt.Errorf("insert position %d out of range [0,%d]", pos, rs.schema.Len())
	}
	return rs.putColumn(pos, false, col, fn)
}

func (rs *RowSet) putColumn(pos int, replace bool, col Column, fn func(Row) Value) (*RowSet, error) {
	if col.Type == "" {
		col.Type = ColumnString
	}
	cols := rs.schema.Columns()
	if replace {
		cols[pos] = col
	} else {
		cols = append(cols[:pos], append([]Column{col}, cols[pos:]...)...)
	}
	schema, err := NewSchema(cols...)
	if err != nil {
		return nil, err
	}

	rows := make([]Record, len(rs.rows))
	for i, row := range rs.rows {
		v := fn(Row{schema: &rs.schema, values: row})
		if !col.Type.Accepts(v.Type()) {
			return nil, fmt.Errorf("row %d: %w", i,
				core.NewMixedTypesError(col.Name, string(col.Type), string(v.Type())))
		}
		out := make(Record, 0, len(cols))
		if replace {
			out = append(out, row...)
			out[pos] = v
		} else {
			out = append(out, row[:pos]...)
			out = append(out, v)
			out = append(out, row[pos:]...)
		}
		rows[i] = out
	}
	return &RowSet{schema: schema, rows: rows}, nil
}

// Rename changes column names; unknown names are an error
func (rs *RowSet) Rename(names map[string]string) (*RowSet, error) {
	cols := rs.schema.Columns()
	for from := range names {
		if _, ok := rs.schema.Index(from); !ok {
			return nil, core.NewColumnNotFoundError(from)
		}
	}
	for i := range cols {
		if to, ok := names[cols[i].Name]; ok {
			cols[i].Name = to
		}
	}
	schema, err := NewSchema(cols...)
	if err != nil {
		return nil, err
	}
	return &RowSet{schema: schema, rows: rs.rows}, nil
}

// Filter keeps rows for which pred returns true, preserving order
func (rs *RowSet) Filter(pred func(Row) bool) *RowSet {
	var rows []Record
	for _, row := range rs.rows {
		if pred(Row{schema: &rs.schema, values: row}) {
			rows = append(rows, row)
		}
	}
	return &RowSet{schema: rs.schema, rows: rows}
}

// SortKey names one sort column
type SortKey struct {
	Column     string
	Descending bool
}

// Asc and Desc build sort keys
func Asc(col string) SortKey  { return SortKey{Column: col} }
func Desc(col string) SortKey { return SortKey{Column: col, Descending: true} }

// SortBy performs a stable multi-key sort. Categorical columns with a category
// set sort by category rank; missing values sort last in either direction.
func (rs *RowSet) SortBy(keys ...SortKey) (*RowSet, error) {
	type resolved struct {
		idx  int
		desc bool
		cats *CategorySet
	}
	res := make([]resolved, len(keys))
	for i, k := range keys {
		idx, ok := rs.schema.Index(k.Column)
		if !ok {
			return nil, core.NewColumnNotFoundError(k.Column)
		}
		col := rs.schema.At(idx)
		res[i] = resolved{idx: idx, desc: k.Descending}
		if col.Type == ColumnCategorical {
			res[i].cats = col.Categories
		}
	}

	rows := make([]Record, len(rs.rows))
	copy(rows, rs.rows)
	sort.SliceStable(rows, func(a, b int) bool {
		for _, k := range res {
			va, vb := rows[a][k.idx], rows[b][k.idx]
			if va.IsMissing() != vb.IsMissing() {
				return vb.IsMissing()
			}
			c := compareIn(va, vb, k.cats)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return &RowSet{schema: rs.schema, rows: rows}, nil
}

func compareIn(a, b Value, cats *CategorySet) int {
	if cats != nil {
		sa, _ := a.Str()
		sb, _ := b.Str()
		ra, okA := cats.Rank(sa)
		rb, okB := cats.Rank(sb)
		if okA && okB {
			return ra - rb
		}
	}
	return a.Compare(b)
}

// Unique returns distinct values of col in first-seen order
func (rs *RowSet) Unique(col string) ([]Value, error) {
	values, err := rs.Column(col)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []Value
	for _, v := range values {
		if k := v.Key(); !seen[k] {
			seen[k] = true
			out = append(out, v)
		}
	}
	return out, nil
}

// DropDuplicates keeps the first row for each distinct combination of cols.
// With no cols every column takes part.
func (rs *RowSet) DropDuplicates(cols ...string) (*RowSet, error) {
	idx, err := rs.indexes(cols)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var rows []Record
	for _, row := range rs.rows {
		k := compositeKey(row, idx)
		if seen[k] {
			continue
		}
		seen[k] = true
		rows = append(rows, row)
	}
	return &RowSet{schema: rs.schema, rows: rows}, nil
}

// Concat appends other's rows. Columns are matched by name and reordered to
// the receiver's order; column types must agree or widen losslessly.
func (rs *RowSet) Concat(other *RowSet) (*RowSet, error) {
	if err := rs.schema.Compatible(other.schema); err != nil {
		return nil, err
	}

	cols := rs.schema.Columns()
	positions := make([]int, len(cols))
	for i, c := range cols {
		j, _ := other.schema.Index(c.Name)
		positions[i] = j
		merged, err := widen(c, rs, i, other.schema.At(j), other, j)
		if err != nil {
			return nil, err
		}
		cols[i] = merged
	}
	schema, err := NewSchema(cols...)
	if err != nil {
		return nil, err
	}

	rows := make([]Record, 0, len(rs.rows)+len(other.rows))
	rows = append(rows, rs.rows...)
	for _, row := range other.rows {
		out := make(Record, len(positions))
		for i, j := range positions {
			out[i] = row[j]
		}
		rows = append(rows, out)
	}
	return &RowSet{schema: schema, rows: rows}, nil
}

// widen picks a column type able to hold both sides' cells
func widen(a Column, ra *RowSet, ia int, b Column, rb *RowSet, ib int) (Column, error) {
	if a.Type == b.Type {
		return a, nil
	}
	if rb.columnFits(ib, a.Type) {
		return a, nil
	}
	if ra.columnFits(ia, b.Type) {
		return b, nil
	}
	return Column{}, core.NewMixedTypesError(a.Name, string(a.Type), string(b.Type))
}

func (rs *RowSet) columnFits(idx int, t ColumnType) bool {
	for _, row := range rs.rows {
		if !t.Accepts(row[idx].Type()) {
			return false
		}
	}
	return true
}

// Append adds one record given in schema order
func (rs *RowSet) Append(values ...Value) (*RowSet, error) {
	single, err := New(rs.schema, []Record{values})
	if err != nil {
		return nil, err
	}
	rows := make([]Record, 0, len(rs.rows)+1)
	rows = append(rows, rs.rows...)
	rows = append(rows, single.rows[0])
	return &RowSet{schema: rs.schema, rows: rows}, nil
}

func (rs *RowSet) indexes(cols []string) ([]int, error) {
	if len(cols) == 0 {
		idx := make([]int, rs.schema.Len())
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := rs.schema.Index(c)
		if !ok {
			return nil, core.NewColumnNotFoundError(c)
		}
		idx[i] = j
	}
	return idx, nil
}

func compositeKey(row Record, idx []int) string {
	key := ""
	for n, i := range idx {
		if n > 0 {
			key += "\x1f"
		}
		key += row[i].Key()
	}
	return key
}

// Row is a read-only view of one record
type Row struct {
	schema *Schema
	values Record
}

// Get returns the named cell, or missing when the column does not exist
func (r Row) Get(col string) Value {
	i, ok := r.schema.Index(col)
	if !ok {
		return NewMissing()
	}
	return r.values[i]
}

// Values returns a copy of the cells in schema order
func (r Row) Values() []Value {
	return append([]Value(nil), r.values...)
}

// Map returns the record as column name to value
func (r Row) Map() map[string]Value {
	out := make(map[string]Value, len(r.values))
	for i, v := range r.values {
		out[r.schema.At(i).Name] = v
	}
	return out
}

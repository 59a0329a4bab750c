package table

import (
	"errors"
	"math"
	"testing"
	"time"

	"sheetops/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesSchema(t *testing.T) Schema {
	t.Helper()
	s, err := NewSchema(
		Column{Name: "account number", Type: ColumnNumeric},
		Column{Name: "name", Type: ColumnString},
		Column{Name: "quantity", Type: ColumnNumeric},
	)
	require.NoError(t, err)
	return s
}

func salesRows(t *testing.T) *RowSet {
	t.Helper()
	rs, err := New(salesSchema(t), []Record{
		{NewNumeric(1), NewString("Kulas Inc"), NewNumeric(10)},
		{NewNumeric(2), NewString("Barton LLC"), NewNumeric(30)},
		{NewNumeric(1), NewString("Kulas Inc"), NewNumeric(20)},
		{NewNumeric(3), NewString("Trantow"), NewMissing()},
	})
	require.NoError(t, err)
	return rs
}

func TestValueBasics(t *testing.T) {
	assert.True(t, NewString("").IsMissing())
	assert.True(t, NewNumeric(math.NaN()).IsMissing())
	assert.True(t, Value{}.IsMissing())
	assert.Equal(t, "NaN", NewMissing().String())
	assert.Equal(t, "737550", NewNumeric(737550).String())
	assert.Equal(t, "12.5", NewNumeric(12.5).String())
	assert.Equal(t, "True", NewBoolean(true).String())
	assert.Equal(t, "2014-01-01", NewTimestamp(time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "2014-01-01 07:21:51", NewTimestamp(time.Date(2014, 1, 1, 7, 21, 51, 0, time.UTC)).String())

	assert.True(t, NewNumeric(5).Equal(NewNumeric(5)))
	assert.False(t, NewNumeric(5).Equal(NewString("5")))
	assert.False(t, NewMissing().Equal(NewMissing()))
	assert.Equal(t, NewMissing().Key(), Value{}.Key())

	assert.Negative(t, NewNumeric(1).Compare(NewNumeric(2)))
	assert.Positive(t, NewMissing().Compare(NewString("a")))
	assert.Zero(t, NewString("a").Compare(NewString("a")))
}

func TestNewRejectsMixedTypes(t *testing.T) {
	_, err := New(salesSchema(t), []Record{
		{NewNumeric(1), NewString("a"), NewString("ten")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMixedTypes))

	_, err = New(salesSchema(t), []Record{{NewNumeric(1)}})
	assert.True(t, errors.Is(err, core.ErrRowLength))

	_, err = NewSchema(Column{Name: "a"}, Column{Name: "a"})
	assert.True(t, errors.Is(err, core.ErrDuplicateName))
}

func TestNewCopiesInput(t *testing.T) {
	rows := []Record{{NewNumeric(1), NewString("a"), NewNumeric(2)}}
	rs, err := New(salesSchema(t), rows)
	require.NoError(t, err)

	rows[0][1] = NewString("mutated")
	v, err := rs.Get(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "a", v.String())
}

func TestConcatPreservesOrder(t *testing.T) {
	a := salesRows(t)
	reordered, err := NewSchema(
		Column{Name: "quantity", Type: ColumnNumeric},
		Column{Name: "name", Type: ColumnString},
		Column{Name: "account number", Type: ColumnNumeric},
	)
	require.NoError(t, err)
	b, err := New(reordered, []Record{
		{NewNumeric(99), NewString("Jerde"), NewNumeric(4)},
	})
	require.NoError(t, err)

	out, err := a.Concat(b)
	require.NoError(t, err)
	assert.Equal(t, a.Len()+b.Len(), out.Len())
	assert.Equal(t, a.Names(), out.Names())

	last := out.Row(out.Len() - 1)
	assert.Equal(t, "4", last.Get("account number").String())
	assert.Equal(t, "99", last.Get("quantity").String())
	first := out.Row(0)
	assert.Equal(t, "Kulas Inc", first.Get("name").String())
}

func TestConcatSchemaMismatch(t *testing.T) {
	other, err := NewSchema(Column{Name: "account number", Type: ColumnNumeric})
	require.NoError(t, err)
	_, err = salesRows(t).Concat(Empty(other))
	assert.True(t, errors.Is(err, core.ErrSchemaMismatch))
}

func TestConcatWidensAllMissingColumn(t *testing.T) {
	a := salesRows(t)
	stringQty, err := NewSchema(
		Column{Name: "account number", Type: ColumnNumeric},
		Column{Name: "name", Type: ColumnString},
		Column{Name: "quantity", Type: ColumnString},
	)
	require.NoError(t, err)
	b, err := New(stringQty, []Record{{NewNumeric(5), NewString("x"), NewMissing()}})
	require.NoError(t, err)

	out, err := a.Concat(b)
	require.NoError(t, err)
	col, _ := out.Schema().Column("quantity")
	assert.Equal(t, ColumnNumeric, col.Type)

	c, err := New(stringQty, []Record{{NewNumeric(5), NewString("x"), NewString("many")}})
	require.NoError(t, err)
	_, err = a.Concat(c)
	assert.True(t, errors.Is(err, core.ErrMixedTypes))
}

func TestWithColumnDoesNotMutate(t *testing.T) {
	rs := salesRows(t)
	doubled, err := rs.WithColumn(Column{Name: "quantity", Type: ColumnNumeric}, func(r Row) Value {
		f, ok := r.Get("quantity").Float()
		if !ok {
			return NewMissing()
		}
		return NewNumeric(f * 2)
	})
	require.NoError(t, err)

	orig, _ := rs.Get(0, "quantity")
	now, _ := doubled.Get(0, "quantity")
	assert.Equal(t, "10", orig.String())
	assert.Equal(t, "20", now.String())

	_, err = rs.WithColumn(Column{Name: "flag", Type: ColumnBoolean}, func(Row) Value { return NewString("no") })
	assert.True(t, errors.Is(err, core.ErrMixedTypes))
}

func TestInsertColumn(t *testing.T) {
	rs := salesRows(t)
	out, err := rs.InsertColumn(1, Column{Name: "abbrev"}, func(Row) Value { return NewString("MN") })
	require.NoError(t, err)
	assert.Equal(t, []string{"account number", "abbrev", "name", "quantity"}, out.Names())

	_, err = out.InsertColumn(0, Column{Name: "abbrev"}, func(Row) Value { return NewMissing() })
	assert.True(t, errors.Is(err, core.ErrDuplicateName))
	_, err = rs.InsertColumn(9, Column{Name: "x"}, func(Row) Value { return NewMissing() })
	assert.Error(t, err)
}

func TestFilterSelectDrop(t *testing.T) {
	rs := salesRows(t)
	big := rs.Filter(func(r Row) bool {
		q, ok := r.Get("quantity").Float()
		return ok && q > 15
	})
	assert.Equal(t, 2, big.Len())

	sel, err := rs.Select("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, sel.Names())

	byPos, err := rs.SelectIndex(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"account number", "name"}, byPos.Names())

	dropped, err := rs.Drop("quantity")
	require.NoError(t, err)
	assert.Equal(t, []string{"account number", "name"}, dropped.Names())

	_, err = rs.Select("missing column")
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))
}

func TestSortByMultiKey(t *testing.T) {
	rs := salesRows(t)
	sorted, err := rs.SortBy(Desc("quantity"), Asc("name"))
	require.NoError(t, err)

	q := make([]string, sorted.Len())
	for i := range q {
		q[i] = sorted.Row(i).Get("quantity").String()
	}
	assert.Equal(t, []string{"30", "20", "10", "NaN"}, q)
}

func TestSortByCategoryRank(t *testing.T) {
	schema, err := NewSchema(Column{Name: "status"})
	require.NoError(t, err)
	rs, err := New(schema, []Record{
		{NewString("bronze")}, {NewString("gold")}, {NewString("silver")}, {NewString("gold")},
	})
	require.NoError(t, err)

	cat, err := rs.AsCategory("status", NewCategorySet("gold", "silver", "bronze"))
	require.NoError(t, err)
	sorted, err := cat.SortBy(Asc("status"))
	require.NoError(t, err)

	var got []string
	for i := 0; i < sorted.Len(); i++ {
		got = append(got, sorted.Row(i).Get("status").String())
	}
	assert.Equal(t, []string{"gold", "gold", "silver", "bronze"}, got)

	alpha, err := rs.SortBy(Asc("status"))
	require.NoError(t, err)
	assert.Equal(t, "bronze", alpha.Row(0).Get("status").String())

	_, err = rs.AsCategory("status", NewCategorySet("gold"))
	assert.True(t, errors.Is(err, core.ErrNotCategory))
}

func TestUniqueAndDropDuplicates(t *testing.T) {
	rs := salesRows(t)
	names, err := rs.Unique("name")
	require.NoError(t, err)
	require.Len(t, names, 3)
	assert.Equal(t, "Kulas Inc", names[0].String())

	dedup, err := rs.DropDuplicates("account number", "name")
	require.NoError(t, err)
	assert.Equal(t, 3, dedup.Len())
	q, _ := dedup.Get(0, "quantity")
	assert.Equal(t, "10", q.String(), "first occurrence is kept")

	all, err := rs.DropDuplicates()
	require.NoError(t, err)
	assert.Equal(t, 4, all.Len())
}

func TestHeadTailAppendRename(t *testing.T) {
	rs := salesRows(t)
	assert.Equal(t, 2, rs.Head(2).Len())
	assert.Equal(t, 4, rs.Head(10).Len())
	assert.Equal(t, "3", rs.Tail(1).Row(0).Get("account number").String())

	appended, err := rs.Append(NewMissing(), NewString("Total"), NewNumeric(60))
	require.NoError(t, err)
	assert.Equal(t, 5, appended.Len())
	assert.Equal(t, 4, rs.Len())

	renamed, err := rs.Rename(map[string]string{"name": "customer"})
	require.NoError(t, err)
	assert.Equal(t, []string{"account number", "customer", "quantity"}, renamed.Names())
}

func TestLookupTableFirstMatch(t *testing.T) {
	schema, err := NewSchema(
		Column{Name: "account number", Type: ColumnNumeric},
		Column{Name: "status"},
	)
	require.NoError(t, err)
	rs, err := New(schema, []Record{
		{NewNumeric(1), NewString("gold")},
		{NewNumeric(2), NewString("silver")},
		{NewNumeric(1), NewString("bronze")},
		{NewMissing(), NewString("silver")},
	})
	require.NoError(t, err)

	lt, err := NewLookupTable(rs, "account number")
	require.NoError(t, err)
	assert.Equal(t, 2, lt.Len())
	require.Len(t, lt.Duplicates(), 1)

	rec, ok := lt.Lookup(NewNumeric(1))
	require.True(t, ok)
	assert.Equal(t, "gold", rec[0].String())

	_, ok = lt.Lookup(NewNumeric(7))
	assert.False(t, ok)
	_, ok = lt.Lookup(NewMissing())
	assert.False(t, ok)

	_, err = NewLookupTable(rs)
	assert.Error(t, err)
}

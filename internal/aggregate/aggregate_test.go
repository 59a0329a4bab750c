package aggregate

import (
	"math"
	"testing"

	"sheetops/domain/table"
	"sheetops/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusSales(t *testing.T) *table.RowSet {
	t.Helper()
	schema, err := table.NewSchema(
		table.Column{Name: "status"},
		table.Column{Name: "name"},
		table.Column{Name: "ext price", Type: table.ColumnNumeric},
	)
	require.NoError(t, err)
	rs, err := table.New(schema, []table.Record{
		{table.NewString("silver"), table.NewString("Kulas Inc"), table.NewNumeric(10)},
		{table.NewString("gold"), table.NewString("Barton LLC"), table.NewNumeric(5)},
		{table.NewString("silver"), table.NewString("Kulas Inc"), table.NewNumeric(20)},
		{table.NewString("silver"), table.NewString("Jerde"), table.NewNumeric(30)},
		{table.NewString("bronze"), table.NewString("Trantow"), table.NewMissing()},
		{table.NewMissing(), table.NewString("Nobody"), table.NewNumeric(99)},
	})
	require.NoError(t, err)
	return rs
}

func cell(t *testing.T, rs *table.RowSet, row int, col string) table.Value {
	t.Helper()
	v, err := rs.Get(row, col)
	require.NoError(t, err)
	return v
}

func float(t *testing.T, rs *table.RowSet, row int, col string) float64 {
	t.Helper()
	f, ok := cell(t, rs, row, col).Float()
	require.True(t, ok, "%s row %d is not numeric", col, row)
	return f
}

func TestFuncApply(t *testing.T) {
	values := []float64{10, 20, 30}
	tests := []struct {
		fn   Func
		want float64
	}{
		{Sum, 60}, {Mean, 20}, {Std, 10}, {Count, 3}, {Min, 10}, {Max, 30}, {Median, 20},
	}
	for _, tt := range tests {
		t.Run(string(tt.fn), func(t *testing.T) {
			got, err := tt.fn.Apply(values)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	std, err := Std.Apply([]float64{5})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(std), "single value has no sample deviation")

	sum, _ := Sum.Apply(nil)
	assert.Equal(t, 0.0, sum)
	mean, _ := Mean.Apply(nil)
	assert.True(t, math.IsNaN(mean))

	_, err = Func("mode").Apply(values)
	assert.Error(t, err)
}

func TestGroupByAgg(t *testing.T) {
	g, err := GroupBy(statusSales(t), "status", "ext price")
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len(), "missing keys are dropped")

	out, err := g.Agg(Sum, Mean, Std)
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "ext price_sum", "ext price_mean", "ext price_std"}, out.Names())

	// first-appearance order: silver, gold, bronze
	assert.Equal(t, "silver", cell(t, out, 0, "status").String())
	assert.Equal(t, 60.0, float(t, out, 0, "ext price_sum"))
	assert.Equal(t, 20.0, float(t, out, 0, "ext price_mean"))
	assert.InDelta(t, 10.0, float(t, out, 0, "ext price_std"), 1e-9)

	assert.Equal(t, 5.0, float(t, out, 1, "ext price_sum"))
	assert.True(t, cell(t, out, 1, "ext price_std").IsMissing(), "one-row group std is NaN")

	assert.Equal(t, 0.0, float(t, out, 2, "ext price_sum"), "all-missing group sums to 0")
	assert.True(t, cell(t, out, 2, "ext price_mean").IsMissing())
}

func TestGroupBySortedByCategory(t *testing.T) {
	rs, err := statusSales(t).AsCategory("status", table.NewCategorySet("gold", "silver", "bronze"))
	require.NoError(t, err)
	g, err := GroupBy(rs, "status")
	require.NoError(t, err)

	out, err := g.Sorted().Sum()
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "ext price"}, out.Names())
	var order []string
	for i := 0; i < out.Len(); i++ {
		order = append(order, cell(t, out, i, "status").String())
	}
	assert.Equal(t, []string{"gold", "silver", "bronze"}, order)

	col, _ := out.Schema().Column("status")
	assert.Equal(t, table.ColumnCategorical, col.Type)

	plain, err := GroupBy(statusSales(t), "status")
	require.NoError(t, err)
	assert.Equal(t, "bronze", plain.Sorted().Keys()[0].String())
	assert.Equal(t, "silver", plain.Keys()[0].String(), "Sorted returns a copy")
}

func TestCountBy(t *testing.T) {
	rs, err := statusSales(t).DropDuplicates("status", "name")
	require.NoError(t, err)
	out, err := CountBy(rs, "status", "name")
	require.NoError(t, err)
	assert.Equal(t, 2.0, float(t, out, 0, "name"), "silver has Kulas Inc and Jerde")
	assert.Equal(t, 1.0, float(t, out, 1, "name"))
}

func TestAggErrors(t *testing.T) {
	_, err := GroupBy(statusSales(t), "region")
	assert.Equal(t, errors.CodeColumnNotFound, errors.GetCode(err))

	g, err := GroupBy(statusSales(t), "status", "name")
	require.NoError(t, err)
	_, err = g.Agg(Sum)
	assert.Equal(t, errors.CodeTypeMismatch, errors.GetCode(err))
	_, err = g.Agg()
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestDescribe(t *testing.T) {
	out, err := Describe(statusSales(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"stat", "ext price"}, out.Names())
	require.Equal(t, 8, out.Len())

	stats := map[string]float64{}
	for i := 0; i < out.Len(); i++ {
		f, _ := cell(t, out, i, "ext price").Float()
		stats[cell(t, out, i, "stat").String()] = f
	}
	assert.Equal(t, 5.0, stats["count"])
	assert.Equal(t, 5.0, stats["min"])
	assert.Equal(t, 99.0, stats["max"])
	assert.Equal(t, 20.0, stats["50%"])
	assert.InDelta(t, 32.8, stats["mean"], 1e-9)
	assert.Equal(t, 10.0, stats["25%"])
	assert.Equal(t, 30.0, stats["75%"])
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		q25, q50, q75 float64
	}{
		{"odd count", []float64{99, 5, 20, 10, 30}, 10, 20, 30},
		{"even count", []float64{1, 2, 3, 4}, 1.75, 2.5, 3.25},
		{"two values", []float64{10, 20}, 12.5, 15, 17.5},
		{"single value", []float64{7}, 7, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.q25, Quantile(tt.values, 0.25), 1e-9)
			assert.InDelta(t, tt.q50, Quantile(tt.values, 0.5), 1e-9)
			assert.InDelta(t, tt.q75, Quantile(tt.values, 0.75), 1e-9)
		})
	}
	assert.Equal(t, 1.0, Quantile([]float64{3, 1, 2}, 0))
	assert.Equal(t, 3.0, Quantile([]float64{3, 1, 2}, 1))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestDescribeCategorical(t *testing.T) {
	s, err := DescribeCategorical(statusSales(t), "status")
	require.NoError(t, err)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 3, s.Unique)
	assert.Equal(t, "silver", s.Top.String())
	assert.Equal(t, 3, s.Freq)

	rs, err := s.RowSet()
	require.NoError(t, err)
	assert.Equal(t, "3", cell(t, rs, 3, "status").String())
}

func TestTotals(t *testing.T) {
	rs := statusSales(t)
	totals, err := Totals(rs, "name", "ext price")
	require.NoError(t, err)
	require.Equal(t, 1, totals.Len())
	assert.Equal(t, TotalLabel, cell(t, totals, 0, "name").String())
	assert.Equal(t, 164.0, float(t, totals, 0, "ext price"))
	assert.True(t, cell(t, totals, 0, "status").IsMissing())

	with, err := WithTotals(rs, "name", "ext price")
	require.NoError(t, err)
	assert.Equal(t, rs.Len()+1, with.Len())

	_, err = Totals(rs, "ext price", "ext price")
	assert.Equal(t, errors.CodeTypeMismatch, errors.GetCode(err))
	_, err = Totals(rs, "", "name")
	assert.Equal(t, errors.CodeTypeMismatch, errors.GetCode(err))
}

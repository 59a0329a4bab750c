package coercer

import (
	"testing"
	"time"

	"sheetops/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTypeDistribution(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name  string
		cells []string
		want  table.ColumnType
	}{
		{"plain numbers", []string{"10002.0", "552278", "", "-3"}, table.ColumnNumeric},
		{"currency stays string", []string{"$125,000.00", "$50,000.00"}, table.ColumnString},
		{"one bad cell", []string{"500", "700", "Closed"}, table.ColumnString},
		{"literal booleans", []string{"True", "false"}, table.ColumnBoolean},
		{"Y/N flags stay string", []string{"Y", "N"}, table.ColumnString},
		{"dates not inferred", []string{"2014-01-01", "2014-02-03"}, table.ColumnString},
		{"all empty", []string{"", " "}, table.ColumnNumeric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.AnalyzeTypeDistribution(tt.cells).RecommendedType)
		})
	}

	loose := DefaultCoercionConfig()
	loose.NumericThreshold = 0.6
	analysis := NewTypeCoercer(loose).AnalyzeTypeDistribution([]string{"500", "700", "Closed"})
	assert.Equal(t, table.ColumnNumeric, analysis.RecommendedType)
	assert.Equal(t, 3, analysis.ValidCount)
	assert.Equal(t, 2, analysis.NumericCount)
}

func TestCoerceValueStrict(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	v, err := c.CoerceValue(" 42 ", table.ColumnNumeric)
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())

	v, err = c.CoerceValue("", table.ColumnNumeric)
	require.NoError(t, err)
	assert.True(t, v.IsMissing())

	_, err = c.CoerceValue("Closed", table.ColumnNumeric)
	assert.Error(t, err)

	v, err = c.CoerceValue("  Quest   Industries ", table.ColumnString)
	require.NoError(t, err)
	assert.Equal(t, "Quest Industries", v.String())

	_, err = c.Column("Jan Units", []string{"500", "Closed"}, table.ColumnNumeric)
	assert.ErrorContains(t, err, "Jan Units")
}

func TestParseTimestampLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2014-09-05", time.Date(2014, 9, 5, 0, 0, 0, 0, time.UTC)},
		{"2014-01-01 07:21:51", time.Date(2014, 1, 1, 7, 21, 51, 0, time.UTC)},
		{"2014-03", time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"Oct-2014", time.Date(2014, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"10-10-2014", time.Date(2014, 10, 10, 0, 0, 0, 0, time.UTC)},
		{"20140905", time.Date(2014, 9, 5, 0, 0, 0, 0, time.UTC)},
		{"2014-Jan-1", time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2014-Dec", time.Date(2014, 12, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, ok := ParseTimestamp("not a date")
	assert.False(t, ok)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in         string
		start, end time.Time
	}{
		{"2014-Dec", time.Date(2014, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2014-Feb-1", time.Date(2014, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2014, 2, 2, 0, 0, 0, 0, time.UTC)},
		{"2014-02", time.Date(2014, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2014-01-01 07:21:51", time.Date(2014, 1, 1, 7, 21, 51, 0, time.UTC), time.Date(2014, 1, 1, 7, 21, 52, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, ok := ParsePeriod(tt.in)
			require.True(t, ok)
			assert.True(t, tt.start.Equal(start), "start %s", start)
			assert.True(t, tt.end.Add(-time.Nanosecond).Equal(end), "end %s", end)
		})
	}

	_, _, ok := ParsePeriod("  ")
	assert.False(t, ok)
}

func TestConverters(t *testing.T) {
	f, ok := Currency().Convert("$125,000.00").Float()
	require.True(t, ok)
	assert.Equal(t, 125000.0, f)

	f, ok = Currency().Convert("($1,500.00)").Float()
	require.True(t, ok)
	assert.Equal(t, -1500.0, f)

	f, ok = Percent().Convert("30.00%").Float()
	require.True(t, ok)
	assert.InDelta(t, 0.30, f, 1e-12)

	f, ok = Percent().Convert("-15.00%").Float()
	require.True(t, ok)
	assert.InDelta(t, -0.15, f, 1e-12)

	b, ok := YesNo().Convert("Y").Bool()
	require.True(t, ok)
	assert.True(t, b)
	b, _ = YesNo().Convert("N").Bool()
	assert.False(t, b)

	assert.True(t, Numeric().Convert("Closed").IsMissing())
	f, _ = Integer().Convert("10002.0").Float()
	assert.Equal(t, 10002.0, f)
	assert.True(t, Timestamp().Convert("someday").IsMissing())
}

func typesRowSet(t *testing.T) *table.RowSet {
	t.Helper()
	schema, err := table.NewSchema(
		table.Column{Name: "Jan Units"},
		table.Column{Name: "Month", Type: table.ColumnNumeric},
		table.Column{Name: "Day", Type: table.ColumnNumeric},
		table.Column{Name: "Year", Type: table.ColumnNumeric},
	)
	require.NoError(t, err)
	rs, err := table.New(schema, []table.Record{
		{table.NewString("500"), table.NewNumeric(1), table.NewNumeric(10), table.NewNumeric(2015)},
		{table.NewString("Closed"), table.NewNumeric(2), table.NewNumeric(30), table.NewNumeric(2014)},
		{table.NewMissing(), table.NewMissing(), table.NewNumeric(2), table.NewNumeric(2014)},
	})
	require.NoError(t, err)
	return rs
}

func TestApplyCountsCoercedCells(t *testing.T) {
	rs := typesRowSet(t)
	out, report, err := ToNumeric(rs, "Jan Units")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Coerced, "only Closed held a value and lost it")

	col, _ := out.Schema().Column("Jan Units")
	assert.Equal(t, table.ColumnNumeric, col.Type)
	v, _ := out.Get(0, "Jan Units")
	assert.Equal(t, "500", v.String())
	v, _ = out.Get(1, "Jan Units")
	assert.True(t, v.IsMissing())

	orig, _ := rs.Get(1, "Jan Units")
	assert.Equal(t, "Closed", orig.String())

	_, _, err = ToNumeric(rs, "nope")
	assert.Error(t, err)
}

func TestApplyKeepsConvertedCells(t *testing.T) {
	schema, err := table.NewSchema(
		table.Column{Name: "Percent Growth"},
		table.Column{Name: "Customer Number", Type: table.ColumnNumeric},
	)
	require.NoError(t, err)
	rs, err := table.New(schema, []table.Record{
		{table.NewString("30.00%"), table.NewNumeric(10002.7)},
		{table.NewString("-10.00%"), table.NewNumeric(552278)},
	})
	require.NoError(t, err)

	once, _, err := Apply(rs, "Percent Growth", Percent())
	require.NoError(t, err)
	twice, report, err := Apply(once, "Percent Growth", Percent())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Coerced)
	for i, want := range []float64{0.30, -0.10} {
		v, _ := twice.Get(i, "Percent Growth")
		f, ok := v.Float()
		require.True(t, ok)
		assert.InDelta(t, want, f, 1e-12)
	}

	ints, _, err := Apply(rs, "Customer Number", Integer())
	require.NoError(t, err)
	v, _ := ints.Get(0, "Customer Number")
	f, _ := v.Float()
	assert.Equal(t, 10002.0, f)
}

func TestDateFromParts(t *testing.T) {
	out, report, err := DateFromParts(typesRowSet(t), "Start_Date", "Year", "Month", "Day")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Coerced, "Feb 30 and the missing month")

	v, _ := out.Get(0, "Start_Date")
	assert.Equal(t, "2015-01-10", v.String())
	v, _ = out.Get(1, "Start_Date")
	assert.True(t, v.IsMissing())
	v, _ = out.Get(2, "Start_Date")
	assert.True(t, v.IsMissing())
}

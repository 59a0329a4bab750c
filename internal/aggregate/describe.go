package aggregate

import (
	"math"
	"strconv"

	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal/errors"
)

// Summary holds whole-column statistics of one numeric column
type Summary struct {
	Column string
	Count  int
	Sum    float64
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Summarize computes a Summary for col
func Summarize(rs *table.RowSet, col string) (Summary, error) {
	values, err := numbers(rs, col, allRows(rs))
	if err != nil {
		return Summary{}, err
	}
	s := Summary{Column: col, Count: len(values)}
	for _, f := range []struct {
		fn  Func
		dst *float64
	}{
		{Sum, &s.Sum}, {Mean, &s.Mean}, {Std, &s.Std},
		{Min, &s.Min}, {Median, &s.Median}, {Max, &s.Max},
	} {
		if *f.dst, err = f.fn.Apply(values); err != nil {
			return Summary{}, errors.Wrap(err, "summarize "+col)
		}
	}
	s.Q25 = Quantile(values, 0.25)
	s.Median = Quantile(values, 0.5)
	s.Q75 = Quantile(values, 0.75)
	return s, nil
}

var describeStats = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe summarises every numeric column. The first column, "stat", names
// the statistic of each row.
func Describe(rs *table.RowSet) (*table.RowSet, error) {
	cols := []table.Column{{Name: "stat", Type: table.ColumnString}}
	var summaries []Summary
	for _, c := range rs.Schema().Columns() {
		if c.Type != table.ColumnNumeric {
			continue
		}
		s, err := Summarize(rs, c.Name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
		cols = append(cols, table.Column{Name: c.Name, Type: table.ColumnNumeric})
	}
	schema, err := table.NewSchema(cols...)
	if err != nil {
		return nil, errors.SchemaMismatch("describe", err)
	}

	records := make([]table.Record, len(describeStats))
	for i, name := range describeStats {
		rec := table.Record{table.NewString(name)}
		for _, s := range summaries {
			rec = append(rec, table.NewNumeric(s.pick(name)))
		}
		records[i] = rec
	}
	return table.New(schema, records)
}

func (s Summary) pick(name string) float64 {
	switch name {
	case "count":
		return float64(s.Count)
	case "mean":
		return s.Mean
	case "std":
		return s.Std
	case "min":
		return s.Min
	case "25%":
		return s.Q25
	case "50%":
		return s.Median
	case "75%":
		return s.Q75
	case "max":
		return s.Max
	}
	return math.NaN()
}

// CategoricalSummary is describe() for a non-numeric column
type CategoricalSummary struct {
	Column string
	Count  int
	Unique int
	Top    table.Value
	Freq   int
}

// DescribeCategorical counts values of col. The most frequent value is Top;
// ties go to the higher category rank, or to the value seen first.
func DescribeCategorical(rs *table.RowSet, col string) (CategoricalSummary, error) {
	c, ok := rs.Schema().Column(col)
	if !ok {
		return CategoricalSummary{}, errors.ColumnNotFound(col, core.NewColumnNotFoundError(col))
	}
	values, err := rs.Column(col)
	if err != nil {
		return CategoricalSummary{}, err
	}

	counts := make(map[string]int)
	var order []table.Value
	out := CategoricalSummary{Column: col}
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		out.Count++
		k := v.Key()
		if counts[k] == 0 {
			order = append(order, v)
		}
		counts[k]++
	}
	out.Unique = len(order)

	rank := func(v table.Value) int {
		if c.Categories != nil {
			s, _ := v.Str()
			if r, ok := c.Categories.Rank(s); ok {
				return r
			}
		}
		return math.MaxInt
	}
	for _, v := range order {
		n := counts[v.Key()]
		if n > out.Freq || (n == out.Freq && rank(v) < rank(out.Top)) {
			out.Top, out.Freq = v, n
		}
	}
	return out, nil
}

// RowSet renders the summary as a two-column stat/value table
func (s CategoricalSummary) RowSet() (*table.RowSet, error) {
	schema, err := table.NewSchema(table.Column{Name: "stat"}, table.Column{Name: s.Column})
	if err != nil {
		return nil, err
	}
	return table.New(schema, []table.Record{
		{table.NewString("count"), table.NewString(strconv.Itoa(s.Count))},
		{table.NewString("unique"), table.NewString(strconv.Itoa(s.Unique))},
		{table.NewString("top"), table.NewString(s.Top.String())},
		{table.NewString("freq"), table.NewString(strconv.Itoa(s.Freq))},
	})
}

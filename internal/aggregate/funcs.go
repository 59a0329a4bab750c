// Package aggregate computes grouped and whole-column summary statistics
// over row-sets. Missing cells are skipped everywhere.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Func names one aggregation
type Func string

const (
	Sum    Func = "sum"
	Mean   Func = "mean"
	Std    Func = "std"
	Count  Func = "count"
	Min    Func = "min"
	Max    Func = "max"
	Median Func = "median"
)

// Apply computes f over values. Empty input gives 0 for Sum and Count and
// NaN otherwise; Std is the sample deviation and needs two values.
func (f Func) Apply(values []float64) (float64, error) {
	n := len(values)
	switch f {
	case Count:
		return float64(n), nil
	case Sum:
		if n == 0 {
			return 0, nil
		}
		return stats.Sum(values)
	case Std:
		if n < 2 {
			return math.NaN(), nil
		}
		return stat.StdDev(values, nil), nil
	}

	if n == 0 {
		switch f {
		case Mean, Min, Max, Median:
			return math.NaN(), nil
		}
	}
	switch f {
	case Mean:
		return stats.Mean(values)
	case Min:
		return stats.Min(values)
	case Max:
		return stats.Max(values)
	case Median:
		return stats.Median(values)
	}
	return 0, errors.InvalidInput(fmt.Sprintf("unknown aggregation %q", f))
}

// Quantile returns the p-quantile (0..1), interpolating linearly between the
// closest ranks at h = (n-1)*p
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// numbers returns the non-missing floats of col; the column must be numeric
func numbers(rs *table.RowSet, col string, rows []int) ([]float64, error) {
	c, ok := rs.Schema().Column(col)
	if !ok {
		return nil, errors.ColumnNotFound(col, core.NewColumnNotFoundError(col))
	}
	if c.Type != table.ColumnNumeric {
		return nil, errors.TypeMismatch(fmt.Sprintf("%s is %s", col, c.Type), core.ErrNotNumeric)
	}
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if f, ok := rs.Row(r).Get(col).Float(); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func allRows(rs *table.RowSet) []int {
	rows := make([]int, rs.Len())
	for i := range rows {
		rows[i] = i
	}
	return rows
}

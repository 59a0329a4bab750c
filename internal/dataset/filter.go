package dataset

import (
	"strings"
	"time"

	"sheetops/domain/table"
)

// Predicate selects rows for RowSet.Filter. Missing cells never match a
// comparison, so a negated predicate is not the complement of the original.
type Predicate func(table.Row) bool

// Eq matches cells equal to v
func Eq(col string, v table.Value) Predicate {
	return func(r table.Row) bool {
		return r.Get(col).Equal(v)
	}
}

// In matches cells equal to any of values
func In(col string, values ...table.Value) Predicate {
	keys := make(map[string]struct{}, len(values))
	for _, v := range values {
		if !v.IsMissing() {
			keys[v.Key()] = struct{}{}
		}
	}
	return func(r table.Row) bool {
		v := r.Get(col)
		if v.IsMissing() {
			return false
		}
		_, ok := keys[v.Key()]
		return ok
	}
}

// Greater matches numeric cells strictly above x
func Greater(col string, x float64) Predicate {
	return func(r table.Row) bool {
		f, ok := r.Get(col).Float()
		return ok && f > x
	}
}

// HasPrefix matches text cells starting with prefix
func HasPrefix(col, prefix string) Predicate {
	return func(r table.Row) bool {
		s, ok := r.Get(col).Str()
		return ok && strings.HasPrefix(s, prefix)
	}
}

// Contains matches text cells containing substr
func Contains(col, substr string) Predicate {
	return func(r table.Row) bool {
		s, ok := r.Get(col).Str()
		return ok && strings.Contains(s, substr)
	}
}

// Since matches timestamps at or after from
func Since(col string, from time.Time) Predicate {
	return func(r table.Row) bool {
		t, ok := r.Get(col).Time()
		return ok && !t.Before(from)
	}
}

// Between matches timestamps within [from, to], both ends inclusive
func Between(col string, from, to time.Time) Predicate {
	return func(r table.Row) bool {
		t, ok := r.Get(col).Time()
		return ok && !t.Before(from) && !t.After(to)
	}
}

// And matches rows every predicate matches
func And(preds ...Predicate) Predicate {
	return func(r table.Row) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

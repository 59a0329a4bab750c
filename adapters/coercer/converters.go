package coercer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"sheetops/domain/core"
	"sheetops/domain/table"
)

var currencyReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// Currency reads "$125,000.00" as 125000
func Currency() table.Converter {
	return table.Converter{Type: table.ColumnNumeric, Convert: func(raw string) table.Value {
		clean := strings.TrimSpace(raw)
		negative := strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")")
		if negative {
			clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		}
		n, ok := ParseNumeric(currencyReplacer.Replace(clean))
		if !ok {
			return table.NewMissing()
		}
		if negative {
			n = -n
		}
		return table.NewNumeric(n)
	}}
}

// Percent reads "30.00%" as 0.30
func Percent() table.Converter {
	return table.Converter{Type: table.ColumnNumeric, Convert: func(raw string) table.Value {
		clean := strings.ReplaceAll(strings.TrimSpace(raw), "%", "")
		n, ok := ParseNumeric(strings.ReplaceAll(clean, ",", ""))
		if !ok {
			return table.NewMissing()
		}
		return table.NewNumeric(n / 100)
	}}
}

// YesNo maps "Y" to true and everything else, empty included, to false
func YesNo() table.Converter {
	return table.Converter{Type: table.ColumnBoolean, Convert: func(raw string) table.Value {
		return table.NewBoolean(strings.EqualFold(strings.TrimSpace(raw), "y"))
	}}
}

// Numeric parses plain numbers; anything else is missing
func Numeric() table.Converter {
	return table.Converter{Type: table.ColumnNumeric, Convert: func(raw string) table.Value {
		n, ok := ParseNumeric(raw)
		if !ok {
			return table.NewMissing()
		}
		return table.NewNumeric(n)
	}}
}

// Integer parses numbers and drops the fractional part
func Integer() table.Converter {
	return table.Converter{
		Type: table.ColumnNumeric,
		Convert: func(raw string) table.Value {
			n, ok := ParseNumeric(raw)
			if !ok {
				return table.NewMissing()
			}
			return table.NewNumeric(math.Trunc(n))
		},
		Typed: func(v table.Value) table.Value {
			f, _ := v.Float()
			return table.NewNumeric(math.Trunc(f))
		},
	}
}

// Timestamp parses any of the supported date layouts; anything else is missing
func Timestamp() table.Converter {
	return table.Converter{Type: table.ColumnTimestamp, Convert: func(raw string) table.Value {
		t, ok := ParseTimestamp(raw)
		if !ok {
			return table.NewMissing()
		}
		return table.NewTimestamp(t)
	}}
}

// Coercion counts cells per column that held a value before conversion and
// were missing after it.
type Coercion struct {
	Column  string
	Coerced int
}

// Apply converts an existing column through conv. Text cells go through
// Convert; cells already of conv.Type are kept, or passed to conv.Typed when
// set, so a converted column is never converted twice.
func Apply(rs *table.RowSet, col string, conv table.Converter) (*table.RowSet, Coercion, error) {
	report := Coercion{Column: col}
	if _, ok := rs.Schema().Index(col); !ok {
		return nil, report, core.NewColumnNotFoundError(col)
	}
	out, err := rs.WithColumn(table.Column{Name: col, Type: conv.Type}, func(r table.Row) table.Value {
		cur := r.Get(col)
		if cur.Type() == table.ValueType(conv.Type) {
			if conv.Typed != nil {
				return conv.Typed(cur)
			}
			return cur
		}
		if cur.IsMissing() {
			if conv.Type == table.ColumnBoolean {
				return conv.Convert("")
			}
			return cur
		}
		v := conv.Convert(cur.String())
		if v.IsMissing() {
			report.Coerced++
		}
		return v
	})
	if err != nil {
		return nil, report, err
	}
	return out, report, nil
}

// ToNumeric converts col to numeric, invalid cells becoming missing
func ToNumeric(rs *table.RowSet, col string) (*table.RowSet, Coercion, error) {
	return Apply(rs, col, Numeric())
}

// ToTimestamp converts col to timestamps, invalid cells becoming missing
func ToTimestamp(rs *table.RowSet, col string) (*table.RowSet, Coercion, error) {
	return Apply(rs, col, Timestamp())
}

// DateFromParts builds a timestamp column from numeric year, month and day
// columns. Rows with a missing or out-of-range part get a missing date.
func DateFromParts(rs *table.RowSet, out, yearCol, monthCol, dayCol string) (*table.RowSet, Coercion, error) {
	report := Coercion{Column: out}
	for _, c := range []string{yearCol, monthCol, dayCol} {
		if _, ok := rs.Schema().Index(c); !ok {
			return nil, report, core.NewColumnNotFoundError(c)
		}
	}
	part := func(r table.Row, col string) (int, bool) {
		f, ok := r.Get(col).Float()
		if !ok {
			n, parsed := ParseNumeric(r.Get(col).String())
			if !parsed {
				return 0, false
			}
			f = n
		}
		return int(f), f == math.Trunc(f)
	}
	res, err := rs.WithColumn(table.Column{Name: out, Type: table.ColumnTimestamp}, func(r table.Row) table.Value {
		y, okY := part(r, yearCol)
		m, okM := part(r, monthCol)
		d, okD := part(r, dayCol)
		if !okY || !okM || !okD || m < 1 || m > 12 || d < 1 || d > 31 {
			report.Coerced++
			return table.NewMissing()
		}
		t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		if t.Day() != d {
			// 2015-02-30 normalises into March; reject instead
			report.Coerced++
			return table.NewMissing()
		}
		return table.NewTimestamp(t)
	})
	if err != nil {
		return nil, report, fmt.Errorf("date from parts: %w", err)
	}
	return res, report, nil
}

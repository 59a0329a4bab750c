package coercer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sheetops/domain/table"
)

// TypeCoercer turns raw spreadsheet cells into typed values
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the inference thresholds and rules
type CoercionConfig struct {
	NumericThreshold   float64 `json:"numeric_threshold"`   // share of non-empty cells that must parse as numbers
	BooleanThreshold   float64 `json:"boolean_threshold"`   // share that must read true/false
	TimestampThreshold float64 `json:"timestamp_threshold"` // share that must parse as timestamps
	InferTimestamps    bool    `json:"infer_timestamps"`    // dates stay strings until parsed explicitly
	NormalizeStrings   bool    `json:"normalize_strings"`   // trim and collapse whitespace
}

// DefaultCoercionConfig infers strictly: a column becomes numeric only when
// every non-empty cell is a plain number.
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold:   1.0,
		BooleanThreshold:   1.0,
		TimestampThreshold: 1.0,
		InferTimestamps:    false,
		NormalizeStrings:   true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int              `json:"total_count"`
	ValidCount      int              `json:"valid_count"`
	NumericCount    int              `json:"numeric_count"`
	BooleanCount    int              `json:"boolean_count"`
	TimestampCount  int              `json:"timestamp_count"`
	NumericRatio    float64          `json:"numeric_ratio"`
	BooleanRatio    float64          `json:"boolean_ratio"`
	TimestampRatio  float64          `json:"timestamp_ratio"`
	RecommendedType table.ColumnType `json:"recommended_type"`
}

// AnalyzeTypeDistribution counts how many cells parse as each kind and picks a column type
func (c *TypeCoercer) AnalyzeTypeDistribution(cells []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(cells)}

	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		analysis.ValidCount++
		if _, ok := ParseNumeric(cell); ok {
			analysis.NumericCount++
		}
		if _, ok := parseLiteralBoolean(cell); ok {
			analysis.BooleanCount++
		}
		if c.config.InferTimestamps {
			if _, ok := ParseTimestamp(cell); ok {
				analysis.TimestampCount++
			}
		}
	}

	if analysis.ValidCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.ValidCount)
		analysis.BooleanRatio = float64(analysis.BooleanCount) / float64(analysis.ValidCount)
		analysis.TimestampRatio = float64(analysis.TimestampCount) / float64(analysis.ValidCount)
	}
	analysis.RecommendedType = c.determineRecommendedType(analysis)
	return analysis
}

// determineRecommendedType chooses the best type based on analysis
func (c *TypeCoercer) determineRecommendedType(analysis TypeAnalysis) table.ColumnType {
	if analysis.ValidCount == 0 {
		// an all-empty column holds only missing cells; numeric widens cleanly on concat
		return table.ColumnNumeric
	}
	if analysis.NumericRatio >= c.config.NumericThreshold {
		return table.ColumnNumeric
	}
	if analysis.BooleanRatio >= c.config.BooleanThreshold {
		return table.ColumnBoolean
	}
	if c.config.InferTimestamps && analysis.TimestampRatio >= c.config.TimestampThreshold {
		return table.ColumnTimestamp
	}
	return table.ColumnString
}

// Column converts a whole column of raw cells to want. Cells that do not
// parse are an error; use a Converter for lenient conversion.
func (c *TypeCoercer) Column(name string, cells []string, want table.ColumnType) ([]table.Value, error) {
	out := make([]table.Value, len(cells))
	for i, cell := range cells {
		v, err := c.CoerceValue(cell, want)
		if err != nil {
			return nil, fmt.Errorf("column %s row %d: %w", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// CoerceValue strictly converts one raw cell to the requested type
func (c *TypeCoercer) CoerceValue(raw string, want table.ColumnType) (table.Value, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return table.NewMissing(), nil
	}

	switch want {
	case table.ColumnNumeric:
		if n, ok := ParseNumeric(trimmed); ok {
			return table.NewNumeric(n), nil
		}
	case table.ColumnBoolean:
		if b, ok := ParseBoolean(trimmed); ok {
			return table.NewBoolean(b), nil
		}
	case table.ColumnTimestamp:
		if t, ok := ParseTimestamp(trimmed); ok {
			return table.NewTimestamp(t), nil
		}
	case table.ColumnString, table.ColumnCategorical, "":
		return c.coerceToString(raw), nil
	}
	return table.Value{}, fmt.Errorf("cannot read %q as %s", raw, want)
}

// coerceToString converts to normalized string value
func (c *TypeCoercer) coerceToString(s string) table.Value {
	if c.config.NormalizeStrings {
		s = normalizeString(s)
	}
	return table.NewString(s)
}

var whitespace = regexp.MustCompile(`\s+`)

// normalizeString trims, collapses whitespace and removes control characters
func normalizeString(s string) string {
	s = strings.TrimSpace(s)
	s = whitespace.ReplaceAllString(s, " ")
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

// ParseNumeric accepts plain decimal numbers only. Currency symbols,
// separators and percent signs are the converters' business.
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// ParseBoolean accepts the usual textual boolean spellings
func ParseBoolean(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on":
		return true, true
	case "false", "0", "no", "n", "off":
		return false, true
	}
	return false, false
}

// parseLiteralBoolean is what inference accepts; Y/N flags stay strings
func parseLiteralBoolean(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// dateLayout pairs a layout with the start of the period after the one it
// names, so a partial date can be read as a span
type dateLayout struct {
	layout string
	next   func(time.Time) time.Time
}

func nextSecond(t time.Time) time.Time { return t.Add(time.Second) }
func nextDay(t time.Time) time.Time    { return t.AddDate(0, 0, 1) }
func nextMonth(t time.Time) time.Time  { return t.AddDate(0, 1, 0) }

// timestampFormats is tried in order; partial dates resolve to the first
// day of the period.
var timestampFormats = []dateLayout{
	{time.RFC3339, nextSecond},
	{"2006-01-02T15:04:05", nextSecond},
	{"2006-01-02 15:04:05", nextSecond},
	{"2006-01-02", nextDay},
	{"2006-01", nextMonth},
	{"2006/01/02", nextDay},
	{"01/02/2006", nextDay},
	{"01-02-2006", nextDay},
	{"20060102", nextDay},
	{"Jan-2006", nextMonth},
	{"January-2006", nextMonth},
	{"Jan 2006", nextMonth},
	{"02-Jan-2006", nextDay},
	{"2006-Jan-2", nextDay},
	{"2006-Jan", nextMonth},
	{"Jan 2, 2006", nextDay},
}

// ParseTimestamp parses full and partial dates
func ParseTimestamp(s string) (time.Time, bool) {
	t, _, ok := ParsePeriod(s)
	return t, ok
}

// ParsePeriod parses s like ParseTimestamp and also returns the last instant
// of the period s names: "2014-Dec" spans the month, "2014-Feb-1" the day.
func ParsePeriod(s string) (start, end time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, time.Time{}, false
	}
	for _, f := range timestampFormats {
		if t, err := time.Parse(f.layout, s); err == nil {
			return t, f.next(t).Add(-time.Nanosecond), true
		}
	}
	return time.Time{}, time.Time{}, false
}

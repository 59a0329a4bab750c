// Package dataset loads spreadsheet files into row-sets and joins them
// against lookup tables.
package dataset

import (
	"context"
	"fmt"
	"time"

	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal"
	"sheetops/internal/errors"
)

// MergeConfig holds configuration for join operations
type MergeConfig struct {
	KeyColumns      []string        // Columns to use as merge keys; empty means every shared column
	DuplicatePolicy DuplicatePolicy // How to handle repeated lookup keys
	Suffixes        [2]string       // Appended to clashing non-key column names, left then right
}

// DuplicatePolicy defines how to handle duplicate lookup keys
type DuplicatePolicy string

const (
	KeepFirst    DuplicatePolicy = "keep_first" // Keep first occurrence
	ErrorOnDupes DuplicatePolicy = "error"      // Error on duplicates
)

// DefaultMergeConfig joins on shared columns, first match wins
func DefaultMergeConfig() *MergeConfig {
	return &MergeConfig{
		DuplicatePolicy: KeepFirst,
		Suffixes:        [2]string{"_x", "_y"},
	}
}

// JoinResult contains the joined row-set and match statistics
type JoinResult struct {
	RowSet          *table.RowSet `json:"-"`
	KeyColumns      []string      `json:"key_columns"`
	Matched         int           `json:"matched"`
	Unmatched       int           `json:"unmatched"`
	DuplicatesFound int           `json:"duplicates_found,omitempty"`
	ExecutionTime   time.Duration `json:"execution_time"`
}

// Merger handles joins of a primary row-set with a lookup row-set
type Merger struct {
	config *MergeConfig
	logger *internal.Logger
}

// NewMerger creates a new merger; a nil config uses DefaultMergeConfig
func NewMerger(config *MergeConfig, logger *internal.Logger) *Merger {
	if config == nil {
		config = DefaultMergeConfig()
	}
	if config.DuplicatePolicy == "" {
		config.DuplicatePolicy = KeepFirst
	}
	if config.Suffixes[0] == "" && config.Suffixes[1] == "" {
		config.Suffixes = [2]string{"_x", "_y"}
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Merger{config: config, logger: logger.With("Joiner")}
}

// LeftJoin keeps every left row in order and attaches the lookup's non-key
// columns. Rows without a match get missing values in those columns.
func (m *Merger) LeftJoin(ctx context.Context, left, right *table.RowSet) (*JoinResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	keys, err := m.resolveKeys(left, right)
	if err != nil {
		return nil, err
	}
	if err := validateKeyTypes(left, right, keys); err != nil {
		return nil, err
	}

	lookup, err := table.NewLookupTable(right, keys...)
	if err != nil {
		return nil, errors.ColumnNotFound(keys[0], err)
	}
	if dupes := len(lookup.Duplicates()); dupes > 0 {
		if m.config.DuplicatePolicy == ErrorOnDupes {
			return nil, errors.JoinAmbiguity(dupes)
		}
		m.logger.Warn("lookup has %d duplicate keys on %v; first match wins", dupes, keys)
	}

	schema, err := m.joinedSchema(left, keys, lookup.ValueColumns())
	if err != nil {
		return nil, err
	}

	leftKeyIdx := make([]int, len(keys))
	for i, k := range keys {
		leftKeyIdx[i], _ = left.Schema().Index(k)
	}
	width := len(lookup.ValueColumns())
	result := &JoinResult{KeyColumns: keys, DuplicatesFound: len(lookup.Duplicates())}
	records := make([]table.Record, left.Len())
	for i := 0; i < left.Len(); i++ {
		row := left.Row(i).Values()
		key := make([]table.Value, len(leftKeyIdx))
		for n, j := range leftKeyIdx {
			key[n] = row[j]
		}
		attached, ok := lookup.Lookup(key...)
		if ok {
			result.Matched++
		} else {
			result.Unmatched++
			attached = make(table.Record, width)
		}
		records[i] = append(row, attached...)
	}

	rs, err := table.New(schema, records)
	if err != nil {
		return nil, errors.Wrap(err, "left join")
	}
	result.RowSet = rs
	result.ExecutionTime = time.Since(startTime)

	m.logger.Info("joined on %v: %d matched, %d unmatched", keys, result.Matched, result.Unmatched)
	return result, nil
}

func (m *Merger) resolveKeys(left, right *table.RowSet) ([]string, error) {
	if len(m.config.KeyColumns) > 0 {
		for _, k := range m.config.KeyColumns {
			if _, ok := left.Schema().Index(k); !ok {
				return nil, errors.ColumnNotFound(k, core.NewColumnNotFoundError(k))
			}
			if _, ok := right.Schema().Index(k); !ok {
				return nil, errors.ColumnNotFound(k, core.NewColumnNotFoundError(k))
			}
		}
		return append([]string(nil), m.config.KeyColumns...), nil
	}

	var shared []string
	for _, name := range left.Names() {
		if _, ok := right.Schema().Index(name); ok {
			shared = append(shared, name)
		}
	}
	if len(shared) == 0 {
		return nil, errors.InvalidInput("no shared columns to join on")
	}
	return shared, nil
}

// validateKeyTypes refuses keys whose declared types can never compare equal
func validateKeyTypes(left, right *table.RowSet, keys []string) error {
	for _, k := range keys {
		lc, _ := left.Schema().Column(k)
		rc, _ := right.Schema().Column(k)
		if textual(lc.Type) && textual(rc.Type) {
			continue
		}
		if lc.Type != rc.Type {
			return errors.TypeMismatch(
				fmt.Sprintf("join key %s is %s on the left and %s on the right", k, lc.Type, rc.Type),
				core.ErrMixedTypes)
		}
	}
	return nil
}

func textual(t table.ColumnType) bool {
	return t == table.ColumnString || t == table.ColumnCategorical
}

// joinedSchema appends the lookup's value columns, suffixing names that clash
func (m *Merger) joinedSchema(left *table.RowSet, keys []string, values []table.Column) (table.Schema, error) {
	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}
	incoming := make(map[string]bool, len(values))
	for _, c := range values {
		incoming[c.Name] = true
	}

	cols := left.Schema().Columns()
	for i := range cols {
		if !isKey[cols[i].Name] && incoming[cols[i].Name] {
			cols[i].Name += m.config.Suffixes[0]
		}
	}
	for _, c := range values {
		if _, clash := left.Schema().Index(c.Name); clash {
			c.Name += m.config.Suffixes[1]
		}
		cols = append(cols, c)
	}

	schema, err := table.NewSchema(cols...)
	if err != nil {
		return table.Schema{}, errors.SchemaMismatch("joined columns collide", err)
	}
	return schema, nil
}

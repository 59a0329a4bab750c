package table

import (
	"fmt"

	"sheetops/domain/core"
)

// ColumnType is the declared type of a column
type ColumnType string

const (
	ColumnString      ColumnType = "string"
	ColumnNumeric     ColumnType = "numeric"
	ColumnBoolean     ColumnType = "boolean"
	ColumnTimestamp   ColumnType = "timestamp"
	ColumnCategorical ColumnType = "categorical"
)

// Accepts reports whether a cell of kind k may live in a column of this type.
// Missing is accepted everywhere.
func (c ColumnType) Accepts(k ValueType) bool {
	if k == ValueTypeMissing {
		return true
	}
	switch c {
	case ColumnString, ColumnCategorical:
		return k == ValueTypeString
	case ColumnNumeric:
		return k == ValueTypeNumeric
	case ColumnBoolean:
		return k == ValueTypeBoolean
	case ColumnTimestamp:
		return k == ValueTypeTimestamp
	}
	return false
}

// ColumnTypeOf returns the column type that holds values of kind k
func ColumnTypeOf(k ValueType) ColumnType {
	switch k {
	case ValueTypeNumeric:
		return ColumnNumeric
	case ValueTypeBoolean:
		return ColumnBoolean
	case ValueTypeTimestamp:
		return ColumnTimestamp
	}
	return ColumnString
}

// Column describes one column. Categories is set only for categorical columns.
type Column struct {
	Name       string
	Type       ColumnType
	Categories *CategorySet
}

// Schema is an ordered, name-unique list of columns
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a schema, rejecting duplicate names
func NewSchema(cols ...Column) (Schema, error) {
	s := Schema{
		columns: make([]Column, len(cols)),
		index:   make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if _, dup := s.index[c.Name]; dup {
			return Schema{}, fmt.Errorf("%w: %s", core.ErrDuplicateName, c.Name)
		}
		if c.Type == "" {
			c.Type = ColumnString
		}
		s.columns[i] = c
		s.index[c.Name] = i
	}
	return s, nil
}

// Len returns the number of columns
func (s Schema) Len() int {
	return len(s.columns)
}

// Columns returns a copy of the column list
func (s Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns column names in order
func (s Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column
func (s Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Column returns the named column
func (s Schema) Column(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// At returns the column at position i
func (s Schema) At(i int) Column {
	return s.columns[i]
}

// Equal reports same names in the same order
func (s Schema) Equal(o Schema) bool {
	if len(s.columns) != len(o.columns) {
		return false
	}
	for i := range s.columns {
		if s.columns[i].Name != o.columns[i].Name {
			return false
		}
	}
	return true
}

// Compatible reports the same set of names, in any order
func (s Schema) Compatible(o Schema) error {
	if len(s.columns) != len(o.columns) {
		return fmt.Errorf("%w: column count mismatch: expected %d, got %d",
			core.ErrSchemaMismatch, len(s.columns), len(o.columns))
	}
	for _, c := range o.columns {
		if _, ok := s.index[c.Name]; !ok {
			return fmt.Errorf("%w: unexpected column %s", core.ErrSchemaMismatch, c.Name)
		}
	}
	return nil
}

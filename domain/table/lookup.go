package table

import (
	"sheetops/domain/core"
)

// LookupTable maps a (possibly composite) key to the remaining columns of a
// row-set. When a key repeats, the first row wins and the key is recorded in
// Duplicates.
type LookupTable struct {
	keys       []string
	keyIdx     []int
	valueCols  []Column
	valueIdx   []int
	entries    map[string]Record
	duplicates [][]Value
}

// NewLookupTable indexes rs by the key columns
func NewLookupTable(rs *RowSet, keys ...string) (*LookupTable, error) {
	if len(keys) == 0 {
		return nil, core.NewColumnNotFoundError("<lookup key>")
	}
	keyIdx, err := rs.indexes(keys)
	if err != nil {
		return nil, err
	}

	isKey := make(map[int]bool, len(keyIdx))
	for _, i := range keyIdx {
		isKey[i] = true
	}
	lt := &LookupTable{
		keys:    append([]string(nil), keys...),
		keyIdx:  keyIdx,
		entries: make(map[string]Record, rs.Len()),
	}
	for i, c := range rs.schema.columns {
		if !isKey[i] {
			lt.valueCols = append(lt.valueCols, c)
			lt.valueIdx = append(lt.valueIdx, i)
		}
	}

	for _, row := range rs.rows {
		if hasMissing(row, keyIdx) {
			continue
		}
		k := compositeKey(row, keyIdx)
		if _, dup := lt.entries[k]; dup {
			parts := make([]Value, len(keyIdx))
			for n, i := range keyIdx {
				parts[n] = row[i]
			}
			lt.duplicates = append(lt.duplicates, parts)
			continue
		}
		vals := make(Record, len(lt.valueIdx))
		for n, i := range lt.valueIdx {
			vals[n] = row[i]
		}
		lt.entries[k] = vals
	}
	return lt, nil
}

// Keys returns the key column names
func (lt *LookupTable) Keys() []string {
	return append([]string(nil), lt.keys...)
}

// ValueColumns returns the non-key columns attached by a lookup
func (lt *LookupTable) ValueColumns() []Column {
	return append([]Column(nil), lt.valueCols...)
}

// Len returns the number of distinct keys
func (lt *LookupTable) Len() int {
	return len(lt.entries)
}

// Duplicates returns every repeated key occurrence after the first
func (lt *LookupTable) Duplicates() [][]Value {
	return lt.duplicates
}

// Lookup resolves key values given in key-column order. Keys containing a
// missing value never match.
func (lt *LookupTable) Lookup(key ...Value) (Record, bool) {
	if len(key) != len(lt.keyIdx) {
		return nil, false
	}
	idx := make([]int, len(key))
	for i := range idx {
		idx[i] = i
	}
	if hasMissing(key, idx) {
		return nil, false
	}
	rec, ok := lt.entries[compositeKey(key, idx)]
	return rec, ok
}

func hasMissing(row Record, idx []int) bool {
	for _, i := range idx {
		if row[i].IsMissing() {
			return true
		}
	}
	return false
}

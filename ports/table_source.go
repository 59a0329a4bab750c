package ports

import (
	"context"

	"sheetops/domain/table"
)

// ReadOptions mirrors a spreadsheet reader's dtype and converters arguments.
// Converters win over DTypes for the same column; every other column is inferred.
type ReadOptions struct {
	DTypes     map[string]table.ColumnType
	Converters map[string]table.Converter
}

// TableSource loads spreadsheet files into row-sets
type TableSource interface {
	// LoadFile reads one file
	LoadFile(ctx context.Context, path string, opts ReadOptions) (*table.RowSet, error)

	// LoadPattern reads and concatenates every file matching a glob, in
	// lexical order, and returns the paths it read
	LoadPattern(ctx context.Context, pattern string, opts ReadOptions) (*table.RowSet, []string, error)
}

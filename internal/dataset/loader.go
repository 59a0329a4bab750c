package dataset

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sheetops/adapters/excel"
	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal"
	"sheetops/internal/errors"
	"sheetops/ports"
)

// Loader reads one or more spreadsheet files into a single row-set
type Loader struct {
	config excel.ExcelConfig
	logger *internal.Logger
}

// NewLoader creates a loader using the given reader configuration
func NewLoader(config excel.ExcelConfig, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{config: config, logger: logger.With("Loader")}
}

// Discover expands a glob pattern in lexical order. Office lock files
// ("~$name.xlsx") are skipped. No match is a file error.
func (l *Loader) Discover(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("bad file pattern %q: %v", pattern, err))
	}

	var paths []string
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), "~$") {
			continue
		}
		paths = append(paths, m)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, errors.FileError(pattern, core.ErrFileNotFound)
	}
	l.logger.Debug("pattern %s matched %d files", pattern, len(paths))
	return paths, nil
}

// LoadFile reads a single file
func (l *Loader) LoadFile(ctx context.Context, path string, opts ports.ReadOptions) (*table.RowSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	startTime := time.Now()
	rs, err := excel.NewDataReader(path, l.config, l.logger).ReadRowSet(opts)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("loaded %s: %d rows, %d columns in %s", path, rs.Len(), rs.Schema().Len(), time.Since(startTime))
	return rs, nil
}

// Load concatenates files in argument order, each file's rows in file order.
// Later files may order their columns differently; the first file's order wins.
func (l *Loader) Load(ctx context.Context, opts ports.ReadOptions, paths ...string) (*table.RowSet, error) {
	if len(paths) == 0 {
		return nil, errors.InvalidInput("no input files")
	}

	var combined *table.RowSet
	for _, path := range paths {
		rs, err := l.LoadFile(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		if combined == nil {
			combined = rs
			continue
		}
		next, err := combined.Concat(rs)
		if err != nil {
			if stderrors.Is(err, core.ErrMixedTypes) {
				return nil, errors.TypeMismatch(fmt.Sprintf("cannot combine %s", path), err)
			}
			return nil, errors.SchemaMismatch(fmt.Sprintf("cannot combine %s", path), err)
		}
		combined = next
	}

	l.logger.Info("combined %d files into %d rows", len(paths), combined.Len())
	return combined, nil
}

// LoadPattern discovers and loads every file matching pattern
func (l *Loader) LoadPattern(ctx context.Context, pattern string, opts ports.ReadOptions) (*table.RowSet, []string, error) {
	paths, err := l.Discover(pattern)
	if err != nil {
		return nil, nil, err
	}
	rs, err := l.Load(ctx, opts, paths...)
	if err != nil {
		return nil, nil, err
	}
	return rs, paths, nil
}

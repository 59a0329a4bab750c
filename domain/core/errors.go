package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// File errors
	ErrFileNotFound      = errors.New("file not found")
	ErrUnreadable        = errors.New("file unreadable")
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// Table errors
	ErrEmpty          = errors.New("no header row")
	ErrSchemaMismatch = errors.New("incompatible column set")
	ErrColumnNotFound = errors.New("column not found")
	ErrDuplicateName  = errors.New("duplicate column name")
	ErrMixedTypes     = errors.New("column holds mixed value types")
	ErrNotCategory    = errors.New("value outside category set")
	ErrRowLength      = errors.New("row length does not match schema")
	ErrNotNumeric     = errors.New("column is not numeric")
)

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
}

func NewMixedTypesError(column, declared, found string) error {
	return fmt.Errorf("%w: column %s declared %s holds %s", ErrMixedTypes, column, declared, found)
}

// Error checking helpers
func IsFileError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrUnreadable) ||
		errors.Is(err, ErrUnsupportedFormat)
}

func IsParseError(err error) bool {
	return errors.Is(err, ErrEmpty) ||
		errors.Is(err, ErrSchemaMismatch) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrMixedTypes) ||
		errors.Is(err, ErrRowLength)
}

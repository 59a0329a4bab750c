package core

import (
	"github.com/google/uuid"
)

// RunID identifies one walkthrough invocation in logs
type RunID string

// NewRunID creates a time-ordered identifier using UUID v7, falling back to v4
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// Short returns the first eight characters, enough to tell runs apart in a log tail
func (id RunID) Short() string {
	if len(id) < 8 {
		return string(id)
	}
	return string(id[:8])
}

// IsEmpty checks if the ID is empty
func (id RunID) IsEmpty() bool {
	return id == ""
}

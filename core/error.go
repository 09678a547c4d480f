package core

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// NotFoundError is raised when an entity referenced by id does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Data of class %s with id %d not found in the database", e.Entity, e.ID)
}

// MissingIdentifierError is raised when a payload references a related entity
// without providing its id.
type MissingIdentifierError struct {
	Entity string
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("Missing identifier for provided %s object", e.Entity)
}

// PageOutOfBoundsError is raised when a requested page lies beyond the last
// page of a non-empty result set.
type PageOutOfBoundsError struct {
	Requested  int
	TotalPages int
}

func (e *PageOutOfBoundsError) Error() string {
	return fmt.Sprintf("Requested page %d exceeds total pages (%d). Indexing is 0-based.", e.Requested, e.TotalPages)
}

// IsConstraintError reports whether err is a sqlite constraint violation
// (unique or foreign key).
func IsConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint
}

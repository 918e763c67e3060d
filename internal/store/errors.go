package store

import (
	"fmt"

	"github.com/go-ports/aka/internal/models"
)

// NotFoundError reports that no record exists for an alias name.
type NotFoundError struct {
	Alias string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("alias not found: %s", e.Alias)
}

// ScopeNotFoundError reports that an alias exists but holds no definition
// for the requested scope.
type ScopeNotFoundError struct {
	Alias string
	Scope models.Scope
}

func (e *ScopeNotFoundError) Error() string {
	return fmt.Sprintf("no definition for alias %q in scope %s", e.Alias, e.Scope)
}

// StorageError reports that the persistence collaborator failed to open,
// begin, or commit a transaction. Domain state is unchanged when it is
// returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

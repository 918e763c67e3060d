// Package store implements the scoped alias store: alias name to an ordered
// set of (command, scope) definitions, persisted through the kv contract.
package store

import (
	"github.com/go-ports/aka/internal/kv"
	"github.com/go-ports/aka/internal/models"
)

// Store owns all alias records. Durability is delegated to the kv
// collaborator; a mutation has happened only once its transaction commits,
// and a failed commit leaves every record as it was.
type Store struct {
	db kv.DB
}

// New wraps an already-open kv collaborator.
func New(db kv.DB) *Store { return &Store{db: db} }

// Open opens the store backed by the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := kv.Open(path)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// decodeValue interprets one stored value. Values predating scoped
// definitions are a single raw command string; they decode as one Global
// definition so old databases keep working without migration. The raw form
// never leaves this boundary.
func decodeValue(raw string) []models.Definition {
	defs, err := models.DecodeDefinitions(raw)
	if err != nil {
		return []models.Definition{{Command: raw, Scope: models.Global()}}
	}
	return defs
}

// Add persists one definition under name. An existing definition with an
// equal scope is replaced, so a repeated add is an update, never a
// duplicate.
func (s *Store) Add(name, command string, scope models.Scope) error {
	tx, err := s.db.BeginWrite()
	if err != nil {
		return &StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	var defs []models.Definition
	if raw, ok, err := tx.Get(name); err != nil {
		return &StorageError{Op: "get", Err: err}
	} else if ok {
		defs = decodeValue(raw)
	}

	kept := make([]models.Definition, 0, len(defs)+1)
	for _, d := range defs {
		if d.Scope != scope {
			kept = append(kept, d)
		}
	}
	kept = append(kept, models.Definition{Command: command, Scope: scope})

	value, err := models.EncodeDefinitions(kept)
	if err != nil {
		return err
	}
	if err := tx.Insert(name, value); err != nil {
		return &StorageError{Op: "insert", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "commit", Err: err}
	}
	return nil
}

// Remove deletes the whole record for name and returns its definitions.
func (s *Store) Remove(name string) ([]models.Definition, error) {
	tx, err := s.db.BeginWrite()
	if err != nil {
		return nil, &StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	raw, ok, err := tx.Remove(name)
	if err != nil {
		return nil, &StorageError{Op: "remove", Err: err}
	}
	if !ok {
		return nil, &NotFoundError{Alias: name}
	}
	defs := decodeValue(raw)
	if err := tx.Commit(); err != nil {
		return nil, &StorageError{Op: "commit", Err: err}
	}
	return defs, nil
}

// RemoveScope removes exactly the definition of name whose scope equals
// scope. When that was the last definition the whole record is deleted;
// otherwise the remainder is persisted.
func (s *Store) RemoveScope(name string, scope models.Scope) (models.Definition, error) {
	var zero models.Definition

	tx, err := s.db.BeginWrite()
	if err != nil {
		return zero, &StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	raw, ok, err := tx.Get(name)
	if err != nil {
		return zero, &StorageError{Op: "get", Err: err}
	}
	if !ok {
		return zero, &NotFoundError{Alias: name}
	}

	defs := decodeValue(raw)
	var removed *models.Definition
	kept := make([]models.Definition, 0, len(defs))
	for _, d := range defs {
		if d.Scope == scope && removed == nil {
			hit := d
			removed = &hit
			continue
		}
		kept = append(kept, d)
	}
	if removed == nil {
		return zero, &ScopeNotFoundError{Alias: name, Scope: scope}
	}

	if len(kept) == 0 {
		if _, _, err := tx.Remove(name); err != nil {
			return zero, &StorageError{Op: "remove", Err: err}
		}
	} else {
		value, err := models.EncodeDefinitions(kept)
		if err != nil {
			return zero, err
		}
		if err := tx.Insert(name, value); err != nil {
			return zero, &StorageError{Op: "insert", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return zero, &StorageError{Op: "commit", Err: err}
	}
	return *removed, nil
}

// RemoveAll deletes every record and returns how many existed.
func (s *Store) RemoveAll() (int, error) {
	tx, err := s.db.BeginWrite()
	if err != nil {
		return 0, &StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	pairs, err := tx.All()
	if err != nil {
		return 0, &StorageError{Op: "iterate", Err: err}
	}
	for _, p := range pairs {
		if _, _, err := tx.Remove(p.Key); err != nil {
			return 0, &StorageError{Op: "remove", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, &StorageError{Op: "commit", Err: err}
	}
	return len(pairs), nil
}

// RemoveAllInScope removes, from every record, the definitions whose scope
// value-equals scope. Equality is exact: removing Recursive(/a) touches only
// that literally registered scope, never scopes nested under /a. Records
// left empty are deleted. The removed definitions are returned keyed by
// alias name.
func (s *Store) RemoveAllInScope(scope models.Scope) (map[string][]models.Definition, error) {
	tx, err := s.db.BeginWrite()
	if err != nil {
		return nil, &StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	pairs, err := tx.All()
	if err != nil {
		return nil, &StorageError{Op: "iterate", Err: err}
	}

	removed := make(map[string][]models.Definition)
	for _, p := range pairs {
		defs := decodeValue(p.Value)
		var hit, kept []models.Definition
		for _, d := range defs {
			if d.Scope == scope {
				hit = append(hit, d)
			} else {
				kept = append(kept, d)
			}
		}
		if len(hit) == 0 {
			continue
		}
		removed[p.Key] = hit

		if len(kept) == 0 {
			if _, _, err := tx.Remove(p.Key); err != nil {
				return nil, &StorageError{Op: "remove", Err: err}
			}
			continue
		}
		value, err := models.EncodeDefinitions(kept)
		if err != nil {
			return nil, err
		}
		if err := tx.Insert(p.Key, value); err != nil {
			return nil, &StorageError{Op: "insert", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, &StorageError{Op: "commit", Err: err}
	}
	return removed, nil
}

// List returns a full snapshot of every record. A never-populated store
// yields an empty map, never an error.
func (s *Store) List() (map[string][]models.Definition, error) {
	tx, err := s.db.BeginRead()
	if err != nil {
		return nil, &StorageError{Op: "begin", Err: err}
	}
	defer tx.Done()

	pairs, err := tx.All()
	if err != nil {
		return nil, &StorageError{Op: "iterate", Err: err}
	}
	out := make(map[string][]models.Definition, len(pairs))
	for _, p := range pairs {
		out[p.Key] = decodeValue(p.Value)
	}
	return out, nil
}

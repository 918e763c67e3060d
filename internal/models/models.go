// Package models defines the scope and definition types stored under an
// alias name, their JSON encoding, and the precedence rules used when
// generating shell source.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScopeKind enumerates the closed set of scope variants.
type ScopeKind int

const (
	// ScopeGlobal applies in every directory.
	ScopeGlobal ScopeKind = iota
	// ScopeExact applies in exactly one directory.
	ScopeExact
	// ScopeRecursive applies in a directory and everything beneath it.
	ScopeRecursive
)

// Scope is a closed sum over {Global, Exact(path), Recursive(path)}.
// For Exact and Recursive the path is absolute and canonicalized at creation
// time, so later equality and prefix tests are plain string operations.
type Scope struct {
	Kind ScopeKind
	Path string
}

// Global returns the scope active in every directory.
func Global() Scope { return Scope{Kind: ScopeGlobal} }

// Exact returns the scope active only in path.
func Exact(path string) Scope { return Scope{Kind: ScopeExact, Path: path} }

// Recursive returns the scope active in path and its whole subtree.
func Recursive(path string) Scope { return Scope{Kind: ScopeRecursive, Path: path} }

// Matches reports whether the scope is active in directory dir.
func (s Scope) Matches(dir string) bool {
	switch s.Kind {
	case ScopeGlobal:
		return true
	case ScopeExact:
		return dir == s.Path
	case ScopeRecursive:
		return isDirPrefix(s.Path, dir)
	}
	return false
}

func (s Scope) String() string {
	switch s.Kind {
	case ScopeExact:
		return s.Path
	case ScopeRecursive:
		if s.Path == "/" {
			return "/..."
		}
		return s.Path + "/..."
	default:
		return "global"
	}
}

// MarshalJSON encodes the scope with external tagging ("Global",
// {"Exact":"/p"}, {"Recursive":"/p"}), matching the layout already present
// in user databases.
func (s Scope) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case ScopeGlobal:
		return json.Marshal("Global")
	case ScopeExact:
		return json.Marshal(map[string]string{"Exact": s.Path})
	case ScopeRecursive:
		return json.Marshal(map[string]string{"Recursive": s.Path})
	}
	return nil, fmt.Errorf("models: unknown scope kind %d", s.Kind)
}

// UnmarshalJSON decodes the externally tagged form produced by MarshalJSON.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != "Global" {
			return fmt.Errorf("models: unknown scope variant %q", tag)
		}
		*s = Global()
		return nil
	}

	var variant map[string]string
	if err := json.Unmarshal(data, &variant); err != nil {
		return fmt.Errorf("models: decode scope: %w", err)
	}
	if len(variant) != 1 {
		return fmt.Errorf("models: scope must carry exactly one variant, got %d", len(variant))
	}
	for name, path := range variant {
		switch name {
		case "Exact":
			*s = Exact(path)
		case "Recursive":
			*s = Recursive(path)
		default:
			return fmt.Errorf("models: unknown scope variant %q", name)
		}
	}
	return nil
}

// isDirPrefix reports whether p covers d on directory-component boundaries:
// /a covers /a and /a/b but not /ab.
func isDirPrefix(p, d string) bool {
	if p == d {
		return true
	}
	if p == "/" {
		return strings.HasPrefix(d, "/")
	}
	return strings.HasPrefix(d, p+"/")
}

// InvalidScopeError reports a directory that could not be resolved to an
// absolute, existing path.
type InvalidScopeError struct {
	Path string
	Err  error
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("invalid scope path %q: %v", e.Path, e.Err)
}

func (e *InvalidScopeError) Unwrap() error { return e.Err }

// ResolveDir canonicalizes dir into the form scope paths are stored in:
// absolute, symlinks resolved, no trailing separator. The directory must
// exist.
func ResolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &InvalidScopeError{Path: dir, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &InvalidScopeError{Path: dir, Err: err}
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", &InvalidScopeError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return "", &InvalidScopeError{Path: dir, Err: errors.New("not a directory")}
	}
	return filepath.Clean(resolved), nil
}

// Definition binds one command to one scope under an alias name.
type Definition struct {
	Command string `json:"command"`
	Scope   Scope  `json:"scope"`
}

// EncodeDefinitions serializes defs as the canonical JSON list form.
func EncodeDefinitions(defs []Definition) (string, error) {
	data, err := json.Marshal(defs)
	if err != nil {
		return "", fmt.Errorf("models: encode definitions: %w", err)
	}
	return string(data), nil
}

// DecodeDefinitions parses the canonical JSON list form. Anything else is an
// error; the store layer decides how to treat values predating this format.
func DecodeDefinitions(value string) ([]Definition, error) {
	var defs []Definition
	if err := json.Unmarshal([]byte(value), &defs); err != nil {
		return nil, fmt.Errorf("models: decode definitions: %w", err)
	}
	return defs, nil
}

// CompareScopes returns a negative value when a precedes b in generation
// order: Exact before Recursive before Global, and within Exact or Recursive
// the longer path first so a nested directory is tested before the enclosing
// one. Equal-length paths order lexicographically to keep output
// deterministic.
func CompareScopes(a, b Scope) int {
	if a.Kind != b.Kind {
		return kindRank(a.Kind) - kindRank(b.Kind)
	}
	if len(a.Path) != len(b.Path) {
		return len(b.Path) - len(a.Path)
	}
	return strings.Compare(a.Path, b.Path)
}

func kindRank(k ScopeKind) int {
	switch k {
	case ScopeExact:
		return 0
	case ScopeRecursive:
		return 1
	default:
		return 2
	}
}

// SortDefinitions orders defs in place by generation precedence.
func SortDefinitions(defs []Definition) {
	sort.SliceStable(defs, func(i, j int) bool {
		return CompareScopes(defs[i].Scope, defs[j].Scope) < 0
	})
}

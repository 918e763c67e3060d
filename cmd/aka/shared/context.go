// Package shared holds the context passed to all CLI commands.
package shared

import (
	"github.com/go-ports/aka/internal/config"
	"github.com/go-ports/aka/internal/models"
	"github.com/go-ports/aka/internal/store"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// DataDir overrides the data directory. When empty, resolution falls
	// through to AKA_DATA_DIR env → $XDG_DATA_HOME/aka → ~/.local/share/aka.
	DataDir string
}

// OpenStore opens the alias store in the resolved data directory.
func (c *Context) OpenStore() (*store.Store, error) {
	return store.Open(config.DBPath(c.DataDir))
}

// ScopeFromFlags turns the shared --dir/--recursive flag pair into a scope.
// Neither flag set means Global; --recursive without --dir scopes to the
// current directory. Directories resolve through models.ResolveDir, so a
// path that does not exist is rejected here.
func ScopeFromFlags(dir string, recursive bool) (models.Scope, error) {
	if dir == "" && !recursive {
		return models.Global(), nil
	}
	if dir == "" {
		dir = "."
	}
	resolved, err := models.ResolveDir(dir)
	if err != nil {
		return models.Scope{}, err
	}
	if recursive {
		return models.Recursive(resolved), nil
	}
	return models.Exact(resolved), nil
}

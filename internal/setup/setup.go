// Package setup installs the aka integration hook into the user's shell rc
// file.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HookLine is the single line evaluated by the shell rc file. Everything
// else (prompt hooks, function definitions) flows through `aka init`.
const HookLine = `eval "$(aka init)"`

// DetectShell returns the base name of $SHELL ("zsh", "bash", ...).
func DetectShell() string {
	return filepath.Base(os.Getenv("SHELL"))
}

// RCPath maps a shell name to its rc file, or "" for unsupported shells.
func RCPath(shell string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch shell {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	default:
		return ""
	}
}

// Install appends the aka hook to rcPath unless it is already present,
// creating the file if needed. It reports whether the file was modified.
func Install(rcPath string) (bool, error) {
	existing, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("setup.Install: %w", err)
	}
	if strings.Contains(string(existing), HookLine) {
		return false, nil
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("setup.Install: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n# aka alias manager\n%s\n", HookLine); err != nil {
		return false, fmt.Errorf("setup.Install: %w", err)
	}
	return true, nil
}

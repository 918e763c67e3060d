// Package history reads recent shell-history entries and hands one to an
// external fuzzy selector so the choice can be registered as an alias.
package history

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultLimit bounds how many distinct entries are offered for selection.
const DefaultLimit = 200

// ErrCancelled is returned when the interactive selection is declined.
var ErrCancelled = errors.New("selection cancelled")

// ResolveFile returns the history file to read.
// Priority: AKA_HISTORY_FILE env, HISTFILE env, ~/.zsh_history,
// ~/.bash_history.
func ResolveFile() (string, error) {
	for _, env := range []string{"AKA_HISTORY_FILE", "HISTFILE"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("history.ResolveFile: %w", err)
	}
	for _, name := range []string{".zsh_history", ".bash_history"} {
		p := filepath.Join(home, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.New("history file not found; set HISTFILE or AKA_HISTORY_FILE")
}

// Read returns up to limit distinct commands from path, newest first.
// limit <= 0 means DefaultLimit.
func Read(path string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("history.Read: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	seen := make(map[string]bool)
	var entries []string
	for i := len(lines) - 1; i >= 0; i-- {
		cmd, ok := parseLine(lines[i])
		if !ok {
			continue
		}
		cmd = strings.TrimSpace(cmd)
		if cmd == "" || seen[cmd] {
			continue
		}
		seen[cmd] = true
		entries = append(entries, cmd)
		if len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

// parseLine extracts the command from one history line. The zsh extended
// format is ": <epoch>:<duration>;<command>"; bash timestamp comments
// "#<epoch>" carry no command of their own.
func parseLine(line string) (string, bool) {
	if rest, ok := strings.CutPrefix(line, ": "); ok {
		if _, cmd, found := strings.Cut(rest, ";"); found {
			return cmd, true
		}
	}
	if rest, ok := strings.CutPrefix(line, "#"); ok && rest != "" && allDigits(rest) {
		return "", false
	}
	return line, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Selector picks one entry from a candidate list. Implementations report
// ErrCancelled when the user backs out.
type Selector interface {
	Select(entries []string) (string, error)
}

// FzfSelector shells out to an external fuzzy finder.
type FzfSelector struct {
	// Bin is the selector binary; empty falls back to $AKA_FZF_BIN, then
	// "fzf".
	Bin string
}

// Select pipes entries to the finder and returns the chosen line.
func (f FzfSelector) Select(entries []string) (string, error) {
	if len(entries) == 0 {
		return "", ErrCancelled
	}
	bin := f.Bin
	if bin == "" {
		bin = os.Getenv("AKA_FZF_BIN")
	}
	if bin == "" {
		bin = "fzf"
	}

	cmd := exec.Command(bin, "--exit-0", "--reverse", "--height=40%", "--prompt=aka> ")
	cmd.Stdin = strings.NewReader(strings.Join(entries, "\n"))
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", fmt.Errorf("history selector %q not runnable: %w", bin, err)
		}
		// A nonzero exit means the user backed out of the finder.
		return "", ErrCancelled
	}

	selected := strings.TrimSpace(string(out))
	if selected == "" {
		return "", ErrCancelled
	}
	return selected, nil
}

package history_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/aka/internal/history"
)

func writeHistory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "histfile")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writeHistory: %v", err)
	}
	return path
}

func TestResolveFile(t *testing.T) {
	c := qt.New(t)

	c.Run("AKA_HISTORY_FILE wins over HISTFILE", func(c *qt.C) {
		t.Setenv("AKA_HISTORY_FILE", "/custom/history")
		t.Setenv("HISTFILE", "/other/history")
		path, err := history.ResolveFile()
		c.Assert(err, qt.IsNil)
		c.Assert(path, qt.Equals, "/custom/history")
	})

	c.Run("HISTFILE is the second choice", func(c *qt.C) {
		t.Setenv("AKA_HISTORY_FILE", "")
		t.Setenv("HISTFILE", "/other/history")
		path, err := history.ResolveFile()
		c.Assert(err, qt.IsNil)
		c.Assert(path, qt.Equals, "/other/history")
	})

	c.Run("falls back to well-known files in the home directory", func(c *qt.C) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("AKA_HISTORY_FILE", "")
		t.Setenv("HISTFILE", "")

		zsh := filepath.Join(home, ".zsh_history")
		c.Assert(os.WriteFile(zsh, nil, 0o600), qt.IsNil)
		path, err := history.ResolveFile()
		c.Assert(err, qt.IsNil)
		c.Assert(path, qt.Equals, zsh)
	})

	c.Run("no candidates is an error", func(c *qt.C) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("AKA_HISTORY_FILE", "")
		t.Setenv("HISTFILE", "")
		_, err := history.ResolveFile()
		c.Assert(err, qt.IsNotNil)
	})
}

func TestRead(t *testing.T) {
	c := qt.New(t)

	c.Run("zsh extended format yields the command part", func(c *qt.C) {
		path := writeHistory(t, ": 1700000000:0;git status\n: 1700000001:2;make test\n")
		entries, err := history.Read(path, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(entries, qt.DeepEquals, []string{"make test", "git status"})
	})

	c.Run("bash timestamp comments are skipped", func(c *qt.C) {
		path := writeHistory(t, "#1700000000\ngit status\n#1700000100\nls -la\n")
		entries, err := history.Read(path, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(entries, qt.DeepEquals, []string{"ls -la", "git status"})
	})

	c.Run("plain comment lines are kept", func(c *qt.C) {
		path := writeHistory(t, "#not a timestamp\n")
		entries, err := history.Read(path, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(entries, qt.DeepEquals, []string{"#not a timestamp"})
	})

	c.Run("entries deduplicate newest-first", func(c *qt.C) {
		path := writeHistory(t, "ls\ngit status\nls\n")
		entries, err := history.Read(path, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(entries, qt.DeepEquals, []string{"ls", "git status"})
	})

	c.Run("limit caps the result", func(c *qt.C) {
		path := writeHistory(t, "one\ntwo\nthree\nfour\n")
		entries, err := history.Read(path, 2)
		c.Assert(err, qt.IsNil)
		c.Assert(entries, qt.DeepEquals, []string{"four", "three"})
	})

	c.Run("invalid utf-8 does not break parsing", func(c *qt.C) {
		path := writeHistory(t, ": 1700000000:0;git status\n: 1700000001:0;echo \xff\nls -la\n")
		entries, err := history.Read(path, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(len(entries) >= 2, qt.IsTrue)
		c.Assert(entries[0], qt.Equals, "ls -la")
	})
}

// fakeSelector writes a tiny shell script standing in for fzf.
func fakeSelector(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selector")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("fakeSelector: %v", err)
	}
	return path
}

func TestFzfSelector(t *testing.T) {
	c := qt.New(t)

	c.Run("returns the selected line", func(c *qt.C) {
		sel := history.FzfSelector{Bin: fakeSelector(t, "head -n 1")}
		got, err := sel.Select([]string{"git status", "ls -la"})
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, "git status")
	})

	c.Run("nonzero exit is a cancellation", func(c *qt.C) {
		sel := history.FzfSelector{Bin: fakeSelector(t, "exit 130")}
		_, err := sel.Select([]string{"git status"})
		c.Assert(errors.Is(err, history.ErrCancelled), qt.IsTrue)
	})

	c.Run("empty output is a cancellation", func(c *qt.C) {
		sel := history.FzfSelector{Bin: fakeSelector(t, "exit 0")}
		_, err := sel.Select([]string{"git status"})
		c.Assert(errors.Is(err, history.ErrCancelled), qt.IsTrue)
	})

	c.Run("no entries is a cancellation", func(c *qt.C) {
		sel := history.FzfSelector{}
		_, err := sel.Select(nil)
		c.Assert(errors.Is(err, history.ErrCancelled), qt.IsTrue)
	})
}

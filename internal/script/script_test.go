package script_test

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/aka/internal/models"
	"github.com/go-ports/aka/internal/script"
)

func defs(d ...models.Definition) []models.Definition { return d }

func TestDumpGlobalOnly(t *testing.T) {
	c := qt.New(t)

	out := script.Dump(map[string][]models.Definition{
		"g": defs(models.Definition{Command: "git status", Scope: models.Global()}),
	})

	c.Run("bare body without a conditional wrapper", func(c *qt.C) {
		c.Assert(out, qt.Contains, "g() {\n    git status \"$@\"\n}\n")
		c.Assert(strings.Contains(out, "elif"), qt.IsFalse)
	})

	c.Run("guards precede the function", func(c *qt.C) {
		c.Assert(out, qt.Contains, "unset -f g 2>/dev/null\n")
		c.Assert(out, qt.Contains, "unalias g 2>/dev/null\n")
	})

	c.Run("marker records the generated names", func(c *qt.C) {
		c.Assert(out, qt.Contains, "_AKA_FUNCS='g'\n")
	})
}

func TestDumpPrecedenceOrder(t *testing.T) {
	c := qt.New(t)

	out := script.Dump(map[string][]models.Definition{
		"g": defs(
			models.Definition{Command: "echo global", Scope: models.Global()},
			models.Definition{Command: "echo subtree", Scope: models.Recursive("/a")},
			models.Definition{Command: "echo exact", Scope: models.Exact("/a/b")},
		),
	})

	exact := strings.Index(out, "echo exact")
	subtree := strings.Index(out, "echo subtree")
	global := strings.Index(out, "echo global")
	c.Assert(exact >= 0, qt.IsTrue)
	c.Assert(exact < subtree, qt.IsTrue)
	c.Assert(subtree < global, qt.IsTrue)

	c.Run("exact opens the chain, recursive continues it, global closes it", func(c *qt.C) {
		c.Assert(out, qt.Contains, `if [ "$PWD" = '/a/b' ]; then`)
		c.Assert(out, qt.Contains, `elif [ "$PWD" = '/a' ] || [ "${PWD#'/a/'}" != "$PWD" ]; then`)
		c.Assert(out, qt.Contains, "else\n        echo global \"$@\"\n    fi")
	})
}

func TestDumpScopedOnlyFallsBackToRealCommand(t *testing.T) {
	c := qt.New(t)

	out := script.Dump(map[string][]models.Definition{
		"ls": defs(models.Definition{Command: "ls -la", Scope: models.Exact("/work")}),
	})

	// Outside /work the function must invoke the unaliased program.
	c.Assert(out, qt.Contains, "else\n        command ls \"$@\"\n    fi")
}

func TestDumpNestedRecursiveScopes(t *testing.T) {
	c := qt.New(t)

	out := script.Dump(map[string][]models.Definition{
		"d": defs(
			models.Definition{Command: "echo outer", Scope: models.Recursive("/a")},
			models.Definition{Command: "echo inner", Scope: models.Recursive("/a/b")},
		),
	})

	// The inner subtree must be tested before the enclosing one, or it could
	// never win.
	c.Assert(strings.Index(out, "echo inner") < strings.Index(out, "echo outer"), qt.IsTrue)
	c.Assert(strings.Index(out, "if [ \"$PWD\" = '/a/b' ]") < strings.Index(out, "elif [ \"$PWD\" = '/a' ]"), qt.IsTrue)
}

func TestDumpArgumentForwarding(t *testing.T) {
	c := qt.New(t)

	out := script.Dump(map[string][]models.Definition{
		"a": defs(models.Definition{Command: "grep foo @1", Scope: models.Global()}),
		"b": defs(models.Definition{Command: "echo $1", Scope: models.Global()}),
		"c": defs(models.Definition{Command: "awk '{print $1}'", Scope: models.Global()}),
	})

	c.Run("placeholders are rewritten and suppress the suffix", func(c *qt.C) {
		c.Assert(out, qt.Contains, "a() {\n    grep foo $1\n}\n")
	})

	c.Run("commands already using arguments keep their own handling", func(c *qt.C) {
		c.Assert(out, qt.Contains, "b() {\n    echo $1\n}\n")
	})

	c.Run("single-quoted dollars still get the suffix", func(c *qt.C) {
		c.Assert(out, qt.Contains, "c() {\n    awk '{print $1}' \"$@\"\n}\n")
	})
}

func TestDumpQuotesPathsWithSpecialCharacters(t *testing.T) {
	c := qt.New(t)

	out := script.Dump(map[string][]models.Definition{
		"g": defs(models.Definition{Command: "echo x", Scope: models.Exact("/a dir/it's")}),
	})

	c.Assert(out, qt.Contains, `[ "$PWD" = '/a dir/it'\''s' ]`)
}

func TestDumpDeterministicNameOrderAndMarker(t *testing.T) {
	c := qt.New(t)

	aliases := map[string][]models.Definition{
		"zz": defs(models.Definition{Command: "echo z", Scope: models.Global()}),
		"aa": defs(models.Definition{Command: "echo a", Scope: models.Global()}),
		"mm": defs(models.Definition{Command: "echo m", Scope: models.Global()}),
	}

	out := script.Dump(aliases)
	c.Assert(strings.Index(out, "aa() {") < strings.Index(out, "mm() {"), qt.IsTrue)
	c.Assert(strings.Index(out, "mm() {") < strings.Index(out, "zz() {"), qt.IsTrue)
	c.Assert(out, qt.Contains, "_AKA_FUNCS='aa mm zz'\n")

	c.Run("repeated dumps are identical", func(c *qt.C) {
		c.Assert(script.Dump(aliases), qt.Equals, out)
	})
}

func TestDumpStaleSweepSplitsMarkerNames(t *testing.T) {
	c := qt.New(t)

	out := script.Dump(nil)
	// zsh keeps an unquoted parameter expansion as a single word, so iterating
	// ${_AKA_FUNCS} directly would sweep nothing there; command substitution
	// output is IFS-split in both shells.
	c.Assert(out, qt.Contains, `for _aka_fn in $(printf '%s' "${_AKA_FUNCS}"); do`)
	c.Assert(strings.Contains(out, "in ${_AKA_FUNCS}; do"), qt.IsFalse)
}

func TestDumpEmptyStoreStillClearsStaleFunctions(t *testing.T) {
	c := qt.New(t)

	out := script.Dump(nil)
	c.Assert(out, qt.Contains, `if [ -n "${_AKA_FUNCS:-}" ]; then`)
	c.Assert(out, qt.Contains, "_AKA_FUNCS=''\n")
	c.Assert(strings.Contains(out, "() {"), qt.IsFalse)
}

func TestDumpRestoresAliasExpansion(t *testing.T) {
	c := qt.New(t)

	out := script.Dump(nil)
	c.Assert(out, qt.Contains, "unsetopt aliases 2>/dev/null")
	c.Assert(out, qt.Contains, "setopt aliases 2>/dev/null")
	// Suspension happens before any function definition, restoration after
	// the marker is written.
	c.Assert(strings.Index(out, "unsetopt aliases") < strings.Index(out, "_AKA_FUNCS="), qt.IsTrue)
	c.Assert(strings.Index(out, "_AKA_FUNCS=") < strings.LastIndex(out, "setopt aliases"), qt.IsTrue)
}

func TestBootstrap(t *testing.T) {
	c := qt.New(t)

	out := script.Bootstrap("/usr/local/bin/aka")

	c.Assert(out, qt.Contains, `eval "$('/usr/local/bin/aka' init --dump)"`)
	c.Assert(out, qt.Contains, "precmd_functions+=(_aka_refresh)")
	c.Assert(out, qt.Contains, `PROMPT_COMMAND="_aka_refresh${PROMPT_COMMAND:+;$PROMPT_COMMAND}"`)
	// The hook body runs once at source time so aliases are available
	// immediately.
	c.Assert(strings.HasSuffix(out, "_aka_refresh\n"), qt.IsTrue)

	c.Run("re-sourcing must not register the hook twice", func(c *qt.C) {
		c.Assert(out, qt.Contains, `case " ${precmd_functions[*]} " in`)
		c.Assert(out, qt.Contains, `*" _aka_refresh "*) ;;`)
		c.Assert(out, qt.Contains, `case ";${PROMPT_COMMAND:-};" in`)
		c.Assert(out, qt.Contains, `*"_aka_refresh"*) ;;`)
	})
}

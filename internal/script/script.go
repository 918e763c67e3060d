// Package script renders the shell source that installs stored aliases as
// directory-aware shell functions. Bootstrap emits the one-time integration
// prologue; Dump emits the current function definitions and is re-evaluated
// after every interactive prompt.
package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-ports/aka/internal/models"
)

// Bootstrap returns the static integration snippet printed by `aka init`.
// It defines a refresh function that re-invokes dump mode, hooks it into the
// shell's prompt cycle (zsh precmd, bash PROMPT_COMMAND), and runs it once.
// Unrecognized shells get the one-time installation only: functions then
// refresh when the snippet is sourced again.
func Bootstrap(exePath string) string {
	exe := shQuote(exePath)
	return `# aka shell integration
# Installed via: eval "$(aka init)"
_aka_refresh() {
    eval "$(` + exe + ` init --dump)"
}
if [ -n "${ZSH_VERSION:-}" ]; then
    typeset -ga precmd_functions
    case " ${precmd_functions[*]} " in
        *" _aka_refresh "*) ;;
        *) precmd_functions+=(_aka_refresh) ;;
    esac
elif [ -n "${BASH_VERSION:-}" ]; then
    case ";${PROMPT_COMMAND:-};" in
        *"_aka_refresh"*) ;;
        *) PROMPT_COMMAND="_aka_refresh${PROMPT_COMMAND:+;$PROMPT_COMMAND}" ;;
    esac
else
    # Unrecognized shell: no prompt hook is available, so new aliases appear
    # the next time this snippet is evaluated.
    :
fi
_aka_refresh
`
}

// chainState tracks the conditional chain while emitting one function body.
type chainState int

const (
	noBranch chainState = iota // nothing emitted yet
	inChain                    // an if/elif chain is open
	chainClosed
)

// Dump renders shell functions for every stored alias. Output is
// deterministic: aliases emit in name order and definitions in scope
// precedence order.
func Dump(aliases map[string][]models.Definition) string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder

	// Clear functions installed by the previous dump before redefining
	// anything; the marker variable lives in the interactive shell between
	// evaluations, so aliases removed from the store disappear too. The names
	// are split through a command substitution: zsh keeps an unquoted
	// parameter expansion as one word, but IFS-splits unquoted substitution
	// output just like bash.
	b.WriteString(`if [ -n "${_AKA_FUNCS:-}" ]; then
    for _aka_fn in $(printf '%s' "${_AKA_FUNCS}"); do
        unset -f "$_aka_fn" 2>/dev/null
        unalias "$_aka_fn" 2>/dev/null
    done
    unset _aka_fn
fi
`)
	// zsh expands aliases while parsing function bodies, which corrupts any
	// body mentioning an aliased word. Suspend expansion for the block and
	// restore it only if it was on.
	b.WriteString(`_aka_restore_aliases=""
if [ -n "${ZSH_VERSION:-}" ]; then
    [[ -o aliases ]] && _aka_restore_aliases=1
    unsetopt aliases 2>/dev/null
fi
`)

	for _, name := range names {
		writeFunction(&b, name, aliases[name])
	}

	fmt.Fprintf(&b, "_AKA_FUNCS=%s\n", shQuote(strings.Join(names, " ")))
	b.WriteString(`if [ -n "${_aka_restore_aliases:-}" ]; then
    setopt aliases 2>/dev/null
fi
unset _aka_restore_aliases
`)
	return b.String()
}

func writeFunction(b *strings.Builder, name string, defs []models.Definition) {
	sorted := make([]models.Definition, len(defs))
	copy(sorted, defs)
	models.SortDefinitions(sorted)

	fmt.Fprintf(b, "unset -f %s 2>/dev/null\n", name)
	fmt.Fprintf(b, "unalias %s 2>/dev/null\n", name)
	fmt.Fprintf(b, "%s() {\n", name)

	state := noBranch
	sawGlobal := false
	for _, d := range sorted {
		body := processCommand(d.Command)
		switch d.Scope.Kind {
		case models.ScopeExact:
			fmt.Fprintf(b, "    %s [ \"$PWD\" = %s ]; then\n        %s\n",
				branchKeyword(state), shQuote(d.Scope.Path), body)
			state = inChain
		case models.ScopeRecursive:
			fmt.Fprintf(b, "    %s %s; then\n        %s\n",
				branchKeyword(state), subtreeTest(d.Scope.Path), body)
			state = inChain
		case models.ScopeGlobal:
			sawGlobal = true
			if state == inChain {
				fmt.Fprintf(b, "    else\n        %s\n    fi\n", body)
			} else {
				fmt.Fprintf(b, "    %s\n", body)
			}
			state = chainClosed
		}
	}
	if !sawGlobal && state == inChain {
		// Outside every scoped directory the alias must not shadow the real
		// command, so fall through to the unaliased program.
		fmt.Fprintf(b, "    else\n        command %s \"$@\"\n    fi\n", name)
	}
	b.WriteString("}\n")
}

func branchKeyword(state chainState) string {
	if state == inChain {
		return "elif"
	}
	return "if"
}

// subtreeTest builds the POSIX test for "current directory is p or below
// it". The prefix strip keeps the match on component boundaries: stripping
// '/a/' from /a/b changes the string, but /ab is left alone.
func subtreeTest(p string) string {
	prefix := p + "/"
	if p == "/" {
		prefix = "/"
	}
	return fmt.Sprintf(`[ "$PWD" = %s ] || [ "${PWD#%s}" != "$PWD" ]`,
		shQuote(p), shQuote(prefix))
}

// processCommand prepares one stored command for emission: rewrite @N
// placeholders, then append the forward-all-arguments suffix unless the
// command already consumes shell arguments.
func processCommand(command string) string {
	cmd := RewritePlaceholders(command)
	if UsesArguments(cmd) {
		return cmd
	}
	return cmd + ` "$@"`
}

// shQuote wraps s in single quotes, escaping embedded single quotes in the
// standard '\'' form.
func shQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

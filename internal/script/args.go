package script

import "strings"

// RewritePlaceholders replaces every '@' immediately followed by a digit
// with '$'. The substitution is textual and deliberately not quoting-aware,
// so users can write @1 in any quoting context and get the positional
// parameter.
func RewritePlaceholders(command string) string {
	var b strings.Builder
	b.Grow(len(command))
	for i := 0; i < len(command); i++ {
		if command[i] == '@' && i+1 < len(command) && isDigit(command[i+1]) {
			b.WriteByte('$')
			continue
		}
		b.WriteByte(command[i])
	}
	return b.String()
}

// scanState is the quoting context of the UsesArguments scanner.
type scanState int

const (
	stateNormal scanState = iota
	stateSingle
	stateDouble
	stateEscaped
)

// UsesArguments reports whether command already references shell positional
// ($1..$9, ${10}, ...) or special ($@, $*, $#) parameters, so the generator
// knows not to append a forward-all-arguments suffix. The scan honours shell
// quoting: a $ inside single quotes is literal and never counts, unquoted or
// double-quoted does, and a backslash escapes exactly the next character
// outside single quotes.
func UsesArguments(command string) bool {
	state := stateNormal
	resume := stateNormal // state to return to after an escape
	for i := 0; i < len(command); i++ {
		c := command[i]
		switch state {
		case stateEscaped:
			state = resume
		case stateSingle:
			if c == '\'' {
				state = stateNormal
			}
		case stateDouble:
			switch c {
			case '\\':
				resume = stateDouble
				state = stateEscaped
			case '"':
				state = stateNormal
			case '$':
				if parameterFollows(command[i+1:]) {
					return true
				}
			}
		default: // stateNormal
			switch c {
			case '\\':
				resume = stateNormal
				state = stateEscaped
			case '\'':
				state = stateSingle
			case '"':
				state = stateDouble
			case '$':
				if parameterFollows(command[i+1:]) {
					return true
				}
			}
		}
	}
	return false
}

// parameterFollows inspects the text after a '$' without moving the main
// scan position. rest starts at the character following the dollar sign.
// For the braced form the lookahead runs to the closing brace: the interior
// must consist solely of digits or the special characters @ * # to be a
// parameter; any other character makes it a named variable (${1foo} is a
// name, not a positional).
func parameterFollows(rest string) bool {
	if rest == "" {
		return false
	}
	c := rest[0]
	if isDigit(c) || c == '@' || c == '*' || c == '#' {
		return true
	}
	if c != '{' {
		return false
	}
	seen := false
	for j := 1; j < len(rest); j++ {
		switch inner := rest[j]; {
		case inner == '}':
			return seen
		case isDigit(inner) || inner == '@' || inner == '*' || inner == '#':
			seen = true
		default:
			return false
		}
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

package gitignore

import (
	"regexp"
	"strings"
)

// Path separator tokens for the generated expressions. Input paths are
// slash-normalized before matching, so a single separator suffices.
const (
	sepGroup = "[/]"
	nonSep   = "[^/]"
)

// translate converts a gitignore glob into the source of an equivalent
// regular expression over slash-separated relative paths.
//
// The semantics are fnmatch with FNM_PATHNAME: '*' and '?' never cross a
// separator, "**/" matches zero or more whole segments, and a trailing
// bare "**" matches everything below. Character classes follow shell
// globs, with '!' as a negation synonym for '^'; a separator inside a
// class is stripped, and an unterminated '[' is a literal bracket.
func translate(pattern string, dirOnly, negation, anchored bool) string {
	var b strings.Builder

	if anchored {
		b.WriteString("^")
	} else {
		// Unanchored patterns may start at any depth.
		b.WriteString("(^|" + sepGroup + ")")
	}

	i, n := 0, len(pattern)
	for i < n {
		c := pattern[i]
		i++
		switch c {
		case '*':
			if i < n && pattern[i] == '*' {
				i++
				if i < n && pattern[i] == '/' {
					i++
					b.WriteString("(.*" + sepGroup + ")?")
				} else {
					b.WriteString(".*")
				}
			} else {
				b.WriteString(nonSep + "*")
			}
		case '?':
			b.WriteString(nonSep)
		case '/':
			b.WriteString(sepGroup)
		case '[':
			j := i
			if j < n && pattern[j] == '!' {
				j++
			}
			if j < n && pattern[j] == ']' {
				j++
			}
			for j < n && pattern[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				continue
			}
			stuff := strings.ReplaceAll(pattern[i:j], `\`, `\\`)
			stuff = strings.ReplaceAll(stuff, "/", "")
			if stuff == "" {
				// The class held nothing but separators; degrade to a
				// literal bracket like the unterminated case.
				b.WriteString(`\[`)
				continue
			}
			i = j + 1
			if stuff[0] == '!' {
				stuff = "^" + stuff[1:]
			} else if stuff[0] == '^' {
				stuff = `\` + stuff
			}
			b.WriteString("[" + stuff + "]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	switch {
	case !dirOnly:
		b.WriteString("$")
	case negation:
		// Re-including a directory-only ignore requires an explicit
		// directory denotation on the query.
		b.WriteString("/$")
	default:
		b.WriteString("($|/)")
	}

	return b.String()
}

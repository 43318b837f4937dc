package precommit

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/grovetools/hookcheck/errors"
)

// patternTimeout bounds a single match so a pathological exclude cannot hang a run.
const patternTimeout = time.Second

// CompilePattern compiles a files/exclude pattern. The runner evaluates these
// with Python's re module, whose syntax (lookarounds, inline flags such as
// (?x)) RE2 does not accept, so a backtracking engine is used.
func CompilePattern(field, pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(translatePattern(pattern), regexp2.None)
	if err != nil {
		return nil, errors.PatternInvalid(field, pattern, err)
	}
	re.MatchTimeout = patternTimeout
	return re, nil
}

// Search reports whether the pattern matches anywhere in s, like re.search.
func Search(re *regexp2.Regexp, s string) (bool, error) {
	return re.MatchString(s)
}

// translatePattern rewrites Python-only group syntax into the .NET form
// regexp2 understands: (?P<name>...) becomes (?<name>...) and the
// backreference (?P=name) becomes \k<name>. Escapes and character classes
// are copied as is.
func translatePattern(pattern string) string {
	if !strings.Contains(pattern, "(?P") {
		return pattern
	}

	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			b.WriteByte(pattern[i+1])
			i++
			continue
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			b.WriteByte(c)
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
			// A leading ] is a literal member of the class.
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				b.WriteByte(']')
				i++
			}
			continue
		case strings.HasPrefix(pattern[i:], "(?P<"):
			b.WriteString("(?<")
			i += len("(?P<") - 1
			continue
		case strings.HasPrefix(pattern[i:], "(?P="):
			if end := strings.IndexByte(pattern[i:], ')'); end > 0 {
				b.WriteString(`\k<`)
				b.WriteString(pattern[i+len("(?P=") : i+end])
				b.WriteByte('>')
				i += end
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

package glob

import (
	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/dlclark/regexp2"
)

// Glob is a compiled pattern. It is immutable and safe for concurrent use.
type Glob struct {
	pattern string
	negated bool
	m       matcher
}

type matcher interface {
	match(path string) bool
}

type doublestarMatcher struct {
	pattern string
}

func (d doublestarMatcher) match(path string) bool {
	ok, err := doublestar.Match(d.pattern, path)
	return err == nil && ok
}

type regexpMatcher struct {
	re *regexp2.Regexp
}

func (r regexpMatcher) match(path string) bool {
	ok, err := r.re.MatchString(path)
	return err == nil && ok
}

// Compile parses pattern and returns a Glob. Malformed patterns return a
// GLOB_SYNTAX error.
func Compile(pattern string) (*Glob, error) {
	if pattern == "" {
		return nil, syntaxError(pattern, "empty pattern")
	}

	body := pattern
	negated := false
	for len(body) > 0 && body[0] == '!' && !(len(body) > 1 && body[1] == '(') {
		negated = !negated
		body = body[1:]
	}
	if body == "" {
		return nil, syntaxError(pattern, "negation without a pattern")
	}

	g := &Glob{pattern: pattern, negated: negated}

	if !HasExtglob(body) {
		if !doublestar.ValidatePattern(body) {
			return nil, syntaxError(pattern, "malformed pattern")
		}
		g.m = doublestarMatcher{pattern: body}
		return g, nil
	}

	expr, err := translate(body)
	if err != nil {
		return nil, syntaxError(pattern, err.Error())
	}
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGlobSyntax, "invalid glob %q", pattern).
			WithDetail("pattern", pattern)
	}
	g.m = regexpMatcher{re: re}
	return g, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(pattern string) *Glob {
	g, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return g
}

// Match reports whether path satisfies the pattern, negation included
func (g *Glob) Match(path string) bool {
	return g.m.match(path) != g.negated
}

// Negated reports whether the pattern carried a leading `!`
func (g *Glob) Negated() bool {
	return g.negated
}

// String returns the source pattern
func (g *Glob) String() string {
	return g.pattern
}

// HasExtglob reports whether pattern contains an extglob group such as
// `!(a|b)` or `@(a|b)`.
func HasExtglob(pattern string) bool {
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case isExtglobLead(c) && i+1 < len(pattern) && pattern[i+1] == '(':
			return true
		}
	}
	return false
}

func isExtglobLead(c byte) bool {
	return c == '!' || c == '@' || c == '?' || c == '+' || c == '*'
}

func syntaxError(pattern, reason string) error {
	return errors.Newf(errors.ErrGlobSyntax, "invalid glob %q: %s", pattern, reason).
		WithDetail("pattern", pattern)
}

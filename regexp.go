package dictschema

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

// Regexp is an interface for working with regular expressions.
type Regexp interface {
	MatchString(s string) bool
	String() string
}

// StdRegexp compiles expr with the standard library regexp package (RE2 syntax).
func StdRegexp(expr string) (Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// BacktrackRegexp compiles expr with github.com/dlclark/regexp2, which
// supports lookarounds and backreferences as found in Python and Perl
// patterns. A match that errors (e.g. times out) counts as no match.
func BacktrackRegexp(expr string) (Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	return backtrackRegexp{re}, nil
}

type backtrackRegexp struct {
	re *regexp2.Regexp
}

func (r backtrackRegexp) MatchString(s string) bool {
	matched, err := r.re.MatchString(s)
	return err == nil && matched
}

func (r backtrackRegexp) String() string {
	return r.re.String()
}

// Pattern is a regular expression matched from the start of the input,
// so "abc" matches "abcdef" but not "xabc". Anchor with "$" to require
// a full match.
type Pattern struct {
	expr string
	re   Regexp
}

// NewPattern compiles expr using compile. A nil compile means StdRegexp.
func NewPattern(expr string, compile func(string) (Regexp, error)) (*Pattern, error) {
	if compile == nil {
		compile = StdRegexp
	}
	// the bare expression must compile on its own; "a)|(b" only
	// balances once wrapped
	if _, err := compile(expr); err != nil {
		return nil, err
	}
	re, err := compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, err
	}
	return &Pattern{expr: expr, re: re}, nil
}

// MustPattern is like NewPattern with StdRegexp but panics on error.
func MustPattern(expr string) *Pattern {
	p, err := NewPattern(expr, nil)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// String returns the source expression, without the implicit anchor.
func (p *Pattern) String() string {
	return p.expr
}

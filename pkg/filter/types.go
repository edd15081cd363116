package filter

import (
	"slices"
	"strings"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/glob"
	"github.com/arthur-debert/pathsfilter/pkg/types"
)

// Quantifier controls how the predicates of a group combine for one file
type Quantifier string

const (
	// QuantifierAny matches a file satisfying at least one predicate
	QuantifierAny Quantifier = "some"
	// QuantifierEvery matches a file satisfying all predicates
	QuantifierEvery Quantifier = "every"
)

// ParseQuantifier resolves a quantifier name. The empty string is QuantifierAny.
func ParseQuantifier(s string) (Quantifier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "some", "any":
		return QuantifierAny, nil
	case "every", "all":
		return QuantifierEvery, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput,
			"invalid predicate quantifier %q: expected 'some' or 'every'", s).
			WithDetail("quantifier", s)
	}
}

// Options configures compilation
type Options struct {
	// PredicateQuantifier applies to every compiled group. Zero value is QuantifierAny.
	PredicateQuantifier Quantifier
}

// Predicate is the normalized unit of matching
type Predicate struct {
	Pattern  *glob.Glob
	Statuses []types.ChangeStatus // empty accepts any status
	Ignore   []*glob.Glob         // file is rejected when any of these match
}

// Test reports whether file satisfies the predicate
func (p Predicate) Test(file types.File) bool {
	if len(p.Statuses) > 0 && !slices.Contains(p.Statuses, file.Status) {
		return false
	}
	for _, ignore := range p.Ignore {
		if ignore.Match(file.Filename) {
			return false
		}
	}
	return p.Pattern.Match(file.Filename)
}

func (p Predicate) clone() Predicate {
	return Predicate{
		Pattern:  p.Pattern,
		Statuses: slices.Clone(p.Statuses),
		Ignore:   slices.Clone(p.Ignore),
	}
}

// Group is a compiled filter group
type Group struct {
	Name       string
	Predicates []Predicate
	Quantifier Quantifier
}

// Match reports whether file belongs to the group. A group without
// predicates matches nothing.
func (g Group) Match(file types.File) bool {
	if len(g.Predicates) == 0 {
		return false
	}
	if g.Quantifier == QuantifierEvery {
		for _, p := range g.Predicates {
			if !p.Test(file) {
				return false
			}
		}
		return true
	}
	for _, p := range g.Predicates {
		if p.Test(file) {
			return true
		}
	}
	return false
}

func (g Group) clone() Group {
	predicates := make([]Predicate, len(g.Predicates))
	for i, p := range g.Predicates {
		predicates[i] = p.clone()
	}
	return Group{Name: g.Name, Predicates: predicates, Quantifier: g.Quantifier}
}

// Result maps group names to the matching files, in input order
type Result map[string][]types.File

// Matched reports whether the group matched at least one file
func (r Result) Matched(name string) bool {
	return len(r[name]) > 0
}

// Changes returns the names, in the given order, of groups with matches
func (r Result) Changes(names []string) []string {
	changes := make([]string, 0, len(names))
	for _, name := range names {
		if r.Matched(name) {
			changes = append(changes, name)
		}
	}
	return changes
}

// IsConfigError reports whether err is a compile-time configuration error,
// including its glob syntax and status sub-kinds.
func IsConfigError(err error) bool {
	return errors.HasErrorCode(err, errors.ErrConfigInvalid) ||
		errors.HasErrorCode(err, errors.ErrGlobSyntax) ||
		errors.HasErrorCode(err, errors.ErrStatusInvalid)
}

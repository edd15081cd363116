package filter

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/glob"
	"github.com/arthur-debert/pathsfilter/pkg/logging"
	"github.com/arthur-debert/pathsfilter/pkg/types"
	"github.com/rs/zerolog"
)

const (
	keyPattern = "pattern"
	keyIgnore  = "ignore"
)

// Compile normalizes a deserialized rule configuration into a Filter.
//
// raw must be a mapping from group name to group definition. Plain Go maps
// have no key order, so their groups are ordered lexically; use Parse to
// keep the document order of YAML input.
func Compile(raw any, opts Options) (*Filter, error) {
	defs, err := toStringMap(raw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid,
			"invalid filter: expected a mapping of group names to patterns")
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	return compileOrdered(names, defs, opts)
}

func compileOrdered(names []string, defs map[string]any, opts Options) (*Filter, error) {
	quantifier, err := ParseQuantifier(string(opts.PredicateQuantifier))
	if err != nil {
		return nil, err
	}

	c := &compiler{
		quantifier: quantifier,
		logger:     logging.GetLogger("filter.compiler"),
	}

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		group, err := c.compileGroup(name, defs[name])
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	c.logger.Debug().
		Int("groups", len(groups)).
		Str("quantifier", string(quantifier)).
		Msg("Compiled filter")

	return newFilter(groups), nil
}

type compiler struct {
	quantifier Quantifier
	logger     zerolog.Logger
}

func (c *compiler) compileGroup(name string, def any) (Group, error) {
	group := Group{Name: name, Quantifier: c.quantifier}

	var err error
	switch v := def.(type) {
	case string:
		group.Predicates, err = c.plainPredicates(name, []string{v})
	case []string:
		group.Predicates, err = c.plainPredicates(name, v)
	case []any:
		group.Predicates, err = c.listPredicates(name, v, 0)
	case nil:
		err = groupError(name, "group has no patterns")
	default:
		var m map[string]any
		m, err = toStringMap(v)
		if err != nil {
			err = groupError(name, fmt.Sprintf("unsupported group definition of type %T", def))
			break
		}
		if _, ok := m[keyPattern]; ok {
			group.Predicates, err = c.objectPredicates(name, m)
		} else {
			group.Predicates, err = c.statusPredicates(name, m)
		}
	}
	if err != nil {
		return Group{}, err
	}

	c.logger.Trace().
		Str("group", name).
		Int("predicates", len(group.Predicates)).
		Msg("Compiled group")

	return group, nil
}

func (c *compiler) plainPredicates(group string, patterns []string) ([]Predicate, error) {
	predicates := make([]Predicate, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := compileGlob(group, pattern)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, Predicate{Pattern: g})
	}
	return predicates, nil
}

// listPredicates handles list definitions. Entries are patterns, status
// maps, or (once) nested lists produced by anchors.
func (c *compiler) listPredicates(group string, items []any, depth int) ([]Predicate, error) {
	var predicates []Predicate
	for _, item := range items {
		switch v := item.(type) {
		case string:
			p, err := c.plainPredicates(group, []string{v})
			if err != nil {
				return nil, err
			}
			predicates = append(predicates, p...)
		case []string, []any:
			if depth > 0 {
				return nil, groupError(group, "pattern lists may only be nested one level")
			}
			nested, err := toAnyList(v)
			if err != nil {
				return nil, groupError(group, err.Error())
			}
			p, err := c.listPredicates(group, nested, depth+1)
			if err != nil {
				return nil, err
			}
			predicates = append(predicates, p...)
		default:
			m, err := toStringMap(v)
			if err != nil {
				return nil, groupError(group,
					fmt.Sprintf("pattern must be a string or a status map, got %T", item))
			}
			p, err := c.statusPredicates(group, m)
			if err != nil {
				return nil, err
			}
			predicates = append(predicates, p...)
		}
	}
	return predicates, nil
}

// statusPredicates handles `added|modified: <glob or list>` entries
func (c *compiler) statusPredicates(group string, m map[string]any) ([]Predicate, error) {
	specs := make([]string, 0, len(m))
	for spec := range m {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	var predicates []Predicate
	for _, spec := range specs {
		statuses, err := parseStatusSpec(group, spec)
		if err != nil {
			return nil, err
		}
		patterns, err := toPatternList(m[spec])
		if err != nil {
			return nil, groupError(group, fmt.Sprintf("status %q: %v", spec, err))
		}
		for _, pattern := range patterns {
			g, err := compileGlob(group, pattern)
			if err != nil {
				return nil, err
			}
			predicates = append(predicates, Predicate{
				Pattern:  g,
				Statuses: slices.Clone(statuses),
			})
		}
	}
	return predicates, nil
}

// objectPredicates handles the `pattern`/`ignore` form. Every pattern
// predicate carries the full ignore set.
func (c *compiler) objectPredicates(group string, m map[string]any) ([]Predicate, error) {
	for key := range m {
		if key != keyPattern && key != keyIgnore {
			return nil, groupError(group, fmt.Sprintf("unknown key %q, expected 'pattern' or 'ignore'", key))
		}
	}

	patterns, err := toPatternList(m[keyPattern])
	if err != nil {
		return nil, groupError(group, fmt.Sprintf("pattern: %v", err))
	}

	var ignores []*glob.Glob
	if raw, ok := m[keyIgnore]; ok {
		ignorePatterns, err := toPatternList(raw)
		if err != nil {
			return nil, groupError(group, fmt.Sprintf("ignore: %v", err))
		}
		for _, pattern := range ignorePatterns {
			g, err := compileGlob(group, pattern)
			if err != nil {
				return nil, err
			}
			ignores = append(ignores, g)
		}
	}

	predicates := make([]Predicate, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := compileGlob(group, pattern)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, Predicate{Pattern: g, Ignore: slices.Clone(ignores)})
	}
	return predicates, nil
}

func parseStatusSpec(group, spec string) ([]types.ChangeStatus, error) {
	var statuses []types.ChangeStatus
	for _, token := range strings.Split(spec, "|") {
		status, err := types.ParseChangeStatus(token)
		if err != nil {
			statusErr := errors.Wrapf(err, errors.ErrStatusInvalid, "invalid status spec %q", spec).
				WithDetail("status", token)
			return nil, errors.Wrapf(statusErr, errors.ErrConfigInvalid, "invalid filter: group %q", group).
				WithDetail("group", group)
		}
		if !slices.Contains(statuses, status) {
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

func compileGlob(group, pattern string) (*glob.Glob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid filter: group %q", group).
			WithDetail("group", group).
			WithDetail("pattern", pattern)
	}
	return g, nil
}

func groupError(group, reason string) error {
	return errors.Newf(errors.ErrConfigInvalid, "invalid filter: group %q: %s", group, reason).
		WithDetail("group", group)
}

// toPatternList accepts one glob or a list of globs, dropping duplicates
// while keeping first-seen order.
func toPatternList(v any) ([]string, error) {
	var patterns []string
	switch t := v.(type) {
	case string:
		patterns = []string{t}
	case []string:
		patterns = t
	case []any:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a pattern string, got %T", item)
			}
			patterns = append(patterns, s)
		}
	default:
		return nil, fmt.Errorf("expected a pattern or a list of patterns, got %T", v)
	}

	unique := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !slices.Contains(unique, p) {
			unique = append(unique, p)
		}
	}
	return unique, nil
}

func toAnyList(v any) ([]any, error) {
	switch t := v.(type) {
	case []any:
		return t, nil
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
}

// toStringMap returns a fresh map with string keys; the input is never
// modified.
func toStringMap(v any) (map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = val
		}
		return m, nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", k)
			}
			m[key] = val
		}
		return m, nil
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = val
		}
		return m, nil
	case map[string][]string:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = val
		}
		return m, nil
	default:
		return nil, fmt.Errorf("got %T", v)
	}
}

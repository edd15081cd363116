package filter

import (
	"github.com/arthur-debert/pathsfilter/pkg/logging"
	"github.com/arthur-debert/pathsfilter/pkg/types"
	"github.com/rs/zerolog"
)

// Filter is a compiled rule configuration
type Filter struct {
	groups []Group
	index  map[string]int
	logger zerolog.Logger
}

func newFilter(groups []Group) *Filter {
	index := make(map[string]int, len(groups))
	for i, g := range groups {
		index[g.Name] = i
	}
	return &Filter{
		groups: groups,
		index:  index,
		logger: logging.GetLogger("filter.matcher"),
	}
}

// Names returns the group names in configuration order
func (f *Filter) Names() []string {
	names := make([]string, len(f.groups))
	for i, g := range f.groups {
		names[i] = g.Name
	}
	return names
}

// Groups returns copies of the compiled groups. Changing them does not
// affect the filter.
func (f *Filter) Groups() []Group {
	groups := make([]Group, len(f.groups))
	for i, g := range f.groups {
		groups[i] = g.clone()
	}
	return groups
}

// Group returns a copy of the named group
func (f *Filter) Group(name string) (Group, bool) {
	i, ok := f.index[name]
	if !ok {
		return Group{}, false
	}
	return f.groups[i].clone(), true
}

// Match evaluates files against every group. Each group maps to the
// subsequence of files it matches; groups without matches map to an empty
// list.
func (f *Filter) Match(files []types.File) Result {
	result := make(Result, len(f.groups))
	for _, g := range f.groups {
		matched := make([]types.File, 0)
		for _, file := range files {
			if g.Match(file) {
				matched = append(matched, file)
			}
		}
		result[g.Name] = matched

		f.logger.Trace().
			Str("group", g.Name).
			Int("matched", len(matched)).
			Msg("Evaluated group")
	}

	f.logger.Debug().
		Int("groups", len(f.groups)).
		Int("files", len(files)).
		Int("matchedGroups", len(result.Changes(f.Names()))).
		Msg("Matched files against filter")

	return result
}

// IsMatch reports whether file belongs to the named group. Unknown groups
// match nothing.
func (f *Filter) IsMatch(file types.File, name string) bool {
	i, ok := f.index[name]
	if !ok {
		return false
	}
	return f.groups[i].Match(file)
}

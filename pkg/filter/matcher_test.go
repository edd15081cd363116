// Test Type: Unit Test
// Description: Tests for matching changed files against compiled groups

package filter_test

import (
	"sync"
	"testing"

	"github.com/arthur-debert/pathsfilter/pkg/filter"
	"github.com/arthur-debert/pathsfilter/pkg/glob"
	"github.com/arthur-debert/pathsfilter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matcherRules = `
go:
  - "**/*.go"
docs:
  pattern: "docs/**"
  ignore: "docs/drafts/**"
new:
  - added: "**"
empty: []
`

func TestFilter_Match(t *testing.T) {
	f := mustParse(t, matcherRules, filter.Options{})

	t.Run("empty_file_list_maps_every_group_to_empty_list", func(t *testing.T) {
		result := f.Match(nil)
		require.Len(t, result, 4)
		for _, name := range f.Names() {
			assert.NotNil(t, result[name], "group %s", name)
			assert.Empty(t, result[name], "group %s", name)
		}
	})

	t.Run("result_is_ordered_subsequence_of_input", func(t *testing.T) {
		files := []types.File{
			{Filename: "z/last.go", Status: types.StatusModified},
			{Filename: "docs/guide.md", Status: types.StatusAdded},
			{Filename: "a/first.go", Status: types.StatusAdded},
			{Filename: "docs/drafts/wip.md", Status: types.StatusModified},
			{Filename: "z/last.go", Status: types.StatusModified},
		}
		result := f.Match(files)

		assert.Equal(t, []types.File{files[0], files[2], files[4]}, result["go"])
		assert.Equal(t, []types.File{files[1]}, result["docs"])
		assert.Equal(t, []types.File{files[1], files[2]}, result["new"])
		assert.Empty(t, result["empty"])
		assert.Equal(t, []string{"go", "docs", "new"}, result.Changes(f.Names()))
	})

	t.Run("match_is_idempotent", func(t *testing.T) {
		files := modified("cmd/main.go", "docs/index.md", "README.md")
		assert.Equal(t, f.Match(files), f.Match(files))
	})

	t.Run("input_is_not_modified", func(t *testing.T) {
		files := modified("b.go", "a.go")
		snapshot := append([]types.File(nil), files...)
		f.Match(files)
		assert.Equal(t, snapshot, files)
	})
}

func TestFilter_IsMatch(t *testing.T) {
	f := mustParse(t, matcherRules, filter.Options{})

	assert.True(t, f.IsMatch(types.File{Filename: "main.go", Status: types.StatusDeleted}, "go"))
	assert.False(t, f.IsMatch(types.File{Filename: "docs/drafts/a.md", Status: types.StatusAdded}, "docs"))
	assert.False(t, f.IsMatch(types.File{Filename: "main.go"}, "missing"))
	assert.False(t, f.IsMatch(types.File{Filename: "main.go"}, "empty"))

	_, ok := f.Group("missing")
	assert.False(t, ok)
}

func TestGroup_Match(t *testing.T) {
	backend := []filter.Predicate{
		{Pattern: glob.MustCompile("pkg/a/b/c/**")},
		{Pattern: glob.MustCompile("!**/*.jpeg")},
		{Pattern: glob.MustCompile("!**/*.md")},
	}

	tests := []struct {
		name       string
		quantifier filter.Quantifier
		path       string
		want       bool
	}{
		{"every_all_hold", filter.QuantifierEvery, "pkg/a/b/c/some-class.ts", true},
		{"every_first_fails", filter.QuantifierEvery, "pkg/x/y/z/some-class.ts", false},
		{"every_negation_fails", filter.QuantifierEvery, "pkg/a/b/c/some-pic.jpeg", false},
		{"any_negation_holds", filter.QuantifierAny, "pkg/x/y/z/some-class.ts", true},
		{"any_other_negation_holds", filter.QuantifierAny, "pkg/x/y/z/diagram.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := filter.Group{Name: "backend", Predicates: backend, Quantifier: tt.quantifier}
			assert.Equal(t, tt.want, g.Match(types.File{Filename: tt.path, Status: types.StatusModified}))
		})
	}

	t.Run("no_predicates_never_match", func(t *testing.T) {
		for _, q := range []filter.Quantifier{filter.QuantifierAny, filter.QuantifierEvery} {
			g := filter.Group{Name: "none", Quantifier: q}
			assert.False(t, g.Match(types.File{Filename: "anything"}))
		}
	})
}

func TestPredicate_Test(t *testing.T) {
	p := filter.Predicate{
		Pattern:  glob.MustCompile("src/**"),
		Statuses: []types.ChangeStatus{types.StatusAdded, types.StatusModified},
		Ignore:   []*glob.Glob{glob.MustCompile("**/*.md"), glob.MustCompile("src/gen/**")},
	}

	assert.True(t, p.Test(types.File{Filename: "src/a.go", Status: types.StatusAdded}))
	assert.False(t, p.Test(types.File{Filename: "src/a.go", Status: types.StatusDeleted}), "status")
	assert.False(t, p.Test(types.File{Filename: "src/readme.md", Status: types.StatusAdded}), "first ignore")
	assert.False(t, p.Test(types.File{Filename: "src/gen/a.go", Status: types.StatusAdded}), "second ignore")
	assert.False(t, p.Test(types.File{Filename: "lib/a.go", Status: types.StatusAdded}), "pattern")
}

func TestFilter_ConcurrentMatch(t *testing.T) {
	f := mustParse(t, matcherRules, filter.Options{})
	files := modified("cmd/main.go", "docs/index.md", "docs/drafts/x.md")
	want := f.Match(files)

	var wg sync.WaitGroup
	results := make([]filter.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.Match(files)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

// Test Type: Unit Test
// Description: Tests for rule compilation from deserialized configuration

package filter_test

import (
	"testing"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/filter"
	"github.com/arthur-debert/pathsfilter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Shapes(t *testing.T) {
	t.Run("single_string", func(t *testing.T) {
		f, err := filter.Compile(map[string]any{"src": "src/**"}, filter.Options{})
		require.NoError(t, err)

		g, ok := f.Group("src")
		require.True(t, ok)
		require.Len(t, g.Predicates, 1)
		assert.Equal(t, "src/**", g.Predicates[0].Pattern.String())
		assert.Empty(t, g.Predicates[0].Statuses)
		assert.Empty(t, g.Predicates[0].Ignore)
		assert.Equal(t, filter.QuantifierAny, g.Quantifier)
	})

	t.Run("go_native_maps", func(t *testing.T) {
		f, err := filter.Compile(map[string][]string{
			"docs": {"docs/**", "*.md"},
			"api":  {"api/**"},
		}, filter.Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"api", "docs"}, f.Names())

		g, _ := f.Group("docs")
		assert.Len(t, g.Predicates, 2)

		f, err = filter.Compile(map[string]string{"all": "**"}, filter.Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"all"}, f.Names())
	})

	t.Run("interface_keyed_map", func(t *testing.T) {
		f, err := filter.Compile(map[any]any{"src": []any{"src/**"}}, filter.Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"src"}, f.Names())

		_, err = filter.Compile(map[any]any{1: "src/**"}, filter.Options{})
		require.Error(t, err)
		assert.True(t, filter.IsConfigError(err))
	})

	t.Run("status_entry_one_predicate_per_distinct_glob", func(t *testing.T) {
		raw := map[string]any{
			"src": []any{
				map[string]any{"Added|MODIFIED|added": []any{"src/**", "lib/**", "src/**"}},
			},
		}
		f, err := filter.Compile(raw, filter.Options{})
		require.NoError(t, err)

		g, _ := f.Group("src")
		require.Len(t, g.Predicates, 2)
		for _, p := range g.Predicates {
			assert.Equal(t, []types.ChangeStatus{types.StatusAdded, types.StatusModified}, p.Statuses)
		}
		assert.Equal(t, "src/**", g.Predicates[0].Pattern.String())
		assert.Equal(t, "lib/**", g.Predicates[1].Pattern.String())
	})

	t.Run("group_level_status_map", func(t *testing.T) {
		f, err := filter.Compile(map[string]any{
			"new": map[string]any{"added": "**"},
		}, filter.Options{})
		require.NoError(t, err)

		assert.True(t, f.IsMatch(types.File{Filename: "a.go", Status: types.StatusAdded}, "new"))
		assert.False(t, f.IsMatch(types.File{Filename: "a.go", Status: types.StatusDeleted}, "new"))
	})

	t.Run("object_form_attaches_ignore_to_every_pattern", func(t *testing.T) {
		f, err := filter.Compile(map[string]any{
			"app": map[string]any{
				"pattern": []any{"src/**", "lib/**"},
				"ignore":  []any{"**/*.md", "**/testdata/**"},
			},
		}, filter.Options{})
		require.NoError(t, err)

		g, _ := f.Group("app")
		require.Len(t, g.Predicates, 2)
		for _, p := range g.Predicates {
			require.Len(t, p.Ignore, 2)
			assert.Equal(t, "**/*.md", p.Ignore[0].String())
			assert.Equal(t, "**/testdata/**", p.Ignore[1].String())
		}
	})

	t.Run("object_form_without_ignore", func(t *testing.T) {
		f, err := filter.Compile(map[string]any{
			"app": map[string]any{"pattern": "src/**"},
		}, filter.Options{})
		require.NoError(t, err)

		g, _ := f.Group("app")
		require.Len(t, g.Predicates, 1)
		assert.Empty(t, g.Predicates[0].Ignore)
	})

	t.Run("empty_list_has_no_predicates", func(t *testing.T) {
		f, err := filter.Compile(map[string]any{"none": []any{}}, filter.Options{})
		require.NoError(t, err)

		g, _ := f.Group("none")
		assert.Empty(t, g.Predicates)
		assert.Empty(t, f.Match(modified("a", "b/c"))["none"])
	})

	t.Run("every_quantifier_applies_to_all_groups", func(t *testing.T) {
		f, err := filter.Compile(map[string]any{"a": "a/**", "b": "b/**"},
			filter.Options{PredicateQuantifier: filter.QuantifierEvery})
		require.NoError(t, err)
		for _, g := range f.Groups() {
			assert.Equal(t, filter.QuantifierEvery, g.Quantifier)
		}
	})
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		subCode errors.ErrorCode
	}{
		{
			name: "top_level_string",
			raw:  "not a dictionary",
		},
		{
			name: "top_level_list",
			raw:  []any{"src/**"},
		},
		{
			name: "nil_group",
			raw:  map[string]any{"src": nil},
		},
		{
			name: "number_pattern",
			raw:  map[string]any{"src": []any{"src/**", 42}},
		},
		{
			name: "unsupported_group_type",
			raw:  map[string]any{"src": 3.5},
		},
		{
			name:    "unknown_status",
			raw:     map[string]any{"src": []any{map[string]any{"dict": "**"}}},
			subCode: errors.ErrStatusInvalid,
		},
		{
			name:    "empty_status_token",
			raw:     map[string]any{"src": []any{map[string]any{"added|": "**"}}},
			subCode: errors.ErrStatusInvalid,
		},
		{
			name:    "invalid_glob",
			raw:     map[string]any{"src": "src/{a,b"},
			subCode: errors.ErrGlobSyntax,
		},
		{
			name:    "invalid_ignore_glob",
			raw:     map[string]any{"src": map[string]any{"pattern": "src/**", "ignore": "[ab"}},
			subCode: errors.ErrGlobSyntax,
		},
		{
			name: "object_unknown_key",
			raw:  map[string]any{"src": map[string]any{"pattern": "src/**", "exclude": "x"}},
		},
		{
			name: "object_pattern_not_string",
			raw:  map[string]any{"src": map[string]any{"pattern": []any{true}}},
		},
		{
			name: "status_value_not_pattern",
			raw:  map[string]any{"src": []any{map[string]any{"added": map[string]any{"a": "b"}}}},
		},
		{
			name: "nested_too_deep",
			raw:  map[string]any{"src": []any{[]any{[]any{"src/**"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := filter.Compile(tt.raw, filter.Options{})
			require.Error(t, err)
			assert.Nil(t, f)
			assert.True(t, filter.IsConfigError(err))
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
			if tt.subCode != "" {
				assert.True(t, errors.HasErrorCode(err, tt.subCode))
			}
		})
	}

	t.Run("invalid_quantifier", func(t *testing.T) {
		_, err := filter.Compile(map[string]any{"src": "src/**"},
			filter.Options{PredicateQuantifier: "most"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("error_names_the_group", func(t *testing.T) {
		_, err := filter.Compile(map[string]any{"backend": "src/{a"}, filter.Options{})
		require.Error(t, err)
		assert.Equal(t, "backend", errors.GetErrorDetails(err)["group"])
		assert.Contains(t, err.Error(), `group "backend"`)
	})
}

func TestCompile_SharedDefinitions(t *testing.T) {
	shared := []any{"common/**/*", "config/**/*"}
	raw := map[string]any{
		"first":  []any{shared, "src/**"},
		"second": []any{shared},
		"third":  []any{map[string]any{"added": shared}},
	}

	f, err := filter.Compile(raw, filter.Options{})
	require.NoError(t, err)

	assert.Equal(t, []any{"common/**/*", "config/**/*"}, shared, "input must not be modified")

	files := modified("config/app.yml", "src/main.go", "docs/readme.md")
	match := f.Match(files)
	assert.Equal(t, []string{"config/app.yml", "src/main.go"}, types.Filenames(match["first"]))
	assert.Equal(t, []string{"config/app.yml"}, types.Filenames(match["second"]))
	assert.Empty(t, match["third"])

	t.Run("mutating_returned_groups_does_not_leak", func(t *testing.T) {
		groups := f.Groups()
		for i := range groups {
			groups[i].Predicates = groups[i].Predicates[:0]
		}

		first, _ := f.Group("first")
		first.Predicates[0].Statuses = append(first.Predicates[0].Statuses, types.StatusDeleted)

		again := f.Match(files)
		assert.Equal(t, match, again)
	})
}

func TestParseQuantifier(t *testing.T) {
	tests := map[string]filter.Quantifier{
		"":       filter.QuantifierAny,
		"some":   filter.QuantifierAny,
		"any":    filter.QuantifierAny,
		"SOME":   filter.QuantifierAny,
		"every":  filter.QuantifierEvery,
		"all":    filter.QuantifierEvery,
		" Every": filter.QuantifierEvery,
	}
	for input, want := range tests {
		got, err := filter.ParseQuantifier(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := filter.ParseQuantifier("none")
	assert.Error(t, err)
}

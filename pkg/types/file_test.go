// Test Type: Unit Test
// Description: Tests for change status parsing and file helpers

package types_test

import (
	"testing"

	"github.com/arthur-debert/pathsfilter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChangeStatus(t *testing.T) {
	tests := []struct {
		input string
		want  types.ChangeStatus
	}{
		{"added", types.StatusAdded},
		{"Added", types.StatusAdded},
		{" MODIFIED ", types.StatusModified},
		{"copied", types.StatusCopied},
		{"deleted", types.StatusDeleted},
		{"renamed", types.StatusRenamed},
		{"typechanged", types.StatusTypeChanged},
		{"type_changed", types.StatusTypeChanged},
		{"unmerged", types.StatusUnmerged},
		{"unknown", types.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := types.ParseChangeStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects_unknown_token", func(t *testing.T) {
		_, err := types.ParseChangeStatus("dict")
		assert.Error(t, err)
	})

	t.Run("rejects_empty_token", func(t *testing.T) {
		_, err := types.ParseChangeStatus("")
		assert.Error(t, err)
	})
}

func TestStatusFromGitLetter(t *testing.T) {
	letters := map[byte]types.ChangeStatus{
		'A': types.StatusAdded,
		'C': types.StatusCopied,
		'D': types.StatusDeleted,
		'M': types.StatusModified,
		'R': types.StatusRenamed,
		'T': types.StatusTypeChanged,
		'U': types.StatusUnmerged,
		'X': types.StatusUnknown,
		'?': types.StatusUnknown,
	}
	for letter, want := range letters {
		assert.Equal(t, want, types.StatusFromGitLetter(letter), "letter %c", letter)
	}
}

func TestFilenames(t *testing.T) {
	files := []types.File{
		{Filename: "b.go", Status: types.StatusAdded},
		{Filename: "a.go", Status: types.StatusModified},
	}
	assert.Equal(t, []string{"b.go", "a.go"}, types.Filenames(files))
	assert.Empty(t, types.Filenames(nil))
}

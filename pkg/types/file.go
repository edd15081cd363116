package types

import (
	"fmt"
	"strings"
)

// ChangeStatus is the nature of a file's change as reported by the diff
type ChangeStatus string

const (
	StatusAdded       ChangeStatus = "added"
	StatusCopied      ChangeStatus = "copied"
	StatusDeleted     ChangeStatus = "deleted"
	StatusModified    ChangeStatus = "modified"
	StatusRenamed     ChangeStatus = "renamed"
	StatusTypeChanged ChangeStatus = "typechanged"
	StatusUnmerged    ChangeStatus = "unmerged"
	StatusUnknown     ChangeStatus = "unknown"
)

// AllStatuses lists every known change status in declaration order
var AllStatuses = []ChangeStatus{
	StatusAdded,
	StatusCopied,
	StatusDeleted,
	StatusModified,
	StatusRenamed,
	StatusTypeChanged,
	StatusUnmerged,
	StatusUnknown,
}

// statusAliases maps accepted spellings to their status
var statusAliases = map[string]ChangeStatus{
	"type_changed": StatusTypeChanged,
	"type-changed": StatusTypeChanged,
}

// ParseChangeStatus resolves a status name case-insensitively.
func ParseChangeStatus(name string) (ChangeStatus, error) {
	token := strings.ToLower(strings.TrimSpace(name))
	for _, s := range AllStatuses {
		if token == string(s) {
			return s, nil
		}
	}
	if s, ok := statusAliases[token]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown change status %q", name)
}

// StatusFromGitLetter maps a git --name-status letter to a ChangeStatus.
// Unrecognized letters map to StatusUnknown.
func StatusFromGitLetter(letter byte) ChangeStatus {
	switch letter {
	case 'A':
		return StatusAdded
	case 'C':
		return StatusCopied
	case 'D':
		return StatusDeleted
	case 'M':
		return StatusModified
	case 'R':
		return StatusRenamed
	case 'T':
		return StatusTypeChanged
	case 'U':
		return StatusUnmerged
	default:
		return StatusUnknown
	}
}

// String returns the status name
func (s ChangeStatus) String() string {
	return string(s)
}

// File is one changed item in a diff
type File struct {
	Filename string       `json:"filename"` // Repository-relative, forward-slash separated
	Status   ChangeStatus `json:"status"`
}

// Filenames extracts the paths of files, preserving order
func Filenames(files []File) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}
	return names
}

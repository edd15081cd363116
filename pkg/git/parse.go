package git

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/types"
)

// ParseNameStatusZ parses `git diff --name-status -z` output: NUL separated
// status and path fields. Renames and copies carry two paths; the new one
// is kept.
func ParseNameStatusZ(data []byte) ([]types.File, error) {
	fields := bytes.Split(data, []byte{0})
	files := make([]types.File, 0, len(fields)/2)

	for i := 0; i < len(fields); i++ {
		code := strings.TrimSpace(string(fields[i]))
		if code == "" {
			continue
		}

		paths := 1
		if isRenameOrCopy(code) {
			paths = 2
		}
		if i+paths >= len(fields) {
			return nil, errors.Newf(errors.ErrInvalidInput, "malformed name-status output: status %q has no path", code)
		}
		path := string(fields[i+paths])
		i += paths
		if path == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "malformed name-status output: empty path for status %q", code)
		}

		files = append(files, types.File{Filename: path, Status: types.StatusFromGitLetter(code[0])})
	}
	return files, nil
}

// ParseNameStatus reads a changed-file listing, one `STATUS<TAB>path` entry
// per line. STATUS is a git status letter (R and C entries may carry a
// score and two paths) or a status name. A line without a tab is a path
// with status modified. Blank lines and lines starting with # are skipped.
func ParseNameStatus(r io.Reader) ([]types.File, error) {
	var files []types.File
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) == 1 {
			files = append(files, types.File{Filename: strings.TrimSpace(line), Status: types.StatusModified})
			continue
		}

		code := strings.TrimSpace(parts[0])
		path := parts[1]
		if isRenameOrCopy(code) && len(parts) >= 3 {
			path = parts[2]
		}
		if path == "" || code == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "malformed listing at line %d: %q", lineNo, line).
				WithDetail("line", lineNo)
		}

		files = append(files, types.File{Filename: path, Status: statusFromCode(code)})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, "failed to read changed-file listing")
	}
	return files, nil
}

func statusFromCode(code string) types.ChangeStatus {
	if len(code) > 1 && !isRenameOrCopy(code) {
		if status, err := types.ParseChangeStatus(code); err == nil {
			return status
		}
	}
	return types.StatusFromGitLetter(code[0])
}

// isRenameOrCopy reports whether code is R or C with an optional score
func isRenameOrCopy(code string) bool {
	if code == "" || (code[0] != 'R' && code[0] != 'C') {
		return false
	}
	for _, r := range code[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

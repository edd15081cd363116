package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
)

// IsInlineFilters reports whether a filters setting holds rule YAML rather
// than a file path.
func IsInlineFilters(source string) bool {
	return strings.ContainsAny(source, "\n:")
}

// ReadFilters returns the rule configuration text named by source. Inline
// YAML is returned as is; anything else is read as a file relative to
// workDir.
func ReadFilters(source, workDir string) ([]byte, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no filters configured")
	}
	if IsInlineFilters(source) {
		return []byte(source), nil
	}

	path := source
	if !filepath.IsAbs(path) && workDir != "" {
		path = filepath.Join(workDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read filters from %s", path).
			WithDetail("path", path)
	}
	return data, nil
}

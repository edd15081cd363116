package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/types"
)

// Format selects how a group's files are rendered as a single value
type Format string

const (
	FormatNone   Format = "none"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatShell  Format = "shell"
	FormatEscape Format = "escape"
)

// Formats lists every supported list format
var Formats = []Format{FormatNone, FormatCSV, FormatJSON, FormatShell, FormatEscape}

// ParseFormat resolves a format name. The empty string means none.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatNone, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrOutputFormat, "unknown list format %q", name).
		WithDetail("format", name)
}

// FormatFiles renders the file names of files in format f
func FormatFiles(files []types.File, f Format) (string, error) {
	names := types.Filenames(files)

	switch f {
	case FormatNone:
		return "", nil
	case FormatCSV:
		return formatCSV(names)
	case FormatJSON:
		data, err := json.Marshal(names)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrOutputFormat, "failed to encode file list")
		}
		return string(data), nil
	case FormatShell:
		return joinWords(names, ShellQuote), nil
	case FormatEscape:
		return joinWords(names, ShellEscape), nil
	default:
		return "", errors.Newf(errors.ErrOutputFormat, "unknown list format %q", string(f))
	}
}

func formatCSV(names []string) (string, error) {
	if len(names) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(names); err != nil {
		return "", errors.Wrap(err, errors.ErrOutputFormat, "failed to encode file list")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, errors.ErrOutputFormat, "failed to encode file list")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func joinWords(names []string, quote func(string) string) string {
	words := make([]string, len(names))
	for i, name := range names {
		words[i] = quote(name)
	}
	return strings.Join(words, " ")
}

// ShellQuote wraps s in single quotes when it contains anything outside
// [A-Za-z0-9_./-].
func ShellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '_', r == '.', r == '/', r == '-':
		return false
	}
	return true
}

const shellSpecial = " \t\n\"'`$\\!&|;<>()[]{}*?#~"

// ShellEscape backslash-escapes every shell special character in s
func ShellEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(shellSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

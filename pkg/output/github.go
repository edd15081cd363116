package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/filter"
	"github.com/google/uuid"
)

// ChangesKey is the output listing the names of matched groups
const ChangesKey = "changes"

// Output is a single named value handed to CI
type Output struct {
	Key   string
	Value string
}

// Outputs builds the values for every group in names: "<name>" is true or
// false, "<name>_count" holds the number of matched files and
// "<name>_files" the formatted list unless format is none. A final
// "changes" entry holds the JSON array of matched group names.
func Outputs(names []string, result filter.Result, format Format) ([]Output, error) {
	outputs := make([]Output, 0, len(names)*3+1)
	for _, name := range names {
		files := result[name]
		outputs = append(outputs,
			Output{Key: name, Value: strconv.FormatBool(len(files) > 0)},
			Output{Key: name + "_count", Value: strconv.Itoa(len(files))},
		)
		if format == FormatNone {
			continue
		}
		list, err := FormatFiles(files, format)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrOutputFormat, "group %q", name).
				WithDetail("group", name)
		}
		outputs = append(outputs, Output{Key: name + "_files", Value: list})
	}

	changes, err := json.Marshal(result.Changes(names))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrOutputFormat, "failed to encode changes")
	}
	outputs = append(outputs, Output{Key: ChangesKey, Value: string(changes)})
	return outputs, nil
}

// WriteGitHubOutput writes outputs in the GitHub Actions output file
// format. Values containing newlines use the heredoc form with a random
// delimiter.
func WriteGitHubOutput(w io.Writer, outputs []Output) error {
	for _, o := range outputs {
		var err error
		if strings.ContainsAny(o.Value, "\r\n") {
			delim := "ghadelimiter_" + uuid.NewString()
			_, err = fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", o.Key, delim, o.Value, delim)
		} else {
			_, err = fmt.Fprintf(w, "%s=%s\n", o.Key, o.Value)
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrOutputWrite, "failed to write output %s", o.Key).
				WithDetail("key", o.Key)
		}
	}
	return nil
}

// AppendGitHubOutput appends outputs to the file at path, creating it when
// missing.
func AppendGitHubOutput(path string, outputs []Output) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrOutputWrite, "failed to open %s", path).
			WithDetail("path", path)
	}
	if err := WriteGitHubOutput(f, outputs); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrOutputWrite, "failed to close %s", path)
	}
	return nil
}

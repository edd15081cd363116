package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/filter"
	"github.com/arthur-debert/pathsfilter/pkg/logging"
	"github.com/arthur-debert/pathsfilter/pkg/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// SummaryOptions controls RenderSummary
type SummaryOptions struct {
	// Color enables ANSI styling. When false the output is plain text.
	Color bool
	// ListFiles prints the matched files under each group
	ListFiles bool
}

// RenderSummary writes a human readable report of result for the groups
// in names.
func RenderSummary(w io.Writer, names []string, result filter.Result, opts SummaryOptions) error {
	log := logging.GetLogger("output.summary")

	renderer := lipgloss.NewRenderer(w)
	if !opts.Color {
		renderer.SetColorProfile(termenv.Ascii)
	}
	log.Debug().
		Bool("color", opts.Color).
		Str("colorProfile", fmt.Sprintf("%v", renderer.ColorProfile())).
		Msg("Rendering summary")

	st := styles.Default().Build(renderer)
	changes := result.Changes(names)

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	var b strings.Builder
	b.WriteString(st.Get("Header").Render(
		fmt.Sprintf("%d of %d groups matched", len(changes), len(names))))
	b.WriteString("\n")

	for _, name := range names {
		files := result[name]
		mark, style := "✗", st.Get("Unmatched")
		if len(files) > 0 {
			mark, style = "✓", st.Get("Matched")
		}

		b.WriteString(style.Render(mark))
		b.WriteString(" ")
		b.WriteString(st.Get("Group").Render(fmt.Sprintf("%-*s", width, name)))
		b.WriteString(" ")
		b.WriteString(st.Get("Count").Render(countLabel(len(files))))
		b.WriteString("\n")

		if !opts.ListFiles {
			continue
		}
		for _, f := range files {
			b.WriteString(st.Get("FilePath").Render(
				st.Get("Status").Render(string(f.Status)) + f.Filename))
			b.WriteString("\n")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, errors.ErrOutputWrite, "failed to write summary")
	}
	return nil
}

func countLabel(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

package pathsfilter

import (
	"io"
	"os"

	"github.com/arthur-debert/pathsfilter/pkg/config"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// settingFlags maps command-line flags to the settings they override
var settingFlags = map[string]string{
	"filters":           "filters",
	"base":              "base",
	"ref":               "ref",
	"files":             "files",
	"list-files":        "list_files",
	"quantifier":        "predicate_quantifier",
	"github-output":     "github_output",
	"working-directory": "working_directory",
}

// loadSettings resolves settings, letting flags set on cmd win over every
// other source.
func loadSettings(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	overrides := make(map[string]interface{})
	for flag, key := range settingFlags {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		overrides[key] = f.Value.String()
	}

	workDir, _ := overrides["working_directory"].(string)
	return config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		WorkingDir: workDir,
		Overrides:  overrides,
	})
}

// useColor reports whether w is a terminal that accepts ANSI styling
func useColor(w io.Writer) bool {
	if termenv.EnvNoColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

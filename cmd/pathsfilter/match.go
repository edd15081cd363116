package pathsfilter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/pathsfilter/pkg/config"
	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/filter"
	"github.com/arthur-debert/pathsfilter/pkg/git"
	"github.com/arthur-debert/pathsfilter/pkg/logging"
	"github.com/arthur-debert/pathsfilter/pkg/output"
	"github.com/arthur-debert/pathsfilter/pkg/types"
	"github.com/spf13/cobra"
)

func newMatchCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "match",
		Short:   MsgMatchShort,
		Long:    MsgMatchLong,
		Example: MsgMatchExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.match")

			cfg, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			f, err := compileFilters(cfg)
			if err != nil {
				return err
			}

			files, err := changedFiles(cmd.Context(), cfg, cmd.InOrStdin())
			if err != nil {
				return err
			}
			result := f.Match(files)
			names := f.Names()

			logger.Info().
				Int("files", len(files)).
				Strs("changes", result.Changes(names)).
				Msg("Matched changes")

			if cfg.GitHubOutput != "" {
				outs, err := output.Outputs(names, result, cfg.ListFormat())
				if err != nil {
					return err
				}
				if err := output.AppendGitHubOutput(cfg.GitHubOutput, outs); err != nil {
					return err
				}
				logger.Info().Str("path", cfg.GitHubOutput).Int("outputs", len(outs)).Msg("Wrote outputs")
				if !jsonOut {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgWroteOutputs, len(outs), cfg.GitHubOutput)
				}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, result)
			}
			return output.RenderSummary(out, names, result, output.SummaryOptions{
				Color:     useColor(out),
				ListFiles: cfg.ListFormat() != output.FormatNone || opts.verbosity > 0,
			})
		},
	}

	cmd.Flags().String("filters", "", MsgFlagFilters)
	cmd.Flags().String("base", "", MsgFlagBase)
	cmd.Flags().String("ref", "", MsgFlagRef)
	cmd.Flags().String("files", "", MsgFlagFiles)
	cmd.Flags().String("list-files", "", MsgFlagListFiles)
	cmd.Flags().String("quantifier", "", MsgFlagQuantifier)
	cmd.Flags().String("github-output", "", MsgFlagGitHubOutput)
	cmd.Flags().StringP("working-directory", "C", "", MsgFlagWorkingDirectory)
	cmd.Flags().BoolVar(&jsonOut, "json", false, MsgFlagJSON)

	return cmd
}

// compileFilters reads and compiles the configured filter rules
func compileFilters(cfg *config.Config) (*filter.Filter, error) {
	data, err := config.ReadFilters(cfg.Filters, cfg.WorkingDirectory)
	if err != nil {
		return nil, err
	}
	return filter.Parse(data, filter.Options{PredicateQuantifier: cfg.Quantifier()})
}

// changedFiles reads the configured listing, or asks git when none is set
func changedFiles(ctx context.Context, cfg *config.Config, stdin io.Reader) ([]types.File, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.Files {
	case "":
		return git.NewClient(cfg.WorkingDirectory).ChangedFiles(ctx, cfg.Base, cfg.Ref)
	case "-":
		return git.ParseNameStatus(stdin)
	}

	path := cfg.Files
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.WorkingDirectory, path)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to open %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = fh.Close() }()
	return git.ParseNameStatus(fh)
}

func writeJSON(w io.Writer, result filter.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return errors.Wrap(err, errors.ErrOutputWrite, "failed to write JSON result")
	}
	return nil
}

package pathsfilter

import (
	"fmt"

	"github.com/arthur-debert/pathsfilter/pkg/logging"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: MsgCheckShort,
		Long:  MsgCheckLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.check")

			cfg, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			f, err := compileFilters(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			groups := f.Groups()
			for _, g := range groups {
				noun := "predicates"
				if len(g.Predicates) == 1 {
					noun = "predicate"
				}
				_, _ = fmt.Fprintf(out, MsgCheckGroup, g.Name, len(g.Predicates), noun)
			}
			_, _ = fmt.Fprintf(out, MsgCheckSummary, len(groups), cfg.Quantifier())

			logger.Info().Int("groups", len(groups)).Msg("Filter rules are valid")
			return nil
		},
	}

	cmd.Flags().String("filters", "", MsgFlagFilters)
	cmd.Flags().String("quantifier", "", MsgFlagQuantifier)
	cmd.Flags().StringP("working-directory", "C", "", MsgFlagWorkingDirectory)

	return cmd
}

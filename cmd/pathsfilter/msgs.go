package pathsfilter

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Detect which groups of paths a change touches"
	MsgMatchShort      = "Match changed files against filter rules"
	MsgCheckShort      = "Validate filter rules"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose          = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig           = "Settings file (default: .pathsfilter.yaml or $XDG_CONFIG_HOME/pathsfilter/config.yaml)"
	MsgFlagFilters          = "Filter rules: a YAML file path or inline YAML"
	MsgFlagBase             = "Base git ref to compare against"
	MsgFlagRef              = "Git ref with the changes"
	MsgFlagFiles            = "Read changed files from a STATUS<TAB>path listing instead of git (- for stdin)"
	MsgFlagListFiles        = "Format of the <group>_files output (none, csv, json, shell, escape)"
	MsgFlagQuantifier       = "How a group combines its patterns (some, every)"
	MsgFlagGitHubOutput     = "Append outputs to this file (default: $GITHUB_OUTPUT)"
	MsgFlagJSON             = "Print the matched files per group as JSON"
	MsgFlagWorkingDirectory = "Repository directory"

	// Status messages
	MsgCheckGroup     = "%s\t%d %s\n"
	MsgCheckSummary   = "%d groups, quantifier %s\n"
	MsgVersionFormat  = "pathsfilter version %s\n"
	MsgCommitFormat   = "  commit: %s\n"
	MsgBuiltFormat    = "  built:  %s\n"
	MsgWroteOutputs   = "Wrote %d outputs to %s\n"
	MsgNoCommandError = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/match-long.txt
	msgMatchLongRaw string
	MsgMatchLong    = strings.TrimSpace(msgMatchLongRaw)

	//go:embed msgs/match-example.txt
	msgMatchExampleRaw string
	MsgMatchExample    = strings.TrimRight(msgMatchExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)

package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/logging"
	"github.com/arthur-debert/pathsfilter/pkg/types"
	"github.com/rs/zerolog"
)

// Runner executes git with args inside dir and returns its standard output
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner runs the git binary found in PATH
type ExecRunner struct{}

// Run implements Runner
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	logging.LogCommand("git", args)

	// #nosec G204 -- arguments are built by Client, refs are passed as separate argv entries
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		msg := "git " + strings.Join(args, " ") + " failed"
		if detail != "" {
			msg += ": " + detail
		}
		return nil, errors.Wrap(err, errors.ErrGitCommand, msg).
			WithDetails(map[string]interface{}{
				"args":   args,
				"stderr": detail,
			})
	}
	return out, nil
}

// Client lists changes in a repository
type Client struct {
	dir    string
	runner Runner
	logger zerolog.Logger
}

// NewClient returns a client for the repository at dir using the git binary
func NewClient(dir string) *Client {
	return NewClientWithRunner(dir, ExecRunner{})
}

// NewClientWithRunner returns a client that runs git through runner
func NewClientWithRunner(dir string, runner Runner) *Client {
	return &Client{
		dir:    dir,
		runner: runner,
		logger: logging.GetLogger("git"),
	}
}

// ChangedFiles lists the files changed between base and ref.
//
// With both set, the diff runs from their merge base to ref. With only base
// set, the working tree is compared against base. Otherwise the files
// changed by the last commit (of ref, when given) are returned.
func (c *Client) ChangedFiles(ctx context.Context, base, ref string) ([]types.File, error) {
	done := logging.LogOperationStart(c.logger, "changed files")
	defer done()

	var args []string
	switch {
	case base != "" && ref != "":
		out, err := c.runner.Run(ctx, c.dir, "merge-base", base, ref)
		if err != nil {
			return nil, err
		}
		mergeBase := strings.TrimSpace(string(out))
		if mergeBase == "" {
			return nil, errors.Newf(errors.ErrGitCommand, "no merge base between %s and %s", base, ref).
				WithDetails(map[string]interface{}{"base": base, "ref": ref})
		}
		c.logger.Debug().Str("base", base).Str("ref", ref).Str("mergeBase", mergeBase).Msg("Resolved merge base")
		args = []string{"diff", "--no-renames", "--name-status", "-z", mergeBase, ref}
	case base != "":
		args = []string{"diff", "--no-renames", "--name-status", "-z", base}
	default:
		args = []string{"log", "--format=", "--no-renames", "--name-status", "-z", "-n", "1"}
		if ref != "" {
			args = append(args, ref)
		}
	}

	out, err := c.runner.Run(ctx, c.dir, args...)
	if err != nil {
		return nil, err
	}
	files, err := ParseNameStatusZ(out)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("files", len(files)).Msg("Listed changed files")
	return files, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pathsfilter/cmd/pathsfilter"
	"github.com/arthur-debert/pathsfilter/pkg/filter"
	"github.com/charmbracelet/lipgloss"
)

// Exit codes
const (
	exitError       = 1
	exitConfigError = 2
)

func main() {
	rootCmd := pathsfilter.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := lipgloss.NewRenderer(os.Stderr).NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"})
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		if filter.IsConfigError(err) {
			os.Exit(exitConfigError)
		}
		os.Exit(exitError)
	}
}

// Package output exports match results. It formats the files of a group as
// a list (csv, json, shell or escaped words), builds the per-group outputs
// consumed by CI, writes them in the GitHub Actions output file format and
// renders a styled summary for terminals.
package output

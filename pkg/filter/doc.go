// Package filter decides which named filter groups are relevant to a set of
// changed files.
//
// A rule configuration maps group names to pattern definitions. Compile (or
// Parse, for YAML text) normalizes every definition into an ordered list of
// predicates; Filter.Match then evaluates a list of changed files against
// every group and returns, per group, the files that satisfy it.
//
// # Group definitions
//
//	src: "src/**/*.js"                 # single pattern
//	test:                              # list of patterns
//	  - test/**/*.js
//	  - "!**/*.snap"
//	added:                             # status-qualified patterns
//	  - added|modified: "**/*.go"
//	app:                               # pattern/ignore object
//	  pattern: "src/**/*.{js,ts}"
//	  ignore: "src/**/*.test.{js,ts}"
//
// Lists may contain lists (YAML anchors reused across groups); these are
// flattened one level.
//
// # Evaluation
//
// A predicate holds for a file when the file status is accepted, no ignore
// pattern matches the path, and the pattern matches the path. With
// QuantifierAny a file belongs to a group when at least one predicate holds;
// with QuantifierEvery all of them must hold.
//
// A compiled Filter is immutable and may be matched concurrently against
// any number of file lists.
package filter

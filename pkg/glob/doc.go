// Package glob implements the path pattern dialect used by filter rules.
//
// # Dialect
//
//   - `**` as a whole path segment matches across directory separators
//   - `*` matches within one path segment, `?` matches one character
//   - `[abc]`, `[!abc]` character classes
//   - `{a,b,c}` brace alternatives
//   - `@(a|b)`, `?(a|b)`, `+(a|b)`, `*(a|b)`, `!(a|b)` extglob groups
//   - a leading `!` negates the whole pattern
//
// Segments starting with a dot are matched by `*` and `**` like any other
// segment. Matching is case-sensitive against forward-slash separated paths.
//
// Patterns without extglob groups are handled by doublestar. Patterns with
// extglob groups are translated to a regular expression; `!(...)` needs
// negative lookahead so the translation targets regexp2.
package glob

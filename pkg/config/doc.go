// Package config handles settings for the pathsfilter command.
// It supports loading configuration from multiple sources including
// built-in defaults, YAML or TOML files, environment variables and
// command-line flags, and resolves the filter rule source (a file path or
// inline YAML).
package config

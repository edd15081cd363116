// Package types defines the core data types shared across pathsfilter:
// the changed File record and the ChangeStatus enumeration reported by
// source control.
package types

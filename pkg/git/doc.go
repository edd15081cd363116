// Package git enumerates changed files. It shells out to the git binary
// for name-status listings and parses both the NUL-separated form git
// produces with -z and the tab-separated form people write by hand.
package git

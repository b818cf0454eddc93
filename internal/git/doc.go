// Package git provides a wrapper around the Git CLI commands used by devenv:
// clone, HEAD and branch inspection, and dirty-state detection.
package git

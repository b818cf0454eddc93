// Package lock handles parsing and writing of crates.lock.yaml files.
// A lock file records the commit each component clone was at when pinned,
// so a workspace can be compared against a known-good set of crates.
package lock

// Package workspace resolves the paths of a hypervisor workspace (manifest,
// backup, crates directory, editor settings, lock file) and runs the fetch,
// patch and editor stages against them.
package workspace

package workspace

import (
	"fmt"
	"os"

	"github.com/arceos-hypervisor/devenv/internal/git"
	"github.com/arceos-hypervisor/devenv/internal/ui"
)

// Fetch clones every component from prefix into the crates directory, one at
// a time and in table order. The first failing clone stops the run; clones
// that already finished are left in place and nothing is cleaned up.
func (c *Context) Fetch(prefix string, progress *ui.Progress) error {
	if err := os.MkdirAll(c.CratesDir, 0755); err != nil { //nolint:gosec // crates dir needs to be world-readable
		return fmt.Errorf("creating crates directory: %w", err)
	}

	for _, comp := range c.Components {
		url := comp.RemoteURL(prefix)
		progress.Log("clone %s", url)
		if err := git.Clone(url, c.ComponentDir(comp)); err != nil {
			return fmt.Errorf("component %s: %w", comp.Name, err)
		}
		progress.Done(comp.Name + " cloned")
	}
	return nil
}

// ExistingClones returns the components whose clone directory already exists.
func (c *Context) ExistingClones() []string {
	var out []string
	for _, comp := range c.Components {
		if _, err := os.Stat(c.ComponentDir(comp)); err == nil {
			out = append(out, comp.Name)
		}
	}
	return out
}

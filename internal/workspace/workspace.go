package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arceos-hypervisor/devenv/internal/cargo"
	"github.com/arceos-hypervisor/devenv/internal/component"
	"github.com/arceos-hypervisor/devenv/internal/editor"
	"github.com/arceos-hypervisor/devenv/internal/lock"
)

// ManifestName is the workspace manifest file name.
const ManifestName = "Cargo.toml"

// Context holds the resolved paths of a workspace and the components it fetches.
type Context struct {
	Root         string
	ManifestPath string
	BackupPath   string
	CratesDir    string
	SettingsPath string
	LockPath     string
	Components   []component.Component
}

// Load resolves workspace paths under root. No workspace file is read here;
// stages that need one fail on their own.
func Load(root string) (*Context, error) {
	return LoadWith(root, component.Default)
}

// LoadWith is Load with an explicit component list.
func LoadWith(root string, components []component.Component) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	if err := component.Validate(components); err != nil {
		return nil, fmt.Errorf("invalid component table: %w", err)
	}

	manifestPath := filepath.Join(root, ManifestName)
	ctx := &Context{
		Root:         root,
		ManifestPath: manifestPath,
		BackupPath:   cargo.BackupPath(manifestPath),
		CratesDir:    filepath.Join(root, component.CratesDir),
		SettingsPath: filepath.Join(root, editor.SettingsPath),
		LockPath:     filepath.Join(root, lock.FileName),
		Components:   components,
	}

	return ctx, nil
}

// LoadLock reads the lock file. It returns nil and no error when the
// workspace has none.
func (c *Context) LoadLock() (*lock.File, error) {
	if _, err := os.Stat(c.LockPath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checking lock file: %w", err)
	}
	return lock.Load(c.LockPath)
}

// ComponentDir returns the absolute clone directory of a component.
func (c *Context) ComponentDir(comp component.Component) string {
	return filepath.Join(c.Root, filepath.FromSlash(comp.Dir()))
}

// Patch applies the component overrides to the workspace manifest.
func (c *Context) Patch() error {
	return cargo.Patch(c.ManifestPath, c.Components)
}

// WriteEditorSettings writes the editor settings file.
func (c *Context) WriteEditorSettings() error {
	return editor.Write(c.SettingsPath, editor.Default())
}

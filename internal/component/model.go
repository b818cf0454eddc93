package component

import (
	"fmt"
	"path"
)

// Component is one dependency repository fetched into the crates directory.
type Component struct {
	Name string
	// Packages lists the crates this repository provides to the workspace.
	// Empty means a single crate named like the repository at its root.
	Packages []Package
}

// Package is a crate hosted inside a component repository.
type Package struct {
	Name    string
	Subpath string
}

// Directive redirects a package of a remote git source to a local path.
type Directive struct {
	Source  string
	Package string
	Path    string
}

// String renders the directive as a Cargo [patch] table.
func (d Directive) String() string {
	return fmt.Sprintf("[patch.%q.%s]\npath = %q\n", d.Source, d.Package, d.Path)
}

// RemoteURL returns the clone URL for the component under prefix.
// The prefix is used as given.
func (c Component) RemoteURL(prefix string) string {
	return prefix + "/" + c.Name + ".git"
}

// Source returns the git source the workspace manifest resolves the component from.
func (c Component) Source() string {
	return SourceHost + "/" + c.Name + ".git"
}

// Dir returns the slash-separated clone directory relative to the workspace root.
func (c Component) Dir() string {
	return path.Join(CratesDir, c.Name)
}

// EffectivePackages returns the declared packages, defaulting to one
// package named after the component at the clone root.
func (c Component) EffectivePackages() []Package {
	if len(c.Packages) > 0 {
		return c.Packages
	}
	return []Package{{Name: c.Name}}
}

// Directives returns the override directives for the component in table order.
func (c Component) Directives() []Directive {
	pkgs := c.EffectivePackages()
	out := make([]Directive, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, Directive{
			Source:  c.Source(),
			Package: p.Name,
			Path:    path.Join(c.Dir(), p.Subpath),
		})
	}
	return out
}

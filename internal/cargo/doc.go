// Package cargo patches the Cargo workspace manifest so that component crates
// resolve from their local clones. The manifest is treated as opaque text when
// patching; Load and Parse decode only the tables the tool reports on.
package cargo

package cargo

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arceos-hypervisor/devenv/internal/component"
)

// BackupSuffix is appended to the manifest path to name its backup.
const BackupSuffix = ".bk"

var (
	// ErrBackupExists is returned when a previous backup would be overwritten.
	ErrBackupExists = errors.New("manifest backup already exists")
	// ErrNoBackup is returned by Restore when there is nothing to restore.
	ErrNoBackup = errors.New("manifest backup not found")
)

// BackupPath returns the backup location for manifestPath.
func BackupPath(manifestPath string) string {
	return manifestPath + BackupSuffix
}

// OverrideBlock renders the text appended to the manifest: a blank-line
// separator followed by one [patch] table per directive, in component order.
func OverrideBlock(components []component.Component) string {
	var b strings.Builder
	b.WriteString("\n\n")
	for _, d := range component.Directives(components) {
		b.WriteString(d.String())
	}
	return b.String()
}

// Patch moves manifestPath to its backup and writes the original content
// followed by the override block back to manifestPath.
//
// Patch is not idempotent. A second call fails with ErrBackupExists and
// leaves both files as they are.
func Patch(manifestPath string, components []component.Component) error {
	info, err := os.Stat(manifestPath)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	original, err := os.ReadFile(manifestPath) //nolint:gosec // workspace manifest path
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	backup := BackupPath(manifestPath)
	if _, err := os.Lstat(backup); err == nil {
		return fmt.Errorf("%w: %s (restore it before patching again)", ErrBackupExists, backup)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking backup: %w", err)
	}
	if err := os.Rename(manifestPath, backup); err != nil {
		return fmt.Errorf("backing up manifest: %w", err)
	}

	patched := string(original) + OverrideBlock(components)
	if err := os.WriteFile(manifestPath, []byte(patched), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Restore moves the backup back over manifestPath.
func Restore(manifestPath string) error {
	backup := BackupPath(manifestPath)
	if _, err := os.Lstat(backup); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoBackup, backup)
		}
		return fmt.Errorf("checking backup: %w", err)
	}
	if err := os.Rename(backup, manifestPath); err != nil {
		return fmt.Errorf("restoring manifest: %w", err)
	}
	return nil
}

// HasBackup reports whether a backup exists for manifestPath.
func HasBackup(manifestPath string) bool {
	_, err := os.Lstat(BackupPath(manifestPath))
	return err == nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arceos-hypervisor/devenv/internal/cargo"
	"github.com/arceos-hypervisor/devenv/internal/git"
	"github.com/arceos-hypervisor/devenv/internal/ui"
	"github.com/arceos-hypervisor/devenv/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check whether fetch and patch can run in this workspace",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	styles := ui.NewStyles(out)
	ok := true

	// Check git.
	_, _ = fmt.Fprint(out, "Checking git... ")
	if !git.IsGitInstalled() {
		_, _ = fmt.Fprintln(out, styles.Bad("NOT FOUND"))
		_, _ = fmt.Fprintln(out, "  git is required. Install it from https://git-scm.com/")
		ok = false
	} else if v, err := git.Version(); err != nil {
		_, _ = fmt.Fprintln(out, styles.Bad("ERROR"))
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, v)
	}

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Checking %s... ", workspace.ManifestName)
	if _, err := os.Stat(ctx.ManifestPath); err != nil {
		_, _ = fmt.Fprintln(out, styles.Bad("NOT FOUND"))
		_, _ = fmt.Fprintf(out, "  patch needs %s in %s\n", workspace.ManifestName, ctx.Root)
		ok = false
	} else if m, err := cargo.Load(ctx.ManifestPath); err != nil {
		_, _ = fmt.Fprintln(out, styles.Bad("INVALID"))
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		ok = false
	} else if m.Workspace == nil {
		_, _ = fmt.Fprintln(out, styles.Warn("NO WORKSPACE"))
		_, _ = fmt.Fprintln(out, "  no [workspace] table; overrides will apply to a single package")
	} else {
		_, _ = fmt.Fprintf(out, "%s (%d workspace members)\n", styles.OK("OK"), len(m.Workspace.Members))
	}

	_, _ = fmt.Fprintf(out, "Checking %s... ", ctx.BackupPath)
	if cargo.HasBackup(ctx.ManifestPath) {
		_, _ = fmt.Fprintln(out, styles.Warn("EXISTS"))
		_, _ = fmt.Fprintln(out, "  patch will fail; run `devenv restore` first")
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, styles.OK("OK"))
	}

	_, _ = fmt.Fprint(out, "Checking crates... ")
	if existing := ctx.ExistingClones(); len(existing) > 0 {
		_, _ = fmt.Fprintln(out, styles.Warn("PRESENT"))
		_, _ = fmt.Fprintf(out, "  fetch will fail on: %s\n", strings.Join(existing, ", "))
		_, _ = fmt.Fprintln(out, "  remove them (or run `devenv clean --force`) before fetching again")
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, styles.OK("OK"))
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arceos-hypervisor/devenv/internal/cargo"
	"github.com/arceos-hypervisor/devenv/internal/component"
	"github.com/arceos-hypervisor/devenv/internal/git"
	"github.com/arceos-hypervisor/devenv/internal/lock"
	"github.com/arceos-hypervisor/devenv/internal/ui"
	"github.com/arceos-hypervisor/devenv/internal/workspace"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show component clones and manifest patch state",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type componentStatus struct {
	Name     string `json:"name"`
	Cloned   bool   `json:"cloned"`
	Branch   string `json:"branch,omitempty"`
	Head     string `json:"head,omitempty"`
	Dirty    bool   `json:"dirty"`
	LockDiff string `json:"lock_diff,omitempty"`
}

type manifestStatus struct {
	Present   bool     `json:"present"`
	Backup    bool     `json:"backup"`
	Overrides int      `json:"overrides"`
	Missing   []string `json:"missing,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type statusReport struct {
	Components []componentStatus `json:"components"`
	Manifest   manifestStatus    `json:"manifest"`
	LockError  string            `json:"lock_error,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}

	report := statusReport{
		Components: make([]componentStatus, 0, len(ctx.Components)),
		Manifest:   collectManifestStatus(ctx),
	}
	// A broken lock file only disables drift reporting.
	lf, err := ctx.LoadLock()
	if err != nil {
		report.LockError = err.Error()
	}
	for _, c := range ctx.Components {
		report.Components = append(report.Components, collectStatus(ctx, lf, c))
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tbl := ui.NewTable(out, "COMPONENT", "STATE", "BRANCH", "HEAD", "DIRTY", "LOCK DIFF")
	for _, s := range report.Components {
		state := "cloned"
		if !s.Cloned {
			state = "not cloned"
		}
		tbl.Row(s.Name, state, s.Branch, s.Head, s.Dirty, s.LockDiff)
	}
	if err := tbl.Flush(); err != nil {
		return err
	}

	styles := ui.NewStyles(out)
	m := report.Manifest
	_, _ = fmt.Fprintln(out)
	switch {
	case !m.Present:
		_, _ = fmt.Fprintf(out, "%s %s\n", workspace.ManifestName, styles.Bad("missing"))
	case m.Error != "":
		_, _ = fmt.Fprintf(out, "%s %s: %s\n", workspace.ManifestName, styles.Bad("unreadable"), m.Error)
	case len(m.Missing) == 0:
		_, _ = fmt.Fprintf(out, "%s %s (%d local overrides)\n", workspace.ManifestName, styles.OK("patched"), m.Overrides)
	default:
		_, _ = fmt.Fprintf(out, "%s %s (%d of %d overrides missing)\n", workspace.ManifestName,
			styles.Warn("not patched"), len(m.Missing), len(component.Directives(ctx.Components)))
	}
	if m.Backup {
		_, _ = fmt.Fprintf(out, "Backup present: %s\n", ctx.BackupPath)
	}
	if report.LockError != "" {
		_, _ = fmt.Fprintf(out, "%s %s: %s\n", lock.FileName, styles.Bad("unreadable"), report.LockError)
	}
	return nil
}

func collectStatus(ctx *workspace.Context, lf *lock.File, c component.Component) componentStatus {
	dir := ctx.ComponentDir(c)
	s := componentStatus{Name: c.Name}

	if !git.IsCloned(dir) {
		return s
	}
	s.Cloned = true

	if branch, err := git.CurrentBranch(dir); err == nil {
		if branch == "" {
			s.Branch = "(detached)"
		} else {
			s.Branch = branch
		}
	}
	if head, err := git.HeadCommit(dir); err == nil {
		s.Head = head
	}
	if dirty, err := git.IsDirty(dir); err == nil {
		s.Dirty = dirty
	}

	if lf != nil {
		currentFull, _ := git.HeadCommitFull(dir)
		if pinned := lf.Drift(c.Name, currentFull); pinned != "" {
			s.LockDiff = "lock=" + shortSHA(pinned)
		}
	}

	return s
}

func collectManifestStatus(ctx *workspace.Context) manifestStatus {
	var s manifestStatus
	s.Backup = cargo.HasBackup(ctx.ManifestPath)

	if _, err := os.Stat(ctx.ManifestPath); err != nil {
		return s
	}
	s.Present = true

	m, err := cargo.Load(ctx.ManifestPath)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	s.Overrides = len(m.PathOverrides())
	for _, d := range m.Missing(ctx.Components) {
		s.Missing = append(s.Missing, d.Package)
	}
	return s
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

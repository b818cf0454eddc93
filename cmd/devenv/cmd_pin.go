package main

import (
	"fmt"
	"time"

	"github.com/arceos-hypervisor/devenv/internal/git"
	"github.com/arceos-hypervisor/devenv/internal/lock"
	"github.com/spf13/cobra"
)

func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin",
		Short: "Record the HEAD commit of each cloned component in crates.lock.yaml",
		Args:  cobra.NoArgs,
		RunE:  runPin,
	}
}

func runPin(cmd *cobra.Command, _ []string) error {
	prefix, _ := cmd.Flags().GetString("repo")

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}

	lf := &lock.File{
		Version:     lock.CurrentVersion,
		GeneratedAt: time.Now().Format(time.RFC3339),
		ToolVersion: version,
		RepoPrefix:  prefix,
		Components:  make(map[string]*lock.Entry, len(ctx.Components)),
	}

	out := cmd.OutOrStdout()
	for _, c := range ctx.Components {
		dir := ctx.ComponentDir(c)
		if !git.IsCloned(dir) {
			_, _ = fmt.Fprintf(out, "Skipping %s (not cloned)\n", c.Name)
			continue
		}
		commit, err := git.HeadCommitFull(dir)
		if err != nil {
			return fmt.Errorf("reading HEAD for %s: %w", c.Name, err)
		}
		url, err := git.OriginURL(dir)
		if err != nil {
			url = c.RemoteURL(prefix)
		}
		branch, _ := git.CurrentBranch(dir)
		lf.Components[c.Name] = &lock.Entry{
			URL:    url,
			Branch: branch,
			Commit: commit,
		}
		_, _ = fmt.Fprintf(out, "Pinned %s @ %s\n", c.Name, shortSHA(commit))
	}

	if err := lock.Save(ctx.LockPath, lf); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Lock file written to %s\n", ctx.LockPath)
	return nil
}

package main

import (
	"fmt"

	"github.com/arceos-hypervisor/devenv/internal/component"
	"github.com/arceos-hypervisor/devenv/internal/ui"
	"github.com/arceos-hypervisor/devenv/internal/workspace"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devenv",
		Short: "Set up a hypervisor development workspace with local component crates",
		Long: `devenv clones the hypervisor component repositories into crates/,
patches Cargo.toml so those crates resolve from the local clones, and writes
.vscode/settings.json for rust-analyzer. Run without a subcommand to do all three.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBootstrap,
	}

	cmd.PersistentFlags().String("root", ".", "Workspace root directory")
	cmd.PersistentFlags().String("repo", component.DefaultRepoPrefix, "Remote prefix the components are cloned from")

	cmd.AddCommand(
		newFetchCmd(),
		newPatchCmd(),
		newEditorCmd(),
		newRestoreCmd(),
		newStatusCmd(),
		newPinCmd(),
		newDoctorCmd(),
		newCleanCmd(),
		newListCmd(),
	)

	return cmd
}

// runBootstrap fetches, patches and writes editor settings, stopping at the
// first failure.
func runBootstrap(cmd *cobra.Command, _ []string) error {
	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}
	if err := fetchAll(cmd, ctx); err != nil {
		return err
	}
	if err := ctx.Patch(); err != nil {
		return err
	}
	if err := ctx.WriteEditorSettings(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "patch success")
	return nil
}

func loadContext(cmd *cobra.Command) (*workspace.Context, error) {
	root, _ := cmd.Flags().GetString("root")
	return workspace.Load(root)
}

// fetchAll runs the fetch stage with progress on stderr.
func fetchAll(cmd *cobra.Command, ctx *workspace.Context) error {
	prefix, _ := cmd.Flags().GetString("repo")

	progress := ui.NewProgress(cmd.ErrOrStderr(), len(ctx.Components))
	progress.Log("Using: %s", prefix)
	if err := ctx.Fetch(prefix, progress); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "clone success")
	return nil
}

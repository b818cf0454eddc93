package main

import (
	"fmt"

	"github.com/arceos-hypervisor/devenv/internal/cargo"
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Clone all components into crates/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := loadContext(cmd)
			if err != nil {
				return err
			}
			return fetchAll(cmd, ctx)
		},
	}
}

func newPatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patch",
		Short: "Back up Cargo.toml and append local path overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := loadContext(cmd)
			if err != nil {
				return err
			}
			if err := ctx.Patch(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "patch success")
			return nil
		},
	}
}

func newEditorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "editor",
		Short: "Write .vscode/settings.json for rust-analyzer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := loadContext(cmd)
			if err != nil {
				return err
			}
			if err := ctx.WriteEditorSettings(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Editor settings written to %s\n", ctx.SettingsPath)
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Move Cargo.toml.bk back over Cargo.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := loadContext(cmd)
			if err != nil {
				return err
			}
			if err := cargo.Restore(ctx.ManifestPath); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", ctx.ManifestPath, ctx.BackupPath)
			return nil
		},
	}
}

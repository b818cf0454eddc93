package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the crates directory (destructive, requires --force)",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
	cmd.Flags().Bool("force", false, "Required to confirm destructive operation")
	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		return fmt.Errorf("clean is destructive; pass --force to confirm")
	}

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(ctx.CratesDir); err != nil {
		if os.IsNotExist(err) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nothing to clean: %s does not exist\n", ctx.CratesDir)
			return nil
		}
		return fmt.Errorf("checking crates directory: %w", err)
	}

	if err := os.RemoveAll(ctx.CratesDir); err != nil {
		return fmt.Errorf("removing crates directory: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", ctx.CratesDir)
	return nil
}

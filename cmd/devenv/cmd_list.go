package main

import (
	"fmt"

	"github.com/arceos-hypervisor/devenv/internal/component"
	"github.com/arceos-hypervisor/devenv/internal/ui"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [component...]",
		Short: "List components, their clone URLs and manifest overrides",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	prefix, _ := cmd.Flags().GetString("repo")

	ctx, err := loadContext(cmd)
	if err != nil {
		return err
	}

	comps := ctx.Components
	if len(args) > 0 {
		comps = make([]component.Component, 0, len(args))
		for _, name := range args {
			c, ok := component.Find(ctx.Components, name)
			if !ok {
				return fmt.Errorf("unknown component %q", name)
			}
			comps = append(comps, c)
		}
	}

	tbl := ui.NewTable(cmd.OutOrStdout(), "COMPONENT", "URL", "PACKAGE", "PATH")
	for _, c := range comps {
		for _, d := range c.Directives() {
			tbl.Row(c.Name, c.RemoteURL(prefix), d.Package, d.Path)
		}
	}
	return tbl.Flush()
}

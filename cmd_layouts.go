package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deckgen/deck"
)

func newLayoutsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "layouts <template.yaml>",
		Short: "List the layouts and placeholders of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := deck.LoadTemplate(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range tpl.LayoutNames() {
				layout := tpl.Layout(name)
				fmt.Fprintf(out, "%s\n", name)
				for _, ph := range layout.Placeholders {
					role := ph.Role
					if role == "" {
						role = "-"
					}
					fmt.Fprintf(out, "  %-24s %-8s %gx%g in at (%g, %g)\n",
						ph.Name, role, ph.W, ph.H, ph.X, ph.Y)
				}
			}
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/spf13/cobra"
)

func (c *cli) waterCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "water [add|remove]",
		Short:     "Show today's water intake, or count a glass in or out",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"add", "remove"},
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			action := acc.API.Water
			if len(args) == 1 {
				switch args[0] {
				case "add":
					action = acc.API.AddGlass
				case "remove":
					action = acc.API.RemoveGlass
				}
			}
			w, err := action(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water: %d / %d glasses (%.0f%%), %d to go\n", w.Glasses, w.Goal, w.Percentage, w.Remaining)
			return nil
		},
	}
}

func (c *cli) goalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "List health goals and their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			goals, err := acc.API.Goals(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(out, "No goals yet")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "ID\tTYPE\tTITLE\tPROGRESS\tDEADLINE\tDONE")
			for _, g := range goals {
				done := ""
				if g.IsCompleted {
					done = "yes"
				}
				deadline := g.Deadline
				if deadline == "" {
					deadline = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", g.ID, title.String(g.Type), g.Title, progress(g), deadline, done)
			}
			return nil
		},
	}
}

func progress(g domain.Goal) string {
	return fmt.Sprintf("%g/%g %s (%.0f%%)", g.Current, g.Target, g.Unit, g.Progress)
}


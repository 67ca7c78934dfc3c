package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"selfcare/internal/ui"
)

func newBadgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Show earned and pending badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			earned := 0
			for _, a := range list {
				if a.Earned {
					earned++
				}
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Badges (%d/%d)", earned, len(list))))
			for _, a := range list {
				if a.Earned {
					fmt.Fprintf(out, "%s %s %s\n", a.Icon, ui.Gold.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(out, "🔒 %s %s\n", ui.Muted.Render(a.Name), ui.Muted.Render(a.Description))
				}
			}
			return nil
		},
	}

	return cmd
}

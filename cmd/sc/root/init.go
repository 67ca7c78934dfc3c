package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"selfcare/internal/ui"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up missions and characters for the active user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := initialize(ctx, svc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.AlreadyInitialized {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconInfo+" Already set up for "+svc.Namespace().User))
			} else {
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Welcome, %s!", ui.IconSparkle, svc.Namespace().User)))
			}
			fmt.Fprintln(out, ui.LabelValue("Missions created", res.MissionsCreated))
			fmt.Fprintln(out, ui.LabelValue("Characters created", res.CharactersCreated))
			if res.CharactersBackfilled > 0 {
				fmt.Fprintln(out, ui.LabelValue("Unlock dates backfilled", res.CharactersBackfilled))
			}
			return nil
		},
	}

	return cmd
}

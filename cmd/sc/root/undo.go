package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"selfcare/internal/ui"
)

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <mission_id>",
		Short: "Mark a completed mission as not done",
		Long: `Reopen a completed mission.

This clears the completion time and photo. Experience already granted
stays with the character.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mission_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.UncompleteMission(ctx, args[0])
			if err != nil {
				return err
			}
			if !res.MissionUpdated {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconInfo+" "+res.MissionID+" was not completed"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconUndo+" Reopened")+" "+res.MissionID)
			return nil
		},
	}

	return cmd
}

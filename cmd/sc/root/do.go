package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"selfcare/internal/engine"
	"selfcare/internal/ui"
)

func newDoCmd() *cobra.Command {
	var photo string

	cmd := &cobra.Command{
		Use:   "do <mission_id>",
		Short: "Complete a mission",
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

			var photoURL *string
			if p := strings.TrimSpace(photo); p != "" {
				photoURL = &p
			}

			res, err := svc.CompleteMission(ctx, args[0], photoURL)
			var pf *engine.PartialFailureError
			if errors.As(err, &pf) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Mission saved, but experience could not be recorded. Run the command again to retry."))
				return err
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.AlreadyCompleted && res.ExperienceAwarded == 0 {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconInfo+" "+res.MissionID+" was already completed"))
				return nil
			}
			fmt.Fprintf(out, "%s %s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), ui.CategoryIcon(res.Category), res.MissionID, ui.Muted.Render(fmt.Sprintf("(+%d XP)", res.ExperienceAwarded)))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.NewLevel)))
			fmt.Fprintln(out, ui.LabelValue("Total XP", res.TotalExperience))
			if res.LevelUp {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" ")+ui.BadgeLevelUp)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&photo, "photo", "", "Photo URL proving the mission")
	return cmd
}

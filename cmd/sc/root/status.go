package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"selfcare/internal/engine"
	"selfcare/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show characters and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			chars, err := svc.CharacterRepo().List(ctx)
			if err != nil {
				return err
			}
			rep, err := svc.Representative(ctx)
			if err != nil {
				return err
			}
			missions, err := svc.MissionRepo().List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconHeart, "Selfcare Status"))
			fmt.Fprintln(out, ui.LabelValue("User", svc.Namespace().User))
			if rep != nil {
				fmt.Fprintln(out, ui.LabelValue("Representative", fmt.Sprintf("%s %s (level %d)", ui.CategoryIcon(rep.CategoryID), rep.Name, rep.Level)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🧸 Characters"))
			if len(chars) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
			}
			for _, c := range chars {
				into := engine.ExperienceIntoLevel(c.TotalExperience)
				mark := " "
				if rep != nil && rep.ID == c.ID {
					mark = ui.Gold.Render(ui.IconStar)
				}
				fmt.Fprintf(out, "%s %s %-8s L%-2d %s %s\n",
					mark, ui.CategoryIcon(c.CategoryID), c.Name, c.Level,
					ui.ProgressBar(into, engine.ExperiencePerLevel, 20),
					ui.Muted.Render(fmt.Sprintf("%d/%d %3.0f%% (total %d)", into, engine.ExperiencePerLevel, engine.LevelProgress(c.TotalExperience)*100, c.TotalExperience)))
			}
			fmt.Fprintln(out, "")

			done := 0
			for _, m := range missions {
				if m.Completed {
					done++
				}
			}
			fmt.Fprintln(out, ui.LabelValue("Missions completed", fmt.Sprintf("%d/%d", done, len(missions))))
			return nil
		},
	}

	return cmd
}

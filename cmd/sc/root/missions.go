package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"selfcare/internal/engine"
	"selfcare/internal/ui"
)

func newMissionsCmd() *cobra.Command {
	var category string
	var pending bool

	cmd := &cobra.Command{
		Use:     "missions",
		Aliases: []string{"ls"},
		Short:   "List missions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter engine.Category
			if category != "" {
				c, ok := engine.ParseCategory(category)
				if !ok {
					return engine.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", category)}
				}
				filter = c
			}

			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			missions, err := svc.MissionRepo().List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Missions"))
			shown := 0
			for _, m := range missions {
				if filter != "" && m.Category != string(filter) {
					continue
				}
				if pending && m.Completed {
					continue
				}
				line := fmt.Sprintf("%s %s %s %s %s", ui.CompletionText(m.Completed), ui.CategoryIcon(m.Category), ui.Key.Render(m.MissionID), m.Title, ui.Muted.Render(fmt.Sprintf("(+%d XP)", m.Experience)))
				if m.PhotoURL != nil {
					line += " " + ui.IconPhoto
				}
				fmt.Fprintln(out, line)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show one category")
	cmd.Flags().BoolVar(&pending, "pending", false, "Hide completed missions")
	return cmd
}

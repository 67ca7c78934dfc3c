package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"selfcare/internal/ui"
)

func newRepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rep <category>",
		Short: "Choose which character represents you",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("category is required (sleep, exercise, meal, mind, social)")
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

			cat, err := svc.SetRepresentativePreference(ctx, args[0])
			if err != nil {
				return err
			}
			rep, err := svc.Representative(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rep == nil || rep.CategoryID != string(cat) {
				fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s No %s character yet; showing the first one instead", ui.IconWarn, cat)))
				return nil
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconStar+" Representative:"), ui.CategoryIcon(rep.CategoryID), rep.Name)
			return nil
		},
	}

	return cmd
}

package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"selfcare/internal/engine"
	"selfcare/internal/storage"
	"selfcare/internal/ui"
)

func newDiaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diary",
		Short: "Write and browse diary entries",
	}
	cmd.AddCommand(
		newDiaryAddCmd(),
		newDiaryListCmd(),
		newDiaryEditCmd(),
		newDiaryRmCmd(),
	)
	return cmd
}

func newDiaryAddCmd() *cobra.Command {
	var emotion, date string

	cmd := &cobra.Command{
		Use:   "add <content...>",
		Short: "Write a diary entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("content is required")
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

			d, err := svc.SaveDiary(ctx, engine.DiaryInput{
				Date:    date,
				Emotion: emotion,
				Content: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconDiary+" Saved"), d.Date, ui.Muted.Render("("+d.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&emotion, "emotion", "e", "", "happy, calm, proud, sad, angry, anxious or tired")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Entry date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("emotion")
	return cmd
}

func newDiaryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List diary entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.Diaries(ctx)
			if err != nil {
				return err
			}
			if limit > 0 && len(list) > limit {
				list = list[:limit]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconDiary, "Diary"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
			}
			for _, d := range list {
				printDiary(cmd, d)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n entries")
	return cmd
}

func newDiaryEditCmd() *cobra.Command {
	var emotion, date, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a diary entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			current, err := svc.DiaryRepo().Get(ctx, args[0])
			if err != nil {
				return err
			}
			if current == nil {
				return fmt.Errorf("diary %s: %w", args[0], storage.ErrNotFound)
			}
			in := engine.DiaryInput{Date: date, Emotion: current.Emotion, Content: current.Content}
			if cmd.Flags().Changed("emotion") {
				in.Emotion = emotion
			}
			if cmd.Flags().Changed("content") {
				in.Content = content
			}

			d, err := svc.EditDiary(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDiary+" Updated"))
			printDiary(cmd, d)
			return nil
		},
	}

	cmd.Flags().StringVarP(&emotion, "emotion", "e", "", "New emotion")
	cmd.Flags().StringVarP(&content, "content", "m", "", "New content")
	cmd.Flags().StringVarP(&date, "date", "d", "", "New date (YYYY-MM-DD)")
	return cmd
}

func newDiaryRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a diary entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			if err := svc.DeleteDiary(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("🗑️ Deleted")+" "+args[0])
			return nil
		},
	}

	return cmd
}

func printDiary(cmd *cobra.Command, d storage.Diary) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n  %s\n", ui.Key.Render(d.Date), ui.EmotionIcon(d.Emotion), ui.Muted.Render(d.ID), d.Content)
}

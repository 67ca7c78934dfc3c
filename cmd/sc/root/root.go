package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"selfcare/internal/config"
	"selfcare/internal/logging"
	"selfcare/internal/ui"
)

const Version = "0.1.0"

var (
	configPath string
	userFlag   string
	verbose    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

func newRootCmd() *cobra.Command {
	cfg = nil
	logger = zap.NewNop()

	cmd := &cobra.Command{
		Use:           "sc",
		Short:         "Selfcare: grow your characters by looking after yourself",
		Long:          "Selfcare is a local-first companion: complete self-care missions, keep a diary, and level up one character per category.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if u := strings.TrimSpace(userFlag); u != "" {
				loaded.User = u
			}
			cfg = loaded

			l, err := logging.New(cfg.Logging.Level, cfg.Logging.File, verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file")
	cmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Active user (overrides config and SELFCARE_USER)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(
		newInitCmd(),
		newMissionsCmd(),
		newDoCmd(),
		newUndoCmd(),
		newStatusCmd(),
		newRepCmd(),
		newDiaryCmd(),
		newBadgesCmd(),
		newResetCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jywlabs/brio/internal/config"
	"github.com/jywlabs/brio/internal/telegram"
	"github.com/spf13/cobra"
)

var telegramDefaultFlag string

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Serve questionnaires as a Telegram bot",
	Long: `Serve every available questionnaire as a Telegram bot.

Each chat runs its own session. /start opens the default questionnaire and
/<name> opens any other (for example /feedback). Inside a session:
  /back      previous question
  /restart   start over
  /done      finish a multiple-choice selection
  /retry     resend answers after a failed delivery

The bot token comes from telegram.token in .brio/config.yaml or
TELEGRAM_BOT_TOKEN.`,
	Args: cobra.NoArgs,
	RunE: runTelegram,
}

func init() {
	telegramCmd.Flags().StringVar(&telegramDefaultFlag, "default", "onboarding", "Schema opened by /start")
	rootCmd.AddCommand(telegramCmd)
}

func runTelegram(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return err
	}
	schemas, err := loadSchemas(cfg)
	if err != nil {
		return err
	}

	log, closeLog, err := openLogger(cfg, cmd.ErrOrStderr(), "")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	env, err := newDeliveryEnv(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer env.Close()

	h, err := telegram.NewHandler(schemas, telegramDefaultFlag, env.pipeline, log)
	if err != nil {
		return err
	}
	return telegram.Serve(ctx, cfg.TelegramToken, h)
}

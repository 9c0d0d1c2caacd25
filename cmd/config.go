package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/jywlabs/brio/internal/config"
	"github.com/jywlabs/brio/internal/notify"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Show the effective brio configuration.

Settings come from built-in defaults, .brio/config.yaml, .env and the
environment, later sources winning. Environment variables:
  BRIO_MODE            development or production
  BRIO_API_BASE_URL    relay URL used in production
  BRIO_DEV_BASE_URL    relay URL used in development
  BRIO_TIMEOUT         delivery timeout (0 disables)
  BRIO_JOURNAL         delivery journal DSN
  BRIO_LOG_LEVEL       debug, info, warn, error
  BRIO_LOG_FILE        log file path
  TELEGRAM_BOT_TOKEN   token for 'brio telegram'`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return err
	}
	printConfig(cmd.OutOrStdout(), cfg)
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "mode:        %s\n", cfg.Mode)
	fmt.Fprintf(w, "endpoint:    %s\n", notify.Endpoint(cfg.BaseURL()))
	fmt.Fprintf(w, "devBaseURL:  %s\n", cfg.DevBaseURL)
	fmt.Fprintf(w, "apiBaseURL:  %s\n", valueOr(cfg.APIBaseURL, "(not set)"))
	if cfg.Timeout == 0 {
		fmt.Fprintln(w, "timeout:     none")
	} else {
		fmt.Fprintf(w, "timeout:     %s\n", cfg.Timeout)
	}
	fmt.Fprintf(w, "journal:     %s\n", valueOr(cfg.Journal, "(disabled)"))
	fmt.Fprintf(w, "logLevel:    %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "logFile:     %s\n", valueOr(cfg.LogFile, "(default)"))
	if cfg.TelegramToken != "" {
		fmt.Fprintln(w, "telegram:    token set")
	} else {
		fmt.Fprintln(w, "telegram:    (no token)")
	}

	if len(cfg.Schemas) > 0 {
		fmt.Fprintln(w, "schemas:")
		names := make([]string, 0, len(cfg.Schemas))
		for name := range cfg.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %s\n", name, cfg.Schemas[name])
		}
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

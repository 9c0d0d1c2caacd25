package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// projectDir is where .brio/ and .env are looked up.
var projectDir string

var rootCmd = &cobra.Command{
	Use:   "brio",
	Short: "Brio - step-by-step questionnaires delivered to your team chat",
	Long: `Brio runs guided questionnaires (onboarding, feedback) one question at a
time, validates every answer before moving on, and posts the formatted
answers to a chat relay when the last question is answered.

Workflow:
  brio init                       Create .brio/ with config and schemas
  brio run onboarding             Answer a questionnaire in the terminal
  brio telegram                   Serve questionnaires as a Telegram bot

Commands:
  init        Initialize .brio/ directory
  run         Run a questionnaire
  schema      List, show, validate and export schemas
  preview     Render the message for a recorded answer file
  telegram    Serve the Telegram bot
  deliveries  List recorded delivery attempts
  config      Show current configuration
  version     Show version info

Quick Start:
  1. brio init
  2. brio run onboarding`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project directory containing .brio/")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/config"
	"github.com/jywlabs/brio/internal/delivery"
	"github.com/jywlabs/brio/internal/validate"
	"github.com/spf13/cobra"
)

var (
	previewAnswersFlag string
	previewRawFlag     bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <schema>",
	Short: "Render the message for a recorded answer file",
	Long: `Render the chat message a set of answers would produce, without sending.

The answers file is YAML keyed by question id. Choice questions take option
values; "<id>Custom" holds the text of an "other" answer.

Example:
  brio preview feedback --answers answers.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewAnswersFlag, "answers", "a", "", "YAML file with answers (required)")
	previewCmd.Flags().StringVarP(&schemaFileFlag, "schema-file", "f", "", "Load the questionnaire from a YAML file")
	previewCmd.Flags().BoolVar(&previewRawFlag, "raw", false, "Print the markdown as sent, without terminal styling")
	previewCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return err
	}
	s, err := resolveSchema(cfg, args[0], schemaFileFlag)
	if err != nil {
		return err
	}
	store, err := answer.LoadFile(s, previewAnswersFlag)
	if err != nil {
		return err
	}

	styled := !previewRawFlag && isTerminal(os.Stdout)
	rendered, err := renderMessage(delivery.FormatMessage(s, store), styled)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)

	// Invalid answers still render, but would have been blocked in a wizard.
	for _, q := range s.Questions {
		if reason := validate.Reason(q, store); reason != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", q.ID, reason)
		}
	}
	return nil
}

// renderMessage styles the markdown message for a terminal, or returns it
// unchanged.
func renderMessage(message string, styled bool) (string, error) {
	if !styled {
		return message, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(message)
	if err != nil {
		return "", fmt.Errorf("failed to render message: %w", err)
	}
	return out, nil
}

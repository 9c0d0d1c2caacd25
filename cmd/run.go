package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/jywlabs/brio/internal/config"
	"github.com/jywlabs/brio/internal/delivery"
	"github.com/jywlabs/brio/internal/prompt"
	"github.com/jywlabs/brio/internal/tui"
	"github.com/jywlabs/brio/internal/wizard"
	"github.com/spf13/cobra"
)

// Run command flags
var (
	plainFlag      bool
	schemaFileFlag string
)

var runCmd = &cobra.Command{
	Use:   "run [schema]",
	Short: "Run a questionnaire",
	Long: `Run a questionnaire one question at a time and deliver the answers.

Every question must be answered validly before moving on. After the last
question the answers are formatted and posted to the relay; a failed
delivery can be retried from the final screen.

The full-screen interface is used on terminals. --plain, or input that is
not a terminal, switches to numbered line prompts (:back, :restart, :quit).

Examples:
  brio run                               # Onboarding questionnaire
  brio run feedback                      # Feedback questionnaire
  brio run --schema-file my.yaml         # Questionnaire from a YAML file
  brio run feedback --plain < answers    # Scripted answers
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&plainFlag, "plain", false, "Use line prompts instead of the full-screen interface")
	runCmd.Flags().StringVarP(&schemaFileFlag, "schema-file", "f", "", "Load the questionnaire from a YAML file")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	name := "onboarding"
	if len(args) == 1 {
		name = args[0]
	}

	cfg, err := config.Load(projectDir)
	if err != nil {
		return err
	}
	s, err := resolveSchema(cfg, name, schemaFileFlag)
	if err != nil {
		return err
	}

	plain := usePlain(plainFlag, stdinIsTerminal())
	logFallback := ""
	if !plain {
		logFallback = defaultLogFile()
	}
	log, closeLog, err := openLogger(cfg, cmd.ErrOrStderr(), logFallback)
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

	log.Info().Str("schema", s.Name).Bool("plain", plain).Msg("wizard started")

	var state delivery.State
	if plain {
		state, err = prompt.New(cmd.InOrStdin(), cmd.OutOrStdout(), env.factory(s)).Run(ctx, s, wizard.WithLogger(log))
		if errors.Is(err, prompt.ErrQuit) {
			return nil
		}
	} else {
		state, err = tui.Run(ctx, s, env.factory(s), wizard.WithLogger(log))
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	log.Info().Str("schema", s.Name).Str("status", state.Status.String()).Int("attempt", state.Attempts).Msg("wizard finished")
	if state.Status == delivery.Failed {
		return fmt.Errorf("delivery failed: %s", state.LastError)
	}
	return nil
}

// usePlain reports whether line prompts replace the full-screen interface.
func usePlain(forced, terminal bool) bool {
	return forced || !terminal
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(f.Fd())
}

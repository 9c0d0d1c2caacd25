package cmd

import (
	"errors"
	"fmt"

	"github.com/jywlabs/brio/internal/config"
	"github.com/jywlabs/brio/internal/journal"
	"github.com/jywlabs/brio/internal/output"
	"github.com/spf13/cobra"
)

var deliveriesLimit int

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "List recorded delivery attempts",
	Long: `List the most recent delivery attempts from the journal, newest first.

The journal is enabled by setting 'journal:' in .brio/config.yaml or
BRIO_JOURNAL to a SQLite path, a postgres:// URL or a libsql:// URL.`,
	Args: cobra.NoArgs,
	RunE: runDeliveries,
}

func init() {
	deliveriesCmd.Flags().IntVarP(&deliveriesLimit, "limit", "n", 20, "Number of entries to show")
	rootCmd.AddCommand(deliveriesCmd)
}

func runDeliveries(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return err
	}
	if cfg.Journal == "" {
		return errors.New("no delivery journal configured (set journal in .brio/config.yaml or BRIO_JOURNAL)")
	}

	j, err := journal.Open(cmd.Context(), cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(cmd.Context(), deliveriesLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No deliveries recorded yet.")
		return nil
	}
	p := output.New(out)
	for _, e := range entries {
		p.Delivery(e)
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jywlabs/brio/internal/config"
	"github.com/jywlabs/brio/internal/schema"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "List, show, validate and export schemas",
	Long: `Inspect the questionnaires brio can run.

Built-in schemas (onboarding, feedback) are always available. Schemas listed
under 'schemas:' in .brio/config.yaml replace or extend them.`,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(projectDir)
		if err != nil {
			return err
		}
		schemas, err := loadSchemas(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range schemaNames(cfg) {
			source := "built-in"
			if path, ok := cfg.Schemas[name]; ok {
				source = path
			}
			fmt.Fprintf(out, "%-12s %2d questions  %s\n", name, schemas[name].Len(), source)
		}
		return nil
	},
}

var schemaShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the questions of a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(projectDir)
		if err != nil {
			return err
		}
		s, err := resolveSchema(cfg, args[0], "")
		if err != nil {
			return err
		}
		showSchema(cmd.OutOrStdout(), s)
		return nil
	},
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a schema YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schema.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d questions\n", s.Name, s.Len())
		return nil
	},
}

var schemaExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print a schema as YAML",
	Long: `Print a schema as YAML, ready to edit and load with --schema-file.

Example:
  brio schema export feedback > feedback.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(projectDir)
		if err != nil {
			return err
		}
		s, err := resolveSchema(cfg, args[0], "")
		if err != nil {
			return err
		}
		data, err := schema.Marshal(s)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	schemaCmd.AddCommand(schemaListCmd, schemaShowCmd, schemaValidateCmd, schemaExportCmd)
	rootCmd.AddCommand(schemaCmd)
}

func showSchema(w io.Writer, s *schema.Schema) {
	fmt.Fprintf(w, "%s (%d questions)\n", s.Name, s.Len())
	fmt.Fprintf(w, "message title: %s\n", s.Title)
	if s.GreetingField != "" {
		fmt.Fprintf(w, "greeting:      %s\n", s.GreetingField)
	}
	fmt.Fprintln(w)

	for i, q := range s.Questions {
		fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, q.Kind, q.Title)
		fmt.Fprintf(w, "    id: %s  label: %s\n", q.ID, q.Label)
		if len(q.Options) > 0 {
			values := make([]string, len(q.Options))
			for j, opt := range q.Options {
				values[j] = opt.Value
				if opt.AllowsCustomText {
					values[j] += "*"
				}
			}
			fmt.Fprintf(w, "    options: %s\n", strings.Join(values, ", "))
		}
		if q.MaxSelections > 0 {
			fmt.Fprintf(w, "    max selections: %d\n", q.MaxSelections)
		}
	}
}

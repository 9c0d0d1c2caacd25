package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jywlabs/brio/internal/schema"
	"github.com/jywlabs/brio/internal/template"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .brio/ directory",
	Long: `Initialize the .brio/ directory in the current project.

Creates:
  .brio/
    config.yaml          # Relay URL, timeout, journal and logging
    env.example          # Environment overrides, copy to .env
    schemas/
      onboarding.yaml    # Built-in questionnaires, ready to edit
      feedback.yaml

After init, run 'brio run onboarding'.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	return initProject(projectDir, cmd.OutOrStdout())
}

// initProject writes the default .brio/ tree under dir.
func initProject(dir string, w io.Writer) error {
	brioDir := filepath.Join(dir, template.BrioDir)
	schemasDir := filepath.Join(brioDir, template.SchemasDir)

	// Check if already initialized
	if _, err := os.Stat(brioDir); err == nil {
		return fmt.Errorf("%s/ already exists", template.BrioDir)
	}

	if err := os.MkdirAll(schemasDir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	for filename, content := range template.DefaultFiles() {
		filePath := filepath.Join(brioDir, filename)
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
	}

	for _, name := range schema.Names() {
		s, _ := schema.Builtin(name)
		data, err := schema.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to export schema %s: %w", name, err)
		}
		path := filepath.Join(schemasDir, name+".yaml")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	fmt.Fprintf(w, "Initialized %s/\n", template.BrioDir)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Created:")
	fmt.Fprintln(w, "  .brio/config.yaml       - Relay URL, timeout and journal")
	fmt.Fprintln(w, "  .brio/env.example       - Environment overrides (copy to .env)")
	fmt.Fprintln(w, "  .brio/schemas/          - Editable copies of the built-in questionnaires")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  1. Point devBaseURL or apiBaseURL at your relay")
	fmt.Fprintln(w, "  2. Run: brio run onboarding")

	return nil
}

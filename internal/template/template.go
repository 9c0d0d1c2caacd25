package template

import (
	_ "embed"
)

//go:embed config.yaml
var DefaultConfig string

//go:embed env.example
var DefaultEnvExample string

// BrioDir is the name of the brio configuration directory.
const BrioDir = ".brio"

// File name constants for consistent usage across the codebase.
const (
	ConfigFile     = "config.yaml"
	EnvExampleFile = "env.example"
	LogFile        = "brio.log"
	JournalFile    = "journal.db"
	SchemasDir     = "schemas" // Exported schema YAML files
)

// DefaultFiles returns the default files to create in .brio/
func DefaultFiles() map[string]string {
	return map[string]string{
		ConfigFile:     DefaultConfig,
		EnvExampleFile: DefaultEnvExample,
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jywlabs/brio/internal/config"
	"github.com/jywlabs/brio/internal/delivery"
	"github.com/jywlabs/brio/internal/journal"
	"github.com/jywlabs/brio/internal/logging"
	"github.com/jywlabs/brio/internal/notify"
	"github.com/jywlabs/brio/internal/schema"
	"github.com/jywlabs/brio/internal/template"
)

// resolveSchema finds a schema by file, by a name configured in
// config.yaml, or by built-in name, in that order.
func resolveSchema(cfg *config.Config, name, file string) (*schema.Schema, error) {
	if file != "" {
		return schema.Load(file)
	}
	if path, ok := cfg.Schemas[name]; ok {
		return schema.Load(path)
	}
	if s, ok := schema.Builtin(name); ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown schema %q (available: %s)", name, strings.Join(schemaNames(cfg), ", "))
}

// schemaNames lists built-in and configured schema names, sorted.
func schemaNames(cfg *config.Config) []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range schema.Names() {
		seen[name] = true
		names = append(names, name)
	}
	for name := range cfg.Schemas {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// loadSchemas resolves every available schema.
func loadSchemas(cfg *config.Config) (map[string]*schema.Schema, error) {
	schemas := make(map[string]*schema.Schema)
	for _, name := range schemaNames(cfg) {
		s, err := resolveSchema(cfg, name, "")
		if err != nil {
			return nil, err
		}
		schemas[name] = s
	}
	return schemas, nil
}

// openLogger builds the logger for a command. Without a configured log file
// it writes to fallback; an empty fallback path means w. The returned
// closer releases the log file.
func openLogger(cfg *config.Config, w io.Writer, fallback string) (zerolog.Logger, func(), error) {
	path := cfg.LogFile
	if path == "" {
		path = fallback
	}
	if path == "" {
		log, err := logging.New(w, cfg.LogLevel)
		return log, func() {}, err
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(projectDir, path)
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	log, err := logging.New(f, cfg.LogLevel)
	if err != nil {
		f.Close()
		return zerolog.Nop(), func() {}, err
	}
	return log, func() { f.Close() }, nil
}

// deliveryEnv holds what every pipeline of a command shares.
type deliveryEnv struct {
	cfg     *config.Config
	client  *notify.Client
	journal *journal.Journal
	log     zerolog.Logger
}

func newDeliveryEnv(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*deliveryEnv, error) {
	client, err := notify.NewClient(cfg.BaseURL())
	if err != nil {
		return nil, err
	}
	env := &deliveryEnv{cfg: cfg, client: client, log: log}

	if cfg.Journal != "" {
		j, err := journal.Open(ctx, cfg.Journal)
		if err != nil {
			return nil, err
		}
		env.journal = j
	}
	log.Debug().Str("endpoint", client.Endpoint()).Str("mode", string(cfg.Mode)).Msg("delivery configured")
	return env, nil
}

// pipeline builds the delivery pipeline of one session of s.
func (e *deliveryEnv) pipeline(s *schema.Schema, session string) *delivery.Pipeline {
	opts := []delivery.Option{
		delivery.WithLogger(e.log),
		delivery.WithSessionID(session),
		delivery.WithTimeout(e.cfg.Timeout),
	}
	if e.journal != nil {
		opts = append(opts, delivery.WithJournal(e.journal))
	}
	return delivery.NewPipeline(s, e.client, opts...)
}

// factory binds pipeline to s.
func (e *deliveryEnv) factory(s *schema.Schema) delivery.Factory {
	return func(session string) *delivery.Pipeline {
		return e.pipeline(s, session)
	}
}

func (e *deliveryEnv) Close() error {
	if e.journal == nil {
		return nil
	}
	return e.journal.Close()
}

// defaultLogFile is where full-screen runs log, keeping the terminal clean.
func defaultLogFile() string {
	return filepath.Join(template.BrioDir, template.LogFile)
}

func stdinIsTerminal() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

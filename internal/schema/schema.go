package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies how a question is answered and validated.
type Kind int

const (
	ShortText Kind = iota
	SingleChoice
	MultiChoice
	LikertScale
	NpsScore
	NpsReason
)

var kindNames = map[Kind]string{
	ShortText:    "short_text",
	SingleChoice: "single_choice",
	MultiChoice:  "multi_choice",
	LikertScale:  "likert",
	NpsScore:     "nps",
	NpsReason:    "nps_reason",
}

// String returns the YAML name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a YAML name back to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown question kind %q", name)
}

// IsChoice reports whether answers pick from the question's options.
func (k Kind) IsChoice() bool {
	return k == SingleChoice || k == MultiChoice
}

func (k Kind) MarshalYAML() (interface{}, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown question kind %d", int(k))
	}
	return k.String(), nil
}

func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// OtherValue is the reserved option value whose answer needs free text.
const OtherValue = "other"

// CustomSuffix is appended to a question id to name its free-text companion.
const CustomSuffix = "Custom"

// Option is one selectable answer of a choice question.
type Option struct {
	Value            string `yaml:"value"`
	Label            string `yaml:"label"`
	Description      string `yaml:"description,omitempty"`
	AllowsCustomText bool   `yaml:"allowsCustomText,omitempty"`
}

// Question is a single wizard screen.
type Question struct {
	ID            string   `yaml:"id"`
	Kind          Kind     `yaml:"kind"`
	Title         string   `yaml:"title"`
	Emoji         string   `yaml:"emoji,omitempty"`
	Label         string   `yaml:"label"` // Used in the delivered message
	Description   string   `yaml:"description,omitempty"`
	Placeholder   string   `yaml:"placeholder,omitempty"`
	Suggestions   []string `yaml:"suggestions,omitempty"`
	Options       []Option `yaml:"options,omitempty"`
	MaxSelections int      `yaml:"maxSelections,omitempty"` // MultiChoice only, 0 = unbounded
}

// Option returns the option with the given value.
func (q Question) Option(value string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// CustomID is the store key of the question's free-text companion.
func (q Question) CustomID() string {
	return q.ID + CustomSuffix
}

// Screen is static text shown before the first or after the last question.
type Screen struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Start string `yaml:"start,omitempty"`
}

// Placeholders are rendered in the delivered message for missing answers.
type Placeholders struct {
	NotProvided string `yaml:"notProvided"`
	NotRated    string `yaml:"notRated"`
}

// Schema is an immutable, ordered question list for one wizard variant.
type Schema struct {
	Name          string       `yaml:"name"`
	Title         string       `yaml:"title"` // First line of the delivered message
	Welcome       Screen       `yaml:"welcome"`
	Farewell      Screen       `yaml:"farewell"`
	GreetingField string       `yaml:"greetingField,omitempty"`
	Placeholders  Placeholders `yaml:"placeholders"`
	Questions     []Question   `yaml:"questions"`
}

// Len returns the number of questions.
func (s *Schema) Len() int {
	return len(s.Questions)
}

// Question looks up a question by id.
func (s *Schema) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Validate checks the schema for structural problems. All problems are
// reported, joined into one error.
func (s *Schema) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("schema name must not be empty"))
	}
	if len(s.Questions) == 0 {
		errs = append(errs, errors.New("schema must define at least one question"))
	}

	ids := make(map[string]bool, len(s.Questions))
	for i, q := range s.Questions {
		if q.ID == "" {
			errs = append(errs, fmt.Errorf("question %d: id must not be empty", i+1))
			continue
		}
		if ids[q.ID] {
			errs = append(errs, fmt.Errorf("question %q: duplicate id", q.ID))
		}
		ids[q.ID] = true
		if _, ok := kindNames[q.Kind]; !ok {
			errs = append(errs, fmt.Errorf("question %q: unknown kind %d", q.ID, int(q.Kind)))
		}
		errs = append(errs, validateOptions(q)...)
	}

	// A companion key must never shadow a real question.
	for _, q := range s.Questions {
		if q.Kind.IsChoice() && ids[q.CustomID()] {
			errs = append(errs, fmt.Errorf("question %q: id collides with the custom text of %q", q.CustomID(), q.ID))
		}
	}

	if s.GreetingField != "" {
		if q, ok := s.Question(s.GreetingField); !ok || q.Kind != ShortText {
			errs = append(errs, fmt.Errorf("greetingField %q must name a short_text question", s.GreetingField))
		}
	}

	return errors.Join(errs...)
}

func validateOptions(q Question) []error {
	var errs []error
	if !q.Kind.IsChoice() {
		if len(q.Options) > 0 {
			errs = append(errs, fmt.Errorf("question %q: options are only allowed on choice questions", q.ID))
		}
	} else if len(q.Options) == 0 {
		errs = append(errs, fmt.Errorf("question %q: choice questions need at least one option", q.ID))
	}

	if q.MaxSelections < 0 {
		errs = append(errs, fmt.Errorf("question %q: maxSelections must not be negative", q.ID))
	}
	if q.MaxSelections > 0 && q.Kind != MultiChoice {
		errs = append(errs, fmt.Errorf("question %q: maxSelections is only allowed on multi_choice", q.ID))
	}

	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.Value == "" {
			errs = append(errs, fmt.Errorf("question %q: option value must not be empty", q.ID))
			continue
		}
		if seen[opt.Value] {
			errs = append(errs, fmt.Errorf("question %q: duplicate option %q", q.ID, opt.Value))
		}
		seen[opt.Value] = true
	}
	return errs
}

// Parse decodes and validates a YAML schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", s.Name, err)
	}
	return &s, nil
}

// Load reads a schema from a YAML file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return Parse(data)
}

// Marshal encodes a schema as YAML.
func Marshal(s *Schema) ([]byte, error) {
	return yaml.Marshal(s)
}

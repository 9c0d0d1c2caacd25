// Package wizard sequences the screens of one schema: a welcome screen, one
// screen per question, and a terminal screen that hands the answers off for
// delivery.
package wizard

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/schema"
	"github.com/jywlabs/brio/internal/validate"
)

// Phase is the coarse position of a session.
type Phase int

const (
	Welcome Phase = iota
	Answering
	Complete
)

func (p Phase) String() string {
	switch p {
	case Welcome:
		return "welcome"
	case Answering:
		return "answering"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome reports what a call to Next did.
type Outcome int

const (
	// Ignored means the session was not answering questions.
	Ignored Outcome = iota
	// Blocked means the current answer is not valid yet.
	Blocked
	// Advanced means the next question is now current.
	Advanced
	// Completed means the last question was answered and the trigger fired.
	Completed
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Blocked:
		return "blocked"
	case Advanced:
		return "advanced"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Trigger receives the completed answers of a session. It fires at most once
// per session.
type Trigger func(session string, store *answer.Store)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// Controller is the step state machine of one wizard. It is not safe for
// concurrent use; front-ends drive it from a single event loop.
type Controller struct {
	schema  *schema.Schema
	trigger Trigger
	log     zerolog.Logger

	store   *answer.Store
	phase   Phase
	step    int
	session string
	fired   bool
}

// New returns a controller on the welcome screen of s.
func New(s *schema.Schema, trigger Trigger, opts ...Option) *Controller {
	c := &Controller{
		schema:  s,
		trigger: trigger,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.store = answer.NewStore()
	c.phase = Welcome
	c.step = 0
	c.session = uuid.NewString()
	c.fired = false
}

func (c *Controller) event(msg string) {
	c.log.Debug().
		Str("session", c.session).
		Str("schema", c.schema.Name).
		Int("step", c.step).
		Stringer("phase", c.phase).
		Msg(msg)
}

// Start leaves the welcome screen for the first question. A schema without
// questions stays on the welcome screen.
func (c *Controller) Start() bool {
	if c.phase != Welcome || c.schema.Len() == 0 {
		return false
	}
	c.phase = Answering
	c.step = 0
	c.event("started")
	return true
}

// Next advances past the current question when its answer is valid. After
// the last question the session completes and the trigger fires.
func (c *Controller) Next() Outcome {
	q, ok := c.Current()
	if !ok {
		return Ignored
	}
	if !validate.IsValid(q, c.store) {
		c.log.Debug().
			Str("session", c.session).
			Str("question", q.ID).
			Str("reason", validate.Reason(q, c.store)).
			Msg("next blocked")
		return Blocked
	}

	if c.step+1 < c.schema.Len() {
		c.step++
		c.event("advanced")
		return Advanced
	}

	c.phase = Complete
	c.event("completed")
	c.fire()
	return Completed
}

func (c *Controller) fire() {
	if c.fired || c.trigger == nil {
		return
	}
	c.fired = true
	c.trigger(c.session, c.store.Clone())
}

// Back returns to the previous question. It does nothing on the first one.
func (c *Controller) Back() bool {
	if c.phase != Answering || c.step == 0 {
		return false
	}
	c.step--
	c.event("back")
	return true
}

// Restart discards every answer and opens a new session on the welcome
// screen. The trigger is re-armed for the new session.
func (c *Controller) Restart() {
	previous := c.session
	c.reset()
	c.log.Debug().
		Str("session", c.session).
		Str("previous", previous).
		Msg("restarted")
}

// UpdateAnswer stores v as the answer to question id. The value must have
// the shape the question's kind expects; a nil value clears the answer.
// Answers are frozen once the session completes.
func (c *Controller) UpdateAnswer(id string, v answer.Value) bool {
	if c.phase == Complete {
		return false
	}
	q, ok := c.schema.Question(id)
	if !ok {
		return false
	}
	if v != nil && !answer.Fits(q.Kind, v) {
		return false
	}
	c.store.Put(id, v)
	return true
}

// UpdateCustom stores the free-text companion of a choice question.
func (c *Controller) UpdateCustom(id, text string) bool {
	if c.phase == Complete {
		return false
	}
	q, ok := c.schema.Question(id)
	if !ok || !q.Kind.IsChoice() {
		return false
	}
	c.store.PutCustom(id, text)
	return true
}

// SetText answers a short text or NPS reason question.
func (c *Controller) SetText(id, text string) bool {
	return c.UpdateAnswer(id, answer.Text(text))
}

// SetNumber answers a Likert or NPS score question.
func (c *Controller) SetNumber(id string, n int) bool {
	return c.UpdateAnswer(id, answer.Number(n))
}

// SelectChoice answers a single choice question with one of its options.
func (c *Controller) SelectChoice(id, value string) bool {
	q, ok := c.schema.Question(id)
	if !ok || q.Kind != schema.SingleChoice {
		return false
	}
	if _, ok := q.Option(value); !ok {
		return false
	}
	return c.UpdateAnswer(id, answer.Text(value))
}

// ToggleChoice flips one option of a multi choice question. Adding beyond
// the question's MaxSelections is refused and leaves the answer unchanged.
func (c *Controller) ToggleChoice(id, value string) bool {
	q, ok := c.schema.Question(id)
	if !ok || q.Kind != schema.MultiChoice {
		return false
	}
	if _, ok := q.Option(value); !ok {
		return false
	}
	set := c.store.Members(id)
	if set.Contains(value) {
		set = set.Without(value)
	} else {
		if q.MaxSelections > 0 && len(set) >= q.MaxSelections {
			return false
		}
		set = set.With(value)
	}
	if len(set) == 0 {
		return c.UpdateAnswer(id, nil)
	}
	return c.UpdateAnswer(id, set)
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Step returns the zero-based index of the current question. It is only
// meaningful while answering.
func (c *Controller) Step() int { return c.step }

// Total returns the number of questions.
func (c *Controller) Total() int { return c.schema.Len() }

// Schema returns the schema being answered.
func (c *Controller) Schema() *schema.Schema { return c.schema }

// SessionID identifies the current session.
func (c *Controller) SessionID() string { return c.session }

// Current returns the question on screen while answering.
func (c *Controller) Current() (schema.Question, bool) {
	if c.phase != Answering || c.step >= c.schema.Len() {
		return schema.Question{}, false
	}
	return c.schema.Questions[c.step], true
}

// CanAdvance reports whether Next would move forward.
func (c *Controller) CanAdvance() bool {
	q, ok := c.Current()
	return ok && validate.IsValid(q, c.store)
}

// BlockedReason explains why Next is blocked, or returns "".
func (c *Controller) BlockedReason() string {
	q, ok := c.Current()
	if !ok {
		return ""
	}
	return validate.Reason(q, c.store)
}

// Store returns a copy of the answers collected so far.
func (c *Controller) Store() *answer.Store {
	return c.store.Clone()
}

// Greeting returns the answer to the schema's greeting field, if any.
func (c *Controller) Greeting() string {
	if c.schema.GreetingField == "" {
		return ""
	}
	return c.store.Text(c.schema.GreetingField)
}

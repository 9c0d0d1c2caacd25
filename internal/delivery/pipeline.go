package delivery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/journal"
	"github.com/jywlabs/brio/internal/notify"
	"github.com/jywlabs/brio/internal/schema"
)

// Status is the progress of a delivery.
type Status int

const (
	Idle Status = iota
	Sending
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of a pipeline's delivery.
type State struct {
	Status    Status
	LastError string // set when Failed
	Timestamp string // receiver acknowledgment, set on Success
	Attempts  int
}

// Sender delivers one message. notify.Client is the production Sender.
type Sender interface {
	Send(ctx context.Context, message string) (notify.Receipt, error)
}

// Recorder keeps an audit trail of attempts. journal.Journal is the
// production Recorder.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for delivery events.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithJournal records every resolved attempt in r.
func WithJournal(r Recorder) Option {
	return func(p *Pipeline) {
		p.journal = r
	}
}

// WithSessionID tags log lines and journal entries with the wizard session.
func WithSessionID(id string) Option {
	return func(p *Pipeline) {
		p.session = id
	}
}

// WithTimeout bounds each attempt. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

// Pipeline delivers the answers of one completed session. At most one
// attempt is in flight at any time.
type Pipeline struct {
	schema  *schema.Schema
	sender  Sender
	journal Recorder
	log     zerolog.Logger
	session string
	timeout time.Duration

	mu      sync.Mutex
	state   State
	message string
	done    chan struct{} // closed when the current attempt resolves
}

// NewPipeline returns an idle pipeline for answers to s.
func NewPipeline(s *schema.Schema, sender Sender, opts ...Option) *Pipeline {
	p := &Pipeline{
		schema: s,
		sender: sender,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit formats store and starts the first delivery attempt. It returns
// without waiting for the attempt. Only an idle pipeline submits; otherwise
// the current state is returned unchanged.
func (p *Pipeline) Submit(ctx context.Context, store *answer.Store) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Status != Idle {
		return p.state
	}
	p.message = FormatMessage(p.schema, store.Clone())
	p.startLocked(ctx)
	return p.state
}

// Retry re-delivers the same message after a failure. It is a no-op in any
// other status, which keeps a second attempt from starting while one is in
// flight.
func (p *Pipeline) Retry(ctx context.Context) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Status != Failed {
		return p.state
	}
	p.startLocked(ctx)
	return p.state
}

func (p *Pipeline) startLocked(ctx context.Context) {
	p.state.Status = Sending
	p.state.LastError = ""
	p.state.Attempts++
	p.done = make(chan struct{})

	p.log.Info().
		Str("session", p.session).
		Str("schema", p.schema.Name).
		Int("attempt", p.state.Attempts).
		Msg("delivering")

	go p.deliver(ctx, p.message, p.state.Attempts, p.done)
}

func (p *Pipeline) deliver(ctx context.Context, message string, attempt int, done chan struct{}) {
	sendCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	receipt, err := p.sender.Send(sendCtx, message)

	p.mu.Lock()
	if err != nil {
		p.state.Status = Failed
		p.state.LastError = p.describe(err)
	} else {
		p.state.Status = Success
		p.state.Timestamp = receipt.Timestamp
	}
	state := p.state
	p.mu.Unlock()
	defer close(done)

	event := p.log.Info()
	if err != nil {
		event = p.log.Warn().Err(err)
	}
	event.Str("session", p.session).
		Int("attempt", attempt).
		Stringer("status", state.Status).
		Msg("delivery resolved")

	p.record(context.WithoutCancel(ctx), attempt, state)
}

// describe turns a failure into the text shown to the user.
func (p *Pipeline) describe(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || notify.ClassOf(err) == notify.Timeout {
		if p.timeout > 0 {
			return fmt.Sprintf("delivery timed out after %s", p.timeout)
		}
		return "delivery timed out"
	}
	var de *notify.DeliveryError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return "could not deliver the message"
}

func (p *Pipeline) record(ctx context.Context, attempt int, state State) {
	if p.journal == nil {
		return
	}
	entry := journal.Entry{
		SessionID: p.session,
		Schema:    p.schema.Name,
		Attempt:   attempt,
		Status:    state.Status.String(),
		Error:     state.LastError,
		ReceiptTS: state.Timestamp,
	}
	if err := p.journal.Record(ctx, entry); err != nil {
		p.log.Error().Err(err).Str("session", p.session).Msg("failed to journal delivery")
	}
}

// State returns the current delivery state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Wait blocks until the in-flight attempt resolves or ctx ends, then returns
// the state. It returns immediately when nothing is in flight.
func (p *Pipeline) Wait(ctx context.Context) State {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
	return p.State()
}

// Message returns the formatted message, or "" before Submit.
func (p *Pipeline) Message() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.message
}

// Factory builds the pipeline for one wizard session.
type Factory func(session string) *Pipeline

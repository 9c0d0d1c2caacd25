// Package prompt runs a wizard as numbered line prompts, for terminals
// without full-screen support and for piped input.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/delivery"
	"github.com/jywlabs/brio/internal/output"
	"github.com/jywlabs/brio/internal/schema"
	"github.com/jywlabs/brio/internal/validate"
	"github.com/jywlabs/brio/internal/wizard"
)

// Commands accepted at any question prompt.
const (
	CmdBack    = ":back"
	CmdRestart = ":restart"
	CmdQuit    = ":quit"
)

// ErrQuit is returned when the user leaves with :quit.
var ErrQuit = errors.New("wizard abandoned")

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	printer     *output.Printer
	newPipeline delivery.Factory
}

// New returns a Prompter. newPipeline builds the delivery for each completed
// session; nil skips delivery.
func New(in io.Reader, out io.Writer, newPipeline delivery.Factory) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		printer:     output.New(out),
		newPipeline: newPipeline,
	}
}

// Run walks s from the welcome screen to delivery and returns the final
// delivery state.
func (p *Prompter) Run(ctx context.Context, s *schema.Schema, opts ...wizard.Option) (delivery.State, error) {
	var pipeline *delivery.Pipeline
	trigger := func(session string, store *answer.Store) {
		if p.newPipeline == nil {
			return
		}
		pipeline = p.newPipeline(session)
		pipeline.Submit(ctx, store)
	}
	c := wizard.New(s, trigger, opts...)

	for c.Phase() != wizard.Complete {
		if err := ctx.Err(); err != nil {
			return delivery.State{}, err
		}
		var err error
		if c.Phase() == wizard.Welcome {
			err = p.welcome(c)
		} else {
			err = p.question(c)
		}
		if err != nil {
			return delivery.State{}, err
		}
	}

	if pipeline == nil {
		p.printer.Screen(s.Farewell)
		return delivery.State{}, nil
	}
	return p.finish(ctx, s, pipeline)
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("input ended before the wizard completed: %w", io.ErrUnexpectedEOF)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) welcome(c *wizard.Controller) error {
	s := c.Schema()
	p.printer.Screen(s.Welcome)
	start := s.Welcome.Start
	if start == "" {
		start = "Começar"
	}
	fmt.Fprintf(p.out, "[Enter] %s\n", start)
	line, err := p.readLine()
	if err != nil {
		return err
	}
	if line == CmdQuit {
		return ErrQuit
	}
	c.Start()
	return nil
}

func (p *Prompter) question(c *wizard.Controller) error {
	q, _ := c.Current()
	fmt.Fprintln(p.out)
	p.printer.QuestionStart(c.Step()+1, c.Total())
	if greeting := c.Greeting(); greeting != "" && c.Step() >= 2 {
		p.printer.Greeting(greeting)
	}
	p.show(q, c.Store())
	fmt.Fprint(p.out, "\nSua resposta: ")

	line, err := p.readLine()
	if err != nil {
		return err
	}

	switch line {
	case CmdQuit:
		return ErrQuit
	case CmdBack:
		c.Back()
		return nil
	case CmdRestart:
		c.Restart()
		return nil
	}

	// An empty line keeps an answer given before going back.
	if line != "" || !c.CanAdvance() {
		msg, err := p.apply(c, q, line)
		if err != nil {
			return err
		}
		if msg != "" {
			p.printer.Blocked(msg)
			return nil
		}
	}

	if c.Next() == wizard.Blocked {
		p.printer.Blocked(c.BlockedReason())
	}
	return nil
}

// show prints the question text and its choices or scale.
func (p *Prompter) show(q schema.Question, store *answer.Store) {
	title := q.Title
	if q.Emoji != "" {
		title = q.Emoji + " " + title
	}
	fmt.Fprintln(p.out, title)
	if q.Description != "" {
		fmt.Fprintln(p.out, q.Description)
	}

	switch q.Kind {
	case schema.SingleChoice, schema.MultiChoice:
		selected := store.Members(q.ID)
		if q.Kind == schema.SingleChoice && store.Text(q.ID) != "" {
			selected = answer.Set{store.Text(q.ID)}
		}
		for i, opt := range q.Options {
			mark := "[ ]"
			if selected.Contains(opt.Value) {
				mark = "[x]"
			}
			fmt.Fprintf(p.out, "   %d. %s %s\n", i+1, mark, opt.Label)
		}
		if q.Kind == schema.MultiChoice {
			fmt.Fprintln(p.out, "(separe os números com vírgula)")
		}
	case schema.LikertScale:
		fmt.Fprintf(p.out, "(%d a %d)\n", validate.LikertMin, validate.LikertMax)
	case schema.NpsScore:
		fmt.Fprintf(p.out, "(%d a %d)\n", validate.NpsMin, validate.NpsMax)
	default:
		if len(q.Suggestions) > 0 {
			fmt.Fprintf(p.out, "Ex.: %s\n", q.Suggestions[0])
		}
	}
}

// apply stores the typed answer. A non-empty message means the input was
// not understood and nothing should advance.
func (p *Prompter) apply(c *wizard.Controller, q schema.Question, line string) (string, error) {
	switch q.Kind {
	case schema.LikertScale, schema.NpsScore:
		n, err := strconv.Atoi(line)
		if err != nil {
			return "digite um número", nil
		}
		c.SetNumber(q.ID, n)
	case schema.SingleChoice:
		opt, ok := pick(q, line)
		if !ok {
			return "escolha um dos números da lista", nil
		}
		c.SelectChoice(q.ID, opt.Value)
		if opt.Value == answer.Other && opt.AllowsCustomText {
			return "", p.askCustom(c, q)
		}
	case schema.MultiChoice:
		var opts []schema.Option
		for _, part := range strings.Split(line, ",") {
			opt, ok := pick(q, strings.TrimSpace(part))
			if !ok {
				return "escolha números da lista", nil
			}
			if !slices.ContainsFunc(opts, func(o schema.Option) bool { return o.Value == opt.Value }) {
				opts = append(opts, opt)
			}
		}
		if q.MaxSelections > 0 && len(opts) > q.MaxSelections {
			return fmt.Sprintf("selecione até %d opções", q.MaxSelections), nil
		}
		c.UpdateAnswer(q.ID, nil)
		for _, opt := range opts {
			c.ToggleChoice(q.ID, opt.Value)
			if opt.Value == answer.Other && opt.AllowsCustomText {
				if err := p.askCustom(c, q); err != nil {
					return "", err
				}
			}
		}
	default:
		c.SetText(q.ID, line)
	}
	return "", nil
}

func (p *Prompter) askCustom(c *wizard.Controller, q schema.Question) error {
	opt, _ := q.Option(answer.Other)
	label := "Especifique"
	if opt.Description != "" {
		label = opt.Description
	}
	fmt.Fprintf(p.out, "%s: ", label)
	text, err := p.readLine()
	if err != nil {
		return err
	}
	c.UpdateCustom(q.ID, text)
	return nil
}

// pick resolves a 1-based option number or an option value.
func pick(q schema.Question, input string) (schema.Option, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(q.Options) {
			return q.Options[n-1], true
		}
		return schema.Option{}, false
	}
	return q.Option(input)
}

// finish waits for delivery and offers a retry on every failure.
func (p *Prompter) finish(ctx context.Context, s *schema.Schema, pipeline *delivery.Pipeline) (delivery.State, error) {
	p.printer.Sending()
	for {
		state := pipeline.Wait(ctx)
		if err := ctx.Err(); err != nil {
			return state, err
		}
		if state.Status == delivery.Success {
			p.printer.DeliverySuccess()
			fmt.Fprintln(p.out)
			p.printer.Screen(s.Farewell)
			return state, nil
		}

		p.printer.DeliveryFailure(state.LastError)
		fmt.Fprint(p.out, "Tentar novamente? [s/N] ")
		line, err := p.readLine()
		if err != nil || !isYes(line) {
			return state, nil
		}
		pipeline.Retry(ctx)
		p.printer.Sending()
	}
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

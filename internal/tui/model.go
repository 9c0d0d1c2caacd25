// Package tui runs a wizard as a full-screen terminal program.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/delivery"
	"github.com/jywlabs/brio/internal/output"
	"github.com/jywlabs/brio/internal/schema"
	"github.com/jywlabs/brio/internal/validate"
	"github.com/jywlabs/brio/internal/wizard"
)

// deliveryMsg carries the resolution of a delivery attempt.
type deliveryMsg struct {
	session string
	state   delivery.State
}

// submission is shared between the model and the controller's trigger so
// the pipeline survives bubbletea's value copies of Model.
type submission struct {
	pipeline *delivery.Pipeline
	session  string
}

// Model is the bubbletea model of one wizard run.
type Model struct {
	ctx         context.Context
	ctrl        *wizard.Controller
	newPipeline delivery.Factory
	sub         *submission

	input         textinput.Model // short text and NPS reason answers
	custom        textinput.Model // companion text of "other"
	editingCustom bool
	cursor        int
	suggestion    int
	hint          string
	width         int
	quitting      bool
}

// NewModel returns a model on the welcome screen of s.
func NewModel(ctx context.Context, s *schema.Schema, newPipeline delivery.Factory, opts ...wizard.Option) Model {
	sub := &submission{}
	trigger := func(session string, store *answer.Store) {
		if newPipeline == nil {
			return
		}
		sub.pipeline = newPipeline(session)
		sub.session = session
		sub.pipeline.Submit(ctx, store)
	}

	in := textinput.New()
	in.CharLimit = 500
	in.Width = 60

	custom := textinput.New()
	custom.CharLimit = 200
	custom.Width = 50

	return Model{
		ctx:         ctx,
		ctrl:        wizard.New(s, trigger, opts...),
		newPipeline: newPipeline,
		sub:         sub,
		input:       in,
		custom:      custom,
		width:       GetTerminalWidth(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the delivery state of the current session.
func (m Model) State() delivery.State {
	if m.sub.pipeline == nil {
		return delivery.State{}
	}
	return m.sub.pipeline.State()
}

// Controller exposes the wizard for callers that inspect the final state.
func (m Model) Controller() *wizard.Controller {
	return m.ctrl
}

func (m Model) waitForDelivery() tea.Cmd {
	pipeline, session, ctx := m.sub.pipeline, m.sub.session, m.ctx
	if pipeline == nil {
		return nil
	}
	return func() tea.Msg {
		return deliveryMsg{session: session, state: pipeline.Wait(ctx)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case deliveryMsg:
		if msg.session != m.sub.session {
			return m, nil
		}
		// The farewell view reads the pipeline state; the message only
		// brings a redraw.
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.ctrl.Phase() {
		case wizard.Welcome:
			return m.updateWelcome(msg)
		case wizard.Answering:
			return m.updateQuestion(msg)
		default:
			return m.updateComplete(msg)
		}
	}
	return m, nil
}

func (m Model) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.Start()
		return m.enterQuestion()
	case "esc", "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// enterQuestion prepares the inputs for the question now on screen.
func (m Model) enterQuestion() (tea.Model, tea.Cmd) {
	m.hint = ""
	m.cursor = 0
	m.suggestion = 0
	m.editingCustom = false
	m.custom.Blur()
	m.input.Blur()

	q, ok := m.ctrl.Current()
	if !ok {
		return m, nil
	}
	store := m.ctrl.Store()
	m.custom.SetValue(store.Custom(q.ID))

	switch q.Kind {
	case schema.ShortText, schema.NpsReason:
		m.input.SetValue(store.Text(q.ID))
		m.input.Placeholder = q.Placeholder
		return m, m.input.Focus()
	case schema.SingleChoice:
		for i, opt := range q.Options {
			if opt.Value == store.Text(q.ID) {
				m.cursor = i
			}
		}
	}
	return m, nil
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q, _ := m.ctrl.Current()

	switch msg.String() {
	case "esc":
		if m.editingCustom {
			m.editingCustom = false
			m.custom.Blur()
			return m, nil
		}
		if m.ctrl.Back() {
			return m.enterQuestion()
		}
		return m, nil
	case "ctrl+r":
		m.ctrl.Restart()
		m.input.SetValue("")
		return m.enterQuestion()
	}

	if m.editingCustom {
		return m.updateCustom(msg)
	}

	switch q.Kind {
	case schema.ShortText, schema.NpsReason:
		return m.updateText(q, msg)
	case schema.SingleChoice, schema.MultiChoice:
		return m.updateChoice(q, msg)
	case schema.LikertScale:
		return m.updateScale(q, msg, validate.LikertMin, validate.LikertMax)
	case schema.NpsScore:
		return m.updateScale(q, msg, validate.NpsMin, validate.NpsMax)
	}
	return m, nil
}

// next tries to advance and starts waiting on delivery when the session
// completes.
func (m Model) next() (tea.Model, tea.Cmd) {
	switch m.ctrl.Next() {
	case wizard.Blocked:
		m.hint = m.ctrl.BlockedReason()
		return m, nil
	case wizard.Completed:
		m.input.Blur()
		m.custom.Blur()
		m.editingCustom = false
		m.hint = ""
		return m, m.waitForDelivery()
	default:
		return m.enterQuestion()
	}
}

func (m Model) updateText(q schema.Question, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.SetText(q.ID, m.input.Value())
		return m.next()
	case "tab":
		if len(q.Suggestions) > 0 {
			m.input.SetValue(q.Suggestions[m.suggestion%len(q.Suggestions)])
			m.input.CursorEnd()
			m.suggestion++
			m.ctrl.SetText(q.ID, m.input.Value())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetText(q.ID, m.input.Value())
	m.hint = ""
	return m, cmd
}

func (m Model) updateChoice(q schema.Question, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(q.Options)-1 {
			m.cursor++
		}
	case " ", "x":
		m.choose(q)
		return m.maybeEditCustom(q)
	case "enter":
		if q.Kind == schema.SingleChoice {
			m.choose(q)
			if m, cmd, editing := m.editCustomIfNeeded(q); editing {
				return m, cmd
			}
		}
		return m.next()
	}
	return m, nil
}

// choose selects or toggles the option under the cursor.
func (m *Model) choose(q schema.Question) {
	value := q.Options[m.cursor].Value
	m.hint = ""
	if q.Kind == schema.SingleChoice {
		m.ctrl.SelectChoice(q.ID, value)
		return
	}
	if !m.ctrl.ToggleChoice(q.ID, value) {
		m.hint = fmt.Sprintf("selecione até %d opções", q.MaxSelections)
	}
}

func (m Model) maybeEditCustom(q schema.Question) (tea.Model, tea.Cmd) {
	m, cmd, _ := m.editCustomIfNeeded(q)
	return m, cmd
}

// editCustomIfNeeded focuses the companion input when "other" was just
// chosen and still has no text.
func (m Model) editCustomIfNeeded(q schema.Question) (Model, tea.Cmd, bool) {
	value := q.Options[m.cursor].Value
	if value != answer.Other || !q.Options[m.cursor].AllowsCustomText {
		return m, nil, false
	}
	store := m.ctrl.Store()
	chosen := store.Text(q.ID) == answer.Other || store.Members(q.ID).Contains(answer.Other)
	if !chosen || strings.TrimSpace(store.Custom(q.ID)) != "" {
		return m, nil, false
	}
	m.editingCustom = true
	return m, m.custom.Focus(), true
}

func (m Model) updateCustom(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q, _ := m.ctrl.Current()
	if msg.String() == "enter" {
		m.ctrl.UpdateCustom(q.ID, m.custom.Value())
		m.editingCustom = false
		m.custom.Blur()
		if q.Kind == schema.SingleChoice {
			return m.next()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.custom, cmd = m.custom.Update(msg)
	m.ctrl.UpdateCustom(q.ID, m.custom.Value())
	m.hint = ""
	return m, cmd
}

func (m Model) updateScale(q schema.Question, msg tea.KeyMsg, min, max int) (tea.Model, tea.Cmd) {
	current, ok := m.ctrl.Store().Number(q.ID)
	key := msg.String()
	switch key {
	case "enter":
		return m.next()
	case "left", "h":
		switch {
		case !ok:
			current = (min + max) / 2
		case current > min:
			current--
		}
	case "right", "l":
		switch {
		case !ok:
			current = (min + max) / 2
		case current < max:
			current++
		}
	default:
		// Single digits only; 10 on the NPS scale is reached with the arrows.
		n, err := strconv.Atoi(key)
		if err != nil || len(key) != 1 || n < min || n > max {
			return m, nil
		}
		current = n
	}
	m.ctrl.SetNumber(q.ID, current)
	m.hint = ""
	return m, nil
}

func (m Model) updateComplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		if m.sub.pipeline != nil && m.sub.pipeline.State().Status == delivery.Failed {
			m.sub.pipeline.Retry(m.ctx)
			return m, m.waitForDelivery()
		}
	case "n":
		m.ctrl.Restart()
		m.sub.pipeline = nil
		m.sub.session = ""
		m.input.SetValue("")
		return m, nil
	case "q", "esc", "enter":
		if m.State().Status != delivery.Sending {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.ctrl.Schema()
	var body string
	switch m.ctrl.Phase() {
	case wizard.Welcome:
		body = m.viewScreen(s.Welcome, "enter "+startLabel(s.Welcome)+" · q sair")
	case wizard.Answering:
		body = m.viewQuestion()
	default:
		body = m.viewComplete()
	}
	return BoxStyle(ColorInfo, m.width).Render(body) + "\n"
}

func startLabel(s schema.Screen) string {
	if s.Start != "" {
		return s.Start
	}
	return "começar"
}

func (m Model) viewScreen(screen schema.Screen, help string) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(screen.Title))
	b.WriteString("\n\n")
	if screen.Body != "" {
		b.WriteString(screen.Body)
		b.WriteString("\n\n")
	}
	b.WriteString(StyleMuted.Render(help))
	return b.String()
}

func (m Model) viewQuestion() string {
	q, _ := m.ctrl.Current()
	store := m.ctrl.Store()
	step, total := m.ctrl.Step()+1, m.ctrl.Total()

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n",
		StyleMuted.Render(fmt.Sprintf("Pergunta %d de %d", step, total)),
		progressBar(step, total),
		StyleMuted.Render(fmt.Sprintf("%d%%", output.Percent(step, total))))
	if stars := starRow(step, total); stars != "" {
		b.WriteString(stars + "\n")
	}
	b.WriteString("\n")

	if greeting := m.ctrl.Greeting(); greeting != "" && m.ctrl.Step() >= 2 {
		b.WriteString(StyleAccent.Render(fmt.Sprintf("Oi, %s!", greeting)) + "\n")
	}

	title := q.Title
	if q.Emoji != "" {
		title = q.Emoji + " " + title
	}
	b.WriteString(StyleTitle.Render(title) + "\n")
	if q.Description != "" {
		b.WriteString(StyleMuted.Render(q.Description) + "\n")
	}
	b.WriteString("\n")

	help := "enter continuar · esc voltar · ctrl+r recomeçar"
	switch q.Kind {
	case schema.ShortText, schema.NpsReason:
		b.WriteString(m.input.View() + "\n")
		if len(q.Suggestions) > 0 {
			help = "tab sugestão · " + help
		}
	case schema.SingleChoice, schema.MultiChoice:
		b.WriteString(m.viewOptions(q, store))
		help = "↑/↓ mover · espaço marcar · " + help
	case schema.LikertScale:
		b.WriteString(m.viewLikert(q, store) + "\n")
		help = "←/→ ou 1-5 · " + help
	case schema.NpsScore:
		b.WriteString(m.viewNps(q, store) + "\n")
		help = "←/→ ou 0-9 · " + help
	}

	if m.hint != "" {
		b.WriteString("\n" + StyleError.Render(m.hint) + "\n")
	}
	b.WriteString("\n" + StyleMuted.Render(help))
	return b.String()
}

func (m Model) viewOptions(q schema.Question, store *answer.Store) string {
	var b strings.Builder
	selected := store.Members(q.ID)
	if q.Kind == schema.SingleChoice && store.Text(q.ID) != "" {
		selected = answer.Set{store.Text(q.ID)}
	}

	for i, opt := range q.Options {
		cursor := "  "
		if i == m.cursor {
			cursor = StyleAccent.Render("> ")
		}
		mark := "[ ]"
		if selected.Contains(opt.Value) {
			mark = StyleSelected.Render("[x]")
		}
		label := opt.Label
		if opt.Description != "" {
			label += " " + StyleMuted.Render(opt.Description)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, label)
	}

	if selected.Contains(answer.Other) {
		if opt, _ := q.Option(answer.Other); opt.AllowsCustomText {
			b.WriteString("\n" + m.custom.View() + "\n")
		}
	}
	if q.Kind == schema.MultiChoice && q.MaxSelections > 0 {
		b.WriteString(StyleMuted.Render(fmt.Sprintf("%d de %d selecionados", len(selected), q.MaxSelections)) + "\n")
	}
	return b.String()
}

func (m Model) viewLikert(q schema.Question, store *answer.Store) string {
	current, ok := store.Number(q.ID)
	parts := make([]string, 0, len(likertFaces))
	for i, face := range likertFaces {
		n := i + validate.LikertMin
		cell := fmt.Sprintf(" %s %d ", face, n)
		if ok && n == current {
			cell = StyleSelected.Render("[" + strings.TrimSpace(cell) + "]")
		}
		parts = append(parts, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewNps(q schema.Question, store *answer.Store) string {
	current, ok := store.Number(q.ID)
	var b strings.Builder
	for n := validate.NpsMin; n <= validate.NpsMax; n++ {
		cell := fmt.Sprintf(" %d ", n)
		if ok && n == current {
			cell = StyleSelected.Render(fmt.Sprintf("[%d]", n))
		}
		b.WriteString(cell)
	}
	return b.String()
}

func (m Model) viewComplete() string {
	s := m.ctrl.Schema()
	var b strings.Builder
	b.WriteString(StyleTitle.Render(s.Farewell.Title) + "\n\n")
	if s.Farewell.Body != "" {
		b.WriteString(s.Farewell.Body + "\n\n")
	}

	help := "n responder de novo · q sair"
	state := m.State()
	switch state.Status {
	case delivery.Sending:
		b.WriteString(StyleInfo.Render("Enviando suas respostas..."))
		help = "aguarde o envio"
	case delivery.Success:
		b.WriteString(StyleSuccess.Render("✓ Respostas enviadas"))
	case delivery.Failed:
		b.WriteString(StyleError.Render("✗ Falha no envio: " + state.LastError))
		help = "r tentar novamente · " + help
	}
	b.WriteString("\n\n" + StyleMuted.Render(help))
	return b.String()
}

// Run shows the wizard full screen until the user quits and returns the
// final delivery state.
func Run(ctx context.Context, s *schema.Schema, newPipeline delivery.Factory, opts ...wizard.Option) (delivery.State, error) {
	p := tea.NewProgram(NewModel(ctx, s, newPipeline, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return delivery.State{}, fmt.Errorf("wizard UI failed: %w", err)
	}
	return final.(Model).State(), nil
}

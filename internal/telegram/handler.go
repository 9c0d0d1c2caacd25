// Package telegram serves wizards as Telegram chats, one session per chat.
package telegram

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/delivery"
	"github.com/jywlabs/brio/internal/schema"
	"github.com/jywlabs/brio/internal/validate"
	"github.com/jywlabs/brio/internal/wizard"
)

// Commands understood in every chat.
const (
	CmdStart   = "/start"
	CmdHelp    = "/help"
	CmdBack    = "/back"
	CmdRestart = "/restart"
	CmdRetry   = "/retry"
	CmdDone    = "/done"
)

const checkMark = "✅ "

// Sender is the part of the Bot API the handler needs. *bot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// PipelineFunc builds the delivery pipeline of one completed session.
type PipelineFunc func(s *schema.Schema, session string) *delivery.Pipeline

// session is the wizard of one chat.
type session struct {
	mu            sync.Mutex
	ctrl          *wizard.Controller
	pipeline      *delivery.Pipeline
	awaitingOther bool
}

// Handler routes chat messages to per-chat wizard sessions.
type Handler struct {
	schemas     map[string]*schema.Schema
	defaultName string
	newPipeline PipelineFunc
	log         zerolog.Logger

	mu       sync.Mutex
	sessions map[int64]*session
	pending  sync.WaitGroup
}

// NewHandler returns a handler serving schemas. "/start" opens defaultName
// and "/<name>" opens any other schema by name.
func NewHandler(schemas map[string]*schema.Schema, defaultName string, newPipeline PipelineFunc, log zerolog.Logger) (*Handler, error) {
	if _, ok := schemas[defaultName]; !ok {
		return nil, fmt.Errorf("default schema %q is not served", defaultName)
	}
	return &Handler{
		schemas:     schemas,
		defaultName: defaultName,
		newPipeline: newPipeline,
		log:         log,
		sessions:    make(map[int64]*session),
	}, nil
}

// BotHandler adapts the handler to bot.WithDefaultHandler.
func (h *Handler) BotHandler() bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.Handle(ctx, b, update)
	}
}

// Wait blocks until every delivery notification has been sent.
func (h *Handler) Wait() {
	h.pending.Wait()
}

// Handle processes one update.
func (h *Handler) Handle(ctx context.Context, s Sender, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	log := h.log.With().Int64("chat", chatID).Logger()

	if name, ok := h.schemaCommand(text); ok {
		sess := h.open(chatID, name, log)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		h.sendWelcome(ctx, s, chatID, sess)
		sess.ctrl.Start()
		h.sendQuestion(ctx, s, chatID, sess)
		return
	}

	sess := h.session(chatID)
	if sess == nil || text == CmdHelp {
		h.send(ctx, s, chatID, h.help(), nil)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch text {
	case CmdBack:
		sess.awaitingOther = false
		if sess.ctrl.Back() {
			h.sendQuestion(ctx, s, chatID, sess)
		}
		return
	case CmdRestart:
		sess.ctrl.Restart()
		sess.pipeline = nil
		sess.awaitingOther = false
		h.sendWelcome(ctx, s, chatID, sess)
		sess.ctrl.Start()
		h.sendQuestion(ctx, s, chatID, sess)
		return
	case CmdRetry:
		h.retry(ctx, s, chatID, sess)
		return
	}

	if sess.ctrl.Phase() != wizard.Answering {
		h.send(ctx, s, chatID, "Use /restart para responder de novo.", nil)
		return
	}
	h.answer(ctx, s, chatID, sess, text)
}

// schemaCommand maps "/start" and "/<schema name>" to a schema.
func (h *Handler) schemaCommand(text string) (string, bool) {
	if text == CmdStart {
		return h.defaultName, true
	}
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	name := strings.TrimPrefix(text, "/")
	_, ok := h.schemas[name]
	return name, ok
}

// open replaces the chat's session with a fresh one of the named schema.
func (h *Handler) open(chatID int64, name string, log zerolog.Logger) *session {
	s := h.schemas[name]
	sess := &session{}
	trigger := func(id string, store *answer.Store) {
		if h.newPipeline == nil {
			return
		}
		sess.pipeline = h.newPipeline(s, id)
		sess.pipeline.Submit(context.Background(), store)
	}
	sess.ctrl = wizard.New(s, trigger, wizard.WithLogger(log))

	h.mu.Lock()
	h.sessions[chatID] = sess
	h.mu.Unlock()
	log.Info().Str("schema", name).Msg("session opened")
	return sess
}

func (h *Handler) session(chatID int64) *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[chatID]
}

func (h *Handler) help() string {
	names := make([]string, 0, len(h.schemas))
	for name := range h.schemas {
		names = append(names, "/"+name)
	}
	sort.Strings(names)
	return fmt.Sprintf("Use %s para começar (%s).\n%s volta uma pergunta, %s recomeça, %s reenvia as respostas.",
		CmdStart, strings.Join(names, ", "), CmdBack, CmdRestart, CmdRetry)
}

// answer applies text to the current question and advances when it can.
func (h *Handler) answer(ctx context.Context, s Sender, chatID int64, sess *session, text string) {
	q, _ := sess.ctrl.Current()

	if sess.awaitingOther {
		sess.awaitingOther = false
		sess.ctrl.UpdateCustom(q.ID, text)
		if q.Kind == schema.MultiChoice {
			h.sendQuestion(ctx, s, chatID, sess)
			return
		}
		h.next(ctx, s, chatID, sess)
		return
	}

	switch q.Kind {
	case schema.ShortText, schema.NpsReason:
		sess.ctrl.SetText(q.ID, text)
	case schema.LikertScale, schema.NpsScore:
		n, err := strconv.Atoi(text)
		if err != nil {
			h.send(ctx, s, chatID, "Responda com um número.", keyboard(q, sess.ctrl.Store()))
			return
		}
		sess.ctrl.SetNumber(q.ID, n)
	case schema.SingleChoice:
		opt, ok := matchOption(q, text)
		if !ok {
			h.send(ctx, s, chatID, "Escolha uma das opções do teclado.", keyboard(q, sess.ctrl.Store()))
			return
		}
		sess.ctrl.SelectChoice(q.ID, opt.Value)
		if opt.Value == answer.Other && opt.AllowsCustomText {
			h.askOther(ctx, s, chatID, sess, opt)
			return
		}
	case schema.MultiChoice:
		if text == CmdDone {
			break
		}
		opt, ok := matchOption(q, text)
		if !ok {
			h.send(ctx, s, chatID, "Escolha uma das opções do teclado.", keyboard(q, sess.ctrl.Store()))
			return
		}
		if !sess.ctrl.ToggleChoice(q.ID, opt.Value) {
			h.send(ctx, s, chatID, fmt.Sprintf("Selecione até %d opções.", q.MaxSelections), keyboard(q, sess.ctrl.Store()))
			return
		}
		if opt.Value == answer.Other && opt.AllowsCustomText && sess.ctrl.Store().Members(q.ID).Contains(answer.Other) {
			h.askOther(ctx, s, chatID, sess, opt)
			return
		}
		h.sendQuestion(ctx, s, chatID, sess)
		return
	}
	h.next(ctx, s, chatID, sess)
}

func (h *Handler) askOther(ctx context.Context, s Sender, chatID int64, sess *session, opt schema.Option) {
	sess.awaitingOther = true
	label := opt.Description
	if label == "" {
		label = "Conte qual:"
	}
	h.send(ctx, s, chatID, label, &models.ReplyKeyboardRemove{RemoveKeyboard: true})
}

func (h *Handler) next(ctx context.Context, s Sender, chatID int64, sess *session) {
	switch sess.ctrl.Next() {
	case wizard.Blocked:
		q, _ := sess.ctrl.Current()
		h.send(ctx, s, chatID, "✗ "+sess.ctrl.BlockedReason(), keyboard(q, sess.ctrl.Store()))
	case wizard.Advanced:
		h.sendQuestion(ctx, s, chatID, sess)
	case wizard.Completed:
		farewell := sess.ctrl.Schema().Farewell
		h.send(ctx, s, chatID, screenText(farewell), &models.ReplyKeyboardRemove{RemoveKeyboard: true})
		h.notify(ctx, s, chatID, sess.pipeline)
	}
}

func (h *Handler) retry(ctx context.Context, s Sender, chatID int64, sess *session) {
	if sess.pipeline == nil || sess.pipeline.State().Status != delivery.Failed {
		h.send(ctx, s, chatID, "Não há envio com falha para repetir.", nil)
		return
	}
	sess.pipeline.Retry(context.Background())
	h.notify(ctx, s, chatID, sess.pipeline)
}

// notify reports the outcome of the pipeline's current attempt once it
// resolves.
func (h *Handler) notify(ctx context.Context, s Sender, chatID int64, pipeline *delivery.Pipeline) {
	if pipeline == nil {
		return
	}
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		state := pipeline.Wait(context.WithoutCancel(ctx))
		switch state.Status {
		case delivery.Success:
			h.send(ctx, s, chatID, "✓ Respostas enviadas", nil)
		case delivery.Failed:
			h.send(ctx, s, chatID, fmt.Sprintf("✗ Falha no envio: %s\nUse %s para tentar novamente.", state.LastError, CmdRetry), nil)
		}
	}()
}

func (h *Handler) sendWelcome(ctx context.Context, s Sender, chatID int64, sess *session) {
	h.send(ctx, s, chatID, screenText(sess.ctrl.Schema().Welcome), nil)
}

func (h *Handler) sendQuestion(ctx context.Context, s Sender, chatID int64, sess *session) {
	q, ok := sess.ctrl.Current()
	if !ok {
		return
	}
	store := sess.ctrl.Store()
	h.send(ctx, s, chatID, questionText(sess.ctrl, q, store), keyboard(q, store))
}

func (h *Handler) send(ctx context.Context, s Sender, chatID int64, text string, markup models.ReplyMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := s.SendMessage(ctx, params); err != nil {
		h.log.Error().Err(err).Int64("chat", chatID).Msg("send message failed")
	}
}

func screenText(sc schema.Screen) string {
	if sc.Body == "" {
		return sc.Title
	}
	return sc.Title + "\n\n" + sc.Body
}

func questionText(c *wizard.Controller, q schema.Question, store *answer.Store) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pergunta %d de %d\n", c.Step()+1, c.Total())
	if greeting := c.Greeting(); greeting != "" && c.Step() >= 2 {
		fmt.Fprintf(&b, "Oi, %s!\n", greeting)
	}
	b.WriteString("\n")
	if q.Emoji != "" {
		b.WriteString(q.Emoji + " ")
	}
	b.WriteString(q.Title)
	if q.Description != "" {
		b.WriteString("\n" + q.Description)
	}

	switch q.Kind {
	case schema.MultiChoice:
		fmt.Fprintf(&b, "\n\n%d selecionados", len(store.Members(q.ID)))
		if q.MaxSelections > 0 {
			fmt.Fprintf(&b, " de %d", q.MaxSelections)
		}
		fmt.Fprintf(&b, ". Toque em %s para continuar.", CmdDone)
	case schema.LikertScale:
		fmt.Fprintf(&b, "\n\n(%d a %d)", validate.LikertMin, validate.LikertMax)
	case schema.NpsScore:
		fmt.Fprintf(&b, "\n\n(%d a %d)", validate.NpsMin, validate.NpsMax)
	}
	return b.String()
}

// keyboard returns the reply keyboard offering q's answers.
func keyboard(q schema.Question, store *answer.Store) models.ReplyMarkup {
	var rows [][]models.KeyboardButton
	switch q.Kind {
	case schema.SingleChoice, schema.MultiChoice:
		selected := store.Members(q.ID)
		for _, opt := range q.Options {
			label := opt.Label
			if q.Kind == schema.MultiChoice && selected.Contains(opt.Value) {
				label = checkMark + label
			}
			rows = append(rows, []models.KeyboardButton{{Text: label}})
		}
		if q.Kind == schema.MultiChoice {
			rows = append(rows, []models.KeyboardButton{{Text: CmdDone}})
		}
	case schema.LikertScale:
		rows = append(rows, numberRow(validate.LikertMin, validate.LikertMax))
	case schema.NpsScore:
		rows = append(rows, numberRow(validate.NpsMin, 5), numberRow(6, validate.NpsMax))
	default:
		if len(q.Suggestions) == 0 {
			return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
		}
		for _, s := range q.Suggestions {
			rows = append(rows, []models.KeyboardButton{{Text: s}})
		}
	}
	rows = append(rows, []models.KeyboardButton{{Text: CmdBack}, {Text: CmdRestart}})
	return &models.ReplyKeyboardMarkup{
		Keyboard:       rows,
		ResizeKeyboard: true,
	}
}

func numberRow(from, to int) []models.KeyboardButton {
	row := make([]models.KeyboardButton, 0, to-from+1)
	for n := from; n <= to; n++ {
		row = append(row, models.KeyboardButton{Text: strconv.Itoa(n)})
	}
	return row
}

// matchOption resolves a keyboard label, an option value or a 1-based
// number.
func matchOption(q schema.Question, text string) (schema.Option, bool) {
	text = strings.TrimPrefix(text, checkMark)
	for _, opt := range q.Options {
		if opt.Label == text || opt.Value == text {
			return opt, true
		}
	}
	if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1], true
	}
	return schema.Option{}, false
}

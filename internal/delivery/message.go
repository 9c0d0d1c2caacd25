// Package delivery turns a completed answer store into a notification
// message and tracks its delivery.
package delivery

import (
	"strconv"
	"strings"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/schema"
)

// FormatMessage renders store as the message text for s: the schema title, a
// blank line, then one line per question in schema order.
func FormatMessage(s *schema.Schema, store *answer.Store) string {
	var b strings.Builder
	b.WriteString(s.Title)
	b.WriteString("\n")
	for _, q := range s.Questions {
		b.WriteString("\n")
		if q.Emoji != "" {
			b.WriteString(q.Emoji)
			b.WriteString(" ")
		}
		b.WriteString("**")
		b.WriteString(label(q))
		b.WriteString(":** ")
		b.WriteString(Render(s, q, store))
	}
	return b.String()
}

func label(q schema.Question) string {
	if q.Label != "" {
		return q.Label
	}
	return q.Title
}

// Render formats the answer to one question, substituting the schema's
// placeholders for missing answers.
func Render(s *schema.Schema, q schema.Question, store *answer.Store) string {
	switch q.Kind {
	case schema.LikertScale, schema.NpsScore:
		n, ok := store.Number(q.ID)
		if !ok {
			return notRated(s)
		}
		max := 5
		if q.Kind == schema.NpsScore {
			max = 10
		}
		return strconv.Itoa(n) + "/" + strconv.Itoa(max)
	case schema.SingleChoice:
		value := store.Text(q.ID)
		if value == "" {
			return notProvided(s)
		}
		return choiceLabel(q, value, store)
	case schema.MultiChoice:
		members := store.Members(q.ID)
		if len(members) == 0 {
			return notProvided(s)
		}
		labels := make([]string, 0, len(members))
		for _, opt := range q.Options {
			if members.Contains(opt.Value) {
				labels = append(labels, choiceLabel(q, opt.Value, store))
			}
		}
		// Members outside the option list still render, after the known ones.
		for _, m := range members {
			if _, ok := q.Option(m); !ok {
				labels = append(labels, m)
			}
		}
		return strings.Join(labels, ", ")
	default:
		text := store.Text(q.ID)
		if text == "" {
			return notProvided(s)
		}
		return text
	}
}

func choiceLabel(q schema.Question, value string, store *answer.Store) string {
	opt, ok := q.Option(value)
	if !ok {
		return value
	}
	if value == answer.Other {
		if custom := strings.TrimSpace(store.Custom(q.ID)); custom != "" {
			return `"` + custom + `"`
		}
	}
	return opt.Label
}

func notProvided(s *schema.Schema) string {
	if s.Placeholders.NotProvided != "" {
		return s.Placeholders.NotProvided
	}
	return "Não informado"
}

func notRated(s *schema.Schema) string {
	if s.Placeholders.NotRated != "" {
		return s.Placeholders.NotRated
	}
	return "Não avaliado"
}

// Package validate decides whether the current answer to a question lets the
// wizard move forward. Everything here is a pure function of the question and
// the store, so callers may evaluate it as often as they like.
package validate

import (
	"fmt"
	"strings"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/schema"
)

// Likert and NPS bounds, inclusive.
const (
	LikertMin = 1
	LikertMax = 5
	NpsMin    = 0
	NpsMax    = 10
)

// IsValid reports whether the stored answer to q allows advancing.
func IsValid(q schema.Question, store *answer.Store) bool {
	return Reason(q, store) == ""
}

// Reason explains why the stored answer to q blocks advancing. It returns ""
// when the answer is valid.
func Reason(q schema.Question, store *answer.Store) string {
	v, ok := store.Get(q.ID)
	if !ok {
		return missing(q.Kind)
	}
	if !answer.Fits(q.Kind, v) {
		return fmt.Sprintf("esperava uma resposta %s, recebeu %s", answer.ShapeFor(q.Kind), v.Shape())
	}

	switch q.Kind {
	case schema.ShortText, schema.NpsReason:
		if v.(answer.Text) == "" {
			return missing(q.Kind)
		}
	case schema.SingleChoice:
		return checkSingle(q, string(v.(answer.Text)), store)
	case schema.MultiChoice:
		return checkMulti(q, v.(answer.Set), store)
	case schema.LikertScale:
		if n := int(v.(answer.Number)); n < LikertMin || n > LikertMax {
			return fmt.Sprintf("a nota deve estar entre %d e %d", LikertMin, LikertMax)
		}
	case schema.NpsScore:
		if n := int(v.(answer.Number)); n < NpsMin || n > NpsMax {
			return fmt.Sprintf("a pontuação deve estar entre %d e %d", NpsMin, NpsMax)
		}
	default:
		return fmt.Sprintf("tipo de pergunta não suportado: %s", q.Kind)
	}
	return ""
}

func checkSingle(q schema.Question, value string, store *answer.Store) string {
	if value == "" {
		return missing(q.Kind)
	}
	opt, ok := q.Option(value)
	if !ok {
		return fmt.Sprintf("%q não é uma das opções", value)
	}
	if value == answer.Other && opt.AllowsCustomText && !hasCustom(q, store) {
		return "descreva sua outra resposta"
	}
	return ""
}

func checkMulti(q schema.Question, set answer.Set, store *answer.Store) string {
	if len(set) == 0 {
		return missing(q.Kind)
	}
	if q.MaxSelections > 0 && len(set) > q.MaxSelections {
		return fmt.Sprintf("selecione até %d opções", q.MaxSelections)
	}
	for _, m := range set {
		if _, ok := q.Option(m); !ok {
			return fmt.Sprintf("%q não é uma das opções", m)
		}
	}
	if set.Contains(answer.Other) {
		if opt, _ := q.Option(answer.Other); opt.AllowsCustomText && !hasCustom(q, store) {
			return "descreva sua outra resposta"
		}
	}
	return ""
}

func hasCustom(q schema.Question, store *answer.Store) bool {
	return strings.TrimSpace(store.Custom(q.ID)) != ""
}

func missing(kind schema.Kind) string {
	switch kind {
	case schema.SingleChoice:
		return "escolha uma opção"
	case schema.MultiChoice:
		return "escolha pelo menos uma opção"
	case schema.LikertScale:
		return "escolha uma nota"
	case schema.NpsScore:
		return "escolha uma pontuação"
	default:
		return "a resposta é obrigatória"
	}
}

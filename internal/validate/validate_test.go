package validate

import (
	"testing"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/schema"
)

var (
	shortText = schema.Question{ID: "name", Kind: schema.ShortText}
	npsReason = schema.Question{ID: "why", Kind: schema.NpsReason}
	likert    = schema.Question{ID: "fun", Kind: schema.LikertScale}
	nps       = schema.Question{ID: "nps", Kind: schema.NpsScore}
	single    = schema.Question{ID: "hero", Kind: schema.SingleChoice, Options: []schema.Option{
		{Value: "stitch", Label: "Stitch"},
		{Value: "other", Label: "Outro", AllowsCustomText: true},
	}}
	multi = schema.Question{ID: "powers", Kind: schema.MultiChoice, MaxSelections: 2, Options: []schema.Option{
		{Value: "fly", Label: "Voar"},
		{Value: "read", Label: "Ler mentes"},
		{Value: "run", Label: "Correr"},
		{Value: "other", Label: "Outro", AllowsCustomText: true},
	}}
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name   string
		q      schema.Question
		value  answer.Value
		custom string
		want   bool
	}{
		{"short text missing", shortText, nil, "", false},
		{"short text empty", shortText, answer.Text(""), "", false},
		{"short text whitespace counts", shortText, answer.Text(" "), "", true},
		{"short text set", shortText, answer.Text("Ana"), "", true},
		{"short text wrong shape", shortText, answer.Number(3), "", false},

		{"nps reason empty", npsReason, answer.Text(""), "", false},
		{"nps reason set", npsReason, answer.Text("porque sim"), "", true},

		{"likert 0", likert, answer.Number(0), "", false},
		{"likert 1", likert, answer.Number(1), "", true},
		{"likert 5", likert, answer.Number(5), "", true},
		{"likert 6", likert, answer.Number(6), "", false},
		{"likert missing", likert, nil, "", false},
		{"likert text", likert, answer.Text("5"), "", false},

		{"nps -1 unset", nps, answer.Number(-1), "", false},
		{"nps 0", nps, answer.Number(0), "", true},
		{"nps 10", nps, answer.Number(10), "", true},
		{"nps 11", nps, answer.Number(11), "", false},
		{"nps missing", nps, nil, "", false},

		{"single missing", single, nil, "", false},
		{"single empty", single, answer.Text(""), "", false},
		{"single option", single, answer.Text("stitch"), "", true},
		{"single unknown option", single, answer.Text("goku"), "", false},
		{"single other without text", single, answer.Text("other"), "", false},
		{"single other blank text", single, answer.Text("other"), "   ", false},
		{"single other with text", single, answer.Text("other"), "Mulan", true},
		{"single as set", single, answer.Set{"stitch"}, "", false},

		{"multi empty", multi, answer.Set{}, "", false},
		{"multi one", multi, answer.Set{"fly"}, "", true},
		{"multi at max", multi, answer.Set{"fly", "read"}, "", true},
		{"multi over max", multi, answer.Set{"fly", "read", "run"}, "", false},
		{"multi repeats count once", multi, answer.Set{"fly", "fly", "fly"}, "", true},
		{"multi unknown member", multi, answer.Set{"swim"}, "", false},
		{"multi other without text", multi, answer.Set{"fly", "other"}, "", false},
		{"multi other with text", multi, answer.Set{"fly", "other"}, "Cozinhar", true},
		{"multi as text", multi, answer.Text("fly"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := answer.NewStore()
			store.Put(tt.q.ID, tt.value)
			store.PutCustom(tt.q.ID, tt.custom)

			if got := IsValid(tt.q, store); got != tt.want {
				t.Errorf("IsValid = %v, want %v (reason %q)", got, tt.want, Reason(tt.q, store))
			}
			if reason := Reason(tt.q, store); (reason == "") != tt.want {
				t.Errorf("Reason = %q disagrees with want %v", reason, tt.want)
			}
		})
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		name   string
		q      schema.Question
		value  answer.Value
		custom string
		want   string
	}{
		{"short text missing", shortText, nil, "", "a resposta é obrigatória"},
		{"single missing", single, nil, "", "escolha uma opção"},
		{"single unknown", single, answer.Text("goku"), "", `"goku" não é uma das opções`},
		{"single other", single, answer.Text("other"), "", "descreva sua outra resposta"},
		{"multi empty", multi, answer.Set{}, "", "escolha pelo menos uma opção"},
		{"multi over max", multi, answer.Set{"fly", "read", "run"}, "", "selecione até 2 opções"},
		{"likert missing", likert, nil, "", "escolha uma nota"},
		{"likert range", likert, answer.Number(6), "", "a nota deve estar entre 1 e 5"},
		{"nps missing", nps, nil, "", "escolha uma pontuação"},
		{"nps range", nps, answer.Number(11), "", "a pontuação deve estar entre 0 e 10"},
		{"valid", single, answer.Text("stitch"), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := answer.NewStore()
			store.Put(tt.q.ID, tt.value)
			store.PutCustom(tt.q.ID, tt.custom)
			if got := Reason(tt.q, store); got != tt.want {
				t.Errorf("Reason = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOtherCustomTextReevaluation(t *testing.T) {
	store := answer.NewStore()
	store.Put(single.ID, answer.Text("other"))

	steps := []struct {
		custom string
		want   bool
	}{
		{"", false},
		{"Mulan", true},
		{"", false},
		{"Mulan", true},
	}
	for i, step := range steps {
		store.PutCustom(single.ID, step.custom)
		for j := 0; j < 2; j++ {
			if got := IsValid(single, store); got != step.want {
				t.Errorf("step %d eval %d: IsValid = %v, want %v", i, j, got, step.want)
			}
		}
	}
}

func TestOtherWithoutCustomTextOption(t *testing.T) {
	q := schema.Question{ID: "pick", Kind: schema.SingleChoice, Options: []schema.Option{
		{Value: "other", Label: "Outro"},
	}}
	store := answer.NewStore()
	store.Put(q.ID, answer.Text("other"))
	if !IsValid(q, store) {
		t.Errorf("other without allowsCustomText should not need text: %q", Reason(q, store))
	}
}

func TestIsValidHasNoSideEffects(t *testing.T) {
	store := answer.NewStore()
	store.Put(multi.ID, answer.Set{"fly", "other"})
	before := store.Clone()

	IsValid(multi, store)
	Reason(multi, store)

	if !store.Equal(before) {
		t.Error("validation mutated the store")
	}
}

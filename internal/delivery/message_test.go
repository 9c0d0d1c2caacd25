package delivery

import (
	"strings"
	"testing"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/schema"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		Name:  "sample",
		Title: "📋 # Sample",
		Placeholders: schema.Placeholders{
			NotProvided: "Não informado",
			NotRated:    "Não avaliado",
		},
		Questions: []schema.Question{
			{ID: "name", Kind: schema.ShortText, Emoji: "👤", Label: "Nome"},
			{ID: "hero", Kind: schema.SingleChoice, Emoji: "🦸", Label: "Herói", Options: []schema.Option{
				{Value: "stitch", Label: "Stitch"},
				{Value: "other", Label: "Outro", AllowsCustomText: true},
			}},
			{ID: "powers", Kind: schema.MultiChoice, Emoji: "⚡", Label: "Poderes", MaxSelections: 3, Options: []schema.Option{
				{Value: "fly", Label: "Voar"},
				{Value: "read", Label: "Ler mentes"},
				{Value: "other", Label: "Outro", AllowsCustomText: true},
			}},
			{ID: "fun", Kind: schema.LikertScale, Emoji: "🎮", Label: "Diversão"},
			{ID: "nps", Kind: schema.NpsScore, Emoji: "📊", Label: "NPS"},
			{ID: "why", Kind: schema.NpsReason, Emoji: "💭", Label: "Motivo"},
		},
	}
}

func TestFormatMessageEmptyStore(t *testing.T) {
	got := FormatMessage(testSchema(), answer.NewStore())
	want := strings.Join([]string{
		"📋 # Sample",
		"",
		"👤 **Nome:** Não informado",
		"🦸 **Herói:** Não informado",
		"⚡ **Poderes:** Não informado",
		"🎮 **Diversão:** Não avaliado",
		"📊 **NPS:** Não avaliado",
		"💭 **Motivo:** Não informado",
	}, "\n")
	if got != want {
		t.Errorf("FormatMessage mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatMessageFullStore(t *testing.T) {
	store := answer.NewStore()
	store.Put("name", answer.Text("Ana"))
	store.Put("hero", answer.Text("other"))
	store.PutCustom("hero", "  Mulan ")
	// Selection order differs from option order on purpose.
	store.Put("powers", answer.Set{"other", "fly"})
	store.PutCustom("powers", "Cozinhar")
	store.Put("fun", answer.Number(4))
	store.Put("nps", answer.Number(0))
	store.Put("why", answer.Text("Gostei"))

	got := FormatMessage(testSchema(), store)
	want := strings.Join([]string{
		"📋 # Sample",
		"",
		"👤 **Nome:** Ana",
		`🦸 **Herói:** "Mulan"`,
		`⚡ **Poderes:** Voar, "Cozinhar"`,
		"🎮 **Diversão:** 4/5",
		"📊 **NPS:** 0/10",
		"💭 **Motivo:** Gostei",
	}, "\n")
	if got != want {
		t.Errorf("FormatMessage mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatMessageIsDeterministic(t *testing.T) {
	store := answer.NewStore()
	store.Put("powers", answer.Set{"read", "fly"})
	store.Put("fun", answer.Number(5))

	s := testSchema()
	first := FormatMessage(s, store)
	for i := 0; i < 20; i++ {
		if got := FormatMessage(s, store.Clone()); got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestRenderChoice(t *testing.T) {
	s := testSchema()
	hero, _ := s.Question("hero")
	powers, _ := s.Question("powers")

	tests := []struct {
		name  string
		q     schema.Question
		setup func(*answer.Store)
		want  string
	}{
		{
			name:  "single option label",
			q:     hero,
			setup: func(st *answer.Store) { st.Put("hero", answer.Text("stitch")) },
			want:  "Stitch",
		},
		{
			name:  "other without custom text falls back to label",
			q:     hero,
			setup: func(st *answer.Store) { st.Put("hero", answer.Text("other")) },
			want:  "Outro",
		},
		{
			name: "custom text ignored when other not selected",
			q:    powers,
			setup: func(st *answer.Store) {
				st.Put("powers", answer.Set{"read"})
				st.PutCustom("powers", "Cozinhar")
			},
			want: "Ler mentes",
		},
		{
			name:  "labels follow option order",
			q:     powers,
			setup: func(st *answer.Store) { st.Put("powers", answer.Set{"read", "fly"}) },
			want:  "Voar, Ler mentes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := answer.NewStore()
			tt.setup(store)
			if got := Render(s, tt.q, store); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMessageBuiltinVariants(t *testing.T) {
	for _, name := range schema.Names() {
		t.Run(name, func(t *testing.T) {
			s, ok := schema.Builtin(name)
			if !ok {
				t.Fatalf("Builtin(%q) missing", name)
			}
			msg := FormatMessage(s, answer.NewStore())
			lines := strings.Split(msg, "\n")
			if lines[0] != s.Title {
				t.Errorf("first line = %q, want title %q", lines[0], s.Title)
			}
			if got, want := len(lines), s.Len()+2; got != want {
				t.Errorf("got %d lines, want %d", got, want)
			}
		})
	}
}

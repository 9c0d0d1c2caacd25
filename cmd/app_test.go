package cmd

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/jywlabs/brio/internal/answer"
	"github.com/jywlabs/brio/internal/config"
	"github.com/jywlabs/brio/internal/delivery"
	"github.com/jywlabs/brio/internal/schema"
)

func writeSchema(t *testing.T, dir string, s *schema.Schema) string {
	t.Helper()
	data, err := schema.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, s.Name+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveSchema(t *testing.T) {
	dir := t.TempDir()
	custom := schema.Feedback()
	custom.Name = "pulse"
	custom.Questions = custom.Questions[:3]
	path := writeSchema(t, dir, custom)

	cfg := config.Default()
	cfg.Schemas = map[string]string{"pulse": path}

	tests := []struct {
		name     string
		schema   string
		file     string
		wantName string
		wantLen  int
		wantErr  string
	}{
		{name: "built-in", schema: "feedback", wantName: "feedback", wantLen: 13},
		{name: "configured", schema: "pulse", wantName: "pulse", wantLen: 3},
		{name: "file wins over name", schema: "onboarding", file: path, wantName: "pulse", wantLen: 3},
		{name: "unknown", schema: "survey", wantErr: "available: feedback, onboarding, pulse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := resolveSchema(&cfg, tt.schema, tt.file)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveSchema() error = %v", err)
			}
			if s.Name != tt.wantName || s.Len() != tt.wantLen {
				t.Errorf("got %s with %d questions, want %s with %d", s.Name, s.Len(), tt.wantName, tt.wantLen)
			}
		})
	}
}

func TestLoadSchemasOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	custom := schema.Onboarding()
	custom.Questions = custom.Questions[:2]
	path := writeSchema(t, dir, custom)

	cfg := config.Default()
	cfg.Schemas = map[string]string{"onboarding": path}

	schemas, err := loadSchemas(&cfg)
	if err != nil {
		t.Fatalf("loadSchemas() error = %v", err)
	}
	if diff := cmp.Diff([]string{"feedback", "onboarding"}, schemaNames(&cfg)); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if schemas["onboarding"].Len() != 2 {
		t.Errorf("configured onboarding should replace the built-in, got %d questions", schemas["onboarding"].Len())
	}
}

func TestDeliveryEnvRecordsAttempts(t *testing.T) {
	bodies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies <- string(body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "timestamp": "1700000000.1"}`)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.DevBaseURL = srv.URL
	cfg.Timeout = 5 * time.Second
	cfg.Journal = filepath.Join(t.TempDir(), "journal.db")

	ctx := context.Background()
	env, err := newDeliveryEnv(ctx, &cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newDeliveryEnv() error = %v", err)
	}
	defer env.Close()

	s := schema.Feedback()
	store := answer.NewStore()
	store.Put("whatLiked", answer.Text("tudo"))

	p := env.factory(s)("session-1")
	p.Submit(ctx, store)
	state := p.Wait(ctx)
	if state.Status != delivery.Success || state.Timestamp != "1700000000.1" {
		t.Fatalf("state = %+v, want success", state)
	}
	if got := <-bodies; !strings.Contains(got, `"message"`) {
		t.Errorf("request body = %q", got)
	}

	entries, err := env.journal.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 || entries[0].SessionID != "session-1" || entries[0].Status != "success" {
		t.Errorf("journal entries = %+v", entries)
	}
}

func TestNewDeliveryEnvRejectsRelativeBase(t *testing.T) {
	cfg := config.Default()
	cfg.DevBaseURL = "/relay"
	if _, err := newDeliveryEnv(context.Background(), &cfg, zerolog.Nop()); err == nil {
		t.Error("expected error for a relative base URL")
	}
}

func TestUsePlain(t *testing.T) {
	tests := []struct {
		forced, terminal, want bool
	}{
		{false, true, false},
		{true, true, true},
		{false, false, true},
		{true, false, true},
	}
	for _, tt := range tests {
		if got := usePlain(tt.forced, tt.terminal); got != tt.want {
			t.Errorf("usePlain(%v, %v) = %v, want %v", tt.forced, tt.terminal, got, tt.want)
		}
	}
}

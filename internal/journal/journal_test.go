package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDriver(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://user@localhost/brio", "pgx"},
		{"postgresql://localhost/brio?sslmode=disable", "pgx"},
		{"libsql://brio-team.turso.io?authToken=x", "libsql"},
		{"https://brio-team.turso.io", "libsql"},
		{"file:journal.db", "sqlite"},
		{".brio/journal.db", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			if got := Driver(tt.dsn); got != tt.want {
				t.Errorf("Driver(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestRebindDollar(t *testing.T) {
	got := rebindDollar("INSERT INTO t (a, b) VALUES (?, ?) LIMIT ?")
	want := "INSERT INTO t (a, b) VALUES ($1, $2) LIMIT $3"
	if got != want {
		t.Errorf("rebindDollar = %q, want %q", got, want)
	}
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Error("expected error for empty DSN")
	}
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	j, err := Open(ctx, filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{SessionID: "s1", Schema: "feedback", Attempt: 1, Status: "failed", Error: "boom", CreatedAt: base},
		{SessionID: "s1", Schema: "feedback", Attempt: 2, Status: "success", ReceiptTS: "t1", CreatedAt: base.Add(time.Second)},
		{SessionID: "s2", Schema: "onboarding", Attempt: 1, Status: "success", ReceiptTS: "t2", CreatedAt: base.Add(500 * time.Millisecond)},
	}
	for _, e := range entries {
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	want := []Entry{entries[1], entries[2], entries[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}

	got, err = j.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Attempt != 2 {
		t.Errorf("Recent(1) = %+v, want the second attempt of s1", got)
	}
}

func TestRecordDefaultsCreatedAt(t *testing.T) {
	ctx := context.Background()
	j, err := Open(ctx, filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j.Close()

	before := time.Now().UTC().Add(-time.Second)
	if err := j.Record(ctx, Entry{SessionID: "s", Schema: "feedback", Attempt: 1, Status: "success"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := j.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, expected a recent time", got[0].CreatedAt)
	}
}

// Package journal keeps an append-only record of delivery attempts. It is an
// audit trail only; nothing is ever read back into a wizard session.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Entry is one resolved delivery attempt.
type Entry struct {
	SessionID string
	Schema    string
	Attempt   int
	Status    string
	Error     string
	ReceiptTS string
	CreatedAt time.Time
}

// timeFormat sorts lexically in time order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Journal writes entries to a SQL database.
type Journal struct {
	db     *sql.DB
	driver string
}

const createTable = `CREATE TABLE IF NOT EXISTS deliveries (
	session_id TEXT NOT NULL,
	schema_name TEXT NOT NULL,
	attempt INTEGER NOT NULL,
	status TEXT NOT NULL,
	error TEXT,
	receipt_ts TEXT,
	created_at TEXT NOT NULL
)`

// Driver picks the database/sql driver for a DSN: pgx for postgres URLs,
// libsql for Turso URLs, and sqlite for everything else.
func Driver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx"
	case strings.HasPrefix(dsn, "libsql://"), strings.HasPrefix(dsn, "http://"), strings.HasPrefix(dsn, "https://"):
		return "libsql"
	default:
		return "sqlite"
	}
}

// Open connects to dsn and creates the deliveries table if needed.
func Open(ctx context.Context, dsn string) (*Journal, error) {
	if dsn == "" {
		return nil, fmt.Errorf("journal DSN must not be empty")
	}
	driver := Driver(dsn)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if driver == "sqlite" {
		// One writer avoids SQLITE_BUSY between concurrent deliveries.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal table: %w", err)
	}
	return &Journal{db: db, driver: driver}, nil
}

// Close releases the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one entry. A zero CreatedAt is set to now.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx, j.rebind(
		`INSERT INTO deliveries (session_id, schema_name, attempt, status, error, receipt_ts, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		e.SessionID,
		e.Schema,
		e.Attempt,
		e.Status,
		nullIfEmpty(e.Error),
		nullIfEmpty(e.ReceiptTS),
		e.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("record delivery: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := j.db.QueryContext(ctx, j.rebind(
		`SELECT session_id, schema_name, attempt, status, error, receipt_ts, created_at
		 FROM deliveries ORDER BY created_at DESC, attempt DESC LIMIT ?`), n)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var errText, receipt sql.NullString
		var created string
		if err := rows.Scan(&e.SessionID, &e.Schema, &e.Attempt, &e.Status, &errText, &receipt, &created); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		e.Error = errText.String
		e.ReceiptTS = receipt.String
		e.CreatedAt, err = time.Parse(timeFormat, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func (j *Journal) rebind(query string) string {
	if j.driver != "pgx" {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

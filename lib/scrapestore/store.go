// Package scrapestore keeps an append-only log of scrape results in
// sqlite. It is write-only from the pipeline's perspective: nothing is
// ever read back to serve a request, so it is a history, not a cache.
package scrapestore

import (
	"context"
	"coniugo-backend/lib/scrapers/wordreference"
	"database/sql"
	"encoding/json"
	"time"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// Open opens (or creates) a store database at the given path.
// `:memory:` works for tests.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(Schema)
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

func (s Store) Push(ctx context.Context, result wordreference.Result, at time.Time) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO scrapes (verb, url, auxiliary, fetched_at, payload)
		 VALUES (?, ?, ?, ?, ?)`,
		result.Queried,
		result.URL,
		string(result.Auxiliary),
		at.Unix(),
		string(payload),
	)
	return err
}

type Entry struct {
	Verb      string
	URL       string
	Auxiliary string
	FetchedAt time.Time
	Payload   []byte
}

func (s Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT verb, url, auxiliary, fetched_at, payload
		 FROM scrapes ORDER BY fetched_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var fetchedAt int64
		var payload string
		err := rows.Scan(&entry.Verb, &entry.URL, &entry.Auxiliary, &fetchedAt, &payload)
		if err != nil {
			return nil, err
		}
		entry.FetchedAt = time.Unix(fetchedAt, 0)
		entry.Payload = []byte(payload)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Package sqlstore keeps schemaless documents in a single relational table,
// one JSON body per row, so the café can run on MySQL or SQLite instead of
// MongoDB.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"gayo/internal/store"
)

// Dialect holds the statements that differ between SQL engines.
type Dialect struct {
	Name           string
	CreateTable    string
	InsertOrIgnore string
}

var MySQL = Dialect{
	Name: "mysql",
	CreateTable: `
	CREATE TABLE IF NOT EXISTS documents (
		seq BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		id VARCHAR(64) NOT NULL UNIQUE,
		collection VARCHAR(128) NOT NULL,
		body JSON NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_collection (collection)
	)`,
	InsertOrIgnore: `INSERT IGNORE INTO documents (id, collection, body) VALUES (?, ?, ?)`,
}

var SQLite = Dialect{
	Name: "sqlite",
	CreateTable: `
	CREATE TABLE IF NOT EXISTS documents (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		collection TEXT NOT NULL,
		body TEXT NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	InsertOrIgnore: `INSERT OR IGNORE INTO documents (id, collection, body) VALUES (?, ?, ?)`,
}

type Store struct {
	db      *sql.DB
	dialect Dialect
	newID   func() string
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		newID:   uuid.NewString,
	}
}

// EnsureSchema creates the documents table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.CreateTable); err != nil {
		return fmt.Errorf("creating documents table: %w", err)
	}
	return nil
}

func (s *Store) Name() string {
	return s.dialect.Name
}

func (s *Store) Insert(ctx context.Context, collection string, doc store.Document) (string, error) {
	id := s.newID()
	body, err := encodeBody(doc)
	if err != nil {
		return "", err
	}

	query := `INSERT INTO documents (id, collection, body) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, id, collection, body); err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}
	return id, nil
}

func (s *Store) InsertIfAbsent(ctx context.Context, collection, id string, doc store.Document) (bool, error) {
	body, err := encodeBody(doc)
	if err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, s.dialect.InsertOrIgnore, id, collection, body)
	if err != nil {
		return false, fmt.Errorf("inserting document %q: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Find scans the collection in insertion order and applies filter and
// projection to the decoded bodies.
func (s *Store) Find(ctx context.Context, collection string, filter store.Filter, projection store.Projection) ([]store.Document, error) {
	query := `
		SELECT id, body
		FROM documents
		WHERE collection = ?
		ORDER BY seq
	`

	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []store.Document{}
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}

		doc := store.Document{}
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decoding document %q: %w", id, err)
		}
		doc[store.IDField] = id

		if filter.Matches(doc) {
			docs = append(docs, doc.Project(projection))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document rows: %w", err)
	}

	return docs, nil
}

func (s *Store) Count(ctx context.Context, collection string, filter store.Filter) (int64, error) {
	if len(filter) > 0 {
		docs, err := s.Find(ctx, collection, filter, store.Projection{})
		if err != nil {
			return 0, err
		}
		return int64(len(docs)), nil
	}

	var n int64
	query := `SELECT COUNT(*) FROM documents WHERE collection = ?`
	if err := s.db.QueryRowContext(ctx, query, collection).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collection names: %w", err)
	}

	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

// encodeBody returns a string because MySQL refuses JSON values sent with the
// binary charset.
func encodeBody(doc store.Document) (string, error) {
	body := make(store.Document, len(doc))
	for k, v := range doc {
		if k != store.IDField {
			body[k] = v
		}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	return string(data), nil
}

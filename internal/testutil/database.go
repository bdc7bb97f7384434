package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"gayo/internal/config"
	"gayo/internal/infrastructure/mysql"
	"gayo/internal/infrastructure/sqlite"
)

// SetupTestSQLite opens a private in-memory SQLite database.
func SetupTestSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.NewConnection(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// SetupTestMySQL connects to the database named by TEST_MYSQL_DSN, e.g.
// "root:@tcp(localhost:3306)/gayo_test", and skips the test when it is unset
// or unreachable. It does not create tables: callers must run
// sqlstore.Store.EnsureSchema before use.
func SetupTestMySQL(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}

	db, err := mysql.NewConnection(context.Background(), dsn, config.DatabaseConfig{
		MaxOpenConns: 5,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestMySQL empties the documents table created by EnsureSchema and
// closes the pool.
func CleanupTestMySQL(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	if _, err := db.Exec("DELETE FROM documents"); err != nil {
		t.Logf("failed to clean table documents: %v", err)
	}

	db.Close()
}

// MongoTestURL returns TEST_MONGO_URL or skips the test.
func MongoTestURL(t *testing.T) string {
	t.Helper()

	url := os.Getenv("TEST_MONGO_URL")
	if url == "" {
		t.Skip("TEST_MONGO_URL not set")
	}
	return url
}

package repo

import (
	"database/sql"
	"os"
	"testing"

	"github.com/sumitroy01/Donate-v2/internal/config"
	"github.com/sumitroy01/Donate-v2/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "donate",
		Password: "donate_pass",
		DBName:   "donate_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	cleanTables(t, conn)
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func cleanTables(t *testing.T, conn *sql.DB) {
	t.Helper()
	for _, table := range []string{"profiles", "users"} {
		if _, err := conn.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}
}

package repository

import (
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openTestDB connects to the local Postgres, applies migrations and empties every table.
func openTestDB(t *testing.T) (*sqlx.DB, error) {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "planner_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "planner_db"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err := MigrateUp(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	db.MustExec("TRUNCATE TABLE activities, history, settings, users")

	t.Cleanup(func() { db.Close() })
	return db, nil
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := openTestDB(t)
	if err != nil {
		t.Skipf("Database connection failed (skipping integration tests): %v", err)
	}
	return db
}

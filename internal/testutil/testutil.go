package testutil

import (
	"fmt"
	"testing"

	"github.com/Baaaki/portfolio/internal/database"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestDatabase holds an in-memory SQLite database migrated with the real
// models.
type TestDatabase struct {
	DB  *gorm.DB
	DSN string
}

// TestRedis holds an in-memory Redis server (miniredis) and a client for it.
type TestRedis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
	URL    string
}

// SetupTestDatabase creates a private in-memory SQLite database. Each call
// gets its own name, so suites never see each other's rows.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := database.Open(sqlite.Open(dsn), gormlogger.Silent)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// One connection keeps the in-memory database alive and avoids
	// shared-cache table locks.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return &TestDatabase{
		DB:  db,
		DSN: dsn,
	}
}

// Teardown closes the connection, which drops the in-memory database.
func (td *TestDatabase) Teardown(t *testing.T) {
	if err := database.Close(td.DB); err != nil {
		t.Logf("Warning: Failed to close database: %v", err)
	}
}

// SetupTestRedis starts miniredis and connects a client to it.
func SetupTestRedis(t *testing.T) *TestRedis {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	return &TestRedis{
		Server: server,
		Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		URL:    fmt.Sprintf("redis://%s", server.Addr()),
	}
}

func (tr *TestRedis) Teardown(t *testing.T) {
	_ = tr.Client.Close()
	tr.Server.Close()
}

// CleanDatabase deletes all rows (SQLite has no TRUNCATE).
func CleanDatabase(t *testing.T, db *gorm.DB) {
	for _, table := range []string{"projects", "users"} {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("Warning: Failed to clean table %s: %v", table, err)
		}
	}
}

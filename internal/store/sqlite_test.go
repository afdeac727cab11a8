package store

import (
	"context"
	"testing"
)

func TestSQLiteManager_Open_InMemory(t *testing.T) {
	cfg := SQLiteConfig{
		DSN:         ":memory:",
		JournalMode: "MEMORY",
		Synchronous: "OFF",
		Pool:        PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1},
	}

	db, err := NewSQLiteManager(cfg).Open(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE t (id INTEGER)"); err != nil {
		t.Errorf("Expected usable connection, got: %v", err)
	}
}

func TestSQLiteManager_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  SQLiteConfig
		wantErr bool
	}{
		{"valid defaults", DefaultSQLiteConfig("file:test.db"), false},
		{"empty DSN", SQLiteConfig{}, true},
		{"negative busy timeout", SQLiteConfig{DSN: "x", BusyTimeout: -1}, true},
		{"invalid journal mode", SQLiteConfig{DSN: "x", JournalMode: "BOGUS"}, true},
		{"invalid synchronous mode", SQLiteConfig{DSN: "x", Synchronous: "MAYBE"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSQLiteManager(tt.config).Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestPostgresManager_Open_EmptyDSN(t *testing.T) {
	_, err := NewPostgresManager(PostgresConfig{}).Open(context.Background())

	if err == nil {
		t.Fatal("Expected error for empty DSN, got nil")
	}
}

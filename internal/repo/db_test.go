package repo

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenSQLite_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "open_test.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	for _, table := range []string{
		"users", "workout_routines", "exercises", "workout_sessions", "workout_sets",
	} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("missing table %q after migration", table)
		}
	}

	// Foreign keys must be enforced on this handle.
	if _, err := CreateRoutine(context.Background(), db, 12345, "Orphan", nil); err == nil {
		t.Fatalf("expected FK violation on orphan routine; foreign_keys pragma not active?")
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "nope", "x.db")); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

package db

import (
	"errors"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	testDB, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return testDB
}

func TestKvStore(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.db.Close()

	t.Run("ReadValue returns ErrNotFound for missing key", func(t *testing.T) {
		err, v := testDB.ReadValue("missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
		if v != "" {
			t.Errorf("Expected empty value, got %q", v)
		}
	})

	t.Run("WriteValue then ReadValue", func(t *testing.T) {
		if err := testDB.WriteValue("a", "1"); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}
		err, v := testDB.ReadValue("a")
		if err != nil {
			t.Fatalf("Failed to read: %v", err)
		}
		if v != "1" {
			t.Errorf("Expected '1', got %q", v)
		}
	})

	t.Run("WriteValue overwrites", func(t *testing.T) {
		if err := testDB.WriteValue("a", "2"); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}
		_, v := testDB.ReadValue("a")
		if v != "2" {
			t.Errorf("Expected '2', got %q", v)
		}
	})

	t.Run("DeleteValues removes listed keys only", func(t *testing.T) {
		testDB.WriteValue("b", "x")
		testDB.WriteValue("c", "y")
		if err := testDB.DeleteValues("a", "b", "never-existed"); err != nil {
			t.Fatalf("Failed to delete: %v", err)
		}
		err, keys := testDB.ReadKeys()
		if err != nil {
			t.Fatalf("Failed to list keys: %v", err)
		}
		if len(keys) != 1 || keys[0] != "c" {
			t.Errorf("Expected only key c, got %v", keys)
		}
	})

	t.Run("Migrate is idempotent", func(t *testing.T) {
		if err := testDB.Migrate(); err != nil {
			t.Errorf("Second migrate failed: %v", err)
		}
	})
}

package main

import (
	"path/filepath"
	"reflect"
	"testing"

	"shoplist/internal/server"
)

func TestListTables(t *testing.T) {
	db, err := server.OpenDB(filepath.Join(t.TempDir(), "shopping-list.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	got, err := listTables(db)
	if err != nil {
		t.Fatalf("listTables() error = %v", err)
	}
	want := []string{"items", "schema_migrations", "sqlite_sequence"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("listTables() = %v, want %v", got, want)
	}
}

func TestListTablesClosedDB(t *testing.T) {
	db, err := server.OpenDB(filepath.Join(t.TempDir(), "shopping-list.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	_ = db.Close()

	if _, err := listTables(db); err == nil {
		t.Error("listTables() on a closed db succeeded, want error")
	}
}

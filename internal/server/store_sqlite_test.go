package server

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"shoplist/internal/shared"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "db", "shopping-list.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func TestSQLiteStoreOperations(t *testing.T) {
	s := newSQLiteStore(t)

	items, err := s.ListItems()
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("ListItems() on empty db = %#v, want empty slice", items)
	}

	for _, it := range []shared.Item{
		{ID: "a", Name: "milk", Quantity: json.Number("2")},
		{ID: "b", Name: "eggs", Quantity: "a dozen"},
		{ID: "c", Name: "bread", Quantity: json.Number("1")},
	} {
		if err := s.AddItem(it); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
	}

	updated, err := s.UpdateItem("b", shared.ItemInput{Name: "eggs", Quantity: json.Number("12")})
	if err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}
	if *updated != (shared.Item{ID: "b", Name: "eggs", Quantity: json.Number("12")}) {
		t.Errorf("UpdateItem() = %+v", updated)
	}
	if _, err := s.UpdateItem("nope", shared.ItemInput{Name: "x", Quantity: "1"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateItem(unknown) error = %v, want ErrNotFound", err)
	}

	if err := s.DeleteItem("a"); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}
	if err := s.DeleteItem("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteItem() error = %v, want ErrNotFound", err)
	}

	got, err := s.ListItems()
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	want := []shared.Item{
		{ID: "b", Name: "eggs", Quantity: json.Number("12")},
		{ID: "c", Name: "bread", Quantity: json.Number("1")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListItems() = %+v, want %+v", got, want)
	}

	n, err := s.CountItems()
	if err != nil || n != 2 {
		t.Errorf("CountItems() = %d, %v; want 2", n, err)
	}
}

func TestSQLiteStoreDuplicateID(t *testing.T) {
	s := newSQLiteStore(t)

	it := shared.Item{ID: "dup", Name: "milk", Quantity: json.Number("1")}
	if err := s.AddItem(it); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if err := s.AddItem(it); err == nil {
		t.Error("AddItem() with duplicate id succeeded, want error")
	}
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	s := newSQLiteStore(t)

	if err := RunMigrations(s.DB); err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}
	var n int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 2 {
		t.Errorf("schema_migrations has %d rows, want 2", n)
	}
}

func TestSQLiteBackedAPI(t *testing.T) {
	api := NewAPI(newSQLiteStore(t), LegacyStatus, nil)

	rec := do(t, api, "POST", "/shopping-list", `{"item":"milk","quantity":2}`)
	if rec.Code != 201 {
		t.Fatalf("POST status = %d, want 201 (body %q)", rec.Code, rec.Body.String())
	}
	created := decodeItem(t, rec)

	items := decodeItems(t, do(t, api, "GET", "/shopping-list", ""))
	if len(items) != 1 || items[0] != created {
		t.Errorf("list = %+v, want [%+v]", items, created)
	}
	if len(created.ID) != 36 {
		t.Errorf("id %q is not a uuid", created.ID)
	}
}

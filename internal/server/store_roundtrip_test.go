package server

import (
	"encoding/json"
	"io"
	"log"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"shoplist/internal/shared"

	"pgregory.net/rapid"
)

func valueGenerator() *rapid.Generator[any] {
	return rapid.OneOf(
		rapid.StringMatching(`[A-Za-z0-9 ]{1,20}`).AsAny(),
		rapid.Map(rapid.IntRange(1, 1_000_000), func(n int) json.Number {
			return json.Number(strconv.Itoa(n))
		}).AsAny(),
	)
}

func itemsGenerator() *rapid.Generator[[]shared.Item] {
	item := rapid.Custom(func(t *rapid.T) shared.Item {
		return shared.Item{
			ID:       rapid.StringMatching(`[a-f0-9-]{1,36}`).Draw(t, "id"),
			Name:     valueGenerator().Draw(t, "item"),
			Quantity: valueGenerator().Draw(t, "quantity"),
		}
	})
	return rapid.SliceOfDistinct(item, func(it shared.Item) string { return it.ID })
}

func sameItems(a, b []shared.Item) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "shopping-list.json"), log.New(io.Discard, "", 0))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	rapid.Check(t, func(t *rapid.T) {
		items := itemsGenerator().Draw(t, "items")
		if err := s.WriteAll(items); err != nil {
			t.Fatalf("WriteAll() error = %v", err)
		}
		if got := s.ReadAll(); !sameItems(got, items) {
			t.Fatalf("ReadAll() = %+v, want %+v", got, items)
		}
	})
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)

	rapid.Check(t, func(t *rapid.T) {
		if _, err := s.DB.Exec(`DELETE FROM items`); err != nil {
			t.Fatalf("reset: %v", err)
		}
		items := itemsGenerator().Draw(t, "items")
		for _, it := range items {
			if err := s.AddItem(it); err != nil {
				t.Fatalf("AddItem() error = %v", err)
			}
		}
		got, err := s.ListItems()
		if err != nil {
			t.Fatalf("ListItems() error = %v", err)
		}
		if !sameItems(got, items) {
			t.Fatalf("ListItems() = %+v, want %+v", got, items)
		}
	})
}

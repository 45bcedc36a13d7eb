package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shoplist/internal/shared"
)

// SQLiteStore keeps one row per item. item and quantity are stored as JSON
// text so strings and numbers come back as they went in.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (s *SQLiteStore) ListItems() ([]shared.Item, error) {
	rows, err := s.DB.Query(`SELECT id, item_json, quantity_json FROM items ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []shared.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) AddItem(item shared.Item) error {
	nameJSON, qtyJSON, err := encodeValues(item)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = s.DB.Exec(
		`INSERT INTO items (id, item_json, quantity_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		item.ID, nameJSON, qtyJSON, now, now,
	)
	return err
}

func (s *SQLiteStore) UpdateItem(id string, in shared.ItemInput) (*shared.Item, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRow(`SELECT id, item_json, quantity_json FROM items WHERE id = ?`, id)
	current, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated := current.Merge(in)
	nameJSON, qtyJSON, err := encodeValues(updated)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		`UPDATE items SET item_json=?, quantity_json=?, updated_at=? WHERE id=?`,
		nameJSON, qtyJSON, time.Now().Unix(), id,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *SQLiteStore) DeleteItem(id string) error {
	res, err := s.DB.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountItems is used by the dbcheck tool.
func (s *SQLiteStore) CountItems() (int, error) {
	var n int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (*shared.Item, error) {
	var it shared.Item
	var nameJSON, qtyJSON string
	if err := r.Scan(&it.ID, &nameJSON, &qtyJSON); err != nil {
		return nil, err
	}
	if err := shared.DecodeJSON([]byte(nameJSON), &it.Name); err != nil {
		return nil, fmt.Errorf("item %s: decode item: %w", it.ID, err)
	}
	if err := shared.DecodeJSON([]byte(qtyJSON), &it.Quantity); err != nil {
		return nil, fmt.Errorf("item %s: decode quantity: %w", it.ID, err)
	}
	return &it, nil
}

func encodeValues(it shared.Item) (string, string, error) {
	nameJSON, err := json.Marshal(it.Name)
	if err != nil {
		return "", "", err
	}
	qtyJSON, err := json.Marshal(it.Quantity)
	if err != nil {
		return "", "", err
	}
	return string(nameJSON), string(qtyJSON), nil
}

package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"shoplist/internal/server"
)

func main() {
	dbPath := os.Getenv("SHOPLIST_DB_PATH")
	if dbPath == "" {
		dbPath = "./data/shopping-list.db"
	}

	db, err := server.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	tables, err := listTables(db)
	if err != nil {
		log.Fatalf("list tables failed: %v", err)
	}
	fmt.Println("Tables:")
	for _, name := range tables {
		fmt.Println(" -", name)
	}

	n, err := server.NewSQLiteStore(db).CountItems()
	if err != nil {
		log.Fatalf("count failed: %v", err)
	}
	fmt.Println("Items:", n)
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return names, nil
}

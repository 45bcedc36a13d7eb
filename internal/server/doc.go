// Package server implements the shopping list HTTP API and its storage.
//
// Owns:
//   - Request dispatch for /shopping-list[/{id}] (handlers.go)
//   - CORS headers on every response, OPTIONS preflight
//   - Store implementations: flat JSON file, SQLite, memory
//   - Mapping of error kinds to HTTP status codes
//
// Does not own:
//   - Configuration loading (internal/shared)
//   - Process lifecycle (cmd/shoplist-server)
//
// Invariants:
//   - Error bodies are always {"error": "..."}
//   - Handlers return *Error values; only the StatusMapper picks the code
//   - The file store rewrites the whole file on every mutation and keeps
//     it a valid JSON array
package server

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"shoplist/internal/shared"

	"github.com/google/uuid"
)

const defaultMaxBodyBytes = 2 << 20

// API serves /shopping-list[/{id}]. Every path and method is routed here;
// dispatch is by the first path segment and the HTTP method.
type API struct {
	Store        Store
	Status       StatusMapper
	NewID        func() string
	MaxBodyBytes int64
	Logger       *log.Logger
}

func NewAPI(store Store, status StatusMapper, logger *log.Logger) *API {
	return &API{
		Store:  store,
		Status: status,
		Logger: logger,
	}
}

func setCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	limit := a.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	b, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("request body exceeds %d bytes", limit)
	}
	return b, nil
}

// parseBody decodes the request body. An empty body counts as {}.
func (a *API) parseBody(r *http.Request) (any, error) {
	b, err := a.readBody(r)
	if err != nil {
		return nil, validationError(err.Error())
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return map[string]any{}, nil
	}
	var body any
	if err := shared.DecodeJSON(b, &body); err != nil {
		return nil, &Error{Kind: KindValidation, Msg: "Invalid JSON", Err: err}
	}
	return body, nil
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w.Header())

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := a.dispatch(w, r); err != nil {
		a.fail(w, r, err)
	}
}

func (a *API) dispatch(w http.ResponseWriter, r *http.Request) error {
	segments, err := splitPath(r.URL.EscapedPath())
	if err != nil {
		return notFoundError("Invalid endpoint")
	}
	if len(segments) == 0 || segments[0] != shared.ResourceName {
		return notFoundError("Invalid endpoint")
	}
	var id string
	if len(segments) > 1 {
		id = segments[1]
	}

	var body any
	if r.Method != http.MethodGet {
		if body, err = a.parseBody(r); err != nil {
			return err
		}
	}

	switch r.Method {
	case http.MethodGet:
		return a.handleList(w)
	case http.MethodPost:
		return a.handleCreate(w, shared.ParseItemInput(body))
	case http.MethodPut:
		return a.handleUpdate(w, id, shared.ParseItemInput(body))
	case http.MethodDelete:
		return a.handleDelete(w, id)
	default:
		return validationError(fmt.Sprintf("Method %s not allowed", r.Method))
	}
}

func (a *API) handleList(w http.ResponseWriter) error {
	items, err := a.Store.ListItems()
	if err != nil {
		return storeError(err)
	}
	writeJSON(w, http.StatusOK, items)
	return nil
}

func (a *API) handleCreate(w http.ResponseWriter, in shared.ItemInput) error {
	if !in.Valid() {
		return validationError("Item and quantity are required")
	}
	item := shared.Item{
		ID:       a.newID(),
		Name:     in.Name,
		Quantity: in.Quantity,
	}
	if err := a.Store.AddItem(item); err != nil {
		return storeError(err)
	}
	writeJSON(w, http.StatusCreated, item)
	return nil
}

// handleUpdate ignores any id in the body; the path id is authoritative.
func (a *API) handleUpdate(w http.ResponseWriter, id string, in shared.ItemInput) error {
	if id == "" || !in.Valid() {
		return validationError("ID, item, and quantity are required")
	}
	updated, err := a.Store.UpdateItem(id, in)
	if err != nil {
		return storeError(err)
	}
	writeJSON(w, http.StatusOK, updated)
	return nil
}

func (a *API) handleDelete(w http.ResponseWriter, id string) error {
	if id == "" {
		return validationError("ID is required")
	}
	if err := a.Store.DeleteItem(id); err != nil {
		return storeError(err)
	}
	writeJSON(w, http.StatusNoContent, nil)
	return nil
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	e := asError(err)
	status := http.StatusBadRequest
	if a.Status != nil {
		status = a.Status(e.Kind)
	}
	if e.Kind == KindStorage || e.Kind == KindInternal {
		a.logf("%s %s: %s error: %v", r.Method, r.URL.Path, e.Kind, e)
	}
	writeJSON(w, status, shared.ErrorResponse{Error: e.Error()})
}

func (a *API) newID() string {
	if a.NewID != nil {
		return a.NewID()
	}
	return uuid.NewString()
}

func (a *API) logf(format string, args ...any) {
	if a.Logger != nil {
		a.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// splitPath returns the non-empty "/"-separated segments of the escaped
// path p, each unescaped, so an id containing %2F stays one segment.
func splitPath(p string) ([]string, error) {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s == "" {
			continue
		}
		seg, err := url.PathUnescape(s)
		if err != nil {
			return nil, err
		}
		out = append(out, seg)
	}
	return out, nil
}

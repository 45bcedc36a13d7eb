package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"shoplist/internal/client"
	"shoplist/internal/server"
	"shoplist/internal/shared"
)

func newTestClient(t *testing.T) (*client.Client, *server.MemoryStore) {
	t.Helper()
	store := server.NewMemoryStore()
	srv := httptest.NewServer(server.NewAPI(store, server.LegacyStatus, nil))
	t.Cleanup(srv.Close)
	return client.New(&shared.ClientConfig{ServerURL: srv.URL, TimeoutSeconds: 5}), store
}

func run(c *client.Client, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, c, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunAddListRemove(t *testing.T) {
	c, store := newTestClient(t)

	if code, out, errOut := run(c, "add", "2", "whole", "milk"); code != 0 || !strings.Contains(out, "whole milk") {
		t.Fatalf("add: code=%d out=%q err=%q", code, out, errOut)
	}
	items, _ := store.ListItems()
	if len(items) != 1 || items[0].Quantity != json.Number("2") || items[0].Name != "whole milk" {
		t.Fatalf("stored items = %+v", items)
	}
	id := items[0].ID

	code, out, _ := run(c, "ls")
	if code != 0 || !strings.Contains(out, "whole milk") || !strings.Contains(out, id) {
		t.Errorf("ls: code=%d out=%q", code, out)
	}

	if code, _, errOut := run(c, "set", id, "1 kg", "flour"); code != 0 {
		t.Fatalf("set: code=%d err=%q", code, errOut)
	}
	items, _ = store.ListItems()
	if items[0].Quantity != "1 kg" || items[0].Name != "flour" {
		t.Errorf("after set = %+v", items[0])
	}

	if code, _, errOut := run(c, "rm", id); code != 0 {
		t.Fatalf("rm: code=%d err=%q", code, errOut)
	}
	if items, _ = store.ListItems(); len(items) != 0 {
		t.Errorf("after rm = %+v", items)
	}
}

func TestRunErrors(t *testing.T) {
	c, _ := newTestClient(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"no args", nil, 2, "Usage"},
		{"unknown", []string{"frobnicate"}, 2, "unknown subcommand"},
		{"add usage", []string{"add", "2"}, 2, "usage: shoplist add"},
		{"rm usage", []string{"rm"}, 2, "usage: shoplist rm"},
		{"rm missing", []string{"rm", "nope"}, 1, "Item not found"},
		{"set missing", []string{"set", "nope", "1", "x"}, 1, "Item not found"},
		{"zero quantity", []string{"add", "0", "milk"}, 1, "Item and quantity are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := run(c, tt.args...)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	if got := parseQuantity("12"); got != json.Number("12") {
		t.Errorf("parseQuantity(12) = %#v", got)
	}
	if got := parseQuantity("NaN"); got != "NaN" {
		t.Errorf("parseQuantity(NaN) = %#v, want string", got)
	}
	if got := parseQuantity("a dozen"); got != "a dozen" {
		t.Errorf("parseQuantity(a dozen) = %#v", got)
	}
}

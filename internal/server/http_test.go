package server

import (
	"bytes"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestWithRequestLog(t *testing.T) {
	var logs bytes.Buffer
	h := WithRequestLog(NewAPI(NewMemoryStore(), LegacyStatus, nil), log.New(&logs, "", 0))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if got := logs.String(); !strings.Contains(got, "GET /nowhere 400") {
		t.Errorf("log = %q, want method, path and status", got)
	}
}

func TestNewHTTPServerDefaults(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ServerOptions{})
	if s.http.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", s.http.Addr)
	}
	if s.http.ReadTimeout != 0 {
		t.Errorf("ReadTimeout = %v, want none", s.http.ReadTimeout)
	}
	if s.http.ReadHeaderTimeout == 0 {
		t.Error("ReadHeaderTimeout not set")
	}
}

func TestStartReportsListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()

	s := NewHTTPServer(http.NotFoundHandler(), ServerOptions{
		Addr:   ln.Addr().String(),
		Logger: log.New(io.Discard, "", 0),
	})
	select {
	case err := <-s.Start():
		if err == nil {
			t.Error("Start() on a busy port reported nil, want listen error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() on a busy port did not report an error")
	}
}

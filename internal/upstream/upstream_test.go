package upstream

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestErrorFrom(t *testing.T) {
	resp := newResponse(500, "  internal failure  ")

	err := ErrorFrom("vision", resp)
	if err.Service != "vision" {
		t.Errorf("Service: got %s, want vision", err.Service)
	}
	if err.Status != 500 {
		t.Errorf("Status: got %d, want 500", err.Status)
	}
	if err.Body != "internal failure" {
		t.Errorf("Body: got %q, want trimmed body", err.Body)
	}
	want := "vision upstream 500: internal failure"
	if err.Error() != want {
		t.Errorf("Error(): got %q, want %q", err.Error(), want)
	}
}

func TestErrorFrom_EmptyBody(t *testing.T) {
	err := ErrorFrom("raster", newResponse(404, ""))
	if err.Error() != "raster upstream 404" {
		t.Errorf("Error(): got %q, want %q", err.Error(), "raster upstream 404")
	}
}

func TestErrorFrom_TruncatesLongBody(t *testing.T) {
	long := strings.Repeat("x", 10000)
	err := ErrorFrom("search", newResponse(502, long))
	if len(err.Body) > maxErrorBody {
		t.Errorf("Body length: got %d, want at most %d", len(err.Body), maxErrorBody)
	}
}

func TestTemporary(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{500, true},
		{503, true},
		{429, true},
		{408, true},
		{400, false},
		{401, false},
		{404, false},
	}

	for _, tt := range tests {
		e := &Error{Service: "vision", Status: tt.status}
		if got := e.Temporary(); got != tt.want {
			t.Errorf("Temporary() for %d: got %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestAs(t *testing.T) {
	base := &Error{Service: "vision", Status: 503, Body: "overloaded"}
	wrapped := fmt.Errorf("extract rooms: %w", base)

	ue, ok := As(wrapped)
	if !ok {
		t.Fatal("As: expected to find upstream error in chain")
	}
	if ue.Status != 503 {
		t.Errorf("Status: got %d, want 503", ue.Status)
	}
}

func TestAs_NotUpstream(t *testing.T) {
	if _, ok := As(fmt.Errorf("plain failure")); ok {
		t.Error("As: unexpectedly matched a plain error")
	}
	if _, ok := As(nil); ok {
		t.Error("As: unexpectedly matched nil")
	}
}

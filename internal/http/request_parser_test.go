package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mercado/internal/core"
)

func newParser(t *testing.T, body string) *RequestBodyParser {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return NewRequestBodyParser(httptest.NewRecorder(), req)
}

func TestRequestBodyParserJSON(t *testing.T) {
	p := newParser(t, `{"name":"  Pan\u0007 ","quantity":"2,5","price":null,"checked":1,"budget":15000}`)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := p.Get("name"); got != "Pan" {
		t.Errorf("Get(name) = %q", got)
	}
	if q := p.Float("quantity", core.Quantity); q == nil || *q != 2.5 {
		t.Errorf("quantity = %v", q)
	}
	if pr := p.Float("price", core.Price); pr == nil || *pr != 0 {
		t.Errorf("null price should be present and normalized to 0, got %v", pr)
	}
	if b := p.Float("budget", core.Budget); b == nil || *b != 15000 {
		t.Errorf("budget = %v", b)
	}
	if c := p.Bool("checked"); c == nil || !*c {
		t.Errorf("checked = %v", c)
	}
	if p.String("unit") != nil || p.Float("missing", core.Price) != nil || p.Bool("missing") != nil {
		t.Errorf("absent keys must yield nil")
	}
}

func TestRequestBodyParserForm(t *testing.T) {
	p := newParser(t, "name=Leche&location=&quantity=-1")
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := p.String("location"); got == nil || *got != "" {
		t.Errorf("empty location should be present, got %v", got)
	}
	if q := p.Float("quantity", core.Quantity); *q != 1 {
		t.Errorf("negative quantity = %v, want 1", *q)
	}
}

func TestRequestBodyParserErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"truncated json", `{"name":`},
		{"array", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.body)
			if err := p.Parse(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	big := newParser(t, `{"name":"`+strings.Repeat("a", MaxBodyBytes)+`"}`)
	var tooLarge *http.MaxBytesError
	if err := big.Parse(); !errors.As(err, &tooLarge) {
		t.Fatalf("oversized body error = %v", err)
	}
}

func TestParseBodyWritesErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"x"`))
	if _, ok := parseBody(rr, req); ok {
		t.Fatalf("parseBody accepted malformed JSON")
	}
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", MaxBodyBytes+1)))
	if _, ok := parseBody(rr, req); ok {
		t.Fatalf("parseBody accepted oversized body")
	}
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("a\x00b\tc\n"); got != "ab\tc\n" {
		t.Fatalf("sanitizeInput = %q", got)
	}
}

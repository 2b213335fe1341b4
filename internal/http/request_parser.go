// This file implements request body parsing. Bodies may be JSON objects or
// form-encoded; numeric fields go through the same normalizers applied to
// persisted data.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mercado/internal/core"
)

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 64 << 10

// RequestBodyParser handles different content types for request body parsing.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(w http.ResponseWriter, r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body == nil {
		return p
	}
	p.body, p.err = io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	body := bytes.TrimSpace(p.body)
	if len(body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if body[0] == '{' || body[0] == '[' {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&p.jsonData); err != nil {
			p.err = err
			return err
		}
		if p.jsonData == nil {
			p.err = errors.New("expected a JSON object")
		}
		return p.err
	}

	p.formData, p.err = url.ParseQuery(string(body))
	return p.err
}

// Has reports whether key was present in the body, even with an empty value.
func (p *RequestBodyParser) Has(key string) bool {
	if p.jsonData != nil {
		_, ok := p.jsonData[key]
		return ok
	}
	_, ok := p.formData[key]
	return ok
}

// Value returns the raw value for key: any JSON value, or the form string.
func (p *RequestBodyParser) Value(key string) any {
	if p.jsonData != nil {
		return p.jsonData[key]
	}
	if vals, ok := p.formData[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return nil
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	return strings.TrimSpace(sanitizeInput(stringValue(p.Value(key))))
}

// String returns a pointer to the value of key, or nil when it is absent.
func (p *RequestBodyParser) String(key string) *string {
	if !p.Has(key) {
		return nil
	}
	v := p.Get(key)
	return &v
}

// Float returns key normalized by norm, or nil when it is absent.
func (p *RequestBodyParser) Float(key string, norm func(any) float64) *float64 {
	if !p.Has(key) {
		return nil
	}
	v := norm(p.Value(key))
	return &v
}

// Bool returns key as a flag, or nil when it is absent.
func (p *RequestBodyParser) Bool(key string) *bool {
	if !p.Has(key) {
		return nil
	}
	v := core.Flag(p.Value(key))
	return &v
}

// stringValue converts a decoded value to string.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// sanitizeInput drops control characters other than tab and newlines.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseBody parses the request body and writes a 400 on failure.
func parseBody(w http.ResponseWriter, r *http.Request) (*RequestBodyParser, bool) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ErrorResponse(http.StatusRequestEntityTooLarge, "request body too large").Write(w)
			return nil, false
		}
		BadRequestError("malformed request body").Write(w)
		return nil, false
	}
	return p, true
}

// Package http serves the JSON API.
//
// This file implements reading request bodies and query parameters. Bodies
// may be JSON objects or form-encoded; amounts are decimal strings or JSON
// numbers and are converted to cents with core.ParseAmount.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

const maxBodyBytes = 1 << 20

var ErrMalformedBody = errors.New("malformed request body")

// RequestBodyParser reads the body once and serves typed field lookups.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{contentType: r.Header.Get("Content-Type")}
	if r.Body == nil {
		return p
	}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if p.err == nil && len(p.body) > maxBodyBytes {
		p.err = fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedBody, maxBodyBytes)
	}
	return p
}

// Parse decodes the body as a JSON object, or as form values when it does
// not start with '{'.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true
	if p.err != nil {
		return p.err
	}

	body := strings.TrimSpace(string(p.body))
	if body == "" {
		p.formData = url.Values{}
		return nil
	}

	if body[0] == '{' {
		dec := json.NewDecoder(strings.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&p.jsonData); err != nil {
			p.err = fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return p.err
	}
	if body[0] == '[' {
		p.err = fmt.Errorf("%w: expected an object", ErrMalformedBody)
		return p.err
	}

	p.formData, p.err = url.ParseQuery(body)
	if p.err != nil {
		p.err = fmt.Errorf("%w: %v", ErrMalformedBody, p.err)
	}
	return p.err
}

// Has reports whether key was sent, even with an empty value.
func (p *RequestBodyParser) Has(key string) bool {
	if p.jsonData != nil {
		_, ok := p.jsonData[key]
		return ok
	}
	if p.formData != nil {
		_, ok := p.formData[key]
		return ok
	}
	return false
}

// Get returns the sanitized string value of key, "" when absent.
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// Optional returns a pointer to the value of key, or nil when absent.
func (p *RequestBodyParser) Optional(key string) *string {
	if !p.Has(key) {
		return nil
	}
	v := p.Get(key)
	return &v
}

// Money parses key as an amount. ok is false when the key is absent or
// empty.
func (p *RequestBodyParser) Money(key string) (m core.Money, ok bool, err error) {
	raw := p.Get(key)
	if raw == "" {
		return core.Money{}, false, nil
	}
	m, err = core.ParseAmount(raw)
	if err != nil {
		return core.Money{}, true, fmt.Errorf("%s: %w", key, err)
	}
	return m, true, nil
}

// OptionalMoney is Money returning nil when the key is absent.
func (p *RequestBodyParser) OptionalMoney(key string) (*core.Money, error) {
	m, ok, err := p.Money(key)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

// Date parses key with core.ParseDate; a missing key yields the zero date.
func (p *RequestBodyParser) Date(key string) (core.Date, error) {
	raw := p.Get(key)
	if raw == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(raw)
	if err != nil {
		return core.Date{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Strings returns a JSON string array, or a comma separated value, as a
// slice of non-empty strings.
func (p *RequestBodyParser) Strings(key string) []string {
	var raw []string
	if p.jsonData != nil {
		switch v := p.jsonData[key].(type) {
		case []any:
			for _, item := range v {
				raw = append(raw, stringValue(item))
			}
		case string:
			raw = strings.Split(v, ",")
		}
	} else if p.formData != nil {
		for _, v := range p.formData[key] {
			raw = append(raw, strings.Split(v, ",")...)
		}
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = sanitizeInput(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

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

// sanitizeInput trims s and drops control characters except tab, newline
// and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseBody reads and parses r's body, answering 400 on failure.
func parseBody(w http.ResponseWriter, r *http.Request) (*RequestBodyParser, bool) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError(err.Error()).Write(w)
		return nil, false
	}
	return p, true
}

// parseReferenceDate reads the "date" query parameter; empty means today.
func parseReferenceDate(query url.Values) (core.Date, error) {
	raw := strings.TrimSpace(query.Get("date"))
	if raw == "" {
		return core.Date{}, nil
	}
	return core.ParseDate(raw)
}

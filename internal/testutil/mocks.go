package testutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/gtranslate/internal/translation"
)

// MockHTTPClient mocks the translation transport. Responses and errors are
// keyed by URL path, e.g. "/translate_a/single".
type MockHTTPClient struct {
	Responses map[string]*MockResponse
	Errors    map[string]error

	mu    sync.Mutex
	Calls []*http.Request
}

// MockResponse represents a mocked HTTP response
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// Do records the request and returns the configured response for its path.
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	path := req.URL.Path
	if err, ok := m.Errors[path]; ok {
		return nil, err
	}

	resp, ok := m.Responses[path]
	if !ok {
		resp = &MockResponse{StatusCode: http.StatusNotFound, Body: "Not Found"}
	}

	header := make(http.Header)
	for k, v := range resp.Headers {
		header.Set(k, v)
	}

	return &http.Response{
		StatusCode: resp.StatusCode,
		Status:     fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(resp.Body)),
		Request:    req,
	}, nil
}

// CallCount returns the number of requests seen so far.
func (m *MockHTTPClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request or nil.
func (m *MockHTTPClient) LastCall() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1]
}

// MockTranslator mocks translation.Translator for the layers above it.
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	// Delay is applied before answering, honouring ctx.
	Delay time.Duration

	mu    sync.Mutex
	Calls []string
}

// Translate mocks translating text. Unknown queries get a canned answer.
func (m *MockTranslator) Translate(ctx context.Context, timeout time.Duration, req translation.Request) (string, error) {
	call := fmt.Sprintf("Translate: %s (%s->%s, %s)", req.Query(), req.SourceLang(), req.TargetLang(), req.Variant())
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", &translation.TransportError{Err: ctx.Err()}
		}
	}

	if err, ok := m.Errors[req.Query()]; ok {
		return "", err
	}

	if text, ok := m.Translations[req.Query()]; ok {
		return text, nil
	}

	return fmt.Sprintf("mock translation of %s", req.Query()), nil
}

// CallCount returns the number of Translate calls seen so far.
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

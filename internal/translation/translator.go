package translation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPClient is the transport capability the Translator needs. *http.Client
// satisfies it and is safe for concurrent use.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Translator issues translation requests over one shared HTTPClient. It holds
// no per-call state and may be used from multiple goroutines.
type Translator struct {
	client    HTTPClient
	endpoints map[Variant]string
	logger    zerolog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithHTTPClient injects the transport. A nil client is ignored.
func WithHTTPClient(client HTTPClient) Option {
	return func(t *Translator) {
		if client != nil {
			t.client = client
		}
	}
}

// WithEndpoint overrides the base URL used for one variant.
func WithEndpoint(v Variant, base string) Option {
	return func(t *Translator) {
		t.endpoints[v] = base
	}
}

// WithLogger sets the logger used for debug tracing of requests.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a Translator backed by a default *http.Client unless
// WithHTTPClient says otherwise.
func NewTranslator(opts ...Option) *Translator {
	t := &Translator{
		client: &http.Client{},
		endpoints: map[Variant]string{
			Classic: Classic.Endpoint(),
			Compact: Compact.Endpoint(),
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate sends req to the endpoint of req.Variant() and returns the
// translated text.
//
// timeout bounds the whole exchange including reading the body; a
// non-positive timeout leaves only the deadline of ctx. Failures below HTTP
// come back as *TransportError, a non-2xx status as *StatusError and a body
// that does not parse as ErrFailedParsing. Nothing is retried.
func (t *Translator) Translate(ctx context.Context, timeout time.Duration, req Request) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	v := req.Variant()
	base, ok := t.endpoints[v]
	if !ok {
		return "", fmt.Errorf("no endpoint for %s", v)
	}

	target, err := Encode(base, req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header = target.Header

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Debug().Err(err).Str("variant", v.String()).Dur("elapsed", time.Since(start)).Msg("translate request failed")
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	t.logger.Debug().
		Str("variant", v.String()).
		Str("endpoint", base).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("translate response")

	// Error bodies are never read.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Normalize(v, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	return Normalize(v, resp.StatusCode, body)
}

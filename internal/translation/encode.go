package translation

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	referer = "https://translate.google.com/"

	// The endpoints refuse requests without a plausible browser fingerprint.
	userAgent = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Mobile Safari/537.36"
)

// Target is a fully formed upstream request: absolute URL plus the headers
// the endpoint insists on.
type Target struct {
	URL    string
	Header http.Header
}

// Encode builds the request target for req against base. Parameters are
// written in the order client, sl, tl, dt, q and each value is escaped once.
// Language codes are passed through untouched.
func Encode(base string, req Request) (Target, error) {
	u, err := url.Parse(base)
	if err != nil {
		return Target{}, fmt.Errorf("invalid endpoint %q: %w", base, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return Target{}, fmt.Errorf("invalid endpoint %q: not an absolute URL", base)
	}

	params := [...]struct{ key, value string }{
		{"client", req.Client()},
		{"sl", req.SourceLang()},
		{"tl", req.TargetLang()},
		{"dt", req.DstTarget()},
		{"q", req.Query()},
	}

	var query strings.Builder
	for i, p := range params {
		if i > 0 {
			query.WriteByte('&')
		}
		query.WriteString(p.key)
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(p.value))
	}
	u.RawQuery = query.String()

	header := make(http.Header, 2)
	header.Set("Referer", referer)
	header.Set("User-Agent", userAgent)

	return Target{URL: u.String(), Header: header}, nil
}

package translation

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// compactAPI keeps numbers as written so a numeric element is rendered back
// without float rounding.
var compactAPI = sonic.Config{UseNumber: true}.Froze()

// Normalize turns a raw upstream response into the translated text.
//
// Any status outside 200-299 fails with a StatusError before the body is
// looked at. Otherwise the body is parsed with the grammar of v; a body that
// does not fit, or that yields an empty translation, fails with
// ErrFailedParsing.
func Normalize(v Variant, status int, body []byte) (string, error) {
	if status < 200 || status > 299 {
		return "", &StatusError{StatusCode: status}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return "", fmt.Errorf("%w: empty body", ErrFailedParsing)
	}

	switch v {
	case Classic:
		return parseClassic(body)
	case Compact:
		return parseCompact(body)
	default:
		return "", fmt.Errorf("%w: no grammar for %s", ErrFailedParsing, v)
	}
}

// parseClassic returns the text between the first and second double quote.
//
// This is a textual extraction, not a structural parse: an escaped quote
// inside the translation ends the segment early, and the translation of a
// multi-sentence query only yields its first sentence.
func parseClassic(body []byte) (string, error) {
	segments := strings.Split(string(body), `"`)
	if len(segments) < 2 {
		return "", fmt.Errorf("%w: no quoted segment in body", ErrFailedParsing)
	}

	text := segments[1]
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty translation", ErrFailedParsing)
	}
	return text, nil
}

// parseCompact reads element 0 of a top level JSON array. A string element is
// used as decoded; anything else is rendered back to JSON text. Literal
// double quotes are stripped in both cases since callers want a bare string.
func parseCompact(body []byte) (string, error) {
	var root interface{}
	if err := compactAPI.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedParsing, err)
	}

	items, ok := root.([]interface{})
	if !ok || len(items) == 0 || items[0] == nil {
		return "", fmt.Errorf("%w: missing first element", ErrFailedParsing)
	}

	var text string
	switch first := items[0].(type) {
	case string:
		text = first
	default:
		rendered, err := compactAPI.MarshalToString(first)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFailedParsing, err)
		}
		text = rendered
	}

	text = strings.ReplaceAll(text, `"`, "")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty translation", ErrFailedParsing)
	}
	return text, nil
}

package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one line of a batch file
type Entry struct {
	Line int
	Text string
	// Translation is set when the batch file already provides one
	Translation string
	// NeedsTranslation indicates the text has to be sent upstream
	NeedsTranslation bool
}

// ReadBatchFile reads entries from a file, one per line.
// Supports formats:
// - Text only: "hallo ik ga vandaag hardlopen" (will be translated)
// - With translation: "hallo = merhaba" (kept as given, no request)
// The first '=' separates text from translation, so text containing '='
// has to write it as `\=` ("x \= y + 1" is translated as "x = y + 1").
// Blank lines and lines starting with '#' are ignored, as are lines with
// nothing left of the '='.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return ParseBatch(string(content)), nil
}

// ParseBatch parses batch file content
func ParseBatch(content string) []Entry {
	var entries []Entry

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		text, known, ok := splitEntry(line)
		if !ok {
			entries = append(entries, Entry{
				Line:             i + 1,
				Text:             text,
				NeedsTranslation: true,
			})
			continue
		}

		if text == "" {
			continue
		}

		entries = append(entries, Entry{
			Line:             i + 1,
			Text:             text,
			Translation:      known,
			NeedsTranslation: known == "",
		})
	}

	return entries
}

// splitEntry splits line at the first unescaped '='. ok is false when there
// is none. `\=` is unescaped on both sides.
func splitEntry(line string) (text, known string, ok bool) {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '=':
			b.WriteByte('=')
			i++
		case line[i] == '=':
			rest := strings.ReplaceAll(line[i+1:], `\=`, "=")
			return strings.TrimSpace(b.String()), strings.TrimSpace(rest), true
		default:
			b.WriteByte(line[i])
		}
	}
	return strings.TrimSpace(b.String()), "", false
}

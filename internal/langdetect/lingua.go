// Package langdetect guesses the language of a text locally. The guess is
// informational only and never replaces the source language of a request.
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// minLetters is the shortest sample worth running through the detector.
const minLetters = 6

// DefaultMinConfidence is the confidence the detect command asks for unless
// told otherwise.
const DefaultMinConfidence = 0.1

// Guess is a detected language with the detector's relative confidence,
// between 0 and 1.
type Guess struct {
	Code       string
	Confidence float64
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Detect returns the most likely language of text as an ISO 639-1 code.
// ok is false for samples with too few letters, for languages without a
// two letter code and when the best confidence is below minConfidence.
func Detect(text string, minConfidence float64) (guess Guess, ok bool) {
	sample := strings.TrimSpace(text)
	if letters(sample) < minLetters {
		return Guess{}, false
	}

	values := getDetector().ComputeLanguageConfidenceValues(sample)
	if len(values) == 0 {
		return Guess{}, false
	}

	// Sorted by descending confidence.
	best := values[0]
	if best.Value() == 0 || best.Value() < minConfidence {
		return Guess{}, false
	}

	code := strings.ToLower(best.Language().IsoCode639_1().String())
	if len(code) != 2 {
		return Guess{}, false
	}

	return Guess{Code: code, Confidence: best.Value()}, true
}

func letters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})
	return detector
}

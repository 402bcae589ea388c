package langdetect

import "testing"

func TestDetect_ShortSamples(t *testing.T) {
	for _, in := range []string{"", "   ", "hi", "12345678", "ok ok"} {
		if got, ok := Detect(in, 0); ok {
			t.Errorf("Detect(%q) = %+v, want no guess", in, got)
		}
	}
}

func TestLetters(t *testing.T) {
	tests := map[string]int{
		"":             0,
		"a1 b2":        2,
		"koşuya":       6,
		"12345, !?":    0,
		"hallo wereld": 11,
	}

	for in, want := range tests {
		if got := letters(in); got != want {
			t.Errorf("letters(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestDetect(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping language model load in short mode")
	}

	tests := []struct {
		text string
		want string
	}{
		{"hallo ik ga vandaag hardlopen in het park", "nl"},
		{"bugün parkta koşuya gidiyorum", "tr"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, ok := Detect(tt.text, DefaultMinConfidence)
			if !ok {
				t.Fatalf("Detect(%q) found nothing", tt.text)
			}
			if got.Code != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got.Code, tt.want)
			}
			if got.Confidence < DefaultMinConfidence || got.Confidence > 1 {
				t.Errorf("confidence %f out of range", got.Confidence)
			}
		})
	}
}

func TestDetect_Threshold(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping language model load in short mode")
	}

	// Confidence never exceeds 1.
	if got, ok := Detect("hallo ik ga vandaag hardlopen in het park", 1.01); ok {
		t.Errorf("expected no guess above threshold, got %+v", got)
	}
}

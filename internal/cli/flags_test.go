package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"EnvFile", flags.EnvFile, ".env"},
		{"LogLevel", flags.LogLevel, "info"},
		{"Source", flags.Source, "auto"},
		{"Variant", flags.Variant, "classic"},
		{"Timeout", flags.Timeout, 2 * time.Second},
		{"Workers", flags.Workers, 4},
		{"MaxFailures", flags.MaxFailures, 5},
		{"HistoryLimit", flags.HistoryLimit, 20},
		{"Addr", flags.Addr, ":8080"},
		{"MinConfidence", flags.MinConfidence, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"LogJSON", flags.LogJSON},
		{"NoHistory", flags.NoHistory},
		{"ArchiveHistory", flags.ArchiveHistory},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"Target", flags.Target},
		{"Client", flags.Client},
		{"BatchFile", flags.BatchFile},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}

	if flags.HistoryPath == "" {
		t.Error("HistoryPath should default to the state directory")
	}
}

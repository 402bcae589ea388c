package cli

import (
	"time"

	"codeberg.org/snonux/gtranslate/internal/history"
	"codeberg.org/snonux/gtranslate/internal/langdetect"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile  string
	EnvFile  string
	LogLevel string
	LogJSON  bool

	// Translation flags
	Source  string
	Target  string
	Variant string
	Client  string
	Timeout time.Duration

	// Batch flags
	BatchFile   string
	Workers     int
	MaxFailures int

	// History flags
	HistoryPath    string
	NoHistory      bool
	HistoryLimit   int
	ArchiveHistory bool

	// Serve flags
	Addr string

	// Detect flags
	MinConfidence float64
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		EnvFile:      ".env",
		LogLevel:     "info",
		Source:       "auto",
		Variant:      "classic",
		Timeout:      2 * time.Second,
		Workers:      4,
		MaxFailures:  5,
		HistoryPath:  history.DefaultPath(),
		HistoryLimit: 20,
		Addr:         ":8080",

		MinConfidence: langdetect.DefaultMinConfidence,
	}
}

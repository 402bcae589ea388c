package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Version is the gtranslate release version.
const Version = "0.3.0"

// GenerateEntryID creates a unique ID for a history entry based on timestamp and query
// Format: epochMillis_md5(query)[:8]
func GenerateEntryID(at time.Time, query string) string {
	epochMillis := at.UnixNano() / 1000000

	hash := md5.Sum([]byte(query))
	hashStr := hex.EncodeToString(hash[:])[:8] // Use first 8 chars of MD5

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

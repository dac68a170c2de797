// FILE: src/internal/source/source.go
package source

import (
	"strings"
	"time"

	"hecship/src/internal/core"
)

// Source represents an input producing log records
type Source interface {
	// Subscribe returns a channel receiving records from this source
	Subscribe() <-chan core.Record

	// Start begins producing records
	Start() error

	// Stop shuts down the source
	Stop()

	// GetStats returns source statistics
	GetStats() SourceStats
}

// SourceStats contains statistics about a source
type SourceStats struct {
	Type           string
	TotalEntries   uint64
	DroppedEntries uint64
	StartTime      time.Time
	LastEntryTime  time.Time
}

// extractLogLevel guesses a level name from a raw log line. Unmarked
// lines default to INFO.
func extractLogLevel(line string) string {
	upper := strings.ToUpper(line)
	for _, level := range []string{"ERROR", "WARN", "DEBUG", "TRACE", "FATAL"} {
		if strings.Contains(upper, "["+level+"]") ||
			strings.Contains(upper, " "+level+" ") ||
			strings.HasPrefix(upper, level) {
			return level
		}
	}
	return "INFO"
}

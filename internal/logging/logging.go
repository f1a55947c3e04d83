package logging

import (
	"log"
	"strings"
	"sync/atomic"
)

var debugEnabled atomic.Bool

// EnableDebug turns on verbose debug logging for icon resolution and the tray.
func EnableDebug() {
	debugEnabled.Store(true)
	log.Printf("[DEBUG] debug logging enabled")
}

// DebugEnabled reports whether debug logging is active.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf emits a formatted debug log message when debugging is enabled.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}

// ShortDigest trims a hex digest for log lines.
func ShortDigest(digest string) string {
	trimmed := strings.TrimSpace(digest)
	if len(trimmed) <= 12 {
		return trimmed
	}
	return trimmed[:12]
}

// Package timeouts centralizes the context deadlines handlers use for store
// and external-service calls.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads
//   - Medium: writes and list queries
package timeouts

import (
	"os"
	"sync"
	"time"
)

// Default timeout values (used unless overridden from the environment).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for writes and list queries.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// ConfigureFromEnv reads overrides from TIMEOUT_PING, TIMEOUT_SHORT, and
// TIMEOUT_MEDIUM (Go duration strings). Unset or invalid values keep the
// defaults. Returns the number of values applied.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	applied := 0

	set := func(env string, dst *time.Duration) {
		if v := os.Getenv(env); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				*dst = d
				applied++
			}
		}
	}
	set("TIMEOUT_PING", &ping)
	set("TIMEOUT_SHORT", &short)
	set("TIMEOUT_MEDIUM", &medium)

	return applied
}

package cache

import (
	"fmt"
	"time"
)

// StatsTTL bounds staleness of the derived profile counters; review writes
// invalidate eagerly anyway.
const StatsTTL = 5 * time.Minute

func StatsKey(userID uint) string {
	return fmt.Sprintf("user:stats:%d", userID)
}

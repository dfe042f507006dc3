package llm

import (
	"time"

	"github.com/Vuhuydiet/smartrent-ai/models"
)

// UsageTracker accumulates per-instance session counters. It is not
// mutex-guarded: callers sharing one client across concurrent requests
// must serialize access or accept approximate counts. Counters are never
// persisted and reset to zero on process restart.
type UsageTracker struct {
	modelName            string
	requestsMadeToday    int
	totalTokensUsedToday int
	lastUpdated          time.Time
}

// NewUsageTracker creates a tracker for the named model.
func NewUsageTracker(modelName string) *UsageTracker {
	return &UsageTracker{
		modelName:   modelName,
		lastUpdated: time.Now(),
	}
}

// Record increments the counters for one completed call. A nil usage is a
// no-op.
func (t *UsageTracker) Record(usage *models.TokenUsage) {
	if usage == nil {
		return
	}
	t.requestsMadeToday++
	t.totalTokensUsedToday += usage.TotalTokens
	t.lastUpdated = time.Now()
}

// ResetDailyCounters zeroes both counters.
func (t *UsageTracker) ResetDailyCounters() {
	t.requestsMadeToday = 0
	t.totalTokensUsedToday = 0
	t.lastUpdated = time.Now()
}

// Snapshot returns the current counter values.
func (t *UsageTracker) Snapshot() models.UsageStats {
	return models.UsageStats{
		RequestsMadeToday:    t.requestsMadeToday,
		TotalTokensUsedToday: t.totalTokensUsedToday,
		ModelName:            t.modelName,
		LastUpdated:          t.lastUpdated,
	}
}

package main

import (
	"time"

	"github.com/ericogr/warlord-cards/internal/constants"
	"github.com/ericogr/warlord-cards/internal/logging"
	"github.com/ericogr/warlord-cards/internal/service"
)

// finishedRetention is how long a finished match stays in memory after its
// record has been stored.
const finishedRetention = 10 * time.Minute

// startTimeoutScanner skips placements that ran past their deadline and
// evicts finished matches.
func startTimeoutScanner(mgr *service.Manager, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			// process each id sequentially; each match has its own lock
			for _, id := range mgr.FindTimedOutMatches(now) {
				if err := mgr.HandleTimedOutMatch(id, now); err != nil {
					logging.Error("failed to handle timed out match", err, logging.Fields{constants.LogFieldMatchID: id})
				}
			}
			if n := mgr.EvictFinished(now.Add(-finishedRetention)); n > 0 {
				logging.Debug("evicted finished matches", logging.Fields{constants.LogFieldCount: n})
			}
		}
	}()
}

package service

import (
	"time"

	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
)

// FindTimedOutMatches returns the ids of matches whose human placement
// window opened at or before now minus the placement timeout.
func (m *Manager) FindTimedOutMatches(now time.Time) []string {
	if m.placementTimeout <= 0 {
		return nil
	}
	m.mu.RLock()
	candidates := make([]*liveMatch, 0, len(m.matches))
	for _, lm := range m.matches {
		candidates = append(candidates, lm)
	}
	m.mu.RUnlock()

	var ids []string
	for _, lm := range candidates {
		lm.mu.Lock()
		if m.awaitingHuman(lm) && !now.Before(lm.windowSince.Add(m.placementTimeout)) {
			ids = append(ids, lm.id)
		}
		lm.mu.Unlock()
	}
	return ids
}

// HandleTimedOutMatch applies timeout resolution for a single match: the
// idle player's placement is skipped and play continues. A match that is
// no longer waiting (the player acted meanwhile) is left alone.
func (m *Manager) HandleTimedOutMatch(id string, now time.Time) error {
	lm, err := m.lookup(id)
	if err != nil {
		return err
	}
	lm.mu.Lock()
	defer lm.mu.Unlock()
	if !m.awaitingHuman(lm) || now.Before(lm.windowSince.Add(m.placementTimeout)) {
		return nil
	}
	logging.Info("placement timed out; skipping for player", logging.Fields{"match_id": id, "turn": lm.battle.Turn()})
	if err := lm.battle.Skip(game.SidePlayer); err != nil {
		return err
	}
	m.afterCommand(lm)
	return nil
}

// EvictFinished drops finished matches whose record has been saved and
// that ended at or before cutoff. It returns the number removed.
func (m *Manager) EvictFinished(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, lm := range m.matches {
		lm.mu.Lock()
		drop := lm.saved && !lm.finishedAt.IsZero() && !lm.finishedAt.After(cutoff)
		lm.mu.Unlock()
		if drop {
			lm.battle.Close()
			delete(m.matches, id)
			removed++
		}
	}
	return removed
}

package service

import (
	"strings"
	"time"

	"github.com/ericogr/warlord-cards/internal/dedupe"
	"github.com/ericogr/warlord-cards/internal/engine"
	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
	"github.com/google/uuid"
)

// journalLimit bounds the battle log kept per live match.
const journalLimit = 500

// CreateMatchRequest describes a new match against the bot. Zero values
// pick at random (seed from the clock).
type CreateMatchRequest struct {
	Seed          *int64    `json:"seed,omitempty"`
	PlayerWarlord int       `json:"player_warlord,omitempty"`
	BotWarlord    int       `json:"bot_warlord,omitempty"`
	FirstSide     game.Side `json:"first_side,omitempty"`
	// Autoplay hands the player side to the bot as well.
	Autoplay bool `json:"autoplay,omitempty"`
}

// MatchView is what clients see of a live match.
type MatchView struct {
	MatchID string `json:"match_id"`
	engine.Snapshot
	Log               []string   `json:"log"`
	PlacementDeadline *time.Time `json:"placement_deadline,omitempty"`
}

// CreateMatch starts a match and plays until the human has to act.
func (m *Manager) CreateMatch(req CreateMatchRequest) (*MatchView, error) {
	catalog, err := m.Catalog()
	if err != nil {
		return nil, err
	}
	seed := m.now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	player := engine.ControllerHuman
	if req.Autoplay {
		player = engine.ControllerBot
	}
	journal := engine.NewJournal(journalLimit)
	b, err := engine.NewBattle(catalog, engine.Options{
		Seed:          seed,
		Rules:         m.rules,
		Player:        player,
		Bot:           engine.ControllerBot,
		View:          journal,
		FirstSide:     req.FirstSide,
		PlayerWarlord: req.PlayerWarlord,
		BotWarlord:    req.BotWarlord,
	})
	if err != nil {
		return nil, err
	}
	lm := &liveMatch{id: uuid.NewString(), battle: b, journal: journal}
	b.Start()
	m.afterCommand(lm)
	view := m.view(lm)

	m.mu.Lock()
	m.matches[lm.id] = lm
	m.mu.Unlock()
	logging.Info("match created", logging.Fields{"match_id": lm.id, "seed": seed})
	return view, nil
}

// GetMatch returns the current view of a live match.
func (m *Manager) GetMatch(id string) (*MatchView, error) {
	lm, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return m.view(lm), nil
}

// Place deploys a card for the human player.
func (m *Manager) Place(id string, cardID int, cell game.Cell) (*MatchView, error) {
	lm, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	lm.mu.Lock()
	defer lm.mu.Unlock()
	if err := lm.battle.Place(game.SidePlayer, cardID, cell); err != nil {
		return nil, err
	}
	m.afterCommand(lm)
	return m.view(lm), nil
}

// Skip gives up the human player's placement for this turn.
func (m *Manager) Skip(id string) (*MatchView, error) {
	lm, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	lm.mu.Lock()
	defer lm.mu.Unlock()
	if err := lm.battle.Skip(game.SidePlayer); err != nil {
		return nil, err
	}
	m.afterCommand(lm)
	return m.view(lm), nil
}

// afterCommand restarts the placement clock and stores the outcome once
// the match is over. Callers hold lm.mu.
func (m *Manager) afterCommand(lm *liveMatch) {
	lm.windowSince = m.now()
	if !lm.battle.Finished() {
		return
	}
	if lm.finishedAt.IsZero() {
		lm.finishedAt = m.now()
	}
	m.persist(lm)
}

func (m *Manager) persist(lm *liveMatch) {
	if lm.saved {
		return
	}
	b := lm.battle
	rec := &game.MatchRecord{
		MatchID:       lm.id,
		Seed:          b.Seed(),
		PlayerWarlord: b.Warlord(game.SidePlayer).Name,
		BotWarlord:    b.Warlord(game.SideBot).Name,
		Status:        b.Status(),
		Winner:        string(b.Winner()),
		Turns:         b.Turn(),
		Summary:       strings.Join(lm.journal.Lines(), "\n"),
	}
	_, err, _ := dedupe.RecordGroup.Do(lm.id, func() (interface{}, error) {
		return nil, m.repo.SaveMatch(rec)
	})
	if err != nil {
		logging.Error("failed to save match record", err, logging.Fields{"match_id": lm.id})
		return
	}
	lm.saved = true
	logging.Info("match record saved", logging.Fields{"match_id": lm.id, "winner": rec.Winner, "turns": rec.Turns})
}

// view builds the client view. Callers hold lm.mu.
func (m *Manager) view(lm *liveMatch) *MatchView {
	v := &MatchView{
		MatchID:  lm.id,
		Snapshot: lm.battle.Snapshot(),
		Log:      lm.journal.Lines(),
	}
	if m.awaitingHuman(lm) && m.placementTimeout > 0 {
		d := lm.windowSince.Add(m.placementTimeout)
		v.PlacementDeadline = &d
	}
	return v
}

func (m *Manager) awaitingHuman(lm *liveMatch) bool {
	b := lm.battle
	return !b.Finished() &&
		b.Phase() == game.PhasePlacement &&
		b.Controller(b.Active()) == engine.ControllerHuman
}

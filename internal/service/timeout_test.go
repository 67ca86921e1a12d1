package service

import (
	"testing"
	"time"

	"github.com/ericogr/warlord-cards/internal/engine"
	"github.com/ericogr/warlord-cards/internal/game"
)

func TestHandleTimedOutMatch_SkipsIdlePlayer(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mgr := NewManager(newMockRepo(), engine.Rules{}, time.Minute)
	mgr.now = func() time.Time { return base }

	v, err := mgr.CreateMatch(CreateMatchRequest{Seed: seed(3), FirstSide: game.SidePlayer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := mgr.FindTimedOutMatches(base.Add(59 * time.Second)); len(ids) != 0 {
		t.Fatalf("expected no timed out matches yet, got %v", ids)
	}
	ids := mgr.FindTimedOutMatches(base.Add(time.Minute))
	if len(ids) != 1 || ids[0] != v.MatchID {
		t.Fatalf("expected %s to time out, got %v", v.MatchID, ids)
	}

	if err := mgr.HandleTimedOutMatch(v.MatchID, base.Add(time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := mgr.GetMatch(v.MatchID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != game.StatusFinished && got.Turn != 3 {
		t.Fatalf("expected the turn to be skipped, got turn %d", got.Turn)
	}
}

func TestHandleTimedOutMatch_IgnoresFreshWindow(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mgr := NewManager(newMockRepo(), engine.Rules{}, time.Minute)
	mgr.now = func() time.Time { return base }

	v, err := mgr.CreateMatch(CreateMatchRequest{Seed: seed(4), FirstSide: game.SidePlayer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.HandleTimedOutMatch(v.MatchID, base.Add(10*time.Second)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := mgr.GetMatch(v.MatchID)
	if got.Turn != 1 {
		t.Fatalf("expected the match to still wait on turn 1, got %d", got.Turn)
	}
}

func TestNoTimeoutWhenDisabled(t *testing.T) {
	mgr := NewManager(newMockRepo(), engine.Rules{}, 0)
	if _, err := mgr.CreateMatch(CreateMatchRequest{Seed: seed(8), FirstSide: game.SidePlayer}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := mgr.FindTimedOutMatches(time.Now().Add(time.Hour)); ids != nil {
		t.Fatalf("expected no scan when the timeout is disabled, got %v", ids)
	}
}

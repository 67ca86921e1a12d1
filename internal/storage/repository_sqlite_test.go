package storage

import (
	"fmt"
	"testing"

	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestRepo(t *testing.T, cards []game.CardDefinition) Repository {
	t.Helper()
	logging.SetLogger(zap.NewNop())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := OpenAndMigrate(dsn, cards, []game.WarlordDefinition{{ID: 1, Name: "Baron", HP: 30}})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewSQLiteRepository(db)
}

func TestSeedAndReadCatalog(t *testing.T) {
	cards := []game.CardDefinition{
		{ID: 2, Name: "Brawler", HP: 12, ATK: 4, AttackType: game.Melee},
		{ID: 1, Name: "Rifleman", HP: 10, ATK: 3, AttackType: game.Ranged, Abilities: []game.Ability{
			{Type: game.BuffATK, Triggers: []game.TriggerType{game.KillEnemy}, Target: game.TargetSelf, Value: 1},
		}},
	}
	repo := openTestRepo(t, cards)

	got, err := repo.GetCards()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, cards[1].Abilities, got[0].Abilities)

	warlords, err := repo.GetWarlords()
	require.NoError(t, err)
	require.Len(t, warlords, 1)
	assert.Equal(t, "Baron", warlords[0].Name)
}

func TestSeedOverwritesExistingRows(t *testing.T) {
	logging.SetLogger(zap.NewNop())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	first, err := OpenAndMigrate(dsn, []game.CardDefinition{{ID: 1, Name: "Rifleman", HP: 10, ATK: 3, AttackType: game.Ranged}}, nil)
	require.NoError(t, err)
	defer func() {
		if sqlDB, err := first.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	second, err := OpenAndMigrate(dsn, []game.CardDefinition{{ID: 1, Name: "Rifleman", HP: 14, ATK: 3, AttackType: game.Ranged}}, nil)
	require.NoError(t, err)
	got, err := NewSQLiteRepository(second).GetCards()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 14, got[0].HP)
}

func TestSaveAndListMatches(t *testing.T) {
	repo := openTestRepo(t, nil)

	rec := &game.MatchRecord{MatchID: "m-1", Seed: 9, Status: game.StatusInProgress}
	require.NoError(t, repo.SaveMatch(rec))
	require.NoError(t, repo.SaveMatch(&game.MatchRecord{MatchID: "m-1", Seed: 9, Status: game.StatusFinished, Winner: "player", Turns: 12, Summary: "log"}))
	require.NoError(t, repo.SaveMatch(&game.MatchRecord{MatchID: "m-2", Seed: 10, Status: game.StatusFinished}))

	got, err := repo.GetMatch("m-1")
	require.NoError(t, err)
	assert.Equal(t, game.StatusFinished, got.Status)
	assert.Equal(t, "player", got.Winner)
	assert.Equal(t, 12, got.Turns)

	_, err = repo.GetMatch("missing")
	assert.Error(t, err)

	recent, err := repo.ListRecentMatches(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "m-2", recent[0].MatchID)

	one, err := repo.ListRecentMatches(1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

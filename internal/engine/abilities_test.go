package engine

import (
	"testing"

	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStealHealth_HealsByDamageDealt(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardRifleman, game.SidePlayer, "A1", nil)
	put(t, b, cardBrawler, game.SideBot, "A4", nil)
	put(t, b, cardWall, game.SideBot, "B4", nil)

	ab := game.Ability{Type: game.StealHealth, Target: game.TargetAllEnemies, Value: 4}
	b.ApplyAbility(ab, act.ID, act.ID, 0, nil)
	assert.Equal(t, 18, act.HP)
}

func TestStealHealth_CountsModifiedDamage(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardRifleman, game.SidePlayer, "A1", nil)
	put(t, b, cardBrawler, game.SideBot, "A4", nil)
	put(t, b, cardWall, game.SideBot, "B4", withAbility(game.Ability{Type: game.Block, Value: 1}))

	got := b.drainHealth(act, entityIDs(b.liveCards(game.SideBot)), 4)
	assert.Equal(t, 7, got)
	assert.Equal(t, 17, act.HP)
}

func TestStealHealth_UnknownTargetsDrainNothing(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardRifleman, game.SidePlayer, "A1", nil)
	subs := b.bus.HandlerCount(EventDamageResolved)

	got := b.drainHealth(act, []game.EntityID{998, 999}, 4)
	assert.Zero(t, got)
	assert.Equal(t, 10, act.HP)
	assert.Equal(t, subs, b.bus.HandlerCount(EventDamageResolved), "listener must be released")
}

func TestVampirism_SkipsWarlords(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardRifleman, game.SidePlayer, "A1", nil)
	w := b.Warlord(game.SideBot)

	ab := game.Ability{Type: game.Vampirism, Triggers: []game.TriggerType{game.OwnAttack}, Value: 3}
	b.ApplyAbility(ab, act.ID, act.ID, w.ID, &AttackContext{Damage: 3})
	assert.Equal(t, 10, act.HP)
	assert.Equal(t, 30, w.HP)

	enemy := put(t, b, cardBrawler, game.SideBot, "A4", nil)
	b.ApplyAbility(ab, act.ID, act.ID, enemy.ID, &AttackContext{Damage: 3})
	assert.Equal(t, 13, act.HP)
	assert.Equal(t, 9, enemy.HP)
}

func TestApplyAbility_StatChanges(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardBrawler, game.SidePlayer, "A3", nil)
	enemy := put(t, b, cardBrawler, game.SideBot, "A4", nil)
	self := func(at game.AbilityType, v int) game.Ability {
		return game.Ability{Type: at, Target: game.TargetSelf, Value: v}
	}

	b.ApplyAbility(game.Ability{Type: game.DebuffATK, Target: game.TargetAllEnemies, Value: 10}, act.ID, 0, 0, nil)
	assert.Equal(t, 0, enemy.Card.ATK)

	act.HP = 5
	b.ApplyAbility(self(game.Heal, 20), act.ID, 0, 0, nil)
	assert.Equal(t, 12, act.HP)
	b.ApplyAbility(self(game.BuffHP, 3), act.ID, 0, 0, nil)
	assert.Equal(t, 15, act.HP)

	b.ApplyAbility(game.Ability{Type: game.SetStat, Stat: game.StatATK, Value: 9}, act.ID, 0, 0, nil)
	assert.Equal(t, 9, act.Card.ATK)

	enemy.Card.ATK = 2
	b.ApplyAbility(game.Ability{Type: game.StealAttack, Target: game.TargetAllEnemies, Value: 5}, act.ID, 0, 0, nil)
	assert.Equal(t, 11, act.Card.ATK)
	assert.Equal(t, 0, enemy.Card.ATK)
}

func TestApplyAbility_InvulnerabilityStacks(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardBrawler, game.SidePlayer, "A3", nil)
	ab := game.Ability{Type: game.Invulnerability, Target: game.TargetSelf, Value: 2}

	b.ApplyAbility(ab, act.ID, 0, 0, nil)
	b.ApplyAbility(ab, act.ID, 0, 0, nil)
	require.NotNil(t, act.FindAbility(game.Invulnerability))
	assert.Equal(t, 4, act.FindAbility(game.Invulnerability).Value)
}

func TestApplyAbility_ImmuneTargetIsUntouched(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardRifleman, game.SidePlayer, "A1", nil)
	enemy := put(t, b, cardBrawler, game.SideBot, "A4", withAbility(game.Ability{Type: game.Immunity}))

	b.ApplyAbility(game.Ability{Type: game.Poisoning, Triggers: []game.TriggerType{game.OwnAttack}, Value: 2, Duration: 2}, act.ID, act.ID, enemy.ID, &AttackContext{Damage: 3})
	assert.False(t, enemy.HasStatus(game.Poisoning))
}

func TestApplyAbility_OwnAttackEffectsNeedAHit(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardRifleman, game.SidePlayer, "A1", nil)
	enemy := put(t, b, cardBrawler, game.SideBot, "A4", nil)
	freeze := game.Ability{Type: game.Freeze, Triggers: []game.TriggerType{game.OwnAttack}, Value: 1}

	b.ApplyAbility(freeze, act.ID, act.ID, enemy.ID, &AttackContext{Miss: true})
	assert.False(t, enemy.HasStatus(game.Freeze))
	b.ApplyAbility(freeze, act.ID, act.ID, enemy.ID, &AttackContext{Damage: 3})
	assert.True(t, enemy.HasStatus(game.Freeze))
}

func TestApplyAbility_StaleActivatorIsNoop(t *testing.T) {
	b := newTestBattle(t)
	enemy := put(t, b, cardBrawler, game.SideBot, "A4", nil)
	b.ApplyAbility(game.Ability{Type: game.Damage, Target: game.TargetAllEnemies, Value: 5}, 404, 0, enemy.ID, nil)
	assert.Equal(t, 12, enemy.HP)
}

func TestGetTargets(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardRifleman, game.SidePlayer, "A1", nil)
	put(t, b, cardBrawler, game.SidePlayer, "A3", nil)
	for _, cell := range []string{"A4", "B4", "C4"} {
		put(t, b, cardWall, game.SideBot, cell, nil)
	}

	assert.Equal(t, []*game.Entity{act}, b.GetTargets(game.Ability{Target: game.TargetSelf}, act))
	assert.Equal(t, []*game.Entity{b.Warlord(game.SidePlayer)}, b.GetTargets(game.Ability{Target: game.TargetWarlord}, act))
	assert.Len(t, b.GetTargets(game.Ability{Target: game.TargetAllAllies}, act), 2)
	assert.Len(t, b.GetTargets(game.Ability{Target: game.TargetAllEnemies}, act), 3)

	picked := b.GetTargets(game.Ability{Target: game.TargetRandomEnemies, TargetCount: 2}, act)
	require.Len(t, picked, 2)
	assert.NotEqual(t, picked[0].ID, picked[1].ID)
	for _, p := range picked {
		assert.Equal(t, game.SideBot, p.Side)
	}
	assert.Len(t, b.GetTargets(game.Ability{Target: game.TargetRandomEnemies, TargetCount: 9}, act), 3)
	assert.Empty(t, b.GetTargets(game.Ability{}, act))
}

func TestSummon(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardBrawler, game.SidePlayer, "A3", nil)

	b.ApplyAbility(game.Ability{Type: game.Summon, SummonID: cardDrone, Value: 2, SummonLocation: game.SummonBehind}, act.ID, 0, 0, nil)
	settle(b)
	for _, name := range []string{"A2", "A1"} {
		c, err := game.ParseCell(name)
		require.NoError(t, err)
		got := b.CardAt(c)
		require.NotNil(t, got, name)
		assert.Equal(t, "Drone", got.Name)
		assert.Equal(t, game.SidePlayer, got.Side)
	}

	before := len(b.onField(""))
	b.ApplyAbility(game.Ability{Type: game.Summon, Value: 1}, act.ID, 0, 0, nil)
	settle(b)
	assert.Len(t, b.onField(""), before)
}

func TestSummon_FrontRow(t *testing.T) {
	b := newTestBattle(t)
	act := put(t, b, cardBrawler, game.SideBot, "A4", nil)

	b.ApplyAbility(game.Ability{Type: game.Summon, SummonID: cardWall, SummonLocation: game.SummonFrontRow}, act.ID, 0, 0, nil)
	settle(b)
	got := b.CardAt(game.Cell{X: 4, Lane: 1})
	require.NotNil(t, got)
	assert.Equal(t, "Wall", got.Name)
}

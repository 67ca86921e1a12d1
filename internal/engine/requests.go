package engine

import (
	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
)

// spawn puts a new card on the board. Spawn triggers fire once it has
// materialized.
func (b *Battle) spawn(def game.CardDefinition, side game.Side, cell game.Cell) *game.Entity {
	e := game.NewCard(b.newID(), def, side)
	e.Card.Pos = cell
	e.Card.OnField = true
	b.register(e)
	b.grid.Put(cell, e.ID)
	b.view.Spawned(e)
	b.pendingSpawns++
	b.clock.After(b.rules.MaterializeDelay, 0, func() {
		b.pendingSpawns--
		if b.live(e.ID) != e {
			return
		}
		b.bus.Publish(Event{Type: EventSpawn, Source: e.ID, Side: side})
	})
	return e
}

func (b *Battle) onSpawn(ev Event) {
	for _, tr := range []game.TriggerType{game.SelfSpawn, game.AllySpawn, game.EnemySpawn, game.AllyFactionSpawn} {
		b.ProcessTrigger(tr, ev.Source, 0, nil)
	}
}

// onSummonRequest places Value copies (at least one) of the bound card.
// Summons ignore the one-placement-per-turn limit.
func (b *Battle) onSummonRequest(ev Event) {
	ab := ev.Ability
	if ab == nil {
		return
	}
	def, ok := b.catalog.Card(ab.SummonID)
	if !ok {
		logging.Warn("summon references an unknown card; skipping", logging.Fields{"summon_id": ab.SummonID})
		return
	}
	summoner := b.Entity(ev.Source)
	count := max(1, ab.Value)
	for i := 0; i < count; i++ {
		cell, ok := b.summonCell(summoner, ev.Side, def, ab.SummonLocation)
		if !ok {
			return
		}
		b.spawn(def, ev.Side, cell)
	}
}

func (b *Battle) summonCell(summoner *game.Entity, side game.Side, def game.CardDefinition, loc game.SummonLocation) (game.Cell, bool) {
	switch loc {
	case game.SummonBehind:
		if !summoner.IsCard() {
			return game.Cell{}, false
		}
		for _, x := range side.BehindColumns() {
			c := game.Cell{X: x, Lane: summoner.Card.Pos.Lane}
			if b.grid.Free(c) {
				return c, true
			}
		}
	case game.SummonFrontRow:
		for lane := 0; lane < game.Lanes; lane++ {
			c := game.Cell{X: side.FrontColumn(), Lane: lane}
			if b.grid.Free(c) {
				return c, true
			}
		}
	default:
		cells := b.freeCells(side, def.AttackType)
		if len(cells) > 0 {
			return cells[b.rng.Intn(len(cells))], true
		}
	}
	return game.Cell{}, false
}

// onCounterAttackRequest makes Source strike back at Target.
func (b *Battle) onCounterAttackRequest(ev Event) {
	counterer := b.live(ev.Source)
	attacker := b.live(ev.Target)
	if !counterer.IsCard() || attacker == nil {
		return
	}
	b.executeAttack(counterer, attacker, b.counterPosition(counterer, attacker), true, nil)
}

// onSplashRequest hits the attacker's enemies around the struck cell.
func (b *Battle) onSplashRequest(ev Event) {
	attacker := b.Entity(ev.Source)
	if attacker == nil {
		return
	}
	for _, n := range b.grid.Neighbors(ev.Cell) {
		c := b.live(b.grid.At(n))
		if c == nil || c.Side == attacker.Side {
			continue
		}
		b.RequestDamage(DamageRequest{
			Attacker:   attacker.ID,
			Target:     c.ID,
			Amount:     ev.Amount,
			AttackType: attacker.AttackType,
			Source:     SourceAbility,
		}, nil)
	}
}

// onLineDamageRequest carries damage through the enemy cards lined up
// behind the struck cell. The target itself may already be gone.
func (b *Battle) onLineDamageRequest(ev Event) {
	attacker := b.Entity(ev.Source)
	if attacker == nil || !ev.Cell.Valid() {
		return
	}
	step := attacker.Side.Forward()
	lane := ev.Cell.Lane
	for x := ev.Cell.X + step; x >= 1 && x <= game.Columns; x += step {
		c := b.live(b.grid.At(game.Cell{X: x, Lane: lane}))
		if c == nil || c.Side == attacker.Side {
			continue
		}
		b.RequestDamage(DamageRequest{
			Attacker:   attacker.ID,
			Target:     c.ID,
			Amount:     ev.Amount,
			AttackType: attacker.AttackType,
			Source:     SourceAbility,
		}, nil)
	}
}

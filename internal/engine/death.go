package engine

import (
	"fmt"

	"github.com/ericogr/warlord-cards/internal/game"
)

// RequestDamage sends a request through the damage pipeline and returns the
// result. Without a resolver the base amount goes through unmodified.
func (b *Battle) RequestDamage(req DamageRequest, ctx *AttackContext) DamageResult {
	if b.Finished() {
		return DamageResult{}
	}
	if b.resolver == nil {
		res := DamageResult{Damage: req.Amount}
		if b.Entity(req.Target) == nil {
			res.Damage = 0
		}
		if ctx != nil {
			ctx.Damage = res.Damage
		}
		b.publishReport(DamageReport{Request: req, Result: res})
		return res
	}
	return b.resolver.ResolveDamage(req, ctx)
}

func (b *Battle) publishReport(r DamageReport) {
	b.bus.Publish(Event{Type: EventDamageResolved, Source: r.Request.Attacker, Target: r.Request.Target, Report: &r})
}

// onDamageResolved applies a resolved hit to the target, removes it if it
// stays dead and fires the after-damage event when the request asked for it.
func (b *Battle) onDamageResolved(ev Event) {
	r := ev.Report
	tgt := b.Entity(r.Request.Target)
	if tgt == nil {
		return
	}
	var cell game.Cell
	if tgt.IsCard() {
		cell = tgt.Card.Pos
	}
	switch {
	case r.Result.Miss:
		b.view.Missed(tgt)
	case r.Result.Damage > 0:
		b.applyDamage(tgt, r.Request.Attacker, r.Result.Damage)
	}
	if b.Entity(tgt.ID) == tgt && tgt.HP <= 0 {
		if tgt.IsWarlord() {
			b.finish(tgt.Side.Opponent(), fmt.Sprintf("%s warlord %s has fallen", tgt.Side, tgt.Name))
			return
		}
		b.remove(tgt)
	}
	if r.Request.AfterEffects && !b.Finished() {
		b.bus.Publish(Event{Type: EventDamageApplied, Source: r.Request.Attacker, Target: tgt.ID, Cell: cell, Report: r})
	}
}

// applyDamage lowers HP and raises Death on the hit that takes it to zero.
func (b *Battle) applyDamage(tgt *game.Entity, attacker game.EntityID, amount int) {
	wasAlive := tgt.HP > 0
	tgt.HP -= amount
	b.view.Damaged(tgt, amount)
	if wasAlive && tgt.HP <= 0 {
		b.bus.Publish(Event{Type: EventDeath, Source: attacker, Target: tgt.ID, Side: tgt.Side})
	}
}

// onDeath intercepts Reborn; any other death fires the death triggers.
func (b *Battle) onDeath(ev Event) {
	e := b.Entity(ev.Target)
	if e == nil {
		return
	}
	if e.IsCard() {
		if _, ok := e.AbilityValue(game.Reborn); ok {
			b.beginReborn(e)
			return
		}
	}
	b.ProcessTrigger(game.AllyDeath, ev.Source, ev.Target, nil)
	b.ProcessTrigger(game.EnemyDeath, ev.Source, ev.Target, nil)
	if ev.Source != 0 {
		b.ProcessTrigger(game.KillEnemy, ev.Source, ev.Target, nil)
	}
}

// beginReborn keeps the card alive at 1 HP and brings it back at full
// strength once it has rematerialized. Reborn is consumed.
func (b *Battle) beginReborn(e *game.Entity) {
	e.HP = max(1, e.HP)
	b.view.Materialized(e, false)
	b.clock.CancelOwner(e.ID)
	b.clock.After(b.rules.MaterializeDelay+b.rules.RebornDelay, e.ID, func() {
		if b.Entity(e.ID) != e {
			return
		}
		e.HP = e.MaxHP
		e.Card.ATK = e.Card.BaseATK
		e.RemoveAbilities(game.Reborn)
		b.view.Materialized(e, true)
		b.view.StatsChanged(e)
		b.bus.Publish(Event{Type: EventSpawn, Source: e.ID, Side: e.Side})
	})
}

// onDamageApplied runs the reactions to a landed (or missed) attack:
// on-attacked triggers, splash and electroshock.
func (b *Battle) onDamageApplied(ev Event) {
	r := ev.Report
	attacker, target := r.Request.Attacker, r.Request.Target
	ctx := &AttackContext{Damage: r.Result.Damage, Miss: r.Result.Miss, Counter: r.Request.Counter}
	tgt := b.known(target)
	targetIsWarlord := tgt.IsWarlord()

	b.ProcessTrigger(game.SelfAttacked, attacker, target, ctx)
	b.ProcessTrigger(game.AllyAttacked, attacker, target, ctx)
	if targetIsWarlord {
		b.ProcessTrigger(game.AlliedWarlordAttacked, attacker, target, ctx)
		b.ProcessTrigger(game.AnyWarlordAttacked, attacker, target, ctx)
	}
	if b.Finished() {
		return
	}
	if !r.Result.Miss && ev.Cell.Valid() {
		if v, ok := b.HasAbility(attacker, game.Splash); ok && v > 0 {
			b.bus.Publish(Event{Type: RequestSplash, Source: attacker, Target: target, Cell: ev.Cell, Amount: v})
		}
	}
	if v, ok := b.HasAbility(target, game.Electroshock); ok && v > 0 && b.Entity(attacker) != nil {
		at := game.Melee
		if tgt.IsCard() {
			at = tgt.AttackType
		}
		b.RequestDamage(DamageRequest{
			Attacker:   target,
			Target:     attacker,
			Amount:     v,
			AttackType: at,
			Source:     SourceAbility,
		}, nil)
	}
}

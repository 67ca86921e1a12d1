package engine

import (
	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
)

// HasAbility returns the value of the entity's first ability of type t.
// Silenced or unknown entities have none.
func (b *Battle) HasAbility(id game.EntityID, t game.AbilityType) (int, bool) {
	return b.Entity(id).AbilityValue(t)
}

// ApplyAbility runs one activated ability. activator is the card owning the
// ability; source and target come from the event that triggered it. Stale
// references make it a silent no-op.
func (b *Battle) ApplyAbility(ab game.Ability, activator, source, target game.EntityID, ctx *AttackContext) {
	if b.Finished() {
		return
	}
	act := b.live(activator)
	if act == nil {
		return
	}
	tgt := b.Entity(target)
	if tgt != nil && tgt.ID != act.ID {
		if _, immune := tgt.AbilityValue(game.Immunity); immune {
			return
		}
	}
	if ab.HasTrigger(game.OwnAttack) && ctx != nil && ctx.Miss {
		return
	}

	targets := b.GetTargets(ab, act)
	switch ab.Type {
	case game.BuffATK:
		for _, t := range targets {
			if t.IsCard() {
				t.Card.ATK += ab.Value
				b.view.StatsChanged(t)
			}
		}
	case game.DebuffATK:
		for _, t := range targets {
			if t.IsCard() {
				t.Card.ATK = max(0, t.Card.ATK-ab.Value)
				b.view.StatsChanged(t)
			}
		}
	case game.Heal:
		for _, t := range targets {
			t.HP = min(t.MaxHP, t.HP+ab.Value)
			b.view.StatsChanged(t)
		}
	case game.BuffHP:
		for _, t := range targets {
			t.HP += ab.Value
			b.view.StatsChanged(t)
		}
	case game.Damage:
		for _, t := range b.effectTargets(ab, act, tgt) {
			b.RequestDamage(DamageRequest{
				Attacker:   act.ID,
				Target:     t.ID,
				Amount:     ab.Value,
				AttackType: act.AttackType,
				Source:     SourceAbility,
			}, nil)
		}
	case game.StealHealth:
		b.drainHealth(act, entityIDs(targets), ab.Value)
	case game.Vampirism:
		var ids []game.EntityID
		for _, t := range b.effectTargets(ab, act, tgt) {
			if !t.IsWarlord() {
				ids = append(ids, t.ID)
			}
		}
		if len(ids) > 0 {
			b.drainHealth(act, ids, ab.Value)
		}
	case game.CounterAttack:
		if source != 0 && (ctx == nil || !ctx.Counter) {
			b.bus.Publish(Event{Type: RequestCounterAttack, Source: act.ID, Target: source})
		}
	case game.Summon:
		if ab.SummonID <= 0 {
			logging.Warn("summon ability has no card bound; skipping", logging.Fields{"card": act.Name, "entity_id": int(act.ID)})
			return
		}
		a := ab
		b.bus.Publish(Event{Type: RequestSummon, Source: act.ID, Side: act.Side, Ability: &a})
	case game.SetStat:
		switch ab.Stat {
		case game.StatATK:
			if act.IsCard() {
				act.Card.ATK = ab.Value
			}
		case game.StatHP:
			act.HP = ab.Value
		}
		b.view.StatsChanged(act)
	case game.StealAttack:
		if !act.IsCard() {
			return
		}
		for _, t := range targets {
			if !t.IsCard() || t.ID == act.ID {
				continue
			}
			stolen := min(ab.Value, t.Card.ATK)
			t.Card.ATK -= stolen
			act.Card.ATK += stolen
			b.view.StatsChanged(t)
		}
		b.view.StatsChanged(act)
	case game.Poisoning:
		for _, t := range b.effectTargets(ab, act, tgt) {
			b.AddStatus(t.ID, game.Poisoning, max(1, ab.Duration), ab.Value, act.ID)
		}
	case game.Infection:
		// The status does the work: ProcessTrigger ticks it on AllyAttacked.
		for _, t := range b.effectTargets(ab, act, tgt) {
			b.AddStatus(t.ID, game.Infection, max(1, ab.Duration), ab.Value, act.ID)
		}
	case game.Freeze:
		for _, t := range b.effectTargets(ab, act, tgt) {
			b.AddStatus(t.ID, game.Freeze, ab.Value, 0, act.ID)
		}
	case game.Miss:
		for _, t := range b.effectTargets(ab, act, tgt) {
			b.AddStatus(t.ID, game.Miss, ab.Value, 0, act.ID)
		}
	case game.Silence:
		for _, t := range targets {
			b.silence(t, ab.Value)
		}
	case game.PunchThrough:
		if ctx == nil || ctx.Damage <= 0 {
			return
		}
		cell := ctx.Cell
		if !cell.Valid() && tgt.IsCard() {
			cell = tgt.Card.Pos
		}
		if cell.Valid() {
			b.bus.Publish(Event{Type: RequestLineDamage, Source: act.ID, Target: target, Cell: cell, Amount: ctx.Damage})
		}
	case game.Cleanse:
		for _, t := range targets {
			b.cleanse(t)
		}
	case game.Invulnerability:
		for _, t := range targets {
			if existing := t.FindAbility(game.Invulnerability); existing != nil {
				existing.Value += ab.Value
			} else {
				t.Abilities = append(t.Abilities, game.Ability{Type: game.Invulnerability, Value: ab.Value})
			}
			b.view.StatsChanged(t)
		}
	}
}

// GetTargets resolves the ability's target selector relative to the activator.
func (b *Battle) GetTargets(ab game.Ability, act *game.Entity) []*game.Entity {
	switch ab.Target {
	case game.TargetSelf:
		return []*game.Entity{act}
	case game.TargetWarlord:
		if w := b.Warlord(act.Side); w != nil {
			return []*game.Entity{w}
		}
		return nil
	case game.TargetAllAllies:
		return b.liveCards(act.Side)
	case game.TargetAllEnemies:
		return b.liveCards(act.Side.Opponent())
	case game.TargetRandomAllies:
		return b.sample(b.liveCards(act.Side), ab.TargetCount)
	case game.TargetRandomEnemies:
		return b.sample(b.liveCards(act.Side.Opponent()), ab.TargetCount)
	}
	return nil
}

// effectTargets is used by effects aimed at the event's target: the
// selector wins when one is configured.
func (b *Battle) effectTargets(ab game.Ability, act, tgt *game.Entity) []*game.Entity {
	if ab.Target != "" && ab.Target != game.TargetNone {
		return b.GetTargets(ab, act)
	}
	if tgt == nil {
		return nil
	}
	return []*game.Entity{tgt}
}

func (b *Battle) liveCards(side game.Side) []*game.Entity {
	cards := b.onField(side)
	out := cards[:0]
	for _, c := range cards {
		if c.HP > 0 {
			out = append(out, c)
		}
	}
	return out
}

// sample picks n entities uniformly without replacement. n of zero or at
// least the population returns everything.
func (b *Battle) sample(pool []*game.Entity, n int) []*game.Entity {
	if n <= 0 || n >= len(pool) {
		return pool
	}
	picked := make([]*game.Entity, 0, n)
	for _, i := range b.rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[i])
	}
	return picked
}

func entityIDs(es []*game.Entity) []game.EntityID {
	out := make([]game.EntityID, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

// drainHealth damages each target and heals the activator by the damage
// actually dealt. Only reports carrying this call's tag are counted, and the
// listener is gone before drainHealth returns.
func (b *Battle) drainHealth(act *game.Entity, targets []game.EntityID, amount int) int {
	tag := b.newTag()
	pending := make(map[game.EntityID]int, len(targets))
	for _, id := range targets {
		pending[id]++
	}
	remaining := len(targets)
	total := 0
	var sub Subscription
	sub = b.bus.Subscribe(EventDamageResolved, func(ev Event) {
		req := ev.Report.Request
		if req.Tag != tag || req.Attacker != act.ID || req.Source != SourceAbility || pending[req.Target] == 0 {
			return
		}
		pending[req.Target]--
		remaining--
		total += ev.Report.Result.Damage
		if remaining == 0 {
			b.bus.Unsubscribe(sub)
		}
	})
	for _, id := range targets {
		b.RequestDamage(DamageRequest{
			Attacker:   act.ID,
			Target:     id,
			Amount:     amount,
			AttackType: act.AttackType,
			Source:     SourceAbility,
			Tag:        tag,
		}, nil)
	}
	b.bus.Unsubscribe(sub)
	if total > 0 && b.Entity(act.ID) == act {
		act.HP += total
		b.view.StatsChanged(act)
	}
	return total
}

// consumeInvulnerability spends one charge, dropping the ability at zero.
func (b *Battle) consumeInvulnerability(id game.EntityID) {
	e := b.Entity(id)
	if e == nil {
		return
	}
	inv := e.FindAbility(game.Invulnerability)
	if inv == nil {
		return
	}
	inv.Value--
	if inv.Value <= 0 {
		e.RemoveAbilities(game.Invulnerability)
	}
	b.view.StatsChanged(e)
}

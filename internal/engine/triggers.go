package engine

import "github.com/ericogr/warlord-cards/internal/game"

// triggerScope holds the relations between one on-field card and the
// source/target of the event being processed.
type triggerScope struct {
	self            game.EntityID
	source          game.EntityID
	target          game.EntityID
	sameTeamSource  bool
	sameTeamTarget  bool
	sameFaction     bool
	targetIsWarlord bool
	selfSpawnOpen   bool
}

func newTriggerScope(self, src, tgt *game.Entity, source, target game.EntityID, spawned bool) triggerScope {
	s := triggerScope{self: self.ID, source: source, target: target}
	s.sameTeamSource = src != nil && src.Side == self.Side
	s.sameTeamTarget = tgt != nil && tgt.Side == self.Side
	s.sameFaction = src.IsCard() && src.Faction == self.Faction
	s.targetIsWarlord = tgt.IsWarlord()
	s.selfSpawnOpen = !spawned
	return s
}

// activates is the activation table: whether an ability listening for tr on
// this card fires for the current event.
func (s triggerScope) activates(tr game.TriggerType) bool {
	switch tr {
	case game.OwnAttack, game.BeforeAttack:
		return s.source == s.self
	case game.AllyAttack, game.AllySpawn:
		return s.source != s.self && s.sameTeamSource
	case game.EnemyAttack, game.EnemySpawn:
		return s.source != s.self && !s.sameTeamSource
	case game.SelfAttacked:
		return s.target == s.self
	case game.AllyAttacked:
		return s.target != s.self && s.sameTeamTarget
	case game.AlliedWarlordAttacked:
		return s.targetIsWarlord && s.sameTeamTarget
	case game.AnyWarlordAttacked:
		return s.targetIsWarlord
	case game.SelfSpawn:
		return s.source == s.self && s.selfSpawnOpen
	case game.KillEnemy:
		return s.source == s.self && !s.sameTeamTarget
	case game.AllyFactionSpawn:
		return s.source != s.self && s.sameTeamSource && s.sameFaction
	case game.EndTurn, game.StartTurn:
		return true
	case game.EnemyDeath:
		return !s.sameTeamTarget
	case game.AllyDeath:
		return s.target != s.self && s.sameTeamTarget
	}
	return false
}

// ProcessTrigger offers an event to every on-field card. Cards are visited
// in spawn order and abilities in declaration order over a snapshot, so
// cards added or removed by the resulting effects do not disturb the pass.
// Matching abilities are queued on the timeline and the due ones run before
// ProcessTrigger returns.
func (b *Battle) ProcessTrigger(tr game.TriggerType, source, target game.EntityID, ctx *AttackContext) {
	if b.Finished() {
		return
	}
	src := b.known(source)
	tgt := b.known(target)
	for _, e := range b.onField("") {
		if b.Finished() {
			return
		}
		if b.Entity(e.ID) != e {
			continue
		}
		scope := newTriggerScope(e, src, tgt, source, target, b.summoned[e.ID])
		abilities := append([]game.Ability(nil), e.Abilities...)
		for _, ab := range abilities {
			if !ab.HasTrigger(tr) || !scope.activates(tr) {
				continue
			}
			if tr == game.SelfSpawn {
				b.summoned[e.ID] = true
			}
			b.queueAbility(ab, e.ID, source, target, ctx)
		}
		if tr == game.AllyAttacked && target != e.ID && scope.sameTeamTarget {
			if st := e.StatusOf(game.Infection); st != nil {
				b.RequestDamage(DamageRequest{
					Target:     e.ID,
					Amount:     st.Value,
					AttackType: game.Melee,
					Source:     SourceStatus,
				}, nil)
			}
		}
	}
	b.clock.Flush()
}

// queueAbility defers one activation. Abilities that react to their own
// attack wait for the attack to land.
func (b *Battle) queueAbility(ab game.Ability, activator, source, target game.EntityID, ctx *AttackContext) {
	delay := b.rules.AttackDelay
	if !ab.HasTrigger(game.OwnAttack) {
		delay = 0
	}
	b.clock.After(delay, 0, func() {
		b.ApplyAbility(ab, activator, source, target, ctx)
	})
}

// processBeforeDamageTriggers runs the attack-time triggers ahead of damage resolution.
func (b *Battle) processBeforeDamageTriggers(req DamageRequest, ctx *AttackContext) {
	for _, tr := range []game.TriggerType{game.BeforeAttack, game.OwnAttack, game.AllyAttack, game.EnemyAttack} {
		b.ProcessTrigger(tr, req.Attacker, req.Target, ctx)
	}
}

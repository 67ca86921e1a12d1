package engine

import (
	"fmt"

	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
)

// Start opens the first turn and plays bot turns until a human has to place
// a card or the match ends.
func (b *Battle) Start() {
	if b.turn > 0 || b.Finished() {
		return
	}
	logging.Info("match started", logging.Fields{
		"seed":           b.seed,
		"first":          string(b.active),
		"player_warlord": b.Warlord(game.SidePlayer).Name,
		"bot_warlord":    b.Warlord(game.SideBot).Name,
	})
	b.beginTurn()
	b.advance()
}

// Place deploys cardID from side's hand onto cell, then plays out the rest
// of the turn and any bot turns that follow.
func (b *Battle) Place(side game.Side, cardID int, cell game.Cell) error {
	if err := b.checkPlacement(side); err != nil {
		return err
	}
	if err := b.placeFromHand(side, cardID, cell); err != nil {
		return err
	}
	b.completeTurn()
	b.advance()
	return nil
}

// Skip closes side's placement window without deploying anything.
func (b *Battle) Skip(side game.Side) error {
	if err := b.checkPlacement(side); err != nil {
		return err
	}
	b.view.Note(fmt.Sprintf("%s skips placement", side))
	b.completeTurn()
	b.advance()
	return nil
}

func (b *Battle) checkPlacement(side game.Side) error {
	switch {
	case b.Finished():
		return ErrMatchFinished
	case side != b.active:
		return ErrNotYourTurn
	case b.sides[side].controller != ControllerHuman:
		return ErrNotHumanControlled
	case b.phase != game.PhasePlacement:
		return ErrNotPlacementPhase
	case b.placed:
		return ErrAlreadyPlaced
	}
	return nil
}

func (b *Battle) beginTurn() {
	b.turn++
	b.placed = false
	b.phase = game.PhaseStart
	b.view.Note(fmt.Sprintf("turn %d begins for %s", b.turn, b.active))
	b.bus.Publish(Event{Type: EventTurnStart, Side: b.active})
	if b.Finished() {
		return
	}
	b.phase = game.PhasePlacement
}

func (b *Battle) onTurnStart(Event) {
	b.ProcessTrigger(game.StartTurn, 0, 0, nil)
	b.ProcessStatuses()
}

func (b *Battle) onTurnEnd(Event) {
	b.ProcessTrigger(game.EndTurn, 0, 0, nil)
	for id := range b.summoned {
		delete(b.summoned, id)
	}
}

// advance plays bot-controlled turns back to back.
func (b *Battle) advance() {
	for !b.Finished() && b.phase == game.PhasePlacement && b.sides[b.active].controller == ControllerBot {
		b.clock.Sleep(b.rules.BotThinkDelay)
		if b.Finished() {
			return
		}
		b.botPlace()
		b.completeTurn()
	}
}

// completeTurn runs everything after the placement window: spawn settling,
// the battle phase, the draw and the end of turn, then opens the next turn.
func (b *Battle) completeTurn() {
	b.placed = true
	b.clock.RunUntil(func() bool { return b.pendingSpawns == 0 || b.Finished() })
	if b.Finished() {
		return
	}
	b.BattlePhase()
	if b.Finished() {
		return
	}
	b.drawCard(b.active)
	b.phase = game.PhaseEnd
	b.bus.Publish(Event{Type: EventTurnEnd, Side: b.active})
	if b.Finished() {
		return
	}
	if b.turn >= b.rules.MaxTurns {
		b.finish("", "turn limit reached")
		return
	}
	b.active = b.active.Opponent()
	b.beginTurn()
}

// BattlePhase lets every card of the active side attack, lane by lane and
// front to back. Lingering dead cards are swept at the end.
func (b *Battle) BattlePhase() {
	b.phase = game.PhaseBattle
	b.clock.Sleep(b.rules.BattleStartDelay)
	side := b.active
	acted := make(map[game.EntityID]bool)
	for lane := 0; lane < game.Lanes; lane++ {
		for _, x := range side.BattleColumns() {
			if b.Finished() {
				return
			}
			e := b.live(b.grid.At(game.Cell{X: x, Lane: lane}))
			if !e.IsCard() || e.Side != side || acted[e.ID] {
				continue
			}
			acted[e.ID] = true
			if e.AttackType == game.Melee && b.allyBlocking(e) {
				continue
			}
			plan := &ActionPlan{CanAct: true, AttackCount: 1}
			b.bus.Publish(Event{Type: EventBeforeAttack, Source: e.ID, Side: side, Action: plan})
			if !plan.CanAct || b.live(e.ID) != e {
				continue
			}
			b.ExecuteAttacks(e, plan.AttackCount)
		}
	}
	b.clock.RunUntil(func() bool { return b.clock.Pending() == 0 || b.Finished() })
	if b.Finished() {
		return
	}
	b.sweep()
}

func (b *Battle) onBeforeAttack(ev Event) {
	e := b.Entity(ev.Source)
	plan := ev.Action
	if e == nil || plan == nil {
		return
	}
	if e.HasStatus(game.Freeze) {
		plan.CanAct = false
		b.view.Note(label(e) + " is frozen")
		return
	}
	if v, ok := e.AbilityValue(game.MultiAttack); ok {
		plan.AttackCount = max(1, 1+v)
	}
}

func (b *Battle) sweep() {
	for _, e := range b.onField("") {
		if e.HP <= 0 {
			b.remove(e)
		}
	}
}

// ExecuteAttacks performs up to count attacks, re-acquiring the target
// before each one. A melee attacker returns to its starting cell once the
// sequence is over. It returns the number of attacks made.
func (b *Battle) ExecuteAttacks(e *game.Entity, count int) int {
	origin := e.Card.Pos
	made := 0
	for i := 0; i < count; i++ {
		if b.Finished() || b.live(e.ID) != e {
			break
		}
		target, approach := b.FindAttackTarget(e)
		if approach != nil && e.AttackType == game.Melee {
			b.move(e, *approach)
		}
		if target == nil {
			break
		}
		done := false
		b.executeAttack(e, target, nil, false, func() { done = true })
		b.clock.RunUntil(func() bool { return done || b.Finished() })
		made++
	}
	if b.live(e.ID) == e && e.Card.Pos != origin {
		b.move(e, origin)
	}
	return made
}

// executeAttack strikes target once. Melee attackers step to approach first
// and step back afterwards. done runs when the attack sequence is over.
func (b *Battle) executeAttack(attacker, target *game.Entity, approach *game.Cell, counter bool, done func()) {
	finish := func() {
		if done != nil {
			done()
		}
	}
	if b.live(attacker.ID) != attacker || b.Entity(target.ID) == nil {
		finish()
		return
	}
	origin := attacker.Card.Pos
	moved := false
	delay := b.rules.RangedDelay
	if attacker.AttackType == game.Melee {
		delay = b.rules.AttackDelay
		if approach != nil && *approach != origin {
			moved = b.move(attacker, *approach)
		}
	}
	b.view.AttackStarted(attacker, target)
	b.bus.Publish(Event{Type: EventAttack, Source: attacker.ID, Target: target.ID, Side: attacker.Side})

	stepBack := func() {
		if moved && b.live(attacker.ID) == attacker {
			b.move(attacker, origin)
		}
		finish()
	}
	b.clock.After(delay, 0, func() {
		if b.live(attacker.ID) != attacker || b.Entity(target.ID) == nil {
			stepBack()
			return
		}
		atk := attacker.Card.ATK
		ctx := &AttackContext{Damage: atk, Counter: counter}
		if target.IsCard() {
			ctx.Cell = target.Card.Pos
		}
		res := b.RequestDamage(DamageRequest{
			Attacker:     attacker.ID,
			Target:       target.ID,
			Amount:       atk,
			AttackType:   attacker.AttackType,
			Source:       SourceAttack,
			AfterEffects: true,
			Counter:      counter,
		}, ctx)
		if res.Miss || b.Finished() {
			stepBack()
			return
		}
		b.clock.After(b.rules.AttackDelay, 0, stepBack)
	})
}

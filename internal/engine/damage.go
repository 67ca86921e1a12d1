package engine

import (
	"math"

	"github.com/ericogr/warlord-cards/internal/game"
)

// DamageSource tells the resolver which modifiers apply.
type DamageSource string

const (
	SourceAttack  DamageSource = "attack"
	SourceAbility DamageSource = "ability"
	SourceStatus  DamageSource = "status"
)

// DamageRequest describes one attempt to deal damage.
type DamageRequest struct {
	Attacker     game.EntityID
	Target       game.EntityID
	Amount       int
	AttackType   game.AttackType
	Source       DamageSource
	AfterEffects bool
	// Counter marks the damage of a counter-attack.
	Counter bool
	// Tag correlates reports with the caller that issued the request.
	Tag uint64
}

type DamageResult struct {
	Damage int  `json:"damage"`
	Miss   bool `json:"miss"`
}

// DamageReport is what listeners see once a request has been resolved.
type DamageReport struct {
	Request DamageRequest
	Result  DamageResult
}

// AttackContext is shared between an attack and the abilities it triggers.
// The resolver writes the final damage and miss flag back into it.
type AttackContext struct {
	Damage  int
	Miss    bool
	Counter bool
	// Cell is where a card target stood when the blow was struck.
	Cell game.Cell
}

// ActionPlan is filled in by pre-attack handlers.
type ActionPlan struct {
	CanAct      bool
	AttackCount int
}

// CombatState is what the resolver needs to know about the entities
// involved.
type CombatState interface {
	Exists(id game.EntityID) bool
	BeforeDamage(req DamageRequest, ctx *AttackContext)
	AbilityValue(id game.EntityID, t game.AbilityType) (int, bool)
	HasStatus(id game.EntityID, t game.AbilityType) bool
	ConsumeInvulnerability(id game.EntityID)
}

// Resolver turns damage requests into results.
type Resolver struct {
	state CombatState
	emit  func(DamageReport)
}

// NewResolver builds a resolver. A nil state makes it a pass-through that
// returns the base amount unmodified.
func NewResolver(state CombatState, emit func(DamageReport)) *Resolver {
	return &Resolver{state: state, emit: emit}
}

// ResolveDamage applies the modifier pipeline and emits a report whatever
// the outcome. ctx may be nil.
func (r *Resolver) ResolveDamage(req DamageRequest, ctx *AttackContext) DamageResult {
	if ctx == nil {
		ctx = &AttackContext{Damage: req.Amount}
	}
	res := r.resolve(req, ctx)
	ctx.Damage = res.Damage
	ctx.Miss = res.Miss
	if r.emit != nil {
		r.emit(DamageReport{Request: req, Result: res})
	}
	return res
}

func (r *Resolver) resolve(req DamageRequest, ctx *AttackContext) DamageResult {
	if r.state == nil {
		return DamageResult{Damage: req.Amount}
	}
	if !r.state.Exists(req.Target) {
		return DamageResult{}
	}
	if req.Source == SourceAttack {
		r.state.BeforeDamage(req, ctx)
		if r.isMiss(req) {
			return DamageResult{Miss: true}
		}
	}
	dmg := ctx.Damage
	if v, ok := r.state.AbilityValue(req.Target, game.Invulnerability); ok && v > 0 {
		r.state.ConsumeInvulnerability(req.Target)
		dmg = 0
	}
	if res, ok := r.state.AbilityValue(req.Target, game.Resistance); ok {
		dmg = int(math.Round(float64(dmg) * float64(100-res) / 100))
	}
	if block, ok := r.state.AbilityValue(req.Target, game.Block); ok {
		dmg -= block
	}
	if dmg < 0 {
		dmg = 0
	}
	return DamageResult{Damage: dmg}
}

func (r *Resolver) isMiss(req DamageRequest) bool {
	miss := r.state.HasStatus(req.Attacker, game.Miss)
	if req.AttackType == game.Ranged {
		if _, ok := r.state.AbilityValue(req.Target, game.Evasion); ok {
			miss = true
		}
	}
	if req.AttackType == game.Melee {
		_, targetFlies := r.state.AbilityValue(req.Target, game.Flight)
		_, attackerFlies := r.state.AbilityValue(req.Attacker, game.Flight)
		if targetFlies && !attackerFlies {
			miss = true
		}
	}
	if _, ok := r.state.AbilityValue(req.Attacker, game.Accuracy); ok {
		miss = false
	}
	return miss
}

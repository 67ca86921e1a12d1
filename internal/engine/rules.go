package engine

import "time"

// Rules holds the tunable constants of a match. Delays are simulated time.
type Rules struct {
	CopiesPerCard   int `json:"copies_per_card" yaml:"copies_per_card"`
	StartingHand    int `json:"starting_hand" yaml:"starting_hand"`
	MaxHand         int `json:"max_hand" yaml:"max_hand"`
	MaxTurns        int `json:"max_turns" yaml:"max_turns"`
	MaxCascadeDepth int `json:"max_cascade_depth" yaml:"max_cascade_depth"`

	AttackDelay      time.Duration `json:"attack_delay" yaml:"attack_delay"`
	RangedDelay      time.Duration `json:"ranged_delay" yaml:"ranged_delay"`
	MaterializeDelay time.Duration `json:"materialize_delay" yaml:"materialize_delay"`
	RebornDelay      time.Duration `json:"reborn_delay" yaml:"reborn_delay"`
	BattleStartDelay time.Duration `json:"battle_start_delay" yaml:"battle_start_delay"`
	BotThinkDelay    time.Duration `json:"bot_think_delay" yaml:"bot_think_delay"`
}

// DefaultRules mirrors the pacing of the tabletop client.
func DefaultRules() Rules {
	return Rules{
		CopiesPerCard:    3,
		StartingHand:     3,
		MaxHand:          5,
		MaxTurns:         200,
		MaxCascadeDepth:  32,
		AttackDelay:      400 * time.Millisecond,
		RangedDelay:      500 * time.Millisecond,
		MaterializeDelay: 600 * time.Millisecond,
		RebornDelay:      500 * time.Millisecond,
		BattleStartDelay: 500 * time.Millisecond,
		BotThinkDelay:    time.Second,
	}
}

// WithDefaults fills zero fields from DefaultRules.
func (r Rules) WithDefaults() Rules {
	d := DefaultRules()
	if r.CopiesPerCard <= 0 {
		r.CopiesPerCard = d.CopiesPerCard
	}
	if r.StartingHand <= 0 {
		r.StartingHand = d.StartingHand
	}
	if r.MaxHand <= 0 {
		r.MaxHand = d.MaxHand
	}
	if r.MaxTurns <= 0 {
		r.MaxTurns = d.MaxTurns
	}
	if r.MaxCascadeDepth <= 0 {
		r.MaxCascadeDepth = d.MaxCascadeDepth
	}
	if r.AttackDelay <= 0 {
		r.AttackDelay = d.AttackDelay
	}
	if r.RangedDelay <= 0 {
		r.RangedDelay = d.RangedDelay
	}
	if r.MaterializeDelay <= 0 {
		r.MaterializeDelay = d.MaterializeDelay
	}
	if r.RebornDelay <= 0 {
		r.RebornDelay = d.RebornDelay
	}
	if r.BattleStartDelay <= 0 {
		r.BattleStartDelay = d.BattleStartDelay
	}
	if r.BotThinkDelay <= 0 {
		r.BotThinkDelay = d.BotThinkDelay
	}
	return r
}

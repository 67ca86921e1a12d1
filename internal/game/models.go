package game

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"

	PhaseStart     = "start"
	PhasePlacement = "placement"
	PhaseBattle    = "battle"
	PhaseEnd       = "end"
)

// Ability is one unit of persistent behavior on a card or warlord. Which
// fields matter depends on Type.
type Ability struct {
	Type     AbilityType   `json:"type" yaml:"type"`
	Triggers []TriggerType `json:"triggers,omitempty" yaml:"triggers"`
	Value    int           `json:"value" yaml:"value"`
	// Duration is the status length in turns for Poisoning and Infection.
	Duration       int            `json:"duration,omitempty" yaml:"duration"`
	SummonID       int            `json:"summon_id,omitempty" yaml:"summon_id"`
	Stat           StatType       `json:"stat,omitempty" yaml:"stat"`
	Target         TargetType     `json:"target,omitempty" yaml:"target"`
	TargetCount    int            `json:"target_count,omitempty" yaml:"target_count"`
	SummonLocation SummonLocation `json:"summon_location,omitempty" yaml:"summon_location"`
}

// HasTrigger reports whether the ability listens for t.
func (a Ability) HasTrigger(t TriggerType) bool {
	for _, tr := range a.Triggers {
		if tr == t {
			return true
		}
	}
	return false
}

// CloneAbilities deep-copies an ability list so runtime entities never share
// trigger slices with their definitions.
func CloneAbilities(in []Ability) []Ability {
	if in == nil {
		return nil
	}
	out := make([]Ability, len(in))
	for i, a := range in {
		out[i] = a
		out[i].Triggers = append([]TriggerType(nil), a.Triggers...)
	}
	return out
}

// CardDefinition is the immutable template a card instance is built from.
// Definitions are loaded from the config file and mirrored into the
// database so the API can list them.
type CardDefinition struct {
	ID         int        `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name       string     `json:"name" gorm:"uniqueIndex"`
	HP         int        `json:"hp"`
	ATK        int        `json:"atk"`
	AttackType AttackType `json:"attack_type"`
	Rarity     Rarity     `json:"rarity"`
	Faction    Faction    `json:"faction"`
	Abilities  []Ability  `json:"abilities" gorm:"serializer:json"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
}

func (CardDefinition) TableName() string { return "card_definitions" }

type WarlordDefinition struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	HP        int       `json:"hp"`
	Abilities []Ability `json:"abilities,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (WarlordDefinition) TableName() string { return "warlord_definitions" }

// MatchRecord is the persisted outcome of a match.
type MatchRecord struct {
	gorm.Model
	MatchID       string `json:"match_id" gorm:"uniqueIndex"`
	Seed          int64  `json:"seed"`
	PlayerWarlord string `json:"player_warlord"`
	BotWarlord    string `json:"bot_warlord"`
	Status        string `json:"status"`
	Winner        string `json:"winner"`
	Turns         int    `json:"turns"`
	// Summary holds the battle log joined by newlines.
	Summary string `json:"summary" gorm:"type:text"`
}

func (MatchRecord) TableName() string { return "match_records" }

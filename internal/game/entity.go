package game

// EntityID identifies a live card or warlord inside one battle. Zero means "none".
type EntityID int

type Kind string

const (
	KindCard    Kind = "card"
	KindWarlord Kind = "warlord"
)

// Status is a timed condition layered on top of an entity.
type Status struct {
	Type   AbilityType `json:"type"`
	Turns  int         `json:"turns"`
	Value  int         `json:"value"`
	Source EntityID    `json:"source,omitempty"`
	// Backup holds the ability list suspended by a Silence status.
	Backup []Ability `json:"-"`
}

// CardState is the part of an entity that only cards have.
type CardState struct {
	ATK     int    `json:"atk"`
	BaseATK int    `json:"base_atk"`
	Rarity  Rarity `json:"rarity"`
	Pos     Cell   `json:"pos"`
	OnField bool   `json:"on_field"`
}

// Entity is the live combat state of a card or a warlord. Warlords have a
// nil Card.
type Entity struct {
	ID           EntityID   `json:"id"`
	Kind         Kind       `json:"kind"`
	DefinitionID int        `json:"definition_id"`
	Name         string     `json:"name"`
	Side         Side       `json:"side"`
	Faction      Faction    `json:"faction,omitempty"`
	AttackType   AttackType `json:"attack_type,omitempty"`
	HP           int        `json:"hp"`
	MaxHP        int        `json:"max_hp"`
	Abilities    []Ability  `json:"abilities"`
	Statuses     []*Status  `json:"statuses"`
	Card         *CardState `json:"card,omitempty"`
}

func NewCard(id EntityID, def CardDefinition, side Side) *Entity {
	return &Entity{
		ID:           id,
		Kind:         KindCard,
		DefinitionID: def.ID,
		Name:         def.Name,
		Side:         side,
		Faction:      def.Faction,
		AttackType:   def.AttackType,
		HP:           def.HP,
		MaxHP:        def.HP,
		Abilities:    CloneAbilities(def.Abilities),
		Card:         &CardState{ATK: def.ATK, BaseATK: def.ATK, Rarity: def.Rarity},
	}
}

func NewWarlord(id EntityID, def WarlordDefinition, side Side) *Entity {
	return &Entity{
		ID:           id,
		Kind:         KindWarlord,
		DefinitionID: def.ID,
		Name:         def.Name,
		Side:         side,
		HP:           def.HP,
		MaxHP:        def.HP,
		Abilities:    CloneAbilities(def.Abilities),
	}
}

func (e *Entity) IsCard() bool    { return e != nil && e.Card != nil }
func (e *Entity) IsWarlord() bool { return e != nil && e.Kind == KindWarlord }
func (e *Entity) Alive() bool     { return e != nil && e.HP > 0 }

// ATK returns the current attack of a card, zero for warlords.
func (e *Entity) ATK() int {
	if e.IsCard() {
		return e.Card.ATK
	}
	return 0
}

// StatusOf returns the first status of type t, or nil.
func (e *Entity) StatusOf(t AbilityType) *Status {
	for _, s := range e.Statuses {
		if s.Type == t {
			return s
		}
	}
	return nil
}

func (e *Entity) HasStatus(t AbilityType) bool { return e.StatusOf(t) != nil }

// AbilityValue returns the value of the first ability of type t. A silenced
// entity has no abilities.
func (e *Entity) AbilityValue(t AbilityType) (int, bool) {
	if e == nil || e.HasStatus(Silence) {
		return 0, false
	}
	for _, a := range e.Abilities {
		if a.Type == t {
			return a.Value, true
		}
	}
	return 0, false
}

// FindAbility returns a pointer into the live ability list, or nil.
func (e *Entity) FindAbility(t AbilityType) *Ability {
	for i := range e.Abilities {
		if e.Abilities[i].Type == t {
			return &e.Abilities[i]
		}
	}
	return nil
}

// RemoveAbilities drops every ability of type t.
func (e *Entity) RemoveAbilities(t AbilityType) {
	kept := e.Abilities[:0]
	for _, a := range e.Abilities {
		if a.Type != t {
			kept = append(kept, a)
		}
	}
	e.Abilities = kept
}

// RemoveStatuses drops every status for which drop returns true.
func (e *Entity) RemoveStatuses(drop func(*Status) bool) {
	kept := e.Statuses[:0]
	for _, s := range e.Statuses {
		if !drop(s) {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(e.Statuses); i++ {
		e.Statuses[i] = nil
	}
	e.Statuses = kept
}

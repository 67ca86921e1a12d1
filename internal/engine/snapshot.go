package engine

import "github.com/ericogr/warlord-cards/internal/game"

// Snapshot is a deep copy of the visible battle state.
type Snapshot struct {
	Turn     int                       `json:"turn"`
	Active   game.Side                 `json:"active"`
	Phase    string                    `json:"phase"`
	Status   string                    `json:"status"`
	Winner   game.Side                 `json:"winner,omitempty"`
	Seconds  float64                   `json:"seconds"`
	Warlords map[game.Side]game.Entity `json:"warlords"`
	Cards    []game.Entity             `json:"cards"`
	Hands    map[game.Side][]int       `json:"hands"`
	Decks    map[game.Side]int         `json:"decks"`
}

func (b *Battle) Snapshot() Snapshot {
	s := Snapshot{
		Turn:     b.turn,
		Active:   b.active,
		Phase:    b.phase,
		Status:   b.status,
		Winner:   b.winner,
		Seconds:  b.clock.Now().Seconds(),
		Warlords: make(map[game.Side]game.Entity, 2),
		Hands:    make(map[game.Side][]int, 2),
		Decks:    make(map[game.Side]int, 2),
	}
	for _, side := range []game.Side{game.SidePlayer, game.SideBot} {
		if w := b.Warlord(side); w != nil {
			c := copyEntity(w)
			c.HP = max(0, c.HP)
			s.Warlords[side] = c
		}
		s.Hands[side] = b.Hand(side)
		s.Decks[side] = b.DeckSize(side)
	}
	for _, e := range b.onField("") {
		s.Cards = append(s.Cards, copyEntity(e))
	}
	return s
}

func copyEntity(e *game.Entity) game.Entity {
	c := *e
	c.Abilities = game.CloneAbilities(e.Abilities)
	c.Statuses = make([]*game.Status, 0, len(e.Statuses))
	for _, st := range e.Statuses {
		cp := *st
		cp.Backup = game.CloneAbilities(st.Backup)
		c.Statuses = append(c.Statuses, &cp)
	}
	if e.Card != nil {
		card := *e.Card
		c.Card = &card
	}
	return c
}

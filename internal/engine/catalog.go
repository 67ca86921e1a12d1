package engine

import (
	"sort"

	"github.com/ericogr/warlord-cards/internal/game"
)

// Catalog is the read-only set of definitions a battle is built from.
type Catalog struct {
	cards    map[int]game.CardDefinition
	cardIDs  []int
	warlords []game.WarlordDefinition
}

func NewCatalog(cards []game.CardDefinition, warlords []game.WarlordDefinition) *Catalog {
	c := &Catalog{cards: make(map[int]game.CardDefinition, len(cards))}
	for _, d := range cards {
		c.cards[d.ID] = d
		c.cardIDs = append(c.cardIDs, d.ID)
	}
	sort.Ints(c.cardIDs)
	c.warlords = append(c.warlords, warlords...)
	return c
}

// Card looks up a card definition by id.
func (c *Catalog) Card(id int) (game.CardDefinition, bool) {
	if c == nil {
		return game.CardDefinition{}, false
	}
	d, ok := c.cards[id]
	return d, ok
}

// CardIDs returns every card id in ascending order.
func (c *Catalog) CardIDs() []int {
	return append([]int(nil), c.cardIDs...)
}

func (c *Catalog) Warlords() []game.WarlordDefinition {
	return append([]game.WarlordDefinition(nil), c.warlords...)
}

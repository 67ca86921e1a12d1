package engine

import (
	"fmt"

	"github.com/ericogr/warlord-cards/internal/game"
)

// buildDeck shuffles CopiesPerCard copies of every card definition.
func (b *Battle) buildDeck(side game.Side) {
	st := b.sides[side]
	st.deck = st.deck[:0]
	for _, id := range b.catalog.CardIDs() {
		for i := 0; i < b.rules.CopiesPerCard; i++ {
			st.deck = append(st.deck, id)
		}
	}
	b.rng.Shuffle(len(st.deck), func(i, j int) { st.deck[i], st.deck[j] = st.deck[j], st.deck[i] })
}

// drawStartingHand draws StartingHand cards with distinct names.
func (b *Battle) drawStartingHand(side game.Side) {
	st := b.sides[side]
	names := make(map[string]bool)
	for len(st.hand) < b.rules.StartingHand {
		picked := -1
		for i, id := range st.deck {
			def, _ := b.catalog.Card(id)
			if !names[def.Name] {
				picked = i
				break
			}
		}
		if picked < 0 {
			return
		}
		id := st.deck[picked]
		st.deck = append(st.deck[:picked], st.deck[picked+1:]...)
		def, _ := b.catalog.Card(id)
		names[def.Name] = true
		st.hand = append(st.hand, id)
	}
}

// drawCard moves a random deck card into a hand that has room. Cards
// sharing a name with one already in hand are passed over.
func (b *Battle) drawCard(side game.Side) {
	st := b.sides[side]
	if len(st.hand) >= b.rules.MaxHand || len(st.deck) == 0 {
		return
	}
	inHand := make(map[string]bool, len(st.hand))
	for _, id := range st.hand {
		def, _ := b.catalog.Card(id)
		inHand[def.Name] = true
	}
	var candidates []int
	for i, id := range st.deck {
		def, _ := b.catalog.Card(id)
		if !inHand[def.Name] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	picked := candidates[b.rng.Intn(len(candidates))]
	st.hand = append(st.hand, st.deck[picked])
	st.deck = append(st.deck[:picked], st.deck[picked+1:]...)
}

// Hand returns the card definition ids in side's hand.
func (b *Battle) Hand(side game.Side) []int {
	return append([]int(nil), b.sides[side].hand...)
}

func (b *Battle) DeckSize(side game.Side) int {
	return len(b.sides[side].deck)
}

// FreeCells lists where a card of attack type at could be placed by side.
func (b *Battle) FreeCells(side game.Side, at game.AttackType) []game.Cell {
	return b.freeCells(side, at)
}

// placeFromHand validates a placement and deploys the card.
func (b *Battle) placeFromHand(side game.Side, cardID int, cell game.Cell) error {
	st := b.sides[side]
	idx := -1
	for i, id := range st.hand {
		if id == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotInHand
	}
	def, ok := b.catalog.Card(cardID)
	if !ok {
		return ErrCardNotInHand
	}
	if !b.validPlacement(side, def.AttackType, cell) {
		return ErrInvalidPlacement
	}
	st.hand = append(st.hand[:idx], st.hand[idx+1:]...)
	b.placed = true
	b.spawn(def, side, cell)
	return nil
}

// botPlace deploys a random hand card to a random valid cell, trying the
// other cards when one does not fit.
func (b *Battle) botPlace() {
	side := b.active
	hand := b.sides[side].hand
	for _, i := range b.rng.Perm(len(hand)) {
		def, ok := b.catalog.Card(hand[i])
		if !ok {
			continue
		}
		cells := b.freeCells(side, def.AttackType)
		if len(cells) == 0 {
			continue
		}
		if err := b.placeFromHand(side, def.ID, cells[b.rng.Intn(len(cells))]); err == nil {
			return
		}
	}
	b.view.Note(fmt.Sprintf("%s skips placement", side))
}

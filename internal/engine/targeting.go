package engine

import "github.com/ericogr/warlord-cards/internal/game"

// FindAttackTarget picks what e attacks next and, for melee, the cell it
// should step into first. A nil target with a cell means "advance only".
func (b *Battle) FindAttackTarget(e *game.Entity) (*game.Entity, *game.Cell) {
	if !e.IsCard() {
		return nil, nil
	}
	enemy := e.Side.Opponent()
	step := e.Side.Forward()
	lane := e.Card.Pos.Lane
	end := enemy.BackColumn()
	warlord := b.live(b.sides[enemy].warlord)

	for x := enemy.FrontColumn(); x != end+step; x += step {
		c := b.live(b.grid.At(game.Cell{X: x, Lane: lane}))
		if c == nil || c.Side == e.Side {
			continue
		}
		if e.AttackType == game.Ranged {
			return c, nil
		}
		approach := game.Cell{X: x - step, Lane: lane}
		if b.grid.Free(approach) {
			return c, &approach
		}
		return c, nil
	}
	if e.AttackType == game.Ranged {
		if warlord == nil {
			return nil, nil
		}
		return warlord, nil
	}
	if warlord != nil {
		if e.Card.Pos.X == end {
			return warlord, nil
		}
		back := game.Cell{X: end, Lane: lane}
		if b.grid.Free(back) {
			return warlord, &back
		}
	}
	return nil, b.firstFreeToward(e, end)
}

// allyBlocking reports whether anything stands between a card and its own
// front column.
func (b *Battle) allyBlocking(e *game.Entity) bool {
	step := e.Side.Forward()
	for x := e.Card.Pos.X + step; e.Side.Owns(x); x += step {
		if !b.grid.Free(game.Cell{X: x, Lane: e.Card.Pos.Lane}) {
			return true
		}
	}
	return false
}

// counterPosition is where a melee counter-attacker stands to strike back:
// the first free cell stepping toward the attacker's column.
func (b *Battle) counterPosition(counterer, attacker *game.Entity) *game.Cell {
	if !counterer.IsCard() || !attacker.IsCard() || counterer.AttackType == game.Ranged {
		return nil
	}
	return b.firstFreeToward(counterer, attacker.Card.Pos.X)
}

// firstFreeToward steps from e's cell toward column targetX and returns the
// first empty cell on the way.
func (b *Battle) firstFreeToward(e *game.Entity, targetX int) *game.Cell {
	step := e.Side.Forward()
	lane := e.Card.Pos.Lane
	for x := e.Card.Pos.X + step; (step > 0 && x <= targetX) || (step < 0 && x >= targetX); x += step {
		c := game.Cell{X: x, Lane: lane}
		if b.grid.Free(c) {
			return &c
		}
	}
	return nil
}

// freeCells lists the empty cells a card of attack type at may be deployed
// to on side's half.
func (b *Battle) freeCells(side game.Side, at game.AttackType) []game.Cell {
	var out []game.Cell
	for lane := 0; lane < game.Lanes; lane++ {
		for _, x := range side.PlacementColumns(at) {
			c := game.Cell{X: x, Lane: lane}
			if b.grid.Free(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

func (b *Battle) validPlacement(side game.Side, at game.AttackType, c game.Cell) bool {
	if !b.grid.Free(c) {
		return false
	}
	for _, x := range side.PlacementColumns(at) {
		if x == c.X {
			return true
		}
	}
	return false
}

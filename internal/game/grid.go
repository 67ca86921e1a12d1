package game

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	Columns = 6
	Lanes   = 4
)

// Cell addresses a board square: X is the column (1..6), Lane the row (0..3, A..D).
type Cell struct {
	X    int `json:"x"`
	Lane int `json:"lane"`
}

func (c Cell) Valid() bool {
	return c.X >= 1 && c.X <= Columns && c.Lane >= 0 && c.Lane < Lanes
}

// String renders the cell the way players name it, e.g. "B4".
func (c Cell) String() string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.Lane), c.X)
}

func (c Cell) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Cell) UnmarshalText(b []byte) error {
	parsed, err := ParseCell(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCell parses names like "a3" or "D6".
func ParseCell(s string) (Cell, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Cell{}, fmt.Errorf("invalid cell %q", s)
	}
	x, err := strconv.Atoi(s[1:])
	if err != nil {
		return Cell{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	c := Cell{X: x, Lane: int(s[0] - 'A')}
	if !c.Valid() {
		return Cell{}, fmt.Errorf("cell %q is off the board", s)
	}
	return c, nil
}

// Grid maps cells to the card standing on them.
type Grid struct {
	cells [Columns][Lanes]EntityID
}

func (g *Grid) At(c Cell) EntityID {
	if !c.Valid() {
		return 0
	}
	return g.cells[c.X-1][c.Lane]
}

// Free reports whether c is on the board and empty.
func (g *Grid) Free(c Cell) bool {
	return c.Valid() && g.cells[c.X-1][c.Lane] == 0
}

func (g *Grid) Put(c Cell, id EntityID) {
	if c.Valid() {
		g.cells[c.X-1][c.Lane] = id
	}
}

func (g *Grid) Clear(c Cell) {
	if c.Valid() {
		g.cells[c.X-1][c.Lane] = 0
	}
}

// Neighbors returns the valid cells of the 8-neighbourhood of c.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dl := -1; dl <= 1; dl++ {
			if dx == 0 && dl == 0 {
				continue
			}
			n := Cell{X: c.X + dx, Lane: c.Lane + dl}
			if n.Valid() {
				out = append(out, n)
			}
		}
	}
	return out
}

// Occupied maps every non-empty cell to the card standing on it.
func (g *Grid) Occupied() map[Cell]EntityID {
	out := make(map[Cell]EntityID)
	for x := 1; x <= Columns; x++ {
		for l := 0; l < Lanes; l++ {
			if id := g.cells[x-1][l]; id != 0 {
				out[Cell{X: x, Lane: l}] = id
			}
		}
	}
	return out
}

// Forward is the column step a side attacks along.
func (s Side) Forward() int {
	if s == SidePlayer {
		return 1
	}
	return -1
}

// FrontColumn is the own column closest to the enemy.
func (s Side) FrontColumn() int {
	if s == SidePlayer {
		return 3
	}
	return 4
}

// BackColumn is the own column farthest from the enemy; the enemy warlord
// is engaged from here.
func (s Side) BackColumn() int {
	if s == SidePlayer {
		return 1
	}
	return Columns
}

// Owns reports whether column x lies in the side's half.
func (s Side) Owns(x int) bool {
	if s == SidePlayer {
		return x >= 1 && x <= 3
	}
	return x >= 4 && x <= Columns
}

// BattleColumns lists own columns front to back.
func (s Side) BattleColumns() []int {
	if s == SidePlayer {
		return []int{3, 2, 1}
	}
	return []int{4, 5, 6}
}

// PlacementColumns lists the columns a card of the given attack type may be
// deployed to.
func (s Side) PlacementColumns(at AttackType) []int {
	switch {
	case s == SidePlayer && at == Melee:
		return []int{2, 3}
	case s == SidePlayer:
		return []int{1, 2}
	case at == Melee:
		return []int{4, 5}
	default:
		return []int{5, 6}
	}
}

// BehindColumns lists the columns behind the front line, nearest first.
func (s Side) BehindColumns() []int {
	if s == SidePlayer {
		return []int{2, 1}
	}
	return []int{5, 6}
}

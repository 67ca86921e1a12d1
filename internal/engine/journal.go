package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/ericogr/warlord-cards/internal/game"
)

// Presenter receives fire-and-forget notifications about visible changes.
// Implementations must not block.
type Presenter interface {
	Spawned(e *game.Entity)
	AttackStarted(attacker, target *game.Entity)
	Damaged(target *game.Entity, amount int)
	Missed(target *game.Entity)
	StatsChanged(e *game.Entity)
	Materialized(e *game.Entity, visible bool)
	Removed(e *game.Entity)
	StatusChanged(e *game.Entity, t game.AbilityType, added bool)
	Note(msg string)
}

type nopPresenter struct{}

func (nopPresenter) Spawned(*game.Entity) {}
func (nopPresenter) AttackStarted(*game.Entity, *game.Entity) {}
func (nopPresenter) Damaged(*game.Entity, int) {}
func (nopPresenter) Missed(*game.Entity) {}
func (nopPresenter) StatsChanged(*game.Entity) {}
func (nopPresenter) Materialized(*game.Entity, bool) {}
func (nopPresenter) Removed(*game.Entity) {}
func (nopPresenter) StatusChanged(*game.Entity, game.AbilityType, bool) {}
func (nopPresenter) Note(string) {}

// Journal is a Presenter that keeps a readable battle log.
type Journal struct {
	clock func() time.Duration
	lines []string
	limit int
}

// NewJournal keeps at most limit lines (0 means unbounded).
func NewJournal(limit int) *Journal {
	return &Journal{lines: make([]string, 0, 64), limit: limit}
}

func (j *Journal) add(msg string) {
	if j.clock != nil {
		msg = fmt.Sprintf("[%6.1fs] %s", j.clock().Seconds(), msg)
	}
	j.lines = append(j.lines, msg)
	if j.limit > 0 && len(j.lines) > j.limit {
		j.lines = j.lines[len(j.lines)-j.limit:]
	}
}

func label(e *game.Entity) string {
	if e == nil {
		return "nothing"
	}
	if e.IsCard() {
		return fmt.Sprintf("%s %s@%s", e.Side, e.Name, e.Card.Pos)
	}
	return fmt.Sprintf("%s warlord %s", e.Side, e.Name)
}

func (j *Journal) Spawned(e *game.Entity) { j.add(label(e) + " enters the field") }
func (j *Journal) AttackStarted(a, t *game.Entity) {
	j.add(fmt.Sprintf("%s attacks %s", label(a), label(t)))
}
func (j *Journal) Damaged(t *game.Entity, amount int) {
	j.add(fmt.Sprintf("%s takes %d damage (HP %d)", label(t), amount, t.HP))
}
func (j *Journal) Missed(t *game.Entity) { j.add("attack on " + label(t) + " misses") }
func (j *Journal) StatsChanged(e *game.Entity) {
	j.add(fmt.Sprintf("%s now HP %d ATK %d", label(e), e.HP, e.ATK()))
}
func (j *Journal) Materialized(e *game.Entity, visible bool) {
	if visible {
		j.add(label(e) + " rises again")
		return
	}
	j.add(label(e) + " fades")
}
func (j *Journal) Removed(e *game.Entity) { j.add(label(e) + " is destroyed") }
func (j *Journal) StatusChanged(e *game.Entity, t game.AbilityType, added bool) {
	if added {
		j.add(fmt.Sprintf("%s gains %s", label(e), t))
		return
	}
	j.add(fmt.Sprintf("%s loses %s", label(e), t))
}
func (j *Journal) Note(msg string) { j.add(msg) }

// Lines returns a copy of the log.
func (j *Journal) Lines() []string { return append([]string(nil), j.lines...) }

// Summary returns the log as a single string.
func (j *Journal) Summary() string { return strings.Join(j.lines, "\n") }

package engine

import "github.com/ericogr/warlord-cards/internal/game"

// AddStatus puts a timed condition on a card. Warlords, immune cards and
// (for Miss) accurate cards are unaffected. Poisoning stacks as separate
// entries; other types refresh the existing entry to the longer duration
// and the larger value.
func (b *Battle) AddStatus(id game.EntityID, t game.AbilityType, turns, value int, source game.EntityID) {
	e := b.live(id)
	if !e.IsCard() {
		return
	}
	if _, immune := e.AbilityValue(game.Immunity); immune {
		return
	}
	if t == game.Miss {
		if _, accurate := e.AbilityValue(game.Accuracy); accurate {
			return
		}
	}
	if t == game.Silence {
		b.silence(e, turns)
		return
	}
	if t != game.Poisoning {
		if st := e.StatusOf(t); st != nil {
			st.Turns = max(st.Turns, turns)
			st.Value = max(st.Value, value)
			return
		}
	}
	e.Statuses = append(e.Statuses, &game.Status{Type: t, Turns: turns, Value: value, Source: source})
	b.view.StatusChanged(e, t, true)
}

// silence suspends the card's abilities. A card already silenced keeps its
// original backup; only the duration is extended.
func (b *Battle) silence(e *game.Entity, turns int) {
	if !e.IsCard() {
		return
	}
	e.RemoveStatuses(func(s *game.Status) bool { return s.Type != game.Silence })
	if st := e.StatusOf(game.Silence); st != nil {
		st.Turns = max(st.Turns, turns)
		return
	}
	backup := e.Abilities
	e.Abilities = nil
	e.Statuses = append(e.Statuses, &game.Status{Type: game.Silence, Turns: turns, Backup: backup})
	b.view.StatusChanged(e, game.Silence, true)
}

// cleanse removes every status except Silence.
func (b *Battle) cleanse(e *game.Entity) {
	e.RemoveStatuses(func(s *game.Status) bool { return s.Type != game.Silence })
	b.view.StatsChanged(e)
}

// ProcessStatuses ticks every on-field card once: poison deals its damage,
// then every status loses a turn and expired ones are removed. An expiring
// Silence gives the card its abilities back.
func (b *Battle) ProcessStatuses() {
	for _, e := range b.onField("") {
		if b.Finished() {
			return
		}
		if b.Entity(e.ID) != e {
			continue
		}
		for _, st := range append([]*game.Status(nil), e.Statuses...) {
			if st.Type != game.Poisoning {
				continue
			}
			b.RequestDamage(DamageRequest{
				Attacker:   st.Source,
				Target:     e.ID,
				Amount:     st.Value,
				AttackType: game.Melee,
				Source:     SourceStatus,
			}, nil)
		}
		if b.Entity(e.ID) != e {
			continue
		}
		var expired []*game.Status
		for _, st := range e.Statuses {
			st.Turns--
			if st.Turns <= 0 {
				expired = append(expired, st)
			}
		}
		for _, st := range expired {
			if st.Type == game.Silence {
				e.Abilities = append(st.Backup, e.Abilities...)
			}
			e.RemoveStatuses(func(s *game.Status) bool { return s == st })
			b.view.StatusChanged(e, st.Type, false)
		}
	}
}

package engine

import "github.com/ericogr/warlord-cards/internal/game"

// EventType names a message on the battle bus.
type EventType string

const (
	// Events (multicast notifications).
	EventTurnStart      EventType = "turn_start"
	EventTurnEnd        EventType = "turn_end"
	EventSpawn          EventType = "spawn"
	EventBeforeAttack   EventType = "before_attack"
	EventAttack         EventType = "attack"
	EventDeath          EventType = "death"
	EventDamageResolved EventType = "damage_resolved"
	EventDamageApplied  EventType = "damage_applied"

	// Requests (fire-and-forget commands). Damage is not on the bus: it is a
	// synchronous call returning a DamageResult.
	RequestSummon        EventType = "summon_request"
	RequestCounterAttack EventType = "counter_attack_request"
	RequestSplash        EventType = "splash_request"
	RequestLineDamage    EventType = "line_damage_request"
)

// Event carries the payload of any bus message. Each type uses a subset of
// the fields.
type Event struct {
	Type   EventType
	Side   game.Side
	Source game.EntityID
	Target game.EntityID
	// Cell is where the target stood when the event was raised.
	Cell    game.Cell
	Amount  int
	Ability *game.Ability
	Report  *DamageReport
	Action  *ActionPlan
}

type Subscription uint64

type subscriber struct {
	id      Subscription
	handler func(Event)
}

// Bus is the dispatcher a Battle owns. Handlers run synchronously in
// registration order; a handler may subscribe or unsubscribe during
// dispatch without affecting the delivery in progress.
type Bus struct {
	handlers map[EventType][]subscriber
	byID     map[Subscription]EventType
	next     Subscription
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]subscriber),
		byID:     make(map[Subscription]EventType),
	}
}

// Subscribe registers h for t and returns a handle for Unsubscribe.
func (b *Bus) Subscribe(t EventType, h func(Event)) Subscription {
	b.next++
	id := b.next
	b.handlers[t] = append(b.handlers[t], subscriber{id: id, handler: h})
	b.byID[id] = t
	return id
}

// Unsubscribe removes a handler. Unknown or already removed handles are ignored.
func (b *Bus) Unsubscribe(id Subscription) {
	t, ok := b.byID[id]
	if !ok {
		return
	}
	delete(b.byID, id)
	subs := b.handlers[t]
	out := make([]subscriber, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	b.handlers[t] = out
}

// Publish delivers ev to a snapshot of the current handlers. A handler
// removed by an earlier handler of the same delivery is skipped.
func (b *Bus) Publish(ev Event) {
	subs := b.handlers[ev.Type]
	if len(subs) == 0 {
		return
	}
	snapshot := append([]subscriber(nil), subs...)
	for _, s := range snapshot {
		if _, live := b.byID[s.id]; !live {
			continue
		}
		s.handler(ev)
	}
}

// Close drops every subscription.
func (b *Bus) Close() {
	b.handlers = make(map[EventType][]subscriber)
	b.byID = make(map[Subscription]EventType)
}

// HandlerCount returns the number of live handlers for t.
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}

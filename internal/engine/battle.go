package engine

import (
	"math/rand"
	"time"

	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
)

// Controller decides who chooses a side's placements.
type Controller string

const (
	ControllerHuman Controller = "human"
	ControllerBot   Controller = "bot"
)

type Options struct {
	Seed   int64
	Rules  Rules
	Player Controller
	Bot    Controller
	// View receives visual notifications; nil discards them.
	View Presenter
	// FirstSide forces who opens; empty picks at random.
	FirstSide game.Side
	// PlayerWarlord and BotWarlord pick warlords by definition id; zero
	// picks at random.
	PlayerWarlord int
	BotWarlord    int
}

type sideState struct {
	controller Controller
	deck       []int
	hand       []int
	warlord    game.EntityID
}

// Battle is the root of one match. It owns the entity registry, the board,
// the event bus and the simulated clock. It is not safe for concurrent use;
// callers serialize access.
type Battle struct {
	rules    Rules
	catalog  *Catalog
	rng      *rand.Rand
	bus      *Bus
	clock    *Timeline
	resolver *Resolver
	view     Presenter

	entities map[game.EntityID]*game.Entity
	order    []game.EntityID
	grid     game.Grid
	nextID   game.EntityID
	sides    map[game.Side]*sideState
	summoned map[game.EntityID]bool
	// fallen keeps removed entities so reactions to the hit that removed
	// them still know whose side they were on.
	fallen   map[game.EntityID]*game.Entity
	subs     []Subscription

	seed          int64
	turn          int
	active        game.Side
	phase         string
	status        string
	winner        game.Side
	placed        bool
	pendingSpawns int
	nextTag       uint64
}

// NewBattle builds a match from the catalog. Call Start to play the first turn.
func NewBattle(catalog *Catalog, opts Options) (*Battle, error) {
	if catalog == nil || len(catalog.CardIDs()) == 0 || len(catalog.Warlords()) == 0 {
		return nil, ErrEmptyCatalog
	}
	if opts.Player == "" {
		opts.Player = ControllerHuman
	}
	if opts.Bot == "" {
		opts.Bot = ControllerBot
	}
	rules := opts.Rules.WithDefaults()
	b := &Battle{
		rules:    rules,
		catalog:  catalog,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		bus:      NewBus(),
		clock:    NewTimeline(rules.MaxCascadeDepth),
		view:     opts.View,
		entities: make(map[game.EntityID]*game.Entity),
		summoned: make(map[game.EntityID]bool),
		fallen:   make(map[game.EntityID]*game.Entity),
		sides: map[game.Side]*sideState{
			game.SidePlayer: {controller: opts.Player},
			game.SideBot:    {controller: opts.Bot},
		},
		seed:   opts.Seed,
		phase:  game.PhaseStart,
		status: game.StatusInProgress,
	}
	if b.view == nil {
		b.view = nopPresenter{}
	}
	if j, ok := b.view.(*Journal); ok {
		j.clock = b.clock.Now
	}
	b.resolver = NewResolver(combatState{b}, b.publishReport)
	b.wire()

	b.setupWarlord(game.SidePlayer, opts.PlayerWarlord)
	b.setupWarlord(game.SideBot, opts.BotWarlord)
	for _, side := range []game.Side{game.SidePlayer, game.SideBot} {
		b.buildDeck(side)
		b.drawStartingHand(side)
	}
	b.active = opts.FirstSide
	if b.active == "" {
		b.active = game.SidePlayer
		if b.rng.Intn(2) == 1 {
			b.active = game.SideBot
		}
	}
	return b, nil
}

// wire registers the battle's own handlers on its bus.
func (b *Battle) wire() {
	b.subs = append(b.subs,
		b.bus.Subscribe(EventTurnStart, b.onTurnStart),
		b.bus.Subscribe(EventTurnEnd, b.onTurnEnd),
		b.bus.Subscribe(EventSpawn, b.onSpawn),
		b.bus.Subscribe(EventBeforeAttack, b.onBeforeAttack),
		b.bus.Subscribe(EventDeath, b.onDeath),
		b.bus.Subscribe(EventDamageResolved, b.onDamageResolved),
		b.bus.Subscribe(EventDamageApplied, b.onDamageApplied),
		b.bus.Subscribe(RequestSummon, b.onSummonRequest),
		b.bus.Subscribe(RequestCounterAttack, b.onCounterAttackRequest),
		b.bus.Subscribe(RequestSplash, b.onSplashRequest),
		b.bus.Subscribe(RequestLineDamage, b.onLineDamageRequest),
	)
}

// Close releases the battle's subscriptions and queued work.
func (b *Battle) Close() {
	for _, s := range b.subs {
		b.bus.Unsubscribe(s)
	}
	b.subs = nil
	b.clock.Clear()
}

func (b *Battle) Bus() *Bus { return b.bus }
func (b *Battle) Clock() *Timeline { return b.clock }
func (b *Battle) Seed() int64 { return b.seed }
func (b *Battle) Turn() int { return b.turn }
func (b *Battle) Active() game.Side { return b.active }
func (b *Battle) Phase() string { return b.phase }
func (b *Battle) Status() string { return b.status }
func (b *Battle) Winner() game.Side { return b.winner }
func (b *Battle) Finished() bool { return b.status == game.StatusFinished }
func (b *Battle) Now() time.Duration { return b.clock.Now() }
func (b *Battle) Controller(s game.Side) Controller { return b.sides[s].controller }

// SetResolver swaps the damage pipeline; nil degrades damage to the raw amount.
func (b *Battle) SetResolver(r *Resolver) { b.resolver = r }

func (b *Battle) newID() game.EntityID {
	b.nextID++
	return b.nextID
}

func (b *Battle) newTag() uint64 {
	b.nextTag++
	return b.nextTag
}

// Entity returns a registered entity or nil.
func (b *Battle) Entity(id game.EntityID) *game.Entity {
	if id == 0 {
		return nil
	}
	return b.entities[id]
}

// live returns a registered entity with HP above zero, or nil.
func (b *Battle) live(id game.EntityID) *game.Entity {
	e := b.Entity(id)
	if !e.Alive() {
		return nil
	}
	return e
}

// known is Entity extended to entities removed earlier in the match.
func (b *Battle) known(id game.EntityID) *game.Entity {
	if e := b.Entity(id); e != nil {
		return e
	}
	return b.fallen[id]
}

// Warlord returns the warlord of side s.
func (b *Battle) Warlord(s game.Side) *game.Entity {
	return b.Entity(b.sides[s].warlord)
}

// CardAt returns the card standing on c, or nil.
func (b *Battle) CardAt(c game.Cell) *game.Entity {
	return b.Entity(b.grid.At(c))
}

func (b *Battle) register(e *game.Entity) {
	b.entities[e.ID] = e
	b.order = append(b.order, e.ID)
}

// remove takes an entity out of the simulation. Repeated calls are no-ops.
func (b *Battle) remove(e *game.Entity) {
	if e == nil || b.entities[e.ID] != e {
		return
	}
	if e.IsCard() {
		if b.grid.At(e.Card.Pos) == e.ID {
			b.grid.Clear(e.Card.Pos)
		}
		e.Card.OnField = false
	}
	delete(b.entities, e.ID)
	delete(b.summoned, e.ID)
	b.fallen[e.ID] = e
	for i, id := range b.order {
		if id == e.ID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.clock.CancelOwner(e.ID)
	b.view.Removed(e)
}

// move relocates a card, keeping the grid and the card's position in step.
func (b *Battle) move(e *game.Entity, to game.Cell) bool {
	if !e.IsCard() || !to.Valid() {
		return false
	}
	if to == e.Card.Pos {
		return true
	}
	if !b.grid.Free(to) {
		return false
	}
	if b.grid.At(e.Card.Pos) == e.ID {
		b.grid.Clear(e.Card.Pos)
	}
	e.Card.Pos = to
	b.grid.Put(to, e.ID)
	return true
}

// onField snapshots the on-field cards in spawn order, optionally filtered by side.
func (b *Battle) onField(side game.Side) []*game.Entity {
	out := make([]*game.Entity, 0, len(b.order))
	for _, id := range b.order {
		e := b.entities[id]
		if e == nil || !e.IsCard() || !e.Card.OnField {
			continue
		}
		if side != "" && e.Side != side {
			continue
		}
		out = append(out, e)
	}
	return out
}

// finish ends the match; queued effects are abandoned.
func (b *Battle) finish(winner game.Side, reason string) {
	if b.Finished() {
		return
	}
	b.status = game.StatusFinished
	b.phase = game.PhaseEnd
	b.winner = winner
	b.clock.Clear()
	b.view.Note("match over: " + reason)
	logging.Info("match finished", logging.Fields{"winner": string(winner), "turn": b.turn, "reason": reason})
}

func (b *Battle) setupWarlord(side game.Side, defID int) {
	defs := b.catalog.Warlords()
	def := defs[b.rng.Intn(len(defs))]
	for _, d := range defs {
		if defID != 0 && d.ID == defID {
			def = d
		}
	}
	w := game.NewWarlord(b.newID(), def, side)
	b.register(w)
	b.sides[side].warlord = w.ID
}

// combatState adapts the battle to the resolver's view of the world.
type combatState struct{ b *Battle }

func (c combatState) Exists(id game.EntityID) bool { return c.b.Entity(id) != nil }

func (c combatState) BeforeDamage(req DamageRequest, ctx *AttackContext) {
	c.b.processBeforeDamageTriggers(req, ctx)
}

func (c combatState) AbilityValue(id game.EntityID, t game.AbilityType) (int, bool) {
	return c.b.HasAbility(id, t)
}

func (c combatState) HasStatus(id game.EntityID, t game.AbilityType) bool {
	e := c.b.Entity(id)
	return e.IsCard() && e.HasStatus(t)
}

func (c combatState) ConsumeInvulnerability(id game.EntityID) {
	c.b.consumeInvulnerability(id)
}

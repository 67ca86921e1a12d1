package service

import (
	"errors"
	"sync"
	"time"

	"github.com/ericogr/warlord-cards/internal/dedupe"
	"github.com/ericogr/warlord-cards/internal/engine"
	"github.com/ericogr/warlord-cards/internal/game"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrEmptyCatalog  = errors.New("catalog has no cards or warlords")
)

// MatchRepo is the slice of the storage repository the service needs.
type MatchRepo interface {
	GetCards() ([]game.CardDefinition, error)
	GetWarlords() ([]game.WarlordDefinition, error)
	SaveMatch(rec *game.MatchRecord) error
}

// Manager keeps the live matches in memory. Each match is guarded by its
// own mutex; the registry itself by mu.
type Manager struct {
	repo             MatchRepo
	rules            engine.Rules
	placementTimeout time.Duration
	now              func() time.Time

	mu      sync.RWMutex
	matches map[string]*liveMatch

	catalogMu sync.RWMutex
	catalog   *engine.Catalog
}

type liveMatch struct {
	mu          sync.Mutex
	id          string
	battle      *engine.Battle
	journal     *engine.Journal
	windowSince time.Time
	finishedAt  time.Time
	saved       bool
}

// NewManager builds a match manager. A zero placementTimeout disables the
// auto-skip.
func NewManager(repo MatchRepo, rules engine.Rules, placementTimeout time.Duration) *Manager {
	return &Manager{
		repo:             repo,
		rules:            rules.WithDefaults(),
		placementTimeout: placementTimeout,
		now:              time.Now,
		matches:          make(map[string]*liveMatch),
	}
}

// Catalog returns the card catalog, loading it from the repository once.
// Concurrent first calls share a single load.
func (m *Manager) Catalog() (*engine.Catalog, error) {
	m.catalogMu.RLock()
	c := m.catalog
	m.catalogMu.RUnlock()
	if c != nil {
		return c, nil
	}
	v, err, _ := dedupe.CatalogGroup.Do("catalog", func() (interface{}, error) {
		cards, err := m.repo.GetCards()
		if err != nil {
			return nil, err
		}
		warlords, err := m.repo.GetWarlords()
		if err != nil {
			return nil, err
		}
		if len(cards) == 0 || len(warlords) == 0 {
			return nil, ErrEmptyCatalog
		}
		return engine.NewCatalog(cards, warlords), nil
	})
	if err != nil {
		return nil, err
	}
	c = v.(*engine.Catalog)
	m.catalogMu.Lock()
	m.catalog = c
	m.catalogMu.Unlock()
	return c, nil
}

func (m *Manager) lookup(id string) (*liveMatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lm, ok := m.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return lm, nil
}

// Len returns the number of matches held in memory.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

package storage

import "github.com/ericogr/warlord-cards/internal/game"

type Repository interface {
	GetCards() ([]game.CardDefinition, error)
	GetWarlords() ([]game.WarlordDefinition, error)
	// SaveMatch inserts the record or updates the one with the same MatchID.
	SaveMatch(rec *game.MatchRecord) error
	GetMatch(matchID string) (*game.MatchRecord, error)
	// ListRecentMatches returns the newest records first.
	ListRecentMatches(limit int) ([]game.MatchRecord, error)
}

package storage

import (
	"github.com/ericogr/warlord-cards/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetCards() ([]game.CardDefinition, error) {
	var cards []game.CardDefinition
	if err := r.db.Order("id").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *sqliteRepository) GetWarlords() ([]game.WarlordDefinition, error) {
	var warlords []game.WarlordDefinition
	if err := r.db.Order("id").Find(&warlords).Error; err != nil {
		return nil, err
	}
	return warlords, nil
}

func (r *sqliteRepository) SaveMatch(rec *game.MatchRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "winner", "turns", "summary", "updated_at"}),
	}).Create(rec).Error
}

func (r *sqliteRepository) GetMatch(matchID string) (*game.MatchRecord, error) {
	var rec game.MatchRecord
	if err := r.db.Where("match_id = ?", matchID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) ListRecentMatches(limit int) ([]game.MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []game.MatchRecord
	if err := r.db.Order("created_at desc").Order("id desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

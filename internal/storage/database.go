package storage

import (
	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite database, migrates the schema and mirrors
// the configured catalog into it. The config file stays the source of
// truth: existing rows are overwritten on every start.
func OpenAndMigrate(dataSourceName string, cards []game.CardDefinition, warlords []game.WarlordDefinition) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&game.CardDefinition{}, &game.WarlordDefinition{}, &game.MatchRecord{})
	if err != nil {
		return nil, err
	}
	if err := seedDefinitions(db, cards, warlords); err != nil {
		return nil, err
	}
	return db, nil
}

func seedDefinitions(db *gorm.DB, cards []game.CardDefinition, warlords []game.WarlordDefinition) error {
	if len(cards) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "hp", "atk", "attack_type", "rarity", "faction", "abilities", "updated_at"}),
		}).Create(&cards).Error
		if err != nil {
			return err
		}
	}
	if len(warlords) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "hp", "abilities", "updated_at"}),
		}).Create(&warlords).Error
		if err != nil {
			return err
		}
	}
	logging.Info("catalog seeded", logging.Fields{"cards": len(cards), "warlords": len(warlords)})
	return nil
}

package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Dendekky/gamelytics-ai/internal/model"
)

// AutoMigrate migrates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Summoner{},
		&model.Match{},
		&model.MatchParticipant{},
		&model.ChampionMastery{},
		&model.LiveGame{},
		&model.LiveGameParticipant{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

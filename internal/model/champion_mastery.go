package model

import "time"

// ChampionMastery is a player's mastery record for one champion.
type ChampionMastery struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	PUUID               string     `json:"puuid" gorm:"column:puuid;size:100;index:idx_puuid_champion,unique;not null"`
	ChampionID          int        `json:"champion_id" gorm:"index:idx_puuid_champion,unique;not null"`
	MasteryLevel        int        `json:"mastery_level"`
	MasteryPoints       int        `json:"mastery_points" gorm:"index"`
	PointsUntilNext     int        `json:"points_until_next_level"`
	ChestGranted        bool       `json:"chest_granted"`
	TokensEarned        int        `json:"tokens_earned"`
	LastPlayTime        *time.Time `json:"last_play_time,omitempty"`
}

// TableName sets the table name.
func (ChampionMastery) TableName() string {
	return "champion_masteries"
}

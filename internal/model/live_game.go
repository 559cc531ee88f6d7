package model

import (
	"encoding/json"
	"time"
)

// LiveGame is a snapshot of an in-progress game. Re-polling the same
// game updates the existing row instead of inserting a second one.
type LiveGame struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	GameID         string          `json:"game_id" gorm:"size:64;uniqueIndex;not null"`
	PlatformID     string          `json:"platform_id" gorm:"size:10"`
	GameType       string          `json:"game_type" gorm:"size:32"`
	GameMode       string          `json:"game_mode" gorm:"size:32"`
	MapID          int             `json:"map_id"`
	QueueID        int             `json:"queue_id"`
	GameStartTime  time.Time       `json:"game_start_time"`
	GameLength     int             `json:"game_length"` // seconds
	EncryptionKey  string          `json:"-" gorm:"size:128"`
	RawData        json.RawMessage `json:"-" gorm:"type:text"`
	LastObservedAt time.Time       `json:"last_observed_at"`
}

// TableName sets the table name.
func (LiveGame) TableName() string {
	return "live_games"
}

// LiveGameParticipant is one player in a live game, keyed by
// (game_id, puuid) so re-polls upsert instead of duplicating.
type LiveGameParticipant struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	GameID        string          `json:"game_id" gorm:"size:64;index:idx_game_puuid,unique;not null"`
	PUUID         string          `json:"puuid" gorm:"column:puuid;size:100;index:idx_game_puuid,unique"`
	SummonerID    string          `json:"summoner_id" gorm:"size:100;index"`
	RiotID        string          `json:"riot_id" gorm:"size:120"`
	TeamID        int             `json:"team_id" gorm:"index"`
	ChampionID    int             `json:"champion_id"`
	Spell1ID      int             `json:"spell1_id"`
	Spell2ID      int             `json:"spell2_id"`
	PerkMainStyle int             `json:"perk_main_style"`
	PerkSubStyle  int             `json:"perk_sub_style"`
	Perks         json.RawMessage `json:"perks,omitempty" gorm:"type:text"`
	Bot           bool            `json:"bot"`
}

// TableName sets the table name.
func (LiveGameParticipant) TableName() string {
	return "live_game_participants"
}

package model

import (
	"encoding/json"
	"time"
)

// Match is a completed game fetched from the match API.
type Match struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	MatchID      string          `json:"match_id" gorm:"size:64;uniqueIndex;not null"`
	GameCreation time.Time       `json:"game_creation" gorm:"index"`
	GameStart    *time.Time      `json:"game_start,omitempty"`
	GameEnd      *time.Time      `json:"game_end,omitempty"`
	GameDuration int             `json:"game_duration"` // seconds
	GameMode     string          `json:"game_mode" gorm:"size:32"`
	GameType     string          `json:"game_type" gorm:"size:32"`
	GameVersion  string          `json:"game_version" gorm:"size:32"`
	MapID        int             `json:"map_id"`
	PlatformID   string          `json:"platform_id" gorm:"size:10"`
	QueueID      int             `json:"queue_id" gorm:"index"`
	WinningTeam  int             `json:"winning_team"`
	TeamsData    json.RawMessage `json:"teams_data,omitempty" gorm:"type:text"`
}

// TableName sets the table name.
func (Match) TableName() string {
	return "matches"
}

// MatchParticipant is one player's line in a match.
type MatchParticipant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	MatchID       string    `json:"match_id" gorm:"size:64;index:idx_match_puuid,unique;not null"`
	PUUID         string    `json:"puuid" gorm:"column:puuid;size:100;index:idx_match_puuid,unique;index;not null"`
	ParticipantID int       `json:"participant_id"`
	TeamID        int       `json:"team_id"`

	ChampionID     int    `json:"champion_id" gorm:"index"`
	ChampionName   string `json:"champion_name" gorm:"size:64;index"`
	ChampionLevel  int    `json:"champion_level"`
	TeamPosition   string `json:"team_position" gorm:"size:16"`
	SummonerSpell1 int    `json:"summoner_spell_1"`
	SummonerSpell2 int    `json:"summoner_spell_2"`

	Kills       int `json:"kills"`
	Deaths      int `json:"deaths"`
	Assists     int `json:"assists"`
	DoubleKills int `json:"double_kills"`
	TripleKills int `json:"triple_kills"`
	QuadraKills int `json:"quadra_kills"`
	PentaKills  int `json:"penta_kills"`

	TotalDamageDealt            int `json:"total_damage_dealt"`
	TotalDamageDealtToChampions int `json:"total_damage_dealt_to_champions"`
	TotalDamageTaken            int `json:"total_damage_taken"`
	MagicDamageDealt            int `json:"magic_damage_dealt"`
	PhysicalDamageDealt         int `json:"physical_damage_dealt"`
	TrueDamageDealt             int `json:"true_damage_dealt"`

	GoldEarned           int `json:"gold_earned"`
	TotalMinionsKilled   int `json:"total_minions_killed"`
	NeutralMinionsKilled int `json:"neutral_minions_killed"`

	VisionScore           int `json:"vision_score"`
	WardsPlaced           int `json:"wards_placed"`
	WardsKilled           int `json:"wards_killed"`
	ControlWardsPurchased int `json:"control_wards_purchased"`

	TurretKills    int `json:"turret_kills"`
	InhibitorKills int `json:"inhibitor_kills"`
	DragonKills    int `json:"dragon_kills"`
	BaronKills     int `json:"baron_kills"`

	LargestKillingSpree int `json:"largest_killing_spree"`
	LargestMultiKill    int `json:"largest_multi_kill"`
	TotalTimeCCDealt    int `json:"total_time_cc_dealt"`

	Win bool `json:"win"`

	Items json.RawMessage `json:"items,omitempty" gorm:"type:text"`
}

// TableName sets the table name.
func (MatchParticipant) TableName() string {
	return "match_participants"
}

// KDA returns (kills+assists)/deaths, or kills+assists when deaths is
// zero so the value stays finite in serialized output.
func (p *MatchParticipant) KDA() float64 {
	if p.Deaths == 0 {
		return float64(p.Kills + p.Assists)
	}
	return float64(p.Kills+p.Assists) / float64(p.Deaths)
}

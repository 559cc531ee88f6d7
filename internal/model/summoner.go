package model

import "time"

// Summoner is a tracked player account.
type Summoner struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PUUID         string    `json:"puuid" gorm:"column:puuid;size:100;uniqueIndex;not null"`
	SummonerID    string    `json:"summoner_id" gorm:"size:100;index"`
	AccountID     string    `json:"account_id" gorm:"size:100"`
	GameName      string    `json:"game_name" gorm:"size:100;index"`
	TagLine       string    `json:"tag_line" gorm:"size:10;index"`
	SummonerLevel int       `json:"summoner_level"`
	ProfileIconID int       `json:"profile_icon_id"`
	RevisionDate  int64     `json:"revision_date"`
	Region        string    `json:"region" gorm:"size:10;index"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
}

// TableName sets the table name.
func (Summoner) TableName() string {
	return "summoners"
}

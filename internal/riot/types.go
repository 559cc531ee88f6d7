package riot

// Typed response shapes per endpoint. Loosely shaped payloads stop at
// this boundary; nothing above the gateway handles raw maps.

// Account is an account-v1 lookup result.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is a summoner-v4 lookup result.
type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

// Match is a match-v5 detail payload.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

// MatchMetadata identifies a match and its participants.
type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

// MatchInfo is the match body.
type MatchInfo struct {
	GameCreation       int64              `json:"gameCreation"` // epoch ms
	GameStartTimestamp int64              `json:"gameStartTimestamp"`
	GameEndTimestamp   int64              `json:"gameEndTimestamp"`
	GameDuration       int                `json:"gameDuration"` // seconds
	GameMode           string             `json:"gameMode"`
	GameType           string             `json:"gameType"`
	GameVersion        string             `json:"gameVersion"`
	MapID              int                `json:"mapId"`
	PlatformID         string             `json:"platformId"`
	QueueID            int                `json:"queueId"`
	TournamentCode     string             `json:"tournamentCode"`
	Teams              []MatchTeam        `json:"teams"`
	Participants       []MatchParticipant `json:"participants"`
}

// MatchTeam is a team level outcome record.
type MatchTeam struct {
	TeamID int  `json:"teamId"`
	Win    bool `json:"win"`
}

// MatchParticipant is one player's line in a match payload.
type MatchParticipant struct {
	PUUID         string `json:"puuid"`
	ParticipantID int    `json:"participantId"`
	TeamID        int    `json:"teamId"`

	ChampionID   int    `json:"championId"`
	ChampionName string `json:"championName"`
	ChampLevel   int    `json:"champLevel"`
	TeamPosition string `json:"teamPosition"`
	Summoner1ID  int    `json:"summoner1Id"`
	Summoner2ID  int    `json:"summoner2Id"`

	Kills       int `json:"kills"`
	Deaths      int `json:"deaths"`
	Assists     int `json:"assists"`
	DoubleKills int `json:"doubleKills"`
	TripleKills int `json:"tripleKills"`
	QuadraKills int `json:"quadraKills"`
	PentaKills  int `json:"pentaKills"`

	TotalDamageDealt            int `json:"totalDamageDealt"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int `json:"totalDamageTaken"`
	MagicDamageDealt            int `json:"magicDamageDealt"`
	PhysicalDamageDealt         int `json:"physicalDamageDealt"`
	TrueDamageDealt             int `json:"trueDamageDealt"`

	GoldEarned           int `json:"goldEarned"`
	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`

	VisionScore         int `json:"visionScore"`
	WardsPlaced         int `json:"wardsPlaced"`
	WardsKilled         int `json:"wardsKilled"`
	DetectorWardsPlaced int `json:"detectorWardsPlaced"`

	TurretKills    int `json:"turretKills"`
	InhibitorKills int `json:"inhibitorKills"`
	DragonKills    int `json:"dragonKills"`
	BaronKills     int `json:"baronKills"`

	LargestKillingSpree int `json:"largestKillingSpree"`
	LargestMultiKill    int `json:"largestMultiKill"`
	TotalTimeCCDealt    int `json:"totalTimeCCDealt"`

	Win bool `json:"win"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`
}

// ChampionMastery is a champion-mastery-v4 entry.
type ChampionMastery struct {
	PUUID                        string `json:"puuid"`
	ChampionID                   int    `json:"championId"`
	ChampionLevel                int    `json:"championLevel"`
	ChampionPoints               int    `json:"championPoints"`
	ChampionPointsUntilNextLevel int    `json:"championPointsUntilNextLevel"`
	ChestGranted                 bool   `json:"chestGranted"`
	TokensEarned                 int    `json:"tokensEarned"`
	LastPlayTime                 int64  `json:"lastPlayTime"` // epoch ms
}

// CurrentGame is a spectator-v5 active game payload.
type CurrentGame struct {
	GameID            int64                    `json:"gameId"`
	GameType          string                   `json:"gameType"`
	GameStartTime     int64                    `json:"gameStartTime"` // epoch ms
	MapID             int                      `json:"mapId"`
	GameLength        int                      `json:"gameLength"` // seconds
	PlatformID        string                   `json:"platformId"`
	GameMode          string                   `json:"gameMode"`
	GameQueueConfigID int                      `json:"gameQueueConfigId"`
	Observers         Observers                `json:"observers"`
	Participants      []CurrentGameParticipant `json:"participants"`
}

// Observers carries the spectator encryption key.
type Observers struct {
	EncryptionKey string `json:"encryptionKey"`
}

// CurrentGameParticipant is one player in an active game.
type CurrentGameParticipant struct {
	PUUID      string `json:"puuid"`
	SummonerID string `json:"summonerId"`
	RiotID     string `json:"riotId"`
	TeamID     int    `json:"teamId"`
	ChampionID int    `json:"championId"`
	Spell1ID   int    `json:"spell1Id"`
	Spell2ID   int    `json:"spell2Id"`
	Bot        bool   `json:"bot"`
	Perks      Perks  `json:"perks"`
}

// Perks is a rune page selection.
type Perks struct {
	PerkIDs      []int64 `json:"perkIds"`
	PerkStyle    int64   `json:"perkStyle"`
	PerkSubStyle int64   `json:"perkSubStyle"`
}

// FeaturedGames is a spectator-v5 featured games payload.
type FeaturedGames struct {
	GameList              []CurrentGame `json:"gameList"`
	ClientRefreshInterval int           `json:"clientRefreshInterval"`
}

// ChampionList is the Data Dragon champion catalog.
type ChampionList struct {
	Data map[string]ChampionEntry `json:"data"`
}

// ChampionEntry is one champion in the catalog. Key is the numeric
// champion id as a string.
type ChampionEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

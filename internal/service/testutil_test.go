package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dendekky/gamelytics-ai/internal/config"
	"github.com/Dendekky/gamelytics-ai/internal/database"
	"github.com/Dendekky/gamelytics-ai/internal/model"
	"github.com/Dendekky/gamelytics-ai/internal/riot"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	return db
}

func testScoring() config.ScoringConfig {
	return config.ScoringConfig{
		AggressionKillWeight:   1.5,
		AggressionDamageScale:  2000,
		FarmingCSBaseline:      8,
		SurvivabilityDeathBase: 2,
		SurvivabilityPenalty:   1.5,
		VisionBaseline:         50,
		VersatilityPoolSize:    5,
		ConsistencyVarPenalty:  0.5,
		ConsistencyMaxPenalty:  3,
	}
}

// seed describes one stored match from a single player's perspective.
type seed struct {
	matchID  string
	when     time.Time
	duration int // seconds
	champ    string
	champID  int
	position string
	kills    int
	deaths   int
	assists  int
	cs       int
	vision   int
	damage   int
	win      bool
}

func insertMatch(t *testing.T, db *gorm.DB, puuid string, s seed) {
	t.Helper()

	// duration 0 means "unspecified"; a negative value seeds a true
	// zero-duration match.
	switch {
	case s.duration == 0:
		s.duration = 1800
	case s.duration < 0:
		s.duration = 0
	}
	if s.champ == "" {
		s.champ = "Ashe"
		s.champID = 22
	}
	if s.position == "" {
		s.position = "BOTTOM"
	}

	match := model.Match{
		MatchID:      s.matchID,
		GameCreation: s.when,
		GameDuration: s.duration,
		GameMode:     "CLASSIC",
		QueueID:      420,
	}
	require.NoError(t, db.Create(&match).Error)

	participant := model.MatchParticipant{
		MatchID:                     s.matchID,
		PUUID:                       puuid,
		ChampionID:                  s.champID,
		ChampionName:                s.champ,
		TeamPosition:                s.position,
		Kills:                       s.kills,
		Deaths:                      s.deaths,
		Assists:                     s.assists,
		TotalMinionsKilled:          s.cs,
		VisionScore:                 s.vision,
		TotalDamageDealtToChampions: s.damage,
		Win:                         s.win,
	}
	require.NoError(t, db.Create(&participant).Error)
}

// fakeGateway is a scriptable RiotGateway for service tests. The
// mutex guards activeCalls, which concurrent monitor fan-outs bump.
type fakeGateway struct {
	mu          sync.Mutex
	account     *riot.Account
	summoner    *riot.Summoner
	matchIDs    []string
	matches     map[string]*riot.Match
	masteries   []riot.ChampionMastery
	activeGames map[string]*riot.CurrentGame
	activeErrs  map[string]error
	featured    *riot.FeaturedGames
	champions   *riot.ChampionList
	activeCalls int
	err         error
}

func (f *fakeGateway) GetAccountByRiotID(ctx context.Context, gameName, tagLine, region string) (*riot.Account, error) {
	return f.account, f.err
}

func (f *fakeGateway) GetSummonerByPUUID(ctx context.Context, puuid, region string) (*riot.Summoner, error) {
	return f.summoner, f.err
}

func (f *fakeGateway) GetMatchIDs(ctx context.Context, puuid, region string, count int) ([]string, error) {
	return f.matchIDs, f.err
}

func (f *fakeGateway) GetMatch(ctx context.Context, matchID, region string) (*riot.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches[matchID], nil
}

func (f *fakeGateway) GetChampionMasteries(ctx context.Context, puuid, region string) ([]riot.ChampionMastery, error) {
	return f.masteries, f.err
}

func (f *fakeGateway) GetActiveGame(ctx context.Context, puuid, region string) (*riot.CurrentGame, error) {
	f.mu.Lock()
	f.activeCalls++
	f.mu.Unlock()
	if err, ok := f.activeErrs[puuid]; ok {
		return nil, err
	}
	if f.activeGames == nil {
		return nil, f.err
	}
	return f.activeGames[puuid], nil
}

func (f *fakeGateway) GetFeaturedGames(ctx context.Context, region string) (*riot.FeaturedGames, error) {
	return f.featured, f.err
}

func (f *fakeGateway) GetChampionData(ctx context.Context) (*riot.ChampionList, error) {
	return f.champions, f.err
}

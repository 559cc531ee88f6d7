package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dendekky/gamelytics-ai/internal/cache"
	"github.com/Dendekky/gamelytics-ai/internal/config"
	"github.com/Dendekky/gamelytics-ai/internal/database"
	"github.com/Dendekky/gamelytics-ai/internal/model"
	"github.com/Dendekky/gamelytics-ai/internal/ratelimit"
	"github.com/Dendekky/gamelytics-ai/internal/riot"
	"github.com/Dendekky/gamelytics-ai/internal/service"
)

// stubGateway answers every endpoint from fixed fields.
type stubGateway struct {
	account  *riot.Account
	summoner *riot.Summoner
	game     *riot.CurrentGame
	err      error
}

func (g *stubGateway) GetAccountByRiotID(ctx context.Context, gameName, tagLine, region string) (*riot.Account, error) {
	return g.account, g.err
}

func (g *stubGateway) GetSummonerByPUUID(ctx context.Context, puuid, region string) (*riot.Summoner, error) {
	return g.summoner, g.err
}

func (g *stubGateway) GetMatchIDs(ctx context.Context, puuid, region string, count int) ([]string, error) {
	return nil, g.err
}

func (g *stubGateway) GetMatch(ctx context.Context, matchID, region string) (*riot.Match, error) {
	return nil, g.err
}

func (g *stubGateway) GetChampionMasteries(ctx context.Context, puuid, region string) ([]riot.ChampionMastery, error) {
	return nil, g.err
}

func (g *stubGateway) GetActiveGame(ctx context.Context, puuid, region string) (*riot.CurrentGame, error) {
	return g.game, g.err
}

func (g *stubGateway) GetFeaturedGames(ctx context.Context, region string) (*riot.FeaturedGames, error) {
	return nil, g.err
}

func (g *stubGateway) GetChampionData(ctx context.Context) (*riot.ChampionList, error) {
	return nil, g.err
}

func newTestServer(t *testing.T, gateway service.RiotGateway) *HTTPServer {
	s, _ := newTestServerDB(t, gateway)
	return s
}

func newTestServerDB(t *testing.T, gateway service.RiotGateway) (*HTTPServer, *gorm.DB) {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)

	c := cache.NewCache()
	analytics := service.NewAnalyticsService(db, c, config.ScoringConfig{}, time.Minute)

	services := Services{
		Summoners:    service.NewSummonerService(db, gateway),
		Matches:      service.NewMatchService(db, gateway),
		Masteries:    service.NewMasteryService(db, gateway),
		Analytics:    analytics,
		LiveGames:    service.NewLiveGameService(db, gateway, c, analytics, time.Minute),
		Builds:       service.NewBuildService(db, c, time.Minute),
		ChampionData: service.NewChampionDataService(gateway, c, time.Hour),
	}

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: 20,
		RequestsPer2Min:   100,
		ShortWindow:       time.Second,
		LongWindow:        2 * time.Minute,
		MaxBackoff:        time.Minute,
	})

	cfg := &config.Config{}
	cfg.Server.Port = 8080

	return NewHTTPServer(cfg, services, cache.NewManager(c), limiter), db
}

func do(t *testing.T, s *HTTPServer, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	w := do(t, s, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSummonerByRiotID(t *testing.T) {
	t.Run("known account", func(t *testing.T) {
		s := newTestServer(t, &stubGateway{
			account:  &riot.Account{PUUID: "p1", GameName: "Player", TagLine: "NA1"},
			summoner: &riot.Summoner{ID: "enc", PUUID: "p1", SummonerLevel: 100},
		})

		w := do(t, s, http.MethodGet, "/api/v1/summoners/by-riot-id/Player/NA1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"puuid":"p1"`)
	})

	t.Run("unknown account", func(t *testing.T) {
		s := newTestServer(t, &stubGateway{})

		w := do(t, s, http.MethodGet, "/api/v1/summoners/by-riot-id/Ghost/NA1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("auth failure maps to bad gateway", func(t *testing.T) {
		s := newTestServer(t, &stubGateway{err: riot.ErrAuthFailure})

		w := do(t, s, http.MethodGet, "/api/v1/summoners/by-riot-id/Player/NA1", "")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("rate limit maps to 429", func(t *testing.T) {
		s := newTestServer(t, &stubGateway{err: riot.ErrRateLimited})

		w := do(t, s, http.MethodGet, "/api/v1/summoners/by-riot-id/Player/NA1", "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestSummonerRefreshValidation(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	w := do(t, s, http.MethodPost, "/api/v1/summoners/p1/refresh?count=500", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsOverviewEmptyWindow(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	w := do(t, s, http.MethodGet, "/api/v1/analytics/p1/overview?days=7", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_games":0`)
	assert.Contains(t, w.Body.String(), `"timeframe_days":7`)
}

func TestInternalErrorsStayOpaque(t *testing.T) {
	s, db := newTestServerDB(t, &stubGateway{})
	require.NoError(t, db.Migrator().DropTable("matches"))

	w := do(t, s, http.MethodGet, "/api/v1/analytics/p1/overview", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "no such table")
}

func TestLiveStatusNotInGame(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	w := do(t, s, http.MethodGet, "/api/v1/live/p1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_in_game":false`)
}

func TestMonitorPlayersValidation(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	t.Run("missing body", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/v1/live/monitor", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized batch", func(t *testing.T) {
		body := `{"puuids":["1","2","3","4","5","6","7","8","9","10","11"]}`
		w := do(t, s, http.MethodPost, "/api/v1/live/monitor", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "at most")
	})

	t.Run("valid batch", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/v1/live/monitor", `{"puuids":["p1"]}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLiveReportSections(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	t.Run("analysis requires an active game", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/v1/live/p1/analysis", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("recommendations require an active game", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/v1/live/p1/recommendations", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMasteryByChampion(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	t.Run("non integer id", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/v1/summoners/p1/masteries/champion/ashe", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no record", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/v1/summoners/p1/masteries/champion/22", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEnhancedMasteries(t *testing.T) {
	s, db := newTestServerDB(t, &stubGateway{})

	require.NoError(t, db.Create(&model.ChampionMastery{
		PUUID: "p1", ChampionID: 22, MasteryLevel: 7, MasteryPoints: 250000,
	}).Error)
	require.NoError(t, db.Create(&model.ChampionMastery{
		PUUID: "p1", ChampionID: 51, MasteryLevel: 5, MasteryPoints: 40000,
	}).Error)
	require.NoError(t, db.Create(&model.Match{
		MatchID: "NA1_1", GameCreation: time.Now().Add(-24 * time.Hour),
		GameDuration: 1800, QueueID: 420, WinningTeam: 100,
	}).Error)
	require.NoError(t, db.Create(&model.MatchParticipant{
		MatchID: "NA1_1", PUUID: "p1", TeamID: 100,
		ChampionID: 22, ChampionName: "Ashe",
		Kills: 7, Deaths: 2, Assists: 5, Win: true,
	}).Error)

	w := do(t, s, http.MethodGet, "/api/v1/summoners/p1/masteries/enhanced?limit=10&days=30", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	// Mastery joined with performance on the played champion.
	assert.Contains(t, body, `"champion_name":"Ashe"`)
	assert.Contains(t, body, `"total_games":1`)
	assert.Contains(t, body, `"win_rate":100`)
	// No match history for Caitlyn, so performance degrades to zeros
	// and the name falls back to a generic label.
	assert.Contains(t, body, `"champion_name":"Champion 51"`)
	assert.Contains(t, body, `"total_count":2`)
	assert.Contains(t, body, `"total_mastery_points":290000`)
}

func TestBuildRecommendationsValidation(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	t.Run("missing game id", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/v1/live/p1/build-recommendations", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown game", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/v1/live/p1/build-recommendations?game_id=NOPE", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	t.Run("cache status", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/v1/system/cache/status", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cache clear", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/v1/system/cache/clear?puuid=p1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cleared":true`)
	})

	t.Run("rate limit status", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/v1/system/rate-limit/status", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &stubGateway{})

	w := do(t, s, http.MethodOptions, "/api/v1/health", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

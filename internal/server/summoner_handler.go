package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"

	"github.com/Dendekky/gamelytics-ai/internal/riot"
	"github.com/Dendekky/gamelytics-ai/internal/service"
)

// queryRegion reads the region parameter, falling back to na1.
func queryRegion(c *gin.Context) string {
	region := c.Query("region")
	if region == "" {
		region = "na1"
	}
	return region
}

// queryInt reads an integer query parameter with a default.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// queryDays reads the day window parameter, clamped to 1-365.
func queryDays(c *gin.Context) int {
	days := queryInt(c, "days", 30)
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}
	return days
}

// upstreamError maps gateway failures onto HTTP statuses.
func (s *HTTPServer) upstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, riot.ErrAuthFailure):
		s.error(c, http.StatusBadGateway, "upstream rejected API credentials")
	case errors.Is(err, riot.ErrRateLimited):
		s.error(c, http.StatusTooManyRequests, "upstream rate limit exceeded, try again shortly")
	case errors.Is(err, riot.ErrUnsupportedRegion):
		s.error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, riot.ErrTransport):
		s.error(c, http.StatusBadGateway, "upstream request failed")
	default:
		s.internalError(c, err)
	}
}

func (s *HTTPServer) handleSummonerByRiotID(c *gin.Context) {
	gameName := c.Param("gameName")
	tagLine := c.Param("tagLine")
	region := queryRegion(c)

	summoner, err := s.services.Summoners.LookupByRiotID(c.Request.Context(), gameName, tagLine, region)
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	if summoner == nil {
		s.error(c, http.StatusNotFound, "summoner not found")
		return
	}

	s.success(c, summoner)
}

func (s *HTTPServer) handleSummonerByPUUID(c *gin.Context) {
	puuid := c.Param("puuid")

	summoner, err := s.services.Summoners.GetByPUUID(puuid)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if summoner == nil {
		s.error(c, http.StatusNotFound, "summoner not found")
		return
	}

	s.success(c, summoner)
}

// handleSummonerRefresh pulls the player's recent matches from the
// upstream API into local storage.
func (s *HTTPServer) handleSummonerRefresh(c *gin.Context) {
	puuid := c.Param("puuid")
	region := queryRegion(c)
	count := queryInt(c, "count", 20)
	if count < 1 || count > 100 {
		s.error(c, http.StatusBadRequest, "count must be between 1 and 100")
		return
	}

	matches, err := s.services.Matches.FetchAndStoreRecent(c.Request.Context(), puuid, region, count)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	s.success(c, gin.H{
		"fetched": len(matches),
		"matches": matches,
	})
}

func (s *HTTPServer) handleSummonerMatches(c *gin.Context) {
	puuid := c.Param("puuid")
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	matches, err := s.services.Matches.ListByPUUID(puuid, limit, offset)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, gin.H{
		"total":   len(matches),
		"matches": matches,
	})
}

func (s *HTTPServer) handleMasteryList(c *gin.Context) {
	puuid := c.Param("puuid")
	limit := queryInt(c, "limit", 0)

	masteries, err := s.services.Masteries.ListByPUUID(puuid, limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, gin.H{
		"total":     len(masteries),
		"masteries": masteries,
	})
}

func (s *HTTPServer) handleMasterySummary(c *gin.Context) {
	puuid := c.Param("puuid")

	summary, err := s.services.Masteries.Summarize(puuid)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, summary)
}

func (s *HTTPServer) handleMasteryByChampion(c *gin.Context) {
	puuid := c.Param("puuid")
	championID, err := strconv.Atoi(c.Param("championId"))
	if err != nil {
		s.error(c, http.StatusBadRequest, "championId must be an integer")
		return
	}

	mastery, err := s.services.Masteries.GetByChampion(puuid, championID)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if mastery == nil {
		s.error(c, http.StatusNotFound, "no mastery record for champion")
		return
	}

	s.success(c, mastery)
}

// enhancedMastery joins one mastery record with the player's recent
// performance on the same champion.
type enhancedMastery struct {
	ChampionID      int        `json:"champion_id"`
	ChampionName    string     `json:"champion_name"`
	MasteryLevel    int        `json:"mastery_level"`
	MasteryPoints   int        `json:"mastery_points"`
	PointsUntilNext int        `json:"points_until_next_level"`
	ChestGranted    bool       `json:"chest_granted"`
	TokensEarned    int        `json:"tokens_earned"`
	LastPlayTime    *time.Time `json:"last_play_time,omitempty"`
	TotalGames      int        `json:"total_games"`
	Wins            int        `json:"wins"`
	Losses          int        `json:"losses"`
	WinRate         float64    `json:"win_rate"`
	AvgKDA          float64    `json:"avg_kda"`
	AvgCSPerMin     float64    `json:"avg_cs_per_min"`
	LastPlayed      *time.Time `json:"last_played_match,omitempty"`
}

func (s *HTTPServer) handleEnhancedMasteries(c *gin.Context) {
	puuid := c.Param("puuid")
	limit := queryInt(c, "limit", 10)
	days := queryDays(c)

	masteries, err := s.services.Masteries.ListByPUUID(puuid, limit)
	if err != nil {
		s.internalError(c, err)
		return
	}
	summary, err := s.services.Masteries.Summarize(puuid)
	if err != nil {
		s.internalError(c, err)
		return
	}

	// Performance data is an enrichment; when it cannot be computed the
	// masteries are still served with zeroed performance fields.
	performance, err := s.services.Analytics.GetChampionPerformance(c.Request.Context(), puuid, days)
	if err != nil {
		logx.Warn("Champion performance unavailable for %s: %v", puuid, err)
		performance = nil
	}
	byChampion := make(map[int]service.ChampionPerformance, len(performance))
	for _, p := range performance {
		byChampion[p.ChampionID] = p
	}

	enhanced := make([]enhancedMastery, 0, len(masteries))
	for _, m := range masteries {
		e := enhancedMastery{
			ChampionID:      m.ChampionID,
			MasteryLevel:    m.MasteryLevel,
			MasteryPoints:   m.MasteryPoints,
			PointsUntilNext: m.PointsUntilNext,
			ChestGranted:    m.ChestGranted,
			TokensEarned:    m.TokensEarned,
			LastPlayTime:    m.LastPlayTime,
		}
		if p, ok := byChampion[m.ChampionID]; ok {
			e.ChampionName = p.ChampionName
			e.TotalGames = p.TotalGames
			e.Wins = p.Wins
			e.Losses = p.Losses
			e.WinRate = p.WinRate
			e.AvgKDA = p.AvgKDA
			e.AvgCSPerMin = p.AvgCSPerMin
			lastPlayed := p.LastPlayed
			e.LastPlayed = &lastPlayed
		}
		if e.ChampionName == "" {
			e.ChampionName = s.services.ChampionData.GetChampionName(c.Request.Context(), m.ChampionID)
		}
		enhanced = append(enhanced, e)
	}

	s.success(c, gin.H{
		"masteries":   enhanced,
		"summary":     summary,
		"total_count": len(enhanced),
	})
}

func (s *HTTPServer) handleMasteryRefresh(c *gin.Context) {
	puuid := c.Param("puuid")
	region := queryRegion(c)

	masteries, err := s.services.Masteries.FetchAndStore(c.Request.Context(), puuid, region)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	s.success(c, gin.H{
		"total":     len(masteries),
		"masteries": masteries,
	})
}

package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Dendekky/gamelytics-ai/internal/cache"
	"github.com/Dendekky/gamelytics-ai/internal/config"
	"github.com/Dendekky/gamelytics-ai/internal/model"
)

// Trend labels.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// minTrendMatches is the smallest sample a trend is computed from.
const minTrendMatches = 5

// AnalyticsService computes windowed performance statistics over stored
// match records. Every computation is a pure function of (puuid, day
// window) and is memoized with a TTL matched to its staleness
// tolerance.
type AnalyticsService struct {
	db      *gorm.DB
	cache   *cache.Cache
	scoring config.ScoringConfig
	ttl     time.Duration
}

// NewAnalyticsService creates the service.
func NewAnalyticsService(db *gorm.DB, c *cache.Cache, scoring config.ScoringConfig, ttl time.Duration) *AnalyticsService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AnalyticsService{db: db, cache: c, scoring: scoring, ttl: ttl}
}

// matchRow pairs a match with the player's participant line.
type matchRow struct {
	Match       model.Match
	Participant model.MatchParticipant
}

// rowsInWindow loads the player's matches within the last `days` days,
// newest first.
func (s *AnalyticsService) rowsInWindow(puuid string, days int) ([]matchRow, error) {
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}
	threshold := time.Now().AddDate(0, 0, -days)

	var participants []model.MatchParticipant
	err := s.db.
		Joins("JOIN matches ON matches.match_id = match_participants.match_id").
		Where("match_participants.puuid = ? AND matches.game_creation >= ?", puuid, threshold).
		Order("matches.game_creation DESC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	rows := make([]matchRow, 0, len(participants))
	for _, p := range participants {
		var match model.Match
		if err := s.db.Where("match_id = ?", p.MatchID).First(&match).Error; err != nil {
			return nil, err
		}
		rows = append(rows, matchRow{Match: match, Participant: p})
	}
	return rows, nil
}

// OverviewStats is a player's aggregate performance over a window.
type OverviewStats struct {
	TotalGames         int     `json:"total_games"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	WinRate            float64 `json:"win_rate"`
	AvgKDA             float64 `json:"avg_kda"`
	AvgKills           float64 `json:"avg_kills"`
	AvgDeaths          float64 `json:"avg_deaths"`
	AvgAssists         float64 `json:"avg_assists"`
	AvgCSPerMin        float64 `json:"avg_cs_per_min"`
	AvgVisionScore     float64 `json:"avg_vision_score"`
	TotalPlaytimeHours float64 `json:"total_playtime_hours"`
	TimeframeDays      int     `json:"timeframe_days"`
}

// GetOverviewStats computes overview statistics for the last `days`
// days. An empty window yields a zeroed result.
func (s *AnalyticsService) GetOverviewStats(ctx context.Context, puuid string, days int) (*OverviewStats, error) {
	return cache.CallWithCache(ctx, s.cache, "analytics:overview", s.ttl, func(ctx context.Context) (*OverviewStats, error) {
		return s.computeOverviewStats(puuid, days)
	}, puuid, days)
}

func (s *AnalyticsService) computeOverviewStats(puuid string, days int) (*OverviewStats, error) {
	rows, err := s.rowsInWindow(puuid, days)
	if err != nil {
		return nil, err
	}

	stats := &OverviewStats{TimeframeDays: days}
	if len(rows) == 0 {
		return stats, nil
	}

	total := len(rows)
	totalKills, totalDeaths, totalAssists := 0, 0, 0
	visionScores := make([]float64, 0, total)
	csPerMin := make([]float64, 0, total)
	playtimeSeconds := 0

	for _, row := range rows {
		p := row.Participant
		if p.Win {
			stats.Wins++
		}
		totalKills += p.Kills
		totalDeaths += p.Deaths
		totalAssists += p.Assists
		visionScores = append(visionScores, float64(p.VisionScore))

		// Zero duration matches are excluded from per-minute rates
		// instead of dividing by zero.
		if row.Match.GameDuration > 0 {
			csPerMin = append(csPerMin, float64(p.TotalMinionsKilled)/(float64(row.Match.GameDuration)/60))
			playtimeSeconds += row.Match.GameDuration
		}
	}

	stats.TotalGames = total
	stats.Losses = total - stats.Wins
	stats.WinRate = round1(float64(stats.Wins) / float64(total) * 100)

	avgKills := float64(totalKills) / float64(total)
	avgDeaths := float64(totalDeaths) / float64(total)
	avgAssists := float64(totalAssists) / float64(total)
	stats.AvgKills = round1(avgKills)
	stats.AvgDeaths = round1(avgDeaths)
	stats.AvgAssists = round1(avgAssists)
	if avgDeaths > 0 {
		stats.AvgKDA = round2((avgKills + avgAssists) / avgDeaths)
	} else {
		stats.AvgKDA = round2(avgKills + avgAssists)
	}

	stats.AvgCSPerMin = round1(mean(csPerMin))
	stats.AvgVisionScore = round1(mean(visionScores))
	stats.TotalPlaytimeHours = round1(float64(playtimeSeconds) / 3600)

	return stats, nil
}

// ChampionPerformance is per-champion aggregate performance.
type ChampionPerformance struct {
	ChampionName       string    `json:"champion_name"`
	ChampionID         int       `json:"champion_id"`
	TotalGames         int       `json:"total_games"`
	Wins               int       `json:"wins"`
	Losses             int       `json:"losses"`
	WinRate            float64   `json:"win_rate"`
	AvgKDA             float64   `json:"avg_kda"`
	AvgKills           float64   `json:"avg_kills"`
	AvgDeaths          float64   `json:"avg_deaths"`
	AvgAssists         float64   `json:"avg_assists"`
	AvgCSPerMin        float64   `json:"avg_cs_per_min"`
	AvgDamageToChamps  float64   `json:"avg_damage_to_champions"`
	AvgVisionScore     float64   `json:"avg_vision_score"`
	LastPlayed         time.Time `json:"last_played"`
}

// GetChampionPerformance computes per-champion statistics, most played
// first.
func (s *AnalyticsService) GetChampionPerformance(ctx context.Context, puuid string, days int) ([]ChampionPerformance, error) {
	return cache.CallWithCache(ctx, s.cache, "analytics:champions", s.ttl, func(ctx context.Context) ([]ChampionPerformance, error) {
		return s.computeChampionPerformance(puuid, days)
	}, puuid, days)
}

func (s *AnalyticsService) computeChampionPerformance(puuid string, days int) ([]ChampionPerformance, error) {
	rows, err := s.rowsInWindow(puuid, days)
	if err != nil {
		return nil, err
	}

	byChampion := make(map[string][]matchRow)
	for _, row := range rows {
		byChampion[row.Participant.ChampionName] = append(byChampion[row.Participant.ChampionName], row)
	}

	performance := make([]ChampionPerformance, 0, len(byChampion))
	for name, champRows := range byChampion {
		perf := ChampionPerformance{
			ChampionName: name,
			ChampionID:   champRows[0].Participant.ChampionID,
			TotalGames:   len(champRows),
		}

		kills := make([]float64, 0, len(champRows))
		deaths := make([]float64, 0, len(champRows))
		assists := make([]float64, 0, len(champRows))
		damage := make([]float64, 0, len(champRows))
		vision := make([]float64, 0, len(champRows))
		csPerMin := make([]float64, 0, len(champRows))

		for _, row := range champRows {
			p := row.Participant
			if p.Win {
				perf.Wins++
			}
			kills = append(kills, float64(p.Kills))
			deaths = append(deaths, float64(p.Deaths))
			assists = append(assists, float64(p.Assists))
			damage = append(damage, float64(p.TotalDamageDealtToChampions))
			vision = append(vision, float64(p.VisionScore))
			if row.Match.GameDuration > 0 {
				csPerMin = append(csPerMin, float64(p.TotalMinionsKilled)/(float64(row.Match.GameDuration)/60))
			}
			if row.Match.GameCreation.After(perf.LastPlayed) {
				perf.LastPlayed = row.Match.GameCreation
			}
		}

		perf.Losses = perf.TotalGames - perf.Wins
		perf.WinRate = round1(float64(perf.Wins) / float64(perf.TotalGames) * 100)
		avgKills, avgDeaths, avgAssists := mean(kills), mean(deaths), mean(assists)
		perf.AvgKills = round1(avgKills)
		perf.AvgDeaths = round1(avgDeaths)
		perf.AvgAssists = round1(avgAssists)
		if avgDeaths > 0 {
			perf.AvgKDA = round2((avgKills + avgAssists) / avgDeaths)
		} else {
			perf.AvgKDA = round2(avgKills + avgAssists)
		}
		perf.AvgCSPerMin = round1(mean(csPerMin))
		perf.AvgDamageToChamps = round1(mean(damage))
		perf.AvgVisionScore = round1(mean(vision))

		performance = append(performance, perf)
	}

	sort.Slice(performance, func(i, j int) bool {
		return performance[i].TotalGames > performance[j].TotalGames
	})

	return performance, nil
}

// TrendPoint is one day's aggregate in the trend series.
type TrendPoint struct {
	Date        string  `json:"date"`
	TotalGames  int     `json:"total_games"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
	AvgKDA      float64 `json:"avg_kda"`
	AvgCSPerMin float64 `json:"avg_cs_per_min"`
}

// TrendResult is the trend series plus direction labels per metric.
type TrendResult struct {
	TrendData    []TrendPoint `json:"trend_data"`
	WinRateTrend string       `json:"win_rate_trend"`
	KDATrend     string       `json:"kda_trend"`
	CSTrend      string       `json:"cs_trend"`
}

// GetPerformanceTrends computes daily aggregates and labels the
// direction of each metric by comparing the first and second half of
// the series. Fewer than 5 matches in the window yields
// insufficient_data.
func (s *AnalyticsService) GetPerformanceTrends(ctx context.Context, puuid string, days int) (*TrendResult, error) {
	return cache.CallWithCache(ctx, s.cache, "analytics:trends", s.ttl, func(ctx context.Context) (*TrendResult, error) {
		return s.computePerformanceTrends(puuid, days)
	}, puuid, days)
}

func (s *AnalyticsService) computePerformanceTrends(puuid string, days int) (*TrendResult, error) {
	rows, err := s.rowsInWindow(puuid, days)
	if err != nil {
		return nil, err
	}

	if len(rows) < minTrendMatches {
		return &TrendResult{
			TrendData:    []TrendPoint{},
			WinRateTrend: TrendInsufficientData,
			KDATrend:     TrendInsufficientData,
			CSTrend:      TrendInsufficientData,
		}, nil
	}

	// Chronological order for the half split.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Match.GameCreation.Before(rows[j].Match.GameCreation)
	})

	byDay := make(map[string][]matchRow)
	dayKeys := make([]string, 0)
	for _, row := range rows {
		key := row.Match.GameCreation.Format("2006-01-02")
		if _, seen := byDay[key]; !seen {
			dayKeys = append(dayKeys, key)
		}
		byDay[key] = append(byDay[key], row)
	}
	sort.Strings(dayKeys)

	trendData := make([]TrendPoint, 0, len(dayKeys))
	for _, key := range dayKeys {
		dayRows := byDay[key]
		point := TrendPoint{Date: key, TotalGames: len(dayRows)}

		kdas := make([]float64, 0, len(dayRows))
		cs := make([]float64, 0, len(dayRows))
		for _, row := range dayRows {
			p := row.Participant
			if p.Win {
				point.Wins++
			}
			kdas = append(kdas, kda(p.Kills, p.Deaths, p.Assists))
			if row.Match.GameDuration > 0 {
				cs = append(cs, float64(p.TotalMinionsKilled)/(float64(row.Match.GameDuration)/60))
			}
		}

		point.WinRate = round1(float64(point.Wins) / float64(point.TotalGames) * 100)
		point.AvgKDA = round2(mean(kdas))
		point.AvgCSPerMin = round1(mean(cs))
		trendData = append(trendData, point)
	}

	result := &TrendResult{TrendData: trendData}
	if len(trendData) < 2 {
		result.WinRateTrend = TrendInsufficientData
		result.KDATrend = TrendInsufficientData
		result.CSTrend = TrendInsufficientData
		return result, nil
	}

	mid := len(trendData) / 2
	first, second := trendData[:mid], trendData[mid:]

	result.WinRateTrend = direction(
		mean(collect(first, func(p TrendPoint) float64 { return p.WinRate })),
		mean(collect(second, func(p TrendPoint) float64 { return p.WinRate })),
	)
	result.KDATrend = direction(
		mean(collect(first, func(p TrendPoint) float64 { return p.AvgKDA })),
		mean(collect(second, func(p TrendPoint) float64 { return p.AvgKDA })),
	)
	result.CSTrend = direction(
		mean(collect(first, func(p TrendPoint) float64 { return p.AvgCSPerMin })),
		mean(collect(second, func(p TrendPoint) float64 { return p.AvgCSPerMin })),
	)

	return result, nil
}

// direction labels a strict comparison of half means.
func direction(first, second float64) string {
	switch {
	case second > first:
		return TrendImproving
	case second < first:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func collect(points []TrendPoint, f func(TrendPoint) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = f(p)
	}
	return out
}

// StyleMetrics are normalized 0-10 play style scores.
type StyleMetrics struct {
	Aggression    float64 `json:"aggression"`
	Farming       float64 `json:"farming"`
	Survivability float64 `json:"survivability"`
	Vision        float64 `json:"vision"`
	Versatility   float64 `json:"versatility"`
	Consistency   float64 `json:"consistency"`
}

// GetStyleMetrics computes the 0-10 style scores. The coefficients are
// tuning constants from config, not structural contracts.
func (s *AnalyticsService) GetStyleMetrics(ctx context.Context, puuid string, days int) (*StyleMetrics, error) {
	return cache.CallWithCache(ctx, s.cache, "analytics:styles", s.ttl, func(ctx context.Context) (*StyleMetrics, error) {
		return s.computeStyleMetrics(puuid, days)
	}, puuid, days)
}

func (s *AnalyticsService) computeStyleMetrics(puuid string, days int) (*StyleMetrics, error) {
	rows, err := s.rowsInWindow(puuid, days)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &StyleMetrics{}, nil
	}

	cfg := s.scoring
	total := len(rows)

	kills := make([]float64, 0, total)
	deaths := make([]float64, 0, total)
	damage := make([]float64, 0, total)
	vision := make([]float64, 0, total)
	kdas := make([]float64, 0, total)
	csPerMin := make([]float64, 0, total)
	champions := make(map[string]struct{})
	wins := 0

	for _, row := range rows {
		p := row.Participant
		kills = append(kills, float64(p.Kills))
		deaths = append(deaths, float64(p.Deaths))
		damage = append(damage, float64(p.TotalDamageDealtToChampions))
		vision = append(vision, float64(p.VisionScore))
		kdas = append(kdas, kda(p.Kills, p.Deaths, p.Assists))
		if row.Match.GameDuration > 0 {
			csPerMin = append(csPerMin, float64(p.TotalMinionsKilled)/(float64(row.Match.GameDuration)/60))
		}
		champions[p.ChampionName] = struct{}{}
		if p.Win {
			wins++
		}
	}

	aggression := clamp((mean(kills)*cfg.AggressionKillWeight+mean(damage)/cfg.AggressionDamageScale)/2, 0, 10)
	farming := clamp(mean(csPerMin)/cfg.FarmingCSBaseline*10, 0, 10)
	survivability := clamp(10-(mean(deaths)-cfg.SurvivabilityDeathBase)*cfg.SurvivabilityPenalty, 0, 10)
	visionScore := clamp(mean(vision)/cfg.VisionBaseline*10, 0, 10)
	versatility := clamp(float64(len(champions))/cfg.VersatilityPoolSize*10, 0, 10)

	winRate := float64(wins) / float64(total)
	penalty := clamp(stddev(kdas)*cfg.ConsistencyVarPenalty, 0, cfg.ConsistencyMaxPenalty)
	consistency := clamp(winRate*10-penalty, 0, 10)

	return &StyleMetrics{
		Aggression:    round1(aggression),
		Farming:       round1(farming),
		Survivability: round1(survivability),
		Vision:        round1(visionScore),
		Versatility:   round1(versatility),
		Consistency:   round1(consistency),
	}, nil
}

// MatchPerformance is one recent match with derived metrics and a
// heuristic performance score.
type MatchPerformance struct {
	MatchID          string    `json:"match_id"`
	GameCreation     time.Time `json:"game_creation"`
	DurationMinutes  float64   `json:"duration_minutes"`
	ChampionName     string    `json:"champion_name"`
	ChampionID       int       `json:"champion_id"`
	Kills            int       `json:"kills"`
	Deaths           int       `json:"deaths"`
	Assists          int       `json:"assists"`
	KDARatio         float64   `json:"kda_ratio"`
	CS               int       `json:"cs"`
	CSPerMin         float64   `json:"cs_per_min"`
	DamageToChamps   int       `json:"damage_to_champions"`
	DamagePerMin     float64   `json:"damage_per_min"`
	VisionScore      int       `json:"vision_score"`
	GoldEarned       int       `json:"gold_earned"`
	Win              bool      `json:"win"`
	PerformanceScore float64   `json:"performance_score"`
	QueueID          int       `json:"queue_id"`
	GameMode         string    `json:"game_mode"`
}

// GetRecentPerformance returns per-match performance for the most
// recent matches.
func (s *AnalyticsService) GetRecentPerformance(ctx context.Context, puuid string, limit int) ([]MatchPerformance, error) {
	return cache.CallWithCache(ctx, s.cache, "analytics:recent", s.ttl, func(ctx context.Context) ([]MatchPerformance, error) {
		return s.computeRecentPerformance(puuid, limit)
	}, puuid, limit)
}

func (s *AnalyticsService) computeRecentPerformance(puuid string, limit int) ([]MatchPerformance, error) {
	if limit <= 0 {
		limit = 10
	}

	var participants []model.MatchParticipant
	err := s.db.
		Joins("JOIN matches ON matches.match_id = match_participants.match_id").
		Where("match_participants.puuid = ?", puuid).
		Order("matches.game_creation DESC").
		Limit(limit).
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	performance := make([]MatchPerformance, 0, len(participants))
	for _, p := range participants {
		var match model.Match
		if err := s.db.Where("match_id = ?", p.MatchID).First(&match).Error; err != nil {
			return nil, err
		}

		csPerMin, damagePerMin := 0.0, 0.0
		if match.GameDuration > 0 {
			minutes := float64(match.GameDuration) / 60
			csPerMin = float64(p.TotalMinionsKilled) / minutes
			damagePerMin = float64(p.TotalDamageDealtToChampions) / minutes
		}

		score := float64(p.Kills)*3 + float64(p.Assists)*1.5 - float64(p.Deaths)*2
		score += (csPerMin - 5) * 2
		score += (float64(p.VisionScore) - 20) * 0.1
		if p.Win {
			score += 10
		}

		performance = append(performance, MatchPerformance{
			MatchID:          match.MatchID,
			GameCreation:     match.GameCreation,
			DurationMinutes:  round1(float64(match.GameDuration) / 60),
			ChampionName:     p.ChampionName,
			ChampionID:       p.ChampionID,
			Kills:            p.Kills,
			Deaths:           p.Deaths,
			Assists:          p.Assists,
			KDARatio:         round2(kda(p.Kills, p.Deaths, p.Assists)),
			CS:               p.TotalMinionsKilled,
			CSPerMin:         round1(csPerMin),
			DamageToChamps:   p.TotalDamageDealtToChampions,
			DamagePerMin:     round1(damagePerMin),
			VisionScore:      p.VisionScore,
			GoldEarned:       p.GoldEarned,
			Win:              p.Win,
			PerformanceScore: round1(score),
			QueueID:          match.QueueID,
			GameMode:         match.GameMode,
		})
	}

	return performance, nil
}

// HeatmapCell is one weekday-hour bucket of play activity.
type HeatmapCell struct {
	Weekday int `json:"weekday"` // 0 = Sunday
	Hour    int `json:"hour"`
	Games   int `json:"games"`
	Wins    int `json:"wins"`
}

// GetActivityHeatmap buckets matches by weekday and hour of day.
// Only buckets with at least one game are returned.
func (s *AnalyticsService) GetActivityHeatmap(ctx context.Context, puuid string, days int) ([]HeatmapCell, error) {
	return cache.CallWithCache(ctx, s.cache, "analytics:heatmap", s.ttl, func(ctx context.Context) ([]HeatmapCell, error) {
		return s.computeActivityHeatmap(puuid, days)
	}, puuid, days)
}

func (s *AnalyticsService) computeActivityHeatmap(puuid string, days int) ([]HeatmapCell, error) {
	rows, err := s.rowsInWindow(puuid, days)
	if err != nil {
		return nil, err
	}

	type bucket struct{ weekday, hour int }
	cells := make(map[bucket]*HeatmapCell)
	for _, row := range rows {
		t := row.Match.GameCreation
		b := bucket{weekday: int(t.Weekday()), hour: t.Hour()}
		cell, ok := cells[b]
		if !ok {
			cell = &HeatmapCell{Weekday: b.weekday, Hour: b.hour}
			cells[b] = cell
		}
		cell.Games++
		if row.Participant.Win {
			cell.Wins++
		}
	}

	out := make([]HeatmapCell, 0, len(cells))
	for _, cell := range cells {
		out = append(out, *cell)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		return out[i].Hour < out[j].Hour
	})
	return out, nil
}

// roleBenchmarks are fixed reference values per position used for the
// role breakdown comparison.
var roleBenchmarks = map[string]RoleBenchmark{
	"TOP":     {AvgCSPerMin: 7.0, AvgKDA: 2.2, AvgVisionScore: 18},
	"JUNGLE":  {AvgCSPerMin: 5.5, AvgKDA: 2.5, AvgVisionScore: 28},
	"MIDDLE":  {AvgCSPerMin: 7.5, AvgKDA: 2.6, AvgVisionScore: 20},
	"BOTTOM":  {AvgCSPerMin: 8.0, AvgKDA: 2.8, AvgVisionScore: 20},
	"UTILITY": {AvgCSPerMin: 1.5, AvgKDA: 2.4, AvgVisionScore: 45},
}

// RoleBenchmark is a reference stat line for a position.
type RoleBenchmark struct {
	AvgCSPerMin    float64 `json:"avg_cs_per_min"`
	AvgKDA         float64 `json:"avg_kda"`
	AvgVisionScore float64 `json:"avg_vision_score"`
}

// RoleStats aggregates a player's games in one position and compares
// them against the position benchmark.
type RoleStats struct {
	Role           string         `json:"role"`
	TotalGames     int            `json:"total_games"`
	Wins           int            `json:"wins"`
	WinRate        float64        `json:"win_rate"`
	AvgKDA         float64        `json:"avg_kda"`
	AvgCSPerMin    float64        `json:"avg_cs_per_min"`
	AvgVisionScore float64        `json:"avg_vision_score"`
	Benchmark      *RoleBenchmark `json:"benchmark,omitempty"`
}

// GetRoleBreakdown aggregates performance per team position, most
// played first.
func (s *AnalyticsService) GetRoleBreakdown(ctx context.Context, puuid string, days int) ([]RoleStats, error) {
	return cache.CallWithCache(ctx, s.cache, "analytics:roles", s.ttl, func(ctx context.Context) ([]RoleStats, error) {
		return s.computeRoleBreakdown(puuid, days)
	}, puuid, days)
}

func (s *AnalyticsService) computeRoleBreakdown(puuid string, days int) ([]RoleStats, error) {
	rows, err := s.rowsInWindow(puuid, days)
	if err != nil {
		return nil, err
	}

	byRole := make(map[string][]matchRow)
	for _, row := range rows {
		role := row.Participant.TeamPosition
		if role == "" {
			role = "UNKNOWN"
		}
		byRole[role] = append(byRole[role], row)
	}

	out := make([]RoleStats, 0, len(byRole))
	for role, roleRows := range byRole {
		stats := RoleStats{Role: role, TotalGames: len(roleRows)}

		kdas := make([]float64, 0, len(roleRows))
		cs := make([]float64, 0, len(roleRows))
		vision := make([]float64, 0, len(roleRows))
		for _, row := range roleRows {
			p := row.Participant
			if p.Win {
				stats.Wins++
			}
			kdas = append(kdas, kda(p.Kills, p.Deaths, p.Assists))
			vision = append(vision, float64(p.VisionScore))
			if row.Match.GameDuration > 0 {
				cs = append(cs, float64(p.TotalMinionsKilled)/(float64(row.Match.GameDuration)/60))
			}
		}

		stats.WinRate = round1(float64(stats.Wins) / float64(stats.TotalGames) * 100)
		stats.AvgKDA = round2(mean(kdas))
		stats.AvgCSPerMin = round1(mean(cs))
		stats.AvgVisionScore = round1(mean(vision))
		if benchmark, ok := roleBenchmarks[role]; ok {
			b := benchmark
			stats.Benchmark = &b
		}

		out = append(out, stats)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalGames > out[j].TotalGames
	})
	return out, nil
}

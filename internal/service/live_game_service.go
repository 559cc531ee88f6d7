package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"gorm.io/gorm"

	"github.com/Dendekky/gamelytics-ai/internal/cache"
	"github.com/Dendekky/gamelytics-ai/internal/model"
	"github.com/Dendekky/gamelytics-ai/internal/riot"
)

// Threat levels.
const (
	ThreatLow    = "low"
	ThreatMedium = "medium"
	ThreatHigh   = "high"
)

// monitorBatchLimit caps how many players one monitor call may check.
const monitorBatchLimit = 10

// threatWindowDays is the history window used to rate an opponent.
const threatWindowDays = 30

// ErrBatchTooLarge is returned when a monitor request exceeds the cap.
var ErrBatchTooLarge = fmt.Errorf("at most %d players per monitor request", monitorBatchLimit)

// LiveGameService detects active games and produces scouting reports:
// roster snapshot, per-opponent threat profiles, team level counter
// strategies, and phase recommendations.
type LiveGameService struct {
	db        *gorm.DB
	gateway   RiotGateway
	cache     *cache.Cache
	analytics *AnalyticsService
	ttl       time.Duration
}

// NewLiveGameService creates the service. ttl bounds how long a full
// scouting report is reused before the game is re-polled.
func NewLiveGameService(db *gorm.DB, gateway RiotGateway, c *cache.Cache, analytics *AnalyticsService, ttl time.Duration) *LiveGameService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LiveGameService{db: db, gateway: gateway, cache: c, analytics: analytics, ttl: ttl}
}

// GameInfo is the active game header.
type GameInfo struct {
	GameID      string `json:"game_id"`
	GameMode    string `json:"game_mode"`
	GameType    string `json:"game_type"`
	MapID       int    `json:"map_id"`
	QueueID     int    `json:"queue_id"`
	GameLength  int    `json:"game_length"` // seconds
	PlatformID  string `json:"platform_id"`
}

// TeamMember is one roster entry in a team composition view.
type TeamMember struct {
	RiotID     string `json:"riot_id"`
	PUUID      string `json:"puuid"`
	ChampionID int    `json:"champion_id"`
	Spell1ID   int    `json:"spell1_id"`
	Spell2ID   int    `json:"spell2_id"`
	Role       string `json:"role"`
	Bot        bool   `json:"bot"`
}

// EnemyThreatProfile is the per-opponent scouting result. It is
// recomputed on every analysis call, never persisted.
type EnemyThreatProfile struct {
	RiotID          string   `json:"riot_id"`
	PUUID           string   `json:"puuid"`
	ChampionID      int      `json:"champion_id"`
	Role            string   `json:"role"`
	ThreatLevel     string   `json:"threat_level"`
	ThreatReason    string   `json:"threat_reason"`
	CounterStrategy string   `json:"counter_strategy"`
	WinRateEstimate *float64 `json:"win_rate_estimate,omitempty"`
	AvgKDA          *float64 `json:"avg_kda,omitempty"`
}

// TeamThreatVector aggregates per-role weighted counts across the
// enemy roster.
type TeamThreatVector struct {
	ADDamage        int `json:"ad_damage"`
	APDamage        int `json:"ap_damage"`
	BurstPotential  int `json:"burst_potential"`
	SustainedDamage int `json:"sustained_damage"`
	CrowdControl    int `json:"crowd_control"`
	DivePotential   int `json:"dive_potential"`
	PokePotential   int `json:"poke_potential"`
}

// EnemyAnalysis is the enemy team section of a scouting report.
type EnemyAnalysis struct {
	Profiles     []EnemyThreatProfile `json:"individual_analysis"`
	HighThreats  []EnemyThreatProfile `json:"team_threats"`
	ThreatVector TeamThreatVector     `json:"threat_vector"`
	Strategies   []string             `json:"recommended_strategies"`
}

// GameRecommendations are time sensitive macro suggestions.
type GameRecommendations struct {
	ImmediateActions []string `json:"immediate_actions"`
	MacroStrategy    []string `json:"macro_strategy"`
}

// LiveStatus is the full live game report for one player.
type LiveStatus struct {
	IsInGame        bool                 `json:"is_in_game"`
	GameInfo        *GameInfo            `json:"game_info,omitempty"`
	YourTeam        []TeamMember         `json:"your_team,omitempty"`
	EnemyTeam       []TeamMember         `json:"enemy_team,omitempty"`
	EnemyAnalysis   *EnemyAnalysis       `json:"enemy_analysis,omitempty"`
	Recommendations *GameRecommendations `json:"recommendations,omitempty"`
}

// CheckLiveStatus reports whether the player is in game and, when they
// are, builds the scouting report. Results are cached per
// (puuid, region) so bursty polling from the same client reuses one
// upstream call.
func (s *LiveGameService) CheckLiveStatus(ctx context.Context, puuid, region string) (*LiveStatus, error) {
	return cache.CallWithCache(ctx, s.cache, "live:status", s.ttl, func(ctx context.Context) (*LiveStatus, error) {
		return s.checkLiveStatus(ctx, puuid, region)
	}, puuid, region)
}

func (s *LiveGameService) checkLiveStatus(ctx context.Context, puuid, region string) (*LiveStatus, error) {
	game, err := s.gateway.GetActiveGame(ctx, puuid, region)
	if err != nil {
		return nil, fmt.Errorf("check active game: %w", err)
	}
	if game == nil {
		return &LiveStatus{IsInGame: false}, nil
	}

	if err := s.storeSnapshot(game); err != nil {
		return nil, fmt.Errorf("store live game snapshot: %w", err)
	}

	playerTeam, ok := teamOf(game, puuid)
	if !ok {
		return nil, fmt.Errorf("player %s not in roster of game %d", puuid, game.GameID)
	}

	var allies, enemies []riot.CurrentGameParticipant
	for _, p := range game.Participants {
		if p.TeamID == playerTeam {
			allies = append(allies, p)
		} else {
			enemies = append(enemies, p)
		}
	}

	status := &LiveStatus{
		IsInGame: true,
		GameInfo: &GameInfo{
			GameID:     fmt.Sprintf("%d", game.GameID),
			GameMode:   game.GameMode,
			GameType:   game.GameType,
			MapID:      game.MapID,
			QueueID:    game.GameQueueConfigID,
			GameLength: game.GameLength,
			PlatformID: game.PlatformID,
		},
		YourTeam:        toTeamMembers(allies),
		EnemyTeam:       toTeamMembers(enemies),
		EnemyAnalysis:   s.analyzeEnemyTeam(ctx, enemies),
		Recommendations: gameRecommendations(game.GameLength),
	}
	return status, nil
}

func teamOf(game *riot.CurrentGame, puuid string) (int, bool) {
	for _, p := range game.Participants {
		if p.PUUID == puuid {
			return p.TeamID, true
		}
	}
	return 0, false
}

func toTeamMembers(participants []riot.CurrentGameParticipant) []TeamMember {
	members := make([]TeamMember, 0, len(participants))
	for _, p := range participants {
		members = append(members, TeamMember{
			RiotID:     p.RiotID,
			PUUID:      p.PUUID,
			ChampionID: p.ChampionID,
			Spell1ID:   p.Spell1ID,
			Spell2ID:   p.Spell2ID,
			Role:       ChampionRole(p.ChampionID),
			Bot:        p.Bot,
		})
	}
	return members
}

// storeSnapshot upserts the live game and its roster. Re-polling the
// same game id updates existing rows, the latest poll's values win.
func (s *LiveGameService) storeSnapshot(game *riot.CurrentGame) error {
	gameID := fmt.Sprintf("%d", game.GameID)
	raw, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("marshal game payload: %w", err)
	}
	now := time.Now()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var record model.LiveGame
		err := tx.Where("game_id = ?", gameID).First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = model.LiveGame{
				GameID:         gameID,
				PlatformID:     game.PlatformID,
				GameType:       game.GameType,
				GameMode:       game.GameMode,
				MapID:          game.MapID,
				QueueID:        game.GameQueueConfigID,
				GameStartTime:  time.UnixMilli(game.GameStartTime),
				GameLength:     game.GameLength,
				EncryptionKey:  game.Observers.EncryptionKey,
				RawData:        raw,
				LastObservedAt: now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			record.GameLength = game.GameLength
			record.RawData = raw
			record.LastObservedAt = now
			if err := tx.Save(&record).Error; err != nil {
				return err
			}
		}

		for i := range game.Participants {
			if err := upsertLiveParticipant(tx, gameID, &game.Participants[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertLiveParticipant(tx *gorm.DB, gameID string, p *riot.CurrentGameParticipant) error {
	perks, err := json.Marshal(p.Perks)
	if err != nil {
		return fmt.Errorf("marshal perks: %w", err)
	}

	var record model.LiveGameParticipant
	err = tx.Where("game_id = ? AND puuid = ?", gameID, p.PUUID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = model.LiveGameParticipant{GameID: gameID, PUUID: p.PUUID}
	} else if err != nil {
		return err
	}

	record.SummonerID = p.SummonerID
	record.RiotID = p.RiotID
	record.TeamID = p.TeamID
	record.ChampionID = p.ChampionID
	record.Spell1ID = p.Spell1ID
	record.Spell2ID = p.Spell2ID
	record.PerkMainStyle = int(p.Perks.PerkStyle)
	record.PerkSubStyle = int(p.Perks.PerkSubStyle)
	record.Perks = perks
	record.Bot = p.Bot

	if record.ID == 0 {
		return tx.Create(&record).Error
	}
	return tx.Save(&record).Error
}

// analyzeEnemyTeam fans the per-opponent analysis out concurrently and
// gathers all results before aggregating. A failed lookup degrades
// that one opponent to a default profile, it never aborts the batch.
func (s *LiveGameService) analyzeEnemyTeam(ctx context.Context, enemies []riot.CurrentGameParticipant) *EnemyAnalysis {
	profiles := make([]EnemyThreatProfile, len(enemies))

	var wg sync.WaitGroup
	for i := range enemies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			profile, err := s.analyzeEnemy(ctx, &enemies[i])
			if err != nil {
				logx.Warn("Enemy analysis failed for %s, using default profile: %v", enemies[i].PUUID, err)
				profile = defaultThreatProfile(&enemies[i])
			}
			profiles[i] = *profile
		}(i)
	}
	wg.Wait()

	analysis := &EnemyAnalysis{Profiles: profiles}
	championIDs := make([]int, 0, len(enemies))
	for _, p := range enemies {
		championIDs = append(championIDs, p.ChampionID)
	}
	for _, profile := range profiles {
		if profile.ThreatLevel == ThreatHigh {
			analysis.HighThreats = append(analysis.HighThreats, profile)
		}
	}
	analysis.ThreatVector = aggregateThreatVector(championIDs)
	analysis.Strategies = teamStrategies(championIDs)
	return analysis
}

// analyzeEnemy rates one opponent from stored history. Unknown players
// keep the medium default with no performance estimate.
func (s *LiveGameService) analyzeEnemy(ctx context.Context, p *riot.CurrentGameParticipant) (*EnemyThreatProfile, error) {
	profile := defaultThreatProfile(p)

	var known model.Summoner
	err := s.db.Where("puuid = ?", p.PUUID).First(&known).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profile, nil
	}
	if err != nil {
		return nil, err
	}

	stats, err := s.analytics.GetOverviewStats(ctx, known.PUUID, threatWindowDays)
	if err != nil {
		return nil, err
	}
	if stats.TotalGames == 0 {
		return profile, nil
	}

	winRate, avgKDA := stats.WinRate, stats.AvgKDA
	profile.WinRateEstimate = &winRate
	profile.AvgKDA = &avgKDA

	switch {
	case winRate > 65 && avgKDA > 2.0:
		profile.ThreatLevel = ThreatHigh
		profile.ThreatReason = fmt.Sprintf("High win rate (%.1f%%) and strong KDA (%.1f)", winRate, avgKDA)
	case winRate > 55 && avgKDA > 1.5:
		profile.ThreatLevel = ThreatMedium
		profile.ThreatReason = fmt.Sprintf("Good performance (WR: %.1f%%, KDA: %.1f)", winRate, avgKDA)
	default:
		profile.ThreatLevel = ThreatLow
		profile.ThreatReason = fmt.Sprintf("Average performance (WR: %.1f%%, KDA: %.1f)", winRate, avgKDA)
	}
	return profile, nil
}

func defaultThreatProfile(p *riot.CurrentGameParticipant) *EnemyThreatProfile {
	return &EnemyThreatProfile{
		RiotID:          p.RiotID,
		PUUID:           p.PUUID,
		ChampionID:      p.ChampionID,
		Role:            ChampionRole(p.ChampionID),
		ThreatLevel:     ThreatMedium,
		ThreatReason:    "No match history available",
		CounterStrategy: counterStrategy(p.ChampionID),
	}
}

// counterStrategies holds canned per-champion advice.
var counterStrategies = map[int]string{
	7:   "Yasuo - Build armor early, avoid fighting in minion waves, CC when tornado is down",
	238: "Zed - Rush Zhonya's/armor, avoid 1v1s post-6, ward flanks",
	91:  "Talon - Ward jungle routes, group early, build armor",
	22:  "Ashe - Engage when arrow is on CD, avoid long-range poke",
	51:  "Caitlyn - Close distance quickly, avoid headshot range",
	119: "Draven - Interrupt axe catches, force team fights",
	555: "Pyke - Avoid low health skirmishes, ward deep, stay grouped",
	412: "Thresh - Dodge hooks, pressure when abilities down",
	86:  "Garen - Kite and poke, avoid extended trades",
	54:  "Malphite - Spread out, avoid grouping for ult",
}

func counterStrategy(championID int) string {
	if strategy, ok := counterStrategies[championID]; ok {
		return strategy
	}
	return "Focus in team fights, avoid 1v1s if behind"
}

// aggregateThreatVector applies fixed per-archetype weights across the
// roster.
func aggregateThreatVector(championIDs []int) TeamThreatVector {
	var v TeamThreatVector
	for _, id := range championIDs {
		switch ChampionRole(id) {
		case RoleADC:
			v.ADDamage += 3
			v.SustainedDamage += 3
		case RoleMage:
			v.APDamage += 3
			v.BurstPotential += 2
			v.PokePotential += 2
		case RoleAssassin:
			v.ADDamage += 2
			v.BurstPotential += 3
			v.DivePotential += 3
		case RoleTank:
			v.CrowdControl += 3
			v.DivePotential += 2
		case RoleSupport:
			v.CrowdControl++
			v.PokePotential++
		case RoleFighter:
			v.ADDamage += 2
			v.SustainedDamage += 2
			v.DivePotential += 2
		}
	}
	return v
}

// teamStrategies derives advice from archetype counts in the roster.
func teamStrategies(championIDs []int) []string {
	var strategies []string
	if countInSet(championIDs, assassinChampions) >= 2 {
		strategies = append(strategies, "Enemy has multiple assassins - group tightly, ward flanks, build defensive")
	}
	if countInSet(championIDs, tankChampions) >= 2 {
		strategies = append(strategies, "Enemy is tank-heavy - build % damage, avoid extended fights")
	}
	if countInSet(championIDs, pokeChampions) >= 2 {
		strategies = append(strategies, "Enemy has poke comp - engage quickly, avoid long sieges")
	}
	if len(strategies) == 0 {
		strategies = []string{
			"Focus enemy carries in team fights",
			"Ward objectives and jungle entrances",
			"Group for objectives after 15 minutes",
		}
	}
	return strategies
}

func gameRecommendations(gameLengthSeconds int) *GameRecommendations {
	minutes := gameLengthSeconds / 60

	rec := &GameRecommendations{
		MacroStrategy: []string{
			"Prioritize objectives over kills",
			"Maintain vision control around objectives",
			"Group when you have item advantages",
		},
	}
	switch {
	case minutes < 5:
		rec.ImmediateActions = []string{
			"Focus on farming and avoiding trades",
			"Ward river bushes for jungle tracking",
			"Look for level 2-3 power spikes",
		}
	case minutes < 15:
		rec.ImmediateActions = []string{
			"Contest scuttle crabs for vision",
			"Coordinate with jungler for ganks",
			"Prepare for dragon fights",
		}
	default:
		rec.ImmediateActions = []string{
			"Group with team for objectives",
			"Ward baron and dragon pits",
			"Look for picks on isolated enemies",
		}
	}
	return rec
}

// MonitorResult is one player's outcome in a batch monitor call.
type MonitorResult struct {
	Status *LiveStatus `json:"status,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// MonitorPlayers checks several players concurrently and reports each
// outcome per puuid. One player's failure never aborts the batch.
func (s *LiveGameService) MonitorPlayers(ctx context.Context, puuids []string, region string) (map[string]MonitorResult, error) {
	if len(puuids) > monitorBatchLimit {
		return nil, ErrBatchTooLarge
	}

	type outcome struct {
		puuid  string
		status *LiveStatus
		err    error
	}

	results := make(chan outcome, len(puuids))
	var wg sync.WaitGroup
	for _, puuid := range puuids {
		wg.Add(1)
		go func(puuid string) {
			defer wg.Done()
			status, err := s.CheckLiveStatus(ctx, puuid, region)
			results <- outcome{puuid: puuid, status: status, err: err}
		}(puuid)
	}
	wg.Wait()
	close(results)

	out := make(map[string]MonitorResult, len(puuids))
	for result := range results {
		if result.err != nil {
			out[result.puuid] = MonitorResult{Error: result.err.Error()}
			continue
		}
		out[result.puuid] = MonitorResult{Status: result.status}
	}
	return out, nil
}

// GetFeaturedGames proxies the featured games list for a region.
func (s *LiveGameService) GetFeaturedGames(ctx context.Context, region string) (*riot.FeaturedGames, error) {
	return s.gateway.GetFeaturedGames(ctx, region)
}

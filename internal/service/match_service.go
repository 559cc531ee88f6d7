package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/Dendekky/gamelytics-ai/internal/model"
	"github.com/Dendekky/gamelytics-ai/internal/riot"
)

// MatchService manages stored match history.
type MatchService struct {
	db      *gorm.DB
	gateway RiotGateway
}

// NewMatchService creates the service.
func NewMatchService(db *gorm.DB, gateway RiotGateway) *MatchService {
	return &MatchService{db: db, gateway: gateway}
}

// GetByMatchID returns the stored match, or nil when unknown.
func (s *MatchService) GetByMatchID(matchID string) (*model.Match, error) {
	var match model.Match
	if err := s.db.Where("match_id = ?", matchID).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

// ListByPUUID returns matches a player took part in, newest first.
func (s *MatchService) ListByPUUID(puuid string, limit, offset int) ([]model.Match, error) {
	var matches []model.Match
	err := s.db.
		Joins("JOIN match_participants ON match_participants.match_id = matches.match_id").
		Where("match_participants.puuid = ?", puuid).
		Order("matches.game_creation DESC").
		Limit(limit).
		Offset(offset).
		Find(&matches).Error
	return matches, err
}

// GetParticipant returns one player's line in a match, or nil.
func (s *MatchService) GetParticipant(matchID, puuid string) (*model.MatchParticipant, error) {
	var participant model.MatchParticipant
	err := s.db.Where("match_id = ? AND puuid = ?", matchID, puuid).First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &participant, nil
}

// StoreMatch persists a match payload and all its participants inside
// one transaction. A match already stored is returned as-is.
func (s *MatchService) StoreMatch(payload *riot.Match) (*model.Match, error) {
	existing, err := s.GetByMatchID(payload.Metadata.MatchID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	info := payload.Info

	winningTeam := 0
	for _, team := range info.Teams {
		if team.Win {
			winningTeam = team.TeamID
			break
		}
	}

	teamsData, err := json.Marshal(info.Teams)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize teams: %w", err)
	}

	match := &model.Match{
		MatchID:      payload.Metadata.MatchID,
		GameCreation: time.UnixMilli(info.GameCreation),
		GameDuration: info.GameDuration,
		GameMode:     info.GameMode,
		GameType:     info.GameType,
		GameVersion:  info.GameVersion,
		MapID:        info.MapID,
		PlatformID:   info.PlatformID,
		QueueID:      info.QueueID,
		WinningTeam:  winningTeam,
		TeamsData:    teamsData,
	}
	if info.GameStartTimestamp > 0 {
		t := time.UnixMilli(info.GameStartTimestamp)
		match.GameStart = &t
	}
	if info.GameEndTimestamp > 0 {
		t := time.UnixMilli(info.GameEndTimestamp)
		match.GameEnd = &t
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(match).Error; err != nil {
			return fmt.Errorf("failed to store match: %w", err)
		}
		for i := range info.Participants {
			participant := toParticipantRecord(match.MatchID, &info.Participants[i])
			if err := tx.Create(participant).Error; err != nil {
				return fmt.Errorf("failed to store participant: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// toParticipantRecord maps an upstream participant line to its record.
func toParticipantRecord(matchID string, p *riot.MatchParticipant) *model.MatchParticipant {
	items, _ := json.Marshal(map[string]int{
		"item0": p.Item0, "item1": p.Item1, "item2": p.Item2,
		"item3": p.Item3, "item4": p.Item4, "item5": p.Item5,
		"item6": p.Item6,
	})

	return &model.MatchParticipant{
		MatchID:       matchID,
		PUUID:         p.PUUID,
		ParticipantID: p.ParticipantID,
		TeamID:        p.TeamID,

		ChampionID:     p.ChampionID,
		ChampionName:   p.ChampionName,
		ChampionLevel:  p.ChampLevel,
		TeamPosition:   p.TeamPosition,
		SummonerSpell1: p.Summoner1ID,
		SummonerSpell2: p.Summoner2ID,

		Kills:       p.Kills,
		Deaths:      p.Deaths,
		Assists:     p.Assists,
		DoubleKills: p.DoubleKills,
		TripleKills: p.TripleKills,
		QuadraKills: p.QuadraKills,
		PentaKills:  p.PentaKills,

		TotalDamageDealt:            p.TotalDamageDealt,
		TotalDamageDealtToChampions: p.TotalDamageDealtToChampions,
		TotalDamageTaken:            p.TotalDamageTaken,
		MagicDamageDealt:            p.MagicDamageDealt,
		PhysicalDamageDealt:         p.PhysicalDamageDealt,
		TrueDamageDealt:             p.TrueDamageDealt,

		GoldEarned:           p.GoldEarned,
		TotalMinionsKilled:   p.TotalMinionsKilled,
		NeutralMinionsKilled: p.NeutralMinionsKilled,

		VisionScore:           p.VisionScore,
		WardsPlaced:           p.WardsPlaced,
		WardsKilled:           p.WardsKilled,
		ControlWardsPurchased: p.DetectorWardsPlaced,

		TurretKills:    p.TurretKills,
		InhibitorKills: p.InhibitorKills,
		DragonKills:    p.DragonKills,
		BaronKills:     p.BaronKills,

		LargestKillingSpree: p.LargestKillingSpree,
		LargestMultiKill:    p.LargestMultiKill,
		TotalTimeCCDealt:    p.TotalTimeCCDealt,

		Win:   p.Win,
		Items: items,
	}
}

// FetchAndStoreRecent pulls up to count recent matches from the API and
// stores the ones not already present.
func (s *MatchService) FetchAndStoreRecent(ctx context.Context, puuid, region string, count int) ([]model.Match, error) {
	matchIDs, err := s.gateway.GetMatchIDs(ctx, puuid, region, count)
	if err != nil {
		return nil, err
	}

	stored := make([]model.Match, 0, len(matchIDs))
	for _, matchID := range matchIDs {
		existing, err := s.GetByMatchID(matchID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			stored = append(stored, *existing)
			continue
		}

		payload, err := s.gateway.GetMatch(ctx, matchID, region)
		if err != nil {
			return nil, err
		}
		if payload == nil {
			logx.Warn("Match %s listed but not found, skipping", matchID)
			continue
		}

		match, err := s.StoreMatch(payload)
		if err != nil {
			return nil, err
		}
		stored = append(stored, *match)
	}

	return stored, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/Dendekky/gamelytics-ai/internal/model"
	"github.com/Dendekky/gamelytics-ai/internal/riot"
)

// MasteryService manages champion mastery records.
type MasteryService struct {
	db      *gorm.DB
	gateway RiotGateway
}

// NewMasteryService creates the service.
func NewMasteryService(db *gorm.DB, gateway RiotGateway) *MasteryService {
	return &MasteryService{db: db, gateway: gateway}
}

// ListByPUUID returns mastery records ordered by points. limit <= 0
// means no limit.
func (s *MasteryService) ListByPUUID(puuid string, limit int) ([]model.ChampionMastery, error) {
	query := s.db.Where("puuid = ?", puuid).Order("mastery_points DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var masteries []model.ChampionMastery
	err := query.Find(&masteries).Error
	return masteries, err
}

// GetByChampion returns one champion's mastery record, or nil.
func (s *MasteryService) GetByChampion(puuid string, championID int) (*model.ChampionMastery, error) {
	var mastery model.ChampionMastery
	err := s.db.Where("puuid = ? AND champion_id = ?", puuid, championID).First(&mastery).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mastery, nil
}

// upsert stores or updates one mastery entry keyed by (puuid, champion).
func (s *MasteryService) upsert(puuid string, entry *riot.ChampionMastery) (*model.ChampionMastery, error) {
	var lastPlay *time.Time
	if entry.LastPlayTime > 0 {
		t := time.UnixMilli(entry.LastPlayTime)
		lastPlay = &t
	}

	existing, err := s.GetByChampion(puuid, entry.ChampionID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		mastery := &model.ChampionMastery{
			PUUID:           puuid,
			ChampionID:      entry.ChampionID,
			MasteryLevel:    entry.ChampionLevel,
			MasteryPoints:   entry.ChampionPoints,
			PointsUntilNext: entry.ChampionPointsUntilNextLevel,
			ChestGranted:    entry.ChestGranted,
			TokensEarned:    entry.TokensEarned,
			LastPlayTime:    lastPlay,
		}
		if err := s.db.Create(mastery).Error; err != nil {
			return nil, err
		}
		return mastery, nil
	}

	existing.MasteryLevel = entry.ChampionLevel
	existing.MasteryPoints = entry.ChampionPoints
	existing.PointsUntilNext = entry.ChampionPointsUntilNextLevel
	existing.ChestGranted = entry.ChestGranted
	existing.TokensEarned = entry.TokensEarned
	existing.LastPlayTime = lastPlay

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// FetchAndStore pulls all mastery entries from the API and upserts them.
func (s *MasteryService) FetchAndStore(ctx context.Context, puuid, region string) ([]model.ChampionMastery, error) {
	entries, err := s.gateway.GetChampionMasteries(ctx, puuid, region)
	if err != nil {
		return nil, err
	}

	stored := make([]model.ChampionMastery, 0, len(entries))
	for i := range entries {
		mastery, err := s.upsert(puuid, &entries[i])
		if err != nil {
			return nil, err
		}
		stored = append(stored, *mastery)
	}

	logx.Info("Stored %d champion masteries for %s", len(stored), puuid)
	return stored, nil
}

// MasterySummary aggregates a player's mastery records.
type MasterySummary struct {
	TotalChampions      int     `json:"total_champions"`
	TotalMasteryPoints  int     `json:"total_mastery_points"`
	Mastery7Count       int     `json:"mastery_7_count"`
	Mastery6Count       int     `json:"mastery_6_count"`
	Mastery5Count       int     `json:"mastery_5_count"`
	AverageMasteryLevel float64 `json:"average_mastery_level"`
	HighestPoints       int     `json:"highest_mastery_points"`
}

// Summarize computes mastery summary statistics. An empty record set
// yields a zeroed summary, not an error.
func (s *MasteryService) Summarize(puuid string) (*MasterySummary, error) {
	masteries, err := s.ListByPUUID(puuid, 0)
	if err != nil {
		return nil, err
	}

	summary := &MasterySummary{TotalChampions: len(masteries)}
	if len(masteries) == 0 {
		return summary, nil
	}

	levelSum := 0
	for _, m := range masteries {
		summary.TotalMasteryPoints += m.MasteryPoints
		levelSum += m.MasteryLevel
		switch m.MasteryLevel {
		case 7:
			summary.Mastery7Count++
		case 6:
			summary.Mastery6Count++
		case 5:
			summary.Mastery5Count++
		}
		if m.MasteryPoints > summary.HighestPoints {
			summary.HighestPoints = m.MasteryPoints
		}
	}
	summary.AverageMasteryLevel = round1(float64(levelSum) / float64(len(masteries)))

	return summary, nil
}

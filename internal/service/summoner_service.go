package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Dendekky/gamelytics-ai/internal/model"
)

// SummonerService manages tracked player accounts.
type SummonerService struct {
	db      *gorm.DB
	gateway RiotGateway
}

// NewSummonerService creates the service.
func NewSummonerService(db *gorm.DB, gateway RiotGateway) *SummonerService {
	return &SummonerService{db: db, gateway: gateway}
}

// GetByPUUID returns the stored summoner, or nil when unknown.
func (s *SummonerService) GetByPUUID(puuid string) (*model.Summoner, error) {
	var summoner model.Summoner
	if err := s.db.Where("puuid = ?", puuid).First(&summoner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summoner, nil
}

// GetBySummonerID returns the stored summoner by its encrypted id, or
// nil when unknown.
func (s *SummonerService) GetBySummonerID(summonerID string) (*model.Summoner, error) {
	var summoner model.Summoner
	if err := s.db.Where("summoner_id = ?", summonerID).First(&summoner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summoner, nil
}

// GetByRiotID returns the stored summoner for gameName#tagLine, or nil.
func (s *SummonerService) GetByRiotID(gameName, tagLine string) (*model.Summoner, error) {
	var summoner model.Summoner
	err := s.db.Where("game_name = ? AND tag_line = ?", gameName, tagLine).First(&summoner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summoner, nil
}

// LookupByRiotID resolves gameName#tagLine through the upstream
// account and summoner endpoints, then upserts the record. Returns nil
// when the account does not exist.
func (s *SummonerService) LookupByRiotID(ctx context.Context, gameName, tagLine, region string) (*model.Summoner, error) {
	account, err := s.gateway.GetAccountByRiotID(ctx, gameName, tagLine, region)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}

	upstream, err := s.gateway.GetSummonerByPUUID(ctx, account.PUUID, region)
	if err != nil {
		return nil, err
	}
	if upstream == nil {
		return nil, nil
	}

	return s.Upsert(&model.Summoner{
		PUUID:         account.PUUID,
		SummonerID:    upstream.ID,
		AccountID:     upstream.AccountID,
		GameName:      account.GameName,
		TagLine:       account.TagLine,
		SummonerLevel: upstream.SummonerLevel,
		ProfileIconID: upstream.ProfileIconID,
		RevisionDate:  upstream.RevisionDate,
		Region:        region,
		IsActive:      true,
	})
}

// Upsert creates or updates a summoner keyed by PUUID.
func (s *SummonerService) Upsert(summoner *model.Summoner) (*model.Summoner, error) {
	existing, err := s.GetByPUUID(summoner.PUUID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if err := s.db.Create(summoner).Error; err != nil {
			return nil, fmt.Errorf("failed to create summoner: %w", err)
		}
		return summoner, nil
	}

	existing.GameName = summoner.GameName
	existing.TagLine = summoner.TagLine
	existing.SummonerLevel = summoner.SummonerLevel
	existing.RevisionDate = summoner.RevisionDate
	existing.Region = summoner.Region
	if summoner.SummonerID != "" {
		existing.SummonerID = summoner.SummonerID
	}
	if summoner.AccountID != "" {
		existing.AccountID = summoner.AccountID
	}
	if summoner.ProfileIconID != 0 {
		existing.ProfileIconID = summoner.ProfileIconID
	}

	if err := s.db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update summoner: %w", err)
	}
	return existing, nil
}

// TouchLastSeen bumps the updated_at timestamp for a summoner.
func (s *SummonerService) TouchLastSeen(puuid string) error {
	return s.db.Model(&model.Summoner{}).
		Where("puuid = ?", puuid).
		Update("updated_at", time.Now()).Error
}

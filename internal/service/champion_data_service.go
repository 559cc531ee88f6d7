package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/Dendekky/gamelytics-ai/internal/cache"
)

// championDataKey caches the full id-to-name catalog.
const championDataKey = "champions:catalog"

// ChampionDataService resolves champion ids to display names from the
// static Data Dragon catalog. The catalog is cached as a serialized
// payload so a Redis backend can share it across processes.
type ChampionDataService struct {
	gateway RiotGateway
	store   cache.Store
	ttl     time.Duration
}

// NewChampionDataService creates the service.
func NewChampionDataService(gateway RiotGateway, store cache.Store, ttl time.Duration) *ChampionDataService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ChampionDataService{gateway: gateway, store: store, ttl: ttl}
}

// GetChampionMapping returns the champion id to name map.
func (s *ChampionDataService) GetChampionMapping(ctx context.Context) (map[int]string, error) {
	if data, ok, err := s.store.GetBytes(ctx, championDataKey); err == nil && ok {
		var mapping map[int]string
		if err := json.Unmarshal(data, &mapping); err == nil {
			return mapping, nil
		}
	}

	list, err := s.gateway.GetChampionData(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return map[int]string{}, nil
	}

	mapping := make(map[int]string, len(list.Data))
	for _, entry := range list.Data {
		id, err := strconv.Atoi(entry.Key)
		if err != nil {
			continue
		}
		mapping[id] = entry.Name
	}

	if data, err := json.Marshal(mapping); err == nil {
		if err := s.store.SetBytes(ctx, championDataKey, data, s.ttl); err != nil {
			logx.Warn("Failed to cache champion catalog: %v", err)
		}
	}

	return mapping, nil
}

// GetChampionName resolves one champion id, falling back to a generic
// label when the catalog is unavailable.
func (s *ChampionDataService) GetChampionName(ctx context.Context, championID int) string {
	mapping, err := s.GetChampionMapping(ctx)
	if err != nil {
		return fmt.Sprintf("Champion %d", championID)
	}
	name, ok := mapping[championID]
	if !ok {
		return fmt.Sprintf("Champion %d", championID)
	}
	return name
}

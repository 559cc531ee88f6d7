package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dendekky/gamelytics-ai/internal/model"
	"github.com/Dendekky/gamelytics-ai/internal/riot"
)

func masteryEntries() []riot.ChampionMastery {
	return []riot.ChampionMastery{
		{ChampionID: 22, ChampionLevel: 7, ChampionPoints: 250000, ChestGranted: true, LastPlayTime: 1700000000000},
		{ChampionID: 51, ChampionLevel: 5, ChampionPoints: 40000},
		{ChampionID: 238, ChampionLevel: 4, ChampionPoints: 12000, TokensEarned: 1},
	}
}

func TestMasteryFetchAndStore(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{masteries: masteryEntries()}
	svc := NewMasteryService(newTestDB(t), gateway)

	stored, err := svc.FetchAndStore(ctx, "p1", "na1")
	require.NoError(t, err)
	require.Len(t, stored, 3)

	ashe, err := svc.GetByChampion("p1", 22)
	require.NoError(t, err)
	require.NotNil(t, ashe)
	assert.Equal(t, 7, ashe.MasteryLevel)
	assert.Equal(t, 250000, ashe.MasteryPoints)
	assert.True(t, ashe.ChestGranted)
	require.NotNil(t, ashe.LastPlayTime)

	// A refresh with changed numbers updates in place.
	gateway.masteries[0].ChampionPoints = 260000
	_, err = svc.FetchAndStore(ctx, "p1", "na1")
	require.NoError(t, err)

	ashe, err = svc.GetByChampion("p1", 22)
	require.NoError(t, err)
	assert.Equal(t, 260000, ashe.MasteryPoints)

	var count int64
	require.NoError(t, svc.db.Model(&model.ChampionMastery{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestMasteryListOrdering(t *testing.T) {
	ctx := context.Background()
	svc := NewMasteryService(newTestDB(t), &fakeGateway{masteries: masteryEntries()})

	_, err := svc.FetchAndStore(ctx, "p1", "na1")
	require.NoError(t, err)

	masteries, err := svc.ListByPUUID("p1", 2)
	require.NoError(t, err)
	require.Len(t, masteries, 2)
	assert.Equal(t, 22, masteries[0].ChampionID)
	assert.Equal(t, 51, masteries[1].ChampionID)

	all, err := svc.ListByPUUID("p1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMasterySummarize(t *testing.T) {
	ctx := context.Background()
	svc := NewMasteryService(newTestDB(t), &fakeGateway{masteries: masteryEntries()})

	t.Run("empty set yields zeroed summary", func(t *testing.T) {
		summary, err := svc.Summarize("unknown")
		require.NoError(t, err)
		assert.Equal(t, &MasterySummary{}, summary)
	})

	t.Run("aggregates levels and points", func(t *testing.T) {
		_, err := svc.FetchAndStore(ctx, "p1", "na1")
		require.NoError(t, err)

		summary, err := svc.Summarize("p1")
		require.NoError(t, err)
		assert.Equal(t, 3, summary.TotalChampions)
		assert.Equal(t, 302000, summary.TotalMasteryPoints)
		assert.Equal(t, 1, summary.Mastery7Count)
		assert.Equal(t, 0, summary.Mastery6Count)
		assert.Equal(t, 1, summary.Mastery5Count)
		assert.Equal(t, 5.3, summary.AverageMasteryLevel)
		assert.Equal(t, 250000, summary.HighestPoints)
	})
}

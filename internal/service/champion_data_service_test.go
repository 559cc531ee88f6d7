package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dendekky/gamelytics-ai/internal/cache"
	"github.com/Dendekky/gamelytics-ai/internal/riot"
)

func catalogFixture() *riot.ChampionList {
	return &riot.ChampionList{Data: map[string]riot.ChampionEntry{
		"Ashe":    {Key: "22", Name: "Ashe"},
		"Zed":     {Key: "238", Name: "Zed"},
		"Invalid": {Key: "not-a-number", Name: "Broken"},
	}}
}

func TestGetChampionMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the id to name map", func(t *testing.T) {
		svc := NewChampionDataService(&fakeGateway{champions: catalogFixture()}, cache.NewCache(), time.Hour)

		mapping, err := svc.GetChampionMapping(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ashe", mapping[22])
		assert.Equal(t, "Zed", mapping[238])
		// Entries with malformed keys are dropped, not fatal.
		assert.Len(t, mapping, 2)
	})

	t.Run("serves repeat calls from the store", func(t *testing.T) {
		gateway := &fakeGateway{champions: catalogFixture()}
		svc := NewChampionDataService(gateway, cache.NewCache(), time.Hour)

		_, err := svc.GetChampionMapping(ctx)
		require.NoError(t, err)

		// Upstream going away no longer matters.
		gateway.champions = nil
		gateway.err = errors.New("ddragon down")

		mapping, err := svc.GetChampionMapping(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ashe", mapping[22])
	})

	t.Run("upstream errors propagate on a cold store", func(t *testing.T) {
		boom := errors.New("ddragon down")
		svc := NewChampionDataService(&fakeGateway{err: boom}, cache.NewCache(), time.Hour)

		_, err := svc.GetChampionMapping(ctx)
		assert.ErrorIs(t, err, boom)
	})
}

func TestGetChampionName(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves known ids", func(t *testing.T) {
		svc := NewChampionDataService(&fakeGateway{champions: catalogFixture()}, cache.NewCache(), time.Hour)
		assert.Equal(t, "Zed", svc.GetChampionName(ctx, 238))
	})

	t.Run("falls back to a generic label", func(t *testing.T) {
		svc := NewChampionDataService(&fakeGateway{champions: catalogFixture()}, cache.NewCache(), time.Hour)
		assert.Equal(t, "Champion 999", svc.GetChampionName(ctx, 999))

		broken := NewChampionDataService(&fakeGateway{err: errors.New("down")}, cache.NewCache(), time.Hour)
		assert.Equal(t, "Champion 22", broken.GetChampionName(ctx, 22))
	})
}

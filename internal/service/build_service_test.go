package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dendekky/gamelytics-ai/internal/cache"
	"github.com/Dendekky/gamelytics-ai/internal/model"
)

const buildPUUID = "puuid-build-me"

func newBuildService(t *testing.T) (*BuildService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewBuildService(db, cache.NewCache(), time.Minute), db
}

// seedLiveGame stores a game snapshot with the subject on team 100 and
// the given enemy champions on team 200.
func seedLiveGame(t *testing.T, db *gorm.DB, gameID string, gameLength, playerChampion int, enemyChampions []int) {
	t.Helper()

	require.NoError(t, db.Create(&model.LiveGame{
		GameID:         gameID,
		PlatformID:     "NA1",
		GameMode:       "CLASSIC",
		QueueID:        420,
		GameStartTime:  time.Now().Add(-time.Duration(gameLength) * time.Second),
		GameLength:     gameLength,
		LastObservedAt: time.Now(),
	}).Error)

	require.NoError(t, db.Create(&model.LiveGameParticipant{
		GameID:     gameID,
		PUUID:      buildPUUID,
		TeamID:     100,
		ChampionID: playerChampion,
	}).Error)

	for i, champ := range enemyChampions {
		require.NoError(t, db.Create(&model.LiveGameParticipant{
			GameID:     gameID,
			PUUID:      fmt.Sprintf("puuid-enemy-%d", i),
			TeamID:     200,
			ChampionID: champ,
		}).Error)
	}
}

func TestGetRecommendations_ADHeavyEarlyGame(t *testing.T) {
	svc, db := newBuildService(t)

	// Double assassin, ADC, fighter and tank: all-physical roster with
	// heavy burst and dive.
	seedLiveGame(t, db, "G1", 600, 22, []int{238, 91, 119, 24, 86})

	rec, err := svc.GetRecommendations(context.Background(), buildPUUID, "G1")
	require.NoError(t, err)

	assert.Equal(t, 22, rec.PlayerChampion)
	assert.Equal(t, RoleADC, rec.PlayerRole)
	assert.Equal(t, PhaseEarly, rec.GamePhase)
	assert.Equal(t, 10, rec.GameTimeMinutes)

	assert.Equal(t, 9, rec.ThreatVector.ADDamage)
	assert.Equal(t, 0, rec.ThreatVector.APDamage)
	assert.Equal(t, 6, rec.ThreatVector.BurstPotential)
	assert.Equal(t, 10, rec.ThreatVector.DivePotential)

	assert.Equal(t, []string{"Doran's Blade", "Berserker's Greaves", "Mythic Item"}, rec.PriorityItems)
	assert.Equal(t, "Plated Steelcaps", rec.BootsChoice)
	assert.Equal(t, "armor", rec.DefensivePriority)

	// Physical threat picks the anti-AD list, then burst and dive
	// thresholds append their additions.
	assert.Contains(t, rec.SituationalItems, "Kraken Slayer")
	assert.Contains(t, rec.SituationalItems, "Stopwatch/Guardian Angel")
	assert.Contains(t, rec.SituationalItems, "Barrier/Heal")
	assert.Contains(t, rec.SituationalItems, "Guardian Angel")

	require.NotEmpty(t, rec.BuildOrder)
	assert.Equal(t, "Core damage item", rec.BuildOrder[0])

	assert.Contains(t, rec.SituationalAdvice, "Stay near your team - enemy has high dive potential")
	assert.Contains(t, rec.SituationalAdvice, "Focus on core items before defensive options")
}

func TestGetRecommendations_APHeavyMidGame(t *testing.T) {
	svc, db := newBuildService(t)

	// Triple mage roster.
	seedLiveGame(t, db, "G2", 1200, 99, []int{61, 1, 34, 412, 54})

	rec, err := svc.GetRecommendations(context.Background(), buildPUUID, "G2")
	require.NoError(t, err)

	assert.Equal(t, RoleMage, rec.PlayerRole)
	assert.Equal(t, PhaseMid, rec.GamePhase)
	assert.Equal(t, 9, rec.ThreatVector.APDamage)
	assert.Equal(t, 0, rec.ThreatVector.ADDamage)

	assert.Equal(t, "Mercury's Treads", rec.BootsChoice)
	assert.Equal(t, "magic_resist", rec.DefensivePriority)
	assert.Contains(t, rec.SituationalItems, "Banshee's Veil")
	assert.Contains(t, rec.PriorityItems, "Rabadon's Deathcap")
}

func TestGetRecommendations_MixedThreatLateGame(t *testing.T) {
	svc, db := newBuildService(t)

	// One ADC and one mage balance the damage profile.
	seedLiveGame(t, db, "G3", 2000, 86, []int{51, 61, 54, 412, 999999})

	rec, err := svc.GetRecommendations(context.Background(), buildPUUID, "G3")
	require.NoError(t, err)

	assert.Equal(t, RoleTank, rec.PlayerRole)
	assert.Equal(t, PhaseLate, rec.GamePhase)
	assert.Equal(t, rec.ThreatVector.ADDamage, rec.ThreatVector.APDamage)

	assert.Equal(t, "Depends on primary threat", rec.BootsChoice)
	assert.Equal(t, "health_and_resistances", rec.DefensivePriority)
	assert.Contains(t, rec.SituationalItems, "Warmog's Armor")
}

func TestGetRecommendations_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown game", func(t *testing.T) {
		svc, _ := newBuildService(t)

		_, err := svc.GetRecommendations(ctx, buildPUUID, "NOPE")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("player not in roster", func(t *testing.T) {
		svc, db := newBuildService(t)
		seedLiveGame(t, db, "G1", 600, 22, []int{238})

		_, err := svc.GetRecommendations(ctx, "puuid-somebody-else", "G1")
		assert.ErrorIs(t, err, ErrPlayerNotInGame)
	})

	t.Run("unclassified champion has no templates", func(t *testing.T) {
		svc, db := newBuildService(t)
		seedLiveGame(t, db, "G1", 600, 999999, []int{238})

		_, err := svc.GetRecommendations(ctx, buildPUUID, "G1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no build templates")
	})
}

func TestGamePhaseBoundaries(t *testing.T) {
	assert.Equal(t, PhaseEarly, gamePhase(0))
	assert.Equal(t, PhaseEarly, gamePhase(14*60+59))
	assert.Equal(t, PhaseMid, gamePhase(15*60))
	assert.Equal(t, PhaseMid, gamePhase(29*60+59))
	assert.Equal(t, PhaseLate, gamePhase(30*60))
}

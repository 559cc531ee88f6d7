package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dendekky/gamelytics-ai/internal/model"
	"github.com/Dendekky/gamelytics-ai/internal/riot"
)

// matchPayload builds a minimal two-player match-v5 payload.
func matchPayload(matchID string, creation time.Time) *riot.Match {
	return &riot.Match{
		Metadata: riot.MatchMetadata{
			MatchID:      matchID,
			Participants: []string{"p1", "p2"},
		},
		Info: riot.MatchInfo{
			GameCreation:       creation.UnixMilli(),
			GameStartTimestamp: creation.UnixMilli(),
			GameEndTimestamp:   creation.Add(31 * time.Minute).UnixMilli(),
			GameDuration:       1860,
			GameMode:           "CLASSIC",
			GameType:           "MATCHED_GAME",
			GameVersion:        "14.10.1",
			MapID:              11,
			PlatformID:         "NA1",
			QueueID:            420,
			Teams: []riot.MatchTeam{
				{TeamID: 100, Win: true},
				{TeamID: 200, Win: false},
			},
			Participants: []riot.MatchParticipant{
				{
					PUUID: "p1", ParticipantID: 1, TeamID: 100,
					ChampionID: 22, ChampionName: "Ashe", ChampLevel: 16, TeamPosition: "BOTTOM",
					Kills: 7, Deaths: 3, Assists: 9,
					TotalMinionsKilled: 228, VisionScore: 31, GoldEarned: 13400,
					TotalDamageDealtToChampions: 24500, Win: true,
					Item0: 3031, Item6: 3363,
				},
				{
					PUUID: "p2", ParticipantID: 6, TeamID: 200,
					ChampionID: 51, ChampionName: "Caitlyn", ChampLevel: 15, TeamPosition: "BOTTOM",
					Kills: 4, Deaths: 6, Assists: 5, Win: false,
				},
			},
		},
	}
}

func TestStoreMatch(t *testing.T) {
	svc := NewMatchService(newTestDB(t), &fakeGateway{})
	creation := time.Now().Add(-2 * time.Hour).Truncate(time.Second)

	match, err := svc.StoreMatch(matchPayload("NA1_100", creation))
	require.NoError(t, err)
	assert.Equal(t, "NA1_100", match.MatchID)
	assert.Equal(t, 1860, match.GameDuration)
	assert.Equal(t, 100, match.WinningTeam)
	require.NotNil(t, match.GameEnd)

	participant, err := svc.GetParticipant("NA1_100", "p1")
	require.NoError(t, err)
	require.NotNil(t, participant)
	assert.Equal(t, "Ashe", participant.ChampionName)
	assert.Equal(t, 7, participant.Kills)
	assert.Equal(t, 228, participant.TotalMinionsKilled)
	assert.True(t, participant.Win)
	assert.Contains(t, string(participant.Items), "3031")

	// Storing the same match again is a no-op.
	again, err := svc.StoreMatch(matchPayload("NA1_100", creation))
	require.NoError(t, err)
	assert.Equal(t, match.ID, again.ID)

	var count int64
	require.NoError(t, svc.db.Model(&model.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListByPUUID(t *testing.T) {
	svc := NewMatchService(newTestDB(t), &fakeGateway{})
	now := time.Now()

	for i := 0; i < 3; i++ {
		_, err := svc.StoreMatch(matchPayload(fmt.Sprintf("NA1_%d", i), now.Add(-time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	matches, err := svc.ListByPUUID("p1", 2, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "NA1_0", matches[0].MatchID)
	assert.Equal(t, "NA1_1", matches[1].MatchID)

	rest, err := svc.ListByPUUID("p1", 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "NA1_2", rest[0].MatchID)

	none, err := svc.ListByPUUID("p3", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFetchAndStoreRecent(t *testing.T) {
	now := time.Now()

	t.Run("fetches only unseen matches", func(t *testing.T) {
		gateway := &fakeGateway{
			matchIDs: []string{"NA1_1", "NA1_2"},
			matches: map[string]*riot.Match{
				"NA1_1": matchPayload("NA1_1", now.Add(-time.Hour)),
				"NA1_2": matchPayload("NA1_2", now.Add(-2*time.Hour)),
			},
		}
		svc := NewMatchService(newTestDB(t), gateway)

		// Pre-store the first one; the fetch must not duplicate it.
		_, err := svc.StoreMatch(matchPayload("NA1_1", now.Add(-time.Hour)))
		require.NoError(t, err)

		stored, err := svc.FetchAndStoreRecent(context.Background(), "p1", "na1", 20)
		require.NoError(t, err)
		assert.Len(t, stored, 2)

		var count int64
		require.NoError(t, svc.db.Model(&model.Match{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("skips matches the detail endpoint no longer has", func(t *testing.T) {
		gateway := &fakeGateway{
			matchIDs: []string{"NA1_1", "NA1_GONE"},
			matches: map[string]*riot.Match{
				"NA1_1": matchPayload("NA1_1", now.Add(-time.Hour)),
			},
		}
		svc := NewMatchService(newTestDB(t), gateway)

		stored, err := svc.FetchAndStoreRecent(context.Background(), "p1", "na1", 20)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "NA1_1", stored[0].MatchID)
	})
}

package service

import (
	"context"

	"github.com/Dendekky/gamelytics-ai/internal/riot"
)

// RiotGateway is the outbound API surface the services depend on.
// *riot.Client implements it; tests substitute fakes.
type RiotGateway interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine, region string) (*riot.Account, error)
	GetSummonerByPUUID(ctx context.Context, puuid, region string) (*riot.Summoner, error)
	GetMatchIDs(ctx context.Context, puuid, region string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID, region string) (*riot.Match, error)
	GetChampionMasteries(ctx context.Context, puuid, region string) ([]riot.ChampionMastery, error)
	GetActiveGame(ctx context.Context, puuid, region string) (*riot.CurrentGame, error)
	GetFeaturedGames(ctx context.Context, region string) (*riot.FeaturedGames, error)
	GetChampionData(ctx context.Context) (*riot.ChampionList, error)
}

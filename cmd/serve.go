package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/spf13/cobra"

	"github.com/Dendekky/gamelytics-ai/internal/cache"
	"github.com/Dendekky/gamelytics-ai/internal/config"
	"github.com/Dendekky/gamelytics-ai/internal/database"
	"github.com/Dendekky/gamelytics-ai/internal/ratelimit"
	"github.com/Dendekky/gamelytics-ai/internal/riot"
	"github.com/Dendekky/gamelytics-ai/internal/server"
	"github.com/Dendekky/gamelytics-ai/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logx.Warn("Failed to close database: %v", err)
		}
	}()

	memCache := cache.NewCache()
	cacheMgr := cache.NewManager(memCache)
	cacheMgr.StartCleanup(cfg.Cache.CleanupInterval)
	defer cacheMgr.StopCleanup()

	// The champion catalog can live in redis so several instances share
	// one Data Dragon fetch. Everything else memoizes in process.
	var catalogStore cache.Store = memCache
	if cfg.Cache.Type == "redis" {
		redisStore, err := cache.NewRedisStore(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			logx.Warn("Redis unavailable, falling back to in-memory catalog cache: %v", err)
		} else {
			catalogStore = redisStore
			defer redisStore.Close()
		}
	}

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		RequestsPer2Min:   cfg.RateLimit.RequestsPer2Min,
		ShortWindow:       cfg.RateLimit.ShortWindow,
		LongWindow:        cfg.RateLimit.LongWindow,
		MaxBackoff:        cfg.RateLimit.MaxBackoff,
	})

	gateway := riot.NewClient(cfg.Riot.APIKey, cfg.Riot.Timeout, limiter)

	analytics := service.NewAnalyticsService(db, memCache, cfg.Scoring, cfg.Cache.AnalyticsTTL)
	services := server.Services{
		Summoners:    service.NewSummonerService(db, gateway),
		Matches:      service.NewMatchService(db, gateway),
		Masteries:    service.NewMasteryService(db, gateway),
		Analytics:    analytics,
		LiveGames:    service.NewLiveGameService(db, gateway, memCache, analytics, cfg.Cache.LiveGameTTL),
		Builds:       service.NewBuildService(db, memCache, cfg.Cache.BuildTTL),
		ChampionData: service.NewChampionDataService(gateway, catalogStore, cfg.Cache.ChampionTTL),
	}

	httpServer := server.NewHTTPServer(cfg, services, cacheMgr, limiter)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logx.Info("Received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Stop(ctx)
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Dendekky/gamelytics-ai/internal/cache"
	"github.com/Dendekky/gamelytics-ai/internal/config"
	"github.com/Dendekky/gamelytics-ai/internal/ratelimit"
	"github.com/Dendekky/gamelytics-ai/internal/service"
)

// Services bundles the domain services the HTTP layer exposes.
type Services struct {
	Summoners    *service.SummonerService
	Matches      *service.MatchService
	Masteries    *service.MasteryService
	Analytics    *service.AnalyticsService
	LiveGames    *service.LiveGameService
	Builds       *service.BuildService
	ChampionData *service.ChampionDataService
}

// HTTPServer is the Gin based HTTP server.
type HTTPServer struct {
	config   *config.Config
	engine   *gin.Engine
	server   *http.Server
	services Services
	cacheMgr *cache.Manager
	limiter  *ratelimit.Limiter
}

// NewHTTPServer creates the HTTP server with middlewares and routes
// registered.
func NewHTTPServer(cfg *config.Config, services Services, cacheMgr *cache.Manager, limiter *ratelimit.Limiter) *HTTPServer {
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &HTTPServer{
		config:   cfg,
		engine:   gin.New(),
		services: services,
		cacheMgr: cacheMgr,
		limiter:  limiter,
	}

	s.registerMiddlewares()
	s.registerRoutes()

	return s
}

func (s *HTTPServer) registerMiddlewares() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.requestIDMiddleware())
	s.engine.Use(s.loggingMiddleware())
	s.engine.Use(s.corsMiddleware())
}

// requestIDMiddleware tags each request with an id for log correlation.
func (s *HTTPServer) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

func (s *HTTPServer) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		logx.Info("HTTP %s %s, status %d, duration %s, request_id %s",
			method, path, status, duration, c.GetString("request_id"))
	}
}

func (s *HTTPServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (s *HTTPServer) registerRoutes() {
	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/health", s.handleHealth)
		v1.GET("/champions", s.handleChampionCatalog)

		summoners := v1.Group("/summoners")
		{
			summoners.GET("/by-riot-id/:gameName/:tagLine", s.handleSummonerByRiotID)
			summoners.GET("/:puuid", s.handleSummonerByPUUID)
			summoners.POST("/:puuid/refresh", s.handleSummonerRefresh)
			summoners.GET("/:puuid/matches", s.handleSummonerMatches)
			summoners.GET("/:puuid/masteries", s.handleMasteryList)
			summoners.GET("/:puuid/masteries/summary", s.handleMasterySummary)
			summoners.GET("/:puuid/masteries/enhanced", s.handleEnhancedMasteries)
			summoners.POST("/:puuid/masteries/refresh", s.handleMasteryRefresh)
			summoners.GET("/:puuid/masteries/champion/:championId", s.handleMasteryByChampion)
		}

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/:puuid/overview", s.handleAnalyticsOverview)
			analytics.GET("/:puuid/champions", s.handleAnalyticsChampions)
			analytics.GET("/:puuid/trends", s.handleAnalyticsTrends)
			analytics.GET("/:puuid/styles", s.handleAnalyticsStyles)
			analytics.GET("/:puuid/recent", s.handleAnalyticsRecent)
			analytics.GET("/:puuid/heatmap", s.handleAnalyticsHeatmap)
			analytics.GET("/:puuid/roles", s.handleAnalyticsRoles)
		}

		live := v1.Group("/live")
		{
			live.GET("/featured", s.handleFeaturedGames)
			live.POST("/monitor", s.handleMonitorPlayers)
			live.GET("/:puuid/status", s.handleLiveStatus)
			live.GET("/:puuid/analysis", s.handleEnemyAnalysis)
			live.GET("/:puuid/recommendations", s.handleGameRecommendations)
			live.GET("/:puuid/build-recommendations", s.handleBuildRecommendations)
		}

		system := v1.Group("/system")
		{
			system.GET("/cache/status", s.handleCacheStatus)
			system.POST("/cache/clear", s.handleCacheClear)
			system.GET("/rate-limit/status", s.handleRateLimitStatus)
		}
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *HTTPServer) Start() error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.config.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logx.Info("🛜 Starting HTTP Server (Gin), Addr %s", addr)
	return s.server.ListenAndServe()
}

// Stop shuts the HTTP server down gracefully.
func (s *HTTPServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Engine exposes the router for tests.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

// Response is the unified response envelope.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (s *HTTPServer) success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "Success",
		Data:    data,
	})
}

func (s *HTTPServer) error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// internalError logs the cause and answers with a generic message so
// storage and wrap-chain detail never reaches the client.
func (s *HTTPServer) internalError(c *gin.Context, err error) {
	logx.Error("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	s.error(c, http.StatusInternalServerError, "internal server error")
}

func (s *HTTPServer) handleHealth(c *gin.Context) {
	s.success(c, gin.H{
		"status": "healthy",
	})
}

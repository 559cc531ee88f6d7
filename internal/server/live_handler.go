package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dendekky/gamelytics-ai/internal/service"
)

func (s *HTTPServer) handleLiveStatus(c *gin.Context) {
	puuid := c.Param("puuid")
	region := queryRegion(c)

	status, err := s.services.LiveGames.CheckLiveStatus(c.Request.Context(), puuid, region)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	s.success(c, status)
}

// monitorRequest is the batch monitor request body.
type monitorRequest struct {
	PUUIDs []string `json:"puuids" binding:"required,min=1"`
	Region string   `json:"region"`
}

func (s *HTTPServer) handleMonitorPlayers(c *gin.Context) {
	var req monitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.error(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Region == "" {
		req.Region = "na1"
	}

	results, err := s.services.LiveGames.MonitorPlayers(c.Request.Context(), req.PUUIDs, req.Region)
	if err != nil {
		if errors.Is(err, service.ErrBatchTooLarge) {
			s.error(c, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(c, err)
		return
	}

	s.success(c, results)
}

// handleEnemyAnalysis serves just the enemy team section of the live
// report.
func (s *HTTPServer) handleEnemyAnalysis(c *gin.Context) {
	puuid := c.Param("puuid")
	region := queryRegion(c)

	status, err := s.services.LiveGames.CheckLiveStatus(c.Request.Context(), puuid, region)
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	if !status.IsInGame {
		s.error(c, http.StatusNotFound, "player is not in a live game")
		return
	}

	s.success(c, status.EnemyAnalysis)
}

// handleGameRecommendations serves just the phase recommendations of
// the live report.
func (s *HTTPServer) handleGameRecommendations(c *gin.Context) {
	puuid := c.Param("puuid")
	region := queryRegion(c)

	status, err := s.services.LiveGames.CheckLiveStatus(c.Request.Context(), puuid, region)
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	if !status.IsInGame {
		s.error(c, http.StatusNotFound, "player is not in a live game")
		return
	}

	s.success(c, status.Recommendations)
}

func (s *HTTPServer) handleFeaturedGames(c *gin.Context) {
	region := queryRegion(c)

	featured, err := s.services.LiveGames.GetFeaturedGames(c.Request.Context(), region)
	if err != nil {
		s.upstreamError(c, err)
		return
	}
	if featured == nil {
		s.success(c, gin.H{"game_list": []any{}})
		return
	}

	s.success(c, featured)
}

func (s *HTTPServer) handleBuildRecommendations(c *gin.Context) {
	puuid := c.Param("puuid")
	gameID := c.Query("game_id")
	if gameID == "" {
		s.error(c, http.StatusBadRequest, "game_id is required")
		return
	}

	recommendation, err := s.services.Builds.GetRecommendations(c.Request.Context(), puuid, gameID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			s.error(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlayerNotInGame):
			s.error(c, http.StatusNotFound, err.Error())
		default:
			s.internalError(c, err)
		}
		return
	}

	s.success(c, recommendation)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleChampionCatalog serves the champion id to name mapping.
func (s *HTTPServer) handleChampionCatalog(c *gin.Context) {
	mapping, err := s.services.ChampionData.GetChampionMapping(c.Request.Context())
	if err != nil {
		s.error(c, http.StatusBadGateway, err.Error())
		return
	}

	s.success(c, gin.H{
		"total":     len(mapping),
		"champions": mapping,
	})
}

func (s *HTTPServer) handleCacheStatus(c *gin.Context) {
	s.success(c, s.cacheMgr.GetStatus())
}

// handleCacheClear invalidates cached values. With a puuid query
// parameter only that player's entries go, otherwise everything.
func (s *HTTPServer) handleCacheClear(c *gin.Context) {
	puuid := c.Query("puuid")
	s.cacheMgr.InvalidatePlayer(puuid)

	s.success(c, gin.H{
		"cleared": true,
	})
}

func (s *HTTPServer) handleRateLimitStatus(c *gin.Context) {
	s.success(c, s.limiter.GetStatus())
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) handleAnalyticsOverview(c *gin.Context) {
	puuid := c.Param("puuid")
	days := queryDays(c)

	stats, err := s.services.Analytics.GetOverviewStats(c.Request.Context(), puuid, days)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, stats)
}

func (s *HTTPServer) handleAnalyticsChampions(c *gin.Context) {
	puuid := c.Param("puuid")
	days := queryDays(c)

	performance, err := s.services.Analytics.GetChampionPerformance(c.Request.Context(), puuid, days)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, gin.H{
		"total":     len(performance),
		"champions": performance,
	})
}

func (s *HTTPServer) handleAnalyticsTrends(c *gin.Context) {
	puuid := c.Param("puuid")
	days := queryDays(c)

	trends, err := s.services.Analytics.GetPerformanceTrends(c.Request.Context(), puuid, days)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, trends)
}

func (s *HTTPServer) handleAnalyticsStyles(c *gin.Context) {
	puuid := c.Param("puuid")
	days := queryDays(c)

	styles, err := s.services.Analytics.GetStyleMetrics(c.Request.Context(), puuid, days)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, styles)
}

func (s *HTTPServer) handleAnalyticsRecent(c *gin.Context) {
	puuid := c.Param("puuid")
	limit := queryInt(c, "limit", 10)
	if limit < 1 || limit > 100 {
		s.error(c, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	performance, err := s.services.Analytics.GetRecentPerformance(c.Request.Context(), puuid, limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, gin.H{
		"total":   len(performance),
		"matches": performance,
	})
}

func (s *HTTPServer) handleAnalyticsHeatmap(c *gin.Context) {
	puuid := c.Param("puuid")
	days := queryDays(c)

	heatmap, err := s.services.Analytics.GetActivityHeatmap(c.Request.Context(), puuid, days)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, gin.H{
		"cells": heatmap,
	})
}

func (s *HTTPServer) handleAnalyticsRoles(c *gin.Context) {
	puuid := c.Param("puuid")
	days := queryDays(c)

	roles, err := s.services.Analytics.GetRoleBreakdown(c.Request.Context(), puuid, days)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.success(c, gin.H{
		"roles": roles,
	})
}

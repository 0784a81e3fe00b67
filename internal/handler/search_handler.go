package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gpsinspection/station-backend-go/internal/service"
	"github.com/gpsinspection/station-backend-go/pkg/response"
)

// SearchHandler handles HTTP requests for station search
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Query parameter 'q' is required")
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 10)

	var ref *service.Location
	lat, latOK := queryFloat(c, "lat")
	lon, lonOK := queryFloat(c, "lon")
	if latOK && lonOK {
		ref = &service.Location{Latitude: lat, Longitude: lon}
	}

	results, total := h.searchService.Search(query, ref, page, pageSize)

	h.searchService.LogSearch(
		c.GetHeader("X-Session-ID"),
		c.GetString("user_id"),
		query,
		"integrated",
		total,
		"",
	)

	response.Success(c, gin.H{
		"results":   results,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Suggestions handles GET /api/v1/search/suggestions
func (h *SearchHandler) Suggestions(c *gin.Context) {
	prefix := c.Query("q")
	limit := queryInt(c, "limit", 5)

	suggestions := h.searchService.Suggestions(prefix, limit)
	if suggestions == nil {
		suggestions = []string{}
	}

	response.Success(c, gin.H{"suggestions": suggestions})
}

// Popular handles GET /api/v1/search/popular
func (h *SearchHandler) Popular(c *gin.Context) {
	limit := queryInt(c, "limit", 10)

	queries := h.searchService.PopularSearches(limit)
	if queries == nil {
		queries = []string{}
	}

	response.Success(c, gin.H{"popular_queries": queries})
}

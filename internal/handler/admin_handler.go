package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gpsinspection/station-backend-go/internal/service"
	"github.com/gpsinspection/station-backend-go/pkg/response"
)

// AdminHandler handles authenticated operational endpoints
type AdminHandler struct {
	searchService   *service.SearchService
	locationService *service.LocationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(searchService *service.SearchService, locationService *service.LocationService) *AdminHandler {
	return &AdminHandler{
		searchService:   searchService,
		locationService: locationService,
	}
}

// CacheStats handles GET /api/v1/admin/cache/stats
func (h *AdminHandler) CacheStats(c *gin.Context) {
	response.Success(c, gin.H{
		"search":    h.searchService.CacheStats(),
		"duplicate": h.locationService.DuplicateCacheStats(),
		"nearby":    h.locationService.NearbyCacheStats(),
	})
}

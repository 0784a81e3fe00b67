package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/service"
	"github.com/gpsinspection/station-backend-go/pkg/response"
)

// LocationHandler handles HTTP requests for proximity queries, duplicate
// checks and coordinate validation
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// Nearby handles GET /api/v1/stations/nearby
func (h *LocationHandler) Nearby(c *gin.Context) {
	lat, latOK := queryFloat(c, "lat")
	lon, lonOK := queryFloat(c, "lon")
	if !latOK || !lonOK {
		response.BadRequest(c, "Query parameters 'lat' and 'lon' are required")
		return
	}
	radius := queryInt(c, "radius", 0)

	nearby, err := h.locationService.FindNearby(lat, lon, radius)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"stations": nearby,
		"count":    len(nearby),
	})
}

// NearbyDetail handles GET /api/v1/stations/nearby/detail
func (h *LocationHandler) NearbyDetail(c *gin.Context) {
	lat, latOK := queryFloat(c, "lat")
	lon, lonOK := queryFloat(c, "lon")
	if !latOK || !lonOK {
		response.BadRequest(c, "Query parameters 'lat' and 'lon' are required")
		return
	}
	radius := queryInt(c, "radius", 0)

	detail, err := h.locationService.NearbyDetail(lat, lon, radius)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, detail)
}

type duplicateCheckRequest struct {
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
	StationName  string   `json:"station_name"`
	RadiusMeters int      `json:"radius_meters"`
}

// CheckDuplicate handles POST /api/v1/stations/check-duplicate
func (h *LocationHandler) CheckDuplicate(c *gin.Context) {
	var req duplicateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report := h.locationService.CheckDuplicate(*req.Latitude, *req.Longitude,
		req.StationName, req.RadiusMeters)

	response.Success(c, report)
}

type validateLocationRequest struct {
	Latitude       *float64 `json:"latitude" binding:"required"`
	Longitude      *float64 `json:"longitude" binding:"required"`
	AccuracyMeters *float64 `json:"gps_accuracy"`
}

// ValidateLocation handles POST /api/v1/stations/validate-location
func (h *LocationHandler) ValidateLocation(c *gin.Context) {
	var req validateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result := h.locationService.ValidateLocation(*req.Latitude, *req.Longitude, req.AccuracyMeters)

	response.Success(c, result)
}

// AlternativeLocations handles GET /api/v1/stations/alternative-locations
func (h *LocationHandler) AlternativeLocations(c *gin.Context) {
	lat, latOK := queryFloat(c, "lat")
	lon, lonOK := queryFloat(c, "lon")
	if !latOK || !lonOK {
		response.BadRequest(c, "Query parameters 'lat' and 'lon' are required")
		return
	}
	radius := queryInt(c, "radius", 0)

	alternatives, err := h.locationService.AlternativeLocations(lat, lon, radius)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if alternatives == nil {
		alternatives = []models.AlternativeLocation{}
	}

	response.Success(c, gin.H{
		"alternatives": alternatives,
		"count":        len(alternatives),
	})
}

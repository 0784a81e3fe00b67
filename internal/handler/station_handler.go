package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/repository"
	"github.com/gpsinspection/station-backend-go/internal/service"
	"github.com/gpsinspection/station-backend-go/pkg/response"
)

// StationHandler handles HTTP requests for station registration and lookup
type StationHandler struct {
	stationService *service.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(stationService *service.StationService) *StationHandler {
	return &StationHandler{
		stationService: stationService,
	}
}

type stationRequest struct {
	Name             string   `json:"station_name" binding:"required"`
	Aliases          string   `json:"station_alias"`
	Type             string   `json:"station_type" binding:"required"`
	Latitude         *float64 `json:"latitude" binding:"required"`
	Longitude        *float64 `json:"longitude" binding:"required"`
	AccuracyMeters   *float64 `json:"gps_accuracy"`
	Address          string   `json:"address"`
	RegionName       string   `json:"region_name"`
	DetailedLocation string   `json:"detailed_location"`
	Status           string   `json:"registration_status"`
	InspectorID      string   `json:"inspector_id" binding:"required"`
}

func (r *stationRequest) toStation() *models.Station {
	return &models.Station{
		Name:             r.Name,
		Aliases:          r.Aliases,
		Type:             r.Type,
		Latitude:         *r.Latitude,
		Longitude:        *r.Longitude,
		AccuracyMeters:   r.AccuracyMeters,
		Address:          r.Address,
		RegionName:       r.RegionName,
		DetailedLocation: r.DetailedLocation,
		Status:           r.Status,
		InspectorID:      r.InspectorID,
	}
}

// CreateStation handles POST /api/v1/stations
func (h *StationHandler) CreateStation(c *gin.Context) {
	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	id, err := h.stationService.Register(req.toStation())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Created(c, gin.H{"station_id": id})
}

// GetStation handles GET /api/v1/stations/:id
func (h *StationHandler) GetStation(c *gin.Context) {
	station, err := h.stationService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			response.NotFound(c, "Station not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, station)
}

// UpdateStation handles PUT /api/v1/stations/:id
func (h *StationHandler) UpdateStation(c *gin.Context) {
	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	station := req.toStation()
	station.StationID = c.Param("id")

	if err := h.stationService.Update(station); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			response.BadRequest(c, err.Error())
		case errors.Is(err, repository.ErrStationNotFound):
			response.NotFound(c, "Station not found")
		default:
			response.InternalError(c, err.Error())
		}
		return
	}

	response.Success(c, gin.H{"station_id": station.StationID})
}

// DeleteStation handles DELETE /api/v1/stations/:id
func (h *StationHandler) DeleteStation(c *gin.Context) {
	if err := h.stationService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			response.NotFound(c, "Station not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ListStations handles GET /api/v1/stations
func (h *StationHandler) ListStations(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 10)

	region := c.Query("region")
	stationType := c.Query("station_type")

	var (
		stations []models.Station
		total    int
		err      error
	)
	if region != "" || stationType != "" {
		stations, total, err = h.stationService.ListByRegionAndType(region, stationType, page, pageSize)
	} else {
		stations, total, err = h.stationService.ListByStatus(c.DefaultQuery("status", "all"), page, pageSize)
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"stations":  stations,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// queryInt parses an integer query parameter, falling back on a default.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// queryFloat parses a float query parameter, reporting whether it was present
// and well formed.
func queryFloat(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/repository"
)

// ErrInvalidInput marks requests rejected before any repository access.
var ErrInvalidInput = errors.New("invalid input")

// StationService handles station registration and lookup business logic
type StationService struct {
	stations *repository.StationRepository
}

// NewStationService creates a new station service
func NewStationService(stations *repository.StationRepository) *StationService {
	return &StationService{stations: stations}
}

// Register validates and stores a new station, returning its generated ID.
func (s *StationService) Register(station *models.Station) (string, error) {
	if err := validateStation(station); err != nil {
		return "", err
	}

	id, err := s.stations.Insert(station)
	if err != nil {
		return "", fmt.Errorf("failed to register station: %w", err)
	}
	return id, nil
}

// Get returns a station by ID, counting the lookup.
func (s *StationService) Get(stationID string) (*models.Station, error) {
	if strings.TrimSpace(stationID) == "" {
		return nil, fmt.Errorf("%w: station id is required", ErrInvalidInput)
	}
	return s.stations.GetByID(stationID)
}

// Update rewrites a station's mutable attributes.
func (s *StationService) Update(station *models.Station) error {
	if strings.TrimSpace(station.StationID) == "" {
		return fmt.Errorf("%w: station id is required", ErrInvalidInput)
	}
	if err := validateStation(station); err != nil {
		return err
	}
	return s.stations.Update(station)
}

// Delete removes a station.
func (s *StationService) Delete(stationID string) error {
	if strings.TrimSpace(stationID) == "" {
		return fmt.Errorf("%w: station id is required", ErrInvalidInput)
	}
	return s.stations.Delete(stationID)
}

// ListByStatus pages stations by registration status ("all" for everything).
func (s *StationService) ListByStatus(status string, page, pageSize int) ([]models.Station, int, error) {
	if status == "" {
		status = "all"
	}
	page, pageSize = clampPage(page, pageSize)
	return s.stations.FindByStatus(status, page, pageSize)
}

// ListByRegionAndType pages stations matching a region and/or type filter.
func (s *StationService) ListByRegionAndType(region, stationType string, page, pageSize int) ([]models.Station, int, error) {
	page, pageSize = clampPage(page, pageSize)
	return s.stations.FindByRegionAndType(region, stationType, page, pageSize)
}

func validateStation(station *models.Station) error {
	if strings.TrimSpace(station.Name) == "" {
		return fmt.Errorf("%w: station name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(station.Type) == "" {
		return fmt.Errorf("%w: station type is required", ErrInvalidInput)
	}
	if station.Latitude < -90 || station.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range: %v", ErrInvalidInput, station.Latitude)
	}
	if station.Longitude < -180 || station.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range: %v", ErrInvalidInput, station.Longitude)
	}
	return nil
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

package models

import (
	"strings"
	"time"
)

// Station represents a registered wireless station installation
type Station struct {
	StationID        string     `json:"station_id" db:"station_id"`
	Name             string     `json:"station_name" db:"station_name"`
	Aliases          string     `json:"station_alias,omitempty" db:"station_alias"` // comma-joined alternate names
	Type             string     `json:"station_type" db:"station_type"`
	Latitude         float64    `json:"latitude" db:"latitude"`
	Longitude        float64    `json:"longitude" db:"longitude"`
	AccuracyMeters   *float64   `json:"gps_accuracy,omitempty" db:"gps_accuracy"`
	Address          string     `json:"address,omitempty" db:"address"`
	RegionName       string     `json:"region_name,omitempty" db:"region_name"`
	DetailedLocation string     `json:"detailed_location,omitempty" db:"detailed_location"`
	Status           string     `json:"registration_status" db:"registration_status"`
	InspectorID      string     `json:"inspector_id" db:"inspector_id"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
	LastAccessedAt   *time.Time `json:"last_accessed,omitempty" db:"last_accessed"`
	AccessCount      int        `json:"access_count" db:"access_count"`
}

// Registration status values
const (
	StatusInProgress = "진행중"
	StatusComplete   = "완료"
	StatusInReview   = "검토중"
)

// AliasList splits the comma-joined alias field into trimmed alias names
func (s *Station) AliasList() []string {
	if s.Aliases == "" {
		return nil
	}
	parts := strings.Split(s.Aliases, ",")
	aliases := make([]string, 0, len(parts))
	for _, p := range parts {
		if a := strings.TrimSpace(p); a != "" {
			aliases = append(aliases, a)
		}
	}
	return aliases
}

// StationWithDistance pairs a station with its distance from a reference point
type StationWithDistance struct {
	Station
	DistanceMeters float64 `json:"distance_meters"`
}

// StationWithSimilarity pairs a station with its name similarity to a proposed name
type StationWithSimilarity struct {
	Station
	NameSimilarity float64 `json:"name_similarity"`
}

package models

import "time"

// Match type tags for search results
const (
	MatchExact   = "exact"
	MatchPartial = "partial"
	MatchChosung = "chosung"
	MatchFuzzy   = "fuzzy"
)

// Relevance scores per match type
const (
	ScoreExact   = 1.0
	ScorePartial = 0.8
	ScoreChosung = 0.6
	ScoreFuzzy   = 0.4
)

// SearchResult wraps a station with relevance information for one search call
type SearchResult struct {
	Station        Station  `json:"station"`
	RelevanceScore float64  `json:"relevance_score"`
	MatchType      string   `json:"match_type"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"` // set only when a reference location was given
}

// DuplicateReport describes possible duplicates for a proposed registration
type DuplicateReport struct {
	HasDuplicates       bool                    `json:"has_duplicates"`
	NearbyStations      []StationWithDistance   `json:"nearby_stations"`
	SimilarNameStations []StationWithSimilarity `json:"similar_name_stations"`
	TotalNearbyCount    int                     `json:"total_nearby_count"`
	SearchRadiusMeters  int                     `json:"search_radius_meters"`
	Recommendations     []string                `json:"recommendations"`
}

// Confidence levels for location validation
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// LocationValidation is the result of validating a coordinate reading
type LocationValidation struct {
	IsValid         bool     `json:"is_valid"`
	AccuracyMeters  *float64 `json:"accuracy_meters,omitempty"`
	ConfidenceLevel string   `json:"confidence_level"`
	Warnings        []string `json:"warnings"`
	Suggestions     []string `json:"suggestions"`
}

// NearbyDetail groups nearby stations by distance band and by station type
type NearbyDetail struct {
	TotalCount     int                              `json:"total_count"`
	SearchRadius   int                              `json:"search_radius"`
	DistanceGroups map[string][]StationWithDistance `json:"distance_groups"`
	TypeGroups     map[string][]StationWithDistance `json:"type_groups"`
	AllStations    []StationWithDistance            `json:"all_stations"`
}

// AlternativeLocation is a nearby coordinate with no registered stations around it
type AlternativeLocation struct {
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	DistanceFromOriginal float64 `json:"distance_from_original"`
	Reason               string  `json:"reason"`
}

// SearchLog records one executed search for later frequency analysis
type SearchLog struct {
	ID                int       `json:"id" db:"id"`
	SessionID         string    `json:"session_id" db:"session_id"`
	UserID            string    `json:"user_id" db:"user_id"`
	Query             string    `json:"search_query" db:"search_query"`
	SearchType        string    `json:"search_type" db:"search_type"`
	ResultsCount      int       `json:"results_count" db:"results_count"`
	SelectedStationID string    `json:"selected_station_id,omitempty" db:"selected_station_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

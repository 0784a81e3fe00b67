package service

import (
	"fmt"
	"log"
	"sort"

	"github.com/gpsinspection/station-backend-go/internal/cache"
	"github.com/gpsinspection/station-backend-go/internal/config"
	"github.com/gpsinspection/station-backend-go/internal/korean"
	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/repository"
	"github.com/gpsinspection/station-backend-go/internal/spatial"
)

// Approximate bounding box of South Korea, used as a plausibility heuristic.
const (
	koreaMinLat = 33.0
	koreaMaxLat = 38.6
	koreaMinLon = 124.5
	koreaMaxLon = 132.0
)

const maxSimilarNameResults = 10

// LocationService detects duplicate registrations by combining proximity
// search with Korean name-similarity matching, and validates coordinate
// readings.
type LocationService struct {
	stations *repository.StationRepository

	dupCache    *cache.Cache[string, models.DuplicateReport]
	nearbyCache *cache.Cache[string, []models.StationWithDistance]

	defaultRadius       int
	maxRadius           int
	similarityThreshold float64
	scanLimit           int
}

// NewLocationService creates a new location service. Cache instances are
// owned by the caller, which is responsible for stopping their janitors.
func NewLocationService(stations *repository.StationRepository,
	dupCache *cache.Cache[string, models.DuplicateReport],
	nearbyCache *cache.Cache[string, []models.StationWithDistance],
	cfg *config.Config) *LocationService {
	return &LocationService{
		stations:            stations,
		dupCache:            dupCache,
		nearbyCache:         nearbyCache,
		defaultRadius:       cfg.DefaultSearchRadius,
		maxRadius:           cfg.MaxSearchRadius,
		similarityThreshold: cfg.SimilarityThreshold,
		scanLimit:           cfg.FullScanLimit,
	}
}

// FindNearby returns stations within radiusMeters of the point, closest
// first, with exact haversine distances attached. The repository bounding-box
// query is only a prefilter; candidates outside the true radius are dropped.
func (s *LocationService) FindNearby(lat, lon float64, radiusMeters int) ([]models.StationWithDistance, error) {
	radiusMeters = s.clampRadius(radiusMeters)

	cacheKey := fmt.Sprintf("nearby_%.6f_%.6f_%d", lat, lon, radiusMeters)
	if cached, ok := s.nearbyCache.Get(cacheKey); ok {
		return cached, nil
	}

	box := spatial.BoundingBoxAround(lat, lon, float64(radiusMeters))
	candidates, err := s.stations.FindInBoundingBox(box)
	if err != nil {
		return nil, fmt.Errorf("nearby search failed: %w", err)
	}

	nearby := make([]models.StationWithDistance, 0, len(candidates))
	for _, station := range candidates {
		distance := spatial.HaversineDistance(lat, lon, station.Latitude, station.Longitude)
		if distance <= float64(radiusMeters) {
			nearby = append(nearby, models.StationWithDistance{
				Station:        station,
				DistanceMeters: roundTo(distance, 1),
			})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})

	s.nearbyCache.Set(cacheKey, nearby)
	return nearby, nil
}

// CheckDuplicate reports stations that may collide with a proposed
// registration, either by proximity or by name similarity. It never fails:
// internal errors degrade to an empty report with a cautionary
// recommendation.
func (s *LocationService) CheckDuplicate(lat, lon float64, proposedName string, radiusMeters int) models.DuplicateReport {
	radiusMeters = s.clampRadius(radiusMeters)

	cacheKey := fmt.Sprintf("location_dup_%.6f_%.6f_%d_%s", lat, lon, radiusMeters, proposedName)
	if cached, ok := s.dupCache.Get(cacheKey); ok {
		return cached
	}

	nearby, err := s.FindNearby(lat, lon, radiusMeters)
	if err != nil {
		log.Printf("duplicate check failed at (%f, %f): %v", lat, lon, err)
		return s.safeReport(radiusMeters)
	}

	similar, err := s.findSimilarNames(proposedName, nearby)
	if err != nil {
		log.Printf("similar-name check failed for %q: %v", proposedName, err)
		return s.safeReport(radiusMeters)
	}

	report := models.DuplicateReport{
		HasDuplicates:       len(nearby) > 0 || len(similar) > 0,
		NearbyStations:      nearby,
		SimilarNameStations: similar,
		TotalNearbyCount:    len(nearby),
		SearchRadiusMeters:  radiusMeters,
		Recommendations:     s.recommendations(nearby, similar, radiusMeters),
	}

	s.dupCache.Set(cacheKey, report)
	return report
}

// findSimilarNames scans all stations not already found nearby and keeps the
// ten most similar names at or above the similarity threshold. Aliases count
// individually; the best alias score wins.
func (s *LocationService) findSimilarNames(proposedName string, exclude []models.StationWithDistance) ([]models.StationWithSimilarity, error) {
	if proposedName == "" {
		return nil, nil
	}

	excludeIDs := make(map[string]bool, len(exclude))
	for _, st := range exclude {
		excludeIDs[st.StationID] = true
	}

	all, _, err := s.stations.FindByNameLike("", 1, s.scanLimit)
	if err != nil {
		return nil, fmt.Errorf("similar-name scan failed: %w", err)
	}

	var similar []models.StationWithSimilarity
	for _, station := range all {
		if excludeIDs[station.StationID] {
			continue
		}

		similarity := korean.Similarity(proposedName, station.Name)
		for _, alias := range station.AliasList() {
			if aliasSim := korean.Similarity(proposedName, alias); aliasSim > similarity {
				similarity = aliasSim
			}
		}

		if similarity >= s.similarityThreshold {
			similar = append(similar, models.StationWithSimilarity{
				Station:        station,
				NameSimilarity: roundTo(similarity, 3),
			})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].NameSimilarity > similar[j].NameSimilarity
	})
	if len(similar) > maxSimilarNameResults {
		similar = similar[:maxSimilarNameResults]
	}
	return similar, nil
}

// recommendations builds the ordered human-readable findings for a report.
func (s *LocationService) recommendations(nearby []models.StationWithDistance,
	similar []models.StationWithSimilarity, radiusMeters int) []string {
	var recs []string

	if len(nearby) == 1 {
		recs = append(recs, fmt.Sprintf("반경 %dm 내에 '%s' 무선국이 %.1fm 거리에 있습니다.",
			radiusMeters, nearby[0].Name, nearby[0].DistanceMeters))
	} else if len(nearby) > 1 {
		recs = append(recs, fmt.Sprintf("반경 %dm 내에 %d개의 무선국이 이미 등록되어 있습니다.",
			radiusMeters, len(nearby)))
	}
	if len(nearby) > 0 {
		recs = append(recs, "기존 무선국 정보를 확인하여 중복 등록이 아닌지 검토해주세요.")
	}

	if len(similar) > 0 {
		recs = append(recs, fmt.Sprintf("'%s'와 유사한 이름입니다. (유사도: %.1f%%)",
			similar[0].Name, similar[0].NameSimilarity*100))
		recs = append(recs, "기존 무선국과 다른 무선국인지 확인해주세요.")
	}

	if len(nearby) == 0 && len(similar) == 0 {
		recs = append(recs, "주변에 중복되는 무선국이 없습니다. 등록을 진행하셔도 됩니다.")
	} else {
		recs = append(recs, "신규 등록 또는 기존 정보 수정 중 선택해주세요.")
	}

	return recs
}

// safeReport is returned when the duplicate check itself failed.
func (s *LocationService) safeReport(radiusMeters int) models.DuplicateReport {
	return models.DuplicateReport{
		HasDuplicates:       false,
		NearbyStations:      []models.StationWithDistance{},
		SimilarNameStations: []models.StationWithSimilarity{},
		TotalNearbyCount:    0,
		SearchRadiusMeters:  radiusMeters,
		Recommendations:     []string{"시스템 오류로 인해 중복 확인을 완료할 수 없습니다. 수동 확인을 권장합니다."},
	}
}

// ValidateLocation checks a coordinate reading. Out-of-range latitude or
// longitude makes the result invalid; being outside the Korea bounding box
// only adds a warning. Missing accuracy defaults to high confidence.
func (s *LocationService) ValidateLocation(lat, lon float64, accuracyMeters *float64) models.LocationValidation {
	warnings := []string{}
	suggestions := []string{}

	latOK := lat >= -90 && lat <= 90
	lonOK := lon >= -180 && lon <= 180
	if !latOK {
		warnings = append(warnings, fmt.Sprintf("위도가 유효 범위를 벗어났습니다: %v", lat))
	}
	if !lonOK {
		warnings = append(warnings, fmt.Sprintf("경도가 유효 범위를 벗어났습니다: %v", lon))
	}

	if latOK && lonOK {
		inKorea := lat >= koreaMinLat && lat <= koreaMaxLat && lon >= koreaMinLon && lon <= koreaMaxLon
		if !inKorea {
			warnings = append(warnings, "한국 영역을 벗어난 좌표입니다.")
			suggestions = append(suggestions, "좌표를 다시 확인해주세요.")
		}
	}

	confidence := models.ConfidenceHigh
	if accuracyMeters != nil {
		switch acc := *accuracyMeters; {
		case acc > 100:
			confidence = models.ConfidenceLow
			warnings = append(warnings, fmt.Sprintf("GPS 정확도가 낮습니다: %.1fm", acc))
			suggestions = append(suggestions, "GPS 신호가 좋은 곳에서 다시 측정해주세요.")
		case acc > 20:
			confidence = models.ConfidenceMedium
			suggestions = append(suggestions, fmt.Sprintf("GPS 정확도: %.1fm - 양호", acc))
		default:
			suggestions = append(suggestions, fmt.Sprintf("GPS 정확도: %.1fm - 우수", acc))
		}
	}

	return models.LocationValidation{
		IsValid:         latOK && lonOK,
		AccuracyMeters:  accuracyMeters,
		ConfidenceLevel: confidence,
		Warnings:        warnings,
		Suggestions:     suggestions,
	}
}

// NearbyDetail groups the stations around a point by distance band and by
// station type.
func (s *LocationService) NearbyDetail(lat, lon float64, radiusMeters int) (*models.NearbyDetail, error) {
	radiusMeters = s.clampRadius(radiusMeters)

	nearby, err := s.FindNearby(lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}

	distanceGroups := map[string][]models.StationWithDistance{
		"very_close": {},
		"close":      {},
		"nearby":     {},
		"distant":    {},
	}
	typeGroups := make(map[string][]models.StationWithDistance)

	for _, station := range nearby {
		switch d := station.DistanceMeters; {
		case d <= 50:
			distanceGroups["very_close"] = append(distanceGroups["very_close"], station)
		case d <= 100:
			distanceGroups["close"] = append(distanceGroups["close"], station)
		case d <= 500:
			distanceGroups["nearby"] = append(distanceGroups["nearby"], station)
		default:
			distanceGroups["distant"] = append(distanceGroups["distant"], station)
		}
		typeGroups[station.Type] = append(typeGroups[station.Type], station)
	}

	return &models.NearbyDetail{
		TotalCount:     len(nearby),
		SearchRadius:   radiusMeters,
		DistanceGroups: distanceGroups,
		TypeGroups:     typeGroups,
		AllStations:    nearby,
	}, nil
}

// AlternativeLocations probes eight compass directions at a quarter of the
// search radius for spots with no stations in their half-radius
// neighborhood, closest first, at most five.
func (s *LocationService) AlternativeLocations(lat, lon float64, radiusMeters int) ([]models.AlternativeLocation, error) {
	radiusMeters = s.clampRadius(radiusMeters)
	step := float64(radiusMeters) / 4

	offsets := [][2]float64{
		{step, 0}, {-step, 0}, {0, step}, {0, -step},
		{step, step}, {-step, -step}, {step, -step}, {-step, step},
	}

	var alternatives []models.AlternativeLocation
	for _, off := range offsets {
		altLat, altLon := spatial.OffsetMeters(lat, lon, off[0], off[1])

		nearby, err := s.FindNearby(altLat, altLon, radiusMeters/2)
		if err != nil {
			return nil, err
		}
		if len(nearby) > 0 {
			continue
		}

		alternatives = append(alternatives, models.AlternativeLocation{
			Latitude:             altLat,
			Longitude:            altLon,
			DistanceFromOriginal: roundTo(spatial.HaversineDistance(lat, lon, altLat, altLon), 1),
			Reason:               "주변에 다른 무선국이 없는 위치",
		})
	}

	sort.Slice(alternatives, func(i, j int) bool {
		return alternatives[i].DistanceFromOriginal < alternatives[j].DistanceFromOriginal
	})
	if len(alternatives) > 5 {
		alternatives = alternatives[:5]
	}
	return alternatives, nil
}

// DuplicateCacheStats exposes the duplicate-report cache counters.
func (s *LocationService) DuplicateCacheStats() cache.Stats {
	return s.dupCache.GetStats()
}

// NearbyCacheStats exposes the nearby-result cache counters.
func (s *LocationService) NearbyCacheStats() cache.Stats {
	return s.nearbyCache.GetStats()
}

func (s *LocationService) clampRadius(radiusMeters int) int {
	if radiusMeters <= 0 {
		return s.defaultRadius
	}
	if radiusMeters > s.maxRadius {
		return s.maxRadius
	}
	return radiusMeters
}

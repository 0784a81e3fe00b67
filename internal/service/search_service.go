package service

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gpsinspection/station-backend-go/internal/cache"
	"github.com/gpsinspection/station-backend-go/internal/config"
	"github.com/gpsinspection/station-backend-go/internal/korean"
	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/repository"
	"github.com/gpsinspection/station-backend-go/internal/spatial"
)

// Location is a WGS84 coordinate pair used as a search reference point.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchPage is one cached page of search results with its pre-pagination
// total.
type SearchPage struct {
	Results []models.SearchResult `json:"results"`
	Total   int                   `json:"total"`
}

// SearchService runs the staged Korean-aware station search: exact match,
// substring match, chosung match, then fuzzy match. Later stages never
// resurface a station an earlier stage already matched.
type SearchService struct {
	stations  *repository.StationRepository
	logs      *repository.SearchLogRepository
	cache     *cache.Cache[string, SearchPage]
	scanLimit int
}

// NewSearchService creates a new search service. The cache instance is owned
// by the caller, which is responsible for stopping its janitor.
func NewSearchService(stations *repository.StationRepository, logs *repository.SearchLogRepository,
	searchCache *cache.Cache[string, SearchPage], cfg *config.Config) *SearchService {
	return &SearchService{
		stations:  stations,
		logs:      logs,
		cache:     searchCache,
		scanLimit: cfg.FullScanLimit,
	}
}

// Search runs the staged search for query, optionally sorting ties by
// distance from ref. page is 1-based; pageSize is clamped to [1,100].
// Returns the requested page and the total number of matches.
func (s *SearchService) Search(query string, ref *Location, page, pageSize int) ([]models.SearchResult, int) {
	if strings.TrimSpace(query) == "" {
		return []models.SearchResult{}, 0
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	cacheKey := searchCacheKey(query, ref, page, pageSize)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.Results, cached.Total
	}

	results := s.collectResults(query, ref)

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		return distanceOrInf(results[i].DistanceMeters) < distanceOrInf(results[j].DistanceMeters)
	})

	total := len(results)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	pageResults := results[start:end]

	s.cache.Set(cacheKey, SearchPage{Results: pageResults, Total: total})
	return pageResults, total
}

// collectResults runs the four match stages in precedence order. A failing
// stage is logged and contributes nothing.
func (s *SearchService) collectResults(query string, ref *Location) []models.SearchResult {
	type stage struct {
		name      string
		score     float64
		matchType string
		run       func(string) ([]models.Station, error)
	}

	stages := []stage{
		{"exact", models.ScoreExact, models.MatchExact, s.exactMatches},
		{"partial", models.ScorePartial, models.MatchPartial, s.partialMatches},
		{"chosung", models.ScoreChosung, models.MatchChosung, s.chosungMatches},
		{"fuzzy", models.ScoreFuzzy, models.MatchFuzzy, s.fuzzyMatches},
	}

	var results []models.SearchResult
	seen := make(map[string]bool)

	for _, st := range stages {
		stations, err := st.run(query)
		if err != nil {
			log.Printf("search stage %s failed for query %q: %v", st.name, query, err)
			continue
		}

		for _, station := range stations {
			if seen[station.StationID] {
				continue
			}
			seen[station.StationID] = true

			result := models.SearchResult{
				Station:        station,
				RelevanceScore: st.score,
				MatchType:      st.matchType,
			}
			if ref != nil {
				d := roundTo(spatial.HaversineDistance(ref.Latitude, ref.Longitude,
					station.Latitude, station.Longitude), 1)
				result.DistanceMeters = &d
			}
			results = append(results, result)
		}
	}

	return results
}

// exactMatches keeps only stations whose name or one of whose aliases equals
// the query exactly.
func (s *SearchService) exactMatches(query string) ([]models.Station, error) {
	candidates, _, err := s.stations.FindByNameLike(query, 1, s.scanLimit)
	if err != nil {
		return nil, err
	}

	var matches []models.Station
	for _, station := range candidates {
		if station.Name == query {
			matches = append(matches, station)
			continue
		}
		for _, alias := range station.AliasList() {
			if alias == query {
				matches = append(matches, station)
				break
			}
		}
	}
	return matches, nil
}

// partialMatches returns stations whose name or alias contains the query.
func (s *SearchService) partialMatches(query string) ([]models.Station, error) {
	stations, _, err := s.stations.FindByNameLike(query, 1, s.scanLimit)
	return stations, err
}

// chosungMatches compares the query against the initial-consonant form of
// every station name and alias. Only runs for chosung-style queries.
func (s *SearchService) chosungMatches(query string) ([]models.Station, error) {
	if !korean.IsChosungQuery(query) {
		return nil, nil
	}

	all, _, err := s.stations.FindByNameLike("", 1, s.scanLimit)
	if err != nil {
		return nil, err
	}

	var matches []models.Station
	for _, station := range all {
		if strings.Contains(korean.ExtractChosung(station.Name), query) {
			matches = append(matches, station)
			continue
		}
		for _, alias := range station.AliasList() {
			if strings.Contains(korean.ExtractChosung(alias), query) {
				matches = append(matches, station)
				break
			}
		}
	}
	return matches, nil
}

// fuzzyMatches accepts stations within an edit-distance budget of a third of
// the query length.
func (s *SearchService) fuzzyMatches(query string) ([]models.Station, error) {
	all, _, err := s.stations.FindByNameLike("", 1, s.scanLimit)
	if err != nil {
		return nil, err
	}

	threshold := utf8.RuneCountInString(query) / 3
	if threshold < 1 {
		threshold = 1
	}

	var matches []models.Station
	for _, station := range all {
		if korean.EditDistance(query, station.Name) <= threshold {
			matches = append(matches, station)
			continue
		}
		for _, alias := range station.AliasList() {
			if korean.EditDistance(query, alias) <= threshold {
				matches = append(matches, station)
				break
			}
		}
	}
	return matches, nil
}

// Suggestions returns up to limit name/alias completions for a prefix of at
// least two characters.
func (s *SearchService) Suggestions(prefix string, limit int) []string {
	if utf8.RuneCountInString(prefix) < 2 {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}

	candidates, _, err := s.stations.FindByNameLike(prefix, 1, limit*2)
	if err != nil {
		log.Printf("suggestion lookup failed for prefix %q: %v", prefix, err)
		return nil
	}

	seen := make(map[string]bool)
	var suggestions []string
	add := func(name string) {
		if len(suggestions) < limit && strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			suggestions = append(suggestions, name)
		}
	}

	for _, station := range candidates {
		add(station.Name)
		for _, alias := range station.AliasList() {
			add(alias)
		}
	}
	return suggestions
}

// PopularSearches returns the most frequent queries of the last seven days.
func (s *SearchService) PopularSearches(limit int) []string {
	if limit <= 0 {
		limit = 10
	}

	queries, err := s.logs.PopularQueries(time.Now().AddDate(0, 0, -7), limit)
	if err != nil {
		log.Printf("popular search lookup failed: %v", err)
		return nil
	}
	return queries
}

// LogSearch records an executed search; failures are logged and ignored.
func (s *SearchService) LogSearch(sessionID, userID, query, searchType string, resultsCount int, selectedStationID string) {
	entry := &models.SearchLog{
		SessionID:         sessionID,
		UserID:            userID,
		Query:             query,
		SearchType:        searchType,
		ResultsCount:      resultsCount,
		SelectedStationID: selectedStationID,
	}
	if err := s.logs.Insert(entry); err != nil {
		log.Printf("failed to record search log: %v", err)
	}
}

// CacheStats exposes the search cache counters.
func (s *SearchService) CacheStats() cache.Stats {
	return s.cache.GetStats()
}

func searchCacheKey(query string, ref *Location, page, pageSize int) string {
	loc := "none"
	if ref != nil {
		loc = fmt.Sprintf("%.6f,%.6f", ref.Latitude, ref.Longitude)
	}
	return fmt.Sprintf("search_%s_%s_%d_%d", query, loc, page, pageSize)
}

func distanceOrInf(d *float64) float64 {
	if d == nil {
		return math.Inf(1)
	}
	return *d
}

// roundTo rounds to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

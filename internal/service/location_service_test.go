package service

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpsinspection/station-backend-go/internal/cache"
	"github.com/gpsinspection/station-backend-go/internal/database"
	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/repository"
)

func newLocationService(t *testing.T) (*LocationService, *repository.StationRepository, *sql.DB) {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := testConfig()
	stations := repository.NewStationRepository(db)
	dupCache := cache.New[string, models.DuplicateReport](cfg.LocationCacheSize, cfg.LocationCacheTTL)
	nearbyCache := cache.New[string, []models.StationWithDistance](cfg.LocationCacheSize, cfg.LocationCacheTTL)

	return NewLocationService(stations, dupCache, nearbyCache, cfg), stations, db
}

func TestFindNearbyFiltersByTrueDistance(t *testing.T) {
	svc, repo, _ := newLocationService(t)

	seedStation(t, repo, "부산항관제탑", "", 35.1796, 129.0756)
	// Inside the bounding box corner but outside the circle: the box for
	// 200m spans ~200m in each cardinal direction, so a point ~250m away
	// diagonally still falls inside it.
	seedStation(t, repo, "모서리국", "", 35.18120, 129.07755)
	seedStation(t, repo, "서울송신소", "", 37.5665, 126.9780)

	nearby, err := svc.FindNearby(35.1796, 129.0756, 200)
	require.NoError(t, err)

	for _, st := range nearby {
		assert.LessOrEqual(t, st.DistanceMeters, 200.0,
			"station %s exceeds the search radius", st.Name)
	}

	require.NotEmpty(t, nearby)
	assert.Equal(t, "부산항관제탑", nearby[0].Name)
	assert.Equal(t, 0.0, nearby[0].DistanceMeters)
}

func TestFindNearbySortedAscending(t *testing.T) {
	svc, repo, _ := newLocationService(t)

	seedStation(t, repo, "가까운국", "", 35.17965, 129.0756)
	seedStation(t, repo, "먼국", "", 35.1803, 129.0756)

	nearby, err := svc.FindNearby(35.1796, 129.0756, 200)
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, "가까운국", nearby[0].Name)
	assert.Less(t, nearby[0].DistanceMeters, nearby[1].DistanceMeters)
}

func TestCheckDuplicateNearbyStation(t *testing.T) {
	svc, repo, _ := newLocationService(t)
	seedStation(t, repo, "부산항관제탑", "", 35.1796, 129.0756)

	report := svc.CheckDuplicate(35.1796, 129.0756, "부산항신규무선국", 200)

	assert.True(t, report.HasDuplicates)
	assert.Equal(t, 1, report.TotalNearbyCount)
	assert.Equal(t, 200, report.SearchRadiusMeters)
	require.Len(t, report.NearbyStations, 1)
	assert.Equal(t, "부산항관제탑", report.NearbyStations[0].Name)

	// One nearby station: the first recommendation names it and its distance,
	// and the closing line offers the register-or-edit choice.
	require.NotEmpty(t, report.Recommendations)
	assert.Contains(t, report.Recommendations[0], "부산항관제탑")
	assert.Contains(t, report.Recommendations[len(report.Recommendations)-1], "신규 등록")
}

func TestCheckDuplicateSimilarName(t *testing.T) {
	svc, repo, _ := newLocationService(t)
	// Far away so proximity does not trigger; name one edit apart.
	seedStation(t, repo, "부산항관제탑", "", 37.5665, 126.9780)

	report := svc.CheckDuplicate(35.1796, 129.0756, "부산항관제소", 100)

	assert.True(t, report.HasDuplicates)
	assert.Zero(t, report.TotalNearbyCount)
	require.Len(t, report.SimilarNameStations, 1)
	assert.GreaterOrEqual(t, report.SimilarNameStations[0].NameSimilarity, 0.7)

	foundSimilarRec := false
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "유사한 이름") {
			foundSimilarRec = true
		}
	}
	assert.True(t, foundSimilarRec)
}

func TestCheckDuplicateSimilarNamesCappedAndSorted(t *testing.T) {
	svc, repo, _ := newLocationService(t)

	// Twelve far-away stations whose names are one or two edits from the
	// proposed name.
	variants := []string{
		"부산항관제탑1", "부산항관제탑2", "부산항관제탑3", "부산항관제탑4",
		"부산항관제탑5", "부산항관제탑6", "부산항관제탑7", "부산항관제탑8",
		"부산항관제탑9", "부산항관제틉1", "부산항관제틉2", "부산항관제틉3",
	}
	for _, name := range variants {
		seedStation(t, repo, name, "", 37.5665, 126.9780)
	}

	report := svc.CheckDuplicate(35.1796, 129.0756, "부산항관제탑", 100)

	require.Len(t, report.SimilarNameStations, 10)
	for i := 1; i < len(report.SimilarNameStations); i++ {
		assert.GreaterOrEqual(t,
			report.SimilarNameStations[i-1].NameSimilarity,
			report.SimilarNameStations[i].NameSimilarity)
	}
}

func TestCheckDuplicateNoConflicts(t *testing.T) {
	svc, _, _ := newLocationService(t)

	report := svc.CheckDuplicate(35.1796, 129.0756, "완전히새로운무선국", 100)

	assert.False(t, report.HasDuplicates)
	assert.Empty(t, report.NearbyStations)
	assert.Empty(t, report.SimilarNameStations)
	require.Len(t, report.Recommendations, 1)
	assert.Contains(t, report.Recommendations[0], "등록을 진행하셔도 됩니다")
}

func TestCheckDuplicateInvariant(t *testing.T) {
	svc, repo, _ := newLocationService(t)
	seedStation(t, repo, "부산항관제탑", "", 35.1796, 129.0756)

	report := svc.CheckDuplicate(35.1796, 129.0756, "부산항관제탑", 100)
	assert.Equal(t,
		len(report.NearbyStations) > 0 || len(report.SimilarNameStations) > 0,
		report.HasDuplicates)
}

func TestCheckDuplicateSafeReportOnFailure(t *testing.T) {
	svc, _, db := newLocationService(t)

	// Force repository failures.
	require.NoError(t, db.Close())

	report := svc.CheckDuplicate(35.1796, 129.0756, "부산항관제탑", 100)

	assert.False(t, report.HasDuplicates)
	assert.Empty(t, report.NearbyStations)
	assert.Empty(t, report.SimilarNameStations)
	require.Len(t, report.Recommendations, 1)
	assert.Contains(t, report.Recommendations[0], "수동 확인을 권장합니다")
}

func TestCheckDuplicateUsesCache(t *testing.T) {
	svc, repo, _ := newLocationService(t)
	seedStation(t, repo, "부산항관제탑", "", 35.1796, 129.0756)

	svc.CheckDuplicate(35.1796, 129.0756, "부산항신규무선국", 200)
	svc.CheckDuplicate(35.1796, 129.0756, "부산항신규무선국", 200)

	stats := svc.DuplicateCacheStats()
	assert.Equal(t, int64(1), stats.Hits)
}

func TestValidateLocationOutOfRange(t *testing.T) {
	svc, _, _ := newLocationService(t)

	result := svc.ValidateLocation(91.0, 200.0, nil)

	assert.False(t, result.IsValid)
	assert.Len(t, result.Warnings, 2)
}

func TestValidateLocationOutsideKorea(t *testing.T) {
	svc, _, _ := newLocationService(t)

	// Tokyo: valid coordinates but outside the Korea bounding box.
	result := svc.ValidateLocation(35.6762, 139.6503, nil)

	assert.True(t, result.IsValid, "outside-Korea coordinates stay valid")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "한국 영역")
}

func TestValidateLocationAccuracyTiers(t *testing.T) {
	svc, _, _ := newLocationService(t)

	tests := []struct {
		name       string
		accuracy   *float64
		confidence string
		warnings   int
	}{
		{"no reading defaults to high", nil, models.ConfidenceHigh, 0},
		{"excellent", ptr(5.0), models.ConfidenceHigh, 0},
		{"boundary stays high", ptr(20.0), models.ConfidenceHigh, 0},
		{"medium", ptr(50.0), models.ConfidenceMedium, 0},
		{"low", ptr(150.0), models.ConfidenceLow, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.ValidateLocation(35.1796, 129.0756, tt.accuracy)
			assert.True(t, result.IsValid)
			assert.Equal(t, tt.confidence, result.ConfidenceLevel)
			assert.Len(t, result.Warnings, tt.warnings)
		})
	}
}

func TestNearbyDetailGroups(t *testing.T) {
	svc, repo, _ := newLocationService(t)

	seedStation(t, repo, "초근접국", "", 35.1796, 129.0756) // 0m
	seedStation(t, repo, "근접국", "", 35.18030, 129.0756)  // ~78m
	seedStation(t, repo, "주변국", "", 35.18230, 129.0756)  // ~300m

	detail, err := svc.NearbyDetail(35.1796, 129.0756, 1000)
	require.NoError(t, err)

	assert.Equal(t, 3, detail.TotalCount)
	assert.Len(t, detail.DistanceGroups["very_close"], 1)
	assert.Len(t, detail.DistanceGroups["close"], 1)
	assert.Len(t, detail.DistanceGroups["nearby"], 1)
	assert.Empty(t, detail.DistanceGroups["distant"])
	assert.Len(t, detail.TypeGroups["기지국"], 3)
}

func TestAlternativeLocations(t *testing.T) {
	svc, repo, _ := newLocationService(t)
	// ~600m east of the probe center: every probe's half-radius
	// neighborhood is clear, so all eight candidates qualify.
	seedStation(t, repo, "부산항관제탑", "", 35.1796, 129.0822)

	alternatives, err := svc.AlternativeLocations(35.1796, 129.0756, 400)
	require.NoError(t, err)

	assert.Len(t, alternatives, 5)
	for i := 1; i < len(alternatives); i++ {
		assert.GreaterOrEqual(t,
			alternatives[i].DistanceFromOriginal,
			alternatives[i-1].DistanceFromOriginal)
	}
}

func TestAlternativeLocationsAllBlocked(t *testing.T) {
	svc, repo, _ := newLocationService(t)
	// A station at the center sits within half a radius of every probe.
	seedStation(t, repo, "부산항관제탑", "", 35.1796, 129.0756)

	alternatives, err := svc.AlternativeLocations(35.1796, 129.0756, 400)
	require.NoError(t, err)
	assert.Empty(t, alternatives)
}

func ptr(f float64) *float64 {
	return &f
}

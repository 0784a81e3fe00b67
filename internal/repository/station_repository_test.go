package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpsinspection/station-backend-go/internal/database"
	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/spatial"
)

func newTestRepo(t *testing.T) *StationRepository {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStationRepository(db)
}

func testStation(name string) *models.Station {
	return &models.Station{
		Name:        name,
		Type:        "기지국",
		Latitude:    35.1796,
		Longitude:   129.0756,
		InspectorID: "insp-01",
	}
}

func TestInsertGeneratesSequentialIDs(t *testing.T) {
	repo := newTestRepo(t)

	id1, err := repo.Insert(testStation("부산항관제탑"))
	require.NoError(t, err)
	assert.Equal(t, "WS00001", id1)

	id2, err := repo.Insert(testStation("해운대기지국"))
	require.NoError(t, err)
	assert.Equal(t, "WS00002", id2)
}

func TestGetByIDBumpsAccessCount(t *testing.T) {
	repo := newTestRepo(t)

	id, err := repo.Insert(testStation("부산항관제탑"))
	require.NoError(t, err)

	first, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "부산항관제탑", first.Name)
	assert.Equal(t, models.StatusInProgress, first.Status)

	second, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, first.AccessCount+1, second.AccessCount)
	assert.NotNil(t, second.LastAccessedAt)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID("WS99999")
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestFindByNameLike(t *testing.T) {
	repo := newTestRepo(t)

	names := []string{"부산항관제탑", "부산항등대", "해운대기지국"}
	for _, n := range names {
		_, err := repo.Insert(testStation(n))
		require.NoError(t, err)
	}

	// Alias should also match.
	withAlias := testStation("김해공항관제소")
	withAlias.Aliases = "부산항보조국"
	_, err := repo.Insert(withAlias)
	require.NoError(t, err)

	stations, total, err := repo.FindByNameLike("부산항", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, stations, 3)

	// Pagination window with pre-pagination total.
	stations, total, err = repo.FindByNameLike("부산항", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, stations, 2)

	stations, _, err = repo.FindByNameLike("부산항", 2, 2)
	require.NoError(t, err)
	assert.Len(t, stations, 1)
}

func TestFindInBoundingBox(t *testing.T) {
	repo := newTestRepo(t)

	inside := testStation("부산항관제탑")
	_, err := repo.Insert(inside)
	require.NoError(t, err)

	far := testStation("서울송신소")
	far.Latitude = 37.5665
	far.Longitude = 126.9780
	_, err = repo.Insert(far)
	require.NoError(t, err)

	box := spatial.BoundingBoxAround(35.1796, 129.0756, 500)
	stations, err := repo.FindInBoundingBox(box)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "부산항관제탑", stations[0].Name)
}

func TestFindByStatus(t *testing.T) {
	repo := newTestRepo(t)

	s1 := testStation("부산항관제탑")
	_, err := repo.Insert(s1)
	require.NoError(t, err)

	s2 := testStation("해운대기지국")
	s2.Status = models.StatusComplete
	_, err = repo.Insert(s2)
	require.NoError(t, err)

	stations, total, err := repo.FindByStatus(models.StatusComplete, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, stations, 1)
	assert.Equal(t, "해운대기지국", stations[0].Name)

	_, total, err = repo.FindByStatus("all", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestFindByRegionAndType(t *testing.T) {
	repo := newTestRepo(t)

	s1 := testStation("부산항관제탑")
	s1.RegionName = "부산광역시 중구"
	s1.Type = "관제탑"
	_, err := repo.Insert(s1)
	require.NoError(t, err)

	s2 := testStation("해운대기지국")
	s2.RegionName = "부산광역시 해운대구"
	_, err = repo.Insert(s2)
	require.NoError(t, err)

	stations, total, err := repo.FindByRegionAndType("부산", "관제탑", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, stations, 1)
	assert.Equal(t, "부산항관제탑", stations[0].Name)

	_, total, err = repo.FindByRegionAndType("부산", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := newTestRepo(t)

	station := testStation("부산항관제탑")
	id, err := repo.Insert(station)
	require.NoError(t, err)

	station.Status = models.StatusComplete
	station.Aliases = "부산관제,항만타워"
	require.NoError(t, repo.Update(station))

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, got.Status)
	assert.Equal(t, []string{"부산관제", "항만타워"}, got.AliasList())

	require.NoError(t, repo.Delete(id))
	assert.ErrorIs(t, repo.Delete(id), ErrStationNotFound)

	missing := testStation("없는국")
	missing.StationID = "WS99999"
	assert.ErrorIs(t, repo.Update(missing), ErrStationNotFound)
}

func TestSearchLogPopularQueries(t *testing.T) {
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSearchLogRepository(db)
	logs := []string{"부산항", "부산항", "관제탑", "부산항", "관제탑", "기지국"}
	for _, q := range logs {
		err := repo.Insert(&models.SearchLog{
			SessionID:    "sess-1",
			UserID:       "user-1",
			Query:        q,
			SearchType:   "integrated",
			ResultsCount: 1,
		})
		require.NoError(t, err)
	}

	popular, err := repo.PopularQueries(time.Now().Add(-7*24*time.Hour), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"부산항", "관제탑"}, popular)
}

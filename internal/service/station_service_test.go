package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpsinspection/station-backend-go/internal/database"
	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/repository"
)

func newStationService(t *testing.T) *StationService {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStationService(repository.NewStationRepository(db))
}

func TestRegisterAndGet(t *testing.T) {
	svc := newStationService(t)

	id, err := svc.Register(&models.Station{
		Name:        "부산항관제탑",
		Type:        "기지국",
		Latitude:    35.1796,
		Longitude:   129.0756,
		InspectorID: "insp-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "WS00001", id)

	station, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "부산항관제탑", station.Name)
	assert.Equal(t, models.StatusInProgress, station.Status)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc := newStationService(t)

	tests := []struct {
		name    string
		station models.Station
	}{
		{"missing name", models.Station{Type: "기지국", Latitude: 35, Longitude: 129, InspectorID: "i"}},
		{"missing type", models.Station{Name: "국", Latitude: 35, Longitude: 129, InspectorID: "i"}},
		{"latitude out of range", models.Station{Name: "국", Type: "기지국", Latitude: 95, Longitude: 129, InspectorID: "i"}},
		{"longitude out of range", models.Station{Name: "국", Type: "기지국", Latitude: 35, Longitude: 200, InspectorID: "i"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(&tt.station)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetUnknownStation(t *testing.T) {
	svc := newStationService(t)

	_, err := svc.Get("WS99999")
	assert.ErrorIs(t, err, repository.ErrStationNotFound)

	_, err = svc.Get("  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStation(t *testing.T) {
	svc := newStationService(t)

	id, err := svc.Register(&models.Station{
		Name: "부산항관제탑", Type: "기지국",
		Latitude: 35.1796, Longitude: 129.0756, InspectorID: "insp-01",
	})
	require.NoError(t, err)

	updated := &models.Station{
		StationID: id, Name: "부산항관제탑", Type: "기지국",
		Latitude: 35.1796, Longitude: 129.0756,
		Status: models.StatusComplete, InspectorID: "insp-01",
	}
	require.NoError(t, svc.Update(updated))

	station, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, station.Status)
}

func TestDeleteStation(t *testing.T) {
	svc := newStationService(t)

	id, err := svc.Register(&models.Station{
		Name: "부산항관제탑", Type: "기지국",
		Latitude: 35.1796, Longitude: 129.0756, InspectorID: "insp-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(id))
	assert.ErrorIs(t, svc.Delete(id), repository.ErrStationNotFound)
}

func TestListByStatus(t *testing.T) {
	svc := newStationService(t)

	for _, name := range []string{"국1", "국2", "국3"} {
		_, err := svc.Register(&models.Station{
			Name: name, Type: "기지국",
			Latitude: 35.18, Longitude: 129.07, InspectorID: "insp-01",
		})
		require.NoError(t, err)
	}

	stations, total, err := svc.ListByStatus("all", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, stations, 2)

	stations, total, err = svc.ListByStatus(models.StatusComplete, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, stations)
}
